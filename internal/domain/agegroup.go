package domain

import "time"

// AgeGroup represents the demographic capacity partition of the resource center
type AgeGroup string

const (
	AgeGroupUnder15 AgeGroup = "<15"
	AgeGroupOver15  AgeGroup = "15+"
)

// AgeGroupThreshold граница возрастных групп: возраст строго меньше 15 относится к младшей группе
const AgeGroupThreshold = 15

// AgeGroupForAge возвращает возрастную группу для известного возраста
func AgeGroupForAge(age int) AgeGroup {
	if age < AgeGroupThreshold {
		return AgeGroupUnder15
	}
	return AgeGroupOver15
}

// AgeFromDateOfBirth вычисляет полное число лет на момент now
func AgeFromDateOfBirth(dateOfBirth, now time.Time) int {
	age := now.Year() - dateOfBirth.Year()
	if now.Month() < dateOfBirth.Month() ||
		(now.Month() == dateOfBirth.Month() && now.Day() < dateOfBirth.Day()) {
		age--
	}
	if age < 0 {
		return 0
	}
	return age
}
