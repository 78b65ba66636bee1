package domain

import "time"

// Календарные правила работы локаций. Праздники и исключения не моделируются:
// дата трактуется как настенный календарный день без учёта таймзон.

// IsResourceCenterDateAvailable returns true if the resource center is open on the date.
// Центр обслуживания работает только по вторникам и четвергам.
func IsResourceCenterDateAvailable(date time.Time) bool {
	wd := date.Weekday()
	return wd == time.Tuesday || wd == time.Thursday
}

// IsOutreachDateAvailable returns true if outreach service runs on the date.
// Выездное обслуживание работает по будням.
func IsOutreachDateAvailable(date time.Time) bool {
	wd := date.Weekday()
	return wd >= time.Monday && wd <= time.Friday
}

// IsDateAvailableFor возвращает календарную доступность даты для типа локации
func IsDateAvailableFor(locationType LocationType, date time.Time) bool {
	switch locationType {
	case LocationResourceCenter:
		return IsResourceCenterDateAvailable(date)
	case LocationOutreach:
		return IsOutreachDateAvailable(date)
	default:
		return false
	}
}
