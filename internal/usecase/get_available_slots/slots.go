package get_available_slots

import (
	"time"

	"github.com/velikhov/CSP-BookingService/internal/domain"
	"github.com/velikhov/CSP-BookingService/internal/integrations/identityservice"
	"github.com/velikhov/CSP-BookingService/pkg/ptr"
)

// ageGroupFromProfile определяет возрастную группу заявителя.
// Дата рождения имеет приоритет над самодекларированным возрастом.
// Если ни то, ни другое не известно, возвращает nil (неизвестный возраст,
// не третья группа).
func ageGroupFromProfile(profile *identityservice.Profile, now time.Time) *domain.AgeGroup {
	if profile == nil {
		return nil
	}

	if profile.DateOfBirth != nil {
		return ptr.Ptr(domain.AgeGroupForAge(domain.AgeFromDateOfBirth(*profile.DateOfBirth, now)))
	}

	if profile.Age != nil {
		return ptr.Ptr(domain.AgeGroupForAge(*profile.Age))
	}

	return nil
}

// unavailableSlots возвращает все 8 слотов дня, помеченные недоступными.
// Используется при закрытой дате: посчитывать занятость по слотам не нужно.
func unavailableSlots() []Slot {
	slots := make([]Slot, len(domain.TimeBuckets))
	for i, bucket := range domain.TimeBuckets {
		slots[i] = Slot{StartTime: bucket, Available: false}
	}
	return slots
}

// outreachSlots возвращает все 8 слотов дня, доступные без ограничения мест.
// Для выездного обслуживания занятость не считается вовсе.
func outreachSlots() []Slot {
	slots := make([]Slot, len(domain.TimeBuckets))
	for i, bucket := range domain.TimeBuckets {
		slots[i] = Slot{StartTime: bucket, Available: true}
	}
	return slots
}

// resourceCenterSlots считает доступность слотов центра обслуживания
// для заявителя данной возрастной группы.
// Заявитель с известным возрастом видит остаток только своего пула,
// с неизвестным видит сумму обоих пулов.
func resourceCenterSlots(buckets []domain.BucketCapacity, ageGroup *domain.AgeGroup) []Slot {
	slots := make([]Slot, len(buckets))

	for i, bucket := range buckets {
		slots[i] = Slot{
			StartTime: bucket.StartTime,
			Available: bucket.AvailableFor(ageGroup),
			AgeGroup:  ageGroup,
			SlotCount: ptr.Ptr(bucket.RemainingFor(ageGroup)),
		}
	}

	return slots
}

// truncateToDay обнуляет компонент времени: дата трактуется
// как настенный календарный день
func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
