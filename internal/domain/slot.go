package domain

import "github.com/velikhov/CSP-BookingService/pkg/types"

// BucketCapacity ёмкость одного временного слота центра обслуживания,
// разделённая на два независимых возрастных пула
type BucketCapacity struct {
	StartTime        types.TimeString
	AllowanceUnder15 int
	AllowanceOver15  int
	BookedUnder15    int
	BookedOver15     int
}

// RemainingUnder15 returns the remaining capacity of the under-15 pool
func (c BucketCapacity) RemainingUnder15() int {
	return max(0, c.AllowanceUnder15-c.BookedUnder15)
}

// RemainingOver15 returns the remaining capacity of the 15+ pool
func (c BucketCapacity) RemainingOver15() int {
	return max(0, c.AllowanceOver15-c.BookedOver15)
}

// RemainingFor возвращает остаток мест для возрастной группы.
// nil означает неизвестный возраст: такой заявитель видит сумму обоих пулов.
func (c BucketCapacity) RemainingFor(group *AgeGroup) int {
	if group == nil {
		return c.RemainingUnder15() + c.RemainingOver15()
	}
	if *group == AgeGroupUnder15 {
		return c.RemainingUnder15()
	}
	return c.RemainingOver15()
}

// AvailableFor returns true if the bucket has room for the given age group
func (c BucketCapacity) AvailableFor(group *AgeGroup) bool {
	return c.RemainingFor(group) > 0
}

// BuildBucketCapacities строит ёмкость всех восьми слотов дня по списку записей.
// Отменённые записи не занимают места. Записи без возрастной группы
// (заявитель с неизвестным возрастом) считаются в пул старшей группы.
func BuildBucketCapacities(appointments []*Appointment, allowanceUnder15, allowanceOver15 int) []BucketCapacity {
	buckets := make([]BucketCapacity, len(TimeBuckets))

	for i, start := range TimeBuckets {
		buckets[i] = BucketCapacity{
			StartTime:        start,
			AllowanceUnder15: allowanceUnder15,
			AllowanceOver15:  allowanceOver15,
		}
	}

	for _, appt := range appointments {
		if !appt.CountsAgainstCapacity() {
			continue
		}

		for i := range buckets {
			if buckets[i].StartTime != appt.StartTime {
				continue
			}
			if appt.AgeGroup != nil && *appt.AgeGroup == AgeGroupUnder15 {
				buckets[i].BookedUnder15++
			} else {
				buckets[i].BookedOver15++
			}
			break
		}
	}

	return buckets
}

// FindBucket возвращает ёмкость конкретного слота либо false, если время вне набора
func FindBucket(buckets []BucketCapacity, startTime types.TimeString) (BucketCapacity, bool) {
	for _, b := range buckets {
		if b.StartTime == startTime {
			return b, true
		}
	}
	return BucketCapacity{}, false
}
