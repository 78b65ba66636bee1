package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velikhov/CSP-BookingService/pkg/ptr"
	"github.com/velikhov/CSP-BookingService/pkg/types"
)

func rcAppointment(start types.TimeString, group *AgeGroup, status AppointmentStatus) *Appointment {
	return &Appointment{
		UserID:          1,
		AppointmentDate: time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC),
		StartTime:       start,
		LocationType:    LocationResourceCenter,
		AgeGroup:        group,
		Status:          status,
	}
}

func TestBuildBucketCapacities_Empty(t *testing.T) {
	buckets := BuildBucketCapacities(nil, DefaultSlotsUnder15, DefaultSlotsOver15)

	require.Len(t, buckets, len(TimeBuckets))
	for _, b := range buckets {
		assert.Equal(t, 6, b.RemainingUnder15())
		assert.Equal(t, 9, b.RemainingOver15())
		assert.Equal(t, 15, b.RemainingFor(nil))
	}
}

func TestBuildBucketCapacities_CountsPerBucketAndPool(t *testing.T) {
	under := ptr.Ptr(AgeGroupUnder15)
	over := ptr.Ptr(AgeGroupOver15)

	appointments := []*Appointment{
		rcAppointment("10:00", under, StatusPending),
		rcAppointment("10:00", under, StatusConfirmed),
		rcAppointment("10:00", over, StatusPending),
		rcAppointment("11:00", over, StatusPending),
	}

	buckets := BuildBucketCapacities(appointments, DefaultSlotsUnder15, DefaultSlotsOver15)

	b10, ok := FindBucket(buckets, "10:00")
	require.True(t, ok)
	assert.Equal(t, 4, b10.RemainingUnder15())
	assert.Equal(t, 8, b10.RemainingOver15())
	assert.Equal(t, 12, b10.RemainingFor(nil))

	b11, ok := FindBucket(buckets, "11:00")
	require.True(t, ok)
	assert.Equal(t, 6, b11.RemainingUnder15())
	assert.Equal(t, 8, b11.RemainingOver15())

	// Остальные слоты не затронуты
	b09, ok := FindBucket(buckets, "09:00")
	require.True(t, ok)
	assert.Equal(t, 15, b09.RemainingFor(nil))
}

func TestBuildBucketCapacities_CancelledNeverCounts(t *testing.T) {
	under := ptr.Ptr(AgeGroupUnder15)

	appointments := []*Appointment{
		rcAppointment("10:00", under, StatusCancelled),
		rcAppointment("10:00", under, StatusNoShow),
	}

	buckets := BuildBucketCapacities(appointments, DefaultSlotsUnder15, DefaultSlotsOver15)

	b10, ok := FindBucket(buckets, "10:00")
	require.True(t, ok)
	// no_show занимает место, cancelled не занимает
	assert.Equal(t, 5, b10.RemainingUnder15())
}

func TestBuildBucketCapacities_UnknownAgeCountsIntoOver15(t *testing.T) {
	appointments := []*Appointment{
		rcAppointment("09:00", nil, StatusPending),
	}

	buckets := BuildBucketCapacities(appointments, DefaultSlotsUnder15, DefaultSlotsOver15)

	b09, ok := FindBucket(buckets, "09:00")
	require.True(t, ok)
	assert.Equal(t, 6, b09.RemainingUnder15())
	assert.Equal(t, 8, b09.RemainingOver15())
}

func TestBucketCapacity_PoolExhaustion(t *testing.T) {
	c := BucketCapacity{
		StartTime:        "10:00",
		AllowanceUnder15: 6,
		AllowanceOver15:  9,
		BookedUnder15:    6,
		BookedOver15:     3,
	}

	under := ptr.Ptr(AgeGroupUnder15)
	over := ptr.Ptr(AgeGroupOver15)

	assert.False(t, c.AvailableFor(under))
	assert.True(t, c.AvailableFor(over))
	assert.Equal(t, 6, c.RemainingFor(nil))

	// Перебронированный пул не уходит в минус
	c.BookedUnder15 = 8
	assert.Equal(t, 0, c.RemainingUnder15())
	assert.Equal(t, 6, c.RemainingFor(nil))
}

func TestAgeGroupForAge(t *testing.T) {
	assert.Equal(t, AgeGroupUnder15, AgeGroupForAge(0))
	assert.Equal(t, AgeGroupUnder15, AgeGroupForAge(14))
	assert.Equal(t, AgeGroupOver15, AgeGroupForAge(15))
	assert.Equal(t, AgeGroupOver15, AgeGroupForAge(64))
}

func TestAgeFromDateOfBirth(t *testing.T) {
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		dob  time.Time
		want int
	}{
		{name: "birthday passed this year", dob: time.Date(2011, 3, 1, 0, 0, 0, 0, time.UTC), want: 15},
		{name: "birthday later this year", dob: time.Date(2011, 9, 1, 0, 0, 0, 0, time.UTC), want: 14},
		{name: "birthday today", dob: time.Date(2011, 6, 15, 0, 0, 0, 0, time.UTC), want: 15},
		{name: "infant", dob: time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC), want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AgeFromDateOfBirth(tt.dob, now))
		})
	}
}

func TestAppointmentConfig_Allowances(t *testing.T) {
	var nilCfg *AppointmentConfig
	assert.Equal(t, DefaultSlotsUnder15, nilCfg.AllowanceUnder15())
	assert.Equal(t, DefaultSlotsOver15, nilCfg.AllowanceOver15())
	assert.False(t, nilCfg.ClosesDate())

	cfg := &AppointmentConfig{
		IsAvailable:  true,
		SlotsUnder15: ptr.Ptr(2),
		SlotsOver15:  ptr.Ptr(4),
	}
	assert.Equal(t, 2, cfg.AllowanceUnder15())
	assert.Equal(t, 4, cfg.AllowanceOver15())
	assert.False(t, cfg.ClosesDate())

	closed := &AppointmentConfig{IsAvailable: false}
	assert.True(t, closed.ClosesDate())
}
