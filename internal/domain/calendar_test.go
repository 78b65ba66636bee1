package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// Неделя 2026-03-02 (понедельник) .. 2026-03-08 (воскресенье)
func weekOf(t *testing.T) map[time.Weekday]time.Time {
	t.Helper()
	days := make(map[time.Weekday]time.Time, 7)
	for i := 0; i < 7; i++ {
		d := time.Date(2026, 3, 2+i, 0, 0, 0, 0, time.UTC)
		days[d.Weekday()] = d
	}
	return days
}

func TestIsResourceCenterDateAvailable_AllWeekdays(t *testing.T) {
	days := weekOf(t)

	expected := map[time.Weekday]bool{
		time.Monday:    false,
		time.Tuesday:   true,
		time.Wednesday: false,
		time.Thursday:  true,
		time.Friday:    false,
		time.Saturday:  false,
		time.Sunday:    false,
	}

	for wd, date := range days {
		assert.Equal(t, expected[wd], IsResourceCenterDateAvailable(date), "weekday %s", wd)
	}
}

func TestIsOutreachDateAvailable_AllWeekdays(t *testing.T) {
	days := weekOf(t)

	expected := map[time.Weekday]bool{
		time.Monday:    true,
		time.Tuesday:   true,
		time.Wednesday: true,
		time.Thursday:  true,
		time.Friday:    true,
		time.Saturday:  false,
		time.Sunday:    false,
	}

	for wd, date := range days {
		assert.Equal(t, expected[wd], IsOutreachDateAvailable(date), "weekday %s", wd)
	}
}

func TestIsDateAvailableFor(t *testing.T) {
	tuesday := time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC)
	friday := time.Date(2026, 3, 6, 0, 0, 0, 0, time.UTC)

	assert.True(t, IsDateAvailableFor(LocationResourceCenter, tuesday))
	assert.False(t, IsDateAvailableFor(LocationResourceCenter, friday))
	assert.True(t, IsDateAvailableFor(LocationOutreach, friday))
	assert.False(t, IsDateAvailableFor(LocationType("warehouse"), tuesday))
}
