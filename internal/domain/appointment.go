package domain

import (
	"time"

	"github.com/velikhov/CSP-BookingService/pkg/types"
)

// AppointmentStatus represents the lifecycle status of an appointment
type AppointmentStatus string

const (
	StatusPending     AppointmentStatus = "pending"
	StatusConfirmed   AppointmentStatus = "confirmed"
	StatusRescheduled AppointmentStatus = "rescheduled"
	StatusCheckedIn   AppointmentStatus = "checked_in"
	StatusCheckedOut  AppointmentStatus = "checked_out"
	StatusCompleted   AppointmentStatus = "completed"
	StatusCancelled   AppointmentStatus = "cancelled"
	StatusNoShow      AppointmentStatus = "no_show"
)

// Appointment represents one citizen service reservation
type Appointment struct {
	ID                 int64
	UserID             int64
	AppointmentDate    time.Time // календарный день, компонент времени обнулён
	StartTime          types.TimeString
	LocationType       LocationType
	OutreachLocationID *int64    // только для outreach
	AgeGroup           *AgeGroup // только для resource center, задаётся один раз при создании
	Status             AppointmentStatus
	Purpose            string
	Notes              *string
	ServiceFee         *float64 // только для resource center

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsCancelled returns true if the appointment has been cancelled
func (a *Appointment) IsCancelled() bool {
	return a.Status == StatusCancelled
}

// CountsAgainstCapacity returns true if the appointment consumes slot capacity.
// Отменённые записи никогда не учитываются при подсчёте занятых мест.
func (a *Appointment) CountsAgainstCapacity() bool {
	return a.Status != StatusCancelled
}

// CanBeRescheduled returns true if the appointment may be moved to another slot.
// completed и cancelled терминальны, перенос из них запрещён.
func (a *Appointment) CanBeRescheduled() bool {
	return a.Status != StatusCompleted && a.Status != StatusCancelled
}

// CanBeCancelled returns true if the appointment can be cancelled
func (a *Appointment) CanBeCancelled() bool {
	return a.Status != StatusCompleted && a.Status != StatusCancelled
}

// IsSameSlot проверяет, что запись занимает именно этот слот (дата и время)
func (a *Appointment) IsSameSlot(date time.Time, startTime types.TimeString) bool {
	y1, m1, d1 := a.AppointmentDate.Date()
	y2, m2, d2 := date.Date()
	return y1 == y2 && m1 == m2 && d1 == d2 && a.StartTime == startTime
}

// AppointmentsFilter фильтр для выборки записей на дату и локацию
type AppointmentsFilter struct {
	Date               time.Time
	LocationType       LocationType
	OutreachLocationID *int64             // опционально, для outreach
	Status             *AppointmentStatus // опционально
	IncludeCancelled   bool               // включать ли отменённые записи
}

// ValidStatuses допустимые значения статуса записи
var ValidStatuses = []AppointmentStatus{
	StatusPending,
	StatusConfirmed,
	StatusRescheduled,
	StatusCheckedIn,
	StatusCheckedOut,
	StatusCompleted,
	StatusCancelled,
	StatusNoShow,
}

// IsValidStatus проверяет, что строка является допустимым статусом
func IsValidStatus(s string) bool {
	for _, status := range ValidStatuses {
		if string(status) == s {
			return true
		}
	}
	return false
}
