package reschedule_appointment

import (
	"time"

	"github.com/velikhov/CSP-BookingService/internal/domain"
	"github.com/velikhov/CSP-BookingService/pkg/types"
)

// Request запрос на перенос записи
type Request struct {
	AppointmentID int64
	UserID        int64
	NewDate       time.Time
	NewStartTime  types.TimeString
}

// Response результат переноса записи
type Response struct {
	Appointment *domain.Appointment
}
