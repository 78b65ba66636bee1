package reschedule_appointment

import (
	"fmt"
	"time"

	"github.com/velikhov/CSP-BookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.AppointmentID <= 0 {
		return fmt.Errorf("%w: appointmentID must be positive", ErrInvalidInput)
	}

	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.NewDate.IsZero() {
		return fmt.Errorf("%w: new date is required", ErrInvalidInput)
	}

	if !domain.IsValidTimeBucket(req.NewStartTime) {
		return fmt.Errorf("%w: start time %q is not a valid slot", ErrInvalidInput, req.NewStartTime)
	}

	return nil
}

// truncateToDay обнуляет компонент времени: дата трактуется
// как настенный календарный день
func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
