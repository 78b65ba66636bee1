package create_appointment

import (
	"fmt"

	"github.com/velikhov/CSP-BookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if !req.LocationType.IsValid() {
		return fmt.Errorf("%w: unknown location type %q", ErrInvalidInput, req.LocationType)
	}

	// Время начала должно попадать в один из восьми часовых слотов дня
	if !domain.IsValidTimeBucket(req.StartTime) {
		return fmt.Errorf("%w: start time %q is not a valid slot", ErrInvalidInput, req.StartTime)
	}

	switch req.LocationType {
	case domain.LocationOutreach:
		if req.OutreachLocationID == nil || *req.OutreachLocationID <= 0 {
			return fmt.Errorf("%w: outreachLocationID is required for outreach appointments", ErrInvalidInput)
		}
	case domain.LocationResourceCenter:
		if req.OutreachLocationID != nil {
			return fmt.Errorf("%w: outreachLocationID is not applicable to resource center appointments", ErrInvalidInput)
		}
	}

	if req.Purpose == "" {
		return fmt.Errorf("%w: purpose is required", ErrInvalidInput)
	}

	if len(req.Purpose) > domain.MaxPurposeLength {
		return fmt.Errorf("%w: purpose exceeds %d characters", ErrInvalidInput, domain.MaxPurposeLength)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}
