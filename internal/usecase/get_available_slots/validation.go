package get_available_slots

import "fmt"

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

	if req.OutreachLocationID != nil && *req.OutreachLocationID <= 0 {
		return fmt.Errorf("%w: outreachLocationID must be positive", ErrInvalidInput)
	}

	return nil
}
