package update_date_config

import (
	"time"

	"github.com/velikhov/CSP-BookingService/internal/domain"
	"github.com/velikhov/CSP-BookingService/internal/service/config/models"
)

// UpdateDateConfigRequest HTTP request model
type UpdateDateConfigRequest struct {
	Date         string `json:"date"` // "2026-03-03"
	LocationType string `json:"locationType"`
	IsAvailable  bool   `json:"isAvailable"`
	SlotsUnder15 *int   `json:"slotsUnder15,omitempty"`
	SlotsOver15  *int   `json:"slotsOver15,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateDateConfigRequest) ToServiceRequest(userID int64) (*models.UpsertDateConfigRequest, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	return &models.UpsertDateConfigRequest{
		UserID:       userID,
		Date:         date,
		LocationType: r.LocationType,
		IsAvailable:  r.IsAvailable,
		SlotsUnder15: r.SlotsUnder15,
		SlotsOver15:  r.SlotsOver15,
	}, nil
}
