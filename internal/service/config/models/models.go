package models

import (
	"time"

	"github.com/velikhov/CSP-BookingService/internal/domain"
)

// Request модели

// GetDateConfigRequest запрос на получение переопределения на дату
type GetDateConfigRequest struct {
	Date         time.Time `json:"date"`
	LocationType string    `json:"locationType"`
}

// UpsertDateConfigRequest запрос на установку переопределения на дату
type UpsertDateConfigRequest struct {
	UserID       int64     `json:"userId"`
	Date         time.Time `json:"date"`
	LocationType string    `json:"locationType"`
	IsAvailable  bool      `json:"isAvailable"`
	SlotsUnder15 *int      `json:"slotsUnder15,omitempty"`
	SlotsOver15  *int      `json:"slotsOver15,omitempty"`
}

// ToDomain конвертирует request в domain модель
func (r *UpsertDateConfigRequest) ToDomain() *domain.AppointmentConfig {
	return &domain.AppointmentConfig{
		Date:         r.Date,
		LocationType: domain.LocationType(r.LocationType),
		IsAvailable:  r.IsAvailable,
		SlotsUnder15: r.SlotsUnder15,
		SlotsOver15:  r.SlotsOver15,
	}
}

// Response модели

// DateConfigResponse ответ с переопределением на дату
type DateConfigResponse struct {
	ID           int64  `json:"id"`
	Date         string `json:"date"` // "2026-03-03"
	LocationType string `json:"locationType"`
	IsAvailable  bool   `json:"isAvailable"`
	SlotsUnder15 *int   `json:"slotsUnder15,omitempty"`
	SlotsOver15  *int   `json:"slotsOver15,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// FromDomainConfig конвертирует domain модель в DTO
func FromDomainConfig(cfg *domain.AppointmentConfig) *DateConfigResponse {
	if cfg == nil {
		return nil
	}

	return &DateConfigResponse{
		ID:           cfg.ID,
		Date:         cfg.Date.Format(domain.DateFormat),
		LocationType: string(cfg.LocationType),
		IsAvailable:  cfg.IsAvailable,
		SlotsUnder15: cfg.SlotsUnder15,
		SlotsOver15:  cfg.SlotsOver15,
		CreatedAt:    cfg.CreatedAt,
		UpdatedAt:    cfg.UpdatedAt,
	}
}
