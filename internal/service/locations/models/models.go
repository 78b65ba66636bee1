package models

import (
	"github.com/velikhov/CSP-BookingService/internal/domain"
)

// LocationResponse ответ с данными выездной площадки
type LocationResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	County   string `json:"county"`
	IsActive bool   `json:"isActive"`
}

// LocationListResponse ответ со списком площадок
type LocationListResponse struct {
	Locations []LocationResponse `json:"locations"`
}

// FromDomainLocation конвертирует domain модель в DTO
func FromDomainLocation(l *domain.OutreachLocation) *LocationResponse {
	if l == nil {
		return nil
	}

	return &LocationResponse{
		ID:       l.ID,
		Name:     l.Name,
		County:   l.County,
		IsActive: l.IsActive,
	}
}

// FromDomainLocationList конвертирует список domain моделей в DTO
func FromDomainLocationList(locations []*domain.OutreachLocation) *LocationListResponse {
	result := &LocationListResponse{
		Locations: make([]LocationResponse, 0, len(locations)),
	}

	for _, l := range locations {
		if resp := FromDomainLocation(l); resp != nil {
			result.Locations = append(result.Locations, *resp)
		}
	}

	return result
}
