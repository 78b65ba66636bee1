package models

import (
	"errors"
	"time"

	"github.com/velikhov/CSP-BookingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid appointment status")
)

// Request модели

// CancelAppointmentRequest запрос на отмену записи
type CancelAppointmentRequest struct {
	UserID             int64  `json:"userId"`
	CancellationReason string `json:"cancellationReason"`
}

// UpdateStatusRequest запрос на обновление статуса записи
type UpdateStatusRequest struct {
	UserID int64  `json:"userId"`
	Status string `json:"status"`
}

// GetUserAppointmentsRequest запрос на получение записей пользователя
type GetUserAppointmentsRequest struct {
	UserID int64   `json:"userId"`
	Status *string `json:"status,omitempty"`
}

// Response модели

// AppointmentResponse ответ с данными записи
type AppointmentResponse struct {
	ID                 int64    `json:"id"`
	UserID             int64    `json:"userId"`
	AppointmentDate    string   `json:"appointmentDate"` // "2026-03-03"
	StartTime          string   `json:"startTime"`       // "10:00"
	LocationType       string   `json:"locationType"`
	OutreachLocationID *int64   `json:"outreachLocationId,omitempty"`
	AgeGroup           *string  `json:"ageGroup,omitempty"`
	Status             string   `json:"status"`
	Purpose            string   `json:"purpose"`
	Notes              *string  `json:"notes,omitempty"`
	ServiceFee         *float64 `json:"serviceFee,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AppointmentListResponse ответ со списком записей
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
}

// Методы конвертации

// ToDomainAppointmentStatus конвертирует строку в domain статус
func ToDomainAppointmentStatus(s string) (domain.AppointmentStatus, error) {
	if !domain.IsValidStatus(s) {
		return "", ErrInvalidStatus
	}
	return domain.AppointmentStatus(s), nil
}

// FromDomainAppointment конвертирует domain модель в DTO
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	if a == nil {
		return nil
	}

	resp := &AppointmentResponse{
		ID:                 a.ID,
		UserID:             a.UserID,
		AppointmentDate:    a.AppointmentDate.Format(domain.DateFormat),
		StartTime:          a.StartTime.String(),
		LocationType:       string(a.LocationType),
		OutreachLocationID: a.OutreachLocationID,
		Status:             string(a.Status),
		Purpose:            a.Purpose,
		Notes:              a.Notes,
		ServiceFee:         a.ServiceFee,
		CancellationReason: a.CancellationReason,
		CreatedAt:          a.CreatedAt,
		UpdatedAt:          a.UpdatedAt,
	}

	if a.AgeGroup != nil {
		group := string(*a.AgeGroup)
		resp.AgeGroup = &group
	}

	// Конвертируем CancelledAt в строку ISO 8601
	if a.CancelledAt != nil {
		cancelledStr := a.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainAppointmentList конвертирует список domain моделей в DTO
func FromDomainAppointmentList(appointments []*domain.Appointment) *AppointmentListResponse {
	result := &AppointmentListResponse{
		Appointments: make([]AppointmentResponse, 0, len(appointments)),
	}

	for _, a := range appointments {
		if resp := FromDomainAppointment(a); resp != nil {
			result.Appointments = append(result.Appointments, *resp)
		}
	}

	return result
}
