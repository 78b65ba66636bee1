package create_appointment

import (
	"time"

	"github.com/velikhov/CSP-BookingService/internal/domain"
	createAppointment "github.com/velikhov/CSP-BookingService/internal/usecase/create_appointment"
	"github.com/velikhov/CSP-BookingService/pkg/types"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	AppointmentDate    string  `json:"appointmentDate"` // "2026-03-03"
	AppointmentTime    string  `json:"appointmentTime"` // "10:00"
	LocationType       string  `json:"locationType"`
	OutreachLocationID *int64  `json:"outreachLocationId,omitempty"`
	Purpose            string  `json:"purpose"`
	Notes              *string `json:"notes,omitempty"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID                 int64    `json:"id"`
	UserID             int64    `json:"userId"`
	AppointmentDate    string   `json:"appointmentDate"`
	AppointmentTime    string   `json:"appointmentTime"`
	LocationType       string   `json:"locationType"`
	OutreachLocationID *int64   `json:"outreachLocationId,omitempty"`
	LocationName       string   `json:"locationName"`
	AgeGroup           *string  `json:"ageGroup,omitempty"`
	Status             string   `json:"status"`
	Purpose            string   `json:"purpose"`
	Notes              *string  `json:"notes,omitempty"`
	ServiceFee         *float64 `json:"serviceFee,omitempty"`
	CreatedAt          string   `json:"createdAt"`
	UpdatedAt          string   `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateAppointmentRequest) ToUseCaseRequest(userID int64) (*createAppointment.Request, error) {
	// Парсим дату
	date, err := time.Parse(domain.DateFormat, r.AppointmentDate)
	if err != nil {
		return nil, err
	}

	// Парсим время
	startTime, err := types.NewTimeStringFromString(r.AppointmentTime)
	if err != nil {
		return nil, err
	}

	return &createAppointment.Request{
		UserID:             userID,
		Date:               date,
		StartTime:          startTime,
		LocationType:       domain.LocationType(r.LocationType),
		OutreachLocationID: r.OutreachLocationID,
		Purpose:            r.Purpose,
		Notes:              r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createAppointment.Response) *AppointmentResponse {
	appt := resp.Appointment

	result := &AppointmentResponse{
		ID:                 appt.ID,
		UserID:             appt.UserID,
		AppointmentDate:    appt.AppointmentDate.Format(domain.DateFormat),
		AppointmentTime:    appt.StartTime.String(),
		LocationType:       string(appt.LocationType),
		OutreachLocationID: appt.OutreachLocationID,
		LocationName:       resp.LocationName,
		Status:             string(appt.Status),
		Purpose:            appt.Purpose,
		Notes:              appt.Notes,
		ServiceFee:         appt.ServiceFee,
		CreatedAt:          appt.CreatedAt.Format(time.RFC3339),
		UpdatedAt:          appt.UpdatedAt.Format(time.RFC3339),
	}

	if appt.AgeGroup != nil {
		group := string(*appt.AgeGroup)
		result.AgeGroup = &group
	}

	return result
}
