package reschedule_appointment

import (
	"time"

	"github.com/velikhov/CSP-BookingService/internal/domain"
	rescheduleAppointment "github.com/velikhov/CSP-BookingService/internal/usecase/reschedule_appointment"
	"github.com/velikhov/CSP-BookingService/pkg/types"
)

// RescheduleAppointmentRequest HTTP request model
type RescheduleAppointmentRequest struct {
	AppointmentDate string `json:"appointmentDate"` // "2026-03-05"
	AppointmentTime string `json:"appointmentTime"` // "14:00"
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID                 int64    `json:"id"`
	UserID             int64    `json:"userId"`
	AppointmentDate    string   `json:"appointmentDate"`
	AppointmentTime    string   `json:"appointmentTime"`
	LocationType       string   `json:"locationType"`
	OutreachLocationID *int64   `json:"outreachLocationId,omitempty"`
	Status             string   `json:"status"`
	Purpose            string   `json:"purpose"`
	Notes              *string  `json:"notes,omitempty"`
	ServiceFee         *float64 `json:"serviceFee,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *RescheduleAppointmentRequest) ToUseCaseRequest(appointmentID, userID int64) (*rescheduleAppointment.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.AppointmentDate)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.AppointmentTime)
	if err != nil {
		return nil, err
	}

	return &rescheduleAppointment.Request{
		AppointmentID: appointmentID,
		UserID:        userID,
		NewDate:       date,
		NewStartTime:  startTime,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *rescheduleAppointment.Response) *AppointmentResponse {
	appt := resp.Appointment

	return &AppointmentResponse{
		ID:                 appt.ID,
		UserID:             appt.UserID,
		AppointmentDate:    appt.AppointmentDate.Format(domain.DateFormat),
		AppointmentTime:    appt.StartTime.String(),
		LocationType:       string(appt.LocationType),
		OutreachLocationID: appt.OutreachLocationID,
		Status:             string(appt.Status),
		Purpose:            appt.Purpose,
		Notes:              appt.Notes,
		ServiceFee:         appt.ServiceFee,
	}
}
