package reschedule_appointment

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/velikhov/CSP-BookingService/internal/api/handlers"
	"github.com/velikhov/CSP-BookingService/internal/api/middleware"
	rescheduleAppointment "github.com/velikhov/CSP-BookingService/internal/usecase/reschedule_appointment"
)

const (
	msgInvalidAppointmentID = "некорректный ID записи"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidDateOrTime    = "некорректные дата или время, ожидается YYYY-MM-DD и HH:MM"
	msgInvalidInput         = "некорректные данные переноса"
	msgNotFound             = "запись не найдена"
	msgForbidden            = "доступ запрещен"
	msgFinalized            = "завершённую или отменённую запись нельзя перенести"
	msgDateNotAvailable     = "запись на эту дату недоступна"
	msgSlotNotAvailable     = "выбранный временной слот недоступен"
	msgMissingUserID        = "отсутствует ID пользователя"
)

type Handler struct {
	useCase RescheduleAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase RescheduleAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/appointments/{appointmentId}/reschedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	appointmentID, err := strconv.ParseInt(vars["appointmentId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /appointments/{id}/reschedule - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /appointments/{id}/reschedule - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req RescheduleAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /appointments/{id}/reschedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(appointmentID, userID)
	if err != nil {
		h.logger.Warn("PATCH /appointments/{id}/reschedule - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, rescheduleAppointment.ErrInvalidInput):
			h.logger.Warn("PATCH /appointments/{id}/reschedule - Invalid input: appointment_id=%d, error=%v",
				appointmentID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, rescheduleAppointment.ErrAppointmentNotFound):
			h.logger.Warn("PATCH /appointments/{id}/reschedule - Not found: appointment_id=%d", appointmentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, rescheduleAppointment.ErrNotOwner):
			h.logger.Warn("PATCH /appointments/{id}/reschedule - Access denied: appointment_id=%d, user_id=%d",
				appointmentID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, rescheduleAppointment.ErrAppointmentFinalized):
			h.logger.Warn("PATCH /appointments/{id}/reschedule - Finalized: appointment_id=%d", appointmentID)
			handlers.RespondBadRequest(w, msgFinalized)

		case errors.Is(err, rescheduleAppointment.ErrDateNotAvailable):
			h.logger.Warn("PATCH /appointments/{id}/reschedule - Date not available: appointment_id=%d, date=%s",
				appointmentID, req.AppointmentDate)
			handlers.RespondBadRequest(w, msgDateNotAvailable)

		case errors.Is(err, rescheduleAppointment.ErrSlotNotAvailable):
			h.logger.Warn("PATCH /appointments/{id}/reschedule - Slot not available: appointment_id=%d, date=%s, time=%s",
				appointmentID, req.AppointmentDate, req.AppointmentTime)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		default:
			h.logger.Error("PATCH /appointments/{id}/reschedule - Failed: appointment_id=%d, error=%v",
				appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /appointments/{id}/reschedule - Rescheduled successfully: appointment_id=%d, user_id=%d",
		appointmentID, userID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
