package get_user_appointments

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/velikhov/CSP-BookingService/internal/api/handlers"
	"github.com/velikhov/CSP-BookingService/internal/api/middleware"
	"github.com/velikhov/CSP-BookingService/internal/service/appointments"
	"github.com/velikhov/CSP-BookingService/internal/service/appointments/models"
)

const (
	msgInvalidUserID = "некорректный ID пользователя"
	msgInvalidStatus = "некорректный статус записи"
	msgMissingUserID = "отсутствует ID пользователя"
	msgForbidden     = "доступ запрещен"
)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/users/{userId}/appointments?status=...
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	targetUserID, err := strconv.ParseInt(vars["userId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /users/{id}/appointments - Invalid user ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidUserID)
		return
	}

	callerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /users/{id}/appointments - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Историю своих записей видит только сам пользователь
	if callerID != targetUserID {
		h.logger.Warn("GET /users/{id}/appointments - Access denied: target=%d, caller=%d", targetUserID, callerID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	var status *string
	if raw := r.URL.Query().Get("status"); raw != "" {
		status = &raw
	}

	result, err := h.service.GetUserAppointments(r.Context(), &models.GetUserAppointmentsRequest{
		UserID: targetUserID,
		Status: status,
	})
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("GET /users/{id}/appointments - Invalid status: user_id=%d", targetUserID)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /users/{id}/appointments - Failed: user_id=%d, error=%v", targetUserID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /users/{id}/appointments - Retrieved %d appointments: user_id=%d",
		len(result.Appointments), targetUserID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
