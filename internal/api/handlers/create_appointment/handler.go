package create_appointment

import (
	"errors"
	"net/http"

	"github.com/velikhov/CSP-BookingService/internal/api/handlers"
	"github.com/velikhov/CSP-BookingService/internal/api/middleware"
	createAppointment "github.com/velikhov/CSP-BookingService/internal/usecase/create_appointment"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateOrTime  = "некорректные дата или время, ожидается YYYY-MM-DD и HH:MM"
	msgInvalidInput       = "некорректные данные записи"
	msgDateNotAvailable   = "запись на эту дату недоступна"
	msgSlotNotAvailable   = "выбранный временной слот недоступен"
	msgLocationNotFound   = "выездная площадка не найдена"
	msgLocationInactive   = "выездная площадка не обслуживается"
	msgMissingUserID      = "отсутствует ID пользователя"
)

type Handler struct {
	useCase CreateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase CreateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /appointments - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и времени)
	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /appointments - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createAppointment.ErrInvalidInput):
			h.logger.Warn("POST /appointments - Invalid input: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createAppointment.ErrDateNotAvailable):
			h.logger.Warn("POST /appointments - Date not available: user_id=%d, date=%s", userID, req.AppointmentDate)
			handlers.RespondBadRequest(w, msgDateNotAvailable)

		case errors.Is(err, createAppointment.ErrSlotNotAvailable):
			h.logger.Warn("POST /appointments - Slot not available: user_id=%d, date=%s, time=%s",
				userID, req.AppointmentDate, req.AppointmentTime)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, createAppointment.ErrLocationNotFound):
			h.logger.Warn("POST /appointments - Location not found: user_id=%d", userID)
			handlers.RespondNotFound(w, msgLocationNotFound)

		case errors.Is(err, createAppointment.ErrLocationInactive):
			h.logger.Warn("POST /appointments - Location inactive: user_id=%d", userID)
			handlers.RespondBadRequest(w, msgLocationInactive)

		default:
			h.logger.Error("POST /appointments - Failed to create appointment: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments - Appointment created successfully: appointment_id=%d, user_id=%d",
		result.Appointment.ID, userID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
