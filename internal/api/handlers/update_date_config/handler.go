package update_date_config

import (
	"errors"
	"net/http"

	"github.com/velikhov/CSP-BookingService/internal/api/handlers"
	"github.com/velikhov/CSP-BookingService/internal/api/middleware"
	configService "github.com/velikhov/CSP-BookingService/internal/service/config"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidInput       = "некорректные данные конфигурации"
	msgForbidden          = "доступ запрещен"
	msgMissingUserID      = "отсутствует ID пользователя"
)

type Handler struct {
	service ConfigService
	logger  Logger
}

func NewHandler(service ConfigService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/appointment-config
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /appointment-config - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req UpdateDateConfigRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /appointment-config - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest(userID)
	if err != nil {
		h.logger.Warn("PUT /appointment-config - Failed to parse date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.UpsertDateConfig(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, configService.ErrInvalidInput):
			h.logger.Warn("PUT /appointment-config - Invalid input: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, configService.ErrAccessDenied):
			h.logger.Warn("PUT /appointment-config - Access denied: user_id=%d", userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("PUT /appointment-config - Failed: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /appointment-config - Saved config id=%d: user_id=%d", result.ID, userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
