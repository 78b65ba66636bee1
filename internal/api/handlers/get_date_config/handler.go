package get_date_config

import (
	"errors"
	"net/http"
	"time"

	"github.com/velikhov/CSP-BookingService/internal/api/handlers"
	"github.com/velikhov/CSP-BookingService/internal/domain"
	configService "github.com/velikhov/CSP-BookingService/internal/service/config"
	"github.com/velikhov/CSP-BookingService/internal/service/config/models"
)

const (
	msgInvalidDate     = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidLocation = "некорректный тип локации"
	msgNotFound        = "переопределение на эту дату не задано"
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

// Handle GET /api/v1/appointment-config?date=YYYY-MM-DD&locationType=...
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	date, err := time.Parse(domain.DateFormat, query.Get("date"))
	if err != nil {
		h.logger.Warn("GET /appointment-config - Invalid date %q: %v", query.Get("date"), err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.GetDateConfig(r.Context(), &models.GetDateConfigRequest{
		Date:         date,
		LocationType: query.Get("locationType"),
	})
	if err != nil {
		switch {
		case errors.Is(err, configService.ErrInvalidInput):
			h.logger.Warn("GET /appointment-config - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidLocation)

		case errors.Is(err, configService.ErrConfigNotFound):
			h.logger.Info("GET /appointment-config - No override for date=%s, location=%s",
				query.Get("date"), query.Get("locationType"))
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /appointment-config - Failed: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /appointment-config - Retrieved config id=%d", result.ID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
