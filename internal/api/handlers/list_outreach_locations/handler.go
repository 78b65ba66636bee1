package list_outreach_locations

import (
	"net/http"

	"github.com/velikhov/CSP-BookingService/internal/api/handlers"
)

type Handler struct {
	service LocationService
	logger  Logger
}

func NewHandler(service LocationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/outreach-locations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListActive(r.Context())
	if err != nil {
		h.logger.Error("GET /outreach-locations - Failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /outreach-locations - Retrieved %d locations", len(result.Locations))
	handlers.RespondJSON(w, http.StatusOK, result)
}
