package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/velikhov/CSP-BookingService/internal/api/handlers"
	"github.com/velikhov/CSP-BookingService/internal/api/middleware"
	"github.com/velikhov/CSP-BookingService/internal/domain"
	getAvailableSlots "github.com/velikhov/CSP-BookingService/internal/usecase/get_available_slots"
)

const (
	msgInvalidDate       = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidLocation   = "некорректный тип локации"
	msgInvalidLocationID = "некорректный ID выездной площадки"
	msgLocationNotFound  = "выездная площадка не найдена"
	msgLocationInactive  = "выездная площадка не обслуживается"
	msgMissingUserID     = "отсутствует ID пользователя"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/available-slots?date=YYYY-MM-DD&locationType=...&outreachLocationId=...
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /available-slots - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	query := r.URL.Query()

	date, err := time.Parse(domain.DateFormat, query.Get("date"))
	if err != nil {
		h.logger.Warn("GET /available-slots - Invalid date %q: %v", query.Get("date"), err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	locationType := domain.LocationType(query.Get("locationType"))
	if !locationType.IsValid() {
		h.logger.Warn("GET /available-slots - Invalid location type %q", query.Get("locationType"))
		handlers.RespondBadRequest(w, msgInvalidLocation)
		return
	}

	var outreachLocationID *int64
	if raw := query.Get("outreachLocationId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			h.logger.Warn("GET /available-slots - Invalid outreach location id %q", raw)
			handlers.RespondBadRequest(w, msgInvalidLocationID)
			return
		}
		outreachLocationID = &id
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailableSlots.Request{
		UserID:             userID,
		Date:               date,
		LocationType:       locationType,
		OutreachLocationID: outreachLocationID,
	})
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /available-slots - Invalid input: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidLocation)

		case errors.Is(err, getAvailableSlots.ErrLocationNotFound):
			h.logger.Warn("GET /available-slots - Location not found: user_id=%d", userID)
			handlers.RespondNotFound(w, msgLocationNotFound)

		case errors.Is(err, getAvailableSlots.ErrLocationInactive):
			h.logger.Warn("GET /available-slots - Location inactive: user_id=%d", userID)
			handlers.RespondBadRequest(w, msgLocationInactive)

		default:
			h.logger.Error("GET /available-slots - Failed: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /available-slots - Computed slots: user_id=%d, date=%s, available=%t",
		userID, result.Date.Format(domain.DateFormat), result.DateAvailable)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
