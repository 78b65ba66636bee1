package get_available_slots

import (
	"github.com/velikhov/CSP-BookingService/internal/domain"
	getAvailableSlots "github.com/velikhov/CSP-BookingService/internal/usecase/get_available_slots"
)

// SlotResponse HTTP модель одного временного слота
type SlotResponse struct {
	Time                 string  `json:"time"` // "10:00"
	Available            bool    `json:"available"`
	AvailableForAgeGroup *string `json:"availableForAgeGroup,omitempty"` // "<15" | "15+"
	SlotCount            *int    `json:"slotCount,omitempty"`
}

// AvailableSlotsResponse HTTP модель ответа с доступными слотами
type AvailableSlotsResponse struct {
	Date               string         `json:"date"` // "2026-03-03"
	LocationType       string         `json:"locationType"`
	OutreachLocationID *int64         `json:"outreachLocationId,omitempty"`
	DateAvailable      bool           `json:"dateAvailable"`
	Slots              []SlotResponse `json:"slots"`
	Message            string         `json:"message,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]SlotResponse, 0, len(resp.Slots))
	for _, slot := range resp.Slots {
		sr := SlotResponse{
			Time:      slot.StartTime.String(),
			Available: slot.Available,
			SlotCount: slot.SlotCount,
		}
		if slot.AgeGroup != nil {
			group := string(*slot.AgeGroup)
			sr.AvailableForAgeGroup = &group
		}
		slots = append(slots, sr)
	}

	return &AvailableSlotsResponse{
		Date:               resp.Date.Format(domain.DateFormat),
		LocationType:       string(resp.LocationType),
		OutreachLocationID: resp.OutreachLocationID,
		DateAvailable:      resp.DateAvailable,
		Slots:              slots,
		Message:            resp.Message,
	}
}
