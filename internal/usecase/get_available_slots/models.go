package get_available_slots

import (
	"time"

	"github.com/velikhov/CSP-BookingService/internal/domain"
	"github.com/velikhov/CSP-BookingService/pkg/types"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	UserID             int64               // ID пользователя (для определения возрастной группы)
	Date               time.Time           // Дата, на которую запрашиваются слоты (без времени)
	LocationType       domain.LocationType // Тип локации
	OutreachLocationID *int64              // ID выездной площадки (опционально, только для outreach)
}

// Response модель ответа со списком слотов на дату
type Response struct {
	Date               time.Time
	LocationType       domain.LocationType
	OutreachLocationID *int64
	DateAvailable      bool   // false = дата закрыта целиком (календарь или конфигурация)
	Slots              []Slot // Всегда все 8 слотов дня
	Message            string // Причина недоступности даты, если DateAvailable = false
}

// Slot модель доступности одного временного слота
type Slot struct {
	StartTime types.TimeString
	Available bool
	AgeGroup  *domain.AgeGroup // возрастная группа, для которой посчитан остаток (nil = возраст неизвестен)
	SlotCount *int             // остаток мест; nil для outreach, где мест не считают
}
