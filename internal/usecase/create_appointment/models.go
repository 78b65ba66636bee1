package create_appointment

import (
	"time"

	"github.com/velikhov/CSP-BookingService/internal/domain"
	"github.com/velikhov/CSP-BookingService/pkg/types"
)

// Request запрос на создание записи
type Request struct {
	UserID             int64
	Date               time.Time
	StartTime          types.TimeString
	LocationType       domain.LocationType
	OutreachLocationID *int64
	Purpose            string
	Notes              *string
}

// Response результат создания записи
type Response struct {
	Appointment  *domain.Appointment
	LocationName string
}
