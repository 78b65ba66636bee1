package get_available_slots

import (
	"context"
	"time"

	"github.com/velikhov/CSP-BookingService/internal/domain"
	"github.com/velikhov/CSP-BookingService/internal/integrations/identityservice"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	// GetByDateAndLocation получает записи на дату для типа локации (без отменённых)
	GetByDateAndLocation(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error)
}

// ConfigRepository интерфейс репозитория переопределений конфигурации
type ConfigRepository interface {
	GetByDateAndLocation(ctx context.Context, date time.Time, locationType domain.LocationType) (*domain.AppointmentConfig, error)
}

// LocationRepository интерфейс справочника выездных площадок
type LocationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.OutreachLocation, error)
}

// IdentityClient интерфейс клиента IdentityService
type IdentityClient interface {
	GetProfile(ctx context.Context, userID int64) (*identityservice.Profile, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
