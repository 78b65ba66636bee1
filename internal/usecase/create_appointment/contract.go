package create_appointment

import (
	"context"
	"time"

	"github.com/velikhov/CSP-BookingService/internal/domain"
	"github.com/velikhov/CSP-BookingService/internal/integrations/identityservice"
	"github.com/velikhov/CSP-BookingService/internal/integrations/notifyservice"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	// Create создает запись и возвращает её с заполненным id
	Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error)
	// GetByDateAndLocation получает записи на дату; внутри транзакции
	// строки блокируются до её завершения
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

// NotifyClient интерфейс клиента NotifyService
type NotifyClient interface {
	BookingConfirmed(ctx context.Context, n notifyservice.BookingConfirmedNotification) error
}

// TxManager интерфейс менеджера транзакций.
// Проверка занятости и вставка записи выполняются в одной
// serializable-транзакции.
type TxManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
