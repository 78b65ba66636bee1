package reschedule_appointment

import (
	"context"
	"time"

	"github.com/velikhov/CSP-BookingService/internal/domain"
	"github.com/velikhov/CSP-BookingService/internal/integrations/notifyservice"
	"github.com/velikhov/CSP-BookingService/pkg/types"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	// GetByDateAndLocation получает записи на дату; внутри транзакции
	// строки блокируются до её завершения
	GetByDateAndLocation(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error)
	// Reschedule переносит запись на новые дату и время со сбросом статуса
	Reschedule(ctx context.Context, id int64, date time.Time, startTime types.TimeString) error
}

// ConfigRepository интерфейс репозитория переопределений конфигурации
type ConfigRepository interface {
	GetByDateAndLocation(ctx context.Context, date time.Time, locationType domain.LocationType) (*domain.AppointmentConfig, error)
}

// LocationRepository интерфейс справочника выездных площадок
type LocationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.OutreachLocation, error)
}

// NotifyClient интерфейс клиента NotifyService
type NotifyClient interface {
	StatusChanged(ctx context.Context, n notifyservice.StatusChangedNotification) error
}

// TxManager интерфейс менеджера транзакций
type TxManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
