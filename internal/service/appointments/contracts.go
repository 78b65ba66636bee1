package appointments

import (
	"context"

	"github.com/velikhov/CSP-BookingService/internal/domain"
	"github.com/velikhov/CSP-BookingService/internal/integrations/identityservice"
	"github.com/velikhov/CSP-BookingService/internal/integrations/notifyservice"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	GetByUserID(ctx context.Context, userID int64, status *domain.AppointmentStatus) ([]*domain.Appointment, error)
	UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) error
	Cancel(ctx context.Context, id int64, reason string) error
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
	StatusChanged(ctx context.Context, n notifyservice.StatusChangedNotification) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
