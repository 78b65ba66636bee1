package config

import (
	"context"
	"time"

	"github.com/velikhov/CSP-BookingService/internal/domain"
	"github.com/velikhov/CSP-BookingService/internal/integrations/identityservice"
)

// ConfigRepository интерфейс репозитория переопределений конфигурации
type ConfigRepository interface {
	GetByDateAndLocation(ctx context.Context, date time.Time, locationType domain.LocationType) (*domain.AppointmentConfig, error)
	Upsert(ctx context.Context, cfg *domain.AppointmentConfig) (*domain.AppointmentConfig, error)
}

// IdentityClient интерфейс клиента IdentityService
type IdentityClient interface {
	GetProfile(ctx context.Context, userID int64) (*identityservice.Profile, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
