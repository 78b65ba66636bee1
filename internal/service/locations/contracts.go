package locations

import (
	"context"

	"github.com/velikhov/CSP-BookingService/internal/domain"
)

// LocationRepository интерфейс справочника выездных площадок
type LocationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.OutreachLocation, error)
	ListActive(ctx context.Context) ([]*domain.OutreachLocation, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
