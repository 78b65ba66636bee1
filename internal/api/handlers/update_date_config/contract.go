package update_date_config

import (
	"context"

	"github.com/velikhov/CSP-BookingService/internal/service/config/models"
)

type ConfigService interface {
	UpsertDateConfig(ctx context.Context, req *models.UpsertDateConfigRequest) (*models.DateConfigResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
