package list_outreach_locations

import (
	"context"

	"github.com/velikhov/CSP-BookingService/internal/service/locations/models"
)

type LocationService interface {
	ListActive(ctx context.Context) (*models.LocationListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
