package locations

import (
	"context"
	"errors"
	"fmt"

	locationRepo "github.com/velikhov/CSP-BookingService/internal/infra/storage/outreachlocation"
	"github.com/velikhov/CSP-BookingService/internal/service/locations/models"
)

// Service сервис справочника выездных площадок
type Service struct {
	locationRepo LocationRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса площадок
func NewService(locationRepo LocationRepository, logger Logger) *Service {
	return &Service{
		locationRepo: locationRepo,
		logger:       logger,
	}
}

// GetByID получает площадку по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.LocationResponse, error) {
	s.logger.Info("GetByID: fetching outreach location id=%d", id)

	location, err := s.locationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, locationRepo.ErrLocationNotFound) {
			s.logger.Warn("GetByID: outreach location id=%d not found", id)
			return nil, ErrLocationNotFound
		}
		s.logger.Error("GetByID: repository error for location id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainLocation(location), nil
}

// ListActive получает все активные площадки, сгруппированные по округам
func (s *Service) ListActive(ctx context.Context) (*models.LocationListResponse, error) {
	s.logger.Info("ListActive: fetching active outreach locations")

	locations, err := s.locationRepo.ListActive(ctx)
	if err != nil {
		s.logger.Error("ListActive: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListActive - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListActive: fetched %d locations", len(locations))
	return models.FromDomainLocationList(locations), nil
}
