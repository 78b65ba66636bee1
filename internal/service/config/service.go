package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/velikhov/CSP-BookingService/internal/domain"
	configRepo "github.com/velikhov/CSP-BookingService/internal/infra/storage/appointmentconfig"
	identityClient "github.com/velikhov/CSP-BookingService/internal/integrations/identityservice"
	"github.com/velikhov/CSP-BookingService/internal/service/config/models"
)

// Service сервис управления переопределениями календаря и ёмкости
type Service struct {
	configRepo     ConfigRepository
	identityClient IdentityClient
	logger         Logger
}

// NewService создает новый экземпляр сервиса конфигурации
func NewService(
	configRepo ConfigRepository,
	identityClient IdentityClient,
	logger Logger,
) *Service {
	return &Service{
		configRepo:     configRepo,
		identityClient: identityClient,
		logger:         logger,
	}
}

// GetDateConfig получает переопределение на дату.
// Отсутствие строки не ошибка: действует календарная политика
// и дефолтная ёмкость
func (s *Service) GetDateConfig(ctx context.Context, req *models.GetDateConfigRequest) (*models.DateConfigResponse, error) {
	s.logger.Info("GetDateConfig: fetching config for date=%s, location=%s",
		req.Date.Format(domain.DateFormat), req.LocationType)

	if err := validateDateAndLocation(req.Date, req.LocationType); err != nil {
		s.logger.Warn("GetDateConfig: validation failed: %v", err)
		return nil, err
	}

	cfg, err := s.configRepo.GetByDateAndLocation(ctx, truncateToDay(req.Date), domain.LocationType(req.LocationType))
	if err != nil {
		if errors.Is(err, configRepo.ErrConfigNotFound) {
			return nil, ErrConfigNotFound
		}
		s.logger.Error("GetDateConfig: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetDateConfig - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainConfig(cfg), nil
}

// UpsertDateConfig создает или обновляет переопределение на дату.
// Доступно только сотрудникам
func (s *Service) UpsertDateConfig(ctx context.Context, req *models.UpsertDateConfigRequest) (*models.DateConfigResponse, error) {
	s.logger.Info("UpsertDateConfig: user=%d, date=%s, location=%s, available=%t",
		req.UserID, req.Date.Format(domain.DateFormat), req.LocationType, req.IsAvailable)

	if err := validateDateAndLocation(req.Date, req.LocationType); err != nil {
		s.logger.Warn("UpsertDateConfig: validation failed: %v", err)
		return nil, err
	}

	if err := validateSlotOverrides(req); err != nil {
		s.logger.Warn("UpsertDateConfig: validation failed: %v", err)
		return nil, err
	}

	// Проверяем права доступа (только сотрудник)
	if err := s.checkStaffAccess(ctx, req.UserID); err != nil {
		s.logger.Warn("UpsertDateConfig: access denied for user=%d", req.UserID)
		return nil, err
	}

	cfg := req.ToDomain()
	cfg.Date = truncateToDay(cfg.Date)

	saved, err := s.configRepo.Upsert(ctx, cfg)
	if err != nil {
		s.logger.Error("UpsertDateConfig: repository error: %v", err)
		return nil, fmt.Errorf("%w: UpsertDateConfig - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpsertDateConfig: saved config id=%d for date=%s, location=%s",
		saved.ID, saved.Date.Format(domain.DateFormat), saved.LocationType)

	return models.FromDomainConfig(saved), nil
}

// Вспомогательные методы

// checkStaffAccess проверяет, что пользователь является сотрудником
func (s *Service) checkStaffAccess(ctx context.Context, userID int64) error {
	profile, err := s.identityClient.GetProfile(ctx, userID)
	if err != nil {
		if errors.Is(err, identityClient.ErrProfileNotFound) {
			s.logger.Warn("checkStaffAccess: profile not found for user=%d", userID)
			return ErrAccessDenied
		}
		s.logger.Error("checkStaffAccess: failed to get profile for user=%d: %v", userID, err)
		return fmt.Errorf("%w: checkStaffAccess - identity error: %v", ErrInternal, err)
	}

	if !profile.IsStaff() {
		return ErrAccessDenied
	}

	return nil
}

// validateDateAndLocation валидирует дату и тип локации
func validateDateAndLocation(date time.Time, locationType string) error {
	if date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if !domain.LocationType(locationType).IsValid() {
		return fmt.Errorf("%w: unknown location type %q", ErrInvalidInput, locationType)
	}

	return nil
}

// validateSlotOverrides валидирует переопределения ёмкости.
// Ёмкость по возрастным группам имеет смысл только для центра обслуживания.
func validateSlotOverrides(req *models.UpsertDateConfigRequest) error {
	hasOverrides := req.SlotsUnder15 != nil || req.SlotsOver15 != nil

	if hasOverrides && domain.LocationType(req.LocationType) != domain.LocationResourceCenter {
		return fmt.Errorf("%w: slot overrides apply to resource center only", ErrInvalidInput)
	}

	if req.SlotsUnder15 != nil && *req.SlotsUnder15 < 0 {
		return fmt.Errorf("%w: slotsUnder15 must be non-negative", ErrInvalidInput)
	}

	if req.SlotsOver15 != nil && *req.SlotsOver15 < 0 {
		return fmt.Errorf("%w: slotsOver15 must be non-negative", ErrInvalidInput)
	}

	return nil
}

// truncateToDay обнуляет компонент времени даты
func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
