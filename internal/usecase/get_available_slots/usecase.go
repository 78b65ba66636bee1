package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/velikhov/CSP-BookingService/internal/domain"
	configRepo "github.com/velikhov/CSP-BookingService/internal/infra/storage/appointmentconfig"
	identityClient "github.com/velikhov/CSP-BookingService/internal/integrations/identityservice"
)

// Причины недоступности даты для ответа клиенту
const (
	msgResourceCenterClosed = "центр обслуживания работает только по вторникам и четвергам"
	msgOutreachClosed       = "выездное обслуживание работает только по будням"
	msgDateClosedByConfig   = "запись на эту дату закрыта"
)

// UseCase use case для получения доступных слотов на дату
type UseCase struct {
	appointmentRepo AppointmentRepository
	configRepo      ConfigRepository
	locationRepo    LocationRepository
	identityClient  IdentityClient
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	configRepo ConfigRepository,
	locationRepo LocationRepository,
	identityClient IdentityClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		configRepo:      configRepo,
		locationRepo:    locationRepo,
		identityClient:  identityClient,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case получения доступных слотов.
// Этот же расчёт используется транзакциями бронирования и переноса
// как проверка на записи, здесь он выполняется только на чтение.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: user=%d, date=%s, location=%s",
		req.UserID, req.Date.Format(domain.DateFormat), req.LocationType)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	date := truncateToDay(req.Date)
	now := uc.timeProvider.Now()

	// 2. Определяем возрастную группу заявителя.
	// Отсутствие профиля не блокирует просмотр: возраст считается неизвестным.
	var ageGroup *domain.AgeGroup
	profile, err := uc.identityClient.GetProfile(ctx, req.UserID)
	if err != nil {
		if !errors.Is(err, identityClient.ErrProfileNotFound) {
			uc.logger.Error("GetAvailableSlots: failed to get profile for user=%d: %v", req.UserID, err)
			return nil, fmt.Errorf("%w: failed to get profile: %v", ErrInternal, err)
		}
		uc.logger.Warn("GetAvailableSlots: profile not found for user=%d, treating age as unknown", req.UserID)
	} else {
		ageGroup = ageGroupFromProfile(profile, now)
	}

	// 3. Проверяем выездную площадку, если она указана
	if req.LocationType == domain.LocationOutreach && req.OutreachLocationID != nil {
		if err := uc.validateOutreachLocation(ctx, *req.OutreachLocationID); err != nil {
			return nil, err
		}
	}

	// 4. Календарное правило: короткий путь без расчёта по слотам
	if !domain.IsDateAvailableFor(req.LocationType, date) {
		msg := msgResourceCenterClosed
		if req.LocationType == domain.LocationOutreach {
			msg = msgOutreachClosed
		}
		uc.logger.Info("GetAvailableSlots: date %s closed by calendar for %s",
			date.Format(domain.DateFormat), req.LocationType)
		return uc.closedResponse(req, date, msg), nil
	}

	// 5. Переопределение конфигурации на дату
	cfg, err := uc.configRepo.GetByDateAndLocation(ctx, date, req.LocationType)
	if err != nil && !errors.Is(err, configRepo.ErrConfigNotFound) {
		uc.logger.Error("GetAvailableSlots: failed to get config: %v", err)
		return nil, fmt.Errorf("%w: failed to get config: %v", ErrInternal, err)
	}

	if cfg.ClosesDate() {
		uc.logger.Info("GetAvailableSlots: date %s closed by config for %s",
			date.Format(domain.DateFormat), req.LocationType)
		return uc.closedResponse(req, date, msgDateClosedByConfig), nil
	}

	// 6. Выездное обслуживание: все слоты доступны, мест не считаем
	if req.LocationType == domain.LocationOutreach {
		return &Response{
			Date:               date,
			LocationType:       req.LocationType,
			OutreachLocationID: req.OutreachLocationID,
			DateAvailable:      true,
			Slots:              outreachSlots(),
		}, nil
	}

	// 7. Центр обслуживания: считаем остатки по возрастным пулам
	appointments, err := uc.appointmentRepo.GetByDateAndLocation(ctx, domain.AppointmentsFilter{
		Date:         date,
		LocationType: domain.LocationResourceCenter,
	})
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	buckets := domain.BuildBucketCapacities(appointments, cfg.AllowanceUnder15(), cfg.AllowanceOver15())
	slots := resourceCenterSlots(buckets, ageGroup)

	uc.logger.Info("GetAvailableSlots: computed %d slots for user=%d, date=%s",
		len(slots), req.UserID, date.Format(domain.DateFormat))

	return &Response{
		Date:               date,
		LocationType:       req.LocationType,
		OutreachLocationID: req.OutreachLocationID,
		DateAvailable:      true,
		Slots:              slots,
	}, nil
}

// validateOutreachLocation проверяет, что площадка существует и активна
func (uc *UseCase) validateOutreachLocation(ctx context.Context, locationID int64) error {
	location, err := uc.locationRepo.GetByID(ctx, locationID)
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: outreach location id=%d not found", locationID)
		return ErrLocationNotFound
	}

	if !location.IsActive {
		uc.logger.Warn("GetAvailableSlots: outreach location id=%d is inactive", locationID)
		return ErrLocationInactive
	}

	return nil
}

func (uc *UseCase) closedResponse(req *Request, date time.Time, msg string) *Response {
	return &Response{
		Date:               date,
		LocationType:       req.LocationType,
		OutreachLocationID: req.OutreachLocationID,
		DateAvailable:      false,
		Slots:              unavailableSlots(),
		Message:            msg,
	}
}
