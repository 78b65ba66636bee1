package create_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/velikhov/CSP-BookingService/internal/domain"
	configRepo "github.com/velikhov/CSP-BookingService/internal/infra/storage/appointmentconfig"
	identityClient "github.com/velikhov/CSP-BookingService/internal/integrations/identityservice"
	"github.com/velikhov/CSP-BookingService/internal/integrations/notifyservice"
	"github.com/velikhov/CSP-BookingService/pkg/ptr"
)

// notifyTimeout бюджет на отправку уведомления после коммита
const notifyTimeout = 5 * time.Second

// UseCase use case создания записи на приём
type UseCase struct {
	appointmentRepo AppointmentRepository
	configRepo      ConfigRepository
	locationRepo    LocationRepository
	identityClient  IdentityClient
	notifyClient    NotifyClient
	txManager       TxManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	configRepo ConfigRepository,
	locationRepo LocationRepository,
	identityClient IdentityClient,
	notifyClient NotifyClient,
	txManager TxManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		configRepo:      configRepo,
		locationRepo:    locationRepo,
		identityClient:  identityClient,
		notifyClient:    notifyClient,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания записи.
// Проверка занятости и вставка выполняются в одной serializable-транзакции,
// поэтому перелимит пула невозможен даже при конкурентных бронированиях.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: user=%d, date=%s, time=%s, location=%s",
		req.UserID, req.Date.Format(domain.DateFormat), req.StartTime, req.LocationType)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	date := truncateToDay(req.Date)
	now := uc.timeProvider.Now()

	// 2. Определяем возрастную группу заявителя.
	// Неизвестный возраст учитывается в старшем пуле.
	var ageGroup *domain.AgeGroup
	profile, err := uc.identityClient.GetProfile(ctx, req.UserID)
	if err != nil {
		if !errors.Is(err, identityClient.ErrProfileNotFound) {
			uc.logger.Error("CreateAppointment: failed to get profile for user=%d: %v", req.UserID, err)
			return nil, fmt.Errorf("%w: failed to get profile: %v", ErrInternal, err)
		}
		uc.logger.Warn("CreateAppointment: profile not found for user=%d, treating age as unknown", req.UserID)
	} else {
		ageGroup = ageGroupFromProfile(profile, now)
	}

	// 3. Выездная площадка должна существовать и быть активной
	locationName := domain.ResourceCenterName
	if req.LocationType == domain.LocationOutreach {
		location, err := uc.locationRepo.GetByID(ctx, *req.OutreachLocationID)
		if err != nil {
			uc.logger.Warn("CreateAppointment: outreach location id=%d not found", *req.OutreachLocationID)
			return nil, ErrLocationNotFound
		}
		if !location.IsActive {
			uc.logger.Warn("CreateAppointment: outreach location id=%d is inactive", *req.OutreachLocationID)
			return nil, ErrLocationInactive
		}
		locationName = location.Name
	}

	// 4. Календарное правило
	if !domain.IsDateAvailableFor(req.LocationType, date) {
		uc.logger.Info("CreateAppointment: date %s closed by calendar for %s",
			date.Format(domain.DateFormat), req.LocationType)
		return nil, ErrDateNotAvailable
	}

	appt := &domain.Appointment{
		UserID:             req.UserID,
		AppointmentDate:    date,
		StartTime:          req.StartTime,
		LocationType:       req.LocationType,
		OutreachLocationID: req.OutreachLocationID,
		Status:             domain.StatusPending,
		Purpose:            req.Purpose,
		Notes:              req.Notes,
	}
	if req.LocationType == domain.LocationResourceCenter {
		appt.AgeGroup = ageGroup
		appt.ServiceFee = ptr.Ptr(domain.ResourceCenterServiceFee)
	}

	// 5. Транзакция бронирования: повторная проверка конфигурации и занятости
	// на момент записи, затем вставка
	var created *domain.Appointment
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		cfg, err := uc.configRepo.GetByDateAndLocation(txCtx, date, req.LocationType)
		if err != nil && !errors.Is(err, configRepo.ErrConfigNotFound) {
			return fmt.Errorf("%w: failed to get config: %v", ErrInternal, err)
		}

		if cfg.ClosesDate() {
			return ErrDateNotAvailable
		}

		// Для выездного обслуживания мест не считаем
		if req.LocationType == domain.LocationResourceCenter {
			if err := uc.checkBucketCapacity(txCtx, date, req, cfg, ageGroup); err != nil {
				return err
			}
		}

		created, err = uc.appointmentRepo.Create(txCtx, appt)
		if err != nil {
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, ErrDateNotAvailable) || errors.Is(err, ErrSlotNotAvailable) {
			uc.logger.Warn("CreateAppointment: booking rejected for user=%d: %v", req.UserID, err)
			return nil, err
		}
		uc.logger.Error("CreateAppointment: transaction failed for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: booking transaction failed: %v", ErrInternal, err)
	}

	uc.logger.Info("CreateAppointment: created appointment id=%d for user=%d", created.ID, req.UserID)

	// 6. Уведомление после коммита: ошибки доставки не влияют на результат
	uc.sendConfirmation(created, locationName)

	return &Response{Appointment: created, LocationName: locationName}, nil
}

// checkBucketCapacity проверяет остаток мест в слоте для возрастной группы.
// Выборка записей внутри транзакции блокирует строки дня до коммита.
func (uc *UseCase) checkBucketCapacity(ctx context.Context, date time.Time, req *Request, cfg *domain.AppointmentConfig, ageGroup *domain.AgeGroup) error {
	appointments, err := uc.appointmentRepo.GetByDateAndLocation(ctx, domain.AppointmentsFilter{
		Date:         date,
		LocationType: domain.LocationResourceCenter,
	})
	if err != nil {
		return fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	buckets := domain.BuildBucketCapacities(appointments, cfg.AllowanceUnder15(), cfg.AllowanceOver15())
	bucket, ok := domain.FindBucket(buckets, req.StartTime)
	if !ok {
		return fmt.Errorf("%w: no bucket for start time %s", ErrSlotNotAvailable, req.StartTime)
	}

	if !bucket.AvailableFor(ageGroup) {
		return ErrSlotNotAvailable
	}

	return nil
}

// sendConfirmation отправляет уведомление о бронировании в фоне.
// Запись уже создана, неудача доставки только логируется.
func (uc *UseCase) sendConfirmation(appt *domain.Appointment, locationName string) {
	n := notifyservice.BookingConfirmedNotification{
		RequestID:     uuid.NewString(),
		AppointmentID: appt.ID,
		UserID:        appt.UserID,
		Date:          appt.AppointmentDate.Format(domain.DateFormat),
		StartTime:     appt.StartTime.String(),
		LocationName:  locationName,
	}
	if appt.ServiceFee != nil {
		n.ServiceFee = *appt.ServiceFee
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()

		if err := uc.notifyClient.BookingConfirmed(ctx, n); err != nil {
			uc.logger.Error("CreateAppointment: failed to send confirmation for appointment id=%d: %v", appt.ID, err)
		}
	}()
}
