package reschedule_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/velikhov/CSP-BookingService/internal/domain"
	apptRepo "github.com/velikhov/CSP-BookingService/internal/infra/storage/appointment"
	configRepo "github.com/velikhov/CSP-BookingService/internal/infra/storage/appointmentconfig"
	"github.com/velikhov/CSP-BookingService/internal/integrations/notifyservice"
	"github.com/velikhov/CSP-BookingService/pkg/types"
)

// notifyTimeout бюджет на отправку уведомления после коммита
const notifyTimeout = 5 * time.Second

// UseCase use case переноса записи на другие дату и время.
// Тип локации и возрастная группа записи при переносе не меняются.
type UseCase struct {
	appointmentRepo AppointmentRepository
	configRepo      ConfigRepository
	locationRepo    LocationRepository
	notifyClient    NotifyClient
	txManager       TxManager
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	configRepo ConfigRepository,
	locationRepo LocationRepository,
	notifyClient NotifyClient,
	txManager TxManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		configRepo:      configRepo,
		locationRepo:    locationRepo,
		notifyClient:    notifyClient,
		txManager:       txManager,
		logger:          logger,
	}
}

// Execute выполняет use case переноса записи.
// Проверка занятости нового слота и перенос выполняются в одной
// serializable-транзакции. Если запрошены текущие дата и время,
// перенос не выполняется и проверка занятости пропускается.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RescheduleAppointment: appointment=%d, user=%d, newDate=%s, newTime=%s",
		req.AppointmentID, req.UserID, req.NewDate.Format(domain.DateFormat), req.NewStartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RescheduleAppointment: validation failed: %v", err)
		return nil, err
	}

	newDate := truncateToDay(req.NewDate)

	// 2. Запись должна существовать, принадлежать пользователю
	// и не находиться в терминальном статусе
	appt, err := uc.getOwnedAppointment(ctx, req)
	if err != nil {
		return nil, err
	}

	// 3. Перенос на текущий слот всегда разрешён: запись сама занимает
	// это место, проверка занятости дала бы ложный отказ
	sameSlot := appt.IsSameSlot(newDate, req.NewStartTime)

	// 4. Календарное правило для новой даты (тип локации наследуется от записи)
	if !sameSlot && !domain.IsDateAvailableFor(appt.LocationType, newDate) {
		uc.logger.Info("RescheduleAppointment: date %s closed by calendar for %s",
			newDate.Format(domain.DateFormat), appt.LocationType)
		return nil, ErrDateNotAvailable
	}

	// 5. Транзакция переноса: повторная проверка конфигурации и занятости
	// нового слота на момент записи
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		if !sameSlot {
			cfg, err := uc.configRepo.GetByDateAndLocation(txCtx, newDate, appt.LocationType)
			if err != nil && !errors.Is(err, configRepo.ErrConfigNotFound) {
				return fmt.Errorf("%w: failed to get config: %v", ErrInternal, err)
			}

			if cfg.ClosesDate() {
				return ErrDateNotAvailable
			}

			// Для выездного обслуживания мест не считаем
			if appt.LocationType == domain.LocationResourceCenter {
				if err := uc.checkBucketCapacity(txCtx, newDate, req.NewStartTime, cfg, appt); err != nil {
					return err
				}
			}
		}

		if err := uc.appointmentRepo.Reschedule(txCtx, appt.ID, newDate, req.NewStartTime); err != nil {
			return fmt.Errorf("%w: failed to reschedule appointment: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, ErrDateNotAvailable) || errors.Is(err, ErrSlotNotAvailable) {
			uc.logger.Warn("RescheduleAppointment: reschedule rejected for appointment=%d: %v", appt.ID, err)
			return nil, err
		}
		uc.logger.Error("RescheduleAppointment: transaction failed for appointment=%d: %v", appt.ID, err)
		return nil, fmt.Errorf("%w: reschedule transaction failed: %v", ErrInternal, err)
	}

	appt.AppointmentDate = newDate
	appt.StartTime = req.NewStartTime
	appt.Status = domain.StatusPending

	uc.logger.Info("RescheduleAppointment: appointment=%d moved to %s %s",
		appt.ID, newDate.Format(domain.DateFormat), req.NewStartTime)

	// 6. Уведомление после коммита: ошибки доставки не влияют на результат
	uc.sendStatusChanged(ctx, appt)

	return &Response{Appointment: appt}, nil
}

// sendStatusChanged отправляет уведомление о переносе в фоне.
// Перенос уже закоммичен, неудача доставки только логируется.
func (uc *UseCase) sendStatusChanged(ctx context.Context, appt *domain.Appointment) {
	locationName := domain.ResourceCenterName
	if appt.LocationType == domain.LocationOutreach && appt.OutreachLocationID != nil {
		if location, err := uc.locationRepo.GetByID(ctx, *appt.OutreachLocationID); err == nil {
			locationName = location.Name
		}
	}

	n := notifyservice.StatusChangedNotification{
		RequestID:     uuid.NewString(),
		AppointmentID: appt.ID,
		UserID:        appt.UserID,
		Status:        string(domain.StatusRescheduled),
		Date:          appt.AppointmentDate.Format(domain.DateFormat),
		StartTime:     appt.StartTime.String(),
		LocationName:  locationName,
	}

	go func() {
		sendCtx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()

		if err := uc.notifyClient.StatusChanged(sendCtx, n); err != nil {
			uc.logger.Error("RescheduleAppointment: failed to send notification for appointment id=%d: %v", appt.ID, err)
		}
	}()
}

// getOwnedAppointment загружает запись и проверяет права и статус
func (uc *UseCase) getOwnedAppointment(ctx context.Context, req *Request) (*domain.Appointment, error) {
	appt, err := uc.appointmentRepo.GetByID(ctx, req.AppointmentID)
	if err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			uc.logger.Warn("RescheduleAppointment: appointment=%d not found", req.AppointmentID)
			return nil, ErrAppointmentNotFound
		}
		uc.logger.Error("RescheduleAppointment: failed to get appointment=%d: %v", req.AppointmentID, err)
		return nil, fmt.Errorf("%w: failed to get appointment: %v", ErrInternal, err)
	}

	if appt.UserID != req.UserID {
		uc.logger.Warn("RescheduleAppointment: appointment=%d belongs to user=%d, requested by user=%d",
			appt.ID, appt.UserID, req.UserID)
		return nil, ErrNotOwner
	}

	if !appt.CanBeRescheduled() {
		uc.logger.Warn("RescheduleAppointment: appointment=%d in terminal status %s", appt.ID, appt.Status)
		return nil, ErrAppointmentFinalized
	}

	return appt, nil
}

// checkBucketCapacity проверяет остаток мест в новом слоте для возрастной
// группы записи. Собственная запись не занимает место в новом слоте:
// при переносе в пределах одного дня она исключается из подсчёта.
func (uc *UseCase) checkBucketCapacity(ctx context.Context, newDate time.Time, newStart types.TimeString, cfg *domain.AppointmentConfig, appt *domain.Appointment) error {
	appointments, err := uc.appointmentRepo.GetByDateAndLocation(ctx, domain.AppointmentsFilter{
		Date:         newDate,
		LocationType: domain.LocationResourceCenter,
	})
	if err != nil {
		return fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	others := make([]*domain.Appointment, 0, len(appointments))
	for _, a := range appointments {
		if a.ID != appt.ID {
			others = append(others, a)
		}
	}

	buckets := domain.BuildBucketCapacities(others, cfg.AllowanceUnder15(), cfg.AllowanceOver15())
	bucket, ok := domain.FindBucket(buckets, newStart)
	if !ok {
		return fmt.Errorf("%w: no bucket for start time %s", ErrSlotNotAvailable, newStart)
	}

	if !bucket.AvailableFor(appt.AgeGroup) {
		return ErrSlotNotAvailable
	}

	return nil
}
