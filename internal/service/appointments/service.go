package appointments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/velikhov/CSP-BookingService/internal/domain"
	apptRepo "github.com/velikhov/CSP-BookingService/internal/infra/storage/appointment"
	identityClient "github.com/velikhov/CSP-BookingService/internal/integrations/identityservice"
	"github.com/velikhov/CSP-BookingService/internal/integrations/notifyservice"
	"github.com/velikhov/CSP-BookingService/internal/service/appointments/models"
)

// notifyTimeout бюджет на отправку уведомления о смене статуса
const notifyTimeout = 5 * time.Second

// Service сервис для работы с записями на приём
type Service struct {
	appointmentRepo AppointmentRepository
	locationRepo    LocationRepository
	identityClient  IdentityClient
	notifyClient    NotifyClient
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	appointmentRepo AppointmentRepository,
	locationRepo LocationRepository,
	identityClient IdentityClient,
	notifyClient NotifyClient,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		locationRepo:    locationRepo,
		identityClient:  identityClient,
		notifyClient:    notifyClient,
		logger:          logger,
	}
}

// GetByID получает запись по ID
// Проверяет права доступа - пользователь может видеть только свою запись,
// сотрудник видит любую
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%d for user=%d", id, userID)

	appt, err := s.getAppointment(ctx, id, "GetByID")
	if err != nil {
		return nil, err
	}

	// Проверяем права доступа
	if err := s.checkUserAccess(ctx, appt, userID); err != nil {
		s.logger.Warn("GetByID: access denied for user=%d to appointment id=%d", userID, id)
		return nil, err
	}

	s.logger.Info("GetByID: successfully fetched appointment id=%d", id)
	return models.FromDomainAppointment(appt), nil
}

// GetUserAppointments получает историю записей пользователя
// Опционально фильтрует по статусу
func (s *Service) GetUserAppointments(ctx context.Context, req *models.GetUserAppointmentsRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("GetUserAppointments: fetching appointments for user=%d, status=%v", req.UserID, req.Status)

	// Конвертируем статус из строки в domain.AppointmentStatus
	var domainStatus *domain.AppointmentStatus
	if req.Status != nil {
		status, err := models.ToDomainAppointmentStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserAppointments: invalid status=%s for user=%d", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	appointments, err := s.appointmentRepo.GetByUserID(ctx, req.UserID, domainStatus)
	if err != nil {
		s.logger.Error("GetUserAppointments: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserAppointments - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserAppointments: successfully fetched %d appointments for user=%d", len(appointments), req.UserID)
	return models.FromDomainAppointmentList(appointments), nil
}

// UpdateStatus обновляет статус записи
// Доступно только сотрудникам
func (s *Service) UpdateStatus(ctx context.Context, appointmentID int64, req *models.UpdateStatusRequest) error {
	s.logger.Info("UpdateStatus: updating appointment id=%d to status=%s by user=%d",
		appointmentID, req.Status, req.UserID)

	appt, err := s.getAppointment(ctx, appointmentID, "UpdateStatus")
	if err != nil {
		return err
	}

	// Проверяем права доступа (только сотрудник)
	if err := s.checkStaffAccess(ctx, req.UserID); err != nil {
		s.logger.Warn("UpdateStatus: access denied for user=%d to appointment id=%d", req.UserID, appointmentID)
		return err
	}

	// Валидируем и конвертируем статус
	newStatus, err := models.ToDomainAppointmentStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for appointment id=%d", req.Status, appointmentID)
		return fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	// Обновляем статус
	if err := s.appointmentRepo.UpdateStatus(ctx, appointmentID, newStatus); err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			s.logger.Warn("UpdateStatus: appointment id=%d not found during update", appointmentID)
			return ErrAppointmentNotFound
		}
		s.logger.Error("UpdateStatus: repository error for appointment id=%d: %v", appointmentID, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateStatus: successfully updated appointment id=%d to status=%s", appointmentID, newStatus)

	appt.Status = newStatus
	s.sendStatusChanged(ctx, appt)

	return nil
}

// Cancel отменяет запись с указанием причины
// Пользователь может отменить только свою запись, сотрудник может отменить любую
func (s *Service) Cancel(ctx context.Context, appointmentID int64, req *models.CancelAppointmentRequest) error {
	s.logger.Info("Cancel: cancelling appointment id=%d by user=%d", appointmentID, req.UserID)

	appt, err := s.getAppointment(ctx, appointmentID, "Cancel")
	if err != nil {
		return err
	}

	// Проверяем права доступа
	if err := s.checkUserAccess(ctx, appt, req.UserID); err != nil {
		s.logger.Warn("Cancel: access denied for user=%d to cancel appointment id=%d", req.UserID, appointmentID)
		return err
	}

	// Проверяем, можно ли отменить запись
	if !appt.CanBeCancelled() {
		s.logger.Warn("Cancel: appointment id=%d cannot be cancelled, status=%s", appointmentID, appt.Status)
		return ErrCannotCancel
	}

	// Отмена меняет только статус, строка остаётся и перестаёт занимать место
	if err := s.appointmentRepo.Cancel(ctx, appointmentID, req.CancellationReason); err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			s.logger.Warn("Cancel: appointment id=%d not found during cancellation", appointmentID)
			return ErrAppointmentNotFound
		}
		s.logger.Error("Cancel: repository error for appointment id=%d: %v", appointmentID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled appointment id=%d", appointmentID)

	appt.Status = domain.StatusCancelled
	s.sendStatusChanged(ctx, appt)

	return nil
}

// Вспомогательные методы

// getAppointment загружает запись, транслируя ошибку репозитория
func (s *Service) getAppointment(ctx context.Context, id int64, op string) (*domain.Appointment, error) {
	appt, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			s.logger.Warn("%s: appointment id=%d not found", op, id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("%s: repository error for appointment id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return appt, nil
}

// checkUserAccess проверяет, что пользователь имеет доступ к записи.
// Владелец записи и сотрудник имеют доступ
func (s *Service) checkUserAccess(ctx context.Context, appt *domain.Appointment, userID int64) error {
	if appt.UserID == userID {
		return nil
	}

	if err := s.checkStaffAccess(ctx, userID); err != nil {
		return ErrAccessDenied
	}

	return nil
}

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

// sendStatusChanged отправляет уведомление о смене статуса в фоне.
// Статус уже изменён, неудача доставки только логируется.
func (s *Service) sendStatusChanged(ctx context.Context, appt *domain.Appointment) {
	locationName := domain.ResourceCenterName
	if appt.LocationType == domain.LocationOutreach && appt.OutreachLocationID != nil {
		if location, err := s.locationRepo.GetByID(ctx, *appt.OutreachLocationID); err == nil {
			locationName = location.Name
		}
	}

	n := notifyservice.StatusChangedNotification{
		RequestID:     uuid.NewString(),
		AppointmentID: appt.ID,
		UserID:        appt.UserID,
		Status:        string(appt.Status),
		Date:          appt.AppointmentDate.Format(domain.DateFormat),
		StartTime:     appt.StartTime.String(),
		LocationName:  locationName,
	}

	go func() {
		sendCtx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()

		if err := s.notifyClient.StatusChanged(sendCtx, n); err != nil {
			s.logger.Error("sendStatusChanged: failed to notify for appointment id=%d: %v", appt.ID, err)
		}
	}()
}
