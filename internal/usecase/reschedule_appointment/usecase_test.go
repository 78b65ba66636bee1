package reschedule_appointment

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velikhov/CSP-BookingService/internal/domain"
	apptRepo "github.com/velikhov/CSP-BookingService/internal/infra/storage/appointment"
	configRepo "github.com/velikhov/CSP-BookingService/internal/infra/storage/appointmentconfig"
	locationRepo "github.com/velikhov/CSP-BookingService/internal/infra/storage/outreachlocation"
	"github.com/velikhov/CSP-BookingService/internal/integrations/notifyservice"
	"github.com/velikhov/CSP-BookingService/pkg/ptr"
	"github.com/velikhov/CSP-BookingService/pkg/types"
)

var (
	tuesday  = time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC)
	thursday = time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)
	saturday = time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC)
)

type fakeAppointmentRepo struct {
	appointments map[int64]*domain.Appointment
}

func (f *fakeAppointmentRepo) GetByID(_ context.Context, id int64) (*domain.Appointment, error) {
	if a, ok := f.appointments[id]; ok {
		copied := *a
		return &copied, nil
	}
	return nil, apptRepo.ErrAppointmentNotFound
}

func (f *fakeAppointmentRepo) GetByDateAndLocation(_ context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	result := make([]*domain.Appointment, 0)
	for _, a := range f.appointments {
		if !a.AppointmentDate.Equal(filter.Date) || a.LocationType != filter.LocationType {
			continue
		}
		if !filter.IncludeCancelled && a.IsCancelled() {
			continue
		}
		result = append(result, a)
	}
	return result, nil
}

func (f *fakeAppointmentRepo) Reschedule(_ context.Context, id int64, date time.Time, startTime types.TimeString) error {
	a, ok := f.appointments[id]
	if !ok {
		return apptRepo.ErrAppointmentNotFound
	}
	a.AppointmentDate = date
	a.StartTime = startTime
	a.Status = domain.StatusPending
	return nil
}

type fakeConfigRepo struct {
	configs map[string]*domain.AppointmentConfig
}

func configKey(date time.Time, lt domain.LocationType) string {
	return date.Format(domain.DateFormat) + "/" + string(lt)
}

func (f *fakeConfigRepo) GetByDateAndLocation(_ context.Context, date time.Time, lt domain.LocationType) (*domain.AppointmentConfig, error) {
	if cfg, ok := f.configs[configKey(date, lt)]; ok {
		return cfg, nil
	}
	return nil, configRepo.ErrConfigNotFound
}

type fakeLocationRepo struct {
	locations map[int64]*domain.OutreachLocation
}

func (f *fakeLocationRepo) GetByID(_ context.Context, id int64) (*domain.OutreachLocation, error) {
	if loc, ok := f.locations[id]; ok {
		return loc, nil
	}
	return nil, locationRepo.ErrLocationNotFound
}

type fakeNotifyClient struct {
	mu   sync.Mutex
	sent []notifyservice.StatusChangedNotification
	done chan struct{}
}

func newFakeNotifyClient() *fakeNotifyClient {
	return &fakeNotifyClient{done: make(chan struct{}, 64)}
}

func (f *fakeNotifyClient) StatusChanged(_ context.Context, n notifyservice.StatusChangedNotification) error {
	f.mu.Lock()
	f.sent = append(f.sent, n)
	f.mu.Unlock()
	f.done <- struct{}{}
	return nil
}

func (f *fakeNotifyClient) wait(t *testing.T) notifyservice.StatusChangedNotification {
	t.Helper()
	select {
	case <-f.done:
	case <-time.After(2 * time.Second):
		t.Fatal("notification was not sent")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sent[len(f.sent)-1]
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixture struct {
	uc           *UseCase
	appointments *fakeAppointmentRepo
	configs      *fakeConfigRepo
	notify       *fakeNotifyClient
}

const ownerID int64 = 20

func newFixture() *fixture {
	f := &fixture{
		appointments: &fakeAppointmentRepo{appointments: map[int64]*domain.Appointment{}},
		configs:      &fakeConfigRepo{configs: map[string]*domain.AppointmentConfig{}},
		notify:       newFakeNotifyClient(),
	}
	locations := &fakeLocationRepo{locations: map[int64]*domain.OutreachLocation{
		1: {ID: 1, Name: "Westside Community Hall", County: "Westside", IsActive: true},
	}}
	f.uc = NewUseCase(f.appointments, f.configs, locations, f.notify, fakeTxManager{}, nopLogger{})
	return f
}

// seed добавляет запись центра обслуживания старшей возрастной группы
func (f *fixture) seed(id int64, date time.Time, start types.TimeString, status domain.AppointmentStatus) {
	f.appointments.appointments[id] = &domain.Appointment{
		ID:              id,
		UserID:          ownerID,
		AppointmentDate: date,
		StartTime:       start,
		LocationType:    domain.LocationResourceCenter,
		AgeGroup:        ptr.Ptr(domain.AgeGroupOver15),
		Status:          status,
	}
}

func TestExecute_MovesAppointmentAndResetsStatus(t *testing.T) {
	f := newFixture()
	f.seed(1, tuesday, "10:00", domain.StatusConfirmed)

	resp, err := f.uc.Execute(context.Background(), &Request{
		AppointmentID: 1,
		UserID:        ownerID,
		NewDate:       thursday,
		NewStartTime:  "14:00",
	})
	require.NoError(t, err)

	assert.Equal(t, thursday, resp.Appointment.AppointmentDate)
	assert.Equal(t, types.TimeString("14:00"), resp.Appointment.StartTime)
	assert.Equal(t, domain.StatusPending, resp.Appointment.Status)

	stored := f.appointments.appointments[1]
	assert.Equal(t, thursday, stored.AppointmentDate)
	assert.Equal(t, domain.StatusPending, stored.Status)

	n := f.notify.wait(t)
	assert.Equal(t, int64(1), n.AppointmentID)
	assert.Equal(t, string(domain.StatusRescheduled), n.Status)
	assert.Equal(t, "2026-03-05", n.Date)
	assert.Equal(t, domain.ResourceCenterName, n.LocationName)
	assert.NotEmpty(t, n.RequestID)
}

func TestExecute_SameSlotAlwaysSucceeds(t *testing.T) {
	f := newFixture()
	f.seed(1, tuesday, "10:00", domain.StatusConfirmed)

	// Занимаем весь старший пул слота другими записями:
	// обычный перенос сюда был бы отклонён
	for i := int64(2); i < 2+int64(domain.DefaultSlotsOver15); i++ {
		f.seed(i, tuesday, "10:00", domain.StatusPending)
	}

	resp, err := f.uc.Execute(context.Background(), &Request{
		AppointmentID: 1,
		UserID:        ownerID,
		NewDate:       tuesday,
		NewStartTime:  "10:00",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, resp.Appointment.Status)
}

func TestExecute_OwnAppointmentDoesNotBlockSameDayMove(t *testing.T) {
	f := newFixture()
	f.seed(1, tuesday, "10:00", domain.StatusConfirmed)

	// Новый слот заполнен до последнего места
	for i := int64(2); i < 1+int64(domain.DefaultSlotsOver15); i++ {
		f.seed(i, tuesday, "11:00", domain.StatusPending)
	}

	_, err := f.uc.Execute(context.Background(), &Request{
		AppointmentID: 1,
		UserID:        ownerID,
		NewDate:       tuesday,
		NewStartTime:  "11:00",
	})
	assert.NoError(t, err)
}

func TestExecute_RejectsFullTargetSlot(t *testing.T) {
	f := newFixture()
	f.seed(1, tuesday, "10:00", domain.StatusConfirmed)

	for i := int64(2); i < 2+int64(domain.DefaultSlotsOver15); i++ {
		f.seed(i, thursday, "14:00", domain.StatusPending)
	}

	_, err := f.uc.Execute(context.Background(), &Request{
		AppointmentID: 1,
		UserID:        ownerID,
		NewDate:       thursday,
		NewStartTime:  "14:00",
	})
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_TerminalStatusesRefuse(t *testing.T) {
	f := newFixture()
	f.seed(1, tuesday, "10:00", domain.StatusCompleted)
	f.seed(2, tuesday, "10:00", domain.StatusCancelled)
	f.seed(3, tuesday, "10:00", domain.StatusNoShow)

	for _, id := range []int64{1, 2} {
		_, err := f.uc.Execute(context.Background(), &Request{
			AppointmentID: id,
			UserID:        ownerID,
			NewDate:       thursday,
			NewStartTime:  "14:00",
		})
		assert.ErrorIs(t, err, ErrAppointmentFinalized, "appointment %d", id)
	}

	// Неявка не терминальна: перенос возвращает запись в pending
	resp, err := f.uc.Execute(context.Background(), &Request{
		AppointmentID: 3,
		UserID:        ownerID,
		NewDate:       thursday,
		NewStartTime:  "14:00",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, resp.Appointment.Status)
}

func TestExecute_OwnershipAndExistence(t *testing.T) {
	f := newFixture()
	f.seed(1, tuesday, "10:00", domain.StatusConfirmed)

	_, err := f.uc.Execute(context.Background(), &Request{
		AppointmentID: 404,
		UserID:        ownerID,
		NewDate:       thursday,
		NewStartTime:  "14:00",
	})
	assert.ErrorIs(t, err, ErrAppointmentNotFound)

	_, err = f.uc.Execute(context.Background(), &Request{
		AppointmentID: 1,
		UserID:        ownerID + 1,
		NewDate:       thursday,
		NewStartTime:  "14:00",
	})
	assert.ErrorIs(t, err, ErrNotOwner)
}

func TestExecute_NewDateClosed(t *testing.T) {
	f := newFixture()
	f.seed(1, tuesday, "10:00", domain.StatusConfirmed)

	// Суббота закрыта календарём
	_, err := f.uc.Execute(context.Background(), &Request{
		AppointmentID: 1,
		UserID:        ownerID,
		NewDate:       saturday,
		NewStartTime:  "14:00",
	})
	assert.ErrorIs(t, err, ErrDateNotAvailable)

	// Четверг закрыт переопределением конфигурации
	f.configs.configs[configKey(thursday, domain.LocationResourceCenter)] = &domain.AppointmentConfig{
		Date:         thursday,
		LocationType: domain.LocationResourceCenter,
		IsAvailable:  false,
	}
	_, err = f.uc.Execute(context.Background(), &Request{
		AppointmentID: 1,
		UserID:        ownerID,
		NewDate:       thursday,
		NewStartTime:  "14:00",
	})
	assert.ErrorIs(t, err, ErrDateNotAvailable)
}

func TestExecute_OutreachRescheduleSkipsCapacity(t *testing.T) {
	f := newFixture()
	f.appointments.appointments[1] = &domain.Appointment{
		ID:                 1,
		UserID:             ownerID,
		AppointmentDate:    tuesday,
		StartTime:          "10:00",
		LocationType:       domain.LocationOutreach,
		OutreachLocationID: ptr.Ptr(int64(1)),
		Status:             domain.StatusConfirmed,
	}

	// Пятница открыта для выездного обслуживания
	friday := time.Date(2026, 3, 6, 0, 0, 0, 0, time.UTC)
	resp, err := f.uc.Execute(context.Background(), &Request{
		AppointmentID: 1,
		UserID:        ownerID,
		NewDate:       friday,
		NewStartTime:  "09:00",
	})
	require.NoError(t, err)
	assert.Equal(t, friday, resp.Appointment.AppointmentDate)

	n := f.notify.wait(t)
	assert.Equal(t, "Westside Community Hall", n.LocationName)
}

func TestExecute_InvalidInput(t *testing.T) {
	f := newFixture()
	f.seed(1, tuesday, "10:00", domain.StatusConfirmed)

	_, err := f.uc.Execute(context.Background(), &Request{
		AppointmentID: 1,
		UserID:        ownerID,
		NewDate:       thursday,
		NewStartTime:  "14:30",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.uc.Execute(context.Background(), &Request{
		AppointmentID: 0,
		UserID:        ownerID,
		NewDate:       thursday,
		NewStartTime:  "14:00",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
