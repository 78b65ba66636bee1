package create_appointment

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velikhov/CSP-BookingService/internal/domain"
	configRepo "github.com/velikhov/CSP-BookingService/internal/infra/storage/appointmentconfig"
	locationRepo "github.com/velikhov/CSP-BookingService/internal/infra/storage/outreachlocation"
	"github.com/velikhov/CSP-BookingService/internal/integrations/identityservice"
	"github.com/velikhov/CSP-BookingService/internal/integrations/notifyservice"
	"github.com/velikhov/CSP-BookingService/pkg/ptr"
	"github.com/velikhov/CSP-BookingService/pkg/types"
)

var (
	tuesday  = time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC)
	saturday = time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC)
	testNow  = time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
)

type fakeAppointmentRepo struct {
	nextID       int64
	appointments []*domain.Appointment
}

func (f *fakeAppointmentRepo) Create(_ context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	f.nextID++
	created := *appt
	created.ID = f.nextID
	f.appointments = append(f.appointments, &created)
	return &created, nil
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

type fakeIdentityClient struct {
	profiles map[int64]*identityservice.Profile
}

func (f *fakeIdentityClient) GetProfile(_ context.Context, userID int64) (*identityservice.Profile, error) {
	if p, ok := f.profiles[userID]; ok {
		return p, nil
	}
	return nil, identityservice.ErrProfileNotFound
}

type fakeNotifyClient struct {
	mu   sync.Mutex
	sent []notifyservice.BookingConfirmedNotification
	err  error
	done chan struct{}
}

func newFakeNotifyClient() *fakeNotifyClient {
	return &fakeNotifyClient{done: make(chan struct{}, 64)}
}

func (f *fakeNotifyClient) BookingConfirmed(_ context.Context, n notifyservice.BookingConfirmedNotification) error {
	f.mu.Lock()
	f.sent = append(f.sent, n)
	f.mu.Unlock()
	f.done <- struct{}{}
	return f.err
}

// wait дожидается фоновой отправки уведомления
func (f *fakeNotifyClient) wait(t *testing.T) notifyservice.BookingConfirmedNotification {
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

// fakeTxManager выполняет функцию без реальной транзакции
type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTimeProvider struct{ now time.Time }

func (p *fixedTimeProvider) Now() time.Time { return p.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixture struct {
	uc           *UseCase
	appointments *fakeAppointmentRepo
	configs      *fakeConfigRepo
	identity     *fakeIdentityClient
	notify       *fakeNotifyClient
}

func newFixture() *fixture {
	f := &fixture{
		appointments: &fakeAppointmentRepo{},
		configs:      &fakeConfigRepo{configs: map[string]*domain.AppointmentConfig{}},
		identity: &fakeIdentityClient{profiles: map[int64]*identityservice.Profile{
			10: {UserID: 10, Age: ptr.Ptr(10), Role: identityservice.RoleCitizen},
			20: {UserID: 20, Age: ptr.Ptr(20), Role: identityservice.RoleCitizen},
			30: {UserID: 30, Role: identityservice.RoleCitizen},
		}},
		notify: newFakeNotifyClient(),
	}
	locations := &fakeLocationRepo{locations: map[int64]*domain.OutreachLocation{
		1: {ID: 1, Name: "Westside Community Hall", County: "Westside", IsActive: true},
		2: {ID: 2, Name: "Old Depot", County: "Northgate", IsActive: false},
	}}
	f.uc = NewUseCase(f.appointments, f.configs, locations, f.identity, f.notify, fakeTxManager{}, nopLogger{})
	f.uc.timeProvider = &fixedTimeProvider{now: testNow}
	return f
}

func rcRequest(userID int64, start types.TimeString) *Request {
	return &Request{
		UserID:       userID,
		Date:         tuesday,
		StartTime:    start,
		LocationType: domain.LocationResourceCenter,
		Purpose:      "document renewal",
	}
}

func TestExecute_CreatesResourceCenterAppointment(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.Execute(context.Background(), rcRequest(20, "10:00"))
	require.NoError(t, err)

	appt := resp.Appointment
	assert.NotZero(t, appt.ID)
	assert.Equal(t, domain.StatusPending, appt.Status)
	assert.Equal(t, tuesday, appt.AppointmentDate)
	require.NotNil(t, appt.AgeGroup)
	assert.Equal(t, domain.AgeGroupOver15, *appt.AgeGroup)
	require.NotNil(t, appt.ServiceFee)
	assert.Equal(t, domain.ResourceCenterServiceFee, *appt.ServiceFee)
	assert.Equal(t, domain.ResourceCenterName, resp.LocationName)

	n := f.notify.wait(t)
	assert.Equal(t, appt.ID, n.AppointmentID)
	assert.Equal(t, "2026-03-03", n.Date)
	assert.Equal(t, "10:00", n.StartTime)
	assert.Equal(t, domain.ResourceCenterServiceFee, n.ServiceFee)
	assert.NotEmpty(t, n.RequestID)
}

func TestExecute_PoolExhaustionRejectsOwnGroupOnly(t *testing.T) {
	f := newFixture()

	// Заполняем пул младшей группы в слоте 10:00
	for i := 0; i < domain.DefaultSlotsUnder15; i++ {
		_, err := f.uc.Execute(context.Background(), rcRequest(10, "10:00"))
		require.NoError(t, err)
	}

	// Седьмая заявка младшей группы отклоняется
	_, err := f.uc.Execute(context.Background(), rcRequest(10, "10:00"))
	assert.ErrorIs(t, err, ErrSlotNotAvailable)

	// Старшая группа в том же слоте проходит
	_, err = f.uc.Execute(context.Background(), rcRequest(20, "10:00"))
	assert.NoError(t, err)

	// Соседний слот для младшей группы свободен
	_, err = f.uc.Execute(context.Background(), rcRequest(10, "11:00"))
	assert.NoError(t, err)
}

func TestExecute_CancelledAppointmentFreesCapacity(t *testing.T) {
	f := newFixture()

	for i := 0; i < domain.DefaultSlotsUnder15; i++ {
		_, err := f.uc.Execute(context.Background(), rcRequest(10, "10:00"))
		require.NoError(t, err)
	}

	// Отменяем одну запись, место освобождается
	f.appointments.appointments[0].Status = domain.StatusCancelled
	_, err := f.uc.Execute(context.Background(), rcRequest(10, "10:00"))
	assert.NoError(t, err)

	// Неявка место не освобождает
	f.appointments.appointments[1].Status = domain.StatusNoShow
	_, err = f.uc.Execute(context.Background(), rcRequest(10, "10:00"))
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_UnknownAgeCountsAgainstOver15Pool(t *testing.T) {
	f := newFixture()

	// Пользователь без возраста занимает места старшего пула
	for i := 0; i < domain.DefaultSlotsOver15; i++ {
		resp, err := f.uc.Execute(context.Background(), rcRequest(30, "10:00"))
		require.NoError(t, err)
		assert.Nil(t, resp.Appointment.AgeGroup)
	}

	_, err := f.uc.Execute(context.Background(), rcRequest(20, "10:00"))
	assert.ErrorIs(t, err, ErrSlotNotAvailable)

	// Младший пул не затронут
	_, err = f.uc.Execute(context.Background(), rcRequest(10, "10:00"))
	assert.NoError(t, err)
}

func TestExecute_CapacityOverrideApplies(t *testing.T) {
	f := newFixture()
	f.configs.configs[configKey(tuesday, domain.LocationResourceCenter)] = &domain.AppointmentConfig{
		Date:         tuesday,
		LocationType: domain.LocationResourceCenter,
		IsAvailable:  true,
		SlotsUnder15: ptr.Ptr(1),
		SlotsOver15:  ptr.Ptr(domain.DefaultSlotsOver15),
	}

	_, err := f.uc.Execute(context.Background(), rcRequest(10, "10:00"))
	require.NoError(t, err)

	_, err = f.uc.Execute(context.Background(), rcRequest(10, "10:00"))
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_DateClosedByCalendarOrConfig(t *testing.T) {
	f := newFixture()

	// Суббота: центр закрыт календарём
	req := rcRequest(20, "10:00")
	req.Date = saturday
	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrDateNotAvailable)

	// Пятница: центр закрыт, выездное обслуживание открыто
	friday := time.Date(2026, 3, 6, 0, 0, 0, 0, time.UTC)
	req = rcRequest(20, "10:00")
	req.Date = friday
	_, err = f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrDateNotAvailable)

	// Вторник закрыт переопределением конфигурации
	f.configs.configs[configKey(tuesday, domain.LocationResourceCenter)] = &domain.AppointmentConfig{
		Date:         tuesday,
		LocationType: domain.LocationResourceCenter,
		IsAvailable:  false,
	}
	_, err = f.uc.Execute(context.Background(), rcRequest(20, "10:00"))
	assert.ErrorIs(t, err, ErrDateNotAvailable)
}

func TestExecute_OutreachUncappedAndFree(t *testing.T) {
	f := newFixture()

	outreachReq := func() *Request {
		return &Request{
			UserID:             20,
			Date:               tuesday,
			StartTime:          "10:00",
			LocationType:       domain.LocationOutreach,
			OutreachLocationID: ptr.Ptr(int64(1)),
			Purpose:            "mobile registration",
		}
	}

	// Лимитов нет: число записей в один слот не ограничено
	for i := 0; i < domain.DefaultSlotsUnder15+domain.DefaultSlotsOver15+5; i++ {
		resp, err := f.uc.Execute(context.Background(), outreachReq())
		require.NoError(t, err)
		assert.Nil(t, resp.Appointment.ServiceFee)
		assert.Nil(t, resp.Appointment.AgeGroup)
		assert.Equal(t, "Westside Community Hall", resp.LocationName)
	}

	n := f.notify.wait(t)
	assert.Zero(t, n.ServiceFee)
	assert.Equal(t, "Westside Community Hall", n.LocationName)
}

func TestExecute_OutreachLocationValidation(t *testing.T) {
	f := newFixture()

	req := &Request{
		UserID:             20,
		Date:               tuesday,
		StartTime:          "10:00",
		LocationType:       domain.LocationOutreach,
		OutreachLocationID: ptr.Ptr(int64(404)),
		Purpose:            "mobile registration",
	}
	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrLocationNotFound)

	req.OutreachLocationID = ptr.Ptr(int64(2))
	_, err = f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrLocationInactive)
}

func TestExecute_NotificationFailureDoesNotAffectBooking(t *testing.T) {
	f := newFixture()
	f.notify.err = context.DeadlineExceeded

	resp, err := f.uc.Execute(context.Background(), rcRequest(20, "10:00"))
	require.NoError(t, err)
	assert.NotZero(t, resp.Appointment.ID)

	f.notify.wait(t)
}

func TestExecute_Validation(t *testing.T) {
	f := newFixture()

	tests := []struct {
		name   string
		mutate func(r *Request)
	}{
		{name: "zero user", mutate: func(r *Request) { r.UserID = 0 }},
		{name: "off-grid start time", mutate: func(r *Request) { r.StartTime = "10:30" }},
		{name: "empty purpose", mutate: func(r *Request) { r.Purpose = "" }},
		{name: "location id on resource center", mutate: func(r *Request) { r.OutreachLocationID = ptr.Ptr(int64(1)) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := rcRequest(20, "10:00")
			tt.mutate(req)
			_, err := f.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}

	// Выездная запись без площадки
	_, err := f.uc.Execute(context.Background(), &Request{
		UserID:       20,
		Date:         tuesday,
		StartTime:    "10:00",
		LocationType: domain.LocationOutreach,
		Purpose:      "mobile registration",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
