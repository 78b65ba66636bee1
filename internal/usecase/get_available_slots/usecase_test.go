package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velikhov/CSP-BookingService/internal/domain"
	configRepo "github.com/velikhov/CSP-BookingService/internal/infra/storage/appointmentconfig"
	locationRepo "github.com/velikhov/CSP-BookingService/internal/infra/storage/outreachlocation"
	"github.com/velikhov/CSP-BookingService/internal/integrations/identityservice"
	"github.com/velikhov/CSP-BookingService/pkg/ptr"
	"github.com/velikhov/CSP-BookingService/pkg/types"
)

// Тестовые даты: вторник и суббота
var (
	tuesday  = time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC)
	saturday = time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC)
	testNow  = time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
)

type fakeAppointmentRepo struct {
	appointments []*domain.Appointment
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
	locations    *fakeLocationRepo
	identity     *fakeIdentityClient
}

func newFixture() *fixture {
	f := &fixture{
		appointments: &fakeAppointmentRepo{},
		configs:      &fakeConfigRepo{configs: map[string]*domain.AppointmentConfig{}},
		locations: &fakeLocationRepo{locations: map[int64]*domain.OutreachLocation{
			1: {ID: 1, Name: "Westside Community Hall", County: "Westside", IsActive: true},
			2: {ID: 2, Name: "Old Depot", County: "Northgate", IsActive: false},
		}},
		identity: &fakeIdentityClient{profiles: map[int64]*identityservice.Profile{
			10: {UserID: 10, Age: ptr.Ptr(10), Role: identityservice.RoleCitizen},
			20: {UserID: 20, Age: ptr.Ptr(20), Role: identityservice.RoleCitizen},
			30: {UserID: 30, Role: identityservice.RoleCitizen}, // возраст неизвестен
		}},
	}
	f.uc = NewUseCase(f.appointments, f.configs, f.locations, f.identity, nopLogger{})
	f.uc.timeProvider = &fixedTimeProvider{now: testNow}
	return f
}

func rcAppt(start types.TimeString, group *domain.AgeGroup, status domain.AppointmentStatus) *domain.Appointment {
	return &domain.Appointment{
		UserID:          99,
		AppointmentDate: tuesday,
		StartTime:       start,
		LocationType:    domain.LocationResourceCenter,
		AgeGroup:        group,
		Status:          status,
	}
}

func TestExecute_ResourceCenterDefaults(t *testing.T) {
	f := newFixture()

	tests := []struct {
		name      string
		userID    int64
		wantCount int
		wantGroup *domain.AgeGroup
	}{
		{name: "unknown age sees pool sum", userID: 30, wantCount: 15},
		{name: "age 10 sees under-15 pool", userID: 10, wantCount: 6, wantGroup: ptr.Ptr(domain.AgeGroupUnder15)},
		{name: "age 20 sees 15+ pool", userID: 20, wantCount: 9, wantGroup: ptr.Ptr(domain.AgeGroupOver15)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := f.uc.Execute(context.Background(), &Request{
				UserID:       tt.userID,
				Date:         tuesday,
				LocationType: domain.LocationResourceCenter,
			})
			require.NoError(t, err)

			assert.True(t, resp.DateAvailable)
			require.Len(t, resp.Slots, 8)

			for _, slot := range resp.Slots {
				assert.True(t, slot.Available)
				require.NotNil(t, slot.SlotCount)
				assert.Equal(t, tt.wantCount, *slot.SlotCount)
				assert.Equal(t, tt.wantGroup, slot.AgeGroup)
			}
		})
	}
}

func TestExecute_ResourceCenterClosedOnNonClinicDay(t *testing.T) {
	f := newFixture()

	// Суббота закрыта для обоих типов локаций
	resp, err := f.uc.Execute(context.Background(), &Request{
		UserID:       20,
		Date:         saturday,
		LocationType: domain.LocationResourceCenter,
	})
	require.NoError(t, err)

	assert.False(t, resp.DateAvailable)
	assert.NotEmpty(t, resp.Message)
	require.Len(t, resp.Slots, 8)
	for _, slot := range resp.Slots {
		assert.False(t, slot.Available)
		assert.Nil(t, slot.SlotCount)
	}

	// Пятница открыта для outreach, но не для центра
	friday := time.Date(2026, 3, 6, 0, 0, 0, 0, time.UTC)
	resp, err = f.uc.Execute(context.Background(), &Request{
		UserID:       20,
		Date:         friday,
		LocationType: domain.LocationResourceCenter,
	})
	require.NoError(t, err)
	assert.False(t, resp.DateAvailable)
}

func TestExecute_DateClosedByConfigOverride(t *testing.T) {
	f := newFixture()
	f.configs.configs[configKey(tuesday, domain.LocationResourceCenter)] = &domain.AppointmentConfig{
		Date:         tuesday,
		LocationType: domain.LocationResourceCenter,
		IsAvailable:  false,
	}

	resp, err := f.uc.Execute(context.Background(), &Request{
		UserID:       20,
		Date:         tuesday,
		LocationType: domain.LocationResourceCenter,
	})
	require.NoError(t, err)

	assert.False(t, resp.DateAvailable)
	assert.Equal(t, msgDateClosedByConfig, resp.Message)
}

func TestExecute_CapacityOverrideApplies(t *testing.T) {
	f := newFixture()
	f.configs.configs[configKey(tuesday, domain.LocationResourceCenter)] = &domain.AppointmentConfig{
		Date:         tuesday,
		LocationType: domain.LocationResourceCenter,
		IsAvailable:  true,
		SlotsUnder15: ptr.Ptr(2),
		SlotsOver15:  ptr.Ptr(3),
	}

	resp, err := f.uc.Execute(context.Background(), &Request{
		UserID:       30,
		Date:         tuesday,
		LocationType: domain.LocationResourceCenter,
	})
	require.NoError(t, err)

	for _, slot := range resp.Slots {
		require.NotNil(t, slot.SlotCount)
		assert.Equal(t, 5, *slot.SlotCount)
	}
}

func TestExecute_BookingsDecrementOwnPoolOnly(t *testing.T) {
	f := newFixture()
	under := ptr.Ptr(domain.AgeGroupUnder15)

	for i := 0; i < 6; i++ {
		f.appointments.appointments = append(f.appointments.appointments,
			rcAppt("10:00", under, domain.StatusPending))
	}

	// Пул младшей группы исчерпан в 10:00
	resp, err := f.uc.Execute(context.Background(), &Request{
		UserID:       10,
		Date:         tuesday,
		LocationType: domain.LocationResourceCenter,
	})
	require.NoError(t, err)

	for _, slot := range resp.Slots {
		if slot.StartTime == "10:00" {
			assert.False(t, slot.Available)
			assert.Equal(t, 0, *slot.SlotCount)
		} else {
			assert.True(t, slot.Available)
			assert.Equal(t, 6, *slot.SlotCount)
		}
	}

	// Старшая группа в том же слоте не затронута
	resp, err = f.uc.Execute(context.Background(), &Request{
		UserID:       20,
		Date:         tuesday,
		LocationType: domain.LocationResourceCenter,
	})
	require.NoError(t, err)

	for _, slot := range resp.Slots {
		assert.True(t, slot.Available)
		assert.Equal(t, 9, *slot.SlotCount)
	}
}

func TestExecute_CancelledAppointmentFreesCapacity(t *testing.T) {
	f := newFixture()
	under := ptr.Ptr(domain.AgeGroupUnder15)

	for i := 0; i < 5; i++ {
		f.appointments.appointments = append(f.appointments.appointments,
			rcAppt("10:00", under, domain.StatusPending))
	}
	f.appointments.appointments = append(f.appointments.appointments,
		rcAppt("10:00", under, domain.StatusCancelled))

	resp, err := f.uc.Execute(context.Background(), &Request{
		UserID:       10,
		Date:         tuesday,
		LocationType: domain.LocationResourceCenter,
	})
	require.NoError(t, err)

	for _, slot := range resp.Slots {
		if slot.StartTime == "10:00" {
			assert.True(t, slot.Available)
			assert.Equal(t, 1, *slot.SlotCount)
		}
	}
}

func TestExecute_OutreachUncapped(t *testing.T) {
	f := newFixture()

	// Заполняем слот большим числом выездных записей
	for i := 0; i < 100; i++ {
		f.appointments.appointments = append(f.appointments.appointments, &domain.Appointment{
			UserID:             99,
			AppointmentDate:    tuesday,
			StartTime:          "10:00",
			LocationType:       domain.LocationOutreach,
			OutreachLocationID: ptr.Ptr(int64(1)),
			Status:             domain.StatusPending,
		})
	}

	resp, err := f.uc.Execute(context.Background(), &Request{
		UserID:             20,
		Date:               tuesday,
		LocationType:       domain.LocationOutreach,
		OutreachLocationID: ptr.Ptr(int64(1)),
	})
	require.NoError(t, err)

	assert.True(t, resp.DateAvailable)
	for _, slot := range resp.Slots {
		assert.True(t, slot.Available)
		assert.Nil(t, slot.SlotCount)
	}
}

func TestExecute_OutreachLocationValidation(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Execute(context.Background(), &Request{
		UserID:             20,
		Date:               tuesday,
		LocationType:       domain.LocationOutreach,
		OutreachLocationID: ptr.Ptr(int64(404)),
	})
	assert.ErrorIs(t, err, ErrLocationNotFound)

	_, err = f.uc.Execute(context.Background(), &Request{
		UserID:             20,
		Date:               tuesday,
		LocationType:       domain.LocationOutreach,
		OutreachLocationID: ptr.Ptr(int64(2)),
	})
	assert.ErrorIs(t, err, ErrLocationInactive)
}

func TestExecute_UnknownProfileTreatedAsUnknownAge(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.Execute(context.Background(), &Request{
		UserID:       777, // профиля нет
		Date:         tuesday,
		LocationType: domain.LocationResourceCenter,
	})
	require.NoError(t, err)

	for _, slot := range resp.Slots {
		assert.Nil(t, slot.AgeGroup)
		assert.Equal(t, 15, *slot.SlotCount)
	}
}

func TestExecute_InvalidInput(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Execute(context.Background(), &Request{
		UserID:       0,
		Date:         tuesday,
		LocationType: domain.LocationResourceCenter,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.uc.Execute(context.Background(), &Request{
		UserID:       20,
		Date:         tuesday,
		LocationType: domain.LocationType("warehouse"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
