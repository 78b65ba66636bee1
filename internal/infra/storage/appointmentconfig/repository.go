package appointmentconfig

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/velikhov/CSP-BookingService/internal/domain"
	"github.com/velikhov/CSP-BookingService/pkg/dbmetrics"
	"github.com/velikhov/CSP-BookingService/pkg/psqlbuilder"
)

// Repository репозиторий переопределений конфигурации на дату
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория конфигурации
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByDateAndLocation получает переопределение конфигурации на дату и тип локации.
// Возвращает ErrConfigNotFound, если переопределения нет; вызывающая сторона
// в этом случае применяет дефолтные правила.
func (r *Repository) GetByDateAndLocation(ctx context.Context, date time.Time, locationType domain.LocationType) (*domain.AppointmentConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"config_date",
		"location_type",
		"is_available",
		"slots_under_15",
		"slots_over_15",
		"created_at",
		"updated_at",
	).
		From("appointment_configs").
		Where(squirrel.Eq{"config_date": date}).
		Where(squirrel.Eq{"location_type": locationType}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByDateAndLocation - build select query: %v", ErrBuildQuery, err)
	}

	var cfg domain.AppointmentConfig
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&cfg.ID,
		&cfg.Date,
		&cfg.LocationType,
		&cfg.IsAvailable,
		&cfg.SlotsUnder15,
		&cfg.SlotsOver15,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrConfigNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDateAndLocation - scan config: %v", ErrScanRow, err)
	}

	cfg.CreatedAt = createdAt.Time
	cfg.UpdatedAt = updatedAt.Time

	return &cfg, nil
}

// Upsert создает или обновляет переопределение конфигурации на дату.
// Пара (config_date, location_type) уникальна.
func (r *Repository) Upsert(ctx context.Context, cfg *domain.AppointmentConfig) (*domain.AppointmentConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("appointment_configs").
		Columns(
			"config_date",
			"location_type",
			"is_available",
			"slots_under_15",
			"slots_over_15",
		).
		Values(
			cfg.Date,
			cfg.LocationType,
			cfg.IsAvailable,
			cfg.SlotsUnder15,
			cfg.SlotsOver15,
		).
		Suffix(`ON CONFLICT (config_date, location_type) DO UPDATE SET
			is_available = EXCLUDED.is_available,
			slots_under_15 = EXCLUDED.slots_under_15,
			slots_over_15 = EXCLUDED.slots_over_15,
			updated_at = NOW()
		RETURNING id, created_at, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build upsert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&cfg.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute upsert: %v", ErrExecQuery, err)
	}

	cfg.CreatedAt = createdAt.Time
	cfg.UpdatedAt = updatedAt.Time

	return cfg, nil
}
