package outreachlocation

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/velikhov/CSP-BookingService/internal/domain"
	"github.com/velikhov/CSP-BookingService/pkg/dbmetrics"
	"github.com/velikhov/CSP-BookingService/pkg/psqlbuilder"
)

// Repository репозиторий справочника выездных площадок.
// Справочник администрируется извне, сервис бронирования его только читает.
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория площадок
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает площадку по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.OutreachLocation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"name",
		"county",
		"is_active",
		"created_at",
		"updated_at",
	).
		From("outreach_locations").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var loc domain.OutreachLocation
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&loc.ID,
		&loc.Name,
		&loc.County,
		&loc.IsActive,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrLocationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan location: %v", ErrScanRow, err)
	}

	loc.CreatedAt = createdAt.Time
	loc.UpdatedAt = updatedAt.Time

	return &loc, nil
}

// ListActive получает все активные площадки, отсортированные по округу и названию.
// Только активные площадки доступны для записи.
func (r *Repository) ListActive(ctx context.Context) ([]*domain.OutreachLocation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"name",
		"county",
		"is_active",
		"created_at",
		"updated_at",
	).
		From("outreach_locations").
		Where(squirrel.Eq{"is_active": true}).
		OrderBy("county ASC, name ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	locations := make([]*domain.OutreachLocation, 0)

	for rows.Next() {
		var loc domain.OutreachLocation
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&loc.ID,
			&loc.Name,
			&loc.County,
			&loc.IsActive,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListActive - scan row: %v", ErrScanRow, err)
		}

		loc.CreatedAt = createdAt.Time
		loc.UpdatedAt = updatedAt.Time

		locations = append(locations, &loc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListActive - rows error: %v", ErrScanRow, err)
	}

	return locations, nil
}
