package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/psqlbuilder"
)

// Repository репозиторий справочников: компании, мастера, услуги
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория справочников
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetBusiness получает компанию вместе с расписанием работы
func (r *Repository) GetBusiness(ctx context.Context, id uuid.UUID) (*domain.Business, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"name",
		"timezone",
		"opening_hours",
		"is_active",
	).
		From("businesses").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetBusiness - build select query: %v", ErrBuildQuery, err)
	}

	var b domain.Business
	var openingHours []byte

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&b.ID,
		&b.Name,
		&b.Timezone,
		&openingHours,
		&b.IsActive,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBusinessNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetBusiness - scan business: %w", ErrScanRow, err)
	}

	if len(openingHours) > 0 {
		if err := json.Unmarshal(openingHours, &b.OpeningHours); err != nil {
			return nil, fmt.Errorf("%w: business id=%s: %v", ErrDecodeOpeningHours, id, err)
		}
	}

	return &b, nil
}

// GetProfessional получает мастера по ID
func (r *Repository) GetProfessional(ctx context.Context, id uuid.UUID) (*domain.Professional, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"business_id",
		"name",
		"is_active",
	).
		From("professionals").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetProfessional - build select query: %v", ErrBuildQuery, err)
	}

	var p domain.Professional
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&p.ID,
		&p.BusinessID,
		&p.Name,
		&p.IsActive,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProfessionalNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetProfessional - scan professional: %w", ErrScanRow, err)
	}

	return &p, nil
}

// GetService получает услугу по ID
func (r *Repository) GetService(ctx context.Context, id uuid.UUID) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"business_id",
		"name",
		"duration_minutes",
		"price",
		"is_active",
	).
		From("services").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetService - build select query: %v", ErrBuildQuery, err)
	}

	var s domain.Service
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.ID,
		&s.BusinessID,
		&s.Name,
		&s.DurationMinutes,
		&s.Price,
		&s.IsActive,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetService - scan service: %w", ErrScanRow, err)
	}

	return &s, nil
}
