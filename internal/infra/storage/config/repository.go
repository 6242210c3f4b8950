package config

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/psqlbuilder"
)

const table = "booking_policies"

var columns = []string{
	"id",
	"business_id",
	"professional_id",
	"slot_step_minutes",
	"min_booking_notice_minutes",
	"advance_booking_days",
	"cancellation_notice_minutes",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с политиками бронирования
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория политик бронирования
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую политику бронирования
// Если в контексте передана активная транзакция, использует её
func (r *Repository) Create(ctx context.Context, p *domain.BookingPolicy) (*domain.BookingPolicy, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"id",
			"business_id",
			"professional_id",
			"slot_step_minutes",
			"min_booking_notice_minutes",
			"advance_booking_days",
			"cancellation_notice_minutes",
		).
		Values(
			p.ID,
			p.BusinessID,
			p.ProfessionalID,
			p.SlotStepMinutes,
			p.MinBookingNoticeMinutes,
			p.AdvanceBookingDays,
			p.CancellationNoticeMinutes,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	p.CreatedAt = createdAt.Time
	p.UpdatedAt = updatedAt.Time

	return p, nil
}

// GetByBusinessAndProfessional получает политику ровно одного уровня иерархии:
// professionalID = nil - политика всей компании, иначе политика конкретного мастера
func (r *Repository) GetByBusinessAndProfessional(ctx context.Context, businessID uuid.UUID, professionalID *uuid.UUID) (*domain.BookingPolicy, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"business_id": businessID})

	// Фильтрация по professional_id (NULL или конкретное значение)
	if professionalID == nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"professional_id": nil})
	} else {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"professional_id": *professionalID})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBusinessAndProfessional - build select query: %v", ErrBuildQuery, err)
	}

	p, err := scanPolicy(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPolicyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBusinessAndProfessional - scan policy: %w", ErrScanRow, err)
	}

	return p, nil
}

// GetPolicyWithHierarchy получает политику с учетом иерархии приоритетов
// Приоритет:
// 1. Политика конкретного мастера (businessID, professionalID)
// 2. Политика всей компании (businessID, NULL)
//
// Если политика не найдена ни на одном уровне, возвращает ErrPolicyNotFound
func (r *Repository) GetPolicyWithHierarchy(ctx context.Context, businessID uuid.UUID, professionalID *uuid.UUID) (*domain.BookingPolicy, error) {
	// 1. Пробуем получить политику мастера
	if professionalID != nil {
		p, err := r.GetByBusinessAndProfessional(ctx, businessID, professionalID)
		if err == nil {
			return p, nil
		}
		if !errors.Is(err, ErrPolicyNotFound) {
			return nil, fmt.Errorf("%w: GetPolicyWithHierarchy - level 1 (professional): %w", ErrExecQuery, err)
		}
	}

	// 2. Пробуем получить политику компании
	p, err := r.GetByBusinessAndProfessional(ctx, businessID, nil)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, ErrPolicyNotFound) {
		return nil, fmt.Errorf("%w: GetPolicyWithHierarchy - level 2 (business): %w", ErrExecQuery, err)
	}

	return nil, ErrPolicyNotFound
}

// GetAllByBusiness получает все политики компании, политика компании первой
func (r *Repository) GetAllByBusiness(ctx context.Context, businessID uuid.UUID) ([]*domain.BookingPolicy, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"business_id": businessID}).
		OrderBy("professional_id ASC NULLS FIRST").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetAllByBusiness - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetAllByBusiness - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	policies := make([]*domain.BookingPolicy, 0)
	for rows.Next() {
		p, err := scanPolicy(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetAllByBusiness - scan row: %w", ErrScanRow, err)
		}
		policies = append(policies, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetAllByBusiness - rows error: %w", ErrScanRow, err)
	}

	return policies, nil
}

// Update обновляет значения политики
func (r *Repository) Update(ctx context.Context, id uuid.UUID, p *domain.BookingPolicy) (*domain.BookingPolicy, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("slot_step_minutes", p.SlotStepMinutes).
		Set("min_booking_notice_minutes", p.MinBookingNoticeMinutes).
		Set("advance_booking_days", p.AdvanceBookingDays).
		Set("cancellation_notice_minutes", p.CancellationNoticeMinutes).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPolicyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %w", ErrExecQuery, err)
	}

	p.ID = id
	p.CreatedAt = createdAt.Time
	p.UpdatedAt = updatedAt.Time

	return p, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPolicy(row rowScanner) (*domain.BookingPolicy, error) {
	var p domain.BookingPolicy
	var professionalID uuid.NullUUID
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&p.ID,
		&p.BusinessID,
		&professionalID,
		&p.SlotStepMinutes,
		&p.MinBookingNoticeMinutes,
		&p.AdvanceBookingDays,
		&p.CancellationNoticeMinutes,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if professionalID.Valid {
		id := professionalID.UUID
		p.ProfessionalID = &id
	}
	p.CreatedAt = createdAt.Time
	p.UpdatedAt = updatedAt.Time

	return &p, nil
}
