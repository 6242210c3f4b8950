package appointment

import (
	"context"
	"database/sql"
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/psqlbuilder"
)

const table = "appointments"

var columns = []string{
	"id",
	"business_id",
	"professional_id",
	"service_id",
	"client_id",
	"start_time",
	"duration_minutes",
	"payment_amount",
	"status",
	"notes",
	"idempotency_key",
	"cancellation_reason",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с записями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую запись
// end_time хранится отдельно для ограничения исключения по tstzrange(start_time, end_time)
// Если пересечение поймано ограничением, возвращает ErrOverlap
func (r *Repository) Create(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"id",
			"business_id",
			"professional_id",
			"service_id",
			"client_id",
			"start_time",
			"end_time",
			"duration_minutes",
			"payment_amount",
			"status",
			"notes",
			"idempotency_key",
		).
		Values(
			a.ID,
			a.BusinessID,
			a.ProfessionalID,
			a.ServiceID,
			a.ClientID,
			a.StartTime,
			a.EndTime(),
			a.DurationMinutes,
			a.PaymentAmount,
			a.Status,
			a.Notes,
			a.IdempotencyKey,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)
	if err != nil {
		switch {
		case isExclusionViolation(err):
			return nil, fmt.Errorf("%w: Create - %w", ErrOverlap, err)
		case isIdempotencyViolation(err):
			return nil, fmt.Errorf("%w: Create - %w", ErrDuplicateIdempotencyKey, err)
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	a.CreatedAt = createdAt.Time
	a.UpdatedAt = updatedAt.Time

	return a, nil
}

// GetByID получает запись по ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Appointment, error) {
	return r.getOne(ctx, "GetByID", squirrel.Eq{"id": id}, false)
}

// GetByIDForUpdate получает запись по ID и блокирует строку до конца транзакции
// Вне транзакции работает как GetByID
func (r *Repository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Appointment, error) {
	return r.getOne(ctx, "GetByIDForUpdate", squirrel.Eq{"id": id}, dbmetrics.IsInTransaction(ctx))
}

// FindByIdempotencyKey ищет запись компании, созданную с тем же ключом идемпотентности
func (r *Repository) FindByIdempotencyKey(ctx context.Context, businessID uuid.UUID, key string) (*domain.Appointment, error) {
	return r.getOne(ctx, "FindByIdempotencyKey", squirrel.Eq{"business_id": businessID, "idempotency_key": key}, false)
}

func (r *Repository) getOne(ctx context.Context, op string, where squirrel.Sqlizer, forUpdate bool) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(where)
	if forUpdate {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	a, err := scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan appointment: %w", ErrScanRow, op, err)
	}

	return a, nil
}

// ListOverlapping получает неотменённые записи профессионала, пересекающиеся с [start, end)
// excludeID исключает запись из выборки (перенос записи не конфликтует сам с собой)
// Внутри транзакции строки блокируются FOR UPDATE
func (r *Repository) ListOverlapping(ctx context.Context, professionalID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"professional_id": professionalID}).
		Where(squirrel.NotEq{"status": string(domain.StatusCancelled)}).
		Where(squirrel.Lt{"start_time": end}).
		Where(squirrel.Gt{"end_time": start}).
		OrderBy("start_time ASC")

	if excludeID != nil {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"id": *excludeID})
	}

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListOverlapping - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListOverlapping - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanAppointments(rows)
}

// ListByProfessional получает записи профессионала, начинающиеся в [from, to)
// Для дашборда компании, включая отменённые
func (r *Repository) ListByProfessional(ctx context.Context, professionalID uuid.UUID, from, to time.Time) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"professional_id": professionalID}).
		Where(squirrel.GtOrEq{"start_time": from}).
		Where(squirrel.Lt{"start_time": to}).
		OrderBy("start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByProfessional - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByProfessional - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanAppointments(rows)
}

// ListByClient получает записи клиента, сначала новые
// Гостевой идентификатор не является аккаунтом и отклоняется
func (r *Repository) ListByClient(ctx context.Context, clientID uuid.UUID, status *domain.AppointmentStatus) ([]*domain.Appointment, error) {
	if clientID == domain.GuestClientID {
		return nil, ErrGuestClient
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"client_id": clientID}).
		OrderBy("start_time DESC")

	// Фильтрация по статусу, если указан
	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": string(*status)})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByClient - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByClient - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanAppointments(rows)
}

// UpdateStatus переводит запись из статуса from в статус to
// Обновление условное: если статус уже изменился, возвращает ErrStatusChanged
// При отмене сохраняет причину и время отмены
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to domain.AppointmentStatus, reason *string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update(table).
		Set("status", string(to)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": string(from)})

	if to == domain.StatusCancelled {
		updateBuilder = updateBuilder.
			Set("cancellation_reason", reason).
			Set("cancelled_at", squirrel.Expr("NOW()"))
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrStatusChanged
	}

	return nil
}

// UpdateStartTime переносит запись на новое время, длительность не меняется
// Если пересечение поймано ограничением, возвращает ErrOverlap
func (r *Repository) UpdateStartTime(ctx context.Context, id uuid.UUID, start, end time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("start_time", start).
		Set("end_time", end).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStartTime - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if isExclusionViolation(err) {
			return fmt.Errorf("%w: UpdateStartTime - %w", ErrOverlap, err)
		}
		return fmt.Errorf("%w: UpdateStartTime - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStartTime - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrAppointmentNotFound
	}

	return nil
}

// LockProfessional берет транзакционную advisory-блокировку на расписание профессионала
// Блокировка снимается при commit/rollback; вне транзакции вызывать бессмысленно
func (r *Repository) LockProfessional(ctx context.Context, professionalID uuid.UUID) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if _, err := executor.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1)", AdvisoryLockKey(professionalID)); err != nil {
		return fmt.Errorf("%w: LockProfessional - execute lock: %w", ErrExecQuery, err)
	}

	return nil
}

// AdvisoryLockKey ключ advisory-блокировки профессионала: первые 8 байт UUID
func AdvisoryLockKey(id uuid.UUID) int64 {
	return int64(binary.BigEndian.Uint64(id[:8]))
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAppointment(row rowScanner) (*domain.Appointment, error) {
	var a domain.Appointment
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&a.ID,
		&a.BusinessID,
		&a.ProfessionalID,
		&a.ServiceID,
		&a.ClientID,
		&a.StartTime,
		&a.DurationMinutes,
		&a.PaymentAmount,
		&a.Status,
		&a.Notes,
		&a.IdempotencyKey,
		&a.CancellationReason,
		&a.CancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	a.CreatedAt = createdAt.Time
	a.UpdatedAt = updatedAt.Time

	return &a, nil
}

// scanAppointments сканирует результаты запроса в слайс записей
func scanAppointments(rows *sql.Rows) ([]*domain.Appointment, error) {
	appointments := make([]*domain.Appointment, 0)

	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanAppointments - scan row: %w", ErrScanRow, err)
		}
		appointments = append(appointments, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanAppointments - rows error: %w", ErrScanRow, err)
	}

	return appointments, nil
}
