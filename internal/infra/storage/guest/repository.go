package guest

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

// Repository репозиторий контактов гостевых записей
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория гостевых записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет контакты гостя; вызывается в той же транзакции, что и создание записи
func (r *Repository) Create(ctx context.Context, g *domain.GuestBooking) (*domain.GuestBooking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}

	query, args, err := psqlbuilder.Insert("guest_bookings").
		Columns(
			"id",
			"appointment_id",
			"client_name",
			"client_phone",
			"client_email",
		).
		Values(
			g.ID,
			g.AppointmentID,
			g.ClientName,
			g.ClientPhone,
			g.ClientEmail,
		).
		Suffix("RETURNING created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&createdAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}
	g.CreatedAt = createdAt.Time

	return g, nil
}

// GetByAppointmentID получает контакты гостя по записи
func (r *Repository) GetByAppointmentID(ctx context.Context, appointmentID uuid.UUID) (*domain.GuestBooking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"appointment_id",
		"client_name",
		"client_phone",
		"client_email",
		"created_at",
	).
		From("guest_bookings").
		Where(squirrel.Eq{"appointment_id": appointmentID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByAppointmentID - build select query: %v", ErrBuildQuery, err)
	}

	var g domain.GuestBooking
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&g.ID,
		&g.AppointmentID,
		&g.ClientName,
		&g.ClientPhone,
		&g.ClientEmail,
		&g.CreatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrGuestNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByAppointmentID - scan guest: %w", ErrExecQuery, err)
	}

	return &g, nil
}
