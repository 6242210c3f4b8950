package appointment

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func appointmentRows() *sqlmock.Rows {
	return sqlmock.NewRows(columns)
}

func addRow(rows *sqlmock.Rows, a *domain.Appointment) *sqlmock.Rows {
	now := time.Now()
	return rows.AddRow(
		a.ID.String(), a.BusinessID.String(), a.ProfessionalID.String(), a.ServiceID.String(), a.ClientID.String(),
		a.StartTime, a.DurationMinutes, a.PaymentAmount, string(a.Status),
		nil, nil, nil, nil, now, now,
	)
}

func sampleAppointment() *domain.Appointment {
	return &domain.Appointment{
		ID:              uuid.New(),
		BusinessID:      uuid.New(),
		ProfessionalID:  uuid.New(),
		ServiceID:       uuid.New(),
		ClientID:        uuid.New(),
		StartTime:       time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC),
		DurationMinutes: 30,
		PaymentAmount:   1500,
		Status:          domain.StatusPending,
	}
}

func TestRepository_Create(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRepository(db)

	a := sampleAppointment()
	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO appointments (id,business_id,professional_id,service_id,client_id,start_time,end_time,")).
		WithArgs(a.ID, a.BusinessID, a.ProfessionalID, a.ServiceID, a.ClientID,
			a.StartTime, a.StartTime.Add(30*time.Minute), 30, 1500.0, "pending", nil, nil).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

	created, err := repo.Create(context.Background(), a)
	require.NoError(t, err)
	assert.Equal(t, now, created.CreatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Create_ExclusionViolation(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRepository(db)

	mock.ExpectQuery("INSERT INTO appointments").
		WillReturnError(&pq.Error{Code: "23P01", Constraint: "appointments_no_overlap"})

	_, err := repo.Create(context.Background(), sampleAppointment())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrOverlap)
	assert.ErrorIs(t, err, domain.ErrSlotConflict)

	var pqErr *pq.Error
	assert.True(t, errors.As(err, &pqErr))
}

func TestRepository_Create_DuplicateIdempotencyKey(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRepository(db)

	mock.ExpectQuery("INSERT INTO appointments").
		WillReturnError(&pq.Error{Code: "23505", Constraint: idempotencyConstraint})

	_, err := repo.Create(context.Background(), sampleAppointment())
	assert.ErrorIs(t, err, ErrDuplicateIdempotencyKey)
	assert.NotErrorIs(t, err, domain.ErrSlotConflict)
}

func TestRepository_GetByID(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRepository(db)

	a := sampleAppointment()
	mock.ExpectQuery(regexp.QuoteMeta("FROM appointments WHERE id = $1")).
		WithArgs(a.ID).
		WillReturnRows(addRow(appointmentRows(), a))

	got, err := repo.GetByID(context.Background(), a.ID)
	require.NoError(t, err)
	assert.Equal(t, a.ID, got.ID)
	assert.Equal(t, a.ClientID, got.ClientID)
	assert.Equal(t, domain.StatusPending, got.Status)
	assert.Equal(t, a.StartTime.Add(30*time.Minute), got.EndTime())
	assert.Nil(t, got.Notes)
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRepository(db)

	mock.ExpectQuery("FROM appointments").WillReturnRows(appointmentRows())

	_, err := repo.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRepository_ListOverlapping_LocksInsideTransaction(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRepository(db)

	a := sampleAppointment()
	start := a.StartTime.Add(15 * time.Minute)
	end := start.Add(30 * time.Minute)

	mock.ExpectBegin()
	tx, err := db.Begin()
	require.NoError(t, err)
	ctx := dbmetrics.WithTx(context.Background(), &dbmetrics.SqlTxWrapper{Tx: tx})

	mock.ExpectQuery(regexp.QuoteMeta("WHERE professional_id = $1 AND status <> $2 AND start_time < $3 AND end_time > $4 AND id <> $5 ORDER BY start_time ASC FOR UPDATE")).
		WithArgs(a.ProfessionalID, "cancelled", end, start, a.ID).
		WillReturnRows(appointmentRows())

	got, err := repo.ListOverlapping(ctx, a.ProfessionalID, start, end, &a.ID)
	require.NoError(t, err)
	assert.Empty(t, got)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ListOverlapping_NoLockOutsideTransaction(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRepository(db)

	a := sampleAppointment()
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY start_time ASC")).
		WillReturnRows(addRow(appointmentRows(), a))

	got, err := repo.ListOverlapping(context.Background(), a.ProfessionalID, a.StartTime, a.EndTime(), nil)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, a.ID, got[0].ID)
}

func TestRepository_ListByClient_RejectsGuestSentinel(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRepository(db)

	_, err := repo.ListByClient(context.Background(), domain.GuestClientID, nil)
	assert.ErrorIs(t, err, ErrGuestClient)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_UpdateStatus(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRepository(db)
	id := uuid.New()

	t.Run("guarded by current status", func(t *testing.T) {
		mock.ExpectExec(regexp.QuoteMeta("UPDATE appointments SET status = $1, updated_at = NOW() WHERE id = $2 AND status = $3")).
			WithArgs("confirmed", id, "pending").
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.UpdateStatus(context.Background(), id, domain.StatusPending, domain.StatusConfirmed, nil))
	})

	t.Run("cancel stores reason", func(t *testing.T) {
		reason := "client asked"
		mock.ExpectExec(regexp.QuoteMeta("cancellation_reason = $2, cancelled_at = NOW()")).
			WithArgs("cancelled", reason, id, "confirmed").
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.UpdateStatus(context.Background(), id, domain.StatusConfirmed, domain.StatusCancelled, &reason))
	})

	t.Run("status changed concurrently", func(t *testing.T) {
		mock.ExpectExec("UPDATE appointments").WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdateStatus(context.Background(), id, domain.StatusPending, domain.StatusConfirmed, nil)
		assert.ErrorIs(t, err, ErrStatusChanged)
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	})

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_UpdateStartTime_ExclusionViolation(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRepository(db)

	mock.ExpectExec("UPDATE appointments SET start_time").
		WillReturnError(&pq.Error{Code: "23P01"})

	start := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	err := repo.UpdateStartTime(context.Background(), uuid.New(), start, start.Add(time.Hour))
	assert.ErrorIs(t, err, domain.ErrSlotConflict)
}

func TestRepository_LockProfessional(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRepository(db)
	id := uuid.New()

	mock.ExpectExec(regexp.QuoteMeta("SELECT pg_advisory_xact_lock($1)")).
		WithArgs(AdvisoryLockKey(id)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.LockProfessional(context.Background(), id))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAdvisoryLockKey_Stable(t *testing.T) {
	id := uuid.MustParse("00000000-0000-0001-ffff-ffffffffffff")
	assert.Equal(t, int64(1), AdvisoryLockKey(id))
	assert.Equal(t, AdvisoryLockKey(id), AdvisoryLockKey(id))
}
