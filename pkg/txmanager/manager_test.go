package txmanager

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
)

type countingObserver struct{ retries int }

func (o *countingObserver) ObserveTxRetry() { o.retries++ }

func newManager(t *testing.T, opts ...Option) (*TransactionManager, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return NewTransactionManager(dbmetrics.Wrap(sqlDB, nil), opts...), mock
}

func TestDoSerializable_CommitsOnSuccess(t *testing.T) {
	m, mock := newManager(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO appointments").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		require.True(t, dbmetrics.IsInTransaction(ctx))
		_, err := dbmetrics.GetExecutor(ctx, nil).ExecContext(ctx, "INSERT INTO appointments DEFAULT VALUES")
		return err
	})

	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDoSerializable_RollsBackOnError(t *testing.T) {
	m, mock := newManager(t)
	wantErr := errors.New("slot conflict")

	mock.ExpectBegin()
	mock.ExpectRollback()

	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		return wantErr
	})

	assert.ErrorIs(t, err, wantErr)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDoSerializable_RetriesSerializationFailure(t *testing.T) {
	observer := &countingObserver{}
	m, mock := newManager(t, WithMaxRetries(2), WithRetryObserver(observer))

	serializationErr := fmt.Errorf("lock rows: %w", &pq.Error{Code: "40001"})

	mock.ExpectBegin()
	mock.ExpectRollback()
	mock.ExpectBegin()
	mock.ExpectCommit()

	calls := 0
	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		calls++
		if calls == 1 {
			return serializationErr
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.Equal(t, 1, observer.retries)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDoSerializable_GivesUpAfterMaxRetries(t *testing.T) {
	m, mock := newManager(t, WithMaxRetries(1))

	for i := 0; i < 2; i++ {
		mock.ExpectBegin()
		mock.ExpectRollback()
	}

	calls := 0
	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		calls++
		return &pq.Error{Code: "40P01"}
	})

	require.Error(t, err)
	assert.True(t, IsRetryable(err))
	assert.Equal(t, 2, calls)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDo_NestedCallReusesTransaction(t *testing.T) {
	m, mock := newManager(t)

	mock.ExpectBegin()
	mock.ExpectCommit()

	err := m.Do(context.Background(), func(ctx context.Context) error {
		return m.DoSerializable(ctx, func(inner context.Context) error {
			assert.True(t, dbmetrics.IsInTransaction(inner))
			return nil
		})
	})

	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestIsRetryable(t *testing.T) {
	assert.False(t, IsRetryable(errors.New("boom")))
	assert.False(t, IsRetryable(&pq.Error{Code: "23505"}))
	assert.True(t, IsRetryable(&pq.Error{Code: "40001"}))

	internal := errors.New("internal error")
	assert.True(t, IsRetryable(fmt.Errorf("%w: failed to resolve policy: %w", internal, &pq.Error{Code: "40001"})))
	assert.False(t, IsRetryable(fmt.Errorf("%w: failed to resolve policy: %v", internal, &pq.Error{Code: "40001"})))
}
