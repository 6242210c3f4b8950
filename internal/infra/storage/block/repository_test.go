package block

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
)

func TestRepository_ListOverlapping(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	professionalID := uuid.New()
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	end := start.Add(10 * time.Hour)

	blockID := uuid.New()
	mock.ExpectQuery(regexp.QuoteMeta("FROM schedule_blocks WHERE professional_id = $1 AND start_time < $2 AND end_time > $3 ORDER BY start_time ASC")).
		WithArgs(professionalID, end, start).
		WillReturnRows(sqlmock.NewRows([]string{"id", "professional_id", "start_time", "end_time", "reason"}).
			AddRow(blockID.String(), professionalID.String(), start.Add(4*time.Hour), start.Add(5*time.Hour), "lunch"))

	blocks, err := repo.ListOverlapping(context.Background(), professionalID, start, end)
	require.NoError(t, err)
	require.Len(t, blocks, 1)
	assert.Equal(t, blockID, blocks[0].ID)
	require.NotNil(t, blocks[0].Reason)
	assert.Equal(t, "lunch", *blocks[0].Reason)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ListOverlapping_SharesLockInTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	tx, err := db.Begin()
	require.NoError(t, err)
	ctx := dbmetrics.WithTx(context.Background(), &dbmetrics.SqlTxWrapper{Tx: tx})

	mock.ExpectQuery("FOR SHARE").
		WillReturnRows(sqlmock.NewRows([]string{"id", "professional_id", "start_time", "end_time", "reason"}))

	start := time.Now()
	blocks, err := NewRepository(db).ListOverlapping(ctx, uuid.New(), start, start.Add(time.Hour))
	require.NoError(t, err)
	assert.Empty(t, blocks)
}
