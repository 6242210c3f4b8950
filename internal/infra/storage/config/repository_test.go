package config

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func policyRow(rows *sqlmock.Rows, id, businessID uuid.UUID, professionalID *uuid.UUID, step int) *sqlmock.Rows {
	var prof interface{}
	if professionalID != nil {
		prof = professionalID.String()
	}
	now := time.Now()
	return rows.AddRow(id.String(), businessID.String(), prof, step, 60, 14, 120, now, now)
}

func TestRepository_GetPolicyWithHierarchy_ProfessionalFirst(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	businessID, professionalID, policyID := uuid.New(), uuid.New(), uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("FROM booking_policies WHERE business_id = $1 AND professional_id = $2")).
		WithArgs(businessID, professionalID).
		WillReturnRows(policyRow(sqlmock.NewRows(columns), policyID, businessID, &professionalID, 15))

	p, err := NewRepository(db).GetPolicyWithHierarchy(context.Background(), businessID, &professionalID)
	require.NoError(t, err)
	assert.Equal(t, 15, p.SlotStepMinutes)
	require.NotNil(t, p.ProfessionalID)
	assert.Equal(t, professionalID, *p.ProfessionalID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetPolicyWithHierarchy_FallsBackToBusiness(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	businessID, professionalID, policyID := uuid.New(), uuid.New(), uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("AND professional_id = $2")).
		WillReturnRows(sqlmock.NewRows(columns))
	mock.ExpectQuery(regexp.QuoteMeta("FROM booking_policies WHERE business_id = $1 AND professional_id IS NULL")).
		WithArgs(businessID).
		WillReturnRows(policyRow(sqlmock.NewRows(columns), policyID, businessID, nil, 30))

	p, err := NewRepository(db).GetPolicyWithHierarchy(context.Background(), businessID, &professionalID)
	require.NoError(t, err)
	assert.True(t, p.IsBusinessWide())
	assert.Equal(t, 120, p.CancellationNoticeMinutes)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetPolicyWithHierarchy_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("IS NULL").WillReturnRows(sqlmock.NewRows(columns))

	_, err = NewRepository(db).GetPolicyWithHierarchy(context.Background(), uuid.New(), nil)
	assert.ErrorIs(t, err, ErrPolicyNotFound)
}

func TestRepository_GetPolicyWithHierarchy_QueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("IS NULL").WillReturnError(errors.New("connection reset"))

	_, err = NewRepository(db).GetPolicyWithHierarchy(context.Background(), uuid.New(), nil)
	assert.ErrorIs(t, err, ErrExecQuery)
	assert.NotErrorIs(t, err, ErrPolicyNotFound)
}
