package guest

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

func TestRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	appointmentID := uuid.New()
	g := domain.NewGuestBooking(domain.GuestContact{Name: "Anna", Phone: "+79991234567"})
	g.AppointmentID = appointmentID

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO guest_bookings (id,appointment_id,client_name,client_phone,client_email)")).
		WithArgs(sqlmock.AnyArg(), appointmentID, "Anna", "+79991234567", nil).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(time.Now()))

	created, err := NewRepository(db).Create(context.Background(), g)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.False(t, created.CreatedAt.IsZero())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByAppointmentID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("FROM guest_bookings").
		WillReturnRows(sqlmock.NewRows([]string{"id", "appointment_id", "client_name", "client_phone", "client_email", "created_at"}))

	_, err = NewRepository(db).GetByAppointmentID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrGuestNotFound)
}
