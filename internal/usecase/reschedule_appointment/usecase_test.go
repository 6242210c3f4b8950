package reschedule_appointment

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
	"github.com/m04kA/SMC-AppointmentService/pkg/metrics"
)

type memoryStore struct {
	mu    sync.Mutex
	items map[uuid.UUID]*domain.Appointment
}

func (s *memoryStore) GetByIDForUpdate(_ context.Context, id uuid.UUID) (*domain.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.items[id]
	if !ok {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	copied := *a
	return &copied, nil
}

func (s *memoryStore) ListOverlapping(_ context.Context, professionalID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) ([]*domain.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*domain.Appointment, 0)
	for _, a := range s.items {
		if excludeID != nil && a.ID == *excludeID {
			continue
		}
		if a.ProfessionalID == professionalID && !a.IsCancelled() &&
			a.StartTime.Before(end) && a.EndTime().After(start) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *memoryStore) LockProfessional(context.Context, uuid.UUID) error {
	return nil
}

func (s *memoryStore) UpdateStartTime(_ context.Context, id uuid.UUID, start, _ time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.items[id]
	if !ok {
		return appointmentRepo.ErrAppointmentNotFound
	}
	a.StartTime = start
	return nil
}

func (s *memoryStore) startOf(id uuid.UUID) time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.items[id].StartTime
}

type fakeBlocks struct{}

func (fakeBlocks) ListOverlapping(context.Context, uuid.UUID, time.Time, time.Time) ([]*domain.ScheduleBlock, error) {
	return nil, nil
}

type fakeBusinesses struct {
	business *domain.Business
}

func (f fakeBusinesses) GetBusiness(context.Context, uuid.UUID) (*domain.Business, error) {
	return f.business, nil
}

type fakePolicies struct {
	policy *domain.BookingPolicy
}

func (f *fakePolicies) Resolve(context.Context, uuid.UUID, *uuid.UUID) (*domain.BookingPolicy, error) {
	return f.policy, nil
}

type serialTx struct {
	mu sync.Mutex
}

func (tx *serialTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	tx.mu.Lock()
	defer tx.mu.Unlock()
	return fn(ctx)
}

type fakeMetrics struct {
	results []string
}

func (m *fakeMetrics) ObserveTransition(action, result string) {
	m.results = append(m.results, action+":"+result)
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

func utc(day, hour, minute int) time.Time {
	return time.Date(2026, 3, day, hour, minute, 0, 0, time.UTC)
}

type fixture struct {
	uc           *UseCase
	store        *memoryStore
	policies     *fakePolicies
	metrics      *fakeMetrics
	businessID   uuid.UUID
	professional uuid.UUID
	owner        domain.Actor
	appointment  *domain.Appointment
}

func newFixture() *fixture {
	businessID := uuid.New()
	business := &domain.Business{
		ID:       businessID,
		Timezone: "UTC",
		IsActive: true,
		OpeningHours: domain.OpeningHours{
			Tuesday: domain.DaySchedule{IsOpen: true, Open: "09:00", Close: "19:00"},
		},
	}

	f := &fixture{
		store:        &memoryStore{items: map[uuid.UUID]*domain.Appointment{}},
		policies:     &fakePolicies{policy: domain.DefaultBookingPolicy(businessID)},
		metrics:      &fakeMetrics{},
		businessID:   businessID,
		professional: uuid.New(),
		owner:        domain.Actor{AccountID: uuid.New(), Role: domain.RoleClient},
	}
	f.appointment = f.add(utc(10, 14, 0), f.owner.AccountID, domain.StatusPending)

	f.uc = NewUseCase(
		f.store,
		fakeBlocks{},
		fakeBusinesses{business: business},
		f.policies,
		&serialTx{},
		f.metrics,
		logger.NewNop(),
	).WithTimeProvider(fixedTime{now: utc(10, 7, 0)})

	return f
}

func (f *fixture) add(start time.Time, clientID uuid.UUID, status domain.AppointmentStatus) *domain.Appointment {
	a := &domain.Appointment{
		ID:              uuid.New(),
		BusinessID:      f.businessID,
		ProfessionalID:  f.professional,
		ServiceID:       uuid.New(),
		ClientID:        clientID,
		StartTime:       start,
		DurationMinutes: 60,
		Status:          status,
	}
	f.store.items[a.ID] = a
	return a
}

func (f *fixture) request(actor domain.Actor, start time.Time) *Request {
	return &Request{AppointmentID: f.appointment.ID, StartTime: start, Actor: actor}
}

func TestExecute_OwnerMovesAppointment(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.Execute(context.Background(), f.request(f.owner, utc(10, 16, 0)))
	require.NoError(t, err)

	assert.Equal(t, utc(10, 16, 0), resp.StartTime)
	assert.Equal(t, utc(10, 17, 0), resp.EndTime)
	assert.Equal(t, utc(10, 14, 0), resp.PreviousStart)
	assert.Equal(t, string(domain.StatusPending), resp.Status)
	assert.Equal(t, utc(10, 16, 0), f.store.startOf(f.appointment.ID))
	assert.Equal(t, []string{"reschedule:" + metrics.TransitionApplied}, f.metrics.results)
}

func TestExecute_MayOverlapItsOwnOldTime(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Execute(context.Background(), f.request(f.owner, utc(10, 14, 30)))
	require.NoError(t, err)
	assert.Equal(t, utc(10, 14, 30), f.store.startOf(f.appointment.ID))
}

func TestExecute_ConflictLeavesStartUnchanged(t *testing.T) {
	f := newFixture()
	f.add(utc(10, 16, 0), uuid.New(), domain.StatusConfirmed)

	_, err := f.uc.Execute(context.Background(), f.request(f.owner, utc(10, 15, 30)))
	assert.ErrorIs(t, err, ErrSlotTaken)
	assert.ErrorIs(t, err, domain.ErrSlotConflict)
	assert.Equal(t, utc(10, 14, 0), f.store.startOf(f.appointment.ID))
	assert.Equal(t, []string{"reschedule:" + metrics.TransitionConflict}, f.metrics.results)
}

func TestExecute_CancelledNeighbourDoesNotBlock(t *testing.T) {
	f := newFixture()
	f.add(utc(10, 16, 0), uuid.New(), domain.StatusCancelled)

	_, err := f.uc.Execute(context.Background(), f.request(f.owner, utc(10, 16, 0)))
	assert.NoError(t, err)
}

func TestExecute_TerminalStatuses(t *testing.T) {
	for _, status := range []domain.AppointmentStatus{domain.StatusCompleted, domain.StatusCancelled} {
		t.Run(string(status), func(t *testing.T) {
			f := newFixture()
			f.appointment.Status = status

			_, err := f.uc.Execute(context.Background(), f.request(f.owner, utc(10, 16, 0)))
			assert.ErrorIs(t, err, ErrNotReschedulable)
			assert.ErrorIs(t, err, domain.ErrInvalidTransition)
			assert.Equal(t, utc(10, 14, 0), f.store.startOf(f.appointment.ID))
		})
	}
}

func TestExecute_Access(t *testing.T) {
	t.Run("another client", func(t *testing.T) {
		f := newFixture()
		stranger := domain.Actor{AccountID: uuid.New(), Role: domain.RoleClient}
		_, err := f.uc.Execute(context.Background(), f.request(stranger, utc(10, 16, 0)))
		assert.ErrorIs(t, err, domain.ErrAccessDenied)
	})

	t.Run("another business", func(t *testing.T) {
		f := newFixture()
		staff := domain.Actor{AccountID: uuid.New(), Role: domain.RoleBusiness, BusinessID: uuid.New()}
		_, err := f.uc.Execute(context.Background(), f.request(staff, utc(10, 16, 0)))
		assert.ErrorIs(t, err, domain.ErrAccessDenied)
	})

	t.Run("guest appointment is not owned by any client", func(t *testing.T) {
		f := newFixture()
		f.appointment.ClientID = domain.GuestClientID
		anyone := domain.Actor{AccountID: uuid.New(), Role: domain.RoleClient}
		_, err := f.uc.Execute(context.Background(), f.request(anyone, utc(10, 16, 0)))
		assert.ErrorIs(t, err, domain.ErrAccessDenied)
	})

	t.Run("business moves guest appointment", func(t *testing.T) {
		f := newFixture()
		f.appointment.ClientID = domain.GuestClientID
		staff := domain.Actor{AccountID: uuid.New(), Role: domain.RoleBusiness, BusinessID: f.businessID}
		_, err := f.uc.Execute(context.Background(), f.request(staff, utc(10, 16, 0)))
		assert.NoError(t, err)
	})
}

func TestExecute_CancellationNoticeAppliesToClientsOnly(t *testing.T) {
	f := newFixture()
	f.policies.policy.CancellationNoticeMinutes = 8 * 60

	_, err := f.uc.Execute(context.Background(), f.request(f.owner, utc(10, 16, 0)))
	var perr *domain.PolicyViolationError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "cancellation_notice", perr.Policy)
	assert.ErrorIs(t, err, domain.ErrPolicyViolation)
	assert.Equal(t, utc(10, 14, 0), f.store.startOf(f.appointment.ID))

	staff := domain.Actor{AccountID: uuid.New(), Role: domain.RoleBusiness, BusinessID: f.businessID}
	_, err = f.uc.Execute(context.Background(), f.request(staff, utc(10, 16, 0)))
	assert.NoError(t, err)
}

func TestExecute_CancellationNoticeForOwnerActingAsOtherBusiness(t *testing.T) {
	f := newFixture()
	f.policies.policy.CancellationNoticeMinutes = 8 * 60
	owner := domain.Actor{AccountID: f.owner.AccountID, Role: domain.RoleBusiness, BusinessID: uuid.New()}

	_, err := f.uc.Execute(context.Background(), f.request(owner, utc(10, 16, 0)))
	assert.ErrorIs(t, err, domain.ErrPolicyViolation)
	assert.Equal(t, utc(10, 14, 0), f.store.startOf(f.appointment.ID))
}

func TestExecute_StartTimeRules(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Execute(context.Background(), f.request(f.owner, utc(10, 16, 20)))
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "startTime")

	_, err = f.uc.Execute(context.Background(), f.request(f.owner, utc(10, 18, 30)))
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, utc(10, 14, 0), f.store.startOf(f.appointment.ID))
}

func TestExecute_NotFound(t *testing.T) {
	f := newFixture()
	req := f.request(f.owner, utc(10, 16, 0))
	req.AppointmentID = uuid.New()

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
