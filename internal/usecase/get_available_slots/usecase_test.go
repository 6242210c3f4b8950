package get_available_slots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-AppointmentService/internal/scheduling"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
)

type fakeCatalog struct {
	business     *domain.Business
	professional *domain.Professional
	service      *domain.Service
}

func (f *fakeCatalog) GetBusiness(_ context.Context, id uuid.UUID) (*domain.Business, error) {
	if f.business == nil || f.business.ID != id {
		return nil, catalogRepo.ErrBusinessNotFound
	}
	return f.business, nil
}

func (f *fakeCatalog) GetProfessional(_ context.Context, id uuid.UUID) (*domain.Professional, error) {
	if f.professional == nil || f.professional.ID != id {
		return nil, catalogRepo.ErrProfessionalNotFound
	}
	return f.professional, nil
}

func (f *fakeCatalog) GetService(_ context.Context, id uuid.UUID) (*domain.Service, error) {
	if f.service == nil || f.service.ID != id {
		return nil, catalogRepo.ErrServiceNotFound
	}
	return f.service, nil
}

type fakeAppointments struct {
	items []*domain.Appointment
	err   error
}

func (f *fakeAppointments) ListOverlapping(_ context.Context, professionalID uuid.UUID, start, end time.Time, _ *uuid.UUID) ([]*domain.Appointment, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]*domain.Appointment, 0)
	query := scheduling.Interval{Start: start, End: end}
	for _, a := range f.items {
		if a.ProfessionalID == professionalID && !a.IsCancelled() &&
			query.Overlaps(scheduling.Interval{Start: a.StartTime, End: a.EndTime()}) {
			out = append(out, a)
		}
	}
	return out, nil
}

type fakeBlocks struct {
	items []*domain.ScheduleBlock
}

func (f *fakeBlocks) ListOverlapping(_ context.Context, professionalID uuid.UUID, start, end time.Time) ([]*domain.ScheduleBlock, error) {
	out := make([]*domain.ScheduleBlock, 0)
	for _, b := range f.items {
		if b.ProfessionalID == professionalID && b.StartTime.Before(end) && b.EndTime.After(start) {
			out = append(out, b)
		}
	}
	return out, nil
}

type fakePolicies struct {
	policy *domain.BookingPolicy
}

func (f *fakePolicies) Resolve(_ context.Context, businessID uuid.UUID, _ *uuid.UUID) (*domain.BookingPolicy, error) {
	if f.policy != nil {
		return f.policy, nil
	}
	return domain.DefaultBookingPolicy(businessID), nil
}

type fakeMetrics struct {
	results []string
}

func (m *fakeMetrics) ObserveAvailability(result string) {
	m.results = append(m.results, result)
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type fixture struct {
	uc           *UseCase
	catalog      *fakeCatalog
	appointments *fakeAppointments
	blocks       *fakeBlocks
	policies     *fakePolicies
	metrics      *fakeMetrics
	req          *Request
}

func utc(day, hour, minute int) time.Time {
	return time.Date(2026, 3, day, hour, minute, 0, 0, time.UTC)
}

func newFixture(now time.Time) *fixture {
	business := &domain.Business{
		ID:       uuid.New(),
		Timezone: "UTC",
		IsActive: true,
		OpeningHours: domain.OpeningHours{
			Tuesday: domain.DaySchedule{IsOpen: true, Open: "09:00", Close: "19:00"},
			Exceptions: map[string]domain.DaySchedule{
				"2026-03-17": {IsOpen: false},
			},
		},
	}
	professional := &domain.Professional{ID: uuid.New(), BusinessID: business.ID, IsActive: true}
	service := &domain.Service{ID: uuid.New(), BusinessID: business.ID, DurationMinutes: 60, Price: 2000, IsActive: true}

	f := &fixture{
		catalog:      &fakeCatalog{business: business, professional: professional, service: service},
		appointments: &fakeAppointments{},
		blocks:       &fakeBlocks{},
		policies:     &fakePolicies{},
		metrics:      &fakeMetrics{},
		req: &Request{
			BusinessID:     business.ID,
			ProfessionalID: professional.ID,
			ServiceID:      service.ID,
			Date:           utc(10, 0, 0),
		},
	}
	f.uc = NewUseCase(f.catalog, f.appointments, f.blocks, f.policies, f.metrics, logger.NewNop()).
		WithTimeProvider(fixedTime{now: now})
	return f
}

func (f *fixture) book(start time.Time, status domain.AppointmentStatus) {
	f.appointments.items = append(f.appointments.items, &domain.Appointment{
		ID:              uuid.New(),
		ProfessionalID:  f.req.ProfessionalID,
		StartTime:       start,
		DurationMinutes: 60,
		Status:          status,
	})
}

// Окно 09:00-19:00, шаг 30 минут, услуга 60 минут, запись 11:00-12:00
func TestExecute_DayScenario(t *testing.T) {
	f := newFixture(utc(10, 7, 0))
	f.book(utc(10, 11, 0), domain.StatusConfirmed)
	f.book(utc(10, 15, 0), domain.StatusCancelled)

	resp, err := f.uc.Execute(context.Background(), f.req)
	require.NoError(t, err)

	assert.Len(t, resp.Slots, 16)
	assert.Equal(t, utc(10, 9, 0), resp.Slots[0])
	assert.Equal(t, utc(10, 18, 0), resp.Slots[len(resp.Slots)-1])
	assert.Contains(t, resp.Slots, utc(10, 10, 0))
	assert.NotContains(t, resp.Slots, utc(10, 10, 30))
	assert.NotContains(t, resp.Slots, utc(10, 11, 0))
	assert.NotContains(t, resp.Slots, utc(10, 11, 30))
	assert.Contains(t, resp.Slots, utc(10, 12, 0))
	assert.Contains(t, resp.Slots, utc(10, 15, 0), "cancelled appointment frees its time")
	assert.Equal(t, 60, resp.DurationMinutes)
	assert.Equal(t, []string{resultOK}, f.metrics.results)
}

func TestExecute_NeverReturnsPastOrOverlapping(t *testing.T) {
	now := utc(10, 13, 10)
	f := newFixture(now)
	f.book(utc(10, 15, 0), domain.StatusPending)
	f.blocks.items = []*domain.ScheduleBlock{
		{ID: uuid.New(), ProfessionalID: f.req.ProfessionalID, StartTime: utc(10, 17, 0), EndTime: utc(10, 17, 30)},
	}

	resp, err := f.uc.Execute(context.Background(), f.req)
	require.NoError(t, err)
	require.NotEmpty(t, resp.Slots)

	earliest := now.Add(time.Hour)
	busy := []scheduling.Interval{
		{Start: utc(10, 15, 0), End: utc(10, 16, 0)},
		{Start: utc(10, 17, 0), End: utc(10, 17, 30)},
	}
	for _, s := range resp.Slots {
		assert.True(t, s.After(earliest), "slot %s is inside min notice", s)
		for _, b := range busy {
			assert.False(t, scheduling.NewInterval(s, time.Hour).Overlaps(b), "slot %s overlaps busy time", s)
		}
	}
	assert.Equal(t, utc(10, 16, 0), resp.Slots[0])
}

func TestExecute_ClosedDay(t *testing.T) {
	f := newFixture(utc(10, 7, 0))
	f.req.Date = utc(17, 0, 0)

	resp, err := f.uc.Execute(context.Background(), f.req)
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
	assert.Equal(t, []string{resultClosed}, f.metrics.results)
}

func TestExecute_DateValidation(t *testing.T) {
	f := newFixture(utc(10, 7, 0))
	f.policies.policy = domain.DefaultBookingPolicy(f.req.BusinessID)
	f.policies.policy.AdvanceBookingDays = 3

	f.req.Date = utc(9, 0, 0)
	_, err := f.uc.Execute(context.Background(), f.req)
	assert.ErrorIs(t, err, domain.ErrValidation)

	f.req.Date = utc(24, 0, 0)
	_, err = f.uc.Execute(context.Background(), f.req)
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "date")
}

func TestExecute_CatalogChecks(t *testing.T) {
	t.Run("unknown service", func(t *testing.T) {
		f := newFixture(utc(10, 7, 0))
		f.req.ServiceID = uuid.New()
		_, err := f.uc.Execute(context.Background(), f.req)
		assert.ErrorIs(t, err, ErrServiceNotFound)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("professional of another business", func(t *testing.T) {
		f := newFixture(utc(10, 7, 0))
		f.catalog.professional.BusinessID = uuid.New()
		_, err := f.uc.Execute(context.Background(), f.req)
		assert.ErrorIs(t, err, ErrProfessionalNotFound)
	})

	t.Run("inactive professional", func(t *testing.T) {
		f := newFixture(utc(10, 7, 0))
		f.catalog.professional.IsActive = false
		_, err := f.uc.Execute(context.Background(), f.req)
		assert.ErrorIs(t, err, domain.ErrInactive)
	})

	t.Run("inactive service", func(t *testing.T) {
		f := newFixture(utc(10, 7, 0))
		f.catalog.service.IsActive = false
		_, err := f.uc.Execute(context.Background(), f.req)
		assert.ErrorIs(t, err, ErrServiceInactive)
		assert.Equal(t, []string{resultRejected}, f.metrics.results)
	})
}

func TestExecute_RepositoryFailure(t *testing.T) {
	f := newFixture(utc(10, 7, 0))
	f.appointments.err = errors.New("connection refused")

	_, err := f.uc.Execute(context.Background(), f.req)
	assert.ErrorIs(t, err, ErrInternal)
	assert.Equal(t, []string{resultFailed}, f.metrics.results)
}
