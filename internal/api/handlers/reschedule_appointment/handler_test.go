package reschedule_appointment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	rescheduleAppointment "github.com/m04kA/SMC-AppointmentService/internal/usecase/reschedule_appointment"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
)

type stubUseCase struct {
	got *rescheduleAppointment.Request
	err error
}

func (s *stubUseCase) Execute(_ context.Context, req *rescheduleAppointment.Request) (*rescheduleAppointment.Response, error) {
	s.got = req
	if s.err != nil {
		return nil, s.err
	}
	return &rescheduleAppointment.Response{ID: req.AppointmentID, StartTime: req.StartTime, Status: "pending"}, nil
}

func serve(uc *stubUseCase, withActor bool, id, payload string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/appointments/{appointmentId}/reschedule", NewHandler(uc, logger.NewNop()).Handle)

	req := httptest.NewRequest(http.MethodPost, "/appointments/"+id+"/reschedule", strings.NewReader(payload))
	if withActor {
		req = req.WithContext(middleware.WithActor(req.Context(), domain.Actor{AccountID: uuid.New(), Role: domain.RoleClient}))
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandle_Moves(t *testing.T) {
	uc := &stubUseCase{}
	id := uuid.New()

	rec := serve(uc, true, id.String(), `{"startTime":"2026-03-10T16:00:00Z"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, id, uc.got.AppointmentID)
	assert.Equal(t, domain.RoleClient, uc.got.Actor.Role)
	assert.True(t, uc.got.StartTime.Equal(time.Date(2026, 3, 10, 16, 0, 0, 0, time.UTC)))
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name    string
		actor   bool
		payload string
		err     error
		status  int
	}{
		{name: "anonymous", payload: `{"startTime":"2026-03-10T16:00:00Z"}`, status: http.StatusUnauthorized},
		{name: "bad time", actor: true, payload: `{"startTime":"16:00"}`, status: http.StatusBadRequest},
		{name: "slot taken", actor: true, payload: `{"startTime":"2026-03-10T16:00:00Z"}`, err: rescheduleAppointment.ErrSlotTaken, status: http.StatusConflict},
		{name: "terminal", actor: true, payload: `{"startTime":"2026-03-10T16:00:00Z"}`, err: rescheduleAppointment.ErrNotReschedulable, status: http.StatusConflict},
		{name: "forbidden", actor: true, payload: `{"startTime":"2026-03-10T16:00:00Z"}`, err: rescheduleAppointment.ErrAccessDenied, status: http.StatusForbidden},
		{name: "not found", actor: true, payload: `{"startTime":"2026-03-10T16:00:00Z"}`, err: rescheduleAppointment.ErrAppointmentNotFound, status: http.StatusNotFound},
		{name: "internal", actor: true, payload: `{"startTime":"2026-03-10T16:00:00Z"}`, err: rescheduleAppointment.ErrInternal, status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&stubUseCase{err: tt.err}, tt.actor, uuid.NewString(), tt.payload)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
