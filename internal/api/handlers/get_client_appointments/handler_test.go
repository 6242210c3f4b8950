package get_client_appointments

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments/models"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
)

type stubService struct {
	status *string
	err    error
}

func (s *stubService) ListByClient(_ context.Context, _ domain.Actor, status *string) (*models.AppointmentListResponse, error) {
	s.status = status
	if s.err != nil {
		return nil, s.err
	}
	return &models.AppointmentListResponse{Appointments: []*models.AppointmentResponse{}, Total: 0}, nil
}

func call(svc *stubService, target string, withActor bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if withActor {
		req = req.WithContext(middleware.WithActor(req.Context(), domain.Actor{AccountID: uuid.New(), Role: domain.RoleClient}))
	}
	rec := httptest.NewRecorder()
	NewHandler(svc, logger.NewNop()).Handle(rec, req)
	return rec
}

func TestHandle_PassesStatusFilter(t *testing.T) {
	svc := &stubService{}
	rec := call(svc, "/clients/me/appointments?status=confirmed", true)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.status)
	assert.Equal(t, "confirmed", *svc.status)
	assert.JSONEq(t, `{"appointments":[],"total":0}`, rec.Body.String())

	call(svc, "/clients/me/appointments", true)
	assert.Nil(t, svc.status)
}

func TestHandle_Errors(t *testing.T) {
	verr := domain.NewValidationError()
	verr.Add("status", "unknown")

	assert.Equal(t, http.StatusUnauthorized, call(&stubService{}, "/clients/me/appointments", false).Code)
	assert.Equal(t, http.StatusBadRequest, call(&stubService{err: verr}, "/clients/me/appointments?status=x", true).Code)
	assert.Equal(t, http.StatusForbidden, call(&stubService{err: appointments.ErrAccessDenied}, "/clients/me/appointments", true).Code)
	assert.Equal(t, http.StatusInternalServerError, call(&stubService{err: appointments.ErrInternal}, "/clients/me/appointments", true).Code)
}
