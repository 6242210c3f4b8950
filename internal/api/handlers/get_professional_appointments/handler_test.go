package get_professional_appointments

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments/models"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
)

type stubService struct {
	got *models.ListByProfessionalRequest
	err error
}

func (s *stubService) ListByProfessional(_ context.Context, _ domain.Actor, req *models.ListByProfessionalRequest) (*models.AppointmentListResponse, error) {
	s.got = req
	if s.err != nil {
		return nil, s.err
	}
	return &models.AppointmentListResponse{Appointments: []*models.AppointmentResponse{}}, nil
}

func call(svc *stubService, businessID, professionalID, query string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/businesses/{businessId}/professionals/{professionalId}/appointments", NewHandler(svc, logger.NewNop()).Handle)

	req := httptest.NewRequest(http.MethodGet, "/businesses/"+businessID+"/professionals/"+professionalID+"/appointments"+query, nil)
	req = req.WithContext(middleware.WithActor(req.Context(),
		domain.Actor{AccountID: uuid.New(), Role: domain.RoleBusiness, BusinessID: uuid.New()}))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandle_ParsesDay(t *testing.T) {
	svc := &stubService{}
	businessID, professionalID := uuid.New(), uuid.New()

	rec := call(svc, businessID.String(), professionalID.String(), "?date=2026-03-10")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, businessID, svc.got.BusinessID)
	assert.Equal(t, professionalID, svc.got.ProfessionalID)
	assert.Equal(t, "2026-03-10", svc.got.Date.Format(domain.DateFormat))
}

func TestHandle_Errors(t *testing.T) {
	b, p := uuid.NewString(), uuid.NewString()

	assert.Equal(t, http.StatusBadRequest, call(&stubService{}, "x", p, "?date=2026-03-10").Code)
	assert.Equal(t, http.StatusBadRequest, call(&stubService{}, b, p, "").Code)
	assert.Equal(t, http.StatusBadRequest, call(&stubService{}, b, p, "?date=10/03/2026").Code)
	assert.Equal(t, http.StatusForbidden, call(&stubService{err: appointments.ErrAccessDenied}, b, p, "?date=2026-03-10").Code)
	assert.Equal(t, http.StatusNotFound, call(&stubService{err: appointments.ErrProfessionalNotFound}, b, p, "?date=2026-03-10").Code)
	assert.Equal(t, http.StatusInternalServerError, call(&stubService{err: appointments.ErrInternal}, b, p, "?date=2026-03-10").Code)
}
