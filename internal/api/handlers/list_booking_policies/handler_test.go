package list_booking_policies

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/config"
	"github.com/m04kA/SMC-AppointmentService/internal/service/config/models"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
)

type stubService struct {
	err error
}

func (s stubService) GetAllByBusiness(context.Context, domain.Actor, uuid.UUID) (*models.PolicyListResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &models.PolicyListResponse{Policies: []models.PolicyResponse{}}, nil
}

func TestHandle(t *testing.T) {
	tests := []struct {
		name   string
		actor  bool
		err    error
		status int
	}{
		{name: "ok", actor: true, status: http.StatusOK},
		{name: "anonymous", status: http.StatusUnauthorized},
		{name: "forbidden", actor: true, err: config.ErrAccessDenied, status: http.StatusForbidden},
		{name: "internal", actor: true, err: config.ErrInternal, status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := mux.NewRouter()
			router.HandleFunc("/businesses/{businessId}/booking-policies", NewHandler(stubService{err: tt.err}, logger.NewNop()).Handle)

			req := httptest.NewRequest(http.MethodGet, "/businesses/"+uuid.NewString()+"/booking-policies", nil)
			if tt.actor {
				req = req.WithContext(middleware.WithActor(req.Context(),
					domain.Actor{AccountID: uuid.New(), Role: domain.RoleBusiness, BusinessID: uuid.New()}))
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
