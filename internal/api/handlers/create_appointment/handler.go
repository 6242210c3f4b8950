package create_appointment

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/identity"
	createAppointment "github.com/m04kA/SMC-AppointmentService/internal/usecase/create_appointment"
)

// HeaderIdempotencyKey заголовок с ключом повторного запроса
const HeaderIdempotencyKey = "Idempotency-Key"

const (
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidStartTime     = "некорректный формат времени начала, ожидается RFC3339"
	msgSlotTaken            = "выбранное время уже занято"
	msgBusinessNotFound     = "компания не найдена"
	msgProfessionalNotFound = "мастер не найден"
	msgServiceNotFound      = "услуга не найдена"
	msgInactive             = "мастер или услуга недоступны для записи"
	msgRateLimited          = "слишком много попыток записи, попробуйте позже"
)

type Handler struct {
	useCase CreateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase CreateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments
// Авторизованный клиент бронирует от своего имени, иначе нужны контакты гостя
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	var accountID *uuid.UUID
	if actor, ok := middleware.GetActor(r.Context()); ok && actor.Role == domain.RoleClient {
		accountID = &actor.AccountID
	}

	var idempotencyKey *string
	if key := strings.TrimSpace(r.Header.Get(HeaderIdempotencyKey)); key != "" {
		idempotencyKey = &key
	}

	useCaseReq, err := req.ToUseCaseRequest(accountID, idempotencyKey, middleware.ClientIP(r))
	if err != nil {
		h.logger.Warn("POST /appointments - Invalid start time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStartTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrValidation):
			h.logger.Warn("POST /appointments - Validation failed: %v", err)
			handlers.RespondValidation(w, err)

		case errors.Is(err, domain.ErrSlotConflict):
			h.logger.Warn("POST /appointments - Slot taken: professional_id=%s, start=%s", req.ProfessionalID, req.StartTime)
			handlers.RespondConflict(w, msgSlotTaken)

		case errors.Is(err, createAppointment.ErrBusinessNotFound):
			handlers.RespondNotFound(w, msgBusinessNotFound)

		case errors.Is(err, createAppointment.ErrProfessionalNotFound):
			handlers.RespondNotFound(w, msgProfessionalNotFound)

		case errors.Is(err, createAppointment.ErrServiceNotFound):
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, domain.ErrInactive):
			h.logger.Warn("POST /appointments - Inactive: %v", err)
			handlers.RespondUnprocessable(w, msgInactive)

		case errors.Is(err, identity.ErrRateLimited):
			h.logger.Warn("POST /appointments - Rate limited: client=%s", useCaseReq.Client.ClientKey)
			handlers.RespondTooManyRequests(w, msgRateLimited)

		default:
			h.logger.Error("POST /appointments - Failed to create appointment: business_id=%s, professional_id=%s, error=%v",
				req.BusinessID, req.ProfessionalID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Бот получает обычный ответ, но запись не создана
	if result.Discarded {
		h.logger.Warn("POST /appointments - Discarded: client=%s", useCaseReq.Client.ClientKey)
		handlers.RespondJSON(w, http.StatusCreated, decoyResponse(useCaseReq, time.Now().UTC()))
		return
	}

	status := http.StatusCreated
	if result.Replayed {
		status = http.StatusOK
	}

	h.logger.Info("POST /appointments - Appointment created: appointment_id=%s, replayed=%t", result.ID, result.Replayed)
	handlers.RespondJSON(w, status, FromUseCaseResponse(result))
}
