package appointments

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	catalogRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/catalog"
	guestRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/guest"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments/models"
	"github.com/m04kA/SMC-AppointmentService/pkg/metrics"
)

// Service сервис жизненного цикла записей: смена статуса и чтение
type Service struct {
	appointmentRepo AppointmentRepository
	guestRepo       GuestRepository
	catalogRepo     CatalogRepository
	policies        PolicyResolver
	txManager       TransactionManager
	metrics         Metrics
	timeProvider    TimeProvider
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	appointmentRepo AppointmentRepository,
	guestRepo GuestRepository,
	catalogRepo CatalogRepository,
	policies PolicyResolver,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		guestRepo:       guestRepo,
		catalogRepo:     catalogRepo,
		policies:        policies,
		txManager:       txManager,
		metrics:         metrics,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// WithTimeProvider подменяет источник времени
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// Transition применяет действие confirm | complete | cancel к записи
//
// Права:
// - confirm и complete выполняет только компания записи
// - cancel выполняет владелец записи или компания
//
// Отменить запись позже окна отмены из политики может только компания записи
func (s *Service) Transition(ctx context.Context, actor domain.Actor, id uuid.UUID, req *models.TransitionRequest) (*models.AppointmentResponse, error) {
	s.logger.Info("Transition: appointment id=%s, action=%s, actor=%s (%s)", id, req.Action, actor.AccountID, actor.Role)

	action, ok := domain.ParseAction(req.Action)
	if !ok {
		verr := domain.NewValidationError()
		verr.Add("action", "must be one of confirm, complete, cancel")
		s.metrics.ObserveTransition(req.Action, metrics.TransitionRejected)
		return nil, verr
	}

	resp, err := s.transition(ctx, actor, id, action, req.Reason)
	s.metrics.ObserveTransition(string(action), transitionResult(err))
	return resp, err
}

func (s *Service) transition(ctx context.Context, actor domain.Actor, id uuid.UUID, action domain.Action, reason *string) (*models.AppointmentResponse, error) {
	if reason != nil && utf8.RuneCountInString(*reason) > domain.MaxCancellationReasonLength {
		verr := domain.NewValidationError()
		verr.Add("reason", fmt.Sprintf("must be at most %d characters", domain.MaxCancellationReasonLength))
		return nil, verr
	}
	if action != domain.ActionCancel {
		reason = nil
	}

	var result *domain.Appointment

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		// 1. Получаем запись с блокировкой строки
		appointment, err := s.appointmentRepo.GetByIDForUpdate(txCtx, id)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				s.logger.Warn("Transition: appointment id=%s not found", id)
				return ErrAppointmentNotFound
			}
			s.logger.Error("Transition: repository error for appointment id=%s: %v", id, err)
			return fmt.Errorf("%w: Transition - repository error: %v", ErrInternal, err)
		}

		// 2. Проверяем права доступа
		if err := checkActionAccess(actor, appointment, action); err != nil {
			s.logger.Warn("Transition: actor=%s cannot %s appointment id=%s", actor.AccountID, action, id)
			return err
		}

		// 3. Проверяем допустимость перехода
		next, ok := domain.NextStatus(appointment.Status, action)
		if !ok {
			s.logger.Warn("Transition: cannot %s appointment id=%s in status %s", action, id, appointment.Status)
			return fmt.Errorf("%w: cannot %s %s appointment", ErrInvalidTransition, action, appointment.Status)
		}

		// 4. Окно отмены действует для всех, кроме компании записи
		if action == domain.ActionCancel && !actor.IsBusinessOf(appointment.BusinessID) {
			if err := s.checkCancellationNotice(txCtx, appointment); err != nil {
				return err
			}
		}

		// 5. Условное обновление: статус не должен измениться с момента чтения
		if err := s.appointmentRepo.UpdateStatus(txCtx, id, appointment.Status, next, reason); err != nil {
			if errors.Is(err, appointmentRepo.ErrStatusChanged) {
				s.logger.Warn("Transition: appointment id=%s status changed concurrently", id)
				return fmt.Errorf("%w: status changed concurrently", ErrInvalidTransition)
			}
			s.logger.Error("Transition: repository error for appointment id=%s: %v", id, err)
			return fmt.Errorf("%w: Transition - repository error: %v", ErrInternal, err)
		}

		now := s.timeProvider.Now()
		appointment.Status = next
		appointment.UpdatedAt = now
		if next == domain.StatusCancelled {
			appointment.CancellationReason = reason
			appointment.CancelledAt = &now
		}
		result = appointment
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Transition: appointment id=%s is now %s", id, result.Status)
	return models.FromDomainAppointment(result), nil
}

// checkCancellationNotice проверяет окно отмены из политики мастера
func (s *Service) checkCancellationNotice(ctx context.Context, a *domain.Appointment) error {
	policy, err := s.policies.Resolve(ctx, a.BusinessID, &a.ProfessionalID)
	if err != nil {
		s.logger.Error("Transition: failed to resolve policy: %v", err)
		return fmt.Errorf("%w: failed to resolve policy: %v", ErrInternal, err)
	}

	if policy.WithinCancellationNotice(a.StartTime, s.timeProvider.Now()) {
		s.logger.Warn("Transition: appointment id=%s starts within cancellation notice of %d minutes",
			a.ID, policy.CancellationNoticeMinutes)
		return &domain.PolicyViolationError{
			Policy: "cancellation_notice",
			Reason: fmt.Sprintf("appointments can be cancelled at least %d minutes before start", policy.CancellationNoticeMinutes),
		}
	}
	return nil
}

// GetByID получает запись по ID
// Клиент видит только свою запись, компания видит все свои записи вместе с контактами гостей
func (s *Service) GetByID(ctx context.Context, actor domain.Actor, id uuid.UUID) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%s for actor=%s", id, actor.AccountID)

	appointment, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("GetByID: appointment id=%s not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("GetByID: repository error for appointment id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	isBusiness := actor.IsBusinessOf(appointment.BusinessID)
	if !isBusiness && !appointment.IsOwnedBy(actor.Identity()) {
		s.logger.Warn("GetByID: access denied for actor=%s to appointment id=%s", actor.AccountID, id)
		return nil, ErrAccessDenied
	}

	resp := models.FromDomainAppointment(appointment)
	if isBusiness && appointment.IsGuest() {
		guest, err := s.guestRepo.GetByAppointmentID(ctx, id)
		switch {
		case err == nil:
			resp.WithGuest(guest)
		case errors.Is(err, guestRepo.ErrGuestNotFound):
			s.logger.Warn("GetByID: guest contact for appointment id=%s is missing", id)
		default:
			s.logger.Error("GetByID: repository error for guest of appointment id=%s: %v", id, err)
			return nil, fmt.Errorf("%w: GetByID - guest repository error: %v", ErrInternal, err)
		}
	}

	return resp, nil
}

// ListByClient получает записи авторизованного клиента
// Опционально фильтрует по статусу
func (s *Service) ListByClient(ctx context.Context, actor domain.Actor, status *string) (*models.AppointmentListResponse, error) {
	s.logger.Info("ListByClient: fetching appointments for account=%s, status=%v", actor.AccountID, status)

	accountID, ok := actor.Identity().AccountID()
	if !ok || accountID == domain.GuestClientID {
		return nil, ErrAccessDenied
	}

	var domainStatus *domain.AppointmentStatus
	if status != nil {
		parsed, ok := models.ToDomainStatus(*status)
		if !ok {
			verr := domain.NewValidationError()
			verr.Add("status", "must be one of pending, confirmed, completed, cancelled")
			return nil, verr
		}
		domainStatus = &parsed
	}

	items, err := s.appointmentRepo.ListByClient(ctx, accountID, domainStatus)
	if err != nil {
		s.logger.Error("ListByClient: repository error for account=%s: %v", accountID, err)
		return nil, fmt.Errorf("%w: ListByClient - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListByClient: fetched %d appointments for account=%s", len(items), accountID)
	return models.FromDomainAppointmentList(items), nil
}

// ListByProfessional получает записи мастера за календарный день (включая отмененные)
// Доступно только сотрудникам компании
func (s *Service) ListByProfessional(ctx context.Context, actor domain.Actor, req *models.ListByProfessionalRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("ListByProfessional: business=%s, professional=%s, date=%s",
		req.BusinessID, req.ProfessionalID, req.Date.Format(domain.DateFormat))

	if !actor.IsBusinessOf(req.BusinessID) {
		s.logger.Warn("ListByProfessional: access denied for actor=%s to business=%s", actor.AccountID, req.BusinessID)
		return nil, ErrAccessDenied
	}

	business, err := s.catalogRepo.GetBusiness(ctx, req.BusinessID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrBusinessNotFound) {
			return nil, ErrBusinessNotFound
		}
		s.logger.Error("ListByProfessional: repository error for business=%s: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: ListByProfessional - repository error: %v", ErrInternal, err)
	}

	professional, err := s.catalogRepo.GetProfessional(ctx, req.ProfessionalID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrProfessionalNotFound) {
			return nil, ErrProfessionalNotFound
		}
		s.logger.Error("ListByProfessional: repository error for professional=%s: %v", req.ProfessionalID, err)
		return nil, fmt.Errorf("%w: ListByProfessional - repository error: %v", ErrInternal, err)
	}
	if professional.BusinessID != business.ID {
		return nil, ErrProfessionalNotFound
	}

	loc := business.Location()
	from := time.Date(req.Date.Year(), req.Date.Month(), req.Date.Day(), 0, 0, 0, 0, loc)
	to := from.AddDate(0, 0, 1)

	items, err := s.appointmentRepo.ListByProfessional(ctx, req.ProfessionalID, from, to)
	if err != nil {
		s.logger.Error("ListByProfessional: repository error for professional=%s: %v", req.ProfessionalID, err)
		return nil, fmt.Errorf("%w: ListByProfessional - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListByProfessional: fetched %d appointments", len(items))
	return models.FromDomainAppointmentList(items), nil
}

// checkActionAccess проверяет право актора на действие с записью
func checkActionAccess(actor domain.Actor, a *domain.Appointment, action domain.Action) error {
	if actor.IsBusinessOf(a.BusinessID) {
		return nil
	}
	if action == domain.ActionCancel && a.IsOwnedBy(actor.Identity()) {
		return nil
	}
	return ErrAccessDenied
}

// transitionResult классифицирует результат для метрик
func transitionResult(err error) string {
	switch {
	case err == nil:
		return metrics.TransitionApplied
	case errors.Is(err, domain.ErrInvalidTransition):
		return metrics.TransitionConflict
	case errors.Is(err, ErrInternal):
		return metrics.TransitionFailed
	default:
		return metrics.TransitionRejected
	}
}
