package reschedule_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-AppointmentService/internal/scheduling"
	"github.com/m04kA/SMC-AppointmentService/pkg/metrics"
)

const actionReschedule = "reschedule"

// UseCase use case для переноса записи на другое время
type UseCase struct {
	appointmentRepo AppointmentRepository
	blockRepo       BlockRepository
	businessRepo    BusinessRepository
	policies        PolicyResolver
	txManager       TransactionManager
	metrics         Metrics
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	blockRepo BlockRepository,
	businessRepo BusinessRepository,
	policies PolicyResolver,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		blockRepo:       blockRepo,
		businessRepo:    businessRepo,
		policies:        policies,
		txManager:       txManager,
		metrics:         metrics,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// WithTimeProvider подменяет источник времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case переноса записи
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	resp, err := uc.execute(ctx, req)
	uc.metrics.ObserveTransition(actionReschedule, result(err))
	return resp, err
}

// execute переносит запись в сериализуемой транзакции.
// При любом отказе запись остается на прежнем времени.
func (uc *UseCase) execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RescheduleAppointment: id=%s, actor=%s (%s), start=%s",
		req.AppointmentID, req.Actor.AccountID, req.Actor.Role, req.StartTime.Format(time.RFC3339))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RescheduleAppointment: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()
	var resp *Response

	// 2. Все проверки и перенос в одной сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		resp = nil

		// 2.1. Получаем запись с блокировкой строки (FOR UPDATE)
		appointment, err := uc.appointmentRepo.GetByIDForUpdate(txCtx, req.AppointmentID)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				uc.logger.Warn("RescheduleAppointment: appointment id=%s not found", req.AppointmentID)
				return ErrAppointmentNotFound
			}
			uc.logger.Error("RescheduleAppointment: failed to get appointment id=%s: %v", req.AppointmentID, err)
			return fmt.Errorf("%w: failed to get appointment: %w", ErrInternal, err)
		}

		// 2.2. Переносить может владелец записи или ее компания
		if !canManage(req.Actor, appointment) {
			uc.logger.Warn("RescheduleAppointment: actor=%s has no access to appointment id=%s",
				req.Actor.AccountID, appointment.ID)
			return ErrAccessDenied
		}

		// 2.3. Завершенные и отмененные записи не переносятся
		if !appointment.CanBeRescheduled() {
			uc.logger.Warn("RescheduleAppointment: appointment id=%s is %s", appointment.ID, appointment.Status)
			return ErrNotReschedulable
		}

		business, err := uc.businessRepo.GetBusiness(txCtx, appointment.BusinessID)
		if err != nil {
			uc.logger.Error("RescheduleAppointment: failed to get business id=%s: %v", appointment.BusinessID, err)
			return fmt.Errorf("%w: failed to get business: %w", ErrInternal, err)
		}

		// 2.4. Получаем политику с учетом иерархии
		policy, err := uc.policies.Resolve(txCtx, appointment.BusinessID, &appointment.ProfessionalID)
		if err != nil {
			uc.logger.Error("RescheduleAppointment: failed to resolve policy: %v", err)
			return fmt.Errorf("%w: failed to resolve policy: %w", ErrInternal, err)
		}

		// 2.5. Позже окна отмены переносит только компания записи
		if !req.Actor.IsBusinessOf(appointment.BusinessID) && policy.WithinCancellationNotice(appointment.StartTime, now) {
			uc.logger.Warn("RescheduleAppointment: appointment id=%s starts within cancellation notice", appointment.ID)
			return &domain.PolicyViolationError{
				Policy: "cancellation_notice",
				Reason: fmt.Sprintf("appointments can be moved at least %d minutes before start", policy.CancellationNoticeMinutes),
			}
		}

		previous := appointment.StartTime
		duration := appointment.Duration()

		// 2.6. Новое время по тем же правилам, что и при создании
		if err := scheduling.CheckStart(business.OpeningHours, policy, req.StartTime, duration, now, business.Location()); err != nil {
			if verr := startTimeError(err); verr != nil {
				uc.logger.Warn("RescheduleAppointment: start time rejected: %v", err)
				return verr
			}
			uc.logger.Error("RescheduleAppointment: invalid opening hours for business=%s: %v", business.ID, err)
			return fmt.Errorf("%w: invalid opening hours: %v", ErrInternal, err)
		}

		// 2.7. Блокируем расписание мастера и проверяем занятость без учета самой записи
		// Снимок взят первым запросом, поэтому блокировка только снижает число конфликтов:
		// гонки закрывают повтор транзакции (40001) и ограничение исключения (23P01)
		if err := uc.appointmentRepo.LockProfessional(txCtx, appointment.ProfessionalID); err != nil {
			uc.logger.Error("RescheduleAppointment: failed to lock professional=%s: %v", appointment.ProfessionalID, err)
			return fmt.Errorf("%w: failed to lock professional: %w", ErrInternal, err)
		}

		candidate := scheduling.NewInterval(req.StartTime, duration)
		if err := uc.checkFree(txCtx, appointment, candidate); err != nil {
			return err
		}

		// 2.8. Меняется только время начала и окончания
		if err := uc.appointmentRepo.UpdateStartTime(txCtx, appointment.ID, candidate.Start, candidate.End); err != nil {
			if errors.Is(err, appointmentRepo.ErrOverlap) {
				uc.logger.Warn("RescheduleAppointment: overlap rejected by storage constraint")
				return ErrSlotTaken
			}
			uc.logger.Error("RescheduleAppointment: failed to update appointment id=%s: %v", appointment.ID, err)
			return fmt.Errorf("%w: failed to update appointment: %w", ErrInternal, err)
		}

		resp = &Response{
			ID:              appointment.ID,
			BusinessID:      appointment.BusinessID,
			ProfessionalID:  appointment.ProfessionalID,
			ServiceID:       appointment.ServiceID,
			StartTime:       candidate.Start,
			EndTime:         candidate.End,
			DurationMinutes: appointment.DurationMinutes,
			Status:          string(appointment.Status),
			PreviousStart:   previous,
		}
		return nil
	})

	if err != nil {
		if isExpected(err) {
			return nil, err
		}
		uc.logger.Error("RescheduleAppointment: transaction failed: %v", err)
		return nil, fmt.Errorf("%w: transaction failed: %w", ErrInternal, err)
	}

	uc.logger.Info("RescheduleAppointment: appointment id=%s moved from %s to %s",
		resp.ID, resp.PreviousStart.Format(time.RFC3339), resp.StartTime.Format(time.RFC3339))

	return resp, nil
}

// checkFree проверяет, что новое время не пересекается с другими записями и блокировками мастера
func (uc *UseCase) checkFree(ctx context.Context, appointment *domain.Appointment, candidate scheduling.Interval) error {
	appointments, err := uc.appointmentRepo.ListOverlapping(ctx, appointment.ProfessionalID, candidate.Start, candidate.End, &appointment.ID)
	if err != nil {
		uc.logger.Error("RescheduleAppointment: failed to get appointments: %v", err)
		return fmt.Errorf("%w: failed to get appointments: %w", ErrInternal, err)
	}
	blocks, err := uc.blockRepo.ListOverlapping(ctx, appointment.ProfessionalID, candidate.Start, candidate.End)
	if err != nil {
		uc.logger.Error("RescheduleAppointment: failed to get schedule blocks: %v", err)
		return fmt.Errorf("%w: failed to get schedule blocks: %w", ErrInternal, err)
	}

	for _, b := range scheduling.BusyIntervals(appointments, blocks) {
		if candidate.Overlaps(b) {
			uc.logger.Warn("RescheduleAppointment: new time overlaps busy %s-%s",
				b.Start.Format(time.RFC3339), b.End.Format(time.RFC3339))
			return ErrSlotTaken
		}
	}
	return nil
}

func isExpected(err error) bool {
	return errors.Is(err, ErrInternal) ||
		errors.Is(err, domain.ErrNotFound) ||
		errors.Is(err, domain.ErrAccessDenied) ||
		errors.Is(err, domain.ErrInvalidTransition) ||
		errors.Is(err, domain.ErrPolicyViolation) ||
		errors.Is(err, domain.ErrValidation) ||
		errors.Is(err, domain.ErrSlotConflict)
}

// result классифицирует результат для метрик
func result(err error) string {
	switch {
	case err == nil:
		return metrics.TransitionApplied
	case errors.Is(err, domain.ErrSlotConflict):
		return metrics.TransitionConflict
	case errors.Is(err, ErrInternal):
		return metrics.TransitionFailed
	default:
		return metrics.TransitionRejected
	}
}
