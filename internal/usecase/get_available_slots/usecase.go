package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-AppointmentService/internal/scheduling"
)

// Результаты запросов доступности для метрик
const (
	resultOK       = "ok"
	resultClosed   = "closed"
	resultRejected = "rejected"
	resultFailed   = "failed"
)

// UseCase use case для получения доступных слотов для записи
// Работает на снимке данных без блокировок: результат подсказка, а не гарантия
type UseCase struct {
	catalogRepo     CatalogRepository
	appointmentRepo AppointmentRepository
	blockRepo       BlockRepository
	policies        PolicyResolver
	metrics         Metrics
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	catalogRepo CatalogRepository,
	appointmentRepo AppointmentRepository,
	blockRepo BlockRepository,
	policies PolicyResolver,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		catalogRepo:     catalogRepo,
		appointmentRepo: appointmentRepo,
		blockRepo:       blockRepo,
		policies:        policies,
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

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	resp, err := uc.execute(ctx, req)
	switch {
	case err == nil && len(resp.Slots) == 0:
		uc.metrics.ObserveAvailability(resultClosed)
	case err == nil:
		uc.metrics.ObserveAvailability(resultOK)
	case errors.Is(err, ErrInternal):
		uc.metrics.ObserveAvailability(resultFailed)
	default:
		uc.metrics.ObserveAvailability(resultRejected)
	}
	return resp, err
}

func (uc *UseCase) execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: business=%s, professional=%s, service=%s, date=%s",
		req.BusinessID, req.ProfessionalID, req.ServiceID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем компанию, мастера и услугу
	business, service, err := uc.loadCatalog(ctx, req)
	if err != nil {
		return nil, err
	}

	loc := business.Location()
	now := uc.timeProvider.Now()
	day := time.Date(req.Date.Year(), req.Date.Month(), req.Date.Day(), 0, 0, 0, 0, loc)

	// 3. Получаем политику с учетом иерархии
	policy, err := uc.policies.Resolve(ctx, req.BusinessID, &req.ProfessionalID)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to resolve policy: %v", err)
		return nil, fmt.Errorf("%w: failed to resolve policy: %v", ErrInternal, err)
	}

	// 4. День не в прошлом и в пределах горизонта записи
	if err := scheduling.CheckDay(policy, day, now, loc); err != nil {
		uc.logger.Warn("GetAvailableSlots: date %s rejected: %v", day.Format(domain.DateFormat), err)
		verr := domain.NewValidationError()
		verr.Add("date", err.Error())
		return nil, verr
	}

	resp := &Response{
		Date:            day,
		BusinessID:      req.BusinessID,
		ProfessionalID:  req.ProfessionalID,
		ServiceID:       req.ServiceID,
		DurationMinutes: service.DurationMinutes,
		Timezone:        loc.String(),
		Slots:           []time.Time{},
	}

	// 5. Рабочее окно дня с учетом исключений
	window, open, err := scheduling.WindowFor(business.OpeningHours, day, loc)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: invalid opening hours for business=%s: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: invalid opening hours: %v", ErrInternal, err)
	}
	if !open {
		uc.logger.Info("GetAvailableSlots: business is closed on %s", day.Format(domain.DateFormat))
		return resp, nil
	}

	// 6. Кандидаты по сетке
	duration := service.Duration()
	candidates := scheduling.GenerateSlots(window, policy.SlotStep(), duration)
	if len(candidates) == 0 {
		return resp, nil
	}

	// 7. Занятость мастера в окне
	appointments, err := uc.appointmentRepo.ListOverlapping(ctx, req.ProfessionalID, window.Open, window.Close, nil)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}
	blocks, err := uc.blockRepo.ListOverlapping(ctx, req.ProfessionalID, window.Open, window.Close)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get schedule blocks: %v", err)
		return nil, fmt.Errorf("%w: failed to get schedule blocks: %v", ErrInternal, err)
	}

	// 8. Отбрасываем прошедшие и пересекающиеся слоты
	busy := scheduling.BusyIntervals(appointments, blocks)
	resp.Slots = scheduling.Detector{}.Free(candidates, duration, busy, scheduling.Earliest(policy, now))

	uc.logger.Info("GetAvailableSlots: %d of %d slots free for professional=%s on %s",
		len(resp.Slots), len(candidates), req.ProfessionalID, day.Format(domain.DateFormat))

	return resp, nil
}

// loadCatalog проверяет существование и активность компании, мастера и услуги
func (uc *UseCase) loadCatalog(ctx context.Context, req *Request) (*domain.Business, *domain.Service, error) {
	business, err := uc.catalogRepo.GetBusiness(ctx, req.BusinessID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrBusinessNotFound) {
			uc.logger.Warn("GetAvailableSlots: business id=%s not found", req.BusinessID)
			return nil, nil, ErrBusinessNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get business id=%s: %v", req.BusinessID, err)
		return nil, nil, fmt.Errorf("%w: failed to get business: %v", ErrInternal, err)
	}
	if !business.IsActive {
		return nil, nil, ErrBusinessInactive
	}

	professional, err := uc.catalogRepo.GetProfessional(ctx, req.ProfessionalID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrProfessionalNotFound) {
			uc.logger.Warn("GetAvailableSlots: professional id=%s not found", req.ProfessionalID)
			return nil, nil, ErrProfessionalNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get professional id=%s: %v", req.ProfessionalID, err)
		return nil, nil, fmt.Errorf("%w: failed to get professional: %v", ErrInternal, err)
	}
	if professional.BusinessID != business.ID {
		uc.logger.Warn("GetAvailableSlots: professional id=%s belongs to another business", req.ProfessionalID)
		return nil, nil, ErrProfessionalNotFound
	}
	if !professional.IsActive {
		return nil, nil, ErrProfessionalInactive
	}

	service, err := uc.catalogRepo.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableSlots: service id=%s not found", req.ServiceID)
			return nil, nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get service id=%s: %v", req.ServiceID, err)
		return nil, nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if service.BusinessID != business.ID {
		uc.logger.Warn("GetAvailableSlots: service id=%s belongs to another business", req.ServiceID)
		return nil, nil, ErrServiceNotFound
	}
	if !service.IsActive {
		return nil, nil, ErrServiceInactive
	}

	return business, service, nil
}
