package create_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	catalogRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/catalog"
	guestRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/guest"
	"github.com/m04kA/SMC-AppointmentService/internal/scheduling"
	"github.com/m04kA/SMC-AppointmentService/pkg/metrics"
)

// UseCase use case для создания записи
type UseCase struct {
	appointmentRepo AppointmentRepository
	blockRepo       BlockRepository
	guestRepo       GuestRepository
	catalogRepo     CatalogRepository
	policies        PolicyResolver
	identities      IdentityResolver
	txManager       TransactionManager
	metrics         Metrics
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	blockRepo BlockRepository,
	guestRepo GuestRepository,
	catalogRepo CatalogRepository,
	policies PolicyResolver,
	identities IdentityResolver,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		blockRepo:       blockRepo,
		guestRepo:       guestRepo,
		catalogRepo:     catalogRepo,
		policies:        policies,
		identities:      identities,
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

// Execute выполняет use case создания записи
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	resp, err := uc.execute(ctx, req)
	uc.metrics.ObserveReservation(outcome(resp, err))
	return resp, err
}

// execute проверяет и сохраняет запись в сериализуемой транзакции.
// Время перепроверяется под advisory-блокировкой мастера: данные, на которых клиент
// выбирал слот, к этому моменту могли устареть. Другой слот никогда не подбирается.
// Гонки, которые блокировка не закрывает, завершаются повтором транзакции (40001)
// или ограничением исключения в таблице (23P01).
func (uc *UseCase) execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: business=%s, professional=%s, service=%s, start=%s",
		req.BusinessID, req.ProfessionalID, req.ServiceID, req.StartTime.Format(timeLayout))

	// 1. Гость с заполненным honeypot получает успех до любых проверок
	if req.Client.IsBot() {
		uc.logger.Warn("CreateAppointment: honeypot triggered, client=%s, nothing is stored", req.Client.ClientKey)
		return &Response{Discarded: true}, nil
	}

	// 2. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	// 3. Определяем клиента: аккаунт или гость
	resolution, err := uc.identities.Resolve(ctx, &req.Client)
	if err != nil {
		uc.logger.Warn("CreateAppointment: client rejected: %v", err)
		return nil, err
	}
	if resolution.Discard {
		uc.logger.Warn("CreateAppointment: request discarded, nothing is stored")
		return &Response{Discarded: true}, nil
	}
	client := resolution.Identity

	// 4. Проверяем компанию, мастера и услугу
	business, service, err := uc.loadCatalog(ctx, req)
	if err != nil {
		return nil, err
	}

	now := uc.timeProvider.Now()
	loc := business.Location()
	duration := service.Duration()

	var (
		result   *domain.Appointment
		replayed bool
	)

	// 5. Все проверки и запись в одной сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		result, replayed = nil, false

		// 5.1. Блокировка мастера первым запросом транзакции: снимок данных
		// берется после фиксации предыдущего владельца блокировки
		if err := uc.appointmentRepo.LockProfessional(txCtx, req.ProfessionalID); err != nil {
			uc.logger.Error("CreateAppointment: failed to lock professional=%s: %v", req.ProfessionalID, err)
			return fmt.Errorf("%w: failed to lock professional: %w", ErrInternal, err)
		}

		// 5.2. Повтор запроса с тем же ключом возвращает уже созданную запись
		if req.IdempotencyKey != nil {
			existing, err := uc.findReplay(txCtx, req, client)
			if err != nil {
				return err
			}
			if existing != nil {
				result, replayed = existing, true
				return nil
			}
		}

		// 5.3. Получаем политику с учетом иерархии
		policy, err := uc.policies.Resolve(txCtx, req.BusinessID, &req.ProfessionalID)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to resolve policy: %v", err)
			return fmt.Errorf("%w: failed to resolve policy: %w", ErrInternal, err)
		}

		// 5.4. Рабочее окно, сетка, минимальное время до записи и горизонт записи
		if err := scheduling.CheckStart(business.OpeningHours, policy, req.StartTime, duration, now, loc); err != nil {
			if verr := startTimeError(err); verr != nil {
				uc.logger.Warn("CreateAppointment: start time rejected: %v", err)
				return verr
			}
			uc.logger.Error("CreateAppointment: invalid opening hours for business=%s: %v", req.BusinessID, err)
			return fmt.Errorf("%w: invalid opening hours: %v", ErrInternal, err)
		}

		// 5.5. Перечитываем занятость мастера с блокировкой (FOR UPDATE)
		candidate := scheduling.NewInterval(req.StartTime, duration)
		if err := uc.checkFree(txCtx, req, candidate); err != nil {
			return err
		}

		// 5.6. Создаем запись: длительность и цена фиксируются на момент бронирования
		appointment := &domain.Appointment{
			BusinessID:      req.BusinessID,
			ProfessionalID:  req.ProfessionalID,
			ServiceID:       req.ServiceID,
			ClientID:        client.StoredClientID(),
			StartTime:       req.StartTime,
			DurationMinutes: service.DurationMinutes,
			PaymentAmount:   service.Price,
			Status:          domain.StatusPending,
			Notes:           req.Notes,
			IdempotencyKey:  req.IdempotencyKey,
		}

		created, err := uc.appointmentRepo.Create(txCtx, appointment)
		if err != nil {
			switch {
			case errors.Is(err, appointmentRepo.ErrOverlap):
				uc.logger.Warn("CreateAppointment: overlap rejected by storage constraint")
				return ErrSlotTaken
			case errors.Is(err, appointmentRepo.ErrDuplicateIdempotencyKey):
				return err
			}
			uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %w", ErrInternal, err)
		}

		// 5.7. Контакты гостя сохраняются в той же транзакции
		if contact, ok := client.Guest(); ok {
			guest := domain.NewGuestBooking(contact)
			guest.AppointmentID = created.ID
			if _, err := uc.guestRepo.Create(txCtx, guest); err != nil {
				uc.logger.Error("CreateAppointment: failed to save guest contact: %v", err)
				return fmt.Errorf("%w: failed to save guest contact: %w", ErrInternal, err)
			}
		}

		result = created
		return nil
	})

	// 6. Параллельный запрос с тем же ключом успел раньше: отдаем его запись
	if errors.Is(err, appointmentRepo.ErrDuplicateIdempotencyKey) {
		uc.logger.Info("CreateAppointment: idempotency key raced, loading stored appointment")
		existing, findErr := uc.findReplay(ctx, req, client)
		if findErr != nil {
			return nil, findErr
		}
		if existing == nil {
			return nil, fmt.Errorf("%w: appointment for idempotency key disappeared", ErrInternal)
		}
		result, replayed, err = existing, true, nil
	}
	if err != nil {
		if !errors.Is(err, ErrInternal) && !errors.Is(err, domain.ErrValidation) && !errors.Is(err, domain.ErrSlotConflict) {
			uc.logger.Error("CreateAppointment: transaction failed: %v", err)
			return nil, fmt.Errorf("%w: transaction failed: %w", ErrInternal, err)
		}
		return nil, err
	}

	if replayed {
		uc.logger.Info("CreateAppointment: replayed appointment id=%s", result.ID)
	} else {
		uc.logger.Info("CreateAppointment: successfully created appointment id=%s", result.ID)
	}

	return toResponse(result, replayed), nil
}

// findReplay ищет запись по ключу идемпотентности; nil, если записи нет
// Чужой клиент с тем же ключом получает ошибку валидации, а не чужую запись
func (uc *UseCase) findReplay(ctx context.Context, req *Request, client domain.ClientIdentity) (*domain.Appointment, error) {
	existing, err := uc.appointmentRepo.FindByIdempotencyKey(ctx, req.BusinessID, *req.IdempotencyKey)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			return nil, nil
		}
		uc.logger.Error("CreateAppointment: failed to look up idempotency key: %v", err)
		return nil, fmt.Errorf("%w: failed to look up idempotency key: %w", ErrInternal, err)
	}

	matches := matchesReplay(existing, req) && existing.ClientID == client.StoredClientID()
	if matches && existing.IsGuest() {
		matches, err = uc.sameGuest(ctx, existing.ID, client)
		if err != nil {
			return nil, err
		}
	}

	if !matches {
		uc.logger.Warn("CreateAppointment: idempotency key reused for a different appointment id=%s", existing.ID)
		verr := domain.NewValidationError()
		verr.Add("idempotencyKey", "was already used for a different appointment")
		return nil, verr
	}
	return existing, nil
}

// sameGuest сравнивает контакты гостя с контактами, сохраненными для записи
func (uc *UseCase) sameGuest(ctx context.Context, appointmentID uuid.UUID, client domain.ClientIdentity) (bool, error) {
	contact, ok := client.Guest()
	if !ok {
		return false, nil
	}

	stored, err := uc.guestRepo.GetByAppointmentID(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, guestRepo.ErrGuestNotFound) {
			return false, nil
		}
		uc.logger.Error("CreateAppointment: failed to get guest contact for appointment id=%s: %v", appointmentID, err)
		return false, fmt.Errorf("%w: failed to get guest contact: %w", ErrInternal, err)
	}
	return matchesGuest(stored, contact), nil
}

// checkFree проверяет, что интервал не пересекается с записями и блокировками мастера
func (uc *UseCase) checkFree(ctx context.Context, req *Request, candidate scheduling.Interval) error {
	appointments, err := uc.appointmentRepo.ListOverlapping(ctx, req.ProfessionalID, candidate.Start, candidate.End, nil)
	if err != nil {
		uc.logger.Error("CreateAppointment: failed to get appointments: %v", err)
		return fmt.Errorf("%w: failed to get appointments: %w", ErrInternal, err)
	}
	blocks, err := uc.blockRepo.ListOverlapping(ctx, req.ProfessionalID, candidate.Start, candidate.End)
	if err != nil {
		uc.logger.Error("CreateAppointment: failed to get schedule blocks: %v", err)
		return fmt.Errorf("%w: failed to get schedule blocks: %w", ErrInternal, err)
	}

	busy := scheduling.BusyIntervals(appointments, blocks)
	for _, b := range busy {
		if candidate.Overlaps(b) {
			uc.logger.Warn("CreateAppointment: %s-%s overlaps busy %s-%s",
				candidate.Start.Format(timeLayout), candidate.End.Format(timeLayout),
				b.Start.Format(timeLayout), b.End.Format(timeLayout))
			return ErrSlotTaken
		}
	}
	return nil
}

// loadCatalog проверяет существование и активность компании, мастера и услуги
func (uc *UseCase) loadCatalog(ctx context.Context, req *Request) (*domain.Business, *domain.Service, error) {
	business, err := uc.catalogRepo.GetBusiness(ctx, req.BusinessID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrBusinessNotFound) {
			uc.logger.Warn("CreateAppointment: business id=%s not found", req.BusinessID)
			return nil, nil, ErrBusinessNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get business id=%s: %v", req.BusinessID, err)
		return nil, nil, fmt.Errorf("%w: failed to get business: %v", ErrInternal, err)
	}
	if !business.IsActive {
		return nil, nil, ErrBusinessInactive
	}

	professional, err := uc.catalogRepo.GetProfessional(ctx, req.ProfessionalID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrProfessionalNotFound) {
			uc.logger.Warn("CreateAppointment: professional id=%s not found", req.ProfessionalID)
			return nil, nil, ErrProfessionalNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get professional id=%s: %v", req.ProfessionalID, err)
		return nil, nil, fmt.Errorf("%w: failed to get professional: %v", ErrInternal, err)
	}
	if professional.BusinessID != business.ID {
		return nil, nil, ErrProfessionalNotFound
	}
	if !professional.IsActive {
		return nil, nil, ErrProfessionalInactive
	}

	service, err := uc.catalogRepo.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateAppointment: service id=%s not found", req.ServiceID)
			return nil, nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get service id=%s: %v", req.ServiceID, err)
		return nil, nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if service.BusinessID != business.ID {
		return nil, nil, ErrServiceNotFound
	}
	if !service.IsActive {
		return nil, nil, ErrServiceInactive
	}

	return business, service, nil
}

// outcome классифицирует результат для метрик
func outcome(resp *Response, err error) string {
	switch {
	case err == nil && resp.Discarded:
		return metrics.OutcomeDiscarded
	case err == nil && resp.Replayed:
		return metrics.OutcomeReplayed
	case err == nil:
		return metrics.OutcomeCreated
	case errors.Is(err, domain.ErrSlotConflict):
		return metrics.OutcomeConflict
	case errors.Is(err, ErrInternal):
		return metrics.OutcomeFailed
	default:
		return metrics.OutcomeRejected
	}
}

const timeLayout = "2006-01-02 15:04 MST"
