package config

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/catalog"
	configRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/config"
	"github.com/m04kA/SMC-AppointmentService/internal/service/config/models"
)

// Service сервис для работы с политиками бронирования
type Service struct {
	policyRepo  PolicyRepository
	catalogRepo CatalogRepository
	txManager   TransactionManager
	logger      Logger
}

// NewService создает новый экземпляр сервиса политик
func NewService(
	policyRepo PolicyRepository,
	catalogRepo CatalogRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		policyRepo:  policyRepo,
		catalogRepo: catalogRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// Resolve возвращает действующую политику с учетом иерархии приоритетов
// Приоритет: мастер > компания > значения по умолчанию
func (s *Service) Resolve(ctx context.Context, businessID uuid.UUID, professionalID *uuid.UUID) (*domain.BookingPolicy, error) {
	policy, err := s.policyRepo.GetPolicyWithHierarchy(ctx, businessID, professionalID)
	if err != nil {
		if errors.Is(err, configRepo.ErrPolicyNotFound) {
			return domain.DefaultBookingPolicy(businessID), nil
		}
		s.logger.Error("Resolve: repository error for business=%s: %v", businessID, err)
		return nil, fmt.Errorf("%w: Resolve - repository error: %v", ErrInternal, err)
	}

	return policy, nil
}

// GetEffective получает действующую политику для компании или мастера
// Публичный метод - клиенту нужно знать шаг сетки и окно отмены
func (s *Service) GetEffective(ctx context.Context, businessID uuid.UUID, professionalID *uuid.UUID) (*models.PolicyResponse, error) {
	s.logger.Info("GetEffective: fetching policy for business=%s, professional=%v", businessID, professionalID)

	if err := s.checkScope(ctx, businessID, professionalID); err != nil {
		return nil, err
	}

	policy, err := s.Resolve(ctx, businessID, professionalID)
	if err != nil {
		return nil, err
	}

	return models.FromDomainPolicy(policy), nil
}

// GetAllByBusiness получает все политики компании
// Доступно только представителям компании
func (s *Service) GetAllByBusiness(ctx context.Context, actor domain.Actor, businessID uuid.UUID) (*models.PolicyListResponse, error) {
	s.logger.Info("GetAllByBusiness: fetching policies for business=%s by user=%s", businessID, actor.AccountID)

	if !actor.IsBusinessOf(businessID) {
		s.logger.Warn("GetAllByBusiness: user=%s does not represent business=%s", actor.AccountID, businessID)
		return nil, ErrAccessDenied
	}

	policies, err := s.policyRepo.GetAllByBusiness(ctx, businessID)
	if err != nil {
		s.logger.Error("GetAllByBusiness: repository error for business=%s: %v", businessID, err)
		return nil, fmt.Errorf("%w: GetAllByBusiness - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainPolicyList(policies), nil
}

// Upsert создает политику нужного уровня или обновляет существующую
// Доступно только представителям компании
// Поддерживает частичное обновление: непереданные поля берутся из текущей политики
// (или из значений по умолчанию при создании)
func (s *Service) Upsert(ctx context.Context, actor domain.Actor, req *models.UpsertPolicyRequest) (*models.PolicyResponse, error) {
	s.logger.Info("Upsert: saving policy for business=%s, professional=%v by user=%s",
		req.BusinessID, req.ProfessionalID, actor.AccountID)

	// 1. Проверяем права доступа
	if !actor.IsBusinessOf(req.BusinessID) {
		s.logger.Warn("Upsert: user=%s does not represent business=%s", actor.AccountID, req.BusinessID)
		return nil, ErrAccessDenied
	}

	// 2. Проверяем компанию и мастера
	if err := s.checkScope(ctx, req.BusinessID, req.ProfessionalID); err != nil {
		return nil, err
	}

	var saved *domain.BookingPolicy
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		// 3. Ищем политику ровно этого уровня
		existing, err := s.policyRepo.GetByBusinessAndProfessional(ctx, req.BusinessID, req.ProfessionalID)
		if err != nil && !errors.Is(err, configRepo.ErrPolicyNotFound) {
			return fmt.Errorf("%w: Upsert - repository error: %v", ErrInternal, err)
		}

		policy := existing
		if policy == nil {
			policy = domain.DefaultBookingPolicy(req.BusinessID)
			policy.ProfessionalID = req.ProfessionalID
		}
		req.ApplyToPolicy(policy)

		// 4. Валидируем итоговые значения
		if err := validatePolicy(policy); err != nil {
			return err
		}

		// 5. Сохраняем
		if existing == nil {
			saved, err = s.policyRepo.Create(ctx, policy)
		} else {
			saved, err = s.policyRepo.Update(ctx, existing.ID, policy)
		}
		if err != nil {
			return fmt.Errorf("%w: Upsert - repository error: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrInternal) {
			s.logger.Error("Upsert: failed for business=%s: %v", req.BusinessID, err)
		} else {
			s.logger.Warn("Upsert: rejected for business=%s: %v", req.BusinessID, err)
		}
		return nil, err
	}

	s.logger.Info("Upsert: saved policy id=%s", saved.ID)
	return models.FromDomainPolicy(saved), nil
}

// Вспомогательные методы

// checkScope проверяет, что компания существует и мастер (если указан) работает в ней
func (s *Service) checkScope(ctx context.Context, businessID uuid.UUID, professionalID *uuid.UUID) error {
	if _, err := s.catalogRepo.GetBusiness(ctx, businessID); err != nil {
		if errors.Is(err, catalogRepo.ErrBusinessNotFound) {
			s.logger.Warn("checkScope: business id=%s not found", businessID)
			return ErrBusinessNotFound
		}
		s.logger.Error("checkScope: failed to get business id=%s: %v", businessID, err)
		return fmt.Errorf("%w: failed to get business: %v", ErrInternal, err)
	}

	if professionalID == nil {
		return nil
	}

	professional, err := s.catalogRepo.GetProfessional(ctx, *professionalID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrProfessionalNotFound) {
			s.logger.Warn("checkScope: professional id=%s not found", *professionalID)
			return ErrProfessionalNotFound
		}
		s.logger.Error("checkScope: failed to get professional id=%s: %v", *professionalID, err)
		return fmt.Errorf("%w: failed to get professional: %v", ErrInternal, err)
	}
	if professional.BusinessID != businessID {
		s.logger.Warn("checkScope: professional id=%s belongs to another business", *professionalID)
		return ErrProfessionalNotFound
	}

	return nil
}
