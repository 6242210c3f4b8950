package identity

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Service определяет, кто бронирует: авторизованный аккаунт или гость
type Service struct {
	limiter RateLimiter
	logger  Logger
}

// NewService создает новый экземпляр сервиса; limiter может быть nil
func NewService(limiter RateLimiter, logger Logger) *Service {
	return &Service{
		limiter: limiter,
		logger:  logger,
	}
}

// Resolve определяет клиента бронирования
// Порядок проверок для гостя: honeypot → лимит частоты → валидация контактов
func (s *Service) Resolve(ctx context.Context, req *Request) (*Resolution, error) {
	// 1. Авторизованный пользователь - гостевые поля игнорируются
	if req.AccountID != nil {
		return &Resolution{Identity: domain.AccountIdentity(*req.AccountID)}, nil
	}

	// 2. Honeypot заполнен - это бот, отвечаем успехом и ничего не сохраняем
	if req.IsBot() {
		s.logger.Warn("Resolve: honeypot triggered, client=%s", req.ClientKey)
		return &Resolution{Discard: true}, nil
	}

	// 3. Ограничение частоты гостевых бронирований
	if s.limiter != nil && req.ClientKey != "" {
		allowed, err := s.limiter.Allow(ctx, req.ClientKey)
		if err != nil {
			// Ограничитель недоступен - пропускаем запрос
			s.logger.Error("Resolve: rate limiter failed for client=%s: %v", req.ClientKey, err)
		} else if !allowed {
			s.logger.Warn("Resolve: rate limit exceeded for client=%s", req.ClientKey)
			return nil, ErrRateLimited
		}
	}

	// 4. Валидация контактов
	contact, err := validateGuest(req.Guest)
	if err != nil {
		s.logger.Warn("Resolve: guest validation failed: %v", err)
		return nil, err
	}

	return &Resolution{Identity: domain.GuestIdentity(contact)}, nil
}
