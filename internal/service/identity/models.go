package identity

import (
	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// GuestFields контакты гостя в том виде, в котором их прислал клиент
type GuestFields struct {
	Name  string
	Phone string
	Email string
}

// Request запрос на определение клиента бронирования
type Request struct {
	AccountID *uuid.UUID   // ID авторизованного пользователя, nil для гостя
	Guest     *GuestFields // контакты гостя
	Honeypot  string       // скрытое поле формы, люди его не заполняют
	ClientKey string       // ключ ограничения частоты (IP клиента)
}

// IsBot возвращает true для гостя, заполнившего скрытое поле формы
func (r *Request) IsBot() bool {
	return r.AccountID == nil && r.Honeypot != ""
}

// Resolution результат определения клиента
// Discard = true означает, что запрос от бота: нужно ответить успехом и ничего не сохранять
type Resolution struct {
	Identity domain.ClientIdentity
	Discard  bool
}
