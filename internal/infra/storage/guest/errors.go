package guest

import "errors"

var (
	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("guest.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("guest.repository: failed to execute query")

	// ErrGuestNotFound возвращается, когда у записи нет гостевых контактов
	ErrGuestNotFound = errors.New("guest.repository: guest booking not found")
)
