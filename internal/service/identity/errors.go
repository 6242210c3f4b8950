package identity

import (
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

var (
	// ErrRateLimited возвращается, когда с одного клиента слишком много гостевых бронирований
	ErrRateLimited = fmt.Errorf("identity: too many guest booking attempts: %w", domain.ErrRateLimited)
)
