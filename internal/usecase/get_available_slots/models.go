package get_available_slots

import (
	"time"

	"github.com/google/uuid"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	BusinessID     uuid.UUID
	ProfessionalID uuid.UUID
	ServiceID      uuid.UUID
	Date           time.Time // Календарный день; год, месяц и число трактуются в часовом поясе компании
}

// Response модель ответа со списком доступных слотов
type Response struct {
	Date            time.Time   // Начало дня в часовом поясе компании
	BusinessID      uuid.UUID
	ProfessionalID  uuid.UUID
	ServiceID       uuid.UUID
	DurationMinutes int         // Длительность услуги
	Timezone        string      // Часовой пояс компании
	Slots           []time.Time // Время начала свободных слотов, по возрастанию
}
