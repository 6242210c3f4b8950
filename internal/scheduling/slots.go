package scheduling

import "time"

// GenerateSlots генерирует кандидатов начала записи в окне с шагом step.
// Кандидат попадает в результат, только если услуга длительностью duration
// заканчивается не позже закрытия.
//
// Пример: окно 09:00-19:00, шаг 30 минут, услуга 60 минут → 09:00, 09:30, ..., 18:00
func GenerateSlots(window Window, step, duration time.Duration) []time.Time {
	if step <= 0 || duration <= 0 || !window.Open.Before(window.Close) {
		return []time.Time{}
	}

	slots := make([]time.Time, 0, int(window.Close.Sub(window.Open)/step)+1)
	for candidate := window.Open; !candidate.Add(duration).After(window.Close); candidate = candidate.Add(step) {
		slots = append(slots, candidate)
	}

	return slots
}

// IsOnGrid проверяет, что start совпадает с одним из кандидатов сетки окна
func IsOnGrid(window Window, step time.Duration, start time.Time) bool {
	if step <= 0 || start.Before(window.Open) {
		return false
	}
	return start.Sub(window.Open)%step == 0
}
