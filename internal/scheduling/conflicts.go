package scheduling

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

var (
	// ErrSlotInPast возвращается, когда слот начинается не позже допустимого момента
	ErrSlotInPast = errors.New("slot starts too early")

	// ErrSlotOverlaps возвращается, когда слот пересекается с занятым интервалом
	ErrSlotOverlaps = errors.New("slot overlaps busy interval")
)

// Interval полуоткрытый интервал [Start, End)
type Interval struct {
	Start time.Time
	End   time.Time
}

// NewInterval создает интервал длительностью duration от start
func NewInterval(start time.Time, duration time.Duration) Interval {
	return Interval{Start: start, End: start.Add(duration)}
}

// Overlaps проверяет РЕАЛЬНОЕ пересечение интервалов.
// Граничащие интервалы (один заканчивается там, где начинается другой) НЕ пересекаются.
//
// Примеры:
// - 14:00-14:30 и 14:15-14:45 → ЕСТЬ пересечение
// - 11:00-11:30 и 11:30-12:00 → НЕТ пересечения (граничат)
func (i Interval) Overlaps(other Interval) bool {
	return i.Start.Before(other.End) && i.End.After(other.Start)
}

// Detector проверяет кандидатов против занятых интервалов
type Detector struct{}

// Check возвращает ErrSlotInPast, если кандидат начинается не строго позже earliest,
// и ErrSlotOverlaps, если он пересекается хотя бы с одним занятым интервалом
func (Detector) Check(candidate Interval, busy []Interval, earliest time.Time) error {
	if !candidate.Start.After(earliest) {
		return ErrSlotInPast
	}
	for _, b := range busy {
		if candidate.Overlaps(b) {
			return ErrSlotOverlaps
		}
	}
	return nil
}

// Free отбирает из кандидатов те, что проходят Check
func (d Detector) Free(candidates []time.Time, duration time.Duration, busy []Interval, earliest time.Time) []time.Time {
	free := make([]time.Time, 0, len(candidates))
	for _, start := range candidates {
		if d.Check(NewInterval(start, duration), busy, earliest) == nil {
			free = append(free, start)
		}
	}
	return free
}

// BusyIntervals собирает занятые интервалы профессионала из записей и блокировок.
// Отменённые записи время не занимают.
func BusyIntervals(appointments []*domain.Appointment, blocks []*domain.ScheduleBlock) []Interval {
	busy := make([]Interval, 0, len(appointments)+len(blocks))
	for _, a := range appointments {
		if a.IsCancelled() {
			continue
		}
		busy = append(busy, Interval{Start: a.StartTime, End: a.EndTime()})
	}
	for _, b := range blocks {
		busy = append(busy, Interval{Start: b.StartTime, End: b.EndTime})
	}
	return busy
}
