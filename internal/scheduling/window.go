package scheduling

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Window рабочее окно дня [Open, Close) в часовом поясе компании
type Window struct {
	Open  time.Time
	Close time.Time
}

// WindowFor возвращает рабочее окно компании на календарный день day.
// Исключения (праздники, сокращённые дни) имеют приоритет над недельным расписанием.
// ok = false, если компания в этот день закрыта.
func WindowFor(hours domain.OpeningHours, day time.Time, loc *time.Location) (Window, bool, error) {
	local := day.In(loc)
	midnight := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)

	schedule := hours.ScheduleFor(midnight)
	if !schedule.IsOpen {
		return Window{}, false, nil
	}

	open, err := domain.ParseClock(schedule.Open)
	if err != nil {
		return Window{}, false, fmt.Errorf("open time: %w", err)
	}
	closeAt, err := domain.ParseClock(schedule.Close)
	if err != nil {
		return Window{}, false, fmt.Errorf("close time: %w", err)
	}
	if closeAt <= open {
		return Window{}, false, nil
	}

	// Часы складываются через time.Date, чтобы переход на летнее время не сдвигал сетку
	return Window{
		Open:  atClock(midnight, open),
		Close: atClock(midnight, closeAt),
	}, true, nil
}

// Contains проверяет, что интервал целиком помещается в окно
func (w Window) Contains(iv Interval) bool {
	return !iv.Start.Before(w.Open) && !iv.End.After(w.Close)
}

func atClock(midnight time.Time, offset time.Duration) time.Time {
	minutes := int(offset / time.Minute)
	return time.Date(midnight.Year(), midnight.Month(), midnight.Day(), minutes/60, minutes%60, 0, 0, midnight.Location())
}
