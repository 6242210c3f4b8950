package scheduling

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

var (
	// ErrClosed возвращается, когда компания закрыта в этот день
	ErrClosed = errors.New("business is closed on this day")

	// ErrOutsideHours возвращается, когда услуга не помещается в рабочее окно
	ErrOutsideHours = errors.New("appointment is outside opening hours")

	// ErrOffGrid возвращается, когда время начала не совпадает с сеткой слотов
	ErrOffGrid = errors.New("start time is not aligned to the slot grid")

	// ErrBeyondAdvanceWindow возвращается, когда день дальше допустимого горизонта записи
	ErrBeyondAdvanceWindow = errors.New("date is too far in the future")
)

// Earliest возвращает момент, после которого (строго) можно начинать запись
func Earliest(policy *domain.BookingPolicy, now time.Time) time.Time {
	return now.Add(policy.MinNotice())
}

// CheckDay проверяет, что календарный день не в прошлом и не дальше горизонта записи
func CheckDay(policy *domain.BookingPolicy, day, now time.Time, loc *time.Location) error {
	local := now.In(loc)
	today := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	d := day.In(loc)
	dayStart := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, loc)

	if dayStart.Before(today) {
		return ErrSlotInPast
	}
	if latest, limited := policy.LatestBookableDay(now, loc); limited && dayStart.After(latest) {
		return ErrBeyondAdvanceWindow
	}
	return nil
}

// CheckStart проверяет время начала записи длительностью duration без учета занятости:
// горизонт записи, рабочее окно дня, сетку слотов и минимальное время до записи
func CheckStart(hours domain.OpeningHours, policy *domain.BookingPolicy, start time.Time, duration time.Duration, now time.Time, loc *time.Location) error {
	if err := CheckDay(policy, start, now, loc); err != nil {
		return err
	}

	window, open, err := WindowFor(hours, start, loc)
	if err != nil {
		return err
	}
	if !open {
		return ErrClosed
	}

	if !window.Contains(NewInterval(start, duration)) {
		return ErrOutsideHours
	}
	if !IsOnGrid(window, policy.SlotStep(), start) {
		return ErrOffGrid
	}

	return Detector{}.Check(NewInterval(start, duration), nil, Earliest(policy, now))
}

// Reason возвращает описание отказа правил расписания для ответа клиенту
// ok = false, если err не является отказом правил
func Reason(err error) (string, bool) {
	switch {
	case errors.Is(err, ErrSlotInPast):
		return "is in the past or inside the minimum booking notice", true
	case errors.Is(err, ErrBeyondAdvanceWindow):
		return "is beyond the advance booking window", true
	case errors.Is(err, ErrClosed):
		return "business is closed on this day", true
	case errors.Is(err, ErrOutsideHours):
		return "appointment does not fit into opening hours", true
	case errors.Is(err, ErrOffGrid):
		return "is not aligned to the slot grid", true
	default:
		return "", false
	}
}
