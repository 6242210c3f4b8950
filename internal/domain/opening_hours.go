package domain

import (
	"fmt"
	"strings"
	"time"
)

// DaySchedule describes opening hours for one day. Open/Close are "HH:MM".
type DaySchedule struct {
	IsOpen bool   `json:"isOpen"`
	Open   string `json:"open,omitempty"`
	Close  string `json:"close,omitempty"`
}

// OpeningHours is the weekly schedule of a business plus date-specific exceptions
// (holidays, shortened days). Exceptions are keyed by DateFormat.
type OpeningHours struct {
	Monday     DaySchedule            `json:"monday"`
	Tuesday    DaySchedule            `json:"tuesday"`
	Wednesday  DaySchedule            `json:"wednesday"`
	Thursday   DaySchedule            `json:"thursday"`
	Friday     DaySchedule            `json:"friday"`
	Saturday   DaySchedule            `json:"saturday"`
	Sunday     DaySchedule            `json:"sunday"`
	Exceptions map[string]DaySchedule `json:"exceptions,omitempty"`
}

// ScheduleFor returns the effective schedule for a calendar day
func (h OpeningHours) ScheduleFor(day time.Time) DaySchedule {
	if ex, ok := h.Exceptions[day.Format(DateFormat)]; ok {
		return ex
	}

	switch day.Weekday() {
	case time.Monday:
		return h.Monday
	case time.Tuesday:
		return h.Tuesday
	case time.Wednesday:
		return h.Wednesday
	case time.Thursday:
		return h.Thursday
	case time.Friday:
		return h.Friday
	case time.Saturday:
		return h.Saturday
	case time.Sunday:
		return h.Sunday
	default:
		return DaySchedule{}
	}
}

// Validate checks every day has parseable, ordered times when open
func (h OpeningHours) Validate() error {
	days := map[string]DaySchedule{
		"monday": h.Monday, "tuesday": h.Tuesday, "wednesday": h.Wednesday,
		"thursday": h.Thursday, "friday": h.Friday, "saturday": h.Saturday, "sunday": h.Sunday,
	}
	for date, s := range h.Exceptions {
		if _, err := time.Parse(DateFormat, date); err != nil {
			return fmt.Errorf("exception date %q: %w", date, err)
		}
		days["exception "+date] = s
	}

	for name, s := range days {
		if !s.IsOpen {
			continue
		}
		open, err := ParseClock(s.Open)
		if err != nil {
			return fmt.Errorf("%s open: %w", name, err)
		}
		closeAt, err := ParseClock(s.Close)
		if err != nil {
			return fmt.Errorf("%s close: %w", name, err)
		}
		if closeAt <= open {
			return fmt.Errorf("%s: close must be after open", name)
		}
	}
	return nil
}

// ParseClock parses "HH:MM" into an offset from midnight. "24:00" is accepted as end of day.
func ParseClock(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "24:00" {
		return 24 * time.Hour, nil
	}
	t, err := time.Parse(TimeFormat, s)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q, expected HH:MM", s)
	}
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, nil
}
