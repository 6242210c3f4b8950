package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

func TestInterval_Overlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b Interval
		want bool
	}{
		{"partial overlap", Interval{at(10, 14, 0), at(10, 14, 30)}, Interval{at(10, 14, 15), at(10, 14, 45)}, true},
		{"contained", Interval{at(10, 11, 0), at(10, 13, 0)}, Interval{at(10, 11, 30), at(10, 12, 0)}, true},
		{"identical", Interval{at(10, 11, 0), at(10, 12, 0)}, Interval{at(10, 11, 0), at(10, 12, 0)}, true},
		{"adjacent before", Interval{at(10, 11, 0), at(10, 11, 30)}, Interval{at(10, 11, 30), at(10, 12, 0)}, false},
		{"adjacent after", Interval{at(10, 12, 0), at(10, 12, 30)}, Interval{at(10, 11, 30), at(10, 12, 0)}, false},
		{"disjoint", Interval{at(10, 9, 0), at(10, 10, 0)}, Interval{at(10, 15, 0), at(10, 16, 0)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Overlaps(tt.b))
			assert.Equal(t, tt.want, tt.b.Overlaps(tt.a))
		})
	}
}

func TestDetector_Check(t *testing.T) {
	busy := []Interval{{at(10, 14, 0), at(10, 14, 30)}}
	now := at(10, 8, 0)

	var d Detector
	assert.NoError(t, d.Check(NewInterval(at(10, 14, 30), 30*time.Minute), busy, now))
	assert.ErrorIs(t, d.Check(NewInterval(at(10, 14, 15), 30*time.Minute), busy, now), ErrSlotOverlaps)
	assert.ErrorIs(t, d.Check(NewInterval(at(10, 8, 0), 30*time.Minute), nil, now), ErrSlotInPast)
	assert.ErrorIs(t, d.Check(NewInterval(at(10, 7, 0), 30*time.Minute), nil, now), ErrSlotInPast)
}

// Окно 09:00-19:00, шаг 30 минут, услуга 60 минут, запись 11:00-12:00, сейчас 08:00
func TestDetector_Free_DayScenario(t *testing.T) {
	window := Window{Open: at(10, 9, 0), Close: at(10, 19, 0)}
	duration := 60 * time.Minute

	appointments := []*domain.Appointment{
		{StartTime: at(10, 11, 0), DurationMinutes: 60, Status: domain.StatusConfirmed},
		{StartTime: at(10, 15, 0), DurationMinutes: 60, Status: domain.StatusCancelled},
	}
	busy := BusyIntervals(appointments, nil)

	free := Detector{}.Free(GenerateSlots(window, 30*time.Minute, duration), duration, busy, at(10, 8, 0))

	assert.NotContains(t, free, at(10, 10, 30))
	assert.NotContains(t, free, at(10, 11, 0))
	assert.NotContains(t, free, at(10, 11, 30))
	assert.Contains(t, free, at(10, 10, 0))
	assert.Contains(t, free, at(10, 12, 0))
	assert.Contains(t, free, at(10, 15, 0))
	assert.Equal(t, at(10, 9, 0), free[0])
	assert.Equal(t, at(10, 18, 0), free[len(free)-1])
	assert.Len(t, free, 16)
}

func TestDetector_Free_NeverReturnsPastOrOverlapping(t *testing.T) {
	window := Window{Open: at(10, 9, 0), Close: at(10, 19, 0)}
	duration := 45 * time.Minute
	now := at(10, 13, 10)

	blocks := []*domain.ScheduleBlock{{StartTime: at(10, 16, 0), EndTime: at(10, 17, 0)}}
	appointments := []*domain.Appointment{{StartTime: at(10, 14, 0), DurationMinutes: 30, Status: domain.StatusPending}}
	busy := BusyIntervals(appointments, blocks)

	free := Detector{}.Free(GenerateSlots(window, 15*time.Minute, duration), duration, busy, now)

	assert.NotEmpty(t, free)
	for _, s := range free {
		assert.True(t, s.After(now))
		candidate := NewInterval(s, duration)
		for _, b := range busy {
			assert.False(t, candidate.Overlaps(b), "slot %s overlaps %s-%s", s, b.Start, b.End)
		}
	}
}
