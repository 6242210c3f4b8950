package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

var moscow = time.FixedZone("MSK", 3*60*60)

func tuesdayHours() domain.OpeningHours {
	return domain.OpeningHours{
		Tuesday: domain.DaySchedule{IsOpen: true, Open: "09:00", Close: "19:00"},
		Exceptions: map[string]domain.DaySchedule{
			"2026-03-17": {IsOpen: false},
			"2026-03-24": {IsOpen: true, Open: "10:00", Close: "14:00"},
		},
	}
}

func at(day, hour, minute int) time.Time {
	return time.Date(2026, 3, day, hour, minute, 0, 0, moscow)
}

func TestWindowFor(t *testing.T) {
	t.Run("regular weekday", func(t *testing.T) {
		w, ok, err := WindowFor(tuesdayHours(), at(10, 12, 0), moscow)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, at(10, 9, 0), w.Open)
		assert.Equal(t, at(10, 19, 0), w.Close)
	})

	t.Run("closed weekday", func(t *testing.T) {
		_, ok, err := WindowFor(tuesdayHours(), at(9, 12, 0), moscow)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("holiday exception", func(t *testing.T) {
		_, ok, err := WindowFor(tuesdayHours(), at(17, 0, 0), moscow)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("shortened day exception", func(t *testing.T) {
		w, ok, err := WindowFor(tuesdayHours(), at(24, 0, 0), moscow)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, at(24, 10, 0), w.Open)
		assert.Equal(t, at(24, 14, 0), w.Close)
	})

	t.Run("day is taken in business location", func(t *testing.T) {
		// 22:00 UTC on Monday is already Tuesday in Moscow
		w, ok, err := WindowFor(tuesdayHours(), time.Date(2026, 3, 9, 22, 0, 0, 0, time.UTC), moscow)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, at(10, 9, 0), w.Open)
	})

	t.Run("malformed hours", func(t *testing.T) {
		hours := domain.OpeningHours{Tuesday: domain.DaySchedule{IsOpen: true, Open: "nine", Close: "19:00"}}
		_, _, err := WindowFor(hours, at(10, 0, 0), moscow)
		assert.Error(t, err)
	})
}

func TestGenerateSlots(t *testing.T) {
	window := Window{Open: at(10, 9, 0), Close: at(10, 19, 0)}

	slots := GenerateSlots(window, 30*time.Minute, 60*time.Minute)

	require.Len(t, slots, 19)
	assert.Equal(t, at(10, 9, 0), slots[0])
	assert.Equal(t, at(10, 9, 30), slots[1])
	assert.Equal(t, at(10, 18, 0), slots[len(slots)-1])
	for _, s := range slots {
		assert.False(t, s.Add(60*time.Minute).After(window.Close), "slot %s ends after close", s)
	}
}

func TestGenerateSlots_ServiceLongerThanWindow(t *testing.T) {
	window := Window{Open: at(10, 9, 0), Close: at(10, 10, 0)}

	assert.Empty(t, GenerateSlots(window, 30*time.Minute, 90*time.Minute))
	assert.Empty(t, GenerateSlots(window, 0, 30*time.Minute))
	assert.Len(t, GenerateSlots(window, 30*time.Minute, 60*time.Minute), 1)
}

func TestIsOnGrid(t *testing.T) {
	window := Window{Open: at(10, 9, 0), Close: at(10, 19, 0)}

	assert.True(t, IsOnGrid(window, 30*time.Minute, at(10, 14, 0)))
	assert.True(t, IsOnGrid(window, 30*time.Minute, at(10, 9, 0)))
	assert.False(t, IsOnGrid(window, 30*time.Minute, at(10, 14, 15)))
	assert.False(t, IsOnGrid(window, 30*time.Minute, at(10, 8, 30)))
}
