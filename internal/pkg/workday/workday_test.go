package workday

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// at builds an office-local instant on a fixed reference date.
func at(cfg Config, hour, min int) time.Time {
	return time.Date(2026, time.March, 10, hour, min, 0, 0, cfg.Location)
}

func TestWorkedSeconds_NoBreakOverlap(t *testing.T) {
	t.Parallel()
	cfg := Default()

	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  int
	}{
		{"morning only", at(cfg, 9, 0), at(cfg, 12, 0), 3 * 3600},
		{"afternoon only", at(cfg, 14, 0), at(cfg, 18, 0), 4 * 3600},
		{"ends exactly at break start", at(cfg, 10, 0), at(cfg, 13, 0), 3 * 3600},
		{"starts exactly at break end", at(cfg, 14, 0), at(cfg, 15, 30), 90 * 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cfg.WorkedSeconds(tt.start, tt.end))
			// Outside the break window the net time equals the elapsed time.
			assert.Equal(t, int(tt.end.Sub(tt.start).Seconds()), cfg.WorkedSeconds(tt.start, tt.end))
		})
	}
}

func TestWorkedSeconds_BreakOverlap(t *testing.T) {
	t.Parallel()
	cfg := Default()

	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  int
	}{
		{"spans half the break", at(cfg, 10, 0), at(cfg, 13, 30), 3 * 3600},
		{"spans whole break", at(cfg, 9, 0), at(cfg, 18, 0), 8 * 3600},
		{"entirely inside break", at(cfg, 13, 10), at(cfg, 13, 50), 0},
		{"starts inside break", at(cfg, 13, 30), at(cfg, 15, 0), 3600},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cfg.WorkedSeconds(tt.start, tt.end))
		})
	}
}

func TestWorkedSeconds_InvalidInterval(t *testing.T) {
	t.Parallel()
	cfg := Default()

	assert.Equal(t, 0, cfg.WorkedSeconds(at(cfg, 12, 0), at(cfg, 12, 0)))
	assert.Equal(t, 0, cfg.WorkedSeconds(at(cfg, 15, 0), at(cfg, 12, 0)))
}

func TestWorkedSeconds_MultiDaySpan(t *testing.T) {
	t.Parallel()
	cfg := Default()

	// Two full break windows deducted across the midnight crossing.
	start := at(cfg, 12, 0)
	end := start.AddDate(0, 0, 1).Add(3 * time.Hour) // next day 15:00
	elapsed := int(end.Sub(start).Seconds())
	assert.Equal(t, elapsed-2*3600, cfg.WorkedSeconds(start, end))
}

func TestWorkedSeconds_TimezoneIndependentInput(t *testing.T) {
	t.Parallel()
	cfg := Default()

	// The same instants expressed in UTC must yield identical results.
	start := at(cfg, 10, 0)
	end := at(cfg, 13, 30)
	assert.Equal(t,
		cfg.WorkedSeconds(start, end),
		cfg.WorkedSeconds(start.UTC(), end.UTC()),
	)
}

func TestInBreak(t *testing.T) {
	t.Parallel()
	cfg := Default()

	assert.False(t, cfg.InBreak(at(cfg, 12, 59)))
	assert.True(t, cfg.InBreak(at(cfg, 13, 0)))
	assert.True(t, cfg.InBreak(at(cfg, 13, 59)))
	assert.False(t, cfg.InBreak(at(cfg, 14, 0)))

	// Instants arriving in UTC still compare against the office wall clock.
	assert.True(t, cfg.InBreak(at(cfg, 13, 20).UTC()))
}

func TestDateOfAndBoundaries(t *testing.T) {
	t.Parallel()
	cfg := Default()

	instant := at(cfg, 16, 45)
	date := cfg.DateOf(instant)

	assert.Equal(t, 0, date.Hour())
	assert.True(t, cfg.SameDay(instant, date))
	assert.Equal(t, at(cfg, 18, 0), cfg.ShiftEndOn(instant))
	assert.Equal(t, at(cfg, 13, 0), cfg.BreakStartOn(instant))
	assert.Equal(t, 16*time.Hour+45*time.Minute, cfg.TimeOfDay(instant))

	// An instant just past office midnight belongs to the next civil day
	// even when its UTC representation is still on the previous one.
	lateNight := time.Date(2026, time.March, 11, 0, 30, 0, 0, cfg.Location)
	assert.False(t, cfg.SameDay(instant, lateNight))
}
