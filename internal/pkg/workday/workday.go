// Package workday holds the office-time arithmetic shared by the attendance
// engine: civil-date handling, shift/break boundary construction and the
// break-aware worked-seconds calculation. Everything here is pure; all
// wall-clock comparisons happen in the single fixed office timezone.
package workday

import (
	"time"
)

// Config describes the office working day. Boundary fields are offsets from
// office midnight.
type Config struct {
	Location *time.Location

	ShiftStart    time.Duration
	LateThreshold time.Duration
	ShiftEnd      time.Duration
	BreakStart    time.Duration
	BreakEnd      time.Duration

	HalfDayMinimum time.Duration
	StandardShift  time.Duration
	DailyCap       time.Duration
}

// Default returns the standard office day: 09:00-18:00 shift, 09:30 late
// threshold, 13:00-14:00 break, 4h half-day minimum, 8h15m standard shift,
// 9h daily cap, office zone UTC+05:30.
func Default() Config {
	return Config{
		Location:       time.FixedZone("OFFICE", int((5*time.Hour + 30*time.Minute).Seconds())),
		ShiftStart:     9 * time.Hour,
		LateThreshold:  9*time.Hour + 30*time.Minute,
		ShiftEnd:       18 * time.Hour,
		BreakStart:     13 * time.Hour,
		BreakEnd:       14 * time.Hour,
		HalfDayMinimum: 4 * time.Hour,
		StandardShift:  8*time.Hour + 15*time.Minute,
		DailyCap:       9 * time.Hour,
	}
}

// DateOf truncates t to its civil date in the office timezone (office
// midnight of that day).
func (c Config) DateOf(t time.Time) time.Time {
	local := t.In(c.Location)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, c.Location)
}

// At returns the instant `offset` past office midnight of date.
func (c Config) At(date time.Time, offset time.Duration) time.Time {
	return c.DateOf(date).Add(offset)
}

func (c Config) ShiftStartOn(date time.Time) time.Time    { return c.At(date, c.ShiftStart) }
func (c Config) LateThresholdOn(date time.Time) time.Time { return c.At(date, c.LateThreshold) }
func (c Config) ShiftEndOn(date time.Time) time.Time      { return c.At(date, c.ShiftEnd) }
func (c Config) BreakStartOn(date time.Time) time.Time    { return c.At(date, c.BreakStart) }
func (c Config) BreakEndOn(date time.Time) time.Time      { return c.At(date, c.BreakEnd) }

// TimeOfDay returns t's offset from office midnight.
func (c Config) TimeOfDay(t time.Time) time.Duration {
	return t.Sub(c.DateOf(t))
}

// SameDay reports whether a and b fall on the same office civil date.
func (c Config) SameDay(a, b time.Time) bool {
	return c.DateOf(a).Equal(c.DateOf(b))
}

// InBreak reports whether t falls inside the daily break window.
func (c Config) InBreak(t time.Time) bool {
	tod := c.TimeOfDay(t)
	return tod >= c.BreakStart && tod < c.BreakEnd
}

// WorkedSeconds returns the net worked seconds of the interval [start, end):
// the elapsed seconds minus the overlap with every daily break window the
// interval spans. Returns 0 when end <= start. Spans crossing office
// midnight are handled day by day even though the session state machine
// normally closes sessions before that happens.
func (c Config) WorkedSeconds(start, end time.Time) int {
	if !end.After(start) {
		return 0
	}

	gross := int(end.Sub(start).Seconds())

	overlap := 0
	last := c.DateOf(end)
	for day := c.DateOf(start); !day.After(last); day = day.AddDate(0, 0, 1) {
		bs := c.BreakStartOn(day)
		be := c.BreakEndOn(day)

		ovStart := start
		if bs.After(ovStart) {
			ovStart = bs
		}
		ovEnd := end
		if be.Before(ovEnd) {
			ovEnd = be
		}
		if ovEnd.After(ovStart) {
			overlap += int(ovEnd.Sub(ovStart).Seconds())
		}
	}

	return gross - overlap
}
