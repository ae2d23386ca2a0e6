package attendance

import (
	"time"

	"github.com/workpulse-hq/workforce-backend-go/internal/domain/attendance"
	"github.com/workpulse-hq/workforce-backend-go/internal/pkg/workday"
)

// Classifier derives a day's status and overtime from its clock times.
// Both methods are total functions: every input maps to a defined output.
type Classifier struct {
	rules workday.Config
}

func NewClassifier(rules workday.Config) *Classifier {
	return &Classifier{rules: rules}
}

// EffectiveClockIn picks the timestamp lateness and classification are judged
// against: the first clock-in of the day when known, the current clock-in
// otherwise, or a back-computed start when only a closed total survives.
func (c *Classifier) EffectiveClockIn(record attendance.Record) *time.Time {
	if record.FirstClockIn != nil {
		return record.FirstClockIn
	}
	if record.ClockIn != nil {
		return record.ClockIn
	}
	if record.ClockOut != nil && record.AccumulatedSeconds > 0 {
		start := record.ClockOut.Add(-time.Duration(record.AccumulatedSeconds) * time.Second)
		return &start
	}
	return nil
}

// Classify maps clock-in / reference-end times and worked seconds to a
// status. referenceEnd is the clock-out time, or nil while a session is
// still open. First matching rule wins.
func (c *Classifier) Classify(clockIn *time.Time, referenceEnd *time.Time, workedSeconds int) (attendance.Status, *attendance.HalfDayPortion) {
	if clockIn == nil {
		return attendance.StatusAbsent, nil
	}
	if referenceEnd == nil {
		return attendance.StatusInProgress, nil
	}

	in := c.rules.TimeOfDay(*clockIn)
	end := c.rules.TimeOfDay(*referenceEnd)
	worked := time.Duration(workedSeconds) * time.Second

	onTime := in >= c.rules.ShiftStart && in <= c.rules.LateThreshold

	switch {
	case onTime && end >= c.rules.ShiftEnd:
		return attendance.StatusPresent, nil

	case in > c.rules.LateThreshold && end > c.rules.ShiftEnd:
		return attendance.StatusLate, nil

	case onTime && end >= c.rules.BreakStart && end < c.rules.BreakEnd && worked >= c.rules.HalfDayMinimum:
		portion := attendance.FirstHalf
		return attendance.StatusHalfDay, &portion

	case in >= c.rules.BreakEnd && end >= c.rules.ShiftEnd && worked >= c.rules.HalfDayMinimum:
		portion := attendance.SecondHalf
		return attendance.StatusHalfDay, &portion

	case worked >= c.rules.HalfDayMinimum:
		// Irregular patterns that still add up to half a day; the portion is
		// inferred from arrival alone.
		portion := attendance.FirstHalf
		if in >= c.rules.BreakEnd {
			portion = attendance.SecondHalf
		}
		return attendance.StatusHalfDay, &portion
	}

	return attendance.StatusAbsent, nil
}

// Overtime returns the larger of shift-end overrun and standard-shift
// overrun, in seconds. referenceEnd is the real end of work as observed:
// "now" for a session closing or still open today, the shift-end boundary
// for a stale record swept on a later day. A manual override with a positive
// overtime value is returned verbatim.
func (c *Classifier) Overtime(record attendance.Record, workedSeconds int, referenceEnd time.Time) int {
	if record.OvertimeOverridden && record.OvertimeSeconds > 0 {
		return record.OvertimeSeconds
	}

	shiftEnd := c.rules.ShiftEndOn(c.rules.DateOf(record.Date))

	beyondShiftEnd := int(referenceEnd.Sub(shiftEnd).Seconds())
	if beyondShiftEnd < 0 {
		beyondShiftEnd = 0
	}

	beyondStandard := workedSeconds - int(c.rules.StandardShift.Seconds())
	if beyondStandard < 0 {
		beyondStandard = 0
	}

	if beyondShiftEnd > beyondStandard {
		return beyondShiftEnd
	}
	return beyondStandard
}
