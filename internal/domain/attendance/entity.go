package attendance

import (
	"time"
)

// Status classifies a finished (or in-flight) attendance day.
type Status string

const (
	StatusAbsent     Status = "absent"
	StatusPresent    Status = "present"
	StatusLate       Status = "late"
	StatusHalfDay    Status = "halfday"
	StatusInProgress Status = "in_progress"
	StatusHoliday    Status = "holiday"
	StatusLeave      Status = "leave"
)

// HalfDayPortion says which half of the shift a half-day covered.
type HalfDayPortion string

const (
	FirstHalf  HalfDayPortion = "first_half"
	SecondHalf HalfDayPortion = "second_half"
)

// Record is one user's attendance for one office-calendar day.
// At most one record exists per (UserID, Date).
type Record struct {
	ID     string
	UserID string
	// Date is office midnight of the civil day the record belongs to.
	Date time.Time

	// ClockIn is the start of the currently open work session. Nil when no
	// session is open; closing a session always clears it.
	ClockIn *time.Time
	// ClockOut is when the most recent session ended (actual or auto-closed).
	ClockOut *time.Time
	// FirstClockIn is the first clock-in of the day and survives reopen
	// cycles; lateness is always judged against it.
	FirstClockIn *time.Time

	// AccumulatedSeconds is break-adjusted work time summed over all closed
	// sessions of the day.
	AccumulatedSeconds int

	Status         Status
	HalfDayPortion *HalfDayPortion
	IsLate         bool

	// OvertimeSeconds as computed at close, or the override value when
	// OvertimeOverridden is set.
	OvertimeSeconds    int
	OvertimeOverridden bool

	// ManualOverride marks records whose status was set by an admin; the
	// classifier and sweeper leave them alone.
	ManualOverride bool
	OverrideAuthor *string
	OverrideReason *string
	// NonWorkingReason is set on holiday/leave records ("holiday", "leave").
	NonWorkingReason *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// SessionState is the tagged view of a record's session lifecycle.
// Exactly one of Open, Closed, NonWorking describes any record.
type SessionState interface {
	sessionState()
}

// Open means a work session is running since ClockIn.
type Open struct {
	ClockIn time.Time
}

// Closed means the day's sessions are over (possibly reopenable until the
// daily cap) with Seconds accumulated so far.
type Closed struct {
	ClockOut time.Time
	Seconds  int
}

// NonWorking means no session can exist for this day (holiday or leave).
type NonWorking struct {
	Reason string
}

func (Open) sessionState()       {}
func (Closed) sessionState()     {}
func (NonWorking) sessionState() {}

// Session derives the tagged session state from the stored fields.
// NonWorking is reserved for holiday/leave days; anything else without an
// open session is Closed and may be reopened, even when an admin override
// left it with no clock times at all.
func (r Record) Session() SessionState {
	if r.ClockIn != nil {
		return Open{ClockIn: *r.ClockIn}
	}
	if r.Status == StatusHoliday || r.Status == StatusLeave || r.NonWorkingReason != nil {
		reason := ""
		if r.NonWorkingReason != nil {
			reason = *r.NonWorkingReason
		}
		return NonWorking{Reason: reason}
	}
	var clockOut time.Time
	if r.ClockOut != nil {
		clockOut = *r.ClockOut
	}
	return Closed{ClockOut: clockOut, Seconds: r.AccumulatedSeconds}
}

// HasOpenSession reports whether a work session is currently running.
func (r Record) HasOpenSession() bool {
	_, ok := r.Session().(Open)
	return ok
}
