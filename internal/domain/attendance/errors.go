package attendance

import "errors"

// Attendance domain errors
var (
	// Clock-in errors
	ErrAlreadyClockedIn     = errors.New("you already have an open work session")
	ErrShiftComplete        = errors.New("daily work limit reached, cannot clock in again today")
	ErrBreakTimeActive      = errors.New("cannot clock in during the break window")
	ErrHolidayBlocked       = errors.New("cannot clock in on a holiday")
	ErrLeaveBlocked         = errors.New("cannot clock in while on approved leave")
	ErrLeavePendingApproval = errors.New("cannot clock in while a leave request is pending approval")

	// Clock-out errors
	ErrNotClockedIn = errors.New("no open work session to clock out of")

	// General errors
	ErrRecordNotFound = errors.New("attendance record not found")
	ErrUnauthorized   = errors.New("unauthorized to access this attendance record")
)
