package attendance

import (
	"context"
	"time"
)

// Repository defines data access for attendance records. Dates passed in are
// office-midnight values as produced by workday.Config.DateOf.
type Repository interface {
	// Create inserts a new record and returns it with its generated ID.
	Create(ctx context.Context, record Record) (Record, error)

	// Update persists every mutable field, including nulling ClockIn when a
	// session closes.
	Update(ctx context.Context, record Record) error

	// GetByID retrieves a record by ID.
	GetByID(ctx context.Context, id string) (Record, error)

	// GetByUserAndDate returns the record for (userID, date), or nil when
	// none exists.
	GetByUserAndDate(ctx context.Context, userID string, date time.Time) (*Record, error)

	// GetByUserAndDateForUpdate is GetByUserAndDate with a row lock; it must
	// run inside a transaction.
	GetByUserAndDateForUpdate(ctx context.Context, userID string, date time.Time) (*Record, error)

	// ListOpenByUserForUpdate returns all of a user's records with an open
	// session, row-locked. Must run inside a transaction.
	ListOpenByUserForUpdate(ctx context.Context, userID string) ([]Record, error)

	// ListByUserMonth returns a user's records for one calendar month,
	// ordered by date.
	ListByUserMonth(ctx context.Context, userID string, year int, month time.Month) ([]Record, error)

	// ListByMonth returns every user's records for one calendar month.
	ListByMonth(ctx context.Context, year int, month time.Month) ([]Record, error)

	// ListUserIDsWithOpenSessions returns the distinct users that currently
	// have an open session anywhere.
	ListUserIDsWithOpenSessions(ctx context.Context) ([]string, error)

	// ExistsForUserAndDate reports whether any record exists for the pair.
	ExistsForUserAndDate(ctx context.Context, userID string, date time.Time) (bool, error)

	// DeleteSyntheticHoliday removes the date's holiday records that carry no
	// clock data and no manual override, returning the affected user ids.
	DeleteSyntheticHoliday(ctx context.Context, date time.Time) ([]string, error)
}

// TxRunner runs fn inside a database transaction; repository calls made with
// the ctx it passes to fn share that transaction.
type TxRunner interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// HolidayCalendar answers whether an office date is a configured holiday.
type HolidayCalendar interface {
	IsHoliday(ctx context.Context, date time.Time) (bool, string, error)
}

// LeaveState is a user's leave situation on a given date.
type LeaveState int

const (
	LeaveNone LeaveState = iota
	LeaveApproved
	LeavePending
)

// LeaveCalendar answers a user's leave state on an office date.
type LeaveCalendar interface {
	LeaveStatus(ctx context.Context, userID string, date time.Time) (LeaveState, error)
}

// TaskTimerCloser closes any running task time logs when a work session ends.
type TaskTimerCloser interface {
	CloseOpenLogs(ctx context.Context, userID string, at time.Time) error

	// TaskSeconds sums the user's task time for one office day; open logs
	// count up to now.
	TaskSeconds(ctx context.Context, userID string, date time.Time, now time.Time) (int, error)
}

// DirectoryUser is the slim user view admin aggregations need.
type DirectoryUser struct {
	ID   string
	Name string
}

// UserDirectory lists users for the monthly matrix and holiday marking.
type UserDirectory interface {
	ListActive(ctx context.Context) ([]DirectoryUser, error)
}

// Notifier fans out change notifications after attendance mutations commit.
// Implementations must never return an error into the mutation path.
type Notifier interface {
	AttendanceChanged(userID string)
}
