package attendance

import (
	"context"
	"time"
)

// Service defines business logic for attendance operations. Every operation
// that reads or mutates a user's attendance first reconciles that user's
// stale open sessions.
type Service interface {
	// ClockIn opens a work session for the authenticated user, creating or
	// reopening today's record.
	ClockIn(ctx context.Context) (RecordResponse, error)

	// ClockOut closes the open work session, classifies the day and computes
	// overtime.
	ClockOut(ctx context.Context) (RecordResponse, error)

	// GetActive returns the live view of today's session for the
	// authenticated user.
	GetActive(ctx context.Context) (ActiveResponse, error)

	// GetSummary returns today's attendance/task/idle/overtime seconds.
	GetSummary(ctx context.Context) (SummaryResponse, error)

	// GetHistory returns the authenticated user's records for one month,
	// with holidays overlaid on empty days.
	GetHistory(ctx context.Context, year int, month time.Month) (HistoryResponse, error)

	// Sweep auto-closes any of the user's open sessions that have crossed a
	// closing boundary. Idempotent; safe to call on every request.
	Sweep(ctx context.Context, userID string, now time.Time) (int, error)

	// OverrideStatus sets a record's status by admin fiat, bypassing the
	// classifier, and optionally pins overtime.
	OverrideStatus(ctx context.Context, req OverrideStatusRequest) (RecordResponse, error)

	// MonthlyMatrix returns the admin per-user presence matrix for a month.
	MonthlyMatrix(ctx context.Context, year int, month time.Month) (MonthlyMatrixResponse, error)

	// MarkHolidayForAll writes holiday records for every user without real
	// clock data on the given date.
	MarkHolidayForAll(ctx context.Context, date time.Time, userIDs []string) (int, error)

	// UnmarkHolidayForAll removes the date's synthesized holiday records;
	// records with real clock data or an admin override stay.
	UnmarkHolidayForAll(ctx context.Context, date time.Time) (int, error)
}
