package tasklog

import "context"

// LogService defines business logic for task timers.
type LogService interface {
	// Start begins a timer on a task; only one timer may run per user.
	Start(ctx context.Context, req StartRequest) (LogResponse, error)

	// Stop ends the authenticated user's running timer.
	Stop(ctx context.Context) (LogResponse, error)

	// ListToday returns the authenticated user's logs for today.
	ListToday(ctx context.Context) ([]LogResponse, error)
}
