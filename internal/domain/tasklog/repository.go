package tasklog

import (
	"context"
	"time"
)

// LogRepository defines data access methods for task time logs.
type LogRepository interface {
	Create(ctx context.Context, log Log) (Log, error)
	Update(ctx context.Context, log Log) error
	GetRunningByUser(ctx context.Context, userID string) (*Log, error)
	ListByUserAndDay(ctx context.Context, userID string, dayStart, dayEnd time.Time) ([]Log, error)
	// CloseOpenByUser stamps end_time on every running log of the user.
	CloseOpenByUser(ctx context.Context, userID string, at time.Time) error
	// SumSecondsByUserAndDay totals log time in [dayStart, dayEnd); running
	// logs count up to now.
	SumSecondsByUserAndDay(ctx context.Context, userID string, dayStart, dayEnd, now time.Time) (int, error)
}
