package tasklog

import "time"

// Log is one timed stretch of work on a named task. EndTime is nil while the
// timer runs; clocking out or an attendance auto-close stops it.
type Log struct {
	ID        string
	UserID    string
	TaskName  string
	StartTime time.Time
	EndTime   *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Seconds is the log's length, counting a running log up to now.
func (l Log) Seconds(now time.Time) int {
	end := now
	if l.EndTime != nil {
		end = *l.EndTime
	}
	if !end.After(l.StartTime) {
		return 0
	}
	return int(end.Sub(l.StartTime).Seconds())
}
