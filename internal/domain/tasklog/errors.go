package tasklog

import "errors"

var (
	ErrLogNotFound     = errors.New("task log not found")
	ErrTimerRunning    = errors.New("a task timer is already running")
	ErrNoRunningTimer  = errors.New("no running task timer to stop")
	ErrNoOpenSession   = errors.New("no open work session to log tasks against")
	ErrNotSessionOwner = errors.New("unauthorized to access this task log")
)
