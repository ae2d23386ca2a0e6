package tasklog

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-chi/jwtauth/v5"

	"github.com/workpulse-hq/workforce-backend-go/internal/domain/attendance"
	"github.com/workpulse-hq/workforce-backend-go/internal/domain/tasklog"
	"github.com/workpulse-hq/workforce-backend-go/internal/pkg/workday"
)

// SessionChecker reports whether a user has an open work session on a date.
// Task timers only run inside an open session.
type SessionChecker interface {
	GetByUserAndDate(ctx context.Context, userID string, date time.Time) (*attendance.Record, error)
}

type ServiceImpl struct {
	repo     tasklog.LogRepository
	sessions SessionChecker
	rules    workday.Config
	logger   *slog.Logger

	now func() time.Time
}

func NewService(
	repo tasklog.LogRepository,
	sessions SessionChecker,
	rules workday.Config,
	logger *slog.Logger,
) *ServiceImpl {
	return &ServiceImpl{
		repo:     repo,
		sessions: sessions,
		rules:    rules,
		logger:   logger,
		now:      time.Now,
	}
}

func userIDFromContext(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", fmt.Errorf("user_id claim is missing or invalid")
	}
	return userID, nil
}

// Start implements tasklog.LogService.
func (s *ServiceImpl) Start(ctx context.Context, req tasklog.StartRequest) (tasklog.LogResponse, error) {
	if err := req.Validate(); err != nil {
		return tasklog.LogResponse{}, err
	}

	userID, err := userIDFromContext(ctx)
	if err != nil {
		return tasklog.LogResponse{}, err
	}

	now := s.now().In(s.rules.Location)

	record, err := s.sessions.GetByUserAndDate(ctx, userID, s.rules.DateOf(now))
	if err != nil {
		return tasklog.LogResponse{}, err
	}
	if record == nil || !record.HasOpenSession() {
		return tasklog.LogResponse{}, tasklog.ErrNoOpenSession
	}

	running, err := s.repo.GetRunningByUser(ctx, userID)
	if err != nil {
		return tasklog.LogResponse{}, err
	}
	if running != nil {
		return tasklog.LogResponse{}, tasklog.ErrTimerRunning
	}

	created, err := s.repo.Create(ctx, tasklog.Log{
		UserID:    userID,
		TaskName:  req.TaskName,
		StartTime: now,
	})
	if err != nil {
		return tasklog.LogResponse{}, err
	}

	s.logger.Info("task timer started",
		slog.String("user_id", userID),
		slog.String("task_name", req.TaskName),
	)

	return s.toResponse(created, now), nil
}

// Stop implements tasklog.LogService.
func (s *ServiceImpl) Stop(ctx context.Context) (tasklog.LogResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return tasklog.LogResponse{}, err
	}

	running, err := s.repo.GetRunningByUser(ctx, userID)
	if err != nil {
		return tasklog.LogResponse{}, err
	}
	if running == nil {
		return tasklog.LogResponse{}, tasklog.ErrNoRunningTimer
	}

	now := s.now().In(s.rules.Location)
	end := now
	if end.Before(running.StartTime) {
		end = running.StartTime
	}
	running.EndTime = &end

	if err := s.repo.Update(ctx, *running); err != nil {
		return tasklog.LogResponse{}, err
	}

	s.logger.Info("task timer stopped",
		slog.String("user_id", userID),
		slog.String("task_name", running.TaskName),
		slog.Int("seconds", running.Seconds(now)),
	)

	return s.toResponse(*running, now), nil
}

// ListToday implements tasklog.LogService.
func (s *ServiceImpl) ListToday(ctx context.Context) ([]tasklog.LogResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now().In(s.rules.Location)
	dayStart := s.rules.DateOf(now)
	dayEnd := dayStart.AddDate(0, 0, 1)

	logs, err := s.repo.ListByUserAndDay(ctx, userID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	responses := make([]tasklog.LogResponse, 0, len(logs))
	for _, l := range logs {
		responses = append(responses, s.toResponse(l, now))
	}
	return responses, nil
}

func (s *ServiceImpl) toResponse(l tasklog.Log, now time.Time) tasklog.LogResponse {
	return tasklog.LogResponse{
		ID:        l.ID,
		UserID:    l.UserID,
		TaskName:  l.TaskName,
		StartTime: l.StartTime,
		EndTime:   l.EndTime,
		Seconds:   l.Seconds(now),
	}
}

// TimerCloser adapts the task log repository to the attendance engine's
// TaskTimerCloser port.
type TimerCloser struct {
	repo tasklog.LogRepository
}

func NewTimerCloser(repo tasklog.LogRepository) *TimerCloser {
	return &TimerCloser{repo: repo}
}

// CloseOpenLogs implements attendance.TaskTimerCloser.
func (t *TimerCloser) CloseOpenLogs(ctx context.Context, userID string, at time.Time) error {
	return t.repo.CloseOpenByUser(ctx, userID, at)
}

// TaskSeconds implements attendance.TaskTimerCloser.
func (t *TimerCloser) TaskSeconds(ctx context.Context, userID string, date time.Time, now time.Time) (int, error) {
	return t.repo.SumSecondsByUserAndDay(ctx, userID, date, date.AddDate(0, 0, 1), now)
}
