package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/workpulse-hq/workforce-backend-go/internal/domain/attendance"
	"github.com/workpulse-hq/workforce-backend-go/internal/pkg/workday"
)

// AttendanceJobs holds the background jobs that keep attendance records
// consistent when nobody is hitting the API. Both jobs reuse the same
// idempotent sweep and absence logic as the request paths, so running
// them more often than needed is harmless.
type AttendanceJobs struct {
	svc      attendance.Service
	repo     attendance.Repository
	users    attendance.UserDirectory
	holidays attendance.HolidayCalendar
	leaves   attendance.LeaveCalendar
	rules    workday.Config
	now      func() time.Time
}

func NewAttendanceJobs(
	svc attendance.Service,
	repo attendance.Repository,
	users attendance.UserDirectory,
	holidays attendance.HolidayCalendar,
	leaves attendance.LeaveCalendar,
	rules workday.Config,
) *AttendanceJobs {
	return &AttendanceJobs{
		svc:      svc,
		repo:     repo,
		users:    users,
		holidays: holidays,
		leaves:   leaves,
		rules:    rules,
		now:      time.Now,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("reconcile_open_sessions", 1*time.Hour, j.ReconcileOpenSessions)
	scheduler.AddJob("mark_absent_employees", 1*time.Hour, j.MarkAbsentEmployees)
}

// ReconcileOpenSessions sweeps every user with an open session so stale
// sessions are closed even for users who never come back to the app.
func (j *AttendanceJobs) ReconcileOpenSessions(ctx context.Context) error {
	userIDs, err := j.repo.ListUserIDsWithOpenSessions(ctx)
	if err != nil {
		return fmt.Errorf("failed to list users with open sessions: %w", err)
	}

	if len(userIDs) == 0 {
		return nil
	}

	now := j.now()
	closedTotal := 0
	for _, userID := range userIDs {
		closed, err := j.svc.Sweep(ctx, userID, now)
		if err != nil {
			slog.Error("Cron: Failed to sweep open sessions", "user_id", userID, "error", err)
			continue
		}
		closedTotal += closed
	}

	if closedTotal > 0 {
		slog.Info("Cron: Reconciled open sessions", "users", len(userIDs), "closed", closedTotal)
	}
	return nil
}

// MarkAbsentEmployees backfills an absent record for yesterday for every
// active user who has no record at all for that day. Holidays and approved
// leave produce non-working records instead.
func (j *AttendanceJobs) MarkAbsentEmployees(ctx context.Context) error {
	now := j.now().In(j.rules.Location)

	// Only run in the first hour after midnight, office time
	if now.Hour() != 0 {
		return nil
	}

	yesterday := j.rules.DateOf(now.AddDate(0, 0, -1))

	users, err := j.users.ListActive(ctx)
	if err != nil {
		return fmt.Errorf("failed to list active users: %w", err)
	}

	marked := 0
	for _, u := range users {
		exists, err := j.repo.ExistsForUserAndDate(ctx, u.ID, yesterday)
		if err != nil {
			slog.Error("Cron: Failed to check attendance record", "user_id", u.ID, "error", err)
			continue
		}
		if exists {
			continue
		}

		record, err := j.buildBackfillRecord(ctx, u.ID, yesterday)
		if err != nil {
			slog.Error("Cron: Failed to resolve calendars", "user_id", u.ID, "error", err)
			continue
		}

		if _, err := j.repo.Create(ctx, record); err != nil {
			slog.Error("Cron: Failed to create absence record", "user_id", u.ID, "error", err)
			continue
		}
		marked++
	}

	if marked > 0 {
		slog.Info("Cron: Marked absent employees", "date", yesterday.Format("2006-01-02"), "count", marked)
	}
	return nil
}

func (j *AttendanceJobs) buildBackfillRecord(ctx context.Context, userID string, date time.Time) (attendance.Record, error) {
	record := attendance.Record{
		UserID: userID,
		Date:   date,
		Status: attendance.StatusAbsent,
	}

	isHoliday, name, err := j.holidays.IsHoliday(ctx, date)
	if err != nil {
		return record, err
	}
	if isHoliday {
		record.Status = attendance.StatusHoliday
		record.NonWorkingReason = &name
		return record, nil
	}

	state, err := j.leaves.LeaveStatus(ctx, userID, date)
	if err != nil {
		return record, err
	}
	if state == attendance.LeaveApproved {
		record.Status = attendance.StatusLeave
		reason := "leave"
		record.NonWorkingReason = &reason
	}

	return record, nil
}
