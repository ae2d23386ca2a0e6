package attendance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-chi/jwtauth/v5"

	"github.com/workpulse-hq/workforce-backend-go/internal/domain/attendance"
	"github.com/workpulse-hq/workforce-backend-go/internal/pkg/workday"
)

const (
	lockReasonHoliday       = "holiday"
	lockReasonLeave         = "leave"
	lockReasonShiftComplete = "shift_complete"
	lockReasonBreakTime     = "break_time"
)

type ServiceImpl struct {
	tx attendance.TxRunner
	attendance.Repository
	holidays   attendance.HolidayCalendar
	leaves     attendance.LeaveCalendar
	tasks      attendance.TaskTimerCloser
	users      attendance.UserDirectory
	notifier   attendance.Notifier
	classifier *Classifier
	rules      workday.Config
	logger     *slog.Logger

	// now is swappable in tests.
	now func() time.Time
}

func NewService(
	tx attendance.TxRunner,
	repo attendance.Repository,
	holidays attendance.HolidayCalendar,
	leaves attendance.LeaveCalendar,
	tasks attendance.TaskTimerCloser,
	users attendance.UserDirectory,
	notifier attendance.Notifier,
	rules workday.Config,
	logger *slog.Logger,
) *ServiceImpl {
	return &ServiceImpl{
		tx:         tx,
		Repository: repo,
		holidays:   holidays,
		leaves:     leaves,
		tasks:      tasks,
		users:      users,
		notifier:   notifier,
		classifier: NewClassifier(rules),
		rules:      rules,
		logger:     logger,
		now:        time.Now,
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

// ClockIn implements attendance.Service.
func (s *ServiceImpl) ClockIn(ctx context.Context) (attendance.RecordResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	now := s.now().In(s.rules.Location)
	date := s.rules.DateOf(now)

	if _, err := s.Sweep(ctx, userID, now); err != nil {
		return attendance.RecordResponse{}, err
	}

	if s.rules.InBreak(now) {
		return attendance.RecordResponse{}, attendance.ErrBreakTimeActive
	}

	blocked, err := s.blockNonWorkingDay(ctx, userID, date)
	if err != nil {
		return attendance.RecordResponse{}, err
	}
	if blocked != nil {
		return attendance.RecordResponse{}, blocked
	}

	var record attendance.Record
	err = s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		existing, err := s.Repository.GetByUserAndDateForUpdate(txCtx, userID, date)
		if err != nil {
			return fmt.Errorf("failed to load attendance record: %w", err)
		}

		if existing == nil {
			record, err = s.Repository.Create(txCtx, s.newOpenRecord(userID, date, now))
			if err != nil {
				return fmt.Errorf("failed to create attendance record: %w", err)
			}
			return nil
		}

		switch existing.Session().(type) {
		case attendance.Open:
			return attendance.ErrAlreadyClockedIn
		case attendance.NonWorking:
			if existing.Status == attendance.StatusLeave {
				return attendance.ErrLeaveBlocked
			}
			return attendance.ErrHolidayBlocked
		}

		if time.Duration(existing.AccumulatedSeconds)*time.Second >= s.rules.DailyCap {
			return attendance.ErrShiftComplete
		}

		s.reopen(existing, now)
		if err := s.Repository.Update(txCtx, *existing); err != nil {
			return fmt.Errorf("failed to reopen attendance record: %w", err)
		}
		record = *existing
		return nil
	})
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	s.notifier.AttendanceChanged(userID)
	return s.mapRecord(record), nil
}

// newOpenRecord builds the day's first record for a fresh clock-in.
func (s *ServiceImpl) newOpenRecord(userID string, date, now time.Time) attendance.Record {
	return attendance.Record{
		UserID:       userID,
		Date:         date,
		ClockIn:      &now,
		FirstClockIn: &now,
		Status:       attendance.StatusInProgress,
		IsLate:       s.rules.TimeOfDay(now) > s.rules.LateThreshold,
	}
}

// reopen resumes a closed day. Any manual override is discarded: the user is
// generating fresh clock data that the classifier must own again.
func (s *ServiceImpl) reopen(record *attendance.Record, now time.Time) {
	record.ClockIn = &now
	record.ClockOut = nil
	if record.FirstClockIn == nil {
		record.FirstClockIn = &now
		record.IsLate = s.rules.TimeOfDay(now) > s.rules.LateThreshold
	}
	record.Status = attendance.StatusInProgress
	record.HalfDayPortion = nil
	record.ManualOverride = false
	record.OvertimeOverridden = false
	record.OverrideAuthor = nil
	record.OverrideReason = nil
	record.NonWorkingReason = nil
}

// blockNonWorkingDay checks the holiday and leave calendars for the date.
// A holiday or approved leave synthesizes a non-working record (never
// clobbering one that already exists) and yields the matching domain error.
func (s *ServiceImpl) blockNonWorkingDay(ctx context.Context, userID string, date time.Time) (error, error) {
	isHoliday, _, err := s.holidays.IsHoliday(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("failed to check holiday calendar: %w", err)
	}
	if isHoliday {
		if err := s.synthesizeNonWorking(ctx, userID, date, attendance.StatusHoliday); err != nil {
			return nil, err
		}
		return attendance.ErrHolidayBlocked, nil
	}

	leaveState, err := s.leaves.LeaveStatus(ctx, userID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to check leave calendar: %w", err)
	}
	switch leaveState {
	case attendance.LeaveApproved:
		if err := s.synthesizeNonWorking(ctx, userID, date, attendance.StatusLeave); err != nil {
			return nil, err
		}
		return attendance.ErrLeaveBlocked, nil
	case attendance.LeavePending:
		return attendance.ErrLeavePendingApproval, nil
	}
	return nil, nil
}

func (s *ServiceImpl) synthesizeNonWorking(ctx context.Context, userID string, date time.Time, status attendance.Status) error {
	created := false
	err := s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		existing, err := s.Repository.GetByUserAndDateForUpdate(txCtx, userID, date)
		if err != nil {
			return fmt.Errorf("failed to load attendance record: %w", err)
		}
		if existing != nil {
			return nil
		}
		reason := lockReasonHoliday
		if status == attendance.StatusLeave {
			reason = lockReasonLeave
		}
		_, err = s.Repository.Create(txCtx, attendance.Record{
			UserID:           userID,
			Date:             date,
			Status:           status,
			NonWorkingReason: &reason,
		})
		if err != nil {
			return fmt.Errorf("failed to create %s record: %w", status, err)
		}
		created = true
		return nil
	})
	if err != nil {
		return err
	}
	if created {
		s.notifier.AttendanceChanged(userID)
	}
	return nil
}

// ClockOut implements attendance.Service.
func (s *ServiceImpl) ClockOut(ctx context.Context) (attendance.RecordResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	now := s.now().In(s.rules.Location)
	date := s.rules.DateOf(now)

	if _, err := s.Sweep(ctx, userID, now); err != nil {
		return attendance.RecordResponse{}, err
	}

	var record attendance.Record
	err = s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		existing, err := s.Repository.GetByUserAndDateForUpdate(txCtx, userID, date)
		if err != nil {
			return fmt.Errorf("failed to load attendance record: %w", err)
		}
		if existing == nil || !existing.HasOpenSession() {
			return attendance.ErrNotClockedIn
		}

		if err := s.closeSession(txCtx, existing, minTime(now, s.rules.ShiftEndOn(date)), now); err != nil {
			return err
		}
		record = *existing
		return nil
	})
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	s.notifier.AttendanceChanged(userID)
	return s.mapRecord(record), nil
}

// closeSession performs the closing transition: accumulate the interval,
// clear the open clock-in, reclassify, recompute overtime against
// referenceEnd, and stop the user's running task timers at closeAt.
// Caller must run it inside a transaction and notify after commit.
func (s *ServiceImpl) closeSession(txCtx context.Context, record *attendance.Record, closeAt, referenceEnd time.Time) error {
	clockIn := *record.ClockIn
	if closeAt.Before(clockIn) {
		closeAt = clockIn
	}

	record.AccumulatedSeconds += s.rules.WorkedSeconds(clockIn, closeAt)
	record.ClockOut = &closeAt
	record.ClockIn = nil

	if !record.ManualOverride {
		effectiveIn := s.classifier.EffectiveClockIn(*record)
		status, portion := s.classifier.Classify(effectiveIn, &referenceEnd, record.AccumulatedSeconds)
		record.Status = status
		record.HalfDayPortion = portion
		record.OvertimeSeconds = s.classifier.Overtime(*record, record.AccumulatedSeconds, referenceEnd)
	}

	if err := s.tasks.CloseOpenLogs(txCtx, record.UserID, closeAt); err != nil {
		return fmt.Errorf("failed to close open task logs: %w", err)
	}
	if err := s.Repository.Update(txCtx, *record); err != nil {
		return fmt.Errorf("failed to close attendance record: %w", err)
	}
	return nil
}

// Sweep implements attendance.Service. It auto-closes every open record of
// the user that has crossed a closing boundary:
//
//   - a record from a previous office day closes at that day's shift end
//   - an open session observed during the break window closes at break start
//   - an open session observed past shift end closes at shift end
//
// Only open records are loaded, under row locks, so concurrent sweeps for
// the same user serialize and the second one finds nothing to close.
func (s *ServiceImpl) Sweep(ctx context.Context, userID string, now time.Time) (int, error) {
	now = now.In(s.rules.Location)
	today := s.rules.DateOf(now)

	closed := 0
	err := s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		open, err := s.Repository.ListOpenByUserForUpdate(txCtx, userID)
		if err != nil {
			return fmt.Errorf("failed to list open attendance records: %w", err)
		}

		for i := range open {
			record := &open[i]
			recordDate := s.rules.DateOf(record.Date)

			var closeAt, referenceEnd time.Time
			switch {
			case recordDate.Before(today):
				closeAt = s.rules.ShiftEndOn(recordDate)
				referenceEnd = closeAt
			case s.rules.InBreak(now) && record.ClockIn.Before(s.rules.BreakStartOn(today)):
				closeAt = s.rules.BreakStartOn(today)
				referenceEnd = now
			// Strictly after shift-end: a clock-out landing exactly on the
			// boundary must still find its session open.
			case now.After(s.rules.ShiftEndOn(today)) && record.ClockIn.Before(s.rules.ShiftEndOn(today)):
				closeAt = s.rules.ShiftEndOn(today)
				referenceEnd = now
			default:
				continue
			}

			if err := s.closeSession(txCtx, record, closeAt, referenceEnd); err != nil {
				return err
			}
			closed++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	if closed > 0 {
		s.logger.Info("auto-closed stale attendance sessions",
			slog.String("user_id", userID), slog.Int("closed", closed))
		s.notifier.AttendanceChanged(userID)
	}
	return closed, nil
}

// GetActive implements attendance.Service.
func (s *ServiceImpl) GetActive(ctx context.Context) (attendance.ActiveResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return attendance.ActiveResponse{}, err
	}

	now := s.now().In(s.rules.Location)
	date := s.rules.DateOf(now)

	if _, err := s.Sweep(ctx, userID, now); err != nil {
		return attendance.ActiveResponse{}, err
	}

	record, err := s.Repository.GetByUserAndDate(ctx, userID, date)
	if err != nil {
		return attendance.ActiveResponse{}, fmt.Errorf("failed to load attendance record: %w", err)
	}

	resp := attendance.ActiveResponse{
		Date:       date.Format("2006-01-02"),
		Status:     attendance.StatusAbsent,
		CanClockIn: true,
	}

	if record != nil {
		resp.Status = record.Status
		resp.IsLate = record.IsLate
		resp.ClockIn = record.ClockIn
		resp.ClockOut = record.ClockOut
		resp.HalfDayPortion = (*string)(record.HalfDayPortion)
		resp.WorkedSeconds = s.liveWorkedSeconds(*record, now)
		if capSeconds := int(s.rules.DailyCap.Seconds()); resp.WorkedSeconds > capSeconds {
			resp.WorkedSeconds = capSeconds
		}
		if record.HasOpenSession() {
			resp.SessionOpen = true
			resp.CanClockIn = false
		}
	}

	reason, err := s.lockReason(ctx, userID, record, date, now)
	if err != nil {
		return attendance.ActiveResponse{}, err
	}
	if reason != nil {
		resp.CanClockIn = false
		resp.LockReason = reason
	}

	return resp, nil
}

// lockReason explains why the clock-in button should be disabled, if it
// should. An open session is not a lock; it just flips the button to
// clock-out.
func (s *ServiceImpl) lockReason(ctx context.Context, userID string, record *attendance.Record, date, now time.Time) (*string, error) {
	if record != nil {
		switch record.Status {
		case attendance.StatusHoliday:
			return ptr(lockReasonHoliday), nil
		case attendance.StatusLeave:
			return ptr(lockReasonLeave), nil
		}
		if !record.HasOpenSession() &&
			time.Duration(record.AccumulatedSeconds)*time.Second >= s.rules.DailyCap {
			return ptr(lockReasonShiftComplete), nil
		}
	} else {
		isHoliday, _, err := s.holidays.IsHoliday(ctx, date)
		if err != nil {
			return nil, fmt.Errorf("failed to check holiday calendar: %w", err)
		}
		if isHoliday {
			return ptr(lockReasonHoliday), nil
		}
		leaveState, err := s.leaves.LeaveStatus(ctx, userID, date)
		if err != nil {
			return nil, fmt.Errorf("failed to check leave calendar: %w", err)
		}
		if leaveState == attendance.LeaveApproved {
			return ptr(lockReasonLeave), nil
		}
	}
	if s.rules.InBreak(now) {
		return ptr(lockReasonBreakTime), nil
	}
	return nil, nil
}

// liveWorkedSeconds is the accumulated total plus the running interval of an
// open session, break-adjusted.
func (s *ServiceImpl) liveWorkedSeconds(record attendance.Record, now time.Time) int {
	total := record.AccumulatedSeconds
	if record.ClockIn != nil {
		total += s.rules.WorkedSeconds(*record.ClockIn, now)
	}
	return total
}

// GetSummary implements attendance.Service.
func (s *ServiceImpl) GetSummary(ctx context.Context) (attendance.SummaryResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return attendance.SummaryResponse{}, err
	}

	now := s.now().In(s.rules.Location)
	date := s.rules.DateOf(now)

	if _, err := s.Sweep(ctx, userID, now); err != nil {
		return attendance.SummaryResponse{}, err
	}

	record, err := s.Repository.GetByUserAndDate(ctx, userID, date)
	if err != nil {
		return attendance.SummaryResponse{}, fmt.Errorf("failed to load attendance record: %w", err)
	}

	taskSeconds, err := s.tasks.TaskSeconds(ctx, userID, date, now)
	if err != nil {
		return attendance.SummaryResponse{}, fmt.Errorf("failed to sum task time: %w", err)
	}

	resp := attendance.SummaryResponse{
		Date:        date.Format("2006-01-02"),
		TaskSeconds: taskSeconds,
	}
	if record != nil {
		resp.AttendanceSeconds = s.liveWorkedSeconds(*record, now)
		resp.OvertimeSeconds = record.OvertimeSeconds
		if record.HasOpenSession() && !record.OvertimeOverridden {
			resp.OvertimeSeconds = s.classifier.Overtime(*record, resp.AttendanceSeconds, now)
		}
	}
	if idle := resp.AttendanceSeconds - resp.TaskSeconds; idle > 0 {
		resp.IdleSeconds = idle
	}
	return resp, nil
}

// GetHistory implements attendance.Service.
func (s *ServiceImpl) GetHistory(ctx context.Context, year int, month time.Month) (attendance.HistoryResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return attendance.HistoryResponse{}, err
	}

	now := s.now().In(s.rules.Location)
	if _, err := s.Sweep(ctx, userID, now); err != nil {
		return attendance.HistoryResponse{}, err
	}

	records, err := s.Repository.ListByUserMonth(ctx, userID, year, month)
	if err != nil {
		return attendance.HistoryResponse{}, fmt.Errorf("failed to list attendance records: %w", err)
	}

	resp := attendance.HistoryResponse{
		Year:    year,
		Month:   int(month),
		Records: make([]attendance.RecordResponse, 0, len(records)),
	}

	byDay := make(map[string]struct{}, len(records))
	for _, record := range records {
		resp.Records = append(resp.Records, s.mapRecord(record))
		byDay[s.rules.DateOf(record.Date).Format("2006-01-02")] = struct{}{}
	}

	// Overlay holidays on days without a stored record so the calendar view
	// is complete; these are not persisted.
	first := time.Date(year, month, 1, 0, 0, 0, 0, s.rules.Location)
	for day := first; day.Month() == month && !day.After(now); day = day.AddDate(0, 0, 1) {
		key := day.Format("2006-01-02")
		if _, exists := byDay[key]; exists {
			continue
		}
		isHoliday, _, err := s.holidays.IsHoliday(ctx, day)
		if err != nil {
			return attendance.HistoryResponse{}, fmt.Errorf("failed to check holiday calendar: %w", err)
		}
		if isHoliday {
			resp.Records = append(resp.Records, attendance.RecordResponse{
				UserID: userID,
				Date:   key,
				Status: attendance.StatusHoliday,
			})
		}
	}

	return resp, nil
}

// OverrideStatus implements attendance.Service. The override bypasses the
// classifier entirely and pins the record until the user clocks in again.
func (s *ServiceImpl) OverrideStatus(ctx context.Context, req attendance.OverrideStatusRequest) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	adminID, err := userIDFromContext(ctx)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	parsed, err := time.ParseInLocation("2006-01-02", req.Date, s.rules.Location)
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to parse date: %w", err)
	}
	date := s.rules.DateOf(parsed)

	var record attendance.Record
	err = s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		existing, err := s.Repository.GetByUserAndDateForUpdate(txCtx, req.UserID, date)
		if err != nil {
			return fmt.Errorf("failed to load attendance record: %w", err)
		}
		if existing == nil {
			created, err := s.Repository.Create(txCtx, attendance.Record{UserID: req.UserID, Date: date})
			if err != nil {
				return fmt.Errorf("failed to create attendance record: %w", err)
			}
			existing = &created
		}

		existing.Status = req.Status
		existing.HalfDayPortion = (*attendance.HalfDayPortion)(req.HalfDayPortion)
		existing.ManualOverride = true
		existing.OverrideAuthor = &adminID
		existing.OverrideReason = req.Reason
		if req.OvertimeSeconds != nil {
			existing.OvertimeSeconds = *req.OvertimeSeconds
			existing.OvertimeOverridden = true
		}

		if err := s.Repository.Update(txCtx, *existing); err != nil {
			return fmt.Errorf("failed to override attendance record: %w", err)
		}
		record = *existing
		return nil
	})
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	s.notifier.AttendanceChanged(req.UserID)
	return s.mapRecord(record), nil
}

// MonthlyMatrix implements attendance.Service.
func (s *ServiceImpl) MonthlyMatrix(ctx context.Context, year int, month time.Month) (attendance.MonthlyMatrixResponse, error) {
	users, err := s.users.ListActive(ctx)
	if err != nil {
		return attendance.MonthlyMatrixResponse{}, fmt.Errorf("failed to list users: %w", err)
	}

	records, err := s.Repository.ListByMonth(ctx, year, month)
	if err != nil {
		return attendance.MonthlyMatrixResponse{}, fmt.Errorf("failed to list attendance records: %w", err)
	}

	byUser := make(map[string][]attendance.Record, len(users))
	for _, record := range records {
		byUser[record.UserID] = append(byUser[record.UserID], record)
	}

	resp := attendance.MonthlyMatrixResponse{
		Year:  year,
		Month: int(month),
		Users: make([]attendance.MatrixRow, 0, len(users)),
	}
	for _, user := range users {
		row := attendance.MatrixRow{
			UserID: user.ID,
			Name:   user.Name,
			Days:   make([]attendance.MatrixCell, 0, len(byUser[user.ID])),
		}
		for _, record := range byUser[user.ID] {
			cell := attendance.MatrixCell{
				Day:    s.rules.DateOf(record.Date).Day(),
				Status: record.Status,
				Value:  presenceValue(record.Status),
			}
			row.Days = append(row.Days, cell)
			row.Total += cell.Value
		}
		resp.Users = append(resp.Users, row)
	}
	return resp, nil
}

func presenceValue(status attendance.Status) float64 {
	switch status {
	case attendance.StatusPresent, attendance.StatusLate:
		return 1
	case attendance.StatusHalfDay:
		return 0.5
	}
	return 0
}

// MarkHolidayForAll implements attendance.Service. Existing records are
// never overwritten: a user with real clock data keeps it.
func (s *ServiceImpl) MarkHolidayForAll(ctx context.Context, date time.Time, userIDs []string) (int, error) {
	date = s.rules.DateOf(date.In(s.rules.Location))

	if len(userIDs) == 0 {
		users, err := s.users.ListActive(ctx)
		if err != nil {
			return 0, fmt.Errorf("failed to list users: %w", err)
		}
		for _, user := range users {
			userIDs = append(userIDs, user.ID)
		}
	}

	marked := 0
	for _, userID := range userIDs {
		exists, err := s.Repository.ExistsForUserAndDate(ctx, userID, date)
		if err != nil {
			return marked, fmt.Errorf("failed to check attendance record: %w", err)
		}
		if exists {
			continue
		}
		if err := s.synthesizeNonWorking(ctx, userID, date, attendance.StatusHoliday); err != nil {
			return marked, err
		}
		marked++
	}
	return marked, nil
}

// UnmarkHolidayForAll implements attendance.Service. Only synthesized
// records go; anything with clock data or an admin override stays.
func (s *ServiceImpl) UnmarkHolidayForAll(ctx context.Context, date time.Time) (int, error) {
	date = s.rules.DateOf(date.In(s.rules.Location))

	userIDs, err := s.Repository.DeleteSyntheticHoliday(ctx, date)
	if err != nil {
		return 0, fmt.Errorf("failed to delete holiday records: %w", err)
	}

	for _, userID := range userIDs {
		s.notifier.AttendanceChanged(userID)
	}
	return len(userIDs), nil
}

func (s *ServiceImpl) mapRecord(record attendance.Record) attendance.RecordResponse {
	return attendance.RecordResponse{
		ID:                 record.ID,
		UserID:             record.UserID,
		Date:               s.rules.DateOf(record.Date).Format("2006-01-02"),
		ClockIn:            record.ClockIn,
		ClockOut:           record.ClockOut,
		FirstClockIn:       record.FirstClockIn,
		AccumulatedSeconds: record.AccumulatedSeconds,
		Status:             record.Status,
		HalfDayPortion:     (*string)(record.HalfDayPortion),
		IsRunning:          record.HasOpenSession(),
		IsLate:             record.IsLate,
		OvertimeSeconds:    record.OvertimeSeconds,
		ManualOverride:     record.ManualOverride,
		OverrideReason:     record.OverrideReason,
		NonWorkingReason:   record.NonWorkingReason,
	}
}

func minTime(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}

func ptr(s string) *string {
	return &s
}
