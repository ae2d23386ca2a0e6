package attendance

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/workpulse-hq/workforce-backend-go/internal/domain/attendance"
)

// ===== FAKES =====

type fakeTx struct{}

func (fakeTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeRepo struct {
	mu      sync.Mutex
	seq     int
	records map[string]*attendance.Record // userID|date
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{records: make(map[string]*attendance.Record)}
}

func repoKey(userID string, date time.Time) string {
	return userID + "|" + date.Format("2006-01-02")
}

func (r *fakeRepo) Create(_ context.Context, record attendance.Record) (attendance.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	record.ID = fmt.Sprintf("rec-%d", r.seq)
	stored := record
	r.records[repoKey(record.UserID, record.Date)] = &stored
	return record, nil
}

func (r *fakeRepo) Update(_ context.Context, record attendance.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := record
	r.records[repoKey(record.UserID, record.Date)] = &stored
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id string) (attendance.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, record := range r.records {
		if record.ID == id {
			return *record, nil
		}
	}
	return attendance.Record{}, attendance.ErrRecordNotFound
}

func (r *fakeRepo) GetByUserAndDate(_ context.Context, userID string, date time.Time) (*attendance.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if record, ok := r.records[repoKey(userID, date)]; ok {
		copied := *record
		return &copied, nil
	}
	return nil, nil
}

func (r *fakeRepo) GetByUserAndDateForUpdate(ctx context.Context, userID string, date time.Time) (*attendance.Record, error) {
	return r.GetByUserAndDate(ctx, userID, date)
}

func (r *fakeRepo) ListOpenByUserForUpdate(_ context.Context, userID string) ([]attendance.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var open []attendance.Record
	for _, record := range r.records {
		if record.UserID == userID && record.ClockIn != nil {
			open = append(open, *record)
		}
	}
	return open, nil
}

func (r *fakeRepo) ListByUserMonth(_ context.Context, userID string, year int, month time.Month) ([]attendance.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []attendance.Record
	for _, record := range r.records {
		if record.UserID == userID && record.Date.Year() == year && record.Date.Month() == month {
			out = append(out, *record)
		}
	}
	return out, nil
}

func (r *fakeRepo) ListByMonth(_ context.Context, year int, month time.Month) ([]attendance.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []attendance.Record
	for _, record := range r.records {
		if record.Date.Year() == year && record.Date.Month() == month {
			out = append(out, *record)
		}
	}
	return out, nil
}

func (r *fakeRepo) ListUserIDsWithOpenSessions(_ context.Context) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	seen := make(map[string]struct{})
	var out []string
	for _, record := range r.records {
		if record.ClockIn == nil {
			continue
		}
		if _, ok := seen[record.UserID]; ok {
			continue
		}
		seen[record.UserID] = struct{}{}
		out = append(out, record.UserID)
	}
	return out, nil
}

func (r *fakeRepo) ExistsForUserAndDate(_ context.Context, userID string, date time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.records[repoKey(userID, date)]
	return ok, nil
}

func (r *fakeRepo) DeleteSyntheticHoliday(_ context.Context, date time.Time) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var userIDs []string
	for key, record := range r.records {
		if record.Date.Equal(date) && record.Status == attendance.StatusHoliday &&
			record.FirstClockIn == nil && record.AccumulatedSeconds == 0 && !record.ManualOverride {
			userIDs = append(userIDs, record.UserID)
			delete(r.records, key)
		}
	}
	return userIDs, nil
}

func (r *fakeRepo) get(t *testing.T, userID string, date time.Time) attendance.Record {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	record, ok := r.records[repoKey(userID, date)]
	require.True(t, ok, "expected a record for %s on %s", userID, date.Format("2006-01-02"))
	return *record
}

func (r *fakeRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.records)
}

type fakeHolidays struct {
	dates map[string]string
}

func (h *fakeHolidays) IsHoliday(_ context.Context, date time.Time) (bool, string, error) {
	name, ok := h.dates[date.Format("2006-01-02")]
	return ok, name, nil
}

type fakeLeaves struct {
	states map[string]attendance.LeaveState // userID|date
}

func (l *fakeLeaves) LeaveStatus(_ context.Context, userID string, date time.Time) (attendance.LeaveState, error) {
	return l.states[repoKey(userID, date)], nil
}

type fakeTasks struct {
	mu          sync.Mutex
	closedAt    []time.Time
	taskSeconds int
}

func (f *fakeTasks) CloseOpenLogs(_ context.Context, _ string, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closedAt = append(f.closedAt, at)
	return nil
}

func (f *fakeTasks) TaskSeconds(_ context.Context, _ string, _ time.Time, _ time.Time) (int, error) {
	return f.taskSeconds, nil
}

type fakeUsers struct {
	users []attendance.DirectoryUser
}

func (f *fakeUsers) ListActive(_ context.Context) ([]attendance.DirectoryUser, error) {
	return f.users, nil
}

type fakeNotifier struct {
	mu     sync.Mutex
	counts map[string]int
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{counts: make(map[string]int)}
}

func (n *fakeNotifier) AttendanceChanged(userID string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.counts[userID]++
}

func (n *fakeNotifier) count(userID string) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.counts[userID]
}

// ===== HARNESS =====

type harness struct {
	svc      *ServiceImpl
	repo     *fakeRepo
	holidays *fakeHolidays
	leaves   *fakeLeaves
	tasks    *fakeTasks
	notifier *fakeNotifier
	clock    *time.Time
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		repo:     newFakeRepo(),
		holidays: &fakeHolidays{dates: make(map[string]string)},
		leaves:   &fakeLeaves{states: make(map[string]attendance.LeaveState)},
		tasks:    &fakeTasks{},
		notifier: newFakeNotifier(),
	}
	start := tod(8, 0)
	h.clock = &start
	h.svc = NewService(
		fakeTx{}, h.repo, h.holidays, h.leaves, h.tasks,
		&fakeUsers{}, h.notifier, testRules,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
	h.svc.now = func() time.Time { return *h.clock }
	return h
}

func (h *harness) setClock(hour, min int) {
	*h.clock = tod(hour, min)
}

var testTokenAuth = jwtauth.New("HS256", []byte("test-secret"), nil)

func authedContext(t *testing.T, userID string) context.Context {
	t.Helper()
	token, _, err := testTokenAuth.Encode(map[string]interface{}{"user_id": userID})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

// ===== CLOCK-IN =====

func TestClockIn_CreatesOpenRecord(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	ctx := authedContext(t, "u1")
	h.setClock(9, 15)

	resp, err := h.svc.ClockIn(ctx)
	require.NoError(t, err)

	assert.Equal(t, attendance.StatusInProgress, resp.Status)
	assert.True(t, resp.IsRunning)
	assert.False(t, resp.IsLate)
	require.NotNil(t, resp.ClockIn)
	assert.Equal(t, tod(9, 15), *resp.ClockIn)
	assert.Equal(t, 1, h.notifier.count("u1"))

	stored := h.repo.get(t, "u1", testRules.DateOf(tod(9, 15)))
	assert.True(t, stored.HasOpenSession())
	require.NotNil(t, stored.FirstClockIn)
	assert.Equal(t, tod(9, 15), *stored.FirstClockIn)
}

func TestClockIn_AfterLateThresholdFlagsLate(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	h.setClock(9, 45)

	resp, err := h.svc.ClockIn(authedContext(t, "u1"))
	require.NoError(t, err)
	assert.True(t, resp.IsLate)
}

func TestClockIn_TwiceFails(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	ctx := authedContext(t, "u1")
	h.setClock(9, 0)

	_, err := h.svc.ClockIn(ctx)
	require.NoError(t, err)

	h.setClock(10, 0)
	_, err = h.svc.ClockIn(ctx)
	assert.ErrorIs(t, err, attendance.ErrAlreadyClockedIn)
}

func TestClockIn_DuringBreakFailsWithoutMutation(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	h.setClock(13, 20)

	_, err := h.svc.ClockIn(authedContext(t, "u1"))
	assert.ErrorIs(t, err, attendance.ErrBreakTimeActive)
	assert.Equal(t, 0, h.repo.count())
	assert.Equal(t, 0, h.notifier.count("u1"))
}

func TestClockIn_OnHolidaySynthesizesRecord(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	h.setClock(9, 0)
	h.holidays.dates[tod(9, 0).Format("2006-01-02")] = "Founders Day"

	_, err := h.svc.ClockIn(authedContext(t, "u1"))
	assert.ErrorIs(t, err, attendance.ErrHolidayBlocked)

	stored := h.repo.get(t, "u1", testRules.DateOf(tod(9, 0)))
	assert.Equal(t, attendance.StatusHoliday, stored.Status)
	assert.Equal(t, 0, stored.AccumulatedSeconds)
	assert.False(t, stored.HasOpenSession())
	assert.Equal(t, 1, h.notifier.count("u1"))
}

func TestClockIn_LeaveStates(t *testing.T) {
	t.Parallel()
	date := testRules.DateOf(tod(9, 0))

	t.Run("approved leave blocks and synthesizes", func(t *testing.T) {
		t.Parallel()
		h := newHarness(t)
		h.setClock(9, 0)
		h.leaves.states[repoKey("u1", date)] = attendance.LeaveApproved

		_, err := h.svc.ClockIn(authedContext(t, "u1"))
		assert.ErrorIs(t, err, attendance.ErrLeaveBlocked)
		stored := h.repo.get(t, "u1", date)
		assert.Equal(t, attendance.StatusLeave, stored.Status)
	})

	t.Run("pending leave blocks without a record", func(t *testing.T) {
		t.Parallel()
		h := newHarness(t)
		h.setClock(9, 0)
		h.leaves.states[repoKey("u1", date)] = attendance.LeavePending

		_, err := h.svc.ClockIn(authedContext(t, "u1"))
		assert.ErrorIs(t, err, attendance.ErrLeavePendingApproval)
		assert.Equal(t, 0, h.repo.count())
	})
}

func TestClockIn_ShiftCompleteAtDailyCap(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	ctx := authedContext(t, "u1")
	date := testRules.DateOf(tod(9, 0))

	clockOut := tod(12, 0)
	_, err := h.repo.Create(context.Background(), attendance.Record{
		UserID:             "u1",
		Date:               date,
		ClockOut:           &clockOut,
		AccumulatedSeconds: int(testRules.DailyCap.Seconds()),
		Status:             attendance.StatusPresent,
	})
	require.NoError(t, err)

	h.setClock(15, 0)
	_, err = h.svc.ClockIn(ctx)
	assert.ErrorIs(t, err, attendance.ErrShiftComplete)
}

func TestClockIn_ResumesClosedDay(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	ctx := authedContext(t, "u1")

	h.setClock(9, 0)
	_, err := h.svc.ClockIn(ctx)
	require.NoError(t, err)

	h.setClock(12, 0)
	_, err = h.svc.ClockOut(ctx)
	require.NoError(t, err)

	h.setClock(14, 30)
	resp, err := h.svc.ClockIn(ctx)
	require.NoError(t, err)

	assert.Equal(t, attendance.StatusInProgress, resp.Status)
	require.NotNil(t, resp.ClockIn)
	assert.Equal(t, tod(14, 30), *resp.ClockIn)
	assert.Nil(t, resp.ClockOut)
	require.NotNil(t, resp.FirstClockIn)
	assert.Equal(t, tod(9, 0), *resp.FirstClockIn)
	assert.Equal(t, seconds(3*time.Hour), resp.AccumulatedSeconds)
}

// ===== CLOCK-OUT =====

func TestClockOut_WithoutOpenSessionFails(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	h.setClock(10, 0)

	_, err := h.svc.ClockOut(authedContext(t, "u1"))
	assert.ErrorIs(t, err, attendance.ErrNotClockedIn)
}

func TestClockOut_FullDayIsPresent(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	ctx := authedContext(t, "u1")

	h.setClock(9, 15)
	_, err := h.svc.ClockIn(ctx)
	require.NoError(t, err)

	h.setClock(18, 0)
	resp, err := h.svc.ClockOut(ctx)
	require.NoError(t, err)

	assert.Equal(t, attendance.StatusPresent, resp.Status)
	assert.False(t, resp.IsRunning)
	// 8h45m elapsed minus the 1h break
	assert.Equal(t, seconds(7*time.Hour+45*time.Minute), resp.AccumulatedSeconds)
	assert.Equal(t, 0, resp.OvertimeSeconds)
	assert.Nil(t, resp.ClockIn)
	require.NotNil(t, resp.ClockOut)
	assert.Equal(t, tod(18, 0), *resp.ClockOut)
}

func TestClockOut_ClosesOpenTaskLogs(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	ctx := authedContext(t, "u1")

	h.setClock(9, 0)
	_, err := h.svc.ClockIn(ctx)
	require.NoError(t, err)

	h.setClock(12, 0)
	_, err = h.svc.ClockOut(ctx)
	require.NoError(t, err)

	require.Len(t, h.tasks.closedAt, 1)
	assert.Equal(t, tod(12, 0), h.tasks.closedAt[0])
}

// ===== SWEEP =====

func TestSweep_NoOpenRecordsIsNoOp(t *testing.T) {
	t.Parallel()
	h := newHarness(t)

	closed, err := h.svc.Sweep(context.Background(), "u1", tod(19, 0))
	require.NoError(t, err)
	assert.Equal(t, 0, closed)
	assert.Equal(t, 0, h.notifier.count("u1"))
}

func TestSweep_ClosesAtShiftEndWithLateAndOvertime(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	ctx := authedContext(t, "u1")

	h.setClock(9, 45)
	_, err := h.svc.ClockIn(ctx)
	require.NoError(t, err)

	closed, err := h.svc.Sweep(context.Background(), "u1", tod(19, 0))
	require.NoError(t, err)
	assert.Equal(t, 1, closed)

	stored := h.repo.get(t, "u1", testRules.DateOf(tod(9, 45)))
	assert.Equal(t, attendance.StatusLate, stored.Status)
	assert.Equal(t, seconds(time.Hour), stored.OvertimeSeconds)
	require.NotNil(t, stored.ClockOut)
	assert.Equal(t, tod(18, 0), *stored.ClockOut)
	// 9:45 to 18:00 minus the 1h break
	assert.Equal(t, seconds(7*time.Hour+15*time.Minute), stored.AccumulatedSeconds)

	// Idempotent: the record is closed now, nothing left to sweep.
	closed, err = h.svc.Sweep(context.Background(), "u1", tod(19, 30))
	require.NoError(t, err)
	assert.Equal(t, 0, closed)
}

func TestSweep_DuringBreakClosesAtBreakStart(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	ctx := authedContext(t, "u1")

	h.setClock(9, 0)
	_, err := h.svc.ClockIn(ctx)
	require.NoError(t, err)

	closed, err := h.svc.Sweep(context.Background(), "u1", tod(13, 30))
	require.NoError(t, err)
	assert.Equal(t, 1, closed)

	stored := h.repo.get(t, "u1", testRules.DateOf(tod(9, 0)))
	require.NotNil(t, stored.ClockOut)
	assert.Equal(t, tod(13, 0), *stored.ClockOut)
	assert.Equal(t, seconds(4*time.Hour), stored.AccumulatedSeconds)
	assert.Equal(t, attendance.StatusHalfDay, stored.Status)
	require.NotNil(t, stored.HalfDayPortion)
	assert.Equal(t, attendance.FirstHalf, *stored.HalfDayPortion)
}

func TestSweep_ExactlyAtShiftEndLeavesSessionOpen(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	ctx := authedContext(t, "u1")

	h.setClock(9, 15)
	_, err := h.svc.ClockIn(ctx)
	require.NoError(t, err)

	// A clock-out arriving exactly at shift-end sweeps first; the sweep must
	// not steal the session out from under it.
	closed, err := h.svc.Sweep(context.Background(), "u1", tod(18, 0))
	require.NoError(t, err)
	assert.Equal(t, 0, closed)

	stored := h.repo.get(t, "u1", testRules.DateOf(tod(9, 15)))
	assert.True(t, stored.HasOpenSession())
}

func TestSweep_MidAfternoonLeavesSessionOpen(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	ctx := authedContext(t, "u1")

	h.setClock(9, 0)
	_, err := h.svc.ClockIn(ctx)
	require.NoError(t, err)

	closed, err := h.svc.Sweep(context.Background(), "u1", tod(15, 0))
	require.NoError(t, err)
	assert.Equal(t, 0, closed)

	stored := h.repo.get(t, "u1", testRules.DateOf(tod(9, 0)))
	assert.True(t, stored.HasOpenSession())
}

func TestSweep_StalePreviousDayClosesAtItsShiftEnd(t *testing.T) {
	t.Parallel()
	h := newHarness(t)

	yesterday := testRules.DateOf(tod(9, 0)).AddDate(0, 0, -1)
	clockIn := testRules.At(yesterday, 9*time.Hour)
	_, err := h.repo.Create(context.Background(), attendance.Record{
		UserID:       "u1",
		Date:         yesterday,
		ClockIn:      &clockIn,
		FirstClockIn: &clockIn,
		Status:       attendance.StatusInProgress,
	})
	require.NoError(t, err)

	closed, err := h.svc.Sweep(context.Background(), "u1", tod(10, 0))
	require.NoError(t, err)
	assert.Equal(t, 1, closed)

	stored := h.repo.get(t, "u1", yesterday)
	require.NotNil(t, stored.ClockOut)
	assert.Equal(t, testRules.ShiftEndOn(yesterday), *stored.ClockOut)
	assert.Equal(t, attendance.StatusPresent, stored.Status)
	assert.Equal(t, seconds(8*time.Hour), stored.AccumulatedSeconds)
}

// ===== READS =====

func TestGetActive_CapsWorkedSecondsAndLocksDuringBreak(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	ctx := authedContext(t, "u1")

	h.setClock(9, 0)
	_, err := h.svc.ClockIn(ctx)
	require.NoError(t, err)

	h.setClock(11, 0)
	resp, err := h.svc.GetActive(ctx)
	require.NoError(t, err)

	assert.True(t, resp.SessionOpen)
	assert.False(t, resp.CanClockIn)
	assert.Equal(t, seconds(2*time.Hour), resp.WorkedSeconds)
	assert.Equal(t, attendance.StatusInProgress, resp.Status)
}

func TestGetActive_ShiftCompleteLock(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	ctx := authedContext(t, "u1")
	date := testRules.DateOf(tod(9, 0))

	clockOut := tod(16, 0)
	_, err := h.repo.Create(context.Background(), attendance.Record{
		UserID:             "u1",
		Date:               date,
		ClockOut:           &clockOut,
		AccumulatedSeconds: int(testRules.DailyCap.Seconds()) + 600,
		Status:             attendance.StatusPresent,
	})
	require.NoError(t, err)

	h.setClock(16, 30)
	resp, err := h.svc.GetActive(ctx)
	require.NoError(t, err)

	assert.False(t, resp.CanClockIn)
	require.NotNil(t, resp.LockReason)
	assert.Equal(t, "shift_complete", *resp.LockReason)
	assert.Equal(t, int(testRules.DailyCap.Seconds()), resp.WorkedSeconds)
}

func TestGetSummary_SplitsTaskAndIdleTime(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	ctx := authedContext(t, "u1")
	h.tasks.taskSeconds = seconds(90 * time.Minute)

	h.setClock(9, 0)
	_, err := h.svc.ClockIn(ctx)
	require.NoError(t, err)

	h.setClock(11, 0)
	resp, err := h.svc.GetSummary(ctx)
	require.NoError(t, err)

	assert.Equal(t, seconds(2*time.Hour), resp.AttendanceSeconds)
	assert.Equal(t, seconds(90*time.Minute), resp.TaskSeconds)
	assert.Equal(t, seconds(30*time.Minute), resp.IdleSeconds)
	assert.Equal(t, 0, resp.OvertimeSeconds)
}

func TestGetHistory_OverlaysHolidays(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	ctx := authedContext(t, "u1")

	h.setClock(9, 0)
	_, err := h.svc.ClockIn(ctx)
	require.NoError(t, err)
	h.setClock(18, 0)
	_, err = h.svc.ClockOut(ctx)
	require.NoError(t, err)

	holiday := testRules.DateOf(tod(9, 0)).AddDate(0, 0, -5)
	h.holidays.dates[holiday.Format("2006-01-02")] = "Spring Festival"

	resp, err := h.svc.GetHistory(ctx, 2026, time.March)
	require.NoError(t, err)

	statuses := make(map[string]attendance.Status)
	for _, record := range resp.Records {
		statuses[record.Date] = record.Status
	}
	assert.Equal(t, attendance.StatusPresent, statuses["2026-03-10"])
	assert.Equal(t, attendance.StatusHoliday, statuses[holiday.Format("2006-01-02")])
}

// ===== OVERRIDE & ADMIN =====

func TestOverrideStatus_SupersedesClassifier(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	userCtx := authedContext(t, "u1")
	adminCtx := authedContext(t, "admin-1")

	// Raw times that classify as absent.
	h.setClock(11, 0)
	_, err := h.svc.ClockIn(userCtx)
	require.NoError(t, err)
	h.setClock(12, 0)
	_, err = h.svc.ClockOut(userCtx)
	require.NoError(t, err)

	date := testRules.DateOf(tod(11, 0)).Format("2006-01-02")
	reason := "worked offsite"
	resp, err := h.svc.OverrideStatus(adminCtx, attendance.OverrideStatusRequest{
		UserID: "u1",
		Date:   date,
		Status: attendance.StatusPresent,
		Reason: &reason,
	})
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusPresent, resp.Status)
	assert.True(t, resp.ManualOverride)

	active, err := h.svc.GetActive(userCtx)
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusPresent, active.Status)

	stored := h.repo.get(t, "u1", testRules.DateOf(tod(11, 0)))
	require.NotNil(t, stored.OverrideAuthor)
	assert.Equal(t, "admin-1", *stored.OverrideAuthor)
}

func TestOverrideStatus_OnEmptyDayStillAllowsClockIn(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	userCtx := authedContext(t, "u1")

	// Admin overrides a day the user never touched; no clock data exists.
	h.setClock(10, 0)
	date := testRules.DateOf(tod(10, 0)).Format("2006-01-02")
	reason := "badge reader outage"
	_, err := h.svc.OverrideStatus(authedContext(t, "admin-1"), attendance.OverrideStatusRequest{
		UserID: "u1",
		Date:   date,
		Status: attendance.StatusPresent,
		Reason: &reason,
	})
	require.NoError(t, err)

	resp, err := h.svc.ClockIn(userCtx)
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusInProgress, resp.Status)
	assert.False(t, resp.ManualOverride)

	stored := h.repo.get(t, "u1", testRules.DateOf(tod(10, 0)))
	assert.True(t, stored.HasOpenSession())
	assert.False(t, stored.ManualOverride)
	assert.Nil(t, stored.OverrideAuthor)
}

func TestOverrideStatus_RejectsBadInput(t *testing.T) {
	t.Parallel()
	h := newHarness(t)

	_, err := h.svc.OverrideStatus(authedContext(t, "admin-1"), attendance.OverrideStatusRequest{
		UserID: "u1",
		Date:   "not-a-date",
		Status: "bogus",
	})
	assert.Error(t, err)
}

func TestMarkHolidayForAll_SkipsExistingRecords(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	date := testRules.DateOf(tod(9, 0))

	clockOut := tod(12, 0)
	_, err := h.repo.Create(context.Background(), attendance.Record{
		UserID:             "u1",
		Date:               date,
		ClockOut:           &clockOut,
		AccumulatedSeconds: seconds(3 * time.Hour),
		Status:             attendance.StatusHalfDay,
	})
	require.NoError(t, err)

	marked, err := h.svc.MarkHolidayForAll(context.Background(), date, []string{"u1", "u2", "u3"})
	require.NoError(t, err)
	assert.Equal(t, 2, marked)

	// u1's real clock data is untouched.
	stored := h.repo.get(t, "u1", date)
	assert.Equal(t, attendance.StatusHalfDay, stored.Status)
	assert.Equal(t, seconds(3*time.Hour), stored.AccumulatedSeconds)

	assert.Equal(t, attendance.StatusHoliday, h.repo.get(t, "u2", date).Status)
}

func TestUnmarkHolidayForAll_RemovesOnlySynthesizedRecords(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	date := testRules.DateOf(tod(9, 0))

	clockOut := tod(12, 0)
	_, err := h.repo.Create(context.Background(), attendance.Record{
		UserID:             "u1",
		Date:               date,
		ClockOut:           &clockOut,
		AccumulatedSeconds: seconds(3 * time.Hour),
		Status:             attendance.StatusHalfDay,
	})
	require.NoError(t, err)

	marked, err := h.svc.MarkHolidayForAll(context.Background(), date, []string{"u1", "u2", "u3"})
	require.NoError(t, err)
	require.Equal(t, 2, marked)

	unmarked, err := h.svc.UnmarkHolidayForAll(context.Background(), date)
	require.NoError(t, err)
	assert.Equal(t, 2, unmarked)

	// u1's real clock data survives; the synthesized records are gone.
	assert.Equal(t, attendance.StatusHalfDay, h.repo.get(t, "u1", date).Status)
	assert.Equal(t, 1, h.repo.count())
	// One notification for the mark, one for the unmark.
	assert.Equal(t, 2, h.notifier.count("u2"))
	assert.Equal(t, 2, h.notifier.count("u3"))
}

func TestMonthlyMatrix_Values(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	h.svc.users = &fakeUsers{users: []attendance.DirectoryUser{
		{ID: "u1", Name: "Asha"},
		{ID: "u2", Name: "Ravi"},
	}}

	date := testRules.DateOf(tod(9, 0))
	for i, status := range []attendance.Status{attendance.StatusPresent, attendance.StatusLate, attendance.StatusHalfDay} {
		_, err := h.repo.Create(context.Background(), attendance.Record{
			UserID: "u1",
			Date:   date.AddDate(0, 0, i),
			Status: status,
		})
		require.NoError(t, err)
	}
	_, err := h.repo.Create(context.Background(), attendance.Record{
		UserID: "u2",
		Date:   date,
		Status: attendance.StatusAbsent,
	})
	require.NoError(t, err)

	resp, err := h.svc.MonthlyMatrix(context.Background(), 2026, time.March)
	require.NoError(t, err)

	totals := make(map[string]float64)
	for _, row := range resp.Users {
		totals[row.UserID] = row.Total
	}
	assert.Equal(t, 2.5, totals["u1"])
	assert.Equal(t, 0.0, totals["u2"])
}
