package tasklog

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/workpulse-hq/workforce-backend-go/internal/domain/attendance"
	"github.com/workpulse-hq/workforce-backend-go/internal/domain/tasklog"
	"github.com/workpulse-hq/workforce-backend-go/internal/pkg/workday"
)

var testRules = workday.Default()

func tod(hour, min int) time.Time {
	return time.Date(2025, 6, 16, hour, min, 0, 0, testRules.Location)
}

type fakeRepo struct {
	seq  int
	logs map[string]*tasklog.Log
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{logs: make(map[string]*tasklog.Log)}
}

func (r *fakeRepo) Create(_ context.Context, log tasklog.Log) (tasklog.Log, error) {
	r.seq++
	log.ID = fmt.Sprintf("log-%d", r.seq)
	stored := log
	r.logs[log.ID] = &stored
	return log, nil
}

func (r *fakeRepo) Update(_ context.Context, log tasklog.Log) error {
	if _, ok := r.logs[log.ID]; !ok {
		return tasklog.ErrLogNotFound
	}
	stored := log
	r.logs[log.ID] = &stored
	return nil
}

func (r *fakeRepo) GetRunningByUser(_ context.Context, userID string) (*tasklog.Log, error) {
	for _, log := range r.logs {
		if log.UserID == userID && log.EndTime == nil {
			copied := *log
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeRepo) ListByUserAndDay(_ context.Context, userID string, dayStart, dayEnd time.Time) ([]tasklog.Log, error) {
	var out []tasklog.Log
	for _, log := range r.logs {
		if log.UserID == userID && !log.StartTime.Before(dayStart) && log.StartTime.Before(dayEnd) {
			out = append(out, *log)
		}
	}
	return out, nil
}

func (r *fakeRepo) CloseOpenByUser(_ context.Context, userID string, at time.Time) error {
	for _, log := range r.logs {
		if log.UserID == userID && log.EndTime == nil {
			end := at
			log.EndTime = &end
		}
	}
	return nil
}

func (r *fakeRepo) SumSecondsByUserAndDay(_ context.Context, userID string, dayStart, dayEnd, now time.Time) (int, error) {
	total := 0
	for _, log := range r.logs {
		if log.UserID == userID && !log.StartTime.Before(dayStart) && log.StartTime.Before(dayEnd) {
			total += log.Seconds(now)
		}
	}
	return total, nil
}

type fakeSessions struct {
	records map[string]*attendance.Record // userID
}

func (f *fakeSessions) GetByUserAndDate(_ context.Context, userID string, _ time.Time) (*attendance.Record, error) {
	if record, ok := f.records[userID]; ok {
		copied := *record
		return &copied, nil
	}
	return nil, nil
}

type harness struct {
	svc      *ServiceImpl
	repo     *fakeRepo
	sessions *fakeSessions
	clock    *time.Time
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		repo:     newFakeRepo(),
		sessions: &fakeSessions{records: make(map[string]*attendance.Record)},
	}
	start := tod(10, 0)
	h.clock = &start
	h.svc = NewService(h.repo, h.sessions, testRules, slog.New(slog.NewTextHandler(io.Discard, nil)))
	h.svc.now = func() time.Time { return *h.clock }
	return h
}

func (h *harness) openSession(userID string) {
	clockIn := tod(9, 0)
	h.sessions.records[userID] = &attendance.Record{
		UserID:  userID,
		Date:    testRules.DateOf(clockIn),
		ClockIn: &clockIn,
		Status:  attendance.StatusInProgress,
	}
}

func (h *harness) closedSession(userID string) {
	clockOut := tod(9, 30)
	h.sessions.records[userID] = &attendance.Record{
		UserID:   userID,
		Date:     testRules.DateOf(clockOut),
		ClockOut: &clockOut,
		Status:   attendance.StatusHalfDay,
	}
}

var testTokenAuth = jwtauth.New("HS256", []byte("test-secret"), nil)

func authedContext(t *testing.T, userID string) context.Context {
	t.Helper()
	token, _, err := testTokenAuth.Encode(map[string]interface{}{"user_id": userID})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

func TestStart_CreatesRunningTimer(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	h.openSession("u1")

	resp, err := h.svc.Start(authedContext(t, "u1"), tasklog.StartRequest{TaskName: "code review"})
	require.NoError(t, err)

	assert.Equal(t, "code review", resp.TaskName)
	assert.Equal(t, tod(10, 0), resp.StartTime)
	assert.Nil(t, resp.EndTime)
	assert.Equal(t, 0, resp.Seconds)
}

func TestStart_FailsWithoutOpenSession(t *testing.T) {
	t.Parallel()
	h := newHarness(t)

	_, err := h.svc.Start(authedContext(t, "u1"), tasklog.StartRequest{TaskName: "code review"})
	assert.ErrorIs(t, err, tasklog.ErrNoOpenSession)
}

func TestStart_FailsAfterClockOut(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	h.closedSession("u1")

	_, err := h.svc.Start(authedContext(t, "u1"), tasklog.StartRequest{TaskName: "code review"})
	assert.ErrorIs(t, err, tasklog.ErrNoOpenSession)
}

func TestStart_FailsWhenTimerAlreadyRunning(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	h.openSession("u1")
	ctx := authedContext(t, "u1")

	_, err := h.svc.Start(ctx, tasklog.StartRequest{TaskName: "first"})
	require.NoError(t, err)

	_, err = h.svc.Start(ctx, tasklog.StartRequest{TaskName: "second"})
	assert.ErrorIs(t, err, tasklog.ErrTimerRunning)
}

func TestStop_StampsEndTimeAndSeconds(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	h.openSession("u1")
	ctx := authedContext(t, "u1")

	_, err := h.svc.Start(ctx, tasklog.StartRequest{TaskName: "code review"})
	require.NoError(t, err)

	*h.clock = tod(10, 45)
	resp, err := h.svc.Stop(ctx)
	require.NoError(t, err)

	require.NotNil(t, resp.EndTime)
	assert.Equal(t, tod(10, 45), *resp.EndTime)
	assert.Equal(t, 45*60, resp.Seconds)
}

func TestStop_FailsWithoutRunningTimer(t *testing.T) {
	t.Parallel()
	h := newHarness(t)

	_, err := h.svc.Stop(authedContext(t, "u1"))
	assert.ErrorIs(t, err, tasklog.ErrNoRunningTimer)
}

func TestListToday_CountsRunningTimerUpToNow(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	h.openSession("u1")
	ctx := authedContext(t, "u1")

	_, err := h.svc.Start(ctx, tasklog.StartRequest{TaskName: "standup"})
	require.NoError(t, err)

	*h.clock = tod(10, 20)
	logs, err := h.svc.ListToday(ctx)
	require.NoError(t, err)

	require.Len(t, logs, 1)
	assert.Equal(t, 20*60, logs[0].Seconds)
	assert.Nil(t, logs[0].EndTime)
}

func TestTimerCloser_ClosesOpenLogsAndTotalsDay(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	h.openSession("u1")
	ctx := authedContext(t, "u1")

	_, err := h.svc.Start(ctx, tasklog.StartRequest{TaskName: "morning"})
	require.NoError(t, err)
	*h.clock = tod(11, 0)
	_, err = h.svc.Stop(ctx)
	require.NoError(t, err)

	*h.clock = tod(14, 0)
	_, err = h.svc.Start(ctx, tasklog.StartRequest{TaskName: "afternoon"})
	require.NoError(t, err)

	closer := NewTimerCloser(h.repo)
	require.NoError(t, closer.CloseOpenLogs(context.Background(), "u1", tod(15, 0)))

	running, err := h.repo.GetRunningByUser(context.Background(), "u1")
	require.NoError(t, err)
	assert.Nil(t, running)

	total, err := closer.TaskSeconds(context.Background(), "u1", testRules.DateOf(tod(15, 0)), tod(15, 0))
	require.NoError(t, err)
	assert.Equal(t, 2*3600, total)
}
