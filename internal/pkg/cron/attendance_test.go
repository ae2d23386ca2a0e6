package cron

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/workpulse-hq/workforce-backend-go/internal/domain/attendance"
	"github.com/workpulse-hq/workforce-backend-go/internal/pkg/workday"
)

var testRules = workday.Default()

type fakeSweeper struct {
	attendance.Service
	swept []string
}

func (f *fakeSweeper) Sweep(_ context.Context, userID string, _ time.Time) (int, error) {
	f.swept = append(f.swept, userID)
	return 1, nil
}

type fakeRepo struct {
	attendance.Repository
	openUsers []string
	existing  map[string]bool // userID|date
	created   []attendance.Record
}

func recordKey(userID string, date time.Time) string {
	return userID + "|" + date.Format("2006-01-02")
}

func (r *fakeRepo) ListUserIDsWithOpenSessions(_ context.Context) ([]string, error) {
	return r.openUsers, nil
}

func (r *fakeRepo) ExistsForUserAndDate(_ context.Context, userID string, date time.Time) (bool, error) {
	return r.existing[recordKey(userID, date)], nil
}

func (r *fakeRepo) Create(_ context.Context, record attendance.Record) (attendance.Record, error) {
	r.created = append(r.created, record)
	return record, nil
}

type fakeDirectory struct {
	users []attendance.DirectoryUser
}

func (f *fakeDirectory) ListActive(_ context.Context) ([]attendance.DirectoryUser, error) {
	return f.users, nil
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
	return l.states[recordKey(userID, date)], nil
}

type harness struct {
	jobs     *AttendanceJobs
	sweeper  *fakeSweeper
	repo     *fakeRepo
	dir      *fakeDirectory
	holidays *fakeHolidays
	leaves   *fakeLeaves
	clock    *time.Time
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		sweeper:  &fakeSweeper{},
		repo:     &fakeRepo{existing: make(map[string]bool)},
		dir:      &fakeDirectory{},
		holidays: &fakeHolidays{dates: make(map[string]string)},
		leaves:   &fakeLeaves{states: make(map[string]attendance.LeaveState)},
	}
	start := time.Date(2025, 6, 17, 0, 30, 0, 0, testRules.Location)
	h.clock = &start
	h.jobs = NewAttendanceJobs(h.sweeper, h.repo, h.dir, h.holidays, h.leaves, testRules)
	h.jobs.now = func() time.Time { return *h.clock }
	return h
}

func TestReconcileOpenSessions_SweepsEveryOpenUser(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	h.repo.openUsers = []string{"u1", "u2"}

	require.NoError(t, h.jobs.ReconcileOpenSessions(context.Background()))
	assert.Equal(t, []string{"u1", "u2"}, h.sweeper.swept)
}

func TestReconcileOpenSessions_NoopWithoutOpenSessions(t *testing.T) {
	t.Parallel()
	h := newHarness(t)

	require.NoError(t, h.jobs.ReconcileOpenSessions(context.Background()))
	assert.Empty(t, h.sweeper.swept)
}

func TestMarkAbsent_BackfillsYesterdayForUsersWithoutRecords(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	h.dir.users = []attendance.DirectoryUser{{ID: "u1", Name: "A"}, {ID: "u2", Name: "B"}}

	yesterday := time.Date(2025, 6, 16, 0, 0, 0, 0, testRules.Location)
	h.repo.existing[recordKey("u1", yesterday)] = true

	require.NoError(t, h.jobs.MarkAbsentEmployees(context.Background()))

	require.Len(t, h.repo.created, 1)
	created := h.repo.created[0]
	assert.Equal(t, "u2", created.UserID)
	assert.Equal(t, yesterday, created.Date)
	assert.Equal(t, attendance.StatusAbsent, created.Status)
}

func TestMarkAbsent_OnlyRunsInMidnightHour(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	h.dir.users = []attendance.DirectoryUser{{ID: "u1", Name: "A"}}
	*h.clock = time.Date(2025, 6, 17, 9, 0, 0, 0, testRules.Location)

	require.NoError(t, h.jobs.MarkAbsentEmployees(context.Background()))
	assert.Empty(t, h.repo.created)
}

func TestMarkAbsent_HolidayWinsOverLeave(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	h.dir.users = []attendance.DirectoryUser{{ID: "u1", Name: "A"}}
	h.holidays.dates["2025-06-16"] = "Founders Day"
	yesterday := time.Date(2025, 6, 16, 0, 0, 0, 0, testRules.Location)
	h.leaves.states[recordKey("u1", yesterday)] = attendance.LeaveApproved

	require.NoError(t, h.jobs.MarkAbsentEmployees(context.Background()))

	require.Len(t, h.repo.created, 1)
	created := h.repo.created[0]
	assert.Equal(t, attendance.StatusHoliday, created.Status)
	require.NotNil(t, created.NonWorkingReason)
	assert.Equal(t, "Founders Day", *created.NonWorkingReason)
}

func TestMarkAbsent_ApprovedLeaveProducesLeaveRecord(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	h.dir.users = []attendance.DirectoryUser{{ID: "u1", Name: "A"}}
	yesterday := time.Date(2025, 6, 16, 0, 0, 0, 0, testRules.Location)
	h.leaves.states[recordKey("u1", yesterday)] = attendance.LeaveApproved

	require.NoError(t, h.jobs.MarkAbsentEmployees(context.Background()))

	require.Len(t, h.repo.created, 1)
	created := h.repo.created[0]
	assert.Equal(t, attendance.StatusLeave, created.Status)
	require.NotNil(t, created.NonWorkingReason)
	assert.Equal(t, "leave", *created.NonWorkingReason)
}

func TestMarkAbsent_PendingLeaveStillMarksAbsent(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	h.dir.users = []attendance.DirectoryUser{{ID: "u1", Name: "A"}}
	yesterday := time.Date(2025, 6, 16, 0, 0, 0, 0, testRules.Location)
	h.leaves.states[recordKey("u1", yesterday)] = attendance.LeavePending

	require.NoError(t, h.jobs.MarkAbsentEmployees(context.Background()))

	require.Len(t, h.repo.created, 1)
	assert.Equal(t, attendance.StatusAbsent, h.repo.created[0].Status)
}
