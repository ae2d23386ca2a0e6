package leave

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
	"github.com/workpulse-hq/workforce-backend-go/internal/domain/leave"
	"github.com/workpulse-hq/workforce-backend-go/internal/pkg/workday"
)

var testRules = workday.Default()

type fakeRepo struct {
	seq      int
	requests map[string]*leave.Request
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{requests: make(map[string]*leave.Request)}
}

func (r *fakeRepo) Create(_ context.Context, req leave.Request) (leave.Request, error) {
	r.seq++
	req.ID = fmt.Sprintf("req-%d", r.seq)
	req.CreatedAt = time.Now()
	stored := req
	r.requests[req.ID] = &stored
	return req, nil
}

func (r *fakeRepo) Update(_ context.Context, req leave.Request) error {
	if _, ok := r.requests[req.ID]; !ok {
		return leave.ErrRequestNotFound
	}
	stored := req
	r.requests[req.ID] = &stored
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id string) (leave.Request, error) {
	if stored, ok := r.requests[id]; ok {
		return *stored, nil
	}
	return leave.Request{}, leave.ErrRequestNotFound
}

func (r *fakeRepo) ListByUser(_ context.Context, userID string) ([]leave.Request, error) {
	var out []leave.Request
	for _, req := range r.requests {
		if req.UserID == userID {
			out = append(out, *req)
		}
	}
	return out, nil
}

func (r *fakeRepo) ListByStatus(_ context.Context, status leave.RequestStatus) ([]leave.Request, error) {
	var out []leave.Request
	for _, req := range r.requests {
		if req.Status == status {
			out = append(out, *req)
		}
	}
	return out, nil
}

func (r *fakeRepo) FindCovering(_ context.Context, userID string, date time.Time) ([]leave.Request, error) {
	var out []leave.Request
	for _, req := range r.requests {
		if req.UserID == userID && req.Covers(date) {
			out = append(out, *req)
		}
	}
	return out, nil
}

func (r *fakeRepo) HasOverlap(_ context.Context, userID string, start, end time.Time) (bool, error) {
	for _, req := range r.requests {
		if req.UserID != userID {
			continue
		}
		if req.Status != leave.StatusPending && req.Status != leave.StatusApproved {
			continue
		}
		if !req.StartDate.After(end) && !req.EndDate.Before(start) {
			return true, nil
		}
	}
	return false, nil
}

func newService(repo *fakeRepo) *ServiceImpl {
	svc := NewService(repo, testRules, slog.New(slog.NewTextHandler(io.Discard, nil)))
	svc.now = func() time.Time {
		return time.Date(2025, 6, 16, 10, 0, 0, 0, testRules.Location)
	}
	return svc
}

var testTokenAuth = jwtauth.New("HS256", []byte("test-secret"), nil)

func authedContext(t *testing.T, userID string) context.Context {
	t.Helper()
	token, _, err := testTokenAuth.Encode(map[string]interface{}{"user_id": userID})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

func officeDate(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, testRules.Location)
}

func TestSubmit_CreatesPendingRequest(t *testing.T) {
	t.Parallel()
	repo := newFakeRepo()
	svc := newService(repo)

	resp, err := svc.Submit(authedContext(t, "u1"), leave.SubmitRequest{
		StartDate: "2025-06-20",
		EndDate:   "2025-06-22",
		Reason:    "family event",
	})
	require.NoError(t, err)

	assert.Equal(t, leave.StatusPending, resp.Status)
	assert.Equal(t, "u1", resp.UserID)
	assert.Equal(t, "2025-06-20", resp.StartDate)
	assert.Equal(t, "2025-06-22", resp.EndDate)
	assert.Nil(t, resp.ReviewedBy)
}

func TestSubmit_RejectsInvalidRange(t *testing.T) {
	t.Parallel()
	svc := newService(newFakeRepo())

	_, err := svc.Submit(authedContext(t, "u1"), leave.SubmitRequest{
		StartDate: "2025-06-22",
		EndDate:   "2025-06-20",
		Reason:    "backwards",
	})
	require.Error(t, err)
}

func TestSubmit_RejectsOverlapWithPendingRequest(t *testing.T) {
	t.Parallel()
	repo := newFakeRepo()
	svc := newService(repo)
	ctx := authedContext(t, "u1")

	_, err := svc.Submit(ctx, leave.SubmitRequest{
		StartDate: "2025-06-20",
		EndDate:   "2025-06-22",
		Reason:    "first",
	})
	require.NoError(t, err)

	_, err = svc.Submit(ctx, leave.SubmitRequest{
		StartDate: "2025-06-22",
		EndDate:   "2025-06-25",
		Reason:    "second",
	})
	assert.ErrorIs(t, err, leave.ErrOverlappingRequest)
}

func TestSubmit_AllowsOverlapAfterRejection(t *testing.T) {
	t.Parallel()
	repo := newFakeRepo()
	svc := newService(repo)

	first, err := svc.Submit(authedContext(t, "u1"), leave.SubmitRequest{
		StartDate: "2025-06-20",
		EndDate:   "2025-06-22",
		Reason:    "first",
	})
	require.NoError(t, err)

	_, err = svc.Reject(authedContext(t, "admin"), leave.ReviewRequest{RequestID: first.ID})
	require.NoError(t, err)

	_, err = svc.Submit(authedContext(t, "u1"), leave.SubmitRequest{
		StartDate: "2025-06-21",
		EndDate:   "2025-06-23",
		Reason:    "retry",
	})
	assert.NoError(t, err)
}

func TestApprove_StampsReviewer(t *testing.T) {
	t.Parallel()
	repo := newFakeRepo()
	svc := newService(repo)

	submitted, err := svc.Submit(authedContext(t, "u1"), leave.SubmitRequest{
		StartDate: "2025-06-20",
		EndDate:   "2025-06-20",
		Reason:    "appointment",
	})
	require.NoError(t, err)

	note := "enjoy"
	resp, err := svc.Approve(authedContext(t, "admin"), leave.ReviewRequest{
		RequestID: submitted.ID,
		Note:      &note,
	})
	require.NoError(t, err)

	assert.Equal(t, leave.StatusApproved, resp.Status)
	require.NotNil(t, resp.ReviewedBy)
	assert.Equal(t, "admin", *resp.ReviewedBy)
	require.NotNil(t, resp.ReviewedAt)
	require.NotNil(t, resp.ReviewNote)
	assert.Equal(t, "enjoy", *resp.ReviewNote)
}

func TestReview_FailsWhenAlreadyProcessed(t *testing.T) {
	t.Parallel()
	repo := newFakeRepo()
	svc := newService(repo)

	submitted, err := svc.Submit(authedContext(t, "u1"), leave.SubmitRequest{
		StartDate: "2025-06-20",
		EndDate:   "2025-06-20",
		Reason:    "appointment",
	})
	require.NoError(t, err)

	_, err = svc.Approve(authedContext(t, "admin"), leave.ReviewRequest{RequestID: submitted.ID})
	require.NoError(t, err)

	_, err = svc.Reject(authedContext(t, "admin"), leave.ReviewRequest{RequestID: submitted.ID})
	assert.ErrorIs(t, err, leave.ErrRequestAlreadyProcessed)
}

func TestReview_FailsWhenRequestMissing(t *testing.T) {
	t.Parallel()
	svc := newService(newFakeRepo())

	_, err := svc.Approve(authedContext(t, "admin"), leave.ReviewRequest{RequestID: "nope"})
	assert.ErrorIs(t, err, leave.ErrRequestNotFound)
}

func TestListPending_ReturnsOnlyPending(t *testing.T) {
	t.Parallel()
	repo := newFakeRepo()
	svc := newService(repo)

	first, err := svc.Submit(authedContext(t, "u1"), leave.SubmitRequest{
		StartDate: "2025-06-20",
		EndDate:   "2025-06-20",
		Reason:    "one",
	})
	require.NoError(t, err)
	_, err = svc.Submit(authedContext(t, "u2"), leave.SubmitRequest{
		StartDate: "2025-06-21",
		EndDate:   "2025-06-21",
		Reason:    "two",
	})
	require.NoError(t, err)

	_, err = svc.Approve(authedContext(t, "admin"), leave.ReviewRequest{RequestID: first.ID})
	require.NoError(t, err)

	pending, err := svc.ListPending(context.Background())
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "u2", pending[0].UserID)
}

func TestCalendar_ApprovedWinsOverPending(t *testing.T) {
	t.Parallel()
	repo := newFakeRepo()
	date := officeDate(2025, 6, 20)

	_, err := repo.Create(context.Background(), leave.Request{
		UserID:    "u1",
		StartDate: date,
		EndDate:   date,
		Status:    leave.StatusPending,
	})
	require.NoError(t, err)
	_, err = repo.Create(context.Background(), leave.Request{
		UserID:    "u1",
		StartDate: date,
		EndDate:   date,
		Status:    leave.StatusApproved,
	})
	require.NoError(t, err)

	state, err := NewCalendar(repo).LeaveStatus(context.Background(), "u1", date)
	require.NoError(t, err)
	assert.Equal(t, attendance.LeaveApproved, state)
}

func TestCalendar_PendingWhenNoApproval(t *testing.T) {
	t.Parallel()
	repo := newFakeRepo()
	date := officeDate(2025, 6, 20)

	_, err := repo.Create(context.Background(), leave.Request{
		UserID:    "u1",
		StartDate: date,
		EndDate:   date,
		Status:    leave.StatusPending,
	})
	require.NoError(t, err)

	state, err := NewCalendar(repo).LeaveStatus(context.Background(), "u1", date)
	require.NoError(t, err)
	assert.Equal(t, attendance.LeavePending, state)
}

func TestCalendar_RejectedCountsAsNone(t *testing.T) {
	t.Parallel()
	repo := newFakeRepo()
	date := officeDate(2025, 6, 20)

	_, err := repo.Create(context.Background(), leave.Request{
		UserID:    "u1",
		StartDate: date,
		EndDate:   date,
		Status:    leave.StatusRejected,
	})
	require.NoError(t, err)

	state, err := NewCalendar(repo).LeaveStatus(context.Background(), "u1", date)
	require.NoError(t, err)
	assert.Equal(t, attendance.LeaveNone, state)
}
