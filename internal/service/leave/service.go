package leave

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-chi/jwtauth/v5"

	"github.com/workpulse-hq/workforce-backend-go/internal/domain/attendance"
	"github.com/workpulse-hq/workforce-backend-go/internal/domain/leave"
	"github.com/workpulse-hq/workforce-backend-go/internal/pkg/workday"
)

type ServiceImpl struct {
	repo   leave.RequestRepository
	rules  workday.Config
	logger *slog.Logger

	now func() time.Time
}

func NewService(repo leave.RequestRepository, rules workday.Config, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		repo:   repo,
		rules:  rules,
		logger: logger,
		now:    time.Now,
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

// Submit implements leave.RequestService.
func (s *ServiceImpl) Submit(ctx context.Context, req leave.SubmitRequest) (leave.RequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.RequestResponse{}, err
	}

	userID, err := userIDFromContext(ctx)
	if err != nil {
		return leave.RequestResponse{}, err
	}

	start, err := time.ParseInLocation("2006-01-02", req.StartDate, s.rules.Location)
	if err != nil {
		return leave.RequestResponse{}, fmt.Errorf("failed to parse start date: %w", err)
	}
	end, err := time.ParseInLocation("2006-01-02", req.EndDate, s.rules.Location)
	if err != nil {
		return leave.RequestResponse{}, fmt.Errorf("failed to parse end date: %w", err)
	}

	overlap, err := s.repo.HasOverlap(ctx, userID, start, end)
	if err != nil {
		return leave.RequestResponse{}, err
	}
	if overlap {
		return leave.RequestResponse{}, leave.ErrOverlappingRequest
	}

	created, err := s.repo.Create(ctx, leave.Request{
		UserID:    userID,
		StartDate: start,
		EndDate:   end,
		Reason:    req.Reason,
		Status:    leave.StatusPending,
	})
	if err != nil {
		return leave.RequestResponse{}, err
	}

	s.logger.Info("leave request submitted",
		slog.String("user_id", userID),
		slog.String("start_date", req.StartDate),
		slog.String("end_date", req.EndDate),
	)

	return toResponse(created), nil
}

// ListMine implements leave.RequestService.
func (s *ServiceImpl) ListMine(ctx context.Context) ([]leave.RequestResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	requests, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toResponses(requests), nil
}

// ListPending implements leave.RequestService.
func (s *ServiceImpl) ListPending(ctx context.Context) ([]leave.RequestResponse, error) {
	requests, err := s.repo.ListByStatus(ctx, leave.StatusPending)
	if err != nil {
		return nil, err
	}
	return toResponses(requests), nil
}

// Approve implements leave.RequestService.
func (s *ServiceImpl) Approve(ctx context.Context, req leave.ReviewRequest) (leave.RequestResponse, error) {
	return s.review(ctx, req, leave.StatusApproved)
}

// Reject implements leave.RequestService.
func (s *ServiceImpl) Reject(ctx context.Context, req leave.ReviewRequest) (leave.RequestResponse, error) {
	return s.review(ctx, req, leave.StatusRejected)
}

func (s *ServiceImpl) review(ctx context.Context, req leave.ReviewRequest, status leave.RequestStatus) (leave.RequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.RequestResponse{}, err
	}

	reviewerID, err := userIDFromContext(ctx)
	if err != nil {
		return leave.RequestResponse{}, err
	}

	request, err := s.repo.GetByID(ctx, req.RequestID)
	if err != nil {
		return leave.RequestResponse{}, err
	}
	if request.Status != leave.StatusPending {
		return leave.RequestResponse{}, leave.ErrRequestAlreadyProcessed
	}

	reviewedAt := s.now()
	request.Status = status
	request.ReviewedBy = &reviewerID
	request.ReviewedAt = &reviewedAt
	request.ReviewNote = req.Note

	if err := s.repo.Update(ctx, request); err != nil {
		return leave.RequestResponse{}, err
	}

	s.logger.Info("leave request reviewed",
		slog.String("request_id", request.ID),
		slog.String("user_id", request.UserID),
		slog.String("status", string(status)),
		slog.String("reviewed_by", reviewerID),
	)

	return toResponse(request), nil
}

func toResponse(r leave.Request) leave.RequestResponse {
	return leave.RequestResponse{
		ID:         r.ID,
		UserID:     r.UserID,
		StartDate:  r.StartDate.Format("2006-01-02"),
		EndDate:    r.EndDate.Format("2006-01-02"),
		Reason:     r.Reason,
		Status:     r.Status,
		ReviewedBy: r.ReviewedBy,
		ReviewedAt: r.ReviewedAt,
		ReviewNote: r.ReviewNote,
		CreatedAt:  r.CreatedAt,
	}
}

func toResponses(requests []leave.Request) []leave.RequestResponse {
	responses := make([]leave.RequestResponse, 0, len(requests))
	for _, r := range requests {
		responses = append(responses, toResponse(r))
	}
	return responses
}

// Calendar adapts the leave repository to the attendance engine's
// LeaveCalendar port. An approved request wins over a pending one covering
// the same date.
type Calendar struct {
	repo leave.RequestRepository
}

func NewCalendar(repo leave.RequestRepository) *Calendar {
	return &Calendar{repo: repo}
}

func (c *Calendar) LeaveStatus(ctx context.Context, userID string, date time.Time) (attendance.LeaveState, error) {
	requests, err := c.repo.FindCovering(ctx, userID, date)
	if err != nil {
		return attendance.LeaveNone, err
	}

	state := attendance.LeaveNone
	for _, r := range requests {
		switch r.Status {
		case leave.StatusApproved:
			return attendance.LeaveApproved, nil
		case leave.StatusPending:
			state = attendance.LeavePending
		}
	}
	return state, nil
}
