package holiday

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-chi/jwtauth/v5"

	"github.com/workpulse-hq/workforce-backend-go/internal/domain/attendance"
	"github.com/workpulse-hq/workforce-backend-go/internal/domain/holiday"
	"github.com/workpulse-hq/workforce-backend-go/internal/pkg/workday"
)

type ServiceImpl struct {
	repo       holiday.HolidayRepository
	attendance attendance.Service
	rules      workday.Config
	logger     *slog.Logger
}

func NewService(
	repo holiday.HolidayRepository,
	attendanceSvc attendance.Service,
	rules workday.Config,
	logger *slog.Logger,
) *ServiceImpl {
	return &ServiceImpl{
		repo:       repo,
		attendance: attendanceSvc,
		rules:      rules,
		logger:     logger,
	}
}

func adminIDFromContext(ctx context.Context) (string, error) {
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

// Create implements holiday.HolidayService. The new holiday is immediately
// marked on every active user's attendance calendar.
func (s *ServiceImpl) Create(ctx context.Context, req holiday.CreateHolidayRequest) (holiday.HolidayResponse, error) {
	if err := req.Validate(); err != nil {
		return holiday.HolidayResponse{}, err
	}

	adminID, err := adminIDFromContext(ctx)
	if err != nil {
		return holiday.HolidayResponse{}, err
	}

	date, err := time.ParseInLocation("2006-01-02", req.Date, s.rules.Location)
	if err != nil {
		return holiday.HolidayResponse{}, fmt.Errorf("failed to parse holiday date: %w", err)
	}

	if existing, err := s.repo.GetByDate(ctx, date); err != nil {
		return holiday.HolidayResponse{}, err
	} else if existing != nil {
		return holiday.HolidayResponse{}, holiday.ErrHolidayExists
	}

	created, err := s.repo.Create(ctx, holiday.Holiday{
		Date:      date,
		Name:      req.Name,
		CreatedBy: adminID,
	})
	if err != nil {
		return holiday.HolidayResponse{}, err
	}

	marked, err := s.attendance.MarkHolidayForAll(ctx, date, nil)
	if err != nil {
		// The holiday itself is saved; the nightly job will not re-mark past
		// days, so surface the failure.
		return holiday.HolidayResponse{}, fmt.Errorf("holiday created but marking attendance failed: %w", err)
	}

	s.logger.Info("holiday created",
		slog.String("date", req.Date),
		slog.String("name", req.Name),
		slog.Int("marked_users", marked),
	)

	return toResponse(created), nil
}

// Delete implements holiday.HolidayService. Synthesized holiday records for
// the date are removed; days with real clock data are left untouched.
func (s *ServiceImpl) Delete(ctx context.Context, id string) error {
	h, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	unmarked, err := s.attendance.UnmarkHolidayForAll(ctx, h.Date)
	if err != nil {
		return fmt.Errorf("holiday deleted but unmarking attendance failed: %w", err)
	}

	s.logger.Info("holiday deleted",
		slog.String("date", h.Date.Format("2006-01-02")),
		slog.String("name", h.Name),
		slog.Int("unmarked_users", unmarked),
	)
	return nil
}

// ListByYear implements holiday.HolidayService.
func (s *ServiceImpl) ListByYear(ctx context.Context, year int) ([]holiday.HolidayResponse, error) {
	holidays, err := s.repo.ListByYear(ctx, year)
	if err != nil {
		return nil, err
	}

	responses := make([]holiday.HolidayResponse, 0, len(holidays))
	for _, h := range holidays {
		responses = append(responses, toResponse(h))
	}
	return responses, nil
}

func toResponse(h holiday.Holiday) holiday.HolidayResponse {
	return holiday.HolidayResponse{
		ID:        h.ID,
		Date:      h.Date.Format("2006-01-02"),
		Name:      h.Name,
		CreatedAt: h.CreatedAt,
	}
}

// Calendar adapts the holiday repository to the attendance engine's
// HolidayCalendar port.
type Calendar struct {
	repo holiday.HolidayRepository
}

func NewCalendar(repo holiday.HolidayRepository) *Calendar {
	return &Calendar{repo: repo}
}

func (c *Calendar) IsHoliday(ctx context.Context, date time.Time) (bool, string, error) {
	h, err := c.repo.GetByDate(ctx, date)
	if err != nil {
		return false, "", err
	}
	if h == nil {
		return false, "", nil
	}
	return true, h.Name, nil
}
