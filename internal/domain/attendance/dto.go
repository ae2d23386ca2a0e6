package attendance

import (
	"time"

	"github.com/workpulse-hq/workforce-backend-go/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

// RecordResponse is the canonical wire shape of a record.
type RecordResponse struct {
	ID                 string     `json:"id"`
	UserID             string     `json:"user_id"`
	Date               string     `json:"date"` // YYYY-MM-DD in office time
	ClockIn            *time.Time `json:"clock_in,omitempty"`
	ClockOut           *time.Time `json:"clock_out,omitempty"`
	FirstClockIn       *time.Time `json:"first_clock_in,omitempty"`
	AccumulatedSeconds int        `json:"accumulated_seconds"`
	Status             Status     `json:"status"`
	HalfDayPortion     *string    `json:"half_day_portion,omitempty"`
	IsRunning          bool       `json:"is_running"`
	IsLate             bool       `json:"is_late"`
	OvertimeSeconds    int        `json:"overtime_seconds"`
	ManualOverride     bool       `json:"manual_override"`
	OverrideReason     *string    `json:"override_reason,omitempty"`
	NonWorkingReason   *string    `json:"non_working_reason,omitempty"`
}

// ActiveResponse is the live dashboard view of today's session.
type ActiveResponse struct {
	Date           string     `json:"date"`
	SessionOpen    bool       `json:"session_open"`
	ClockIn        *time.Time `json:"clock_in,omitempty"`
	ClockOut       *time.Time `json:"clock_out,omitempty"`
	WorkedSeconds  int        `json:"worked_seconds"` // capped at the daily limit
	CanClockIn     bool       `json:"can_clock_in"`
	LockReason     *string    `json:"lock_reason,omitempty"` // holiday|leave|shift_complete|break_time
	IsLate         bool       `json:"is_late"`
	Status         Status     `json:"status"`
	HalfDayPortion *string    `json:"half_day_portion,omitempty"`
}

// SummaryResponse breaks today's time down for the personal dashboard.
type SummaryResponse struct {
	Date              string `json:"date"`
	AttendanceSeconds int    `json:"attendance_seconds"` // uncapped
	TaskSeconds       int    `json:"task_seconds"`
	IdleSeconds       int    `json:"idle_seconds"`
	OvertimeSeconds   int    `json:"overtime_seconds"`
}

type HistoryResponse struct {
	Year    int              `json:"year"`
	Month   int              `json:"month"`
	Records []RecordResponse `json:"records"`
}

type OverrideStatusRequest struct {
	UserID          string  `json:"user_id"`
	Date            string  `json:"date"` // YYYY-MM-DD
	Status          Status  `json:"status"`
	HalfDayPortion  *string `json:"half_day_portion,omitempty"`
	OvertimeSeconds *int    `json:"overtime_seconds,omitempty"`
	Reason          *string `json:"reason,omitempty"`
}

func (r *OverrideStatusRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.UserID) {
		errs = append(errs, validator.ValidationError{
			Field:   "user_id",
			Message: "user_id is required",
		})
	}

	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	validStatuses := []string{
		string(StatusAbsent), string(StatusPresent), string(StatusLate),
		string(StatusHalfDay), string(StatusHoliday), string(StatusLeave),
	}
	if !validator.IsInSlice(string(r.Status), validStatuses) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: absent, present, late, halfday, holiday, leave",
		})
	}

	if r.Status == StatusHalfDay {
		if r.HalfDayPortion == nil {
			errs = append(errs, validator.ValidationError{
				Field:   "half_day_portion",
				Message: "half_day_portion is required when status is halfday",
			})
		} else if !validator.IsInSlice(*r.HalfDayPortion, []string{string(FirstHalf), string(SecondHalf)}) {
			errs = append(errs, validator.ValidationError{
				Field:   "half_day_portion",
				Message: "half_day_portion must be first_half or second_half",
			})
		}
	} else if r.HalfDayPortion != nil {
		errs = append(errs, validator.ValidationError{
			Field:   "half_day_portion",
			Message: "half_day_portion is only allowed when status is halfday",
		})
	}

	if r.OvertimeSeconds != nil && *r.OvertimeSeconds < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "overtime_seconds",
			Message: "overtime_seconds must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// MatrixCell is one user-day in the admin monthly matrix.
// Value: 1 for present/late, 0.5 for halfday, 0 otherwise.
type MatrixCell struct {
	Day    int     `json:"day"`
	Status Status  `json:"status"`
	Value  float64 `json:"value"`
}

type MatrixRow struct {
	UserID string       `json:"user_id"`
	Name   string       `json:"name"`
	Days   []MatrixCell `json:"days"`
	Total  float64      `json:"total"`
}

type MonthlyMatrixResponse struct {
	Year  int         `json:"year"`
	Month int         `json:"month"`
	Users []MatrixRow `json:"users"`
}

// Event names published on the notification stream.
const (
	EventAttendanceChanged = "attendance_changed"
	EventDashboardRefresh  = "dashboard_refresh"
)
