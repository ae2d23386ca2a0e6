package response

import (
	"errors"
	"net/http"

	"github.com/workpulse-hq/workforce-backend-go/internal/domain/attendance"
	"github.com/workpulse-hq/workforce-backend-go/internal/domain/auth"
	"github.com/workpulse-hq/workforce-backend-go/internal/domain/holiday"
	"github.com/workpulse-hq/workforce-backend-go/internal/domain/leave"
	"github.com/workpulse-hq/workforce-backend-go/internal/domain/tasklog"
	"github.com/workpulse-hq/workforce-backend-go/internal/domain/user"
	"github.com/workpulse-hq/workforce-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, auth.ErrAccountDeactivated):
		Forbidden(w, "Account is deactivated")
	case errors.Is(err, auth.ErrUserNotFound):
		NotFound(w, "User not found")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAlreadyClockedIn):
		Conflict(w, "Already clocked in")
	case errors.Is(err, attendance.ErrShiftComplete):
		Conflict(w, "Daily shift already complete")
	case errors.Is(err, attendance.ErrNotClockedIn):
		BadRequest(w, "No open work session", nil)
	case errors.Is(err, attendance.ErrBreakTimeActive):
		BadRequest(w, "Cannot clock in during the break window", nil)
	case errors.Is(err, attendance.ErrHolidayBlocked):
		Forbidden(w, "Today is a holiday")
	case errors.Is(err, attendance.ErrLeaveBlocked):
		Forbidden(w, "An approved leave covers today")
	case errors.Is(err, attendance.ErrLeavePendingApproval):
		Forbidden(w, "A pending leave request covers today")
	case errors.Is(err, attendance.ErrRecordNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrUnauthorized):
		Forbidden(w, "Not allowed to access this attendance record")

	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrUserEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, user.ErrEmployeeCodeExists):
		Conflict(w, "Employee code already exists")
	case errors.Is(err, user.ErrAdminPrivilegeRequired), errors.Is(err, user.ErrInsufficientPermissions):
		Forbidden(w, "Admin privilege required")

	// Holiday domain errors
	case errors.Is(err, holiday.ErrHolidayNotFound):
		NotFound(w, "Holiday not found")
	case errors.Is(err, holiday.ErrHolidayExists):
		Conflict(w, "A holiday already exists on that date")

	// Leave domain errors
	case errors.Is(err, leave.ErrRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrRequestAlreadyProcessed):
		Conflict(w, "Leave request already processed")
	case errors.Is(err, leave.ErrOverlappingRequest):
		Conflict(w, "An overlapping leave request already exists")
	case errors.Is(err, leave.ErrUnauthorized):
		Forbidden(w, "Not allowed to access this leave request")

	// Task log domain errors
	case errors.Is(err, tasklog.ErrLogNotFound):
		NotFound(w, "Task log not found")
	case errors.Is(err, tasklog.ErrTimerRunning):
		Conflict(w, "A task timer is already running")
	case errors.Is(err, tasklog.ErrNoRunningTimer):
		BadRequest(w, "No running task timer", nil)
	case errors.Is(err, tasklog.ErrNoOpenSession):
		BadRequest(w, "Clock in before starting a task timer", nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
