package tasklog

import (
	"time"

	"github.com/workpulse-hq/workforce-backend-go/internal/pkg/validator"
)

type StartRequest struct {
	TaskName string `json:"task_name"`
}

func (r *StartRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.TaskName) {
		errs = append(errs, validator.ValidationError{
			Field:   "task_name",
			Message: "task_name is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type LogResponse struct {
	ID        string     `json:"id"`
	UserID    string     `json:"user_id"`
	TaskName  string     `json:"task_name"`
	StartTime time.Time  `json:"start_time"`
	EndTime   *time.Time `json:"end_time,omitempty"`
	Seconds   int        `json:"seconds"`
}
