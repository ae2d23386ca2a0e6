package leave

import (
	"context"
	"time"
)

// RequestRepository defines data access methods for leave requests.
type RequestRepository interface {
	Create(ctx context.Context, req Request) (Request, error)
	Update(ctx context.Context, req Request) error
	GetByID(ctx context.Context, id string) (Request, error)
	ListByUser(ctx context.Context, userID string) ([]Request, error)
	ListByStatus(ctx context.Context, status RequestStatus) ([]Request, error)
	// FindCovering returns requests of the user whose date range covers the
	// given date, newest first.
	FindCovering(ctx context.Context, userID string, date time.Time) ([]Request, error)
	// HasOverlap reports whether the user already has a pending or approved
	// request intersecting [start, end].
	HasOverlap(ctx context.Context, userID string, start, end time.Time) (bool, error)
}
