package holiday

import (
	"context"
	"time"
)

// HolidayRepository defines data access methods for holidays.
type HolidayRepository interface {
	Create(ctx context.Context, h Holiday) (Holiday, error)
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (Holiday, error)
	GetByDate(ctx context.Context, date time.Time) (*Holiday, error)
	ListByYear(ctx context.Context, year int) ([]Holiday, error)
}
