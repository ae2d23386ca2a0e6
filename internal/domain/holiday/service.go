package holiday

import "context"

// HolidayService defines business logic for holiday management. Creating a
// holiday also marks it on every user's attendance calendar.
type HolidayService interface {
	Create(ctx context.Context, req CreateHolidayRequest) (HolidayResponse, error)
	Delete(ctx context.Context, id string) error
	ListByYear(ctx context.Context, year int) ([]HolidayResponse, error)
}
