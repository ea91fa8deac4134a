package holiday

import "context"

type HolidayRepository interface {
	Create(ctx context.Context, h Holiday) (Holiday, error)
	Update(ctx context.Context, id string, req UpdateHolidayRequest) (Holiday, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter HolidayFilter) ([]Holiday, error)
}
