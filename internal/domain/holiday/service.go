package holiday

import "context"

type HolidayService interface {
	ListHolidays(ctx context.Context, filter HolidayFilter) ([]HolidayResponse, error)
	CreateHoliday(ctx context.Context, req CreateHolidayRequest) (HolidayResponse, error)
	UpdateHoliday(ctx context.Context, id string, req UpdateHolidayRequest) (HolidayResponse, error)
	DeleteHoliday(ctx context.Context, id string) error
}
