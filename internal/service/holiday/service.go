package holiday

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/holiday"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
)

type HolidayServiceImpl struct {
	holidayRepo holiday.HolidayRepository
}

func NewHolidayService(holidayRepo holiday.HolidayRepository) holiday.HolidayService {
	return &HolidayServiceImpl{holidayRepo: holidayRepo}
}

// ListHolidays implements holiday.HolidayService.
func (s *HolidayServiceImpl) ListHolidays(ctx context.Context, filter holiday.HolidayFilter) ([]holiday.HolidayResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	holidays, err := s.holidayRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}

	responses := make([]holiday.HolidayResponse, 0, len(holidays))
	for _, h := range holidays {
		responses = append(responses, holiday.NewHolidayResponse(h))
	}
	return responses, nil
}

// CreateHoliday implements holiday.HolidayService.
func (s *HolidayServiceImpl) CreateHoliday(ctx context.Context, req holiday.CreateHolidayRequest) (holiday.HolidayResponse, error) {
	if err := req.Validate(); err != nil {
		return holiday.HolidayResponse{}, err
	}

	date, _ := validator.ParseDate(req.Date)
	created, err := s.holidayRepo.Create(ctx, holiday.Holiday{
		Name:        req.Name,
		Date:        date,
		Description: req.Description,
	})
	if err != nil {
		return holiday.HolidayResponse{}, err
	}
	return holiday.NewHolidayResponse(created), nil
}

// UpdateHoliday implements holiday.HolidayService.
func (s *HolidayServiceImpl) UpdateHoliday(ctx context.Context, id string, req holiday.UpdateHolidayRequest) (holiday.HolidayResponse, error) {
	if !validator.IsValidUUID(id) {
		return holiday.HolidayResponse{}, holiday.ErrHolidayNotFound
	}
	if err := req.Validate(); err != nil {
		return holiday.HolidayResponse{}, err
	}

	updated, err := s.holidayRepo.Update(ctx, id, req)
	if err != nil {
		return holiday.HolidayResponse{}, err
	}
	return holiday.NewHolidayResponse(updated), nil
}

// DeleteHoliday implements holiday.HolidayService.
func (s *HolidayServiceImpl) DeleteHoliday(ctx context.Context, id string) error {
	if !validator.IsValidUUID(id) {
		return holiday.ErrHolidayNotFound
	}
	return s.holidayRepo.Delete(ctx, id)
}
