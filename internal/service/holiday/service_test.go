package holiday

import (
	"context"
	"sort"
	"testing"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/holiday"
	"github.com/cmlabs-hris/attendance-backend-go/internal/fixtures"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeHolidayRepo struct {
	holidays map[string]holiday.Holiday
}

func (f *fakeHolidayRepo) Create(_ context.Context, h holiday.Holiday) (holiday.Holiday, error) {
	h.ID = uuid.NewString()
	f.holidays[h.ID] = h
	return h, nil
}

func (f *fakeHolidayRepo) Update(_ context.Context, id string, req holiday.UpdateHolidayRequest) (holiday.Holiday, error) {
	h, ok := f.holidays[id]
	if !ok {
		return holiday.Holiday{}, holiday.ErrHolidayNotFound
	}
	if req.Name != nil {
		h.Name = *req.Name
	}
	if req.Date != nil {
		h.Date, _ = validator.ParseDate(*req.Date)
	}
	if req.Description != nil {
		h.Description = req.Description
	}
	f.holidays[id] = h
	return h, nil
}

func (f *fakeHolidayRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.holidays[id]; !ok {
		return holiday.ErrHolidayNotFound
	}
	delete(f.holidays, id)
	return nil
}

func (f *fakeHolidayRepo) List(_ context.Context, filter holiday.HolidayFilter) ([]holiday.Holiday, error) {
	var out []holiday.Holiday
	for _, h := range f.holidays {
		if filter.Year != nil && h.Date.Year() != *filter.Year {
			continue
		}
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func TestHolidayCRUD(t *testing.T) {
	ctx := context.Background()
	repo := &fakeHolidayRepo{holidays: map[string]holiday.Holiday{}}
	svc := NewHolidayService(repo)

	diwali, err := svc.CreateHoliday(ctx, holiday.CreateHolidayRequest{Name: " Diwali ", Date: "2024-11-01"})
	require.NoError(t, err)
	assert.Equal(t, "Diwali", diwali.Name)
	assert.Equal(t, "2024-11-01", diwali.Date)

	_, err = svc.CreateHoliday(ctx, holiday.CreateHolidayRequest{Name: "Republic Day", Date: "2025-01-26"})
	require.NoError(t, err)
	_, err = svc.CreateHoliday(ctx, holiday.CreateHolidayRequest{Name: "Holi", Date: "2024-03-25"})
	require.NoError(t, err)

	all, err := svc.ListHolidays(ctx, holiday.HolidayFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Holi", all[0].Name)

	thisYear, err := svc.ListHolidays(ctx, holiday.HolidayFilter{Year: fixtures.IntPtr(2024)})
	require.NoError(t, err)
	assert.Len(t, thisYear, 2)

	updated, err := svc.UpdateHoliday(ctx, diwali.ID, holiday.UpdateHolidayRequest{Date: fixtures.StrPtr("2024-10-31")})
	require.NoError(t, err)
	assert.Equal(t, "2024-10-31", updated.Date)
	assert.Equal(t, "Diwali", updated.Name)

	require.NoError(t, svc.DeleteHoliday(ctx, diwali.ID))
	assert.ErrorIs(t, svc.DeleteHoliday(ctx, diwali.ID), holiday.ErrHolidayNotFound)
	assert.ErrorIs(t, svc.DeleteHoliday(ctx, "x"), holiday.ErrHolidayNotFound)
}

func TestHolidayValidation(t *testing.T) {
	svc := NewHolidayService(&fakeHolidayRepo{holidays: map[string]holiday.Holiday{}})

	_, err := svc.CreateHoliday(context.Background(), holiday.CreateHolidayRequest{Name: "  ", Date: "tomorrow"})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "name")
	assert.Contains(t, verrs.ToMap(), "date")

	_, err = svc.UpdateHoliday(context.Background(), uuid.NewString(), holiday.UpdateHolidayRequest{})
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "body")

	_, err = svc.UpdateHoliday(context.Background(), uuid.NewString(), holiday.UpdateHolidayRequest{Name: fixtures.StrPtr("New")})
	assert.ErrorIs(t, err, holiday.ErrHolidayNotFound)

	_, err = svc.ListHolidays(context.Background(), holiday.HolidayFilter{Year: fixtures.IntPtr(12)})
	assert.ErrorAs(t, err, &verrs)
}
