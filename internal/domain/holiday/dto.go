package holiday

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
)

type CreateHolidayRequest struct {
	Name        string  `json:"name" validate:"required,max=255"`
	Date        string  `json:"date" validate:"required,date"`
	Description *string `json:"description,omitempty"`
}

func (r *CreateHolidayRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	return validator.Check(r).Err()
}

type UpdateHolidayRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Date        *string `json:"date,omitempty" validate:"omitempty,date"`
	Description *string `json:"description,omitempty"`
}

func (r *UpdateHolidayRequest) Validate() error {
	if r.Name != nil {
		trimmed := strings.TrimSpace(*r.Name)
		r.Name = &trimmed
	}
	errs := validator.Check(r)
	if r.Name == nil && r.Date == nil && r.Description == nil {
		errs.Add("body", "at least one field is required")
	}
	return errs.Err()
}

type HolidayFilter struct {
	Year *int `json:"year" validate:"omitempty,gte=1900,lte=9999"`
}

func (f *HolidayFilter) Validate() error {
	return validator.Check(f).Err()
}

type HolidayResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Date        string  `json:"date"`
	Description *string `json:"description"`
	CreatedAt   string  `json:"created_at"`
}

func NewHolidayResponse(h Holiday) HolidayResponse {
	return HolidayResponse{
		ID:          h.ID,
		Name:        h.Name,
		Date:        h.Date.Format(validator.DateLayout),
		Description: h.Description,
		CreatedAt:   h.CreatedAt.Format(time.RFC3339),
	}
}
