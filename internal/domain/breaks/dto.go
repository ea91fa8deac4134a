package breaks

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
)

type StartBreakRequest struct {
	EmployeeID string `json:"employee_id" validate:"omitempty,uuid"`
	Type       string `json:"type" validate:"omitempty,max=64"`
}

func (r *StartBreakRequest) Validate() error {
	r.Type = strings.TrimSpace(r.Type)
	if r.Type == "" {
		r.Type = DefaultType
	}
	return validator.Check(r).Err()
}

type EndBreakRequest struct {
	EmployeeID string `json:"employee_id" validate:"omitempty,uuid"`
}

func (r *EndBreakRequest) Validate() error {
	return validator.Check(r).Err()
}

type BreakFilter struct {
	Date       *string `json:"date" validate:"omitempty,date"`
	EmployeeID *string `json:"employee_id" validate:"omitempty,uuid"`
}

func (f *BreakFilter) Validate() error {
	return validator.Check(f).Err()
}

type BreakResponse struct {
	ID              string  `json:"id"`
	EmployeeID      string  `json:"employee_id"`
	EmployeeName    *string `json:"employee_name,omitempty"`
	Date            string  `json:"date"`
	StartTime       string  `json:"start_time"`
	EndTime         *string `json:"end_time"`
	DurationMinutes *int    `json:"duration_minutes"`
	Type            string  `json:"type"`
	CreatedAt       string  `json:"created_at"`
}

func NewBreakResponse(b BreakRecord) BreakResponse {
	resp := BreakResponse{
		ID:              b.ID,
		EmployeeID:      b.EmployeeID,
		Date:            b.Date.Format(validator.DateLayout),
		StartTime:       b.StartTime.Format(time.RFC3339),
		DurationMinutes: b.DurationMinutes,
		Type:            b.Type,
		CreatedAt:       b.CreatedAt.Format(time.RFC3339),
	}
	if b.EndTime != nil {
		s := b.EndTime.Format(time.RFC3339)
		resp.EndTime = &s
	}
	return resp
}

func NewBreakWithEmployeeResponse(b BreakWithEmployee) BreakResponse {
	resp := NewBreakResponse(b.BreakRecord)
	name := b.EmployeeName
	resp.EmployeeName = &name
	return resp
}
