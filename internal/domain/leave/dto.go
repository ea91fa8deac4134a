package leave

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
)

type SubmitLeaveRequest struct {
	EmployeeID string  `json:"employee_id" validate:"omitempty,uuid"`
	LeaveType  string  `json:"leave_type" validate:"required,oneof=planned happy medical"`
	StartDate  string  `json:"start_date" validate:"required,date"`
	EndDate    string  `json:"end_date" validate:"required,date"`
	Reason     *string `json:"reason,omitempty" validate:"omitempty,max=2000"`
}

func (r *SubmitLeaveRequest) Validate() error {
	if r.Reason != nil {
		trimmed := strings.TrimSpace(*r.Reason)
		r.Reason = &trimmed
	}
	errs := validator.Check(r)
	if len(errs) > 0 {
		return errs
	}

	start, _ := validator.ParseDate(r.StartDate)
	end, _ := validator.ParseDate(r.EndDate)
	if end.Before(start) {
		return ErrInvalidDateRange
	}
	return nil
}

type ResolveLeaveRequest struct {
	Status string `json:"status" validate:"required,oneof=approved rejected"`
}

func (r *ResolveLeaveRequest) Validate() error {
	return validator.Check(r).Err()
}

type LeaveFilter struct {
	Status     *string `json:"status" validate:"omitempty,oneof=pending approved rejected"`
	EmployeeID *string `json:"employee_id" validate:"omitempty,uuid"`
}

func (f *LeaveFilter) Validate() error {
	return validator.Check(f).Err()
}

type LeaveResponse struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeName *string `json:"employee_name,omitempty"`
	Department   *string `json:"department,omitempty"`
	Position     *string `json:"position,omitempty"`
	LeaveType    string  `json:"leave_type"`
	StartDate    string  `json:"start_date"`
	EndDate      string  `json:"end_date"`
	Days         int     `json:"days"`
	Reason       *string `json:"reason"`
	Status       string  `json:"status"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at"`
}

func NewLeaveResponse(l LeaveRequest) LeaveResponse {
	return LeaveResponse{
		ID:         l.ID,
		EmployeeID: l.EmployeeID,
		LeaveType:  string(l.LeaveType),
		StartDate:  l.StartDate.Format(validator.DateLayout),
		EndDate:    l.EndDate.Format(validator.DateLayout),
		Days:       l.Days(),
		Reason:     l.Reason,
		Status:     string(l.Status),
		CreatedAt:  l.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  l.UpdatedAt.Format(time.RFC3339),
	}
}

func NewLeaveWithEmployeeResponse(l LeaveRequestWithEmployee) LeaveResponse {
	resp := NewLeaveResponse(l.LeaveRequest)
	name := l.EmployeeName
	resp.EmployeeName = &name
	resp.Department = l.Department
	resp.Position = l.Position
	return resp
}
