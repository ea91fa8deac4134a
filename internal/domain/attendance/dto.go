package attendance

import (
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
)

type ClockRequest struct {
	EmployeeID string `json:"employee_id" validate:"omitempty,uuid"`
}

func (r *ClockRequest) Validate() error {
	return validator.Check(r).Err()
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=present late absent on-leave"`
}

func (r *UpdateStatusRequest) Validate() error {
	return validator.Check(r).Err()
}

type AttendanceFilter struct {
	Date       *string `json:"date" validate:"omitempty,date"`
	StartDate  *string `json:"start_date" validate:"omitempty,date"`
	EndDate    *string `json:"end_date" validate:"omitempty,date"`
	EmployeeID *string `json:"employee_id" validate:"omitempty,uuid"`
	Status     *string `json:"status" validate:"omitempty,oneof=present late absent on-leave"`
}

func (f *AttendanceFilter) Validate() error {
	errs := validator.Check(f)
	if f.StartDate != nil && f.EndDate != nil && *f.EndDate < *f.StartDate {
		errs.Add("end_date", "End date cannot be before start date")
	}
	return errs.Err()
}

type AttendanceResponse struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeName *string `json:"employee_name,omitempty"`
	Position     *string `json:"position,omitempty"`
	Department   *string `json:"department,omitempty"`
	Date         string  `json:"date"`
	SignIn       string  `json:"sign_in"`
	SignOut      *string `json:"sign_out"`
	Status       string  `json:"status"`
	TotalHours   *string `json:"total_hours"`
	CreatedAt    string  `json:"created_at"`
}

func NewAttendanceResponse(a Attendance) AttendanceResponse {
	resp := AttendanceResponse{
		ID:         a.ID,
		EmployeeID: a.EmployeeID,
		Date:       a.Date.Format(validator.DateLayout),
		SignIn:     a.SignIn.Format(time.RFC3339),
		Status:     string(a.Status),
		CreatedAt:  a.CreatedAt.Format(time.RFC3339),
	}
	if a.SignOut != nil {
		s := a.SignOut.Format(time.RFC3339)
		resp.SignOut = &s
	}
	if a.TotalHours != nil {
		s := a.TotalHours.StringFixed(2)
		resp.TotalHours = &s
	}
	return resp
}

func NewAttendanceWithEmployeeResponse(a AttendanceWithEmployee) AttendanceResponse {
	resp := NewAttendanceResponse(a.Attendance)
	name := a.EmployeeName
	resp.EmployeeName = &name
	resp.Position = a.Position
	resp.Department = a.Department
	return resp
}
