package payroll

import (
	"strconv"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
)

type PeriodRequest struct {
	Month int `json:"month" validate:"gte=1,lte=12"`
	Year  int `json:"year" validate:"gte=2000,lte=9999"`
}

// ParsePeriod validates raw month/year path values.
func ParsePeriod(month, year string) (PeriodRequest, error) {
	var errs validator.ValidationErrors
	m, err := strconv.Atoi(month)
	if err != nil {
		errs.Add("month", "must be a number")
	}
	y, err := strconv.Atoi(year)
	if err != nil {
		errs.Add("year", "must be a number")
	}
	if len(errs) > 0 {
		return PeriodRequest{}, errs
	}

	p := PeriodRequest{Month: m, Year: y}
	return p, p.Validate()
}

func (p PeriodRequest) Validate() error {
	return validator.Check(p).Err()
}

type PayrollFilter struct {
	Month      *int    `json:"month" validate:"omitempty,gte=1,lte=12"`
	Year       *int    `json:"year" validate:"omitempty,gte=2000,lte=9999"`
	EmployeeID *string `json:"employee_id" validate:"omitempty,uuid"`
	Status     *string `json:"status" validate:"omitempty,oneof=draft approved paid"`
}

func (f *PayrollFilter) Validate() error {
	return validator.Check(f).Err()
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=approved paid"`
}

func (r *UpdateStatusRequest) Validate() error {
	return validator.Check(r).Err()
}

type PayrollResponse struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeName *string `json:"employee_name,omitempty"`
	Department   *string `json:"department,omitempty"`
	Position     *string `json:"position,omitempty"`
	Month        int     `json:"month"`
	Year         int     `json:"year"`
	PresentDays  int     `json:"present_days"`
	TotalDays    int     `json:"total_days"`
	GrossSalary  string  `json:"gross_salary"`
	NetPayable   string  `json:"net_payable"`
	Status       string  `json:"status"`
	UpdatedAt    string  `json:"updated_at"`
}

func NewPayrollResponse(r PayrollRecord) PayrollResponse {
	return PayrollResponse{
		ID:           r.ID,
		EmployeeID:   r.EmployeeID,
		EmployeeName: r.EmployeeName,
		Department:   r.Department,
		Position:     r.Position,
		Month:        r.Month,
		Year:         r.Year,
		PresentDays:  r.PresentDays,
		TotalDays:    r.TotalDays,
		GrossSalary:  r.GrossSalary.StringFixed(2),
		NetPayable:   r.NetPayable.StringFixed(2),
		Status:       string(r.Status),
		UpdatedAt:    r.UpdatedAt.Format(time.RFC3339),
	}
}
