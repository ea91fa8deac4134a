package employee

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateEmployeeRequest struct {
	FullName             string          `json:"full_name" validate:"required,max=255"`
	DOB                  *string         `json:"dob,omitempty" validate:"omitempty,date"`
	JoiningDate          string          `json:"joining_date" validate:"required,date"`
	EmploymentType       string          `json:"employment_type" validate:"required,oneof=hourly daily weekly"`
	WorkRate             decimal.Decimal `json:"work_rate"`
	Position             *string         `json:"position,omitempty" validate:"omitempty,max=255"`
	Department           *string         `json:"department,omitempty" validate:"omitempty,max=255"`
	Shift                *string         `json:"shift,omitempty" validate:"omitempty,oneof=morning evening night custom"`
	Phone                *string         `json:"phone,omitempty" validate:"omitempty,phone"`
	Email                *string         `json:"email,omitempty" validate:"omitempty,email"`
	MonthCalculationType string          `json:"month_calculation_type" validate:"omitempty,oneof=calendar fixed_26"`
	PFEnabled            bool            `json:"pf_enabled"`
	ESIEnabled           bool            `json:"esi_enabled"`
	TDSEnabled           bool            `json:"tds_enabled"`
	AllowedLeaves        *int            `json:"allowed_leaves,omitempty" validate:"omitempty,gte=0"`
	Status               string          `json:"status" validate:"omitempty,oneof=active on-leave inactive"`
}

func (r *CreateEmployeeRequest) Validate() error {
	r.FullName = strings.TrimSpace(r.FullName)
	r.Phone = normalizePhone(r.Phone)
	r.Email = normalizeEmail(r.Email)

	errs := validator.Check(r)
	if r.WorkRate.IsNegative() {
		errs.Add("work_rate", "must be greater than or equal to 0")
	}
	return errs.Err()
}

// ToEmployee applies defaults. Call after Validate.
func (r CreateEmployeeRequest) ToEmployee() Employee {
	emp := Employee{
		FullName:             r.FullName,
		EmploymentType:       EmploymentType(r.EmploymentType),
		WorkRate:             r.WorkRate.Round(2),
		Position:             r.Position,
		Department:           r.Department,
		Phone:                r.Phone,
		Email:                r.Email,
		MonthCalculationType: MonthCalculationCalendar,
		PFEnabled:            r.PFEnabled,
		ESIEnabled:           r.ESIEnabled,
		TDSEnabled:           r.TDSEnabled,
		AllowedLeaves:        DefaultAllowedLeaves,
		Status:               StatusActive,
	}
	emp.JoiningDate, _ = validator.ParseDate(r.JoiningDate)
	if r.DOB != nil {
		if dob, err := validator.ParseDate(*r.DOB); err == nil {
			emp.DOB = &dob
		}
	}
	if r.Shift != nil {
		shift := Shift(*r.Shift)
		emp.Shift = &shift
	}
	if r.MonthCalculationType != "" {
		emp.MonthCalculationType = MonthCalculationType(r.MonthCalculationType)
	}
	if r.AllowedLeaves != nil {
		emp.AllowedLeaves = *r.AllowedLeaves
	}
	if r.Status != "" {
		emp.Status = Status(r.Status)
	}
	return emp
}

// UpdateEmployeeRequest is a partial update; nil fields are left unchanged.
type UpdateEmployeeRequest struct {
	FullName             *string          `json:"full_name,omitempty" validate:"omitempty,min=1,max=255"`
	DOB                  *string          `json:"dob,omitempty" validate:"omitempty,date"`
	JoiningDate          *string          `json:"joining_date,omitempty" validate:"omitempty,date"`
	EmploymentType       *string          `json:"employment_type,omitempty" validate:"omitempty,oneof=hourly daily weekly"`
	WorkRate             *decimal.Decimal `json:"work_rate,omitempty"`
	Position             *string          `json:"position,omitempty" validate:"omitempty,max=255"`
	Department           *string          `json:"department,omitempty" validate:"omitempty,max=255"`
	Shift                *string          `json:"shift,omitempty" validate:"omitempty,oneof=morning evening night custom"`
	Phone                *string          `json:"phone,omitempty" validate:"omitempty,phone"`
	Email                *string          `json:"email,omitempty" validate:"omitempty,email"`
	MonthCalculationType *string          `json:"month_calculation_type,omitempty" validate:"omitempty,oneof=calendar fixed_26"`
	PFEnabled            *bool            `json:"pf_enabled,omitempty"`
	ESIEnabled           *bool            `json:"esi_enabled,omitempty"`
	TDSEnabled           *bool            `json:"tds_enabled,omitempty"`
	AllowedLeaves        *int             `json:"allowed_leaves,omitempty" validate:"omitempty,gte=0"`
	TakenLeaves          *int             `json:"taken_leaves,omitempty" validate:"omitempty,gte=0"`
	Status               *string          `json:"status,omitempty" validate:"omitempty,oneof=active on-leave inactive"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	if r.FullName != nil {
		trimmed := strings.TrimSpace(*r.FullName)
		r.FullName = &trimmed
	}
	r.Phone = normalizePhone(r.Phone)
	r.Email = normalizeEmail(r.Email)

	errs := validator.Check(r)
	if r.WorkRate != nil && r.WorkRate.IsNegative() {
		errs.Add("work_rate", "must be greater than or equal to 0")
	}
	return errs.Err()
}

func (r UpdateEmployeeRequest) IsEmpty() bool {
	return r == UpdateEmployeeRequest{}
}

type EmployeeFilter struct {
	Status *string `json:"status" validate:"omitempty,oneof=active on-leave inactive"`
}

func (f EmployeeFilter) Validate() error {
	return validator.Check(f).Err()
}

type EmployeeResponse struct {
	ID                   string  `json:"id"`
	FullName             string  `json:"full_name"`
	DOB                  *string `json:"dob"`
	JoiningDate          string  `json:"joining_date"`
	EmploymentType       string  `json:"employment_type"`
	WorkRate             string  `json:"work_rate"`
	Position             *string `json:"position"`
	Department           *string `json:"department"`
	Shift                *string `json:"shift"`
	Phone                *string `json:"phone"`
	Email                *string `json:"email"`
	MonthCalculationType string  `json:"month_calculation_type"`
	PFEnabled            bool    `json:"pf_enabled"`
	ESIEnabled           bool    `json:"esi_enabled"`
	TDSEnabled           bool    `json:"tds_enabled"`
	AllowedLeaves        int     `json:"allowed_leaves"`
	TakenLeaves          int     `json:"taken_leaves"`
	Status               string  `json:"status"`
	CreatedAt            string  `json:"created_at"`
	UpdatedAt            string  `json:"updated_at"`
}

func NewEmployeeResponse(e Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:                   e.ID,
		FullName:             e.FullName,
		JoiningDate:          e.JoiningDate.Format(validator.DateLayout),
		EmploymentType:       string(e.EmploymentType),
		WorkRate:             e.WorkRate.StringFixed(2),
		Position:             e.Position,
		Department:           e.Department,
		Phone:                e.Phone,
		Email:                e.Email,
		MonthCalculationType: string(e.MonthCalculationType),
		PFEnabled:            e.PFEnabled,
		ESIEnabled:           e.ESIEnabled,
		TDSEnabled:           e.TDSEnabled,
		AllowedLeaves:        e.AllowedLeaves,
		TakenLeaves:          e.TakenLeaves,
		Status:               string(e.Status),
		CreatedAt:            e.CreatedAt.Format(time.RFC3339),
		UpdatedAt:            e.UpdatedAt.Format(time.RFC3339),
	}
	if e.DOB != nil {
		s := e.DOB.Format(validator.DateLayout)
		resp.DOB = &s
	}
	if e.Shift != nil {
		s := string(*e.Shift)
		resp.Shift = &s
	}
	return resp
}

type VerifyPhoneResponse struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
	Status   string `json:"status"`
}

func normalizePhone(phone *string) *string {
	if phone == nil {
		return nil
	}
	p := validator.NormalizePhone(*phone)
	if p == "" {
		return nil
	}
	return &p
}

func normalizeEmail(email *string) *string {
	if email == nil {
		return nil
	}
	e := strings.ToLower(strings.TrimSpace(*email))
	if e == "" {
		return nil
	}
	return &e
}
