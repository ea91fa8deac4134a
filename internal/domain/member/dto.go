package member

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type SubmitMemberRequest struct {
	Name   string `json:"name"`
	Number string `json:"number"`
}

func (r *SubmitMemberRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	r.Number = validator.NormalizePhone(r.Number)
	if r.Name == "" || r.Number == "" {
		return ErrNameNumberNeeded
	}
	var errs validator.ValidationErrors
	if !validator.IsValidPhoneNumber(r.Number) {
		errs.Add("number", "must be a valid phone number")
	}
	if len(r.Name) > 255 {
		errs.Add("name", "must be at most 255 characters")
	}
	return errs.Err()
}

// ApproveMemberRequest overrides the defaults of the employee created on approval.
type ApproveMemberRequest struct {
	EmploymentType *string          `json:"employment_type,omitempty" validate:"omitempty,oneof=hourly daily weekly"`
	WorkRate       *decimal.Decimal `json:"work_rate,omitempty"`
	Position       *string          `json:"position,omitempty" validate:"omitempty,max=255"`
	Department     *string          `json:"department,omitempty" validate:"omitempty,max=255"`
	Email          *string          `json:"email,omitempty" validate:"omitempty,email"`
}

func (r *ApproveMemberRequest) Validate() error {
	errs := validator.Check(r)
	if r.WorkRate != nil && r.WorkRate.IsNegative() {
		errs.Add("work_rate", "must be greater than or equal to 0")
	}
	return errs.Err()
}

type MemberResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Number    string `json:"number"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
}

func NewMemberResponse(m NewMember) MemberResponse {
	return MemberResponse{
		ID:        m.ID,
		Name:      m.Name,
		Number:    m.Number,
		Status:    m.Status,
		CreatedAt: m.CreatedAt.Format(time.RFC3339),
	}
}
