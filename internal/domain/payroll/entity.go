package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// PayrollRecord - monthly pay for one employee
type PayrollRecord struct {
	ID          string
	EmployeeID  string
	Month       int
	Year        int
	PresentDays int
	TotalDays   int
	GrossSalary decimal.Decimal
	NetPayable  decimal.Decimal
	Status      PayrollStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Joined fields
	EmployeeName *string
	Department   *string
	Position     *string
}

// PayrollStatus enum
type PayrollStatus string

const (
	PayrollStatusDraft    PayrollStatus = "draft"
	PayrollStatusApproved PayrollStatus = "approved"
	PayrollStatusPaid     PayrollStatus = "paid"
)

func (s PayrollStatus) rank() int {
	switch s {
	case PayrollStatusDraft:
		return 0
	case PayrollStatusApproved:
		return 1
	case PayrollStatusPaid:
		return 2
	default:
		return -1
	}
}

// CanTransitionTo allows exactly one step forward: draft -> approved -> paid.
func (s PayrollStatus) CanTransitionTo(next PayrollStatus) bool {
	return s.rank() >= 0 && next.rank() == s.rank()+1
}

// GrossSalary is workRate / totalDays * presentDays, rounded to 2 decimals.
func GrossSalary(workRate decimal.Decimal, totalDays, presentDays int) decimal.Decimal {
	if totalDays <= 0 || presentDays <= 0 {
		return decimal.Zero
	}
	return workRate.
		Div(decimal.NewFromInt(int64(totalDays))).
		Mul(decimal.NewFromInt(int64(presentDays))).
		Round(2)
}
