package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

type Employee struct {
	ID                   string
	FullName             string
	DOB                  *time.Time
	JoiningDate          time.Time
	EmploymentType       EmploymentType
	WorkRate             decimal.Decimal
	Position             *string
	Department           *string
	Shift                *Shift
	Phone                *string
	Email                *string
	MonthCalculationType MonthCalculationType
	PFEnabled            bool
	ESIEnabled           bool
	TDSEnabled           bool
	AllowedLeaves        int
	TakenLeaves          int
	Status               Status
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

type EmploymentType string

const (
	EmploymentTypeHourly EmploymentType = "hourly"
	EmploymentTypeDaily  EmploymentType = "daily"
	EmploymentTypeWeekly EmploymentType = "weekly"
)

type Shift string

const (
	ShiftMorning Shift = "morning"
	ShiftEvening Shift = "evening"
	ShiftNight   Shift = "night"
	ShiftCustom  Shift = "custom"
)

type MonthCalculationType string

const (
	MonthCalculationCalendar MonthCalculationType = "calendar"
	MonthCalculationFixed26  MonthCalculationType = "fixed_26"
)

type Status string

const (
	StatusActive   Status = "active"
	StatusOnLeave  Status = "on-leave"
	StatusInactive Status = "inactive"
)

const DefaultAllowedLeaves = 12

// TotalDays is the payroll divisor for the employee's month calculation type.
func (m MonthCalculationType) TotalDays() int {
	if m == MonthCalculationFixed26 {
		return 26
	}
	return 30
}
