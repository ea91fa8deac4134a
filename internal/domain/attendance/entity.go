package attendance

import (
	"time"

	"github.com/shopspring/decimal"
)

type Attendance struct {
	ID         string
	EmployeeID string
	Date       time.Time
	SignIn     time.Time
	SignOut    *time.Time
	Status     Status
	TotalHours *decimal.Decimal
	CreatedAt  time.Time
}

// AttendanceWithEmployee is an attendance row joined with the employee's identity fields.
type AttendanceWithEmployee struct {
	Attendance
	EmployeeName string
	Position     *string
	Department   *string
}

type Status string

const (
	StatusPresent Status = "present"
	StatusLate    Status = "late"
	StatusAbsent  Status = "absent"
	StatusOnLeave Status = "on-leave"
)

func (a Attendance) IsOpen() bool {
	return a.SignOut == nil
}

var hour = decimal.NewFromInt(int64(time.Hour))

// WorkedHours returns (signOut - signIn) in hours rounded to 2 decimals. Never negative.
func WorkedHours(signIn, signOut time.Time) decimal.Decimal {
	d := signOut.Sub(signIn)
	if d <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(d)).Div(hour).Round(2)
}
