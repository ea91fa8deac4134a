package breaks

import "time"

const DefaultType = "General"

type BreakRecord struct {
	ID              string
	EmployeeID      string
	Date            time.Time
	StartTime       time.Time
	EndTime         *time.Time
	DurationMinutes *int
	Type            string
	CreatedAt       time.Time
}

type BreakWithEmployee struct {
	BreakRecord
	EmployeeName string
}

// DurationMinutes returns whole minutes between start and end, floored and never negative.
func DurationMinutes(start, end time.Time) int {
	d := end.Sub(start)
	if d <= 0 {
		return 0
	}
	return int(d / time.Minute)
}
