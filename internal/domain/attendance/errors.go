package attendance

import "errors"

var (
	ErrAlreadyClockedIn   = errors.New("Employee already clocked in today")
	ErrNoActiveSession    = errors.New("No active clock-in found for today")
	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrEmployeeIDRequired = errors.New("employee_id is required")
)
