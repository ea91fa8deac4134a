package attendance

import "context"

type AttendanceService interface {
	ClockIn(ctx context.Context, req ClockRequest) (AttendanceResponse, error)
	ClockOut(ctx context.Context, req ClockRequest) (AttendanceResponse, error)
	ListAttendance(ctx context.Context, filter AttendanceFilter) ([]AttendanceResponse, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]AttendanceResponse, error)
	UpdateStatus(ctx context.Context, id string, req UpdateStatusRequest) (AttendanceResponse, error)
}
