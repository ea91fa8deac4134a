package leave

import (
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/utils"
)

type LeaveRequest struct {
	ID         string
	EmployeeID string
	LeaveType  LeaveType
	StartDate  time.Time
	EndDate    time.Time
	Reason     *string
	Status     Status
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type LeaveRequestWithEmployee struct {
	LeaveRequest
	EmployeeName string
	Department   *string
	Position     *string
}

type LeaveType string

const (
	LeaveTypePlanned LeaveType = "planned"
	LeaveTypeHappy   LeaveType = "happy"
	LeaveTypeMedical LeaveType = "medical"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Days is the inclusive number of calendar days the request covers.
func (l LeaveRequest) Days() int {
	return utils.InclusiveDays(l.StartDate, l.EndDate)
}

// TakenLeavesDelta is the change to the employee's taken_leaves when the request moves from one status to another.
func TakenLeavesDelta(from, to Status, days int) int {
	switch {
	case from != StatusApproved && to == StatusApproved:
		return days
	case from == StatusApproved && to != StatusApproved:
		return -days
	default:
		return 0
	}
}
