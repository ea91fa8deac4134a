package leave

import "errors"

var (
	ErrLeaveRequestNotFound = errors.New("Leave request not found")
	ErrInvalidDateRange     = errors.New("End date cannot be before start date")
)
