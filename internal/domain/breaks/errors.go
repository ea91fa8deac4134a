package breaks

import "errors"

var (
	ErrAlreadyOnBreak = errors.New("You are already on a break!")
	ErrNoActiveBreak  = errors.New("No active break found to end")
)
