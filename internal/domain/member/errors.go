package member

import "errors"

var (
	ErrMemberNotFound   = errors.New("Member not found")
	ErrNameNumberNeeded = errors.New("Name and Number are required")
)
