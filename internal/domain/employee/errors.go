package employee

import "errors"

var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrPhoneExists      = errors.New("phone number already registered")
	ErrEmailExists      = errors.New("email already registered")
	ErrInvalidStatus    = errors.New("invalid employee status")
)
