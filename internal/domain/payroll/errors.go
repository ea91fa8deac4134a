package payroll

import "errors"

var (
	ErrPayrollRecordNotFound = errors.New("payroll record not found")
	ErrInvalidPeriod         = errors.New("invalid payroll period")
	ErrInvalidTransition     = errors.New("payroll status can only move forward from draft to approved to paid")
)
