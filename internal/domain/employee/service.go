package employee

import "context"

type EmployeeService interface {
	ListEmployees(ctx context.Context, filter EmployeeFilter) ([]EmployeeResponse, error)
	GetEmployee(ctx context.Context, id string) (EmployeeResponse, error)
	// VerifyPhone is public and only exposes identity fields.
	VerifyPhone(ctx context.Context, phone string) (VerifyPhoneResponse, error)
	CreateEmployee(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	UpdateEmployee(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error)
	DeleteEmployee(ctx context.Context, id string) error
}
