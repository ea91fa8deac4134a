package payroll

import "context"

type PayrollService interface {
	CalculatePayroll(ctx context.Context, period PeriodRequest) ([]PayrollResponse, error)
	ListPayroll(ctx context.Context, filter PayrollFilter) ([]PayrollResponse, error)
	UpdateStatus(ctx context.Context, id string, req UpdateStatusRequest) (PayrollResponse, error)
	// ExportPayroll renders stored records of the period as an xlsx workbook.
	ExportPayroll(ctx context.Context, period PeriodRequest) (filename string, content []byte, err error)
}
