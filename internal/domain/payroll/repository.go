package payroll

import "context"

type PayrollRepository interface {
	// CountPresentDays returns, per employee, the attendance rows in the month whose status is present or late.
	CountPresentDays(ctx context.Context, month, year int) (map[string]int, error)
	// UpsertDraft writes the computed record unless an approved or paid record exists for the period,
	// in which case the stored record is returned unchanged.
	UpsertDraft(ctx context.Context, record PayrollRecord) (PayrollRecord, error)
	GetByID(ctx context.Context, id string) (PayrollRecord, error)
	UpdateStatus(ctx context.Context, id string, status PayrollStatus) (PayrollRecord, error)
	List(ctx context.Context, filter PayrollFilter) ([]PayrollRecord, error)
}
