package breaks

import "context"

type BreakService interface {
	StartBreak(ctx context.Context, req StartBreakRequest) (BreakResponse, error)
	EndBreak(ctx context.Context, req EndBreakRequest) (BreakResponse, error)
	ListBreaks(ctx context.Context, filter BreakFilter) ([]BreakResponse, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]BreakResponse, error)
}
