package http

import (
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/attendance-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/export"
	"github.com/go-chi/chi/v5"
)

type PayrollHandler interface {
	CalculatePayroll(w http.ResponseWriter, r *http.Request)
	ListPayroll(w http.ResponseWriter, r *http.Request)
	UpdateStatus(w http.ResponseWriter, r *http.Request)
	ExportPayroll(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &payrollHandlerImpl{payrollService: payrollService}
}

// periodFromURL reads {month}/{year}. Non-numeric values become 0 and fail range validation.
func periodFromURL(r *http.Request) payroll.PeriodRequest {
	month, _ := strconv.Atoi(chi.URLParam(r, "month"))
	year, _ := strconv.Atoi(chi.URLParam(r, "year"))
	return payroll.PeriodRequest{Month: month, Year: year}
}

// CalculatePayroll handles GET /api/payroll/calculate/{month}/{year}
func (h *payrollHandlerImpl) CalculatePayroll(w http.ResponseWriter, r *http.Request) {
	results, err := h.payrollService.CalculatePayroll(r.Context(), periodFromURL(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

// ListPayroll handles GET /api/payroll
func (h *payrollHandlerImpl) ListPayroll(w http.ResponseWriter, r *http.Request) {
	month, err := queryInt(r, "month")
	if err != nil {
		response.BadRequest(w, "Invalid month", map[string]string{"month": "must be a number"})
		return
	}
	year, err := queryInt(r, "year")
	if err != nil {
		response.BadRequest(w, "Invalid year", map[string]string{"year": "must be a number"})
		return
	}

	filter := payroll.PayrollFilter{
		Month:      month,
		Year:       year,
		EmployeeID: queryString(r, "employee_id"),
		Status:     queryString(r, "status"),
	}

	results, err := h.payrollService.ListPayroll(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

// UpdateStatus handles PUT /api/payroll/{id}/status
func (h *payrollHandlerImpl) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req payroll.UpdateStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.payrollService.UpdateStatus(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ExportPayroll handles GET /api/payroll/export/{month}/{year}
func (h *payrollHandlerImpl) ExportPayroll(w http.ResponseWriter, r *http.Request) {
	filename, content, err := h.payrollService.ExportPayroll(r.Context(), periodFromURL(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.File(w, export.XLSXContentType, filename, content)
}
