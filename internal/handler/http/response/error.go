package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/breaks"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/holiday"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/member"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidOTP),
		errors.Is(err, auth.ErrOTPNotFound),
		errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrNoToken),
		errors.Is(err, auth.ErrOwnerAccessRequired),
		errors.Is(err, auth.ErrAccessDenied):
		Forbidden(w, err.Error())
	case errors.Is(err, auth.ErrAdminNotFound):
		NotFound(w, err.Error())
	case errors.Is(err, auth.ErrEmailExists):
		BadRequest(w, "Email already registered", nil)

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrPhoneExists):
		BadRequest(w, "Phone number already registered", nil)
	case errors.Is(err, employee.ErrEmailExists):
		BadRequest(w, "Email already registered", nil)
	case errors.Is(err, employee.ErrInvalidStatus):
		BadRequest(w, err.Error(), nil)

	// Attendance and break errors
	case errors.Is(err, attendance.ErrAlreadyClockedIn),
		errors.Is(err, breaks.ErrAlreadyOnBreak):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, attendance.ErrEmployeeIDRequired):
		BadRequest(w, err.Error(), map[string]string{"employee_id": "is required"})
	case errors.Is(err, attendance.ErrNoActiveSession),
		errors.Is(err, attendance.ErrAttendanceNotFound),
		errors.Is(err, breaks.ErrNoActiveBreak):
		NotFound(w, err.Error())

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrInvalidDateRange):
		BadRequest(w, err.Error(), map[string]string{"end_date": err.Error()})

	case errors.Is(err, holiday.ErrHolidayNotFound):
		NotFound(w, "Holiday not found")

	case errors.Is(err, member.ErrMemberNotFound):
		NotFound(w, err.Error())
	case errors.Is(err, member.ErrNameNumberNeeded):
		BadRequest(w, err.Error(), nil)

	// Payroll domain errors
	case errors.Is(err, payroll.ErrPayrollRecordNotFound):
		NotFound(w, "Payroll record not found")
	case errors.Is(err, payroll.ErrInvalidPeriod),
		errors.Is(err, payroll.ErrInvalidTransition):
		BadRequest(w, err.Error(), nil)

	// Default
	default:
		slog.Error("unhandled error", "error", err)
		InternalServerError(w, err.Error())
	}
}
