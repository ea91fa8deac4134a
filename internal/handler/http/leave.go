package http

import (
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/attendance-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type LeaveHandler interface {
	SubmitLeave(w http.ResponseWriter, r *http.Request)
	ListLeaves(w http.ResponseWriter, r *http.Request)
	ResolveLeave(w http.ResponseWriter, r *http.Request)
	MyLeaves(w http.ResponseWriter, r *http.Request)
}

type LeaveHandlerImpl struct {
	leaveService leave.LeaveService
}

func NewLeaveHandler(leaveService leave.LeaveService) LeaveHandler {
	return &LeaveHandlerImpl{leaveService: leaveService}
}

// SubmitLeave implements LeaveHandler.
func (l *LeaveHandlerImpl) SubmitLeave(w http.ResponseWriter, r *http.Request) {
	var req leave.SubmitLeaveRequest
	if err := decodeJSON(r, &req); err != nil {
		slog.Error("SubmitLeave decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := l.leaveService.SubmitLeave(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave request submitted", result)
}

// ListLeaves implements LeaveHandler.
func (l *LeaveHandlerImpl) ListLeaves(w http.ResponseWriter, r *http.Request) {
	filter := leave.LeaveFilter{
		Status:     queryString(r, "status"),
		EmployeeID: queryString(r, "employee_id"),
	}

	results, err := l.leaveService.ListLeaves(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

// ResolveLeave implements LeaveHandler.
func (l *LeaveHandlerImpl) ResolveLeave(w http.ResponseWriter, r *http.Request) {
	var req leave.ResolveLeaveRequest
	if err := decodeJSON(r, &req); err != nil {
		slog.Error("ResolveLeave decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := l.leaveService.ResolveLeave(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request "+result.Status, result)
}

// MyLeaves implements LeaveHandler.
func (l *LeaveHandlerImpl) MyLeaves(w http.ResponseWriter, r *http.Request) {
	results, err := l.leaveService.ListByEmployee(r.Context(), chi.URLParam(r, "employee_id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}
