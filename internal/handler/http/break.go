package http

import (
	"net/http"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/breaks"
	"github.com/cmlabs-hris/attendance-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type BreakHandler interface {
	StartBreak(w http.ResponseWriter, r *http.Request)
	EndBreak(w http.ResponseWriter, r *http.Request)
	ListBreaks(w http.ResponseWriter, r *http.Request)
	MyBreaks(w http.ResponseWriter, r *http.Request)
}

type breakHandlerImpl struct {
	breakService breaks.BreakService
}

func NewBreakHandler(breakService breaks.BreakService) BreakHandler {
	return &breakHandlerImpl{breakService: breakService}
}

func (h *breakHandlerImpl) StartBreak(w http.ResponseWriter, r *http.Request) {
	var req breaks.StartBreakRequest
	if err := decodeJSON(r, &req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.breakService.StartBreak(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Break started", result)
}

func (h *breakHandlerImpl) EndBreak(w http.ResponseWriter, r *http.Request) {
	var req breaks.EndBreakRequest
	if err := decodeJSON(r, &req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.breakService.EndBreak(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Break ended", result)
}

func (h *breakHandlerImpl) ListBreaks(w http.ResponseWriter, r *http.Request) {
	filter := breaks.BreakFilter{
		Date:       queryString(r, "date"),
		EmployeeID: queryString(r, "employee_id"),
	}

	results, err := h.breakService.ListBreaks(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

func (h *breakHandlerImpl) MyBreaks(w http.ResponseWriter, r *http.Request) {
	results, err := h.breakService.ListByEmployee(r.Context(), chi.URLParam(r, "employee_id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}
