package http

import (
	"net/http"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/member"
	"github.com/cmlabs-hris/attendance-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type MemberHandler interface {
	SubmitMember(w http.ResponseWriter, r *http.Request)
	ListMembers(w http.ResponseWriter, r *http.Request)
	ApproveMember(w http.ResponseWriter, r *http.Request)
	RejectMember(w http.ResponseWriter, r *http.Request)
	DeleteMember(w http.ResponseWriter, r *http.Request)
}

type memberHandlerImpl struct {
	memberService member.MemberService
}

func NewMemberHandler(memberService member.MemberService) MemberHandler {
	return &memberHandlerImpl{memberService: memberService}
}

// SubmitMember handles POST /api/members
func (h *memberHandlerImpl) SubmitMember(w http.ResponseWriter, r *http.Request) {
	var req member.SubmitMemberRequest
	if err := decodeJSON(r, &req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.memberService.SubmitMember(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Member submitted", result)
}

// ListMembers handles GET /api/members
func (h *memberHandlerImpl) ListMembers(w http.ResponseWriter, r *http.Request) {
	results, err := h.memberService.ListMembers(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

// ApproveMember handles POST /api/members/{id}/approve
func (h *memberHandlerImpl) ApproveMember(w http.ResponseWriter, r *http.Request) {
	var req member.ApproveMemberRequest
	if err := decodeJSON(r, &req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.memberService.ApproveMember(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Member approved", result)
}

// RejectMember handles POST /api/members/{id}/reject
func (h *memberHandlerImpl) RejectMember(w http.ResponseWriter, r *http.Request) {
	if err := h.memberService.RejectMember(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Member rejected", nil)
}

// DeleteMember handles DELETE /api/members/{id}
func (h *memberHandlerImpl) DeleteMember(w http.ResponseWriter, r *http.Request) {
	if err := h.memberService.DeleteMember(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Member deleted", nil)
}
