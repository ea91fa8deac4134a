package member

import (
	"context"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/employee"
)

type MemberService interface {
	SubmitMember(ctx context.Context, req SubmitMemberRequest) (MemberResponse, error)
	ListMembers(ctx context.Context) ([]MemberResponse, error)
	// ApproveMember converts the member into an employee and removes it from the queue atomically.
	ApproveMember(ctx context.Context, id string, req ApproveMemberRequest) (employee.EmployeeResponse, error)
	RejectMember(ctx context.Context, id string) error
	DeleteMember(ctx context.Context, id string) error
}
