package member

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/member"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/utils"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type MemberServiceImpl struct {
	tx           database.Transactor
	memberRepo   member.MemberRepository
	employeeRepo employee.EmployeeRepository
	loc          *time.Location
	now          func() time.Time
}

func NewMemberService(
	tx database.Transactor,
	memberRepo member.MemberRepository,
	employeeRepo employee.EmployeeRepository,
	loc *time.Location,
) member.MemberService {
	return &MemberServiceImpl{
		tx:           tx,
		memberRepo:   memberRepo,
		employeeRepo: employeeRepo,
		loc:          loc,
		now:          time.Now,
	}
}

// SubmitMember implements member.MemberService.
func (s *MemberServiceImpl) SubmitMember(ctx context.Context, req member.SubmitMemberRequest) (member.MemberResponse, error) {
	if err := req.Validate(); err != nil {
		return member.MemberResponse{}, err
	}

	created, err := s.memberRepo.Create(ctx, member.NewMember{
		Name:   req.Name,
		Number: req.Number,
		Status: member.StatusPending,
	})
	if err != nil {
		return member.MemberResponse{}, err
	}

	slog.Info("new member queued", "member_id", created.ID)
	return member.NewMemberResponse(created), nil
}

// ListMembers implements member.MemberService.
func (s *MemberServiceImpl) ListMembers(ctx context.Context) ([]member.MemberResponse, error) {
	members, err := s.memberRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}

	responses := make([]member.MemberResponse, 0, len(members))
	for _, m := range members {
		responses = append(responses, member.NewMemberResponse(m))
	}
	return responses, nil
}

// ApproveMember implements member.MemberService.
func (s *MemberServiceImpl) ApproveMember(ctx context.Context, id string, req member.ApproveMemberRequest) (employee.EmployeeResponse, error) {
	if !validator.IsValidUUID(id) {
		return employee.EmployeeResponse{}, member.ErrMemberNotFound
	}
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	var created employee.Employee
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		m, err := s.memberRepo.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}

		created, err = s.employeeRepo.Create(ctx, s.employeeFromMember(m, req))
		if err != nil {
			return err
		}
		return s.memberRepo.Delete(ctx, id)
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	slog.Info("member approved", "member_id", id, "employee_id", created.ID)
	return employee.NewEmployeeResponse(created), nil
}

// employeeFromMember joins today as a daily worker with a zero rate unless req says otherwise.
func (s *MemberServiceImpl) employeeFromMember(m member.NewMember, req member.ApproveMemberRequest) employee.Employee {
	phone := m.Number
	emp := employee.Employee{
		FullName:             m.Name,
		JoiningDate:          utils.DateIn(s.now(), s.loc),
		EmploymentType:       employee.EmploymentTypeDaily,
		WorkRate:             decimal.Zero,
		Position:             req.Position,
		Department:           req.Department,
		Phone:                &phone,
		MonthCalculationType: employee.MonthCalculationCalendar,
		AllowedLeaves:        employee.DefaultAllowedLeaves,
		Status:               employee.StatusActive,
	}
	if req.EmploymentType != nil {
		emp.EmploymentType = employee.EmploymentType(*req.EmploymentType)
	}
	if req.WorkRate != nil {
		emp.WorkRate = req.WorkRate.Round(2)
	}
	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		emp.Email = &email
	}
	return emp
}

// RejectMember implements member.MemberService.
func (s *MemberServiceImpl) RejectMember(ctx context.Context, id string) error {
	if err := s.DeleteMember(ctx, id); err != nil {
		return err
	}
	slog.Info("member rejected", "member_id", id)
	return nil
}

// DeleteMember implements member.MemberService.
func (s *MemberServiceImpl) DeleteMember(ctx context.Context, id string) error {
	if !validator.IsValidUUID(id) {
		return member.ErrMemberNotFound
	}
	return s.memberRepo.Delete(ctx, id)
}
