package member

import "context"

type MemberRepository interface {
	Create(ctx context.Context, m NewMember) (NewMember, error)
	GetByIDForUpdate(ctx context.Context, id string) (NewMember, error)
	List(ctx context.Context) ([]NewMember, error)
	Delete(ctx context.Context, id string) error
}
