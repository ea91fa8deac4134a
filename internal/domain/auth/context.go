package auth

import "context"

type principalKey struct{}

func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

func PrincipalFrom(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok
}

// ResolveEmployeeID picks the employee a request acts on. Employees always act on
// themselves; owners must name the employee explicitly.
func ResolveEmployeeID(ctx context.Context, requested string) (string, error) {
	p, ok := PrincipalFrom(ctx)
	if !ok {
		return "", ErrNoToken
	}
	if p.IsOwner() {
		return requested, nil
	}
	if requested != "" && requested != p.EmployeeID {
		return "", ErrAccessDenied
	}
	return p.EmployeeID, nil
}
