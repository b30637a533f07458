package auth

import (
	"context"
	"errors"
)

type Role string

const (
	RoleAdmin Role = "admin"
)

var ErrPermissionDenied = errors.New("permission denied")

type Principal interface {
	Name() string
}

type Authentication interface {
	Principal() Principal
	Roles() []Role
}

type (
	SimpleAuth struct {
		principal Principal
		roles     []Role
	}
	SimplePrincipal struct {
		name string
	}
)

func NewSimpleAuth(name string, roles ...Role) *SimpleAuth {
	return &SimpleAuth{principal: &SimplePrincipal{name: name}, roles: roles}
}

func (s *SimplePrincipal) Name() string {
	return s.name
}

func (s *SimpleAuth) Principal() Principal {
	return s.principal
}

func (s *SimpleAuth) Roles() []Role {
	return s.roles
}

var (
	_    Authentication = (*SimpleAuth)(nil)
	anon                = NewSimpleAuth("anon")
)

type authCtxKey struct{}

func AddAuthToContext(ctx context.Context, a Authentication) context.Context {
	return context.WithValue(ctx, authCtxKey{}, a)
}

// FromContext returns nil if no authentication was stored in ctx
func FromContext(ctx context.Context) Authentication {
	if ctx == nil {
		return nil
	}
	if val, ok := ctx.Value(authCtxKey{}).(Authentication); ok {
		return val
	}
	return nil
}
