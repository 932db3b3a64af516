package myauth

import (
	"context"
	"slices"

	"github.com/MarcGrol/userarea/lib/mycontext"
)

const (
	RoleTrademark = "ROLE_TRADEMARK"
	RoleDesign    = "ROLE_DESIGN"
)

// Principal is the authenticated caller
type Principal struct {
	Username string
	Roles    []string
}

func (p Principal) HasRole(role string) bool {
	return slices.Contains(p.Roles, role)
}

type ctxPrincipalKey struct{}

func WithPrincipal(c context.Context, p Principal) context.Context {
	return context.WithValue(mycontext.WithUser(c, p.Username), ctxPrincipalKey{}, p)
}

func PrincipalFromContext(c context.Context) (Principal, bool) {
	p, ok := c.Value(ctxPrincipalKey{}).(Principal)
	return p, ok
}
