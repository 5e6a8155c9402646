package httpapi

import (
	"context"

	"github.com/editathon/contest-api/internal/domain/user"
)

type contextKey string

const principalContextKey contextKey = "auth_principal"

func withPrincipal(ctx context.Context, p user.Principal) context.Context {
	return context.WithValue(ctx, principalContextKey, p)
}

func principalFromContext(ctx context.Context) (user.Principal, bool) {
	p, ok := ctx.Value(principalContextKey).(user.Principal)
	return p, ok
}

// optionalPrincipal adapts the context lookup for read endpoints that
// serve anonymous callers too.
func optionalPrincipal(ctx context.Context) *user.Principal {
	p, ok := principalFromContext(ctx)
	if !ok {
		return nil
	}
	return &p
}
