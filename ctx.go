package accounts

import "context"

var claimsCtxKey = &contextKey{"claims"}

type contextKey struct {
	name string
}

// WithClaimsContext sets the session Claims in the given context
func WithClaimsContext(r context.Context, claims Claims) context.Context {
	return context.WithValue(r, claimsCtxKey, claims)
}

// ClaimsFromContext extracts the session Claims from the standard context
func ClaimsFromContext(ctx context.Context) (Claims, bool) {
	raw, ok := ctx.Value(claimsCtxKey).(Claims)
	return raw, ok
}
