// Package identity carries the authenticated caller through a request's
// context.Context, from the authentication middleware down to the services.
package identity

import "context"

type ctxKey struct{}

// Identity is the subject established from a bearer token. Permissions are
// not derived from the token and stay empty.
type Identity struct {
	Subject     string
	Permissions []string
}

// IsAnonymous reports whether no subject was established.
func (i Identity) IsAnonymous() bool {
	return i.Subject == ""
}

func NewContext(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromContext returns the identity attached to ctx, or the anonymous identity.
func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(ctxKey{}).(Identity)
	if !ok || id.IsAnonymous() {
		return Identity{}, false
	}
	return id, true
}
