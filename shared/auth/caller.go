package auth

import "context"

// Caller is the identity a request acts on behalf of.
// The zero value is an anonymous caller.
type Caller struct {
	UserID        int64
	Authenticated bool
}

// Anonymous returns a caller with no identity
func Anonymous() Caller {
	return Caller{}
}

// User returns an authenticated caller for userID
func User(userID int64) Caller {
	return Caller{UserID: userID, Authenticated: true}
}

// IsAuthenticated reports whether the caller carries a verified identity
func (c Caller) IsAuthenticated() bool {
	return c.Authenticated && c.UserID > 0
}

// Is reports whether the caller is the authenticated user with the given id
func (c Caller) Is(userID int64) bool {
	return c.IsAuthenticated() && c.UserID == userID
}

type callerKey struct{}

// WithCaller returns a copy of ctx carrying caller
func WithCaller(ctx context.Context, caller Caller) context.Context {
	return context.WithValue(ctx, callerKey{}, caller)
}

// CallerFrom returns the caller stored in ctx, or an anonymous caller
func CallerFrom(ctx context.Context) Caller {
	caller, ok := ctx.Value(callerKey{}).(Caller)
	if !ok {
		return Anonymous()
	}
	return caller
}
