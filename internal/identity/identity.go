// Package identity supplies the acting user id recorded on sync events.
// The engine consumes the Provider interface and never authenticates;
// transport layers decide who the actor is and put it on the context.
package identity

import "context"

type contextKey struct{}

// WithActor returns a context carrying the acting user id.
func WithActor(ctx context.Context, actor string) context.Context {
	return context.WithValue(ctx, contextKey{}, actor)
}

// ActorFrom extracts the acting user id from the context, or "".
func ActorFrom(ctx context.Context) string {
	if v, ok := ctx.Value(contextKey{}).(string); ok {
		return v
	}
	return ""
}

// Provider resolves the acting user for one operation.
type Provider interface {
	UserID(ctx context.Context) string
}

// ContextProvider reads the actor from the context, falling back to a
// fixed id when none is present.
type ContextProvider struct {
	Fallback string
}

func (p ContextProvider) UserID(ctx context.Context) string {
	if a := ActorFrom(ctx); a != "" {
		return a
	}
	if p.Fallback != "" {
		return p.Fallback
	}
	return "anonymous"
}

// Static always reports the same user id. Useful in tests and single-user
// tooling.
type Static string

func (s Static) UserID(context.Context) string { return string(s) }
