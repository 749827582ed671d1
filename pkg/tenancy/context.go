package tenancy

import (
	"context"
	"log/slog"
)

// contextKey is a private type to prevent collisions with other context keys.
type contextKey struct{}

// WithContext attaches a tenant context to ctx.
func WithContext(ctx context.Context, tc Context) context.Context {
	return context.WithValue(ctx, contextKey{}, tc)
}

// FromContext retrieves the tenant context from ctx.
// Returns a zero Context and false if none is attached.
func FromContext(ctx context.Context) (Context, bool) {
	tc, ok := ctx.Value(contextKey{}).(Context)
	return tc, ok
}

// MustFromContext retrieves the tenant context from ctx and panics if
// none is attached. Use only in code paths that cannot run outside a
// tenant scope.
func MustFromContext(ctx context.Context) Context {
	tc, ok := FromContext(ctx)
	if !ok {
		panic("tenancy: no tenant context in context")
	}
	return tc
}

// LoggerExtractor returns a logger context extractor that adds the
// effective tenant id to every log record emitted within a tenant scope.
func LoggerExtractor() func(ctx context.Context) (slog.Attr, bool) {
	return func(ctx context.Context) (slog.Attr, bool) {
		tc, ok := FromContext(ctx)
		if !ok {
			return slog.Attr{}, false
		}
		if t := tc.EffectiveTenant(); t != nil {
			return slog.String("tenant_id", t.String()), true
		}
		return slog.String("tenant_id", "platform"), true
	}
}

// PrincipalLoggerExtractor returns a logger context extractor that adds
// the principal id to every log record emitted within a tenant scope.
func PrincipalLoggerExtractor() func(ctx context.Context) (slog.Attr, bool) {
	return func(ctx context.Context) (slog.Attr, bool) {
		tc, ok := FromContext(ctx)
		if !ok {
			return slog.Attr{}, false
		}
		return slog.String("principal_id", tc.PrincipalID().String()), true
	}
}
