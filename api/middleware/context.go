package middleware

import "context"

type contextKey string

const (
	ctxProfileID   contextKey = "profile_id"
	ctxProfileType contextKey = "profile_type"
)

func ProfileIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxProfileID).(string); ok {
		return v
	}
	return ""
}

func ProfileTypeFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxProfileType).(string); ok {
		return v
	}
	return ""
}

// WithProfileID injects the profile identifier into the context.
func WithProfileID(ctx context.Context, profileID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxProfileID, profileID)
}

// WithProfileType injects the profile type into the context for downstream handlers.
func WithProfileType(ctx context.Context, profileType string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxProfileType, profileType)
}
