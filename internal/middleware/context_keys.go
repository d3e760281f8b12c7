package middleware

import "context"

// companyIDKey and userIDKey hold the authenticated identities in the request
// context. Every core operation is parameterized by the company id taken from
// here, never from client-supplied fields.
const (
	companyIDKey = contextKey("companyID")
	userIDKey    = contextKey("userID")
)

// GetCompanyIDFromCtx retrieves the authenticated company id.
func GetCompanyIDFromCtx(ctx context.Context) (string, bool) {
	companyID, ok := ctx.Value(companyIDKey).(string)
	return companyID, ok && companyID != ""
}

// GetUserIDFromCtx retrieves the authenticated user id.
func GetUserIDFromCtx(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDKey).(string)
	return userID, ok && userID != ""
}

// WithCompanyID returns a context carrying the given company id. Intended for
// tests and internal callers outside the HTTP path.
func WithCompanyID(ctx context.Context, companyID string) context.Context {
	return context.WithValue(ctx, companyIDKey, companyID)
}

// WithUserID returns a context carrying the given user id.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}
