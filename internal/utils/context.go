package utils

import "context"

type ctxKey string

const (
	UserIDKey    ctxKey = "user_id"
	SellerIDKey  ctxKey = "seller_id"
	UserEmailKey ctxKey = "email"
	UserRoleKey  ctxKey = "role"
)

const (
	ProductStatusAvailable   = "AVAILABLE"
	ProductStatusUnavailable = "UNAVAILABLE"
)

// GetUserIDFromContext returns the authenticated user id, if any.
func GetUserIDFromContext(ctx context.Context) (uint, bool) {
	v := ctx.Value(UserIDKey)
	if v == nil {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}

// GetSellerIDFromContext returns the seller id attached to the caller's
// identity, or empty string for non-seller accounts.
func GetSellerIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(SellerIDKey).(string); ok {
		return v
	}
	return ""
}

func GetUserEmailFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(UserEmailKey).(string); ok {
		return v
	}
	return ""
}

func GetUserRoleFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(UserRoleKey).(string); ok {
		return v
	}
	return ""
}

func WithUserID(ctx context.Context, userID uint) context.Context {
	return context.WithValue(ctx, UserIDKey, userID)
}

func WithUserEmail(ctx context.Context, email string) context.Context {
	return context.WithValue(ctx, UserEmailKey, email)
}

func WithSellerID(ctx context.Context, sellerID string) context.Context {
	return context.WithValue(ctx, SellerIDKey, sellerID)
}

func WithUserRole(ctx context.Context, role string) context.Context {
	return context.WithValue(ctx, UserRoleKey, role)
}
