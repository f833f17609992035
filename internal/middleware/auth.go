package middleware

import (
	"net/http"
	"strings"

	"artisan-be/internal/user"
	"artisan-be/internal/utils"
)

// AuthMiddleware is passive: requests without a Bearer token pass through
// anonymous, and the resolver layer decides what needs identity. A Bearer
// token that is present but invalid or expired is rejected outright.
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			next.ServeHTTP(w, r)
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := user.ParseJWT(tokenStr)
		if err != nil {
			utils.WriteJSONError(w, "invalid or expired token", http.StatusUnauthorized)
			return
		}

		ctx := utils.WithUserID(r.Context(), claims.UserID)
		ctx = utils.WithUserEmail(ctx, claims.Email)
		ctx = utils.WithUserRole(ctx, claims.Role)
		if claims.SellerID != nil {
			ctx = utils.WithSellerID(ctx, *claims.SellerID)
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
