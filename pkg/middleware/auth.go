package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/smartbytes/canteen/pkg/auth"
	"github.com/smartbytes/canteen/pkg/response"
)

type claimsKey struct{}

// Auth verifies the Bearer token and stores the claims in the request
// context. Downstream handlers read them via ClaimsFromCtx.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			response.Unauthorized(w)
			return
		}

		token := strings.TrimPrefix(header, "Bearer ")
		if token == "" {
			response.Unauthorized(w)
			return
		}

		claims, err := auth.ValidateToken(token)
		if err != nil {
			response.Unauthorized(w)
			return
		}

		ctx := context.WithValue(r.Context(), claimsKey{}, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ClaimsFromCtx returns the verified token claims stored by Auth.
func ClaimsFromCtx(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(*auth.Claims)
	return claims, ok
}

// UserIDFromCtx returns the authenticated user's id.
func UserIDFromCtx(r *http.Request) (uint, bool) {
	claims, ok := ClaimsFromCtx(r.Context())
	if !ok {
		return 0, false
	}
	return claims.UserID, true
}

// RoleFromCtx returns the authenticated user's role name.
func RoleFromCtx(r *http.Request) (string, bool) {
	claims, ok := ClaimsFromCtx(r.Context())
	if !ok {
		return "", false
	}
	return claims.Role, true
}
