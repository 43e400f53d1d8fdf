// Package rbac provides role-based route guards. The services perform the
// canonical authorization check; these guards reject obviously wrong
// callers at the edge before a body is even read.
package rbac

import (
	"net/http"

	"github.com/smartbytes/canteen/pkg/middleware"
	"github.com/smartbytes/canteen/pkg/response"
)

// HasRole returns middleware that allows only callers holding one of the
// given roles. Requires middleware.Auth to have run first.
func HasRole(roles ...string) func(http.Handler) http.Handler {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := middleware.RoleFromCtx(r)
			if !ok || !allowed[role] {
				response.Forbidden(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Guest blocks authenticated callers (login/register routes).
func Guest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := middleware.UserIDFromCtx(r); ok {
			response.Error(w, http.StatusConflict, "Already authenticated")
			return
		}
		next.ServeHTTP(w, r)
	})
}
