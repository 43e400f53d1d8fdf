// Package controllers translates HTTP requests into service calls. Each
// controller resolves the caller into a policy.Identity and forwards it
// explicitly; no handler reads auth state after this boundary.
package controllers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/smartbytes/canteen/app/models"
	"github.com/smartbytes/canteen/app/policy"
	"github.com/smartbytes/canteen/pkg/middleware"
)

// identity resolves the verified token claims into the caller Identity.
// Returns the zero Identity for unauthenticated requests; the services
// answer those with an unauthenticated error.
func identity(r *http.Request) policy.Identity {
	claims, ok := middleware.ClaimsFromCtx(r.Context())
	if !ok {
		return policy.Identity{}
	}

	role, _ := models.ParseRole(claims.Role)
	return policy.Identity{
		UserID:   claims.UserID,
		Username: claims.Username,
		Role:     role,
	}
}

// idParam parses the {id} route parameter.
func idParam(r *http.Request) (uint, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
