// Package policy is the access policy guard. It resolves the caller into a
// single Identity value at the HTTP boundary and answers role-based
// authorization questions for the services. Ownership checks (caller owns
// the order/payment) are a second, data-dependent layer applied inside the
// order and payment services, not here.
package policy

import (
	"github.com/smartbytes/canteen/app/models"
	"github.com/smartbytes/canteen/pkg/apperr"
)

// Identity is the resolved caller: produced once from the verified JWT,
// then threaded explicitly through every service call. Services never read
// ambient/global auth state.
type Identity struct {
	UserID   uint
	Username string
	Role     models.Role
}

// IsManager reports whether the caller may act as canteen staff.
func (id Identity) IsManager() bool {
	return id.Role == models.RoleCanteenManager || id.Role == models.RoleAdmin
}

// Authorize allows the call when the caller holds one of the required roles.
func Authorize(caller Identity, required ...models.Role) error {
	if caller.UserID == 0 {
		return apperr.Unauthenticated("no authenticated caller")
	}
	for _, r := range required {
		if caller.Role == r {
			return nil
		}
	}
	return apperr.Forbidden("role %s is not permitted to perform this operation", caller.Role)
}
