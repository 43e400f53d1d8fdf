package policy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/smartbytes/canteen/app/models"
	"github.com/smartbytes/canteen/app/policy"
	"github.com/smartbytes/canteen/pkg/apperr"
)

func TestAuthorizeAllowsMatchingRole(t *testing.T) {
	student := policy.Identity{UserID: 1, Username: "sam", Role: models.RoleStudent}
	assert.NoError(t, policy.Authorize(student, models.RoleStudent))
	assert.NoError(t, policy.Authorize(student, models.RoleCanteenManager, models.RoleStudent))
}

func TestAuthorizeRejectsWrongRole(t *testing.T) {
	ngo := policy.Identity{UserID: 4, Username: "foodbank", Role: models.RoleNGO}
	err := policy.Authorize(ngo, models.RoleCanteenManager, models.RoleAdmin)
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
}

func TestAuthorizeRejectsAnonymous(t *testing.T) {
	err := policy.Authorize(policy.Identity{}, models.RoleStudent)
	assert.Equal(t, apperr.KindUnauthenticated, apperr.KindOf(err))
}

func TestIsManager(t *testing.T) {
	assert.True(t, policy.Identity{UserID: 2, Role: models.RoleCanteenManager}.IsManager())
	assert.True(t, policy.Identity{UserID: 3, Role: models.RoleAdmin}.IsManager())
	assert.False(t, policy.Identity{UserID: 1, Role: models.RoleStudent}.IsManager())
	assert.False(t, policy.Identity{UserID: 4, Role: models.RoleNGO}.IsManager())
}
