package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartbytes/canteen/app/models"
	"github.com/smartbytes/canteen/pkg/apperr"
)

func TestUserAdministration(t *testing.T) {
	setupDB(t)
	svc := NewUserService()
	admin := asIdentity(seedUser(t, "admin", models.RoleAdmin))
	student := seedUser(t, "student", models.RoleStudent)

	users, err := svc.All(admin)
	require.NoError(t, err)
	assert.Len(t, users, 2)

	promoted, err := svc.UpdateRole(admin, student.ID, "CANTEEN_MANAGER")
	require.NoError(t, err)
	assert.Equal(t, models.RoleCanteenManager, promoted.Role)

	_, err = svc.UpdateRole(admin, student.ID, "CHEF")
	assert.Equal(t, apperr.KindInvalidArgument, apperr.KindOf(err))

	_, err = svc.UpdateRole(admin, admin.UserID, "STUDENT")
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))

	_, err = svc.UpdateRole(asIdentity(student), admin.UserID, "STUDENT")
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))

	_, err = svc.Get(admin, 9999)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	err = svc.Delete(admin, admin.UserID)
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))

	require.NoError(t, svc.Delete(admin, student.ID))

	users, err = svc.All(admin)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}
