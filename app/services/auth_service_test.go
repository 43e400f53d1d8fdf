package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartbytes/canteen/app/models"
	"github.com/smartbytes/canteen/pkg/apperr"
	"github.com/smartbytes/canteen/pkg/auth"
)

func TestRegister(t *testing.T) {
	setupDB(t)
	svc := NewAuthService()

	resp, err := svc.Register(RegisterInput{
		Username: "ravi",
		Email:    "ravi@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, models.RoleStudent, resp.User.Role)

	claims, err := auth.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)
	assert.Equal(t, "ravi", claims.Username)

	_, err = svc.Register(RegisterInput{Username: "ravi", Email: "other@example.com", Password: "secret123"})
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))

	_, err = svc.Register(RegisterInput{Username: "other", Email: "ravi@example.com", Password: "secret123"})
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))

	_, err = svc.Register(RegisterInput{Username: "shorty", Email: "shorty@example.com", Password: "abc"})
	assert.Equal(t, apperr.KindInvalidArgument, apperr.KindOf(err))

	_, err = svc.Register(RegisterInput{Username: "x", Email: "x@example.com", Password: "secret123", Role: "SUPERUSER"})
	assert.Equal(t, apperr.KindInvalidArgument, apperr.KindOf(err))

	ngo, err := svc.Register(RegisterInput{Username: "foodbank", Email: "ngo@example.com", Password: "secret123", Role: "NGO"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleNGO, ngo.User.Role)
}

func TestLogin(t *testing.T) {
	setupDB(t)
	svc := NewAuthService()

	_, err := svc.Register(RegisterInput{Username: "ravi", Email: "ravi@example.com", Password: "secret123"})
	require.NoError(t, err)

	resp, err := svc.Login(LoginInput{Username: "ravi", Password: "secret123"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "ravi", resp.User.Username)

	_, err = svc.Login(LoginInput{Username: "ravi", Password: "wrong"})
	assert.Equal(t, apperr.KindUnauthenticated, apperr.KindOf(err))

	_, err = svc.Login(LoginInput{Username: "nobody", Password: "secret123"})
	assert.Equal(t, apperr.KindUnauthenticated, apperr.KindOf(err))
}
