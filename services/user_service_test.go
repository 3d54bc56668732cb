package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndAuthenticate(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)

	user, err := svc.RegisterUser("Jane", "Doe", "Jane.Doe@Example.com", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, "jane.doe@example.com", user.Email, "email normalized to lower case")
	assert.NotEqual(t, "s3cret-pass", user.Password, "password stored hashed")

	authed, err := svc.Authenticate("jane.doe@example.com", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, user.ID, authed.ID)

	_, err = svc.Authenticate("jane.doe@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Authenticate("nobody@example.com", "whatever")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)

	_, err := svc.RegisterUser("Jane", "Doe", "jane@example.com", "s3cret-pass")
	require.NoError(t, err)

	_, err = svc.RegisterUser("Janet", "Doe", "jane@example.com", "other-pass")
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestRoleMembership(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)

	user, err := svc.RegisterUser("Jane", "Doe", "jane@example.com", "s3cret-pass")
	require.NoError(t, err)

	role, err := svc.CreateRole("ROLE_MANAGER")
	require.NoError(t, err)

	_, err = svc.CreateRole("ROLE_MANAGER")
	assert.ErrorIs(t, err, ErrRoleAlreadyExists)

	assigned, err := svc.AssignRoleToUser(user.ID, role.ID)
	require.NoError(t, err)
	assert.True(t, assigned.HasRole("ROLE_MANAGER"))

	reloaded, err := svc.GetUserByID(user.ID)
	require.NoError(t, err)
	assert.True(t, reloaded.HasRole("ROLE_MANAGER"))

	removed, err := svc.RemoveRoleFromUser(user.ID, role.ID)
	require.NoError(t, err)
	assert.False(t, removed.HasRole("ROLE_MANAGER"))

	// Removing an absent membership is a no-op.
	_, err = svc.RemoveRoleFromUser(user.ID, role.ID)
	assert.NoError(t, err)

	_, err = svc.AssignRoleToUser(user.ID, 999)
	assert.ErrorIs(t, err, ErrRoleNotFound)

	_, err = svc.AssignRoleToUser(999, role.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
