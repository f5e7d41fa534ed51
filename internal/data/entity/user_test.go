package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserRoleCanModerate(t *testing.T) {
	assert.False(t, RoleUser.CanModerate())
	assert.True(t, RoleModerator.CanModerate())
	assert.True(t, RoleAdmin.CanModerate())
	assert.False(t, UserRole("visitor").CanModerate())
}

func TestUserIsAdmin(t *testing.T) {
	assert.True(t, (&User{Role: RoleAdmin}).IsAdmin())
	assert.False(t, (&User{Role: RoleModerator}).IsAdmin())
	assert.False(t, (&User{Role: RoleUser}).IsAdmin())
}
