package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBookingGuestCountsStayInSync(t *testing.T) {
	var b Booking

	b.SetNumAdults(2)
	assert.Equal(t, 2, b.TotalGuests)

	b.SetNumChildren(3)
	assert.Equal(t, 5, b.TotalGuests)

	b.SetNumAdults(1)
	assert.Equal(t, 4, b.TotalGuests)

	b.SetNumChildren(0)
	assert.Equal(t, 1, b.TotalGuests)
}

func TestRoleMembershipHelpers(t *testing.T) {
	user := User{ID: 1, Email: "jane@example.com"}
	role := Role{ID: 7, Name: "ROLE_ADMIN"}

	role.AssignTo(&user)
	assert.True(t, user.HasRole("ROLE_ADMIN"))
	assert.Len(t, role.Users, 1)

	// Assigning twice does not duplicate the membership.
	role.AssignTo(&user)
	assert.Len(t, user.Roles, 1)

	role.RemoveFrom(&user)
	assert.False(t, user.HasRole("ROLE_ADMIN"))
	assert.Empty(t, role.Users)
}

func TestRemoveAllUsers(t *testing.T) {
	role := Role{ID: 7, Name: "ROLE_ADMIN"}
	a := User{ID: 1, Email: "a@example.com"}
	b := User{ID: 2, Email: "b@example.com"}

	role.AssignTo(&a)
	role.AssignTo(&b)
	assert.Len(t, role.Users, 2)

	role.RemoveAllUsers()
	assert.Empty(t, role.Users)
}
