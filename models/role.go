package models

import "time"

type Role struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:100;uniqueIndex" json:"name"`

	Users []User `gorm:"many2many:user_roles" json:"-"`

	CreatedAt time.Time `json:"created_at"`
}

// AssignTo links the role and the user on both sides of the join.
// UserService persists the association; these helpers only keep the
// in-memory aggregates consistent.
func (r *Role) AssignTo(user *User) {
	for _, existing := range user.Roles {
		if existing.ID == r.ID {
			return
		}
	}
	user.Roles = append(user.Roles, *r)
	r.Users = append(r.Users, *user)
}

// RemoveFrom unlinks the role and the user on both sides of the join.
func (r *Role) RemoveFrom(user *User) {
	for i, existing := range user.Roles {
		if existing.ID == r.ID {
			user.Roles = append(user.Roles[:i], user.Roles[i+1:]...)
			break
		}
	}
	for i, member := range r.Users {
		if member.ID == user.ID {
			r.Users = append(r.Users[:i], r.Users[i+1:]...)
			break
		}
	}
}

// RemoveAllUsers detaches every member from the role.
func (r *Role) RemoveAllUsers() {
	members := make([]User, len(r.Users))
	copy(members, r.Users)
	for i := range members {
		r.RemoveFrom(&members[i])
	}
}
