// Package user provides the narrow user directory the ticket core consults:
// who a user is, whether they exist, and whether their role is privileged.
package user

import (
	"fmt"

	"github.com/visitra-hq/visitra/internal/shared/authorization"
)

type User struct {
	id     uint
	email  string
	name   string
	role   authorization.UserRole
	hostID *uint
}

// ReconstructUser rebuilds a user from persistence.
func ReconstructUser(id uint, email, name string, role authorization.UserRole, hostID *uint) (*User, error) {
	if id == 0 {
		return nil, fmt.Errorf("user ID cannot be zero")
	}
	if !role.IsValid() {
		return nil, fmt.Errorf("invalid role: %s", role)
	}

	return &User{
		id:     id,
		email:  email,
		name:   name,
		role:   role,
		hostID: hostID,
	}, nil
}

func (u *User) ID() uint {
	return u.id
}

func (u *User) Email() string {
	return u.email
}

func (u *User) Name() string {
	return u.name
}

func (u *User) Role() authorization.UserRole {
	return u.role
}

// HostID is the user's organizational host context, if any. It is snapshot
// onto tickets the user creates.
func (u *User) HostID() *uint {
	return u.hostID
}

func (u *User) IsPrivileged() bool {
	return u.role.IsPrivileged()
}
