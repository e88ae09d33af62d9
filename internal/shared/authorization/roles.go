// Package authorization defines the user roles the ticket core cares about.
// Admins and support agents are privileged: they see internal comments, may
// be assigned complaints, and may read any ticket.
package authorization

type UserRole string

const (
	RoleAdmin UserRole = "admin"
	RoleAgent UserRole = "support_agent"
	RoleUser  UserRole = "user"
)

func (r UserRole) String() string {
	return string(r)
}

func (r UserRole) IsAdmin() bool {
	return r == RoleAdmin
}

// IsPrivileged reports whether the role may see internal comments and
// tickets owned by other users.
func (r UserRole) IsPrivileged() bool {
	return r == RoleAdmin || r == RoleAgent
}

func (r UserRole) IsValid() bool {
	return r == RoleAdmin || r == RoleAgent || r == RoleUser
}

func ParseUserRole(s string) UserRole {
	role := UserRole(s)
	if role.IsValid() {
		return role
	}
	return RoleUser
}
