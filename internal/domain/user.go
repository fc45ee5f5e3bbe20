package domain

import "strings"

// Role is a capability tag attached to a user
type Role string

const (
	RoleUser     Role = "ROLE_USER"
	RoleEmployee Role = "ROLE_EMPLOYEE"
	RoleAdmin    Role = "ROLE_ADMIN"
)

// User is a customer or an employee (guide), distinguished by roles
type User struct {
	ID        int64
	Username  string
	FirstName string
	LastName  string
	Phone     *string
	Enabled   bool
	Roles     []Role
}

// HasRole returns true if the user carries the role
func (u *User) HasRole(role Role) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// IsEmployee returns true for enabled users with the employee role
func (u *User) IsEmployee() bool {
	return u.Enabled && u.HasRole(RoleEmployee)
}

// FullName returns "First Last", falling back to the username
func (u *User) FullName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.Username
	}
	return name
}
