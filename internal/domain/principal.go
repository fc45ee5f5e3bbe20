package domain

// Principal is the authenticated caller taken from the access token
type Principal struct {
	UserID int64
	Roles  []Role
}

// HasRole returns true if the caller carries the role
func (p Principal) HasRole(role Role) bool {
	for _, r := range p.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// IsAdmin returns true for administrators
func (p Principal) IsAdmin() bool {
	return p.HasRole(RoleAdmin)
}

// IsStaff returns true for administrators and employees
func (p Principal) IsStaff() bool {
	return p.IsAdmin() || p.HasRole(RoleEmployee)
}

// Owns returns true if the booking was made by the caller's account
func (p Principal) Owns(b *Booking) bool {
	return b.CustomerID != nil && *b.CustomerID == p.UserID
}
