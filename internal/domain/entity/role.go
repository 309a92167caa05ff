package entity

// Role determines the authorization tier of a user account.
type Role string

const (
	// RoleUser is the default role for registered accounts.
	RoleUser Role = "USER"
	// RoleAdmin bypasses every capability check except account self-deletion.
	RoleAdmin Role = "ADMIN"
)

// Valid reports whether the role is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}
