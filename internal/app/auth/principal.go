package auth

import (
	"github.com/kin-platform/kin-backend/internal/app/models"
)

// Principal is the authenticated caller, extracted from the access token by
// the auth middleware and passed down to services. Services never read the
// transport directly.
type Principal struct {
	ID   int64
	Role models.Role
}

// IsAdmin reports whether the principal holds an admin-level role
func (p Principal) IsAdmin() bool {
	return p.Role == models.RoleAdmin || p.Role == models.RoleSuperAdmin
}

// IsSuperAdmin reports whether the principal is the root account
func (p Principal) IsSuperAdmin() bool {
	return p.Role == models.RoleSuperAdmin
}

// CanAccessUser reports whether the principal may read or modify the given
// user's record. Users reach only their own record; admins reach everyone.
func (p Principal) CanAccessUser(userID int64) bool {
	return p.ID == userID || p.IsAdmin()
}
