package models

import (
	"time"
)

// Role is a user's authorization level
type Role string

const (
	// RoleUser is a regular verified member
	RoleUser Role = "user"
	// RoleAdmin can manage users, committees and content
	RoleAdmin Role = "admin"
	// RoleSuperAdmin is the immutable root account
	RoleSuperAdmin Role = "superAdmin"
)

// IsValid reports whether the role is one of the known values
func (r Role) IsValid() bool {
	switch r {
	case RoleUser, RoleAdmin, RoleSuperAdmin:
		return true
	}
	return false
}

// User defines the user model based on the 'users' table
type User struct {
	ID       int64   `json:"id" db:"id" example:"1"`
	Name     string  `json:"name" db:"name" example:"Aroosh Sharma"`
	Email    string  `json:"email" db:"email" example:"user@kin.org"`
	Password string  `json:"-" db:"password"` // hashed, excluded from JSON
	Mobile   *string `json:"mobile,omitempty" db:"mobile" example:"+9779812345678"`
	Gender   *string `json:"gender,omitempty" db:"gender" example:"male"`
	Photo    *string `json:"photo,omitempty" db:"photo" example:"uploads/photos/abc.jpg"`
	Role     Role    `json:"role" db:"role" example:"user"`
	// IsVerified flips to true once the activation code is confirmed
	IsVerified bool `json:"isVerified" db:"is_verified" example:"true"`
	IsBanned   bool `json:"isBanned" db:"is_banned" example:"false"`
	// TokenVersion invalidates outstanding one-time code tokens when bumped
	TokenVersion int       `json:"-" db:"token_version"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at" example:"2024-01-01T10:00:00Z"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at" example:"2024-01-02T15:30:00Z"`
}

// CanLogin reports whether the account may receive an access token
func (u *User) CanLogin() bool {
	return u.IsVerified && !u.IsBanned
}

// IsAdministrator reports whether the user holds an admin-level role
func (u *User) IsAdministrator() bool {
	return u.Role == RoleAdmin || u.Role == RoleSuperAdmin
}
