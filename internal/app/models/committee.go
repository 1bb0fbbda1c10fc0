package models

import (
	"time"
)

// Committee defines an executive committee based on the 'committees' table
type Committee struct {
	ID          int64     `json:"id" db:"id" example:"1"`
	Name        string    `json:"name" db:"name" example:"Executive Committee 2081"`
	Description *string   `json:"description,omitempty" db:"description"`
	StartYear   int       `json:"startYear" db:"start_year" example:"2024"`
	EndYear     int       `json:"endYear" db:"end_year" example:"2026"`
	IsActive    bool      `json:"isActive" db:"is_active" example:"true"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`

	// Members is populated on detail reads, ordered by Index ascending
	Members []MembershipAssignment `json:"members,omitempty"`
}

// MembershipAssignment ties a user to a committee with a position, based on
// the 'committee_members' table. A user appears at most once per committee.
type MembershipAssignment struct {
	ID          int64     `json:"id" db:"id" example:"10"`
	CommitteeID int64     `json:"committeeId" db:"committee_id" example:"1"`
	UserID      int64     `json:"userId" db:"user_id" example:"7"`
	Position    string    `json:"position" db:"position" example:"President"`
	// Index orders members within a committee roster; lower comes first.
	// Ties keep insertion order.
	Index     int       `json:"index" db:"position_index" example:"0"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`

	// User is the joined member profile, populated on roster reads
	User *User `json:"user,omitempty"`
}
