package models

import (
	"time"
)

// Advisor defines an organization advisor based on the 'advisors' table.
// Advisors are standalone profiles, not linked to user accounts.
type Advisor struct {
	ID        int64     `json:"id" db:"id" example:"1"`
	Name      string    `json:"name" db:"name" example:"Dr. Binod Koirala"`
	Role      string    `json:"role" db:"role" example:"Faculty Advisor"`
	Email     string    `json:"email" db:"email" example:"binod.koirala@kin.org"`
	Mobile    *string   `json:"mobile,omitempty" db:"mobile"`
	Photo     *string   `json:"photo,omitempty" db:"photo"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}
