package dto

// CreateCommitteeRequest creates a new executive committee
type CreateCommitteeRequest struct {
	Name        string  `json:"name" binding:"required,min=2,max=150" example:"Executive Committee 2081"`
	Description *string `json:"description,omitempty"`
	StartYear   int     `json:"startYear" binding:"required,min=2000" example:"2024"`
	EndYear     int     `json:"endYear" binding:"required,gtefield=StartYear" example:"2026"`
	IsActive    *bool   `json:"isActive,omitempty" example:"true"`
}

// UpdateCommitteeRequest updates committee fields; nil fields are untouched
type UpdateCommitteeRequest struct {
	Name        *string `json:"name,omitempty" binding:"omitempty,min=2,max=150"`
	Description *string `json:"description,omitempty"`
	StartYear   *int    `json:"startYear,omitempty" binding:"omitempty,min=2000"`
	EndYear     *int    `json:"endYear,omitempty"`
	IsActive    *bool   `json:"isActive,omitempty"`
}

// AddMemberRequest assigns a user to a committee with a position. Index
// orders the member within the roster; a pointer keeps index 0 valid.
type AddMemberRequest struct {
	CommitteeID int64  `json:"committeeId" binding:"required" example:"1"`
	UserID      int64  `json:"userId" binding:"required" example:"7"`
	Position    string `json:"position" binding:"required,min=2,max=100" example:"President"`
	Index       *int   `json:"index" binding:"required,min=0" example:"0"`
}

// UpdateMemberRequest updates an existing member assignment
type UpdateMemberRequest struct {
	Position *string `json:"position,omitempty" binding:"omitempty,min=2,max=100" example:"Vice President"`
	Index    *int    `json:"index,omitempty" binding:"omitempty,min=0" example:"1"`
}
