package dto

// CreateAdvisorRequest creates an advisor profile. The photo, when present,
// arrives as a multipart file alongside these form fields.
type CreateAdvisorRequest struct {
	Name   string  `form:"name" json:"name" binding:"required,min=2,max=100" example:"Dr. Binod Koirala"`
	Role   string  `form:"role" json:"role" binding:"required,min=2,max=100" example:"Faculty Advisor"`
	Email  string  `form:"email" json:"email" binding:"required,email" example:"binod.koirala@kin.org"`
	Mobile *string `form:"mobile" json:"mobile,omitempty"`
}

// UpdateAdvisorRequest updates advisor fields; nil fields are untouched
type UpdateAdvisorRequest struct {
	Name   *string `form:"name" json:"name,omitempty" binding:"omitempty,min=2,max=100"`
	Role   *string `form:"role" json:"role,omitempty" binding:"omitempty,min=2,max=100"`
	Email  *string `form:"email" json:"email,omitempty" binding:"omitempty,email"`
	Mobile *string `form:"mobile" json:"mobile,omitempty"`
}

// BulkCreateAdvisorsRequest creates several advisors at once
type BulkCreateAdvisorsRequest struct {
	Advisors []CreateAdvisorRequest `json:"advisors" binding:"required,min=1,dive"`
}

// BulkDeleteAdvisorsRequest deletes several advisors by id
type BulkDeleteAdvisorsRequest struct {
	IDs []int64 `json:"ids" binding:"required,min=1"`
}
