package dto

// AddUserRequest creates an account on behalf of a user. Accounts created
// this way are verified immediately and skip the activation workflow.
type AddUserRequest struct {
	Name     string  `json:"name" binding:"required,min=2,max=100" example:"Aroosh Sharma"`
	Email    string  `json:"email" binding:"required,email" example:"user@kin.org"`
	Password string  `json:"password" binding:"required,min=6" example:"secret123"`
	Role     string  `json:"role,omitempty" binding:"omitempty,oneof=user admin" example:"user"`
	Gender   *string `json:"gender,omitempty" binding:"omitempty,oneof=male female other" example:"male"`
	Mobile   *string `json:"mobile,omitempty" example:"+9779812345678"`
}

// UpdateUserRequest updates a user's own profile fields. Email, role and
// verification state are not updatable here.
type UpdateUserRequest struct {
	Name   *string `json:"name,omitempty" binding:"omitempty,min=2,max=100" example:"Aroosh Sharma"`
	Gender *string `json:"gender,omitempty" binding:"omitempty,oneof=male female other" example:"male"`
	Mobile *string `json:"mobile,omitempty" example:"+9779812345678"`
}

// UpdatePasswordRequest changes the caller's own password
type UpdatePasswordRequest struct {
	OldPassword string `json:"oldPassword" binding:"required" example:"secret123"`
	NewPassword string `json:"newPassword" binding:"required,min=6" example:"newsecret123"`
}

// UpdateRoleRequest changes a user's role. superAdmin is not assignable.
type UpdateRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=user admin" example:"admin"`
}

// BulkCreateUsersRequest creates several verified accounts at once
type BulkCreateUsersRequest struct {
	Users []AddUserRequest `json:"users" binding:"required,min=1,dive"`
}

// BulkDeleteUsersRequest deletes several accounts by id. superAdmin
// accounts are never deleted, listed or not.
type BulkDeleteUsersRequest struct {
	IDs []int64 `json:"ids" binding:"required,min=1"`
}
