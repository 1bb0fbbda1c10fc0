package dto

// RegisterRequest is the payload for creating a new account
type RegisterRequest struct {
	Name     string  `json:"name" binding:"required,min=2,max=100" example:"Aroosh Sharma"`
	Email    string  `json:"email" binding:"required,email" example:"user@kin.org"`
	Password string  `json:"password" binding:"required,min=6" example:"secret123"`
	Gender   *string `json:"gender,omitempty" binding:"omitempty,oneof=male female other" example:"male"`
	Mobile   *string `json:"mobile,omitempty" example:"+9779812345678"`
}

// ActivateRequest carries the one-time activation code. The matching token
// arrives in the verifyToken cookie.
type ActivateRequest struct {
	Code string `json:"code" binding:"required" example:"1234"`
}

// ResendCodeRequest asks for a fresh one-time code by email
type ResendCodeRequest struct {
	Email string `json:"email" binding:"required,email" example:"user@kin.org"`
}

// LoginRequest is the payload for logging in
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"user@kin.org"`
	Password string `json:"password" binding:"required" example:"secret123"`
}

// FindAccountRequest looks up an account before starting a password reset
type FindAccountRequest struct {
	Email string `json:"email" binding:"required,email" example:"user@kin.org"`
}

// ForgotPasswordRequest starts the password reset workflow
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email" example:"user@kin.org"`
}

// ResetPasswordRequest carries the one-time reset code and the new
// password. The matching token arrives in the resetToken cookie.
type ResetPasswordRequest struct {
	Code     string `json:"code" binding:"required" example:"1234"`
	Password string `json:"password" binding:"required,min=6" example:"newsecret123"`
}
