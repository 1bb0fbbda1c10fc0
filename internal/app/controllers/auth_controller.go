package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kin-platform/kin-backend/internal/app/models/dto"
	"github.com/kin-platform/kin-backend/internal/app/services"
	"github.com/kin-platform/kin-backend/internal/metrics"
	"github.com/kin-platform/kin-backend/internal/middleware"
	pkgauth "github.com/kin-platform/kin-backend/internal/pkg/auth"
)

// Cookie names for the three token kinds
const (
	VerifyTokenCookie = "verifyToken"
	ResetTokenCookie  = "resetToken"
)

// CookieSettings controls the flags on issued cookies
type CookieSettings struct {
	Secure bool
	// AccessHTTPOnly applies to the accessToken cookie only; the short-lived
	// code token cookies are always httpOnly.
	AccessHTTPOnly bool
	Domain         string
}

// AuthController handles registration, activation, login and password reset
type AuthController struct {
	authService  *services.AuthService
	tokenService *pkgauth.TokenService
	cookies      CookieSettings
	registry     *metrics.Registry
}

// NewAuthController creates a new AuthController
func NewAuthController(authService *services.AuthService, tokenService *pkgauth.TokenService, cookies CookieSettings, registry *metrics.Registry) *AuthController {
	return &AuthController{
		authService:  authService,
		tokenService: tokenService,
		cookies:      cookies,
		registry:     registry,
	}
}

// Register handles new account creation
// @Summary Register a new account
// @Description Creates an unverified account and emails a one-time activation code. The matching signed token is set as the verifyToken cookie.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Registration data"
// @Success 201 {object} dto.Response "Account created, activation email sent"
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 409 {object} dto.ErrorResponse "Email already registered"
// @Failure 502 {object} dto.ErrorResponse "Activation email could not be delivered"
// @Router /auth/register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req dto.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	user, verifyToken, err := c.authService.Register(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.registry.RegistrationsTotal.Inc()
	c.registry.CodeEmailsTotal.WithLabelValues("verify").Inc()
	c.setCookie(ctx, VerifyTokenCookie, verifyToken, int(c.tokenService.TTL(pkgauth.PurposeVerify).Seconds()), true)

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(
		fmt.Sprintf("Email has been sent to %s. Follow the instruction to activate your account", user.Email),
		user,
	))
}

// Activate handles account activation by one-time code
// @Summary Activate account
// @Description Confirms the one-time code against the verifyToken cookie and marks the account verified. A used or superseded token is rejected.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.ActivateRequest true "Activation code"
// @Success 200 {object} dto.Response "Account activated"
// @Failure 400 {object} dto.ErrorResponse "Wrong code or account already active"
// @Failure 401 {object} dto.ErrorResponse "Missing, invalid or expired token"
// @Router /auth/activate [post]
func (c *AuthController) Activate(ctx *gin.Context) {
	var req dto.ActivateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	token, err := ctx.Cookie(VerifyTokenCookie)
	if err != nil || token == "" {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(http.StatusUnauthorized, "Verification token not found. Please register again."))
		return
	}

	if err := c.authService.Activate(ctx.Request.Context(), token, req.Code); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.clearCookie(ctx, VerifyTokenCookie)
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Successfully activated your account.", nil))
}

// ResendActivationCode handles re-sending the activation code
// @Summary Resend activation code
// @Description Emails a fresh activation code and replaces the verifyToken cookie. Earlier codes stop working.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.ResendCodeRequest true "Account email"
// @Success 200 {object} dto.Response "Activation email sent"
// @Failure 400 {object} dto.ErrorResponse "Account already active"
// @Failure 404 {object} dto.ErrorResponse "No account for this email"
// @Router /auth/resend-active-code [post]
func (c *AuthController) ResendActivationCode(ctx *gin.Context) {
	var req dto.ResendCodeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	verifyToken, err := c.authService.ResendActivationCode(ctx.Request.Context(), req.Email)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.registry.CodeEmailsTotal.WithLabelValues("verify").Inc()
	c.setCookie(ctx, VerifyTokenCookie, verifyToken, int(c.tokenService.TTL(pkgauth.PurposeVerify).Seconds()), true)

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(
		fmt.Sprintf("Email has been sent to %s. Follow the instruction to activate your account", req.Email),
		nil,
	))
}

// Login handles user login
// @Summary Login
// @Description Checks credentials and sets the accessToken cookie. Unverified and banned accounts are rejected.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.Response "Logged in"
// @Failure 401 {object} dto.ErrorResponse "Wrong email or password"
// @Failure 403 {object} dto.ErrorResponse "Account not verified or banned"
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	user, accessToken, err := c.authService.Login(ctx.Request.Context(), &req)
	if err != nil {
		c.registry.LoginsTotal.WithLabelValues("failure").Inc()
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.registry.LoginsTotal.WithLabelValues("success").Inc()
	c.setCookie(ctx, middleware.AccessTokenCookie, accessToken, int(c.tokenService.AccessTTL().Seconds()), c.cookies.AccessHTTPOnly)

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Successfully logged in", user))
}

// DashboardLogin handles admin dashboard login
// @Summary Dashboard login
// @Description Login restricted to admin and superAdmin accounts.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.Response "Logged in"
// @Failure 401 {object} dto.ErrorResponse "Wrong email or password"
// @Failure 403 {object} dto.ErrorResponse "Not an admin account"
// @Router /auth/dashboard-login [post]
func (c *AuthController) DashboardLogin(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	user, accessToken, err := c.authService.DashboardLogin(ctx.Request.Context(), &req)
	if err != nil {
		c.registry.LoginsTotal.WithLabelValues("failure").Inc()
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.registry.LoginsTotal.WithLabelValues("success").Inc()
	c.setCookie(ctx, middleware.AccessTokenCookie, accessToken, int(c.tokenService.AccessTTL().Seconds()), c.cookies.AccessHTTPOnly)

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Successfully logged in", user))
}

// Logout handles logout
// @Summary Logout
// @Description Clears the accessToken cookie.
// @Tags auth
// @Produce json
// @Success 200 {object} dto.Response "Logged out"
// @Failure 401 {object} dto.ErrorResponse "Not logged in"
// @Router /auth/logout [post]
func (c *AuthController) Logout(ctx *gin.Context) {
	c.clearCookie(ctx, middleware.AccessTokenCookie)
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Successfully logged out", nil))
}

// Me returns the authenticated user's profile
// @Summary Current user
// @Description Returns the profile of the logged-in user.
// @Tags auth
// @Produce json
// @Success 200 {object} dto.Response "Current user"
// @Failure 401 {object} dto.ErrorResponse "Not logged in"
// @Router /auth/me [get]
func (c *AuthController) Me(ctx *gin.Context) {
	principal, ok := middleware.GetPrincipal(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(http.StatusUnauthorized, "Authentication required. Please login."))
		return
	}

	user, err := c.authService.Me(ctx.Request.Context(), principal.ID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Current user", user))
}

// FindAccount looks up an account before a password reset
// @Summary Find account
// @Description Returns the account matching an email, used by the reset flow to confirm the target.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.FindAccountRequest true "Account email"
// @Success 200 {object} dto.Response "Account found"
// @Failure 404 {object} dto.ErrorResponse "No account for this email"
// @Router /auth/find-account [post]
func (c *AuthController) FindAccount(ctx *gin.Context) {
	var req dto.FindAccountRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	user, err := c.authService.FindAccount(ctx.Request.Context(), req.Email)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Account found", user))
}

// ForgotPassword starts the password reset workflow
// @Summary Forgot password
// @Description Emails a one-time reset code and sets the resetToken cookie.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.ForgotPasswordRequest true "Account email"
// @Success 200 {object} dto.Response "Reset email sent"
// @Failure 404 {object} dto.ErrorResponse "No account for this email"
// @Failure 502 {object} dto.ErrorResponse "Reset email could not be delivered"
// @Router /users/forgot-password [post]
func (c *AuthController) ForgotPassword(ctx *gin.Context) {
	var req dto.ForgotPasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	resetToken, err := c.authService.ForgotPassword(ctx.Request.Context(), req.Email)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.registry.CodeEmailsTotal.WithLabelValues("reset").Inc()
	c.setCookie(ctx, ResetTokenCookie, resetToken, int(c.tokenService.TTL(pkgauth.PurposeReset).Seconds()), true)

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(
		fmt.Sprintf("Email has been sent to %s. Follow the instruction to reset your password", req.Email),
		nil,
	))
}

// ResendResetCode re-sends the password reset code
// @Summary Resend reset code
// @Description Emails a fresh reset code and replaces the resetToken cookie. Earlier codes stop working.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.ResendCodeRequest true "Account email"
// @Success 200 {object} dto.Response "Reset email sent"
// @Failure 404 {object} dto.ErrorResponse "No account for this email"
// @Router /users/resend-password-reset-code [post]
func (c *AuthController) ResendResetCode(ctx *gin.Context) {
	var req dto.ResendCodeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	resetToken, err := c.authService.ResendResetCode(ctx.Request.Context(), req.Email)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.registry.CodeEmailsTotal.WithLabelValues("reset").Inc()
	c.setCookie(ctx, ResetTokenCookie, resetToken, int(c.tokenService.TTL(pkgauth.PurposeReset).Seconds()), true)

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(
		fmt.Sprintf("Email has been sent to %s. Follow the instruction to reset your password", req.Email),
		nil,
	))
}

// ResetPassword completes the password reset workflow
// @Summary Reset password
// @Description Sets a new password after confirming the one-time code against the resetToken cookie. A used or superseded token is rejected.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.ResetPasswordRequest true "Code and new password"
// @Success 200 {object} dto.Response "Password reset"
// @Failure 400 {object} dto.ErrorResponse "Wrong code"
// @Failure 401 {object} dto.ErrorResponse "Missing, invalid or expired token"
// @Router /users/reset-password [post]
func (c *AuthController) ResetPassword(ctx *gin.Context) {
	var req dto.ResetPasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	token, err := ctx.Cookie(ResetTokenCookie)
	if err != nil || token == "" {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(http.StatusUnauthorized, "Reset token not found. Please request a new code."))
		return
	}

	if err := c.authService.ResetPassword(ctx.Request.Context(), token, req.Code, req.Password); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.clearCookie(ctx, ResetTokenCookie)
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Successfully reset your password. Please login.", nil))
}

func (c *AuthController) setCookie(ctx *gin.Context, name, value string, maxAge int, httpOnly bool) {
	ctx.SetSameSite(http.SameSiteStrictMode)
	ctx.SetCookie(name, value, maxAge, "/", c.cookies.Domain, c.cookies.Secure, httpOnly)
}

func (c *AuthController) clearCookie(ctx *gin.Context, name string) {
	ctx.SetSameSite(http.SameSiteStrictMode)
	ctx.SetCookie(name, "", -1, "/", c.cookies.Domain, c.cookies.Secure, true)
}
