package services

import (
	"context"
	"fmt"

	"github.com/kin-platform/kin-backend/internal/app/models"
	"github.com/kin-platform/kin-backend/internal/app/models/dto"
	"github.com/kin-platform/kin-backend/internal/app/repositories"
	"github.com/kin-platform/kin-backend/internal/pkg/apperrors"
	pkgauth "github.com/kin-platform/kin-backend/internal/pkg/auth"
	"github.com/kin-platform/kin-backend/internal/pkg/email"
	"github.com/kin-platform/kin-backend/internal/pkg/logger"
)

// AuthService implements registration, account activation, login and the
// password reset workflow.
type AuthService struct {
	userRepo     repositories.IUserRepository
	tokenService *pkgauth.TokenService
	hasher       *pkgauth.PasswordHasher
	mailer       email.Mailer
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userRepo repositories.IUserRepository,
	tokenService *pkgauth.TokenService,
	hasher *pkgauth.PasswordHasher,
	mailer email.Mailer,
) *AuthService {
	return &AuthService{
		userRepo:     userRepo,
		tokenService: tokenService,
		hasher:       hasher,
		mailer:       mailer,
	}
}

// Register creates an unverified account and mails an activation code. The
// returned token goes into the verifyToken cookie; its lifetime matches the
// code's validity window.
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*models.User, string, error) {
	if _, err := s.userRepo.GetByEmail(ctx, req.Email); err == nil {
		return nil, "", apperrors.NewConflictError("Already have an account. Please login.")
	}

	hashedPassword, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: hashedPassword,
		Gender:   req.Gender,
		Mobile:   req.Mobile,
		Role:     models.RoleUser,
	}

	id, err := s.userRepo.Create(ctx, user)
	if err != nil {
		return nil, "", err
	}
	user.ID = id

	verifyToken, err := s.issueAndSendCode(ctx, pkgauth.PurposeVerify, user)
	if err != nil {
		return nil, "", err
	}

	logger.Info().Int64("userID", id).Str("email", user.Email).Msg("User registered")
	return user, verifyToken, nil
}

// Activate confirms an account with the one-time code from the activation
// email. The token comes from the verifyToken cookie. A token minted before
// the last successful use is rejected even inside its validity window.
func (s *AuthService) Activate(ctx context.Context, token, code string) error {
	claims, err := s.tokenService.VerifyCodeToken(token, pkgauth.PurposeVerify)
	if err != nil {
		return err
	}

	user, err := s.userRepo.GetByEmail(ctx, claims.Email)
	if err != nil {
		return apperrors.NewNotFoundError("Couldn't find any user account! Please register.")
	}

	if user.IsVerified {
		return apperrors.NewCustomError(apperrors.ErrAlreadyVerified, "Your account is already active. Please login.")
	}

	if claims.TokenVersion != user.TokenVersion {
		return apperrors.NewCustomError(apperrors.ErrTokenInvalid, "invalid or expired token")
	}

	if err := s.tokenService.CheckCode(code, claims.CodeHash); err != nil {
		return err
	}

	if err := s.userRepo.SetVerified(ctx, user.Email); err != nil {
		return err
	}
	// Invalidate any other activation tokens still in flight
	if err := s.userRepo.BumpTokenVersion(ctx, user.Email); err != nil {
		return err
	}

	logger.Info().Str("email", user.Email).Msg("Account activated")
	return nil
}

// ResendActivationCode mails a fresh activation code to an unverified
// account and returns the new verifyToken cookie value.
func (s *AuthService) ResendActivationCode(ctx context.Context, email string) (string, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return "", apperrors.NewNotFoundError("Couldn't find any user account! Please register.")
	}

	if user.IsVerified {
		return "", apperrors.NewCustomError(apperrors.ErrAlreadyVerified, "Your account is already active. Please login.")
	}

	return s.issueAndSendCode(ctx, pkgauth.PurposeVerify, user)
}

// Login checks credentials and returns the user with a signed access token
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*models.User, string, error) {
	user, err := s.authenticate(ctx, req.Email, req.Password)
	if err != nil {
		return nil, "", err
	}

	accessToken, err := s.tokenService.IssueAccessToken(user)
	if err != nil {
		return nil, "", err
	}

	logger.Info().Int64("userID", user.ID).Msg("User logged in")
	return user, accessToken, nil
}

// DashboardLogin is Login restricted to admin-level accounts
func (s *AuthService) DashboardLogin(ctx context.Context, req *dto.LoginRequest) (*models.User, string, error) {
	user, err := s.authenticate(ctx, req.Email, req.Password)
	if err != nil {
		return nil, "", err
	}

	if !user.IsAdministrator() {
		return nil, "", apperrors.NewForbiddenError("You are not allowed to access the dashboard")
	}

	accessToken, err := s.tokenService.IssueAccessToken(user)
	if err != nil {
		return nil, "", err
	}

	logger.Info().Int64("userID", user.ID).Msg("Dashboard login")
	return user, accessToken, nil
}

// Me returns the authenticated user's profile
func (s *AuthService) Me(ctx context.Context, userID int64) (*models.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

// FindAccount looks up an account by email before a password reset
func (s *AuthService) FindAccount(ctx context.Context, email string) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, apperrors.NewNotFoundError("Couldn't find any user account! Please register.")
	}
	return user, nil
}

// ForgotPassword mails a one-time reset code and returns the resetToken
// cookie value
func (s *AuthService) ForgotPassword(ctx context.Context, email string) (string, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return "", apperrors.NewNotFoundError("Couldn't find any user account! Please register.")
	}

	return s.issueAndSendCode(ctx, pkgauth.PurposeReset, user)
}

// ResendResetCode mails a fresh reset code, superseding earlier ones
func (s *AuthService) ResendResetCode(ctx context.Context, email string) (string, error) {
	return s.ForgotPassword(ctx, email)
}

// ResetPassword sets a new password after checking the one-time reset code.
// The token comes from the resetToken cookie; a successful reset invalidates
// every outstanding reset token.
func (s *AuthService) ResetPassword(ctx context.Context, token, code, newPassword string) error {
	claims, err := s.tokenService.VerifyCodeToken(token, pkgauth.PurposeReset)
	if err != nil {
		return err
	}

	user, err := s.userRepo.GetByEmail(ctx, claims.Email)
	if err != nil {
		return apperrors.NewNotFoundError("Couldn't find any user account! Please register.")
	}

	if claims.TokenVersion != user.TokenVersion {
		return apperrors.NewCustomError(apperrors.ErrTokenInvalid, "invalid or expired token")
	}

	if err := s.tokenService.CheckCode(code, claims.CodeHash); err != nil {
		return err
	}

	hashedPassword, err := s.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.userRepo.UpdatePassword(ctx, user.ID, hashedPassword); err != nil {
		return err
	}
	if err := s.userRepo.BumpTokenVersion(ctx, user.Email); err != nil {
		return err
	}

	logger.Info().Int64("userID", user.ID).Msg("Password reset")
	return nil
}

func (s *AuthService) authenticate(ctx context.Context, emailAddr, password string) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, emailAddr)
	if err != nil {
		return nil, apperrors.NewCustomError(apperrors.ErrInvalidCredentials, "Email or password is incorrect")
	}

	if !s.hasher.Check(user.Password, password) {
		return nil, apperrors.NewCustomError(apperrors.ErrInvalidCredentials, "Email or password is incorrect")
	}

	if !user.IsVerified {
		return nil, apperrors.NewCustomError(apperrors.ErrAccountNotVerified, "Please activate your account first")
	}
	if user.IsBanned {
		return nil, apperrors.NewCustomError(apperrors.ErrAccountBanned, "Your account is banned. Please contact the administrators.")
	}

	return user, nil
}

// issueAndSendCode mints a purpose-scoped code token bound to the user's
// current token version and mails the plaintext code. The email is awaited:
// a delivery failure fails the whole operation.
func (s *AuthService) issueAndSendCode(ctx context.Context, purpose pkgauth.TokenPurpose, user *models.User) (string, error) {
	code, codeHash, err := s.tokenService.GenerateCode(pkgauth.DefaultCodeLength)
	if err != nil {
		return "", err
	}

	token, err := s.tokenService.IssueCodeToken(purpose, user.Email, codeHash, user.TokenVersion)
	if err != nil {
		return "", err
	}

	var sendErr error
	switch purpose {
	case pkgauth.PurposeVerify:
		sendErr = s.mailer.SendActivationCode(user.Email, user.Name, code)
	case pkgauth.PurposeReset:
		sendErr = s.mailer.SendPasswordResetCode(user.Email, user.Name, code)
	}
	if sendErr != nil {
		logger.Error().Err(sendErr).Str("email", user.Email).Msg("Failed to deliver code email")
		return "", apperrors.NewCustomError(apperrors.ErrEmailDelivery, "Failed to send email. Please try again later.")
	}

	return token, nil
}
