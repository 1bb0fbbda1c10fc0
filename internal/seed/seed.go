package seed

import (
	"context"
	"errors"
	"os"

	"github.com/kin-platform/kin-backend/internal/app/models"
	"github.com/kin-platform/kin-backend/internal/app/repositories"
	"github.com/kin-platform/kin-backend/internal/pkg/apperrors"
	pkgauth "github.com/kin-platform/kin-backend/internal/pkg/auth"
	"github.com/kin-platform/kin-backend/internal/pkg/logger"
)

const (
	defaultSuperAdminEmail    = "superadmin@kin.org"
	defaultSuperAdminPassword = "SuperAdmin123!"
)

// CreateDefaultData creates the root superAdmin account if it does not
// exist. Credentials come from SUPERADMIN_EMAIL and SUPERADMIN_PASSWORD,
// falling back to development defaults.
func CreateDefaultData(ctx context.Context, userRepo repositories.IUserRepository, hasher *pkgauth.PasswordHasher) error {
	email := os.Getenv("SUPERADMIN_EMAIL")
	if email == "" {
		email = defaultSuperAdminEmail
	}
	password := os.Getenv("SUPERADMIN_PASSWORD")
	if password == "" {
		password = defaultSuperAdminPassword
	}

	_, err := userRepo.GetByEmail(ctx, email)
	if err == nil {
		logger.Debug().Str("email", email).Msg("superAdmin account already exists, skipping seed")
		return nil
	}
	if !errors.Is(err, apperrors.ErrUserNotFound) {
		return err
	}

	hashedPassword, err := hasher.Hash(password)
	if err != nil {
		return err
	}

	superAdmin := &models.User{
		Name:       "Super Admin",
		Email:      email,
		Password:   hashedPassword,
		Role:       models.RoleSuperAdmin,
		IsVerified: true,
	}

	id, err := userRepo.Create(ctx, superAdmin)
	if err != nil {
		return err
	}

	logger.Info().Int64("userId", id).Str("email", email).Msg("Default superAdmin account created")
	return nil
}
