package services

import (
	"context"
	"fmt"
	"mime/multipart"

	"github.com/kin-platform/kin-backend/internal/app/auth"
	"github.com/kin-platform/kin-backend/internal/app/models"
	"github.com/kin-platform/kin-backend/internal/app/models/dto"
	"github.com/kin-platform/kin-backend/internal/app/repositories"
	"github.com/kin-platform/kin-backend/internal/pkg/apperrors"
	pkgauth "github.com/kin-platform/kin-backend/internal/pkg/auth"
	"github.com/kin-platform/kin-backend/internal/pkg/filestorage"
	"github.com/kin-platform/kin-backend/internal/pkg/logger"
)

// UserService implements user administration: listing, lookup, profile and
// password updates, role changes, bans and bulk creation.
type UserService struct {
	userRepo repositories.IUserRepository
	hasher   *pkgauth.PasswordHasher
	storage  *filestorage.LocalStorage
}

// NewUserService creates a new UserService
func NewUserService(userRepo repositories.IUserRepository, hasher *pkgauth.PasswordHasher, storage *filestorage.LocalStorage) *UserService {
	return &UserService{
		userRepo: userRepo,
		hasher:   hasher,
		storage:  storage,
	}
}

// ListUsers returns a page of users with the filtered total. Admin only.
func (s *UserService) ListUsers(ctx context.Context, principal auth.Principal, search string, offset uint64, limit int) ([]*models.User, int64, error) {
	if !principal.IsAdmin() {
		return nil, 0, apperrors.ErrForbidden
	}
	return s.userRepo.List(ctx, search, offset, limit)
}

// AddUser creates an account on a user's behalf. The account is verified
// immediately, skipping the activation workflow. Admin only; only a
// superAdmin may hand out the admin role.
func (s *UserService) AddUser(ctx context.Context, principal auth.Principal, req *dto.AddUserRequest) (*models.User, error) {
	if !principal.IsAdmin() {
		return nil, apperrors.ErrForbidden
	}

	role := models.RoleUser
	if req.Role != "" {
		role = models.Role(req.Role)
	}
	if role == models.RoleAdmin && !principal.IsSuperAdmin() {
		return nil, apperrors.NewForbiddenError("only a superAdmin can create admin accounts")
	}

	hashedPassword, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:       req.Name,
		Email:      req.Email,
		Password:   hashedPassword,
		Gender:     req.Gender,
		Mobile:     req.Mobile,
		Role:       role,
		IsVerified: true,
	}

	id, err := s.userRepo.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	user.ID = id

	logger.Info().Int64("userID", id).Int64("by", principal.ID).Msg("User account created by admin")
	return user, nil
}

// BulkCreateUsers creates several verified accounts atomically. superAdmin
// only.
func (s *UserService) BulkCreateUsers(ctx context.Context, principal auth.Principal, req *dto.BulkCreateUsersRequest) ([]*models.User, error) {
	if !principal.IsSuperAdmin() {
		return nil, apperrors.ErrForbidden
	}

	users := make([]*models.User, 0, len(req.Users))
	for _, item := range req.Users {
		role := models.RoleUser
		if item.Role != "" {
			role = models.Role(item.Role)
		}

		hashedPassword, err := s.hasher.Hash(item.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}

		users = append(users, &models.User{
			Name:       item.Name,
			Email:      item.Email,
			Password:   hashedPassword,
			Gender:     item.Gender,
			Mobile:     item.Mobile,
			Role:       role,
			IsVerified: true,
		})
	}

	if err := s.userRepo.BulkCreate(ctx, users); err != nil {
		return nil, err
	}

	logger.Info().Int("count", len(users)).Int64("by", principal.ID).Msg("Users bulk created")
	return users, nil
}

// BulkDeleteUsers removes several accounts at once. superAdmin only;
// superAdmin rows and unknown ids are skipped, not errors. Returns the
// number of accounts actually deleted.
func (s *UserService) BulkDeleteUsers(ctx context.Context, principal auth.Principal, req *dto.BulkDeleteUsersRequest) (int64, error) {
	if !principal.IsSuperAdmin() {
		return 0, apperrors.ErrForbidden
	}

	deleted, err := s.userRepo.BulkDelete(ctx, req.IDs)
	if err != nil {
		return 0, err
	}

	logger.Info().Int64("deleted", deleted).Int64("by", principal.ID).Msg("Users bulk deleted")
	return deleted, nil
}

// GetUser returns a user's profile. Users see only themselves; admins see
// everyone.
func (s *UserService) GetUser(ctx context.Context, principal auth.Principal, id int64) (*models.User, error) {
	if !principal.CanAccessUser(id) {
		return nil, apperrors.ErrForbidden
	}
	return s.userRepo.GetByID(ctx, id)
}

// UpdateUser updates profile fields, optionally replacing the photo. Email,
// role and verification state are never touched here.
func (s *UserService) UpdateUser(ctx context.Context, principal auth.Principal, id int64, req *dto.UpdateUserRequest, photo *multipart.FileHeader) (*models.User, error) {
	if !principal.CanAccessUser(id) {
		return nil, apperrors.ErrForbidden
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var photoPath *string
	if photo != nil {
		saved, err := s.storage.SaveFile(photo, "photos")
		if err != nil {
			return nil, fmt.Errorf("failed to store photo: %w", err)
		}
		photoPath = &saved
	}

	if err := s.userRepo.UpdateProfile(ctx, id, req.Name, req.Gender, req.Mobile, photoPath); err != nil {
		if photoPath != nil {
			_ = s.storage.DeleteFile(*photoPath)
		}
		return nil, err
	}

	// Old photo is dead once the update lands
	if photoPath != nil && user.Photo != nil {
		_ = s.storage.DeleteFile(*user.Photo)
	}

	return s.userRepo.GetByID(ctx, id)
}

// UpdatePassword changes the caller's own password after checking the old
// one
func (s *UserService) UpdatePassword(ctx context.Context, principal auth.Principal, req *dto.UpdatePasswordRequest) error {
	user, err := s.userRepo.GetByID(ctx, principal.ID)
	if err != nil {
		return err
	}

	if !s.hasher.Check(user.Password, req.OldPassword) {
		return apperrors.NewCustomError(apperrors.ErrInvalidCredentials, "Old password is incorrect")
	}

	hashedPassword, err := s.hasher.Hash(req.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.userRepo.UpdatePassword(ctx, user.ID, hashedPassword); err != nil {
		return err
	}

	logger.Info().Int64("userID", user.ID).Msg("Password changed")
	return nil
}

// DeleteUser removes an account. Users delete only themselves; admins
// delete anyone except the superAdmin, who is never deletable.
func (s *UserService) DeleteUser(ctx context.Context, principal auth.Principal, id int64) error {
	if !principal.CanAccessUser(id) {
		return apperrors.ErrForbidden
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if user.Role == models.RoleSuperAdmin {
		return apperrors.NewCustomError(apperrors.ErrSuperAdminImmutable, "superAdmin account cannot be deleted")
	}

	if err := s.userRepo.DeleteByID(ctx, id); err != nil {
		return err
	}

	if user.Photo != nil {
		_ = s.storage.DeleteFile(*user.Photo)
	}

	logger.Info().Int64("userID", id).Int64("by", principal.ID).Msg("User deleted")
	return nil
}

// BanUser flags an account as banned. Admin only; the superAdmin and the
// caller's own account are off-limits.
func (s *UserService) BanUser(ctx context.Context, principal auth.Principal, id int64) error {
	return s.setBanned(ctx, principal, id, true)
}

// UnbanUser lifts a ban. Admin only.
func (s *UserService) UnbanUser(ctx context.Context, principal auth.Principal, id int64) error {
	return s.setBanned(ctx, principal, id, false)
}

func (s *UserService) setBanned(ctx context.Context, principal auth.Principal, id int64, banned bool) error {
	if !principal.IsAdmin() {
		return apperrors.ErrForbidden
	}
	if principal.ID == id {
		return apperrors.NewForbiddenError("you cannot ban your own account")
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user.Role == models.RoleSuperAdmin {
		return apperrors.NewCustomError(apperrors.ErrSuperAdminImmutable, "superAdmin account cannot be banned")
	}

	// Banning a banned user (or unbanning an unbanned one) is an error,
	// not a no-op
	if user.IsBanned == banned {
		if banned {
			return apperrors.NewConflictError("user is already banned")
		}
		return apperrors.NewConflictError("user is not banned")
	}

	if err := s.userRepo.SetBanned(ctx, id, banned); err != nil {
		return err
	}

	logger.Info().Int64("userID", id).Bool("banned", banned).Int64("by", principal.ID).Msg("Ban state changed")
	return nil
}

// UpdateRole changes a user's role between user and admin. superAdmin only;
// the superAdmin account itself is never demoted.
func (s *UserService) UpdateRole(ctx context.Context, principal auth.Principal, id int64, req *dto.UpdateRoleRequest) error {
	if !principal.IsSuperAdmin() {
		return apperrors.ErrForbidden
	}

	role := models.Role(req.Role)
	if !role.IsValid() || role == models.RoleSuperAdmin {
		return apperrors.NewValidationError("role must be user or admin")
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user.Role == models.RoleSuperAdmin {
		return apperrors.NewCustomError(apperrors.ErrSuperAdminImmutable, "superAdmin role cannot be changed")
	}

	if err := s.userRepo.UpdateRole(ctx, id, role); err != nil {
		return err
	}

	logger.Info().Int64("userID", id).Str("role", string(role)).Int64("by", principal.ID).Msg("Role updated")
	return nil
}

// GetCounts returns headline user counts for the dashboard. Admin only.
func (s *UserService) GetCounts(ctx context.Context, principal auth.Principal) (*repositories.UserCounts, error) {
	if !principal.IsAdmin() {
		return nil, apperrors.ErrForbidden
	}
	return s.userRepo.Counts(ctx)
}
