package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/kin-platform/kin-backend/internal/app/auth"
	"github.com/kin-platform/kin-backend/internal/app/models"
	"github.com/kin-platform/kin-backend/internal/app/models/dto"
	"github.com/kin-platform/kin-backend/internal/pkg/apperrors"
	pkgauth "github.com/kin-platform/kin-backend/internal/pkg/auth"
)

func newUserTestDeps() (*UserService, *fakeUserRepo, *pkgauth.PasswordHasher) {
	userRepo := newFakeUserRepo()
	hasher := pkgauth.NewPasswordHasher(bcrypt.MinCost)
	svc := NewUserService(userRepo, hasher, nil)
	return svc, userRepo, hasher
}

func seedAccounts(userRepo *fakeUserRepo) (superAdmin, admin, user *models.User) {
	superAdmin = userRepo.add(&models.User{
		Name: "Root", Email: "root@kin.org", Role: models.RoleSuperAdmin, IsVerified: true,
	})
	admin = userRepo.add(&models.User{
		Name: "Admin", Email: "admin@kin.org", Role: models.RoleAdmin, IsVerified: true,
	})
	user = userRepo.add(&models.User{
		Name: "User", Email: "user@kin.org", Role: models.RoleUser, IsVerified: true,
	})
	return superAdmin, admin, user
}

func principalFor(u *models.User) auth.Principal {
	return auth.Principal{ID: u.ID, Role: u.Role}
}

func TestListUsersAdminOnly(t *testing.T) {
	svc, userRepo, _ := newUserTestDeps()
	ctx := context.Background()
	_, admin, user := seedAccounts(userRepo)

	_, _, err := svc.ListUsers(ctx, principalFor(user), "", 0, 10)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	users, total, err := svc.ListUsers(ctx, principalFor(admin), "", 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, users, 3)

	// Search narrows by name or email
	users, total, err = svc.ListUsers(ctx, principalFor(admin), "root", 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, users, 1)
	assert.Equal(t, "root@kin.org", users[0].Email)
}

func TestAddUserRoleRules(t *testing.T) {
	svc, userRepo, _ := newUserTestDeps()
	ctx := context.Background()
	superAdmin, admin, user := seedAccounts(userRepo)

	_, err := svc.AddUser(ctx, principalFor(user), &dto.AddUserRequest{
		Name: "New", Email: "new@kin.org", Password: "secret123",
	})
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	// Admins may create regular accounts, verified immediately
	created, err := svc.AddUser(ctx, principalFor(admin), &dto.AddUserRequest{
		Name: "New", Email: "new@kin.org", Password: "secret123",
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, created.Role)
	assert.True(t, created.IsVerified)

	// Only the superAdmin hands out the admin role
	_, err = svc.AddUser(ctx, principalFor(admin), &dto.AddUserRequest{
		Name: "New Admin", Email: "newadmin@kin.org", Password: "secret123", Role: "admin",
	})
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	created, err = svc.AddUser(ctx, principalFor(superAdmin), &dto.AddUserRequest{
		Name: "New Admin", Email: "newadmin@kin.org", Password: "secret123", Role: "admin",
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, created.Role)
}

func TestBulkCreateUsersSuperAdminOnly(t *testing.T) {
	svc, userRepo, _ := newUserTestDeps()
	ctx := context.Background()
	superAdmin, admin, _ := seedAccounts(userRepo)

	req := &dto.BulkCreateUsersRequest{Users: []dto.AddUserRequest{
		{Name: "One", Email: "one@kin.org", Password: "secret123"},
		{Name: "Two", Email: "two@kin.org", Password: "secret123"},
	}}

	_, err := svc.BulkCreateUsers(ctx, principalFor(admin), req)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	created, err := svc.BulkCreateUsers(ctx, principalFor(superAdmin), req)
	require.NoError(t, err)
	require.Len(t, created, 2)
	for _, u := range created {
		assert.True(t, u.IsVerified)
		assert.NotZero(t, u.ID)
	}
}

func TestBulkDeleteUsersSkipsSuperAdmin(t *testing.T) {
	svc, userRepo, _ := newUserTestDeps()
	ctx := context.Background()
	superAdmin, admin, user := seedAccounts(userRepo)

	req := &dto.BulkDeleteUsersRequest{IDs: []int64{superAdmin.ID, admin.ID, user.ID, 999}}

	_, err := svc.BulkDeleteUsers(ctx, principalFor(admin), req)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	// superAdmin row and the unknown id are skipped, not errors
	deleted, err := svc.BulkDeleteUsers(ctx, principalFor(superAdmin), req)
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	_, err = userRepo.GetByID(ctx, superAdmin.ID)
	assert.NoError(t, err)
	_, err = userRepo.GetByID(ctx, user.ID)
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestGetUserAccessScope(t *testing.T) {
	svc, userRepo, _ := newUserTestDeps()
	ctx := context.Background()
	_, admin, user := seedAccounts(userRepo)

	// Users reach only their own record
	_, err := svc.GetUser(ctx, principalFor(user), admin.ID)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	got, err := svc.GetUser(ctx, principalFor(user), user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, got.Email)

	// Admins reach everyone
	got, err = svc.GetUser(ctx, principalFor(admin), user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, got.Email)
}

func TestUpdatePassword(t *testing.T) {
	svc, userRepo, hasher := newUserTestDeps()
	ctx := context.Background()

	hash, err := hasher.Hash("oldsecret")
	require.NoError(t, err)
	user := userRepo.add(&models.User{
		Name: "User", Email: "user@kin.org", Password: hash, Role: models.RoleUser, IsVerified: true,
	})

	err = svc.UpdatePassword(ctx, principalFor(user), &dto.UpdatePasswordRequest{
		OldPassword: "wrong", NewPassword: "newsecret123",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	err = svc.UpdatePassword(ctx, principalFor(user), &dto.UpdatePasswordRequest{
		OldPassword: "oldsecret", NewPassword: "newsecret123",
	})
	require.NoError(t, err)

	stored, err := userRepo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, hasher.Check(stored.Password, "newsecret123"))
}

func TestDeleteUserProtections(t *testing.T) {
	svc, userRepo, _ := newUserTestDeps()
	ctx := context.Background()
	superAdmin, admin, user := seedAccounts(userRepo)

	// The superAdmin account is never deletable, even by itself
	err := svc.DeleteUser(ctx, principalFor(admin), superAdmin.ID)
	assert.ErrorIs(t, err, apperrors.ErrSuperAdminImmutable)
	err = svc.DeleteUser(ctx, principalFor(superAdmin), superAdmin.ID)
	assert.ErrorIs(t, err, apperrors.ErrSuperAdminImmutable)

	// Users delete only themselves
	err = svc.DeleteUser(ctx, principalFor(user), admin.ID)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	require.NoError(t, svc.DeleteUser(ctx, principalFor(user), user.ID))
	_, err = userRepo.GetByID(ctx, user.ID)
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestBanRules(t *testing.T) {
	svc, userRepo, _ := newUserTestDeps()
	ctx := context.Background()
	superAdmin, admin, user := seedAccounts(userRepo)

	// Regular users cannot ban
	err := svc.BanUser(ctx, principalFor(user), admin.ID)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	// Admins cannot ban themselves or the superAdmin
	err = svc.BanUser(ctx, principalFor(admin), admin.ID)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
	err = svc.BanUser(ctx, principalFor(admin), superAdmin.ID)
	assert.ErrorIs(t, err, apperrors.ErrSuperAdminImmutable)

	// Unbanning a user who is not banned is rejected
	err = svc.UnbanUser(ctx, principalFor(admin), user.ID)
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	require.NoError(t, svc.BanUser(ctx, principalFor(admin), user.ID))
	stored, err := userRepo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsBanned)

	// Banning again is rejected, and the flag stays set
	err = svc.BanUser(ctx, principalFor(admin), user.ID)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
	stored, err = userRepo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsBanned)

	require.NoError(t, svc.UnbanUser(ctx, principalFor(admin), user.ID))
	stored, err = userRepo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsBanned)
}

func TestUpdateRoleRules(t *testing.T) {
	svc, userRepo, _ := newUserTestDeps()
	ctx := context.Background()
	superAdmin, admin, user := seedAccounts(userRepo)

	// Only the superAdmin changes roles
	err := svc.UpdateRole(ctx, principalFor(admin), user.ID, &dto.UpdateRoleRequest{Role: "admin"})
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	// superAdmin is not an assignable role
	err = svc.UpdateRole(ctx, principalFor(superAdmin), user.ID, &dto.UpdateRoleRequest{Role: "superAdmin"})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	// The superAdmin account itself is never demoted
	err = svc.UpdateRole(ctx, principalFor(superAdmin), superAdmin.ID, &dto.UpdateRoleRequest{Role: "user"})
	assert.ErrorIs(t, err, apperrors.ErrSuperAdminImmutable)

	require.NoError(t, svc.UpdateRole(ctx, principalFor(superAdmin), user.ID, &dto.UpdateRoleRequest{Role: "admin"}))
	stored, err := userRepo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, stored.Role)
}

func TestGetCounts(t *testing.T) {
	svc, userRepo, _ := newUserTestDeps()
	ctx := context.Background()
	_, admin, user := seedAccounts(userRepo)
	userRepo.users[user.ID].IsBanned = true

	_, err := svc.GetCounts(ctx, principalFor(user))
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	counts, err := svc.GetCounts(ctx, principalFor(admin))
	require.NoError(t, err)
	assert.Equal(t, int64(3), counts.Total)
	assert.Equal(t, int64(3), counts.Verified)
	assert.Equal(t, int64(1), counts.Banned)
	assert.Equal(t, int64(2), counts.Admins)
}
