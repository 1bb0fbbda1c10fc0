package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/kin-platform/kin-backend/internal/app/models/dto"
	"github.com/kin-platform/kin-backend/internal/app/services"
	"github.com/kin-platform/kin-backend/internal/middleware"
	"github.com/kin-platform/kin-backend/internal/pkg/helpers"
)

// UserController handles user administration endpoints
type UserController struct {
	userService *services.UserService
}

// NewUserController creates a new UserController
func NewUserController(userService *services.UserService) *UserController {
	return &UserController{userService: userService}
}

// ListUsers handles listing users with search and pagination
// @Summary List users
// @Description Returns a paginated list of users, optionally filtered by a name or email search term. Admin only.
// @Tags users
// @Produce json
// @Param search query string false "Search by name or email"
// @Param page query int false "Page number (1-based)" default(1)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.Response "Users retrieved"
// @Failure 403 {object} dto.ErrorResponse "Not an admin"
// @Router /users [get]
func (c *UserController) ListUsers(ctx *gin.Context) {
	principal, _ := middleware.GetPrincipal(ctx)
	page, size := helpers.ParsePaginationParams(ctx)
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	users, total, err := c.userService.ListUsers(ctx.Request.Context(), principal, ctx.Query("search"), offset, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewPaginatedResponse("Users retrieved successfully",
		helpers.NewPaginationInfo(total, page, size), users))
}

// AddUser handles creating a verified account on a user's behalf
// @Summary Add a user
// @Description Creates a verified account directly, skipping email activation. Admin only; admin accounts need superAdmin.
// @Tags users
// @Accept json
// @Produce json
// @Param request body dto.AddUserRequest true "User data"
// @Success 201 {object} dto.Response "User created"
// @Failure 403 {object} dto.ErrorResponse "Not allowed"
// @Failure 409 {object} dto.ErrorResponse "Email already registered"
// @Router /users [post]
func (c *UserController) AddUser(ctx *gin.Context) {
	principal, _ := middleware.GetPrincipal(ctx)

	var req dto.AddUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	user, err := c.userService.AddUser(ctx.Request.Context(), principal, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse("User created successfully", user))
}

// BulkCreateUsers handles creating several accounts at once
// @Summary Bulk create users
// @Description Creates several verified accounts atomically. superAdmin only.
// @Tags users
// @Accept json
// @Produce json
// @Param request body dto.BulkCreateUsersRequest true "Users to create"
// @Success 201 {object} dto.Response "Users created"
// @Failure 403 {object} dto.ErrorResponse "Not a superAdmin"
// @Failure 409 {object} dto.ErrorResponse "Duplicate email in batch"
// @Router /users/bulk-create [post]
func (c *UserController) BulkCreateUsers(ctx *gin.Context) {
	principal, _ := middleware.GetPrincipal(ctx)

	var req dto.BulkCreateUsersRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	users, err := c.userService.BulkCreateUsers(ctx.Request.Context(), principal, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse("Users created successfully", users))
}

// BulkDeleteUsers handles deleting several accounts at once
// @Summary Bulk delete users
// @Description Deletes several accounts by id. superAdmin rows and unknown ids are skipped. superAdmin only.
// @Tags users
// @Accept json
// @Produce json
// @Param request body dto.BulkDeleteUsersRequest true "Account ids"
// @Success 200 {object} dto.Response "Users deleted"
// @Failure 403 {object} dto.ErrorResponse "Not a superAdmin"
// @Router /users/bulk-delete [delete]
func (c *UserController) BulkDeleteUsers(ctx *gin.Context) {
	principal, _ := middleware.GetPrincipal(ctx)

	var req dto.BulkDeleteUsersRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	deleted, err := c.userService.BulkDeleteUsers(ctx.Request.Context(), principal, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Users deleted successfully", gin.H{"deleted": deleted}))
}

// GetUser handles fetching one user
// @Summary Get a user
// @Description Returns a user's profile. Users reach only their own record; admins reach everyone.
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} dto.Response "User retrieved"
// @Failure 403 {object} dto.ErrorResponse "Not allowed"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /users/{id} [get]
func (c *UserController) GetUser(ctx *gin.Context) {
	principal, _ := middleware.GetPrincipal(ctx)
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	user, err := c.userService.GetUser(ctx.Request.Context(), principal, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("User retrieved successfully", user))
}

// UpdateUser handles profile updates
// @Summary Update a user
// @Description Updates profile fields and optionally the photo (multipart field "photo"). Email and role are untouchable here.
// @Tags users
// @Accept mpfd
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} dto.Response "User updated"
// @Failure 403 {object} dto.ErrorResponse "Not allowed"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /users/{id} [patch]
func (c *UserController) UpdateUser(ctx *gin.Context) {
	principal, _ := middleware.GetPrincipal(ctx)
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	var req dto.UpdateUserRequest
	if err := ctx.ShouldBind(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	photo, _ := ctx.FormFile("photo")

	user, err := c.userService.UpdateUser(ctx.Request.Context(), principal, id, &req, photo)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("User updated successfully", user))
}

// UpdatePassword handles changing the caller's own password
// @Summary Update password
// @Description Changes the logged-in user's password after checking the old one.
// @Tags users
// @Accept json
// @Produce json
// @Param request body dto.UpdatePasswordRequest true "Old and new password"
// @Success 200 {object} dto.Response "Password updated"
// @Failure 401 {object} dto.ErrorResponse "Old password incorrect"
// @Router /users/password-update [patch]
func (c *UserController) UpdatePassword(ctx *gin.Context) {
	principal, _ := middleware.GetPrincipal(ctx)

	var req dto.UpdatePasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	if err := c.userService.UpdatePassword(ctx.Request.Context(), principal, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Password updated successfully", nil))
}

// DeleteUser handles account deletion
// @Summary Delete a user
// @Description Deletes an account. Users delete only themselves; the superAdmin account is never deletable.
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} dto.Response "User deleted"
// @Failure 403 {object} dto.ErrorResponse "Not allowed"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /users/{id} [delete]
func (c *UserController) DeleteUser(ctx *gin.Context) {
	principal, _ := middleware.GetPrincipal(ctx)
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	if err := c.userService.DeleteUser(ctx.Request.Context(), principal, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("User deleted successfully", nil))
}

// BanUser handles banning an account
// @Summary Ban a user
// @Description Bans an account, blocking future logins. Admin only; the superAdmin is off-limits.
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} dto.Response "User banned"
// @Failure 403 {object} dto.ErrorResponse "Not allowed"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /users/ban/{id} [patch]
func (c *UserController) BanUser(ctx *gin.Context) {
	principal, _ := middleware.GetPrincipal(ctx)
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	if err := c.userService.BanUser(ctx.Request.Context(), principal, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("User banned successfully", nil))
}

// UnbanUser handles lifting a ban
// @Summary Unban a user
// @Description Lifts a ban. Admin only.
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} dto.Response "User unbanned"
// @Failure 403 {object} dto.ErrorResponse "Not allowed"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /users/unban/{id} [patch]
func (c *UserController) UnbanUser(ctx *gin.Context) {
	principal, _ := middleware.GetPrincipal(ctx)
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	if err := c.userService.UnbanUser(ctx.Request.Context(), principal, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("User unbanned successfully", nil))
}

// UpdateRole handles role changes
// @Summary Update a user's role
// @Description Switches a user between the user and admin roles. superAdmin only; the superAdmin account is never demoted.
// @Tags users
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param request body dto.UpdateRoleRequest true "New role"
// @Success 200 {object} dto.Response "Role updated"
// @Failure 403 {object} dto.ErrorResponse "Not allowed"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /users/role-update/{id} [patch]
func (c *UserController) UpdateRole(ctx *gin.Context) {
	principal, _ := middleware.GetPrincipal(ctx)
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	var req dto.UpdateRoleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	if err := c.userService.UpdateRole(ctx.Request.Context(), principal, id, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Role updated successfully", nil))
}

// GetCounts handles the dashboard counters
// @Summary User counts
// @Description Returns total, verified, banned and admin user counts. Admin only.
// @Tags users
// @Produce json
// @Success 200 {object} dto.Response "Counts retrieved"
// @Failure 403 {object} dto.ErrorResponse "Not an admin"
// @Router /users/counts [get]
func (c *UserController) GetCounts(ctx *gin.Context) {
	principal, _ := middleware.GetPrincipal(ctx)

	counts, err := c.userService.GetCounts(ctx.Request.Context(), principal)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Counts retrieved successfully", counts))
}

// parseIDParam reads the :id path parameter, writing a 400 envelope on
// malformed input
func parseIDParam(ctx *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "invalid id parameter"))
		return 0, false
	}
	return id, true
}
