package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kin-platform/kin-backend/internal/app/models/dto"
	"github.com/kin-platform/kin-backend/internal/app/services"
	"github.com/kin-platform/kin-backend/internal/middleware"
	"github.com/kin-platform/kin-backend/internal/pkg/helpers"
)

// CommitteeController handles executive committee endpoints
type CommitteeController struct {
	committeeService *services.CommitteeService
}

// NewCommitteeController creates a new CommitteeController
func NewCommitteeController(committeeService *services.CommitteeService) *CommitteeController {
	return &CommitteeController{committeeService: committeeService}
}

// ListCommittees handles listing committees
// @Summary List committees
// @Description Returns a paginated list of committees, newest term first. Public.
// @Tags committees
// @Produce json
// @Param page query int false "Page number (1-based)" default(1)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.Response "Committees retrieved"
// @Router /ec [get]
func (c *CommitteeController) ListCommittees(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	committees, total, err := c.committeeService.ListCommittees(ctx.Request.Context(), offset, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewPaginatedResponse("Committees retrieved successfully",
		helpers.NewPaginationInfo(total, page, size), committees))
}

// CreateCommittee handles creating a committee
// @Summary Create a committee
// @Description Creates a new executive committee. Admin only.
// @Tags committees
// @Accept json
// @Produce json
// @Param request body dto.CreateCommitteeRequest true "Committee data"
// @Success 201 {object} dto.Response "Committee created"
// @Failure 409 {object} dto.ErrorResponse "Committee name already taken"
// @Router /ec [post]
func (c *CommitteeController) CreateCommittee(ctx *gin.Context) {
	var req dto.CreateCommitteeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	committee, err := c.committeeService.CreateCommittee(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse("Committee created successfully", committee))
}

// GetCommittee handles fetching one committee with its roster
// @Summary Get a committee
// @Description Returns a committee with its member roster ordered by index. Public.
// @Tags committees
// @Produce json
// @Param id path int true "Committee ID"
// @Success 200 {object} dto.Response "Committee retrieved"
// @Failure 404 {object} dto.ErrorResponse "Committee not found"
// @Router /ec/{id} [get]
func (c *CommitteeController) GetCommittee(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	committee, err := c.committeeService.GetCommittee(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Committee retrieved successfully", committee))
}

// UpdateCommittee handles updating a committee
// @Summary Update a committee
// @Description Updates committee fields. Admin only.
// @Tags committees
// @Accept json
// @Produce json
// @Param id path int true "Committee ID"
// @Param request body dto.UpdateCommitteeRequest true "Fields to change"
// @Success 200 {object} dto.Response "Committee updated"
// @Failure 404 {object} dto.ErrorResponse "Committee not found"
// @Router /ec/{id} [patch]
func (c *CommitteeController) UpdateCommittee(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	var req dto.UpdateCommitteeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	committee, err := c.committeeService.UpdateCommittee(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Committee updated successfully", committee))
}

// DeleteCommittee handles deleting a committee
// @Summary Delete a committee
// @Description Deletes a committee and its member assignments. User accounts survive. Admin only.
// @Tags committees
// @Produce json
// @Param id path int true "Committee ID"
// @Success 200 {object} dto.Response "Committee deleted"
// @Failure 404 {object} dto.ErrorResponse "Committee not found"
// @Router /ec/{id} [delete]
func (c *CommitteeController) DeleteCommittee(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	if err := c.committeeService.DeleteCommittee(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Committee deleted successfully", nil))
}

// AddMember handles assigning a user to a committee
// @Summary Add a member
// @Description Assigns a user to a committee with a position. A user can hold one seat per committee. Admin only.
// @Tags committees
// @Accept json
// @Produce json
// @Param request body dto.AddMemberRequest true "Assignment data"
// @Success 201 {object} dto.Response "Member added"
// @Failure 404 {object} dto.ErrorResponse "Committee or user not found"
// @Failure 409 {object} dto.ErrorResponse "User already on this committee"
// @Router /ec/member-add-in-ec [post]
func (c *CommitteeController) AddMember(ctx *gin.Context) {
	var req dto.AddMemberRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	assignment, err := c.committeeService.AddMember(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse("Member added successfully", assignment))
}

// UpdateMember handles changing a member assignment
// @Summary Update a member
// @Description Changes a member's position or roster index. Admin only.
// @Tags committees
// @Accept json
// @Produce json
// @Param id path int true "Assignment ID"
// @Param request body dto.UpdateMemberRequest true "Fields to change"
// @Success 200 {object} dto.Response "Member updated"
// @Failure 404 {object} dto.ErrorResponse "Assignment not found"
// @Router /ec/update-member/{id} [patch]
func (c *CommitteeController) UpdateMember(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	var req dto.UpdateMemberRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	assignment, err := c.committeeService.UpdateMember(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Member updated successfully", assignment))
}

// RemoveMember handles taking a member off a roster
// @Summary Remove a member
// @Description Removes a member assignment. The user account survives. Admin only.
// @Tags committees
// @Produce json
// @Param id path int true "Assignment ID"
// @Success 200 {object} dto.Response "Member removed"
// @Failure 404 {object} dto.ErrorResponse "Assignment not found"
// @Router /ec/remove-member/{id} [delete]
func (c *CommitteeController) RemoveMember(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	if err := c.committeeService.RemoveMember(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Member removed successfully", nil))
}
