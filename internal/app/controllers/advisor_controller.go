package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kin-platform/kin-backend/internal/app/models/dto"
	"github.com/kin-platform/kin-backend/internal/app/services"
	"github.com/kin-platform/kin-backend/internal/middleware"
	"github.com/kin-platform/kin-backend/internal/pkg/helpers"
)

// AdvisorController handles advisor profile endpoints
type AdvisorController struct {
	advisorService *services.AdvisorService
}

// NewAdvisorController creates a new AdvisorController
func NewAdvisorController(advisorService *services.AdvisorService) *AdvisorController {
	return &AdvisorController{advisorService: advisorService}
}

// ListAdvisors handles listing advisors
// @Summary List advisors
// @Description Returns a paginated list of advisors. Public.
// @Tags advisors
// @Produce json
// @Param page query int false "Page number (1-based)" default(1)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.Response "Advisors retrieved"
// @Router /advisors [get]
func (c *AdvisorController) ListAdvisors(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	advisors, total, err := c.advisorService.ListAdvisors(ctx.Request.Context(), offset, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewPaginatedResponse("Advisors retrieved successfully",
		helpers.NewPaginationInfo(total, page, size), advisors))
}

// CreateAdvisor handles creating an advisor
// @Summary Create an advisor
// @Description Creates an advisor profile with an optional photo (multipart field "photo"). Admin only.
// @Tags advisors
// @Accept mpfd
// @Produce json
// @Success 201 {object} dto.Response "Advisor created"
// @Router /advisors [post]
func (c *AdvisorController) CreateAdvisor(ctx *gin.Context) {
	var req dto.CreateAdvisorRequest
	if err := ctx.ShouldBind(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	photo, _ := ctx.FormFile("photo")

	advisor, err := c.advisorService.CreateAdvisor(ctx.Request.Context(), &req, photo)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse("Advisor created successfully", advisor))
}

// BulkCreateAdvisors handles creating several advisors at once
// @Summary Bulk create advisors
// @Description Creates several advisor profiles atomically, without photos. Admin only.
// @Tags advisors
// @Accept json
// @Produce json
// @Param request body dto.BulkCreateAdvisorsRequest true "Advisors to create"
// @Success 201 {object} dto.Response "Advisors created"
// @Router /advisors/bulk-create [post]
func (c *AdvisorController) BulkCreateAdvisors(ctx *gin.Context) {
	var req dto.BulkCreateAdvisorsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	advisors, err := c.advisorService.BulkCreateAdvisors(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse("Advisors created successfully", advisors))
}

// BulkDeleteAdvisors handles deleting several advisors at once
// @Summary Bulk delete advisors
// @Description Deletes advisors by id. Admin only.
// @Tags advisors
// @Accept json
// @Produce json
// @Param request body dto.BulkDeleteAdvisorsRequest true "Advisor ids"
// @Success 200 {object} dto.Response "Advisors deleted"
// @Router /advisors/bulk-delete [delete]
func (c *AdvisorController) BulkDeleteAdvisors(ctx *gin.Context) {
	var req dto.BulkDeleteAdvisorsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	deleted, err := c.advisorService.BulkDeleteAdvisors(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Advisors deleted successfully", gin.H{"deleted": deleted}))
}

// GetAdvisor handles fetching one advisor
// @Summary Get an advisor
// @Description Returns one advisor profile. Admin only.
// @Tags advisors
// @Produce json
// @Param id path int true "Advisor ID"
// @Success 200 {object} dto.Response "Advisor retrieved"
// @Failure 404 {object} dto.ErrorResponse "Advisor not found"
// @Router /advisors/{id} [get]
func (c *AdvisorController) GetAdvisor(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	advisor, err := c.advisorService.GetAdvisor(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Advisor retrieved successfully", advisor))
}

// UpdateAdvisor handles updating an advisor
// @Summary Update an advisor
// @Description Updates advisor fields and optionally the photo (multipart field "photo"). Admin only.
// @Tags advisors
// @Accept mpfd
// @Produce json
// @Param id path int true "Advisor ID"
// @Success 200 {object} dto.Response "Advisor updated"
// @Failure 404 {object} dto.ErrorResponse "Advisor not found"
// @Router /advisors/{id} [patch]
func (c *AdvisorController) UpdateAdvisor(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	var req dto.UpdateAdvisorRequest
	if err := ctx.ShouldBind(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	photo, _ := ctx.FormFile("photo")

	advisor, err := c.advisorService.UpdateAdvisor(ctx.Request.Context(), id, &req, photo)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Advisor updated successfully", advisor))
}

// DeleteAdvisor handles deleting an advisor
// @Summary Delete an advisor
// @Description Deletes an advisor profile and its stored photo. Admin only.
// @Tags advisors
// @Produce json
// @Param id path int true "Advisor ID"
// @Success 200 {object} dto.Response "Advisor deleted"
// @Failure 404 {object} dto.ErrorResponse "Advisor not found"
// @Router /advisors/{id} [delete]
func (c *AdvisorController) DeleteAdvisor(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	if err := c.advisorService.DeleteAdvisor(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Advisor deleted successfully", nil))
}
