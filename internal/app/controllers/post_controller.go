package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kin-platform/kin-backend/internal/app/models/dto"
	"github.com/kin-platform/kin-backend/internal/app/services"
	"github.com/kin-platform/kin-backend/internal/middleware"
	"github.com/kin-platform/kin-backend/internal/pkg/helpers"
)

// PostController handles announcement endpoints
type PostController struct {
	postService *services.PostService
}

// NewPostController creates a new PostController
func NewPostController(postService *services.PostService) *PostController {
	return &PostController{postService: postService}
}

// ListPosts handles listing posts
// @Summary List posts
// @Description Returns a paginated list of posts, newest first. Public.
// @Tags posts
// @Produce json
// @Param page query int false "Page number (1-based)" default(1)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.Response "Posts retrieved"
// @Router /posts [get]
func (c *PostController) ListPosts(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	posts, total, err := c.postService.ListPosts(ctx.Request.Context(), offset, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewPaginatedResponse("Posts retrieved successfully",
		helpers.NewPaginationInfo(total, page, size), posts))
}

// CreatePost handles publishing a post
// @Summary Create a post
// @Description Publishes a post with an optional image (multipart field "image"). The slug derives from the title. Admin only.
// @Tags posts
// @Accept mpfd
// @Produce json
// @Success 201 {object} dto.Response "Post created"
// @Failure 409 {object} dto.ErrorResponse "A post with this title exists"
// @Router /posts [post]
func (c *PostController) CreatePost(ctx *gin.Context) {
	principal, _ := middleware.GetPrincipal(ctx)

	var req dto.CreatePostRequest
	if err := ctx.ShouldBind(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	image, _ := ctx.FormFile("image")

	post, err := c.postService.CreatePost(ctx.Request.Context(), principal.ID, &req, image)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse("Post created successfully", post))
}

// GetPostBySlug handles fetching one post with comments
// @Summary Get a post
// @Description Returns one post by slug with its comments, newest first. Public.
// @Tags posts
// @Produce json
// @Param slug path string true "Post slug"
// @Success 200 {object} dto.Response "Post retrieved"
// @Failure 404 {object} dto.ErrorResponse "Post not found"
// @Router /posts/{slug} [get]
func (c *PostController) GetPostBySlug(ctx *gin.Context) {
	slug := ctx.Param("slug")

	post, err := c.postService.GetPostBySlug(ctx.Request.Context(), slug)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Post retrieved successfully", post))
}

// UpdatePost handles updating a post
// @Summary Update a post
// @Description Updates post fields and optionally the image (multipart field "image"). A changed title regenerates the slug. Admin only.
// @Tags posts
// @Accept mpfd
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} dto.Response "Post updated"
// @Failure 404 {object} dto.ErrorResponse "Post not found"
// @Router /posts/{id} [patch]
func (c *PostController) UpdatePost(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	var req dto.UpdatePostRequest
	if err := ctx.ShouldBind(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	image, _ := ctx.FormFile("image")

	post, err := c.postService.UpdatePost(ctx.Request.Context(), id, &req, image)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Post updated successfully", post))
}

// DeletePostBySlug handles deleting a post
// @Summary Delete a post
// @Description Deletes a post by slug with its comments and stored image. Admin only.
// @Tags posts
// @Produce json
// @Param slug path string true "Post slug"
// @Success 200 {object} dto.Response "Post deleted"
// @Failure 404 {object} dto.ErrorResponse "Post not found"
// @Router /posts/{slug} [delete]
func (c *PostController) DeletePostBySlug(ctx *gin.Context) {
	slug := ctx.Param("slug")

	if err := c.postService.DeletePostBySlug(ctx.Request.Context(), slug); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Post deleted successfully", nil))
}

// CommentOnPost handles adding a public comment
// @Summary Comment on a post
// @Description Adds a comment to a post. No account required.
// @Tags posts
// @Accept json
// @Produce json
// @Param request body dto.CommentRequest true "Comment data"
// @Success 201 {object} dto.Response "Comment added"
// @Failure 404 {object} dto.ErrorResponse "Post not found"
// @Router /posts/comment-on-post [post]
func (c *PostController) CommentOnPost(ctx *gin.Context) {
	var req dto.CommentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	comment, err := c.postService.CommentOnPost(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse("Comment added successfully", comment))
}

// DeleteComment handles deleting a comment
// @Summary Delete a comment
// @Description Deletes a comment by id. Admin only.
// @Tags posts
// @Produce json
// @Param id path int true "Comment ID"
// @Success 200 {object} dto.Response "Comment deleted"
// @Failure 404 {object} dto.ErrorResponse "Comment not found"
// @Router /posts/delete-comment/{id} [delete]
func (c *PostController) DeleteComment(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	if err := c.postService.DeleteComment(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Comment deleted successfully", nil))
}
