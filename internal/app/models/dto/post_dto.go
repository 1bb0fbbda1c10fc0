package dto

// CreatePostRequest publishes a new post. The image, when present, arrives
// as a multipart file alongside these form fields.
type CreatePostRequest struct {
	Title       string `form:"title" json:"title" binding:"required,min=2,max=200" example:"Annual General Meeting"`
	Description string `form:"description" json:"description" binding:"required"`
}

// UpdatePostRequest updates post fields; nil fields are untouched. Changing
// the title regenerates the slug.
type UpdatePostRequest struct {
	Title       *string `form:"title" json:"title,omitempty" binding:"omitempty,min=2,max=200"`
	Description *string `form:"description" json:"description,omitempty"`
}

// CommentRequest adds a public comment to a post
type CommentRequest struct {
	PostID int64  `json:"postId" binding:"required" example:"1"`
	Name   string `json:"name" binding:"required,min=1,max=100" example:"Anonymous"`
	Text   string `json:"text" binding:"required,min=1,max=2000"`
}
