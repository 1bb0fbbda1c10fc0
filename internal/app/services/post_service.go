package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"strings"
	"unicode"

	"github.com/kin-platform/kin-backend/internal/app/models"
	"github.com/kin-platform/kin-backend/internal/app/models/dto"
	"github.com/kin-platform/kin-backend/internal/app/repositories"
	"github.com/kin-platform/kin-backend/internal/pkg/filestorage"
	"github.com/kin-platform/kin-backend/internal/pkg/logger"
)

// PostService implements public announcements and their comments
type PostService struct {
	postRepo    repositories.IPostRepository
	commentRepo repositories.ICommentRepository
	storage     *filestorage.LocalStorage
}

// NewPostService creates a new PostService
func NewPostService(postRepo repositories.IPostRepository, commentRepo repositories.ICommentRepository, storage *filestorage.LocalStorage) *PostService {
	return &PostService{
		postRepo:    postRepo,
		commentRepo: commentRepo,
		storage:     storage,
	}
}

// CreatePost publishes a post under a slug derived from the title
func (s *PostService) CreatePost(ctx context.Context, authorID int64, req *dto.CreatePostRequest, image *multipart.FileHeader) (*models.Post, error) {
	post := &models.Post{
		Title:       req.Title,
		Slug:        Slugify(req.Title),
		Description: req.Description,
		AuthorID:    &authorID,
	}

	if image != nil {
		saved, err := s.storage.SaveFile(image, "posts")
		if err != nil {
			return nil, fmt.Errorf("failed to store image: %w", err)
		}
		post.Image = &saved
	}

	id, err := s.postRepo.Create(ctx, post)
	if err != nil {
		if post.Image != nil {
			_ = s.storage.DeleteFile(*post.Image)
		}
		return nil, err
	}
	post.ID = id

	logger.Info().Int64("postID", id).Str("slug", post.Slug).Msg("Post published")
	return post, nil
}

// ListPosts returns a page of posts, newest first, with the total
func (s *PostService) ListPosts(ctx context.Context, offset uint64, limit int) ([]*models.Post, int64, error) {
	return s.postRepo.List(ctx, offset, limit)
}

// GetPostBySlug returns a post with its comments, newest comment first
func (s *PostService) GetPostBySlug(ctx context.Context, slug string) (*models.Post, error) {
	post, err := s.postRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	comments, err := s.commentRepo.ListByPostID(ctx, post.ID)
	if err != nil {
		return nil, err
	}
	post.Comments = comments
	return post, nil
}

// UpdatePost updates post fields; a changed title regenerates the slug
func (s *PostService) UpdatePost(ctx context.Context, id int64, req *dto.UpdatePostRequest, image *multipart.FileHeader) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		post.Title = *req.Title
		post.Slug = Slugify(*req.Title)
	}
	if req.Description != nil {
		post.Description = *req.Description
	}

	oldImage := post.Image
	if image != nil {
		saved, err := s.storage.SaveFile(image, "posts")
		if err != nil {
			return nil, fmt.Errorf("failed to store image: %w", err)
		}
		post.Image = &saved
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		if image != nil && post.Image != nil {
			_ = s.storage.DeleteFile(*post.Image)
		}
		return nil, err
	}

	if image != nil && oldImage != nil {
		_ = s.storage.DeleteFile(*oldImage)
	}
	return post, nil
}

// DeletePostBySlug removes a post and cleans up its stored image. Comments
// go with the post.
func (s *PostService) DeletePostBySlug(ctx context.Context, slug string) error {
	post, err := s.postRepo.DeleteBySlug(ctx, slug)
	if err != nil {
		return err
	}

	if post.Image != nil {
		_ = s.storage.DeleteFile(*post.Image)
	}

	logger.Info().Str("slug", slug).Msg("Post deleted")
	return nil
}

// CommentOnPost adds a public comment to a post
func (s *PostService) CommentOnPost(ctx context.Context, req *dto.CommentRequest) (*models.Comment, error) {
	comment := &models.Comment{
		PostID: req.PostID,
		Name:   req.Name,
		Text:   req.Text,
	}

	id, err := s.commentRepo.Add(ctx, comment)
	if err != nil {
		return nil, err
	}
	comment.ID = id
	return comment, nil
}

// DeleteComment removes a comment by id
func (s *PostService) DeleteComment(ctx context.Context, id int64) error {
	return s.commentRepo.DeleteByID(ctx, id)
}

// Slugify turns a title into a URL-safe slug: lowercase, non-alphanumerics
// collapsed into single hyphens.
func Slugify(title string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(title) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastHyphen = false
		case !lastHyphen:
			b.WriteByte('-')
			lastHyphen = true
		}
	}
	return strings.Trim(b.String(), "-")
}
