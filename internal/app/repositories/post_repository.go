package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kin-platform/kin-backend/internal/app/models"
	"github.com/kin-platform/kin-backend/internal/db"
	"github.com/kin-platform/kin-backend/internal/pkg/apperrors"
	"github.com/kin-platform/kin-backend/internal/pkg/dberrors"
)

var postColumns = []string{
	"id", "title", "slug", "description", "image", "author_id", "created_at", "updated_at",
}

// IPostRepository defines database operations for posts
type IPostRepository interface {
	Create(ctx context.Context, post *models.Post) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Post, error)
	GetBySlug(ctx context.Context, slug string) (*models.Post, error)
	List(ctx context.Context, offset uint64, limit int) ([]*models.Post, int64, error)
	Update(ctx context.Context, post *models.Post) error
	DeleteBySlug(ctx context.Context, slug string) (*models.Post, error)
}

// PostRepository handles database operations for posts
type PostRepository struct {
	Crud[models.Post]
	db *pgxpool.Pool
}

// NewPostRepository creates a new PostRepository
func NewPostRepository(pg *db.PostgresDB) *PostRepository {
	return &PostRepository{
		Crud: NewCrud(pg.Pool, "posts", postColumns, scanPost),
		db:   pg.Pool,
	}
}

func scanPost(row pgx.Row) (*models.Post, error) {
	var post models.Post
	err := row.Scan(
		&post.ID,
		&post.Title,
		&post.Slug,
		&post.Description,
		&post.Image,
		&post.AuthorID,
		&post.CreatedAt,
		&post.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// Create inserts a new post and returns the generated id. A duplicate slug
// yields a conflict.
func (r *PostRepository) Create(ctx context.Context, post *models.Post) (int64, error) {
	query := squirrel.Insert("posts").
		Columns("title", "slug", "description", "image", "author_id").
		Values(post.Title, post.Slug, post.Description, post.Image, post.AuthorID).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		if dberrors.IsUniqueViolation(err) {
			return 0, apperrors.NewConflictError("post with this title already exists")
		}
		return 0, fmt.Errorf("error inserting post: %w", err)
	}
	return id, nil
}

// GetBySlug retrieves a post by slug
func (r *PostRepository) GetBySlug(ctx context.Context, slug string) (*models.Post, error) {
	query := squirrel.Select(postColumns...).
		From("posts").
		Where(squirrel.Eq{"slug": slug}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	post, err := scanPost(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("post not found")
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	return post, nil
}

// List retrieves a page of posts, newest first, with the total
func (r *PostRepository) List(ctx context.Context, offset uint64, limit int) ([]*models.Post, int64, error) {
	posts, err := r.Crud.List(ctx, "created_at DESC", offset, limit)
	if err != nil {
		return nil, 0, err
	}

	total, err := r.Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

// Update rewrites a post's fields
func (r *PostRepository) Update(ctx context.Context, post *models.Post) error {
	query := squirrel.Update("posts").
		Set("title", post.Title).
		Set("slug", post.Slug).
		Set("description", post.Description).
		Set("image", post.Image).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": post.ID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.NewConflictError("post with this title already exists")
		}
		return fmt.Errorf("error executing update: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("post not found")
	}
	return nil
}

// DeleteBySlug removes a post by slug and returns the deleted row so the
// caller can clean up its stored image.
func (r *PostRepository) DeleteBySlug(ctx context.Context, slug string) (*models.Post, error) {
	query := squirrel.Delete("posts").
		Where(squirrel.Eq{"slug": slug}).
		Suffix("RETURNING " + joinColumns(postColumns)).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	post, err := scanPost(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("post not found")
		}
		return nil, fmt.Errorf("error executing delete: %w", err)
	}
	return post, nil
}
