package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kin-platform/kin-backend/internal/app/models"
	"github.com/kin-platform/kin-backend/internal/db"
	"github.com/kin-platform/kin-backend/internal/pkg/apperrors"
	"github.com/kin-platform/kin-backend/internal/pkg/dberrors"
)

// ICommentRepository defines database operations for post comments
type ICommentRepository interface {
	Add(ctx context.Context, comment *models.Comment) (int64, error)
	ListByPostID(ctx context.Context, postID int64) ([]models.Comment, error)
	DeleteByID(ctx context.Context, id int64) error
}

// CommentRepository handles database operations for post comments
type CommentRepository struct {
	db *pgxpool.Pool
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(pg *db.PostgresDB) *CommentRepository {
	return &CommentRepository{db: pg.Pool}
}

// Add inserts a comment. A missing post yields a not-found error.
func (r *CommentRepository) Add(ctx context.Context, comment *models.Comment) (int64, error) {
	query := squirrel.Insert("comments").
		Columns("post_id", "name", "text").
		Values(comment.PostID, comment.Name, comment.Text).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return 0, apperrors.NewNotFoundError("post not found")
		}
		return 0, fmt.Errorf("error inserting comment: %w", err)
	}
	return id, nil
}

// ListByPostID retrieves all comments for a post, newest first
func (r *CommentRepository) ListByPostID(ctx context.Context, postID int64) ([]models.Comment, error) {
	query := squirrel.Select("id", "post_id", "name", "text", "created_at").
		From("comments").
		Where(squirrel.Eq{"post_id": postID}).
		OrderBy("created_at DESC").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var comments []models.Comment
	for rows.Next() {
		var comment models.Comment
		err := rows.Scan(&comment.ID, &comment.PostID, &comment.Name, &comment.Text, &comment.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		comments = append(comments, comment)
	}
	return comments, rows.Err()
}

// DeleteByID removes a comment by id
func (r *CommentRepository) DeleteByID(ctx context.Context, id int64) error {
	query := squirrel.Delete("comments").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error executing delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("comment not found")
	}
	return nil
}
