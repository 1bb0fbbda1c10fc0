package repositories

import (
	"context"
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

var advisorColumns = []string{
	"id", "name", "role", "email", "mobile", "photo", "created_at", "updated_at",
}

// IAdvisorRepository defines database operations for advisors
type IAdvisorRepository interface {
	Create(ctx context.Context, advisor *models.Advisor) (int64, error)
	BulkCreate(ctx context.Context, advisors []*models.Advisor) error
	GetByID(ctx context.Context, id int64) (*models.Advisor, error)
	List(ctx context.Context, offset uint64, limit int) ([]*models.Advisor, int64, error)
	Update(ctx context.Context, advisor *models.Advisor) error
	DeleteByID(ctx context.Context, id int64) error
	BulkDelete(ctx context.Context, ids []int64) (int64, error)
}

// AdvisorRepository handles database operations for advisors
type AdvisorRepository struct {
	Crud[models.Advisor]
	db *pgxpool.Pool
	pg *db.PostgresDB
}

// NewAdvisorRepository creates a new AdvisorRepository
func NewAdvisorRepository(pg *db.PostgresDB) *AdvisorRepository {
	return &AdvisorRepository{
		Crud: NewCrud(pg.Pool, "advisors", advisorColumns, scanAdvisor),
		db:   pg.Pool,
		pg:   pg,
	}
}

func scanAdvisor(row pgx.Row) (*models.Advisor, error) {
	var advisor models.Advisor
	err := row.Scan(
		&advisor.ID,
		&advisor.Name,
		&advisor.Role,
		&advisor.Email,
		&advisor.Mobile,
		&advisor.Photo,
		&advisor.CreatedAt,
		&advisor.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &advisor, nil
}

// Create inserts a new advisor and returns the generated id
func (r *AdvisorRepository) Create(ctx context.Context, advisor *models.Advisor) (int64, error) {
	query := squirrel.Insert("advisors").
		Columns("name", "role", "email", "mobile", "photo").
		Values(advisor.Name, advisor.Role, advisor.Email, advisor.Mobile, advisor.Photo).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		if dberrors.IsUniqueViolation(err) {
			return 0, apperrors.NewConflictError("advisor email already exists")
		}
		return 0, fmt.Errorf("error inserting advisor: %w", err)
	}
	return id, nil
}

// BulkCreate inserts several advisors atomically
func (r *AdvisorRepository) BulkCreate(ctx context.Context, advisors []*models.Advisor) error {
	return r.pg.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		for _, advisor := range advisors {
			query := squirrel.Insert("advisors").
				Columns("name", "role", "email", "mobile", "photo").
				Values(advisor.Name, advisor.Role, advisor.Email, advisor.Mobile, advisor.Photo).
				Suffix("RETURNING id").
				PlaceholderFormat(squirrel.Dollar)

			sql, args, err := query.ToSql()
			if err != nil {
				return fmt.Errorf("error building SQL: %w", err)
			}

			if err := tx.QueryRow(ctx, sql, args...).Scan(&advisor.ID); err != nil {
				if dberrors.IsUniqueViolation(err) {
					return apperrors.NewConflictError(fmt.Sprintf("advisor email %s already exists", advisor.Email))
				}
				return fmt.Errorf("error inserting advisor: %w", err)
			}
		}
		return nil
	})
}

// List retrieves a page of advisors with the total
func (r *AdvisorRepository) List(ctx context.Context, offset uint64, limit int) ([]*models.Advisor, int64, error) {
	advisors, err := r.Crud.List(ctx, "created_at DESC", offset, limit)
	if err != nil {
		return nil, 0, err
	}

	total, err := r.Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	return advisors, total, nil
}

// Update rewrites an advisor's fields
func (r *AdvisorRepository) Update(ctx context.Context, advisor *models.Advisor) error {
	query := squirrel.Update("advisors").
		Set("name", advisor.Name).
		Set("role", advisor.Role).
		Set("email", advisor.Email).
		Set("mobile", advisor.Mobile).
		Set("photo", advisor.Photo).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": advisor.ID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.NewConflictError("advisor email already exists")
		}
		return fmt.Errorf("error executing update: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// BulkDelete removes advisors by id and returns how many were deleted
func (r *AdvisorRepository) BulkDelete(ctx context.Context, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	query := squirrel.Delete("advisors").
		Where(squirrel.Eq{"id": ids}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("error executing delete: %w", err)
	}
	return tag.RowsAffected(), nil
}
