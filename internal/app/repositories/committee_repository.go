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

var committeeColumns = []string{
	"id", "name", "description", "start_year", "end_year", "is_active", "created_at", "updated_at",
}

// ICommitteeRepository defines database operations for committees
type ICommitteeRepository interface {
	Create(ctx context.Context, committee *models.Committee) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Committee, error)
	List(ctx context.Context, offset uint64, limit int) ([]*models.Committee, int64, error)
	Update(ctx context.Context, committee *models.Committee) error
	DeleteByID(ctx context.Context, id int64) error
	ExistsByID(ctx context.Context, id int64) (bool, error)
}

// CommitteeRepository handles database operations for committees
type CommitteeRepository struct {
	Crud[models.Committee]
	db *pgxpool.Pool
}

// NewCommitteeRepository creates a new CommitteeRepository
func NewCommitteeRepository(pg *db.PostgresDB) *CommitteeRepository {
	return &CommitteeRepository{
		Crud: NewCrud(pg.Pool, "committees", committeeColumns, scanCommittee),
		db:   pg.Pool,
	}
}

func scanCommittee(row pgx.Row) (*models.Committee, error) {
	var committee models.Committee
	err := row.Scan(
		&committee.ID,
		&committee.Name,
		&committee.Description,
		&committee.StartYear,
		&committee.EndYear,
		&committee.IsActive,
		&committee.CreatedAt,
		&committee.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &committee, nil
}

// Create inserts a new committee and returns the generated id
func (r *CommitteeRepository) Create(ctx context.Context, committee *models.Committee) (int64, error) {
	query := squirrel.Insert("committees").
		Columns("name", "description", "start_year", "end_year", "is_active").
		Values(committee.Name, committee.Description, committee.StartYear, committee.EndYear, committee.IsActive).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		if dberrors.IsUniqueViolation(err) {
			return 0, apperrors.NewConflictError("committee with this name already exists")
		}
		return 0, fmt.Errorf("error inserting committee: %w", err)
	}
	return id, nil
}

// List retrieves a page of committees, newest term first, with the total
func (r *CommitteeRepository) List(ctx context.Context, offset uint64, limit int) ([]*models.Committee, int64, error) {
	committees, err := r.Crud.List(ctx, "start_year DESC, id DESC", offset, limit)
	if err != nil {
		return nil, 0, err
	}

	total, err := r.Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	return committees, total, nil
}

// Update rewrites a committee's fields
func (r *CommitteeRepository) Update(ctx context.Context, committee *models.Committee) error {
	query := squirrel.Update("committees").
		Set("name", committee.Name).
		Set("description", committee.Description).
		Set("start_year", committee.StartYear).
		Set("end_year", committee.EndYear).
		Set("is_active", committee.IsActive).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": committee.ID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error executing update: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrCommitteeNotFound
	}
	return nil
}
