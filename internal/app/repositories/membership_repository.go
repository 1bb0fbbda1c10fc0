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

// IMembershipRepository defines database operations for committee member
// assignments
type IMembershipRepository interface {
	Add(ctx context.Context, assignment *models.MembershipAssignment) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.MembershipAssignment, error)
	ListByCommitteeID(ctx context.Context, committeeID int64) ([]models.MembershipAssignment, error)
	Update(ctx context.Context, id int64, position *string, index *int) error
	Remove(ctx context.Context, id int64) error
}

// MembershipRepository handles database operations for committee members
type MembershipRepository struct {
	db *pgxpool.Pool
}

// NewMembershipRepository creates a new MembershipRepository
func NewMembershipRepository(pg *db.PostgresDB) *MembershipRepository {
	return &MembershipRepository{db: pg.Pool}
}

// Add inserts a member assignment. A user already on the committee yields
// ErrMemberAlreadyAdded; a missing user or committee yields the matching
// not-found error.
func (r *MembershipRepository) Add(ctx context.Context, assignment *models.MembershipAssignment) (int64, error) {
	query := squirrel.Insert("committee_members").
		Columns("committee_id", "user_id", "position", "position_index").
		Values(assignment.CommitteeID, assignment.UserID, assignment.Position, assignment.Index).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		if dberrors.IsDuplicateConstraintError(err, "committee_members_committee_id_user_id_key") {
			return 0, apperrors.ErrMemberAlreadyAdded
		}
		if dberrors.IsForeignKeyViolation(err) {
			return 0, apperrors.NewNotFoundError("committee or user does not exist")
		}
		return 0, fmt.Errorf("error inserting member assignment: %w", err)
	}
	return id, nil
}

// GetByID retrieves a member assignment by id
func (r *MembershipRepository) GetByID(ctx context.Context, id int64) (*models.MembershipAssignment, error) {
	query := squirrel.Select(
		"cm.id", "cm.committee_id", "cm.user_id", "cm.position", "cm.position_index",
		"cm.created_at", "cm.updated_at",
	).
		From("committee_members cm").
		Where(squirrel.Eq{"cm.id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	var assignment models.MembershipAssignment
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&assignment.ID,
		&assignment.CommitteeID,
		&assignment.UserID,
		&assignment.Position,
		&assignment.Index,
		&assignment.CreatedAt,
		&assignment.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrMemberNotFound
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	return &assignment, nil
}

// ListByCommitteeID retrieves all assignments for a committee with the
// member profiles joined in. Rows come back ordered by index ascending,
// assignment id breaking ties, so insertion order survives equal indexes.
func (r *MembershipRepository) ListByCommitteeID(ctx context.Context, committeeID int64) ([]models.MembershipAssignment, error) {
	query := squirrel.Select(
		"cm.id", "cm.committee_id", "cm.user_id", "cm.position", "cm.position_index",
		"cm.created_at", "cm.updated_at",
		"u.id", "u.name", "u.email", "u.mobile", "u.gender", "u.photo", "u.role",
	).
		From("committee_members cm").
		Join("users u ON u.id = cm.user_id").
		Where(squirrel.Eq{"cm.committee_id": committeeID}).
		OrderBy("cm.position_index ASC", "cm.id ASC").
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

	var assignments []models.MembershipAssignment
	for rows.Next() {
		var assignment models.MembershipAssignment
		var user models.User
		err := rows.Scan(
			&assignment.ID,
			&assignment.CommitteeID,
			&assignment.UserID,
			&assignment.Position,
			&assignment.Index,
			&assignment.CreatedAt,
			&assignment.UpdatedAt,
			&user.ID,
			&user.Name,
			&user.Email,
			&user.Mobile,
			&user.Gender,
			&user.Photo,
			&user.Role,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		assignment.User = &user
		assignments = append(assignments, assignment)
	}
	return assignments, rows.Err()
}

// Update changes an assignment's position or index; nil fields are untouched
func (r *MembershipRepository) Update(ctx context.Context, id int64, position *string, index *int) error {
	query := squirrel.Update("committee_members").
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	if position != nil {
		query = query.Set("position", *position)
	}
	if index != nil {
		query = query.Set("position_index", *index)
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error executing update: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrMemberNotFound
	}
	return nil
}

// Remove deletes an assignment by id
func (r *MembershipRepository) Remove(ctx context.Context, id int64) error {
	query := squirrel.Delete("committee_members").
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
		return apperrors.ErrMemberNotFound
	}
	return nil
}
