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

var userColumns = []string{
	"id", "name", "email", "password", "mobile", "gender", "photo",
	"role", "is_verified", "is_banned", "token_version", "created_at", "updated_at",
}

// IUserRepository defines database operations for users
type IUserRepository interface {
	Create(ctx context.Context, user *models.User) (int64, error)
	BulkCreate(ctx context.Context, users []*models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context, search string, offset uint64, limit int) ([]*models.User, int64, error)
	UpdateProfile(ctx context.Context, id int64, name, gender, mobile, photo *string) error
	UpdatePassword(ctx context.Context, id int64, hashedPassword string) error
	UpdateRole(ctx context.Context, id int64, role models.Role) error
	SetVerified(ctx context.Context, email string) error
	SetBanned(ctx context.Context, id int64, banned bool) error
	BumpTokenVersion(ctx context.Context, email string) error
	DeleteByID(ctx context.Context, id int64) error
	BulkDelete(ctx context.Context, ids []int64) (int64, error)
	Counts(ctx context.Context) (*UserCounts, error)
}

// UserCounts aggregates headline numbers for the admin dashboard
type UserCounts struct {
	Total    int64 `json:"total"`
	Verified int64 `json:"verified"`
	Banned   int64 `json:"banned"`
	Admins   int64 `json:"admins"`
}

// UserRepository handles database operations for users
type UserRepository struct {
	Crud[models.User]
	db *pgxpool.Pool
	pg *db.PostgresDB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(pg *db.PostgresDB) *UserRepository {
	return &UserRepository{
		Crud: NewCrud(pg.Pool, "users", userColumns, scanUser),
		db:   pg.Pool,
		pg:   pg,
	}
}

func scanUser(row pgx.Row) (*models.User, error) {
	var user models.User
	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.Password,
		&user.Mobile,
		&user.Gender,
		&user.Photo,
		&user.Role,
		&user.IsVerified,
		&user.IsBanned,
		&user.TokenVersion,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Create inserts a new user and returns the generated id
func (r *UserRepository) Create(ctx context.Context, user *models.User) (int64, error) {
	query := squirrel.Insert("users").
		Columns("name", "email", "password", "mobile", "gender", "photo", "role", "is_verified").
		Values(user.Name, user.Email, user.Password, user.Mobile, user.Gender, user.Photo, user.Role, user.IsVerified).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		if dberrors.IsUniqueViolation(err) {
			return 0, apperrors.ErrEmailAlreadyExists
		}
		return 0, fmt.Errorf("error inserting user: %w", err)
	}
	return id, nil
}

// BulkCreate inserts several users atomically. A single duplicate email
// rolls back the whole batch.
func (r *UserRepository) BulkCreate(ctx context.Context, users []*models.User) error {
	return r.pg.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		for _, user := range users {
			query := squirrel.Insert("users").
				Columns("name", "email", "password", "mobile", "gender", "photo", "role", "is_verified").
				Values(user.Name, user.Email, user.Password, user.Mobile, user.Gender, user.Photo, user.Role, user.IsVerified).
				Suffix("RETURNING id").
				PlaceholderFormat(squirrel.Dollar)

			sql, args, err := query.ToSql()
			if err != nil {
				return fmt.Errorf("error building SQL: %w", err)
			}

			if err := tx.QueryRow(ctx, sql, args...).Scan(&user.ID); err != nil {
				if dberrors.IsUniqueViolation(err) {
					return apperrors.NewConflictError(fmt.Sprintf("email %s already exists", user.Email))
				}
				return fmt.Errorf("error inserting user: %w", err)
			}
		}
		return nil
	})
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := squirrel.Select(userColumns...).
		From("users").
		Where(squirrel.Eq{"email": email}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	user, err := scanUser(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	return user, nil
}

// List retrieves a page of users, optionally filtered by a name or email
// search term, together with the filtered total.
func (r *UserRepository) List(ctx context.Context, search string, offset uint64, limit int) ([]*models.User, int64, error) {
	base := squirrel.Select(userColumns...).
		From("users").
		OrderBy("created_at DESC").
		Offset(offset).
		Limit(uint64(limit)).
		PlaceholderFormat(squirrel.Dollar)

	countQuery := squirrel.Select("COUNT(*)").
		From("users").
		PlaceholderFormat(squirrel.Dollar)

	if search != "" {
		pattern := "%" + search + "%"
		filter := squirrel.Or{
			squirrel.ILike{"name": pattern},
			squirrel.ILike{"email": pattern},
		}
		base = base.Where(filter)
		countQuery = countQuery.Where(filter)
	}

	sql, args, err := base.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning row: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	countSQL, countArgs, err := countQuery.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building SQL: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error executing count: %w", err)
	}

	return users, total, nil
}

// UpdateProfile updates a user's own mutable fields; nil fields are untouched
func (r *UserRepository) UpdateProfile(ctx context.Context, id int64, name, gender, mobile, photo *string) error {
	query := squirrel.Update("users").
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	if name != nil {
		query = query.Set("name", *name)
	}
	if gender != nil {
		query = query.Set("gender", *gender)
	}
	if mobile != nil {
		query = query.Set("mobile", *mobile)
	}
	if photo != nil {
		query = query.Set("photo", *photo)
	}

	return r.execUpdate(ctx, query)
}

// UpdatePassword replaces a user's password hash
func (r *UserRepository) UpdatePassword(ctx context.Context, id int64, hashedPassword string) error {
	query := squirrel.Update("users").
		Set("password", hashedPassword).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)
	return r.execUpdate(ctx, query)
}

// UpdateRole changes a user's role
func (r *UserRepository) UpdateRole(ctx context.Context, id int64, role models.Role) error {
	query := squirrel.Update("users").
		Set("role", role).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)
	return r.execUpdate(ctx, query)
}

// SetVerified marks the account with the given email as verified
func (r *UserRepository) SetVerified(ctx context.Context, email string) error {
	query := squirrel.Update("users").
		Set("is_verified", true).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"email": email}).
		PlaceholderFormat(squirrel.Dollar)
	return r.execUpdate(ctx, query)
}

// SetBanned flips a user's banned flag
func (r *UserRepository) SetBanned(ctx context.Context, id int64, banned bool) error {
	query := squirrel.Update("users").
		Set("is_banned", banned).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)
	return r.execUpdate(ctx, query)
}

// BumpTokenVersion increments the user's token version, invalidating every
// outstanding one-time code token minted before the bump.
func (r *UserRepository) BumpTokenVersion(ctx context.Context, email string) error {
	query := squirrel.Update("users").
		Set("token_version", squirrel.Expr("token_version + 1")).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"email": email}).
		PlaceholderFormat(squirrel.Dollar)
	return r.execUpdate(ctx, query)
}

// BulkDelete removes the given accounts, skipping unknown ids. superAdmin
// rows are never matched, so they survive even when listed.
func (r *UserRepository) BulkDelete(ctx context.Context, ids []int64) (int64, error) {
	query := squirrel.Delete("users").
		Where(squirrel.Eq{"id": ids}).
		Where(squirrel.NotEq{"role": models.RoleSuperAdmin}).
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

// Counts returns headline user counts
func (r *UserRepository) Counts(ctx context.Context) (*UserCounts, error) {
	query := squirrel.Select(
		"COUNT(*)",
		"COUNT(*) FILTER (WHERE is_verified)",
		"COUNT(*) FILTER (WHERE is_banned)",
		"COUNT(*) FILTER (WHERE role IN ('admin', 'superAdmin'))",
	).From("users").PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	var counts UserCounts
	err = r.db.QueryRow(ctx, sql, args...).Scan(&counts.Total, &counts.Verified, &counts.Banned, &counts.Admins)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	return &counts, nil
}

func (r *UserRepository) execUpdate(ctx context.Context, query squirrel.UpdateBuilder) error {
	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error executing update: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}
