package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kin-platform/kin-backend/internal/pkg/apperrors"
)

func joinColumns(columns []string) string {
	return strings.Join(columns, ", ")
}

// Crud bundles the lookup, list, count and delete plumbing shared by every
// table-backed repository. Concrete repositories embed it and add their
// entity-specific queries on top.
type Crud[T any] struct {
	db      *pgxpool.Pool
	table   string
	columns []string
	scan    func(row pgx.Row) (*T, error)
}

// NewCrud creates the shared repository core for one table. scan must read
// exactly the given columns, in order.
func NewCrud[T any](db *pgxpool.Pool, table string, columns []string, scan func(row pgx.Row) (*T, error)) Crud[T] {
	return Crud[T]{
		db:      db,
		table:   table,
		columns: columns,
		scan:    scan,
	}
}

// GetByID retrieves a single entity by primary key
func (c *Crud[T]) GetByID(ctx context.Context, id int64) (*T, error) {
	query := squirrel.Select(c.columns...).
		From(c.table).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	entity, err := c.scan(c.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	return entity, nil
}

// List retrieves a page of entities ordered by the given clause
func (c *Crud[T]) List(ctx context.Context, orderBy string, offset uint64, limit int) ([]*T, error) {
	query := squirrel.Select(c.columns...).
		From(c.table).
		OrderBy(orderBy).
		Offset(offset).
		Limit(uint64(limit)).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := c.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var entities []*T
	for rows.Next() {
		entity, err := c.scan(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		entities = append(entities, entity)
	}
	return entities, rows.Err()
}

// Count returns the total number of rows in the table
func (c *Crud[T]) Count(ctx context.Context) (int64, error) {
	query := squirrel.Select("COUNT(*)").
		From(c.table).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}

	var count int64
	if err := c.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("error executing query: %w", err)
	}
	return count, nil
}

// DeleteByID removes an entity by primary key. Deleting a missing row
// returns ErrNotFound.
func (c *Crud[T]) DeleteByID(ctx context.Context, id int64) error {
	query := squirrel.Delete(c.table).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	tag, err := c.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error executing delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// ExistsByID reports whether a row with the given primary key exists
func (c *Crud[T]) ExistsByID(ctx context.Context, id int64) (bool, error) {
	query := squirrel.Select("1").
		From(c.table).
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return false, fmt.Errorf("error building SQL: %w", err)
	}

	var one int
	err = c.db.QueryRow(ctx, sql, args...).Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("error executing query: %w", err)
	}
	return true, nil
}
