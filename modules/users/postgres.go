package users

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/rolekit/pkg/pg"
)

// PostgresStore is the pgx-backed user store.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a store over the given connection pool.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const userColumns = `id, username, email, name, password_hash, source,
	is_service_account, mfa_enabled, mfa_secret, created_at, deleted_at`

func scanUser(row pgx.Row) (*User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.Name, &u.PasswordHash,
		&u.Source, &u.IsServiceAccount, &u.MFAEnabled, &u.MFASecret,
		&u.CreatedAt, &u.DeletedAt)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return &u, nil
}

func (s *PostgresStore) List(ctx context.Context, filter ListFilter) ([]*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE deleted_at IS NULL`
	var args []any

	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		query += fmt.Sprintf(` AND (username ILIKE $%d OR email ILIKE $%d OR name ILIKE $%d)`,
			len(args), len(args), len(args))
	}
	if filter.ExcludeServiceAccounts {
		query += ` AND NOT is_service_account`
	}
	query += ` ORDER BY username`
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(` LIMIT $%d`, len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(` OFFSET $%d`, len(args))
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	var out []*User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (s *PostgresStore) ByID(ctx context.Context, id uuid.UUID) (*User, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1 AND deleted_at IS NULL`, id)
	return scanUser(row)
}

func (s *PostgresStore) ByIDs(ctx context.Context, ids []uuid.UUID) ([]*User, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := s.pool.Query(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ANY($1) AND deleted_at IS NULL`, ids)
	if err != nil {
		return nil, fmt.Errorf("query users by ids: %w", err)
	}
	defer rows.Close()

	var out []*User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (s *PostgresStore) Create(ctx context.Context, u *User) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO users (id, username, email, name, password_hash, source,
		                    is_service_account, mfa_enabled, mfa_secret)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		u.ID, u.Username, u.Email, u.Name, u.PasswordHash, u.Source,
		u.IsServiceAccount, u.MFAEnabled, u.MFASecret)
	if err != nil {
		if pg.IsDuplicateKeyError(err) {
			return ErrDuplicateUser
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (s *PostgresStore) Update(ctx context.Context, u *User) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE users
		 SET email = $2, name = $3, password_hash = $4, source = $5,
		     is_service_account = $6, mfa_enabled = $7, mfa_secret = $8
		 WHERE id = $1 AND deleted_at IS NULL`,
		u.ID, u.Email, u.Name, u.PasswordHash, u.Source,
		u.IsServiceAccount, u.MFAEnabled, u.MFASecret)
	if err != nil {
		if pg.IsDuplicateKeyError(err) {
			return ErrDuplicateUser
		}
		return fmt.Errorf("update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (s *PostgresStore) SoftDelete(ctx context.Context, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE users SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`, id)
	if err != nil {
		return fmt.Errorf("soft delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}
