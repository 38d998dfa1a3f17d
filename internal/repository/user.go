package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/rosterd/rosterd/internal/model"
)

// CreateUser inserts a new user and returns the canonical stored row.
// A unique-constraint conflict on email surfaces as a StorageError with
// KindUniqueViolation; any other store failure, including a missing
// post-insert row, is KindUnknown.
func (r *Repository) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	query := `
		INSERT INTO users (id, email, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, email, password_hash, created_at, updated_at
	`

	stored, err := scanUser(r.pool.QueryRow(ctx, query,
		user.ID,
		user.Email,
		user.PasswordHash,
		user.CreatedAt,
		user.UpdatedAt,
	))
	if err != nil {
		return nil, classify("create user", err)
	}

	return stored, nil
}

// FindUserByID retrieves a user by ID. Absence is not an error: the
// second return value reports whether the user exists. Store failures
// return a StorageError.
func (r *Repository) FindUserByID(ctx context.Context, id string) (*model.User, bool, error) {
	query := `
		SELECT id, email, password_hash, created_at, updated_at
		FROM users
		WHERE id = $1
	`

	user, err := scanUser(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, classify("find user by id", err)
	}

	return user, true, nil
}

// FindUserByEmail retrieves a user by email address. Used for the
// uniqueness pre-check on creation. Absence is not an error.
func (r *Repository) FindUserByEmail(ctx context.Context, email string) (*model.User, bool, error) {
	query := `
		SELECT id, email, password_hash, created_at, updated_at
		FROM users
		WHERE email = $1
	`

	user, err := scanUser(r.pool.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, classify("find user by email", err)
	}

	return user, true, nil
}

// DeleteUser removes a user by ID. The second return value reports
// whether a row was deleted.
func (r *Repository) DeleteUser(ctx context.Context, id string) (bool, error) {
	query := `DELETE FROM users WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return false, classify("delete user", err)
	}

	return result.RowsAffected() > 0, nil
}

// scanUser scans a single row into a User model. A scan failure on a
// malformed row is surfaced to the caller, never coerced into a
// zero-valued entity.
func scanUser(row pgx.Row) (*model.User, error) {
	var user model.User
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}
