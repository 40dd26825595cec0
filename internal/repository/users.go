package repository

import (
	"context"
	"errors"

	"afisha-backend/internal/database"
	"afisha-backend/internal/model"

	"github.com/jackc/pgx/v5"
)

// UserRepository handles persistence for users.
type UserRepository struct {
	db *database.DB
}

// NewUserRepository constructs a UserRepository.
func NewUserRepository(db *database.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user.
func (r *UserRepository) Create(ctx context.Context, u *model.User) error {
	_, err := r.db.Querier(ctx).Exec(ctx,
		`INSERT INTO users (id, name, email, created_at) VALUES ($1, $2, $3, $4)`,
		u.ID, u.Name, u.Email, u.Created,
	)
	if err != nil {
		return wrapPg("insert user", err)
	}
	return nil
}

// GetByID returns a single user or ErrNotFound.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	var u model.User
	err := r.db.Querier(ctx).QueryRow(ctx,
		`SELECT id, name, email, created_at FROM users WHERE id = $1`, id,
	).Scan(&u.ID, &u.Name, &u.Email, &u.Created)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, wrapPg("get user", err)
	}
	return &u, nil
}

// ExistsByID reports whether a user exists.
func (r *UserRepository) ExistsByID(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.db.Querier(ctx).QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`, id,
	).Scan(&exists)
	if err != nil {
		return false, wrapPg("user exists", err)
	}
	return exists, nil
}

// List returns users ordered by creation time, optionally restricted to the
// given ids, within the paging window.
func (r *UserRepository) List(ctx context.Context, ids []string, page model.Page) ([]model.User, error) {
	query := `SELECT id, name, email, created_at FROM users`
	args := []any{}
	if len(ids) > 0 {
		query += ` WHERE id = ANY($1) ORDER BY created_at ASC OFFSET $2 LIMIT $3`
		args = append(args, ids, page.From, page.Size)
	} else {
		query += ` ORDER BY created_at ASC OFFSET $1 LIMIT $2`
		args = append(args, page.From, page.Size)
	}

	rows, err := r.db.Querier(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, wrapPg("list users", err)
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Created); err != nil {
			return nil, wrapPg("scan user", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// Delete removes a user or returns ErrNotFound.
func (r *UserRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Querier(ctx).Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return wrapPg("delete user", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
