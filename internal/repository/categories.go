package repository

import (
	"context"
	"errors"

	"afisha-backend/internal/database"
	"afisha-backend/internal/model"

	"github.com/jackc/pgx/v5"
)

// CategoryRepository handles persistence for categories.
type CategoryRepository struct {
	db *database.DB
}

// NewCategoryRepository constructs a CategoryRepository.
func NewCategoryRepository(db *database.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// Create inserts a new category. Duplicate names return ErrAlreadyExists.
func (r *CategoryRepository) Create(ctx context.Context, c *model.Category) error {
	_, err := r.db.Querier(ctx).Exec(ctx,
		`INSERT INTO categories (id, name) VALUES ($1, $2)`, c.ID, c.Name,
	)
	if err != nil {
		return wrapPg("insert category", err)
	}
	return nil
}

// Update renames a category.
func (r *CategoryRepository) Update(ctx context.Context, c *model.Category) error {
	tag, err := r.db.Querier(ctx).Exec(ctx,
		`UPDATE categories SET name = $2 WHERE id = $1`, c.ID, c.Name,
	)
	if err != nil {
		return wrapPg("update category", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// GetByID returns a single category or ErrNotFound.
func (r *CategoryRepository) GetByID(ctx context.Context, id string) (*model.Category, error) {
	var c model.Category
	err := r.db.Querier(ctx).QueryRow(ctx,
		`SELECT id, name FROM categories WHERE id = $1`, id,
	).Scan(&c.ID, &c.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, wrapPg("get category", err)
	}
	return &c, nil
}

// List returns categories ordered by name within the paging window.
func (r *CategoryRepository) List(ctx context.Context, page model.Page) ([]model.Category, error) {
	rows, err := r.db.Querier(ctx).Query(ctx,
		`SELECT id, name FROM categories ORDER BY name ASC OFFSET $1 LIMIT $2`,
		page.From, page.Size,
	)
	if err != nil {
		return nil, wrapPg("list categories", err)
	}
	defer rows.Close()

	var cats []model.Category
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, wrapPg("scan category", err)
		}
		cats = append(cats, c)
	}
	return cats, rows.Err()
}

// Delete removes a category. Categories still referenced by events return
// ErrReferenced.
func (r *CategoryRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Querier(ctx).Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return wrapPg("delete category", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
