package repository

import (
	"context"
	"errors"

	"afisha-backend/internal/database"
	"afisha-backend/internal/model"

	"github.com/jackc/pgx/v5"
)

// CompilationRepository handles persistence for compilations and their
// event membership.
type CompilationRepository struct {
	db *database.DB
}

// NewCompilationRepository constructs a CompilationRepository.
func NewCompilationRepository(db *database.DB) *CompilationRepository {
	return &CompilationRepository{db: db}
}

// Create inserts a compilation together with its event membership rows.
func (r *CompilationRepository) Create(ctx context.Context, c *model.Compilation) error {
	q := r.db.Querier(ctx)
	_, err := q.Exec(ctx,
		`INSERT INTO compilations (id, title, pinned) VALUES ($1, $2, $3)`,
		c.ID, c.Title, c.Pinned,
	)
	if err != nil {
		return wrapPg("insert compilation", err)
	}
	return r.replaceEvents(ctx, c)
}

// Update persists title/pinned and replaces the event membership.
func (r *CompilationRepository) Update(ctx context.Context, c *model.Compilation) error {
	tag, err := r.db.Querier(ctx).Exec(ctx,
		`UPDATE compilations SET title = $2, pinned = $3 WHERE id = $1`,
		c.ID, c.Title, c.Pinned,
	)
	if err != nil {
		return wrapPg("update compilation", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	if _, err := r.db.Querier(ctx).Exec(ctx,
		`DELETE FROM compilation_events WHERE compilation_id = $1`, c.ID,
	); err != nil {
		return wrapPg("clear compilation events", err)
	}
	return r.replaceEvents(ctx, c)
}

func (r *CompilationRepository) replaceEvents(ctx context.Context, c *model.Compilation) error {
	q := r.db.Querier(ctx)
	for _, e := range c.Events {
		if _, err := q.Exec(ctx,
			`INSERT INTO compilation_events (compilation_id, event_id) VALUES ($1, $2)`,
			c.ID, e.ID,
		); err != nil {
			return wrapPg("insert compilation event", err)
		}
	}
	return nil
}

// Delete removes a compilation (membership rows cascade).
func (r *CompilationRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Querier(ctx).Exec(ctx, `DELETE FROM compilations WHERE id = $1`, id)
	if err != nil {
		return wrapPg("delete compilation", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// GetByID returns a compilation with its events attached, or ErrNotFound.
func (r *CompilationRepository) GetByID(ctx context.Context, id string) (*model.Compilation, error) {
	var c model.Compilation
	err := r.db.Querier(ctx).QueryRow(ctx,
		`SELECT id, title, pinned FROM compilations WHERE id = $1`, id,
	).Scan(&c.ID, &c.Title, &c.Pinned)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, wrapPg("get compilation", err)
	}
	if err := r.attachEvents(ctx, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// List returns compilations filtered by pinned flag within the paging
// window, each with its events attached.
func (r *CompilationRepository) List(ctx context.Context, pinned *bool, page model.Page) ([]model.Compilation, error) {
	query := `SELECT id, title, pinned FROM compilations`
	args := []any{}
	if pinned != nil {
		query += ` WHERE pinned = $1 ORDER BY title ASC OFFSET $2 LIMIT $3`
		args = append(args, *pinned, page.From, page.Size)
	} else {
		query += ` ORDER BY title ASC OFFSET $1 LIMIT $2`
		args = append(args, page.From, page.Size)
	}

	rows, err := r.db.Querier(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, wrapPg("list compilations", err)
	}
	defer rows.Close()

	var comps []model.Compilation
	for rows.Next() {
		var c model.Compilation
		if err := rows.Scan(&c.ID, &c.Title, &c.Pinned); err != nil {
			return nil, wrapPg("scan compilation", err)
		}
		comps = append(comps, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range comps {
		if err := r.attachEvents(ctx, &comps[i]); err != nil {
			return nil, err
		}
	}
	return comps, nil
}

func (r *CompilationRepository) attachEvents(ctx context.Context, c *model.Compilation) error {
	rows, err := r.db.Querier(ctx).Query(ctx,
		`SELECT `+eventColumns+` FROM events
		 WHERE id IN (SELECT event_id FROM compilation_events WHERE compilation_id = $1)
		 ORDER BY event_date ASC`,
		c.ID,
	)
	if err != nil {
		return wrapPg("load compilation events", err)
	}
	events, err := collectEvents(rows)
	if err != nil {
		return err
	}
	if events == nil {
		events = []model.Event{}
	}
	c.Events = events
	return nil
}
