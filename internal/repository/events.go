package repository

import (
	"context"
	"errors"
	"fmt"

	"afisha-backend/internal/database"
	"afisha-backend/internal/model"

	"github.com/jackc/pgx/v5"
)

const eventColumns = `id, title, annotation, description, category_id, initiator_id,
	event_date, paid, participant_limit, request_moderation, confirmed_requests,
	state, created_on, published_on`

// EventRepository handles persistence for events.
type EventRepository struct {
	db *database.DB
}

// NewEventRepository constructs an EventRepository.
func NewEventRepository(db *database.DB) *EventRepository {
	return &EventRepository{db: db}
}

func scanEvent(row pgx.Row) (*model.Event, error) {
	var e model.Event
	err := row.Scan(
		&e.ID, &e.Title, &e.Annotation, &e.Description, &e.CategoryID, &e.InitiatorID,
		&e.EventDate, &e.Paid, &e.ParticipantLimit, &e.RequestModeration, &e.ConfirmedRequests,
		&e.State, &e.CreatedOn, &e.PublishedOn,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// Create inserts a new event.
func (r *EventRepository) Create(ctx context.Context, e *model.Event) error {
	_, err := r.db.Querier(ctx).Exec(ctx,
		`INSERT INTO events (id, title, annotation, description, category_id, initiator_id,
			event_date, paid, participant_limit, request_moderation, confirmed_requests,
			state, created_on, published_on)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		e.ID, e.Title, e.Annotation, e.Description, e.CategoryID, e.InitiatorID,
		e.EventDate, e.Paid, e.ParticipantLimit, e.RequestModeration, e.ConfirmedRequests,
		e.State, e.CreatedOn, e.PublishedOn,
	)
	if err != nil {
		return wrapPg("insert event", err)
	}
	return nil
}

// GetByID returns a single event or ErrNotFound.
func (r *EventRepository) GetByID(ctx context.Context, id string) (*model.Event, error) {
	e, err := scanEvent(r.db.Querier(ctx).QueryRow(ctx,
		`SELECT `+eventColumns+` FROM events WHERE id = $1`, id,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, wrapPg("get event", err)
	}
	return e, nil
}

// AcquireForUpdate obtains the event row with an exclusive lock held until
// the enclosing transaction completes. Any concurrent admission decision on
// the same event blocks here, so the capacity counter can never be read
// stale. Must be called inside a transaction.
func (r *EventRepository) AcquireForUpdate(ctx context.Context, id string) (*model.Event, error) {
	e, err := scanEvent(r.db.Querier(ctx).QueryRow(ctx,
		`SELECT `+eventColumns+` FROM events WHERE id = $1 FOR UPDATE`, id,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, wrapPg("lock event row", err)
	}
	return e, nil
}

// ExistsByID reports whether an event exists.
func (r *EventRepository) ExistsByID(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.db.Querier(ctx).QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM events WHERE id = $1)`, id,
	).Scan(&exists)
	if err != nil {
		return false, wrapPg("event exists", err)
	}
	return exists, nil
}

// Update persists every mutable field of an event.
func (r *EventRepository) Update(ctx context.Context, e *model.Event) error {
	tag, err := r.db.Querier(ctx).Exec(ctx,
		`UPDATE events SET title = $2, annotation = $3, description = $4, category_id = $5,
			event_date = $6, paid = $7, participant_limit = $8, request_moderation = $9,
			confirmed_requests = $10, state = $11, published_on = $12
		 WHERE id = $1`,
		e.ID, e.Title, e.Annotation, e.Description, e.CategoryID,
		e.EventDate, e.Paid, e.ParticipantLimit, e.RequestModeration,
		e.ConfirmedRequests, e.State, e.PublishedOn,
	)
	if err != nil {
		return wrapPg("update event", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// SaveConfirmedCount persists only the capacity counter. Callers must hold
// the row lock taken by AcquireForUpdate.
func (r *EventRepository) SaveConfirmedCount(ctx context.Context, e *model.Event) error {
	tag, err := r.db.Querier(ctx).Exec(ctx,
		`UPDATE events SET confirmed_requests = $2 WHERE id = $1`,
		e.ID, e.ConfirmedRequests,
	)
	if err != nil {
		return wrapPg("save confirmed count", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ListByInitiator returns the initiator's events, newest first.
func (r *EventRepository) ListByInitiator(ctx context.Context, initiatorID string, page model.Page) ([]model.Event, error) {
	rows, err := r.db.Querier(ctx).Query(ctx,
		`SELECT `+eventColumns+` FROM events WHERE initiator_id = $1
		 ORDER BY created_on DESC OFFSET $2 LIMIT $3`,
		initiatorID, page.From, page.Size,
	)
	if err != nil {
		return nil, wrapPg("list events by initiator", err)
	}
	return collectEvents(rows)
}

// GetByIDs returns the events matching the given ids, in no particular order.
func (r *EventRepository) GetByIDs(ctx context.Context, ids []string) ([]model.Event, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := r.db.Querier(ctx).Query(ctx,
		`SELECT `+eventColumns+` FROM events WHERE id = ANY($1)`, ids,
	)
	if err != nil {
		return nil, wrapPg("get events by ids", err)
	}
	return collectEvents(rows)
}

// List returns events matching the filter, soonest first.
func (r *EventRepository) List(ctx context.Context, filter model.EventFilter, page model.Page) ([]model.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE 1=1`
	args := []any{}
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.Text != "" {
		p := arg("%" + filter.Text + "%")
		query += ` AND (annotation ILIKE ` + p + ` OR description ILIKE ` + p + `)`
	}
	if filter.CategoryID != "" {
		query += ` AND category_id = ` + arg(filter.CategoryID)
	}
	if filter.Paid != nil {
		query += ` AND paid = ` + arg(*filter.Paid)
	}
	if len(filter.States) > 0 {
		states := make([]string, len(filter.States))
		for i, s := range filter.States {
			states[i] = string(s)
		}
		query += ` AND state = ANY(` + arg(states) + `)`
	}
	if len(filter.Initiators) > 0 {
		query += ` AND initiator_id = ANY(` + arg(filter.Initiators) + `)`
	}
	query += ` ORDER BY event_date ASC OFFSET ` + arg(page.From) + ` LIMIT ` + arg(page.Size)

	rows, err := r.db.Querier(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, wrapPg("list events", err)
	}
	return collectEvents(rows)
}

func collectEvents(rows pgx.Rows) ([]model.Event, error) {
	defer rows.Close()
	var events []model.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, wrapPg("scan event", err)
		}
		events = append(events, *e)
	}
	return events, rows.Err()
}
