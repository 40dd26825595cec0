package repository

import (
	"context"
	"errors"

	"afisha-backend/internal/database"
	"afisha-backend/internal/model"

	"github.com/jackc/pgx/v5"
)

// RequestRepository handles persistence for participation requests.
type RequestRepository struct {
	db *database.DB
}

// NewRequestRepository constructs a RequestRepository.
func NewRequestRepository(db *database.DB) *RequestRepository {
	return &RequestRepository{db: db}
}

// Create inserts a new participation request. A concurrent duplicate for the
// same (event, requester) pair trips the partial unique index and returns
// ErrAlreadyExists.
func (r *RequestRepository) Create(ctx context.Context, req *model.ParticipationRequest) error {
	_, err := r.db.Querier(ctx).Exec(ctx,
		`INSERT INTO requests (id, event_id, requester_id, created, status)
		 VALUES ($1, $2, $3, $4, $5)`,
		req.ID, req.EventID, req.RequesterID, req.Created, string(req.Status),
	)
	if err != nil {
		return wrapPg("insert request", err)
	}
	return nil
}

// GetByID returns a single request or ErrNotFound.
func (r *RequestRepository) GetByID(ctx context.Context, id string) (*model.ParticipationRequest, error) {
	var req model.ParticipationRequest
	err := r.db.Querier(ctx).QueryRow(ctx,
		`SELECT id, event_id, requester_id, created, status FROM requests WHERE id = $1`, id,
	).Scan(&req.ID, &req.EventID, &req.RequesterID, &req.Created, &req.Status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, wrapPg("get request", err)
	}
	return &req, nil
}

// ExistsActive reports whether the requester already has a non-canceled
// request for the event.
func (r *RequestRepository) ExistsActive(ctx context.Context, requesterID, eventID string) (bool, error) {
	var exists bool
	err := r.db.Querier(ctx).QueryRow(ctx,
		`SELECT EXISTS (
			SELECT 1 FROM requests
			WHERE requester_id = $1 AND event_id = $2 AND status <> 'CANCELED'
		)`,
		requesterID, eventID,
	).Scan(&exists)
	if err != nil {
		return false, wrapPg("active request exists", err)
	}
	return exists, nil
}

// FindByIDs returns the requests matching the given ids, preserving the
// input order. Ids with no matching row are skipped.
func (r *RequestRepository) FindByIDs(ctx context.Context, ids []string) ([]model.ParticipationRequest, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := r.db.Querier(ctx).Query(ctx,
		`SELECT id, event_id, requester_id, created, status FROM requests WHERE id = ANY($1)`,
		ids,
	)
	if err != nil {
		return nil, wrapPg("find requests by ids", err)
	}
	found, err := collectRequests(rows)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]model.ParticipationRequest, len(found))
	for _, req := range found {
		byID[req.ID] = req
	}
	ordered := make([]model.ParticipationRequest, 0, len(found))
	for _, id := range ids {
		if req, ok := byID[id]; ok {
			ordered = append(ordered, req)
		}
	}
	return ordered, nil
}

// UpdateStatus sets the status of a single request.
func (r *RequestRepository) UpdateStatus(ctx context.Context, id string, status model.RequestStatus) error {
	tag, err := r.db.Querier(ctx).Exec(ctx,
		`UPDATE requests SET status = $2 WHERE id = $1`, id, string(status),
	)
	if err != nil {
		return wrapPg("update request status", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateStatuses sets the status of every listed request.
func (r *RequestRepository) UpdateStatuses(ctx context.Context, ids []string, status model.RequestStatus) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := r.db.Querier(ctx).Exec(ctx,
		`UPDATE requests SET status = $2 WHERE id = ANY($1)`, ids, string(status),
	)
	if err != nil {
		return wrapPg("update request statuses", err)
	}
	return nil
}

// ListByRequester returns every request made by a user, oldest first.
func (r *RequestRepository) ListByRequester(ctx context.Context, requesterID string) ([]model.ParticipationRequest, error) {
	rows, err := r.db.Querier(ctx).Query(ctx,
		`SELECT id, event_id, requester_id, created, status FROM requests
		 WHERE requester_id = $1 ORDER BY created ASC`,
		requesterID,
	)
	if err != nil {
		return nil, wrapPg("list requests by requester", err)
	}
	return collectRequests(rows)
}

// ListByEvent returns every request targeting an event, oldest first.
func (r *RequestRepository) ListByEvent(ctx context.Context, eventID string) ([]model.ParticipationRequest, error) {
	rows, err := r.db.Querier(ctx).Query(ctx,
		`SELECT id, event_id, requester_id, created, status FROM requests
		 WHERE event_id = $1 ORDER BY created ASC`,
		eventID,
	)
	if err != nil {
		return nil, wrapPg("list requests by event", err)
	}
	return collectRequests(rows)
}

func collectRequests(rows pgx.Rows) ([]model.ParticipationRequest, error) {
	defer rows.Close()
	var reqs []model.ParticipationRequest
	for rows.Next() {
		var req model.ParticipationRequest
		if err := rows.Scan(&req.ID, &req.EventID, &req.RequesterID, &req.Created, &req.Status); err != nil {
			return nil, wrapPg("scan request", err)
		}
		reqs = append(reqs, req)
	}
	return reqs, rows.Err()
}
