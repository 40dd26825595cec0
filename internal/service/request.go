package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"afisha-backend/internal/model"
	"afisha-backend/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// RequestService implements the participation-request admission workflow:
// single-request creation, self-cancellation, and the initiator's bulk
// status update. Every public operation runs as one transaction, and the
// event row lock is always taken before any request row is written, so
// concurrent operations on the same event are totally ordered and at most
// one event lock is ever held per operation.
type RequestService struct {
	tx       TxRunner
	guard    *CapacityGuard
	events   EventStore
	users    UserStore
	requests RequestStore
	logger   zerolog.Logger
}

// NewRequestService constructs a RequestService with its dependencies.
func NewRequestService(
	tx TxRunner,
	events EventStore,
	users UserStore,
	requests RequestStore,
	logger zerolog.Logger,
) *RequestService {
	return &RequestService{
		tx:       tx,
		guard:    NewCapacityGuard(events),
		events:   events,
		users:    users,
		requests: requests,
		logger:   logger.With().Str("component", "requests").Logger(),
	}
}

// Create submits a new participation request. Under moderation with a
// participant limit the request is created PENDING; otherwise it is
// confirmed immediately and the event's confirmed count is incremented in
// the same transaction, under the event row lock, so the limit check and
// the increment cannot be separated by a race window.
func (s *RequestService) Create(ctx context.Context, requesterID, eventID string, now time.Time) (*model.ParticipationRequest, error) {
	var out *model.ParticipationRequest
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		event, err := s.guard.AcquireForUpdate(ctx, eventID)
		if err != nil {
			return err
		}
		exists, err := s.users.ExistsByID(ctx, requesterID)
		if err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("requester %s: %w", requesterID, repository.ErrNotFound)
		}
		dup, err := s.requests.ExistsActive(ctx, requesterID, eventID)
		if err != nil {
			return err
		}
		if dup {
			return ErrDuplicateRequest
		}
		if event.InitiatorID == requesterID {
			return ErrOwnEvent
		}
		if event.State != model.EventStatePublished {
			return ErrEventNotPublished
		}
		if event.IsFull() {
			return ErrLimitExceeded
		}

		req := &model.ParticipationRequest{
			ID:          uuid.New().String(),
			EventID:     eventID,
			RequesterID: requesterID,
			Created:     now.UTC(),
			Status:      model.RequestStatusPending,
		}
		if !event.Moderated() {
			reserved := s.guard.TryReserve(event, 1)
			if reserved == 0 {
				return ErrLimitExceeded
			}
			req.Status = model.RequestStatusConfirmed
			event.ConfirmedRequests += reserved
		}

		if err := s.requests.Create(ctx, req); err != nil {
			if errors.Is(err, repository.ErrAlreadyExists) {
				return ErrDuplicateRequest
			}
			return err
		}
		if req.Status == model.RequestStatusConfirmed {
			if err := s.events.SaveConfirmedCount(ctx, event); err != nil {
				return err
			}
		}
		out = req
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info().
		Str("request_id", out.ID).
		Str("event_id", eventID).
		Str("requester_id", requesterID).
		Str("status", string(out.Status)).
		Msg("participation request created")
	return out, nil
}

// Cancel sets the requester's own request to CANCELED. Canceling an
// already-canceled request is an idempotent no-op returning the stored
// request. A confirmed request frees its slot: the event's confirmed count
// is decremented in the same transaction.
func (s *RequestService) Cancel(ctx context.Context, requesterID, requestID string) (*model.ParticipationRequest, error) {
	var out *model.ParticipationRequest
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		req, err := s.requests.GetByID(ctx, requestID)
		if err != nil {
			return err
		}
		if req.RequesterID != requesterID {
			return fmt.Errorf("request %s for user %s: %w", requestID, requesterID, repository.ErrNotFound)
		}
		if req.Status == model.RequestStatusCanceled {
			out = req
			return nil
		}

		event, err := s.guard.AcquireForUpdate(ctx, req.EventID)
		if err != nil {
			return err
		}
		// Re-read under the event lock: a concurrent bulk update may have
		// moved the status between the first lookup and lock acquisition.
		req, err = s.requests.GetByID(ctx, requestID)
		if err != nil {
			return err
		}
		if req.Status == model.RequestStatusCanceled {
			out = req
			return nil
		}

		wasConfirmed := req.Status == model.RequestStatusConfirmed
		req.Status = model.RequestStatusCanceled
		if err := s.requests.UpdateStatus(ctx, req.ID, model.RequestStatusCanceled); err != nil {
			return err
		}
		if wasConfirmed {
			s.guard.Release(event, 1)
			if err := s.events.SaveConfirmedCount(ctx, event); err != nil {
				return err
			}
		}
		out = req
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info().
		Str("request_id", requestID).
		Str("requester_id", requesterID).
		Msg("participation request canceled")
	return out, nil
}

// UpdateStatuses applies the initiator's bulk confirm/reject decision.
// Missing request ids are silently ignored. Rejection is all-or-nothing:
// one already-confirmed request in the batch fails the whole operation.
// Confirmation walks the batch in input order, recomputing remaining
// capacity after every newly confirmed request, and rejects the remainder
// once the event is full.
func (s *RequestService) UpdateStatuses(ctx context.Context, initiatorID, eventID string, upd model.RequestStatusUpdate) (*model.RequestStatusUpdateResult, error) {
	var result *model.RequestStatusUpdateResult
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		event, err := s.guard.AcquireForUpdate(ctx, eventID)
		if err != nil {
			return err
		}
		exists, err := s.users.ExistsByID(ctx, initiatorID)
		if err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("initiator %s: %w", initiatorID, repository.ErrNotFound)
		}
		reqs, err := s.requests.FindByIDs(ctx, upd.RequestIDs)
		if err != nil {
			return err
		}

		switch upd.Status {
		case model.RequestStatusRejected:
			result, err = s.rejectAll(ctx, reqs)
		case model.RequestStatusConfirmed:
			result, err = s.confirmUpToLimit(ctx, event, reqs)
		default:
			err = fmt.Errorf("unsupported target status %q", upd.Status)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info().
		Str("event_id", eventID).
		Str("target", string(upd.Status)).
		Int("confirmed", len(result.Confirmed)).
		Int("rejected", len(result.Rejected)).
		Msg("bulk request status update")
	return result, nil
}

// rejectAll moves pending requests to REJECTED. Canceled requests are left
// untouched; an already-confirmed request fails the whole batch.
func (s *RequestService) rejectAll(ctx context.Context, reqs []model.ParticipationRequest) (*model.RequestStatusUpdateResult, error) {
	rejected := make([]model.ParticipationRequest, 0, len(reqs))
	var pendingIDs []string
	for _, req := range reqs {
		switch req.Status {
		case model.RequestStatusConfirmed:
			return nil, ErrRejectConfirmed
		case model.RequestStatusCanceled:
			continue
		case model.RequestStatusPending:
			pendingIDs = append(pendingIDs, req.ID)
		}
		req.Status = model.RequestStatusRejected
		rejected = append(rejected, req)
	}
	if err := s.requests.UpdateStatuses(ctx, pendingIDs, model.RequestStatusRejected); err != nil {
		return nil, err
	}
	return &model.RequestStatusUpdateResult{
		Confirmed: []model.ParticipationRequest{},
		Rejected:  rejected,
	}, nil
}

// confirmUpToLimit confirms pending requests in input order while capacity
// remains, then rejects the rest. The confirmed count moves in lockstep with
// the status writes, inside the same transaction.
func (s *RequestService) confirmUpToLimit(ctx context.Context, event *model.Event, reqs []model.ParticipationRequest) (*model.RequestStatusUpdateResult, error) {
	if !event.Moderated() {
		// Requests on unmoderated or unlimited events are confirmed at
		// creation, so there is no decision to make here; report the stored
		// requests back unchanged. A pending request under this policy
		// cannot exist and indicates corrupted state.
		for _, req := range reqs {
			if req.Status == model.RequestStatusPending {
				return nil, fmt.Errorf("pending request %s on unmoderated event %s", req.ID, event.ID)
			}
		}
		if reqs == nil {
			reqs = []model.ParticipationRequest{}
		}
		return &model.RequestStatusUpdateResult{
			Confirmed: reqs,
			Rejected:  []model.ParticipationRequest{},
		}, nil
	}
	if event.IsFull() {
		return nil, ErrLimitReached
	}

	confirmed := make([]model.ParticipationRequest, 0, len(reqs))
	rejected := make([]model.ParticipationRequest, 0)
	var newlyConfirmed, newlyRejected []string
	for _, req := range reqs {
		switch req.Status {
		case model.RequestStatusConfirmed:
			// Already holds a slot; passes through while capacity remains,
			// but must never be demoted once the batch runs out of room.
			if s.guard.TryReserve(event, 1) == 0 {
				return nil, ErrDemoteConfirmed
			}
			confirmed = append(confirmed, req)
		case model.RequestStatusPending:
			if reserved := s.guard.TryReserve(event, 1); reserved > 0 {
				req.Status = model.RequestStatusConfirmed
				event.ConfirmedRequests += reserved
				newlyConfirmed = append(newlyConfirmed, req.ID)
				confirmed = append(confirmed, req)
			} else {
				req.Status = model.RequestStatusRejected
				newlyRejected = append(newlyRejected, req.ID)
				rejected = append(rejected, req)
			}
		default:
			// REJECTED and CANCELED are terminal; skipped like unknown ids.
			continue
		}
	}

	if err := s.requests.UpdateStatuses(ctx, newlyConfirmed, model.RequestStatusConfirmed); err != nil {
		return nil, err
	}
	if err := s.requests.UpdateStatuses(ctx, newlyRejected, model.RequestStatusRejected); err != nil {
		return nil, err
	}
	if err := s.events.SaveConfirmedCount(ctx, event); err != nil {
		return nil, err
	}
	return &model.RequestStatusUpdateResult{Confirmed: confirmed, Rejected: rejected}, nil
}

// FindByRequester returns every request made by the user.
func (s *RequestService) FindByRequester(ctx context.Context, requesterID string) ([]model.ParticipationRequest, error) {
	exists, err := s.users.ExistsByID(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("user %s: %w", requesterID, repository.ErrNotFound)
	}
	return s.requests.ListByRequester(ctx, requesterID)
}

// FindByEvent returns every request targeting the event, for its initiator.
func (s *RequestService) FindByEvent(ctx context.Context, initiatorID, eventID string) ([]model.ParticipationRequest, error) {
	exists, err := s.users.ExistsByID(ctx, initiatorID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("user %s: %w", initiatorID, repository.ErrNotFound)
	}
	ok, err := s.events.ExistsByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("event %s: %w", eventID, repository.ErrNotFound)
	}
	return s.requests.ListByEvent(ctx, eventID)
}
