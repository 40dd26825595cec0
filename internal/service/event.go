package service

import (
	"context"
	"fmt"
	"time"

	"afisha-backend/internal/model"
	"afisha-backend/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// minLeadTime is the minimum gap between now and an event's start, both at
// creation and on every reschedule.
const minLeadTime = 2 * time.Hour

// EventService handles the event lifecycle outside of admission: creation,
// initiator edits, admin moderation, and listings.
type EventService struct {
	events     EventStore
	users      UserStore
	categories CategoryStore
	logger     zerolog.Logger
	now        func() time.Time
}

// NewEventService constructs an EventService.
func NewEventService(events EventStore, users UserStore, categories CategoryStore, logger zerolog.Logger) *EventService {
	return &EventService{
		events:     events,
		users:      users,
		categories: categories,
		logger:     logger.With().Str("component", "events").Logger(),
		now:        time.Now,
	}
}

// Create registers a new event in PENDING state. An absent moderation flag
// defaults to true: new events require confirmation unless stated otherwise.
func (s *EventService) Create(ctx context.Context, initiatorID string, payload model.NewEventPayload) (*model.Event, error) {
	exists, err := s.users.ExistsByID(ctx, initiatorID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("user %s: %w", initiatorID, repository.ErrNotFound)
	}
	if _, err := s.categories.GetByID(ctx, payload.CategoryID); err != nil {
		return nil, fmt.Errorf("category %s: %w", payload.CategoryID, err)
	}
	if payload.EventDate.Before(s.now().Add(minLeadTime)) {
		return nil, ErrEventDateTooSoon
	}

	e := &model.Event{
		ID:                uuid.New().String(),
		Title:             payload.Title,
		Annotation:        payload.Annotation,
		Description:       payload.Description,
		CategoryID:        payload.CategoryID,
		InitiatorID:       initiatorID,
		EventDate:         payload.EventDate.UTC(),
		Paid:              payload.Paid,
		ParticipantLimit:  payload.ParticipantLimit,
		RequestModeration: model.ModerationPolicy(payload.RequestModeration, true),
		ConfirmedRequests: 0,
		State:             model.EventStatePending,
		CreatedOn:         s.now().UTC(),
	}
	if err := s.events.Create(ctx, e); err != nil {
		return nil, err
	}
	s.logger.Info().Str("event_id", e.ID).Str("initiator_id", initiatorID).Msg("event created")
	return e, nil
}

// UpdateByInitiator patches an event owned by the user. Published events are
// frozen for their initiator.
func (s *EventService) UpdateByInitiator(ctx context.Context, initiatorID, eventID string, payload model.UpdateEventPayload) (*model.Event, error) {
	e, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if e.InitiatorID != initiatorID {
		return nil, ErrNotOwner
	}
	if e.State == model.EventStatePublished {
		return nil, ErrEventPublished
	}
	if payload.EventDate != nil && payload.EventDate.Before(s.now().Add(minLeadTime)) {
		return nil, ErrEventDateTooSoon
	}
	if payload.CategoryID != nil {
		if _, err := s.categories.GetByID(ctx, *payload.CategoryID); err != nil {
			return nil, fmt.Errorf("category %s: %w", *payload.CategoryID, err)
		}
	}

	applyEventPatch(e, payload)
	if err := s.events.Update(ctx, e); err != nil {
		return nil, err
	}
	s.logger.Info().Str("event_id", e.ID).Msg("event updated by initiator")
	return e, nil
}

func applyEventPatch(e *model.Event, p model.UpdateEventPayload) {
	if p.Title != nil {
		e.Title = *p.Title
	}
	if p.Annotation != nil {
		e.Annotation = *p.Annotation
	}
	if p.Description != nil {
		e.Description = *p.Description
	}
	if p.CategoryID != nil {
		e.CategoryID = *p.CategoryID
	}
	if p.EventDate != nil {
		e.EventDate = p.EventDate.UTC()
	}
	if p.Paid != nil {
		e.Paid = *p.Paid
	}
	if p.ParticipantLimit != nil {
		e.ParticipantLimit = *p.ParticipantLimit
	}
	if p.RequestModeration != nil {
		e.RequestModeration = *p.RequestModeration
	}
}

// Moderate applies an admin publish/reject decision to a pending event.
func (s *EventService) Moderate(ctx context.Context, eventID string, action model.StateAction) (*model.Event, error) {
	e, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if e.State != model.EventStatePending {
		return nil, ErrEventNotPending
	}

	switch action {
	case model.StateActionPublish:
		now := s.now().UTC()
		e.State = model.EventStatePublished
		e.PublishedOn = &now
	case model.StateActionReject:
		e.State = model.EventStateCanceled
	default:
		return nil, fmt.Errorf("unsupported state action %q", action)
	}

	if err := s.events.Update(ctx, e); err != nil {
		return nil, err
	}
	s.logger.Info().Str("event_id", e.ID).Str("action", string(action)).Msg("event moderated")
	return e, nil
}

// GetOwn returns the initiator's own event.
func (s *EventService) GetOwn(ctx context.Context, initiatorID, eventID string) (*model.Event, error) {
	e, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if e.InitiatorID != initiatorID {
		return nil, fmt.Errorf("event %s for user %s: %w", eventID, initiatorID, repository.ErrNotFound)
	}
	return e, nil
}

// GetPublished returns an event visible to the public: published only.
func (s *EventService) GetPublished(ctx context.Context, eventID string) (*model.Event, error) {
	e, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if e.State != model.EventStatePublished {
		return nil, fmt.Errorf("event %s: %w", eventID, repository.ErrNotFound)
	}
	return e, nil
}

// ListByInitiator returns the user's own events.
func (s *EventService) ListByInitiator(ctx context.Context, initiatorID string, page model.Page) ([]model.Event, error) {
	return s.events.ListByInitiator(ctx, initiatorID, page)
}

// FindPublic returns published events matching the filter.
func (s *EventService) FindPublic(ctx context.Context, filter model.EventFilter, page model.Page) ([]model.Event, error) {
	filter.States = []model.EventState{model.EventStatePublished}
	return s.events.List(ctx, filter, page)
}

// FindAdmin returns events matching the filter with no visibility
// restrictions.
func (s *EventService) FindAdmin(ctx context.Context, filter model.EventFilter, page model.Page) ([]model.Event, error) {
	return s.events.List(ctx, filter, page)
}
