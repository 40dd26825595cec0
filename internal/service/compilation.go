package service

import (
	"context"
	"strings"

	"afisha-backend/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// CompilationService handles curated event selections.
type CompilationService struct {
	compilations CompilationStore
	events       EventStore
	logger       zerolog.Logger
}

// NewCompilationService constructs a CompilationService.
func NewCompilationService(compilations CompilationStore, events EventStore, logger zerolog.Logger) *CompilationService {
	return &CompilationService{
		compilations: compilations,
		events:       events,
		logger:       logger.With().Str("component", "compilations").Logger(),
	}
}

// Create adds a compilation over the given events. Unknown event ids are
// dropped from the selection.
func (s *CompilationService) Create(ctx context.Context, payload model.NewCompilationPayload) (*model.Compilation, error) {
	events, err := s.events.GetByIDs(ctx, payload.EventIDs)
	if err != nil {
		return nil, err
	}
	if events == nil {
		events = []model.Event{}
	}
	c := &model.Compilation{
		ID:     uuid.New().String(),
		Title:  strings.TrimSpace(payload.Title),
		Pinned: payload.Pinned,
		Events: events,
	}
	if err := s.compilations.Create(ctx, c); err != nil {
		return nil, err
	}
	s.logger.Info().Str("compilation_id", c.ID).Int("events", len(c.Events)).Msg("compilation created")
	return c, nil
}

// Update patches a compilation; a non-nil event list replaces the whole
// selection.
func (s *CompilationService) Update(ctx context.Context, id string, payload model.UpdateCompilationPayload) (*model.Compilation, error) {
	c, err := s.compilations.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if payload.Title != nil {
		c.Title = strings.TrimSpace(*payload.Title)
	}
	if payload.Pinned != nil {
		c.Pinned = *payload.Pinned
	}
	if payload.EventIDs != nil {
		events, err := s.events.GetByIDs(ctx, *payload.EventIDs)
		if err != nil {
			return nil, err
		}
		if events == nil {
			events = []model.Event{}
		}
		c.Events = events
	}
	if err := s.compilations.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Get returns a single compilation with its events.
func (s *CompilationService) Get(ctx context.Context, id string) (*model.Compilation, error) {
	return s.compilations.GetByID(ctx, id)
}

// List returns compilations filtered by pinned flag.
func (s *CompilationService) List(ctx context.Context, pinned *bool, page model.Page) ([]model.Compilation, error) {
	return s.compilations.List(ctx, pinned, page)
}

// Delete removes a compilation.
func (s *CompilationService) Delete(ctx context.Context, id string) error {
	if err := s.compilations.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("compilation_id", id).Msg("compilation deleted")
	return nil
}
