package service

import (
	"context"
	"strings"

	"afisha-backend/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// CategoryService handles the event category registry.
type CategoryService struct {
	categories CategoryStore
	logger     zerolog.Logger
}

// NewCategoryService constructs a CategoryService.
func NewCategoryService(categories CategoryStore, logger zerolog.Logger) *CategoryService {
	return &CategoryService{
		categories: categories,
		logger:     logger.With().Str("component", "categories").Logger(),
	}
}

// Create adds a category. Duplicate names surface as
// repository.ErrAlreadyExists.
func (s *CategoryService) Create(ctx context.Context, payload model.CategoryPayload) (*model.Category, error) {
	c := &model.Category{
		ID:   uuid.New().String(),
		Name: strings.TrimSpace(payload.Name),
	}
	if err := s.categories.Create(ctx, c); err != nil {
		return nil, err
	}
	s.logger.Info().Str("category_id", c.ID).Msg("category created")
	return c, nil
}

// Update renames a category.
func (s *CategoryService) Update(ctx context.Context, id string, payload model.CategoryPayload) (*model.Category, error) {
	c, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	c.Name = strings.TrimSpace(payload.Name)
	if err := s.categories.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Get returns a single category.
func (s *CategoryService) Get(ctx context.Context, id string) (*model.Category, error) {
	return s.categories.GetByID(ctx, id)
}

// List returns categories within the paging window.
func (s *CategoryService) List(ctx context.Context, page model.Page) ([]model.Category, error) {
	return s.categories.List(ctx, page)
}

// Delete removes a category. Categories still referenced by events surface
// as repository.ErrReferenced.
func (s *CategoryService) Delete(ctx context.Context, id string) error {
	if err := s.categories.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("category_id", id).Msg("category deleted")
	return nil
}
