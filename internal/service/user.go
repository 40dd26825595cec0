package service

import (
	"context"
	"strings"
	"time"

	"afisha-backend/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// UserService handles the admin user registry.
type UserService struct {
	users  UserStore
	logger zerolog.Logger
}

// NewUserService constructs a UserService.
func NewUserService(users UserStore, logger zerolog.Logger) *UserService {
	return &UserService{
		users:  users,
		logger: logger.With().Str("component", "users").Logger(),
	}
}

// Create registers a new user. A taken email surfaces as
// repository.ErrAlreadyExists.
func (s *UserService) Create(ctx context.Context, payload model.NewUserPayload) (*model.User, error) {
	u := &model.User{
		ID:      uuid.New().String(),
		Name:    strings.TrimSpace(payload.Name),
		Email:   strings.TrimSpace(strings.ToLower(payload.Email)),
		Created: time.Now().UTC(),
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	s.logger.Info().Str("user_id", u.ID).Msg("user registered")
	return u, nil
}

// List returns users, optionally restricted to ids.
func (s *UserService) List(ctx context.Context, ids []string, page model.Page) ([]model.User, error) {
	return s.users.List(ctx, ids, page)
}

// Delete removes a user.
func (s *UserService) Delete(ctx context.Context, id string) error {
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("user_id", id).Msg("user deleted")
	return nil
}
