package service

import (
	"context"

	"afisha-backend/internal/model"
)

// TxRunner executes a function inside a single storage transaction. Every
// store call made with the context passed to fn shares that transaction.
type TxRunner interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// UserStore is the persistence contract for users.
type UserStore interface {
	Create(ctx context.Context, u *model.User) error
	GetByID(ctx context.Context, id string) (*model.User, error)
	ExistsByID(ctx context.Context, id string) (bool, error)
	List(ctx context.Context, ids []string, page model.Page) ([]model.User, error)
	Delete(ctx context.Context, id string) error
}

// CategoryStore is the persistence contract for categories.
type CategoryStore interface {
	Create(ctx context.Context, c *model.Category) error
	Update(ctx context.Context, c *model.Category) error
	GetByID(ctx context.Context, id string) (*model.Category, error)
	List(ctx context.Context, page model.Page) ([]model.Category, error)
	Delete(ctx context.Context, id string) error
}

// EventStore is the persistence contract for events. AcquireForUpdate must
// hold an exclusive row lock until the enclosing transaction completes.
type EventStore interface {
	Create(ctx context.Context, e *model.Event) error
	GetByID(ctx context.Context, id string) (*model.Event, error)
	AcquireForUpdate(ctx context.Context, id string) (*model.Event, error)
	ExistsByID(ctx context.Context, id string) (bool, error)
	Update(ctx context.Context, e *model.Event) error
	SaveConfirmedCount(ctx context.Context, e *model.Event) error
	ListByInitiator(ctx context.Context, initiatorID string, page model.Page) ([]model.Event, error)
	GetByIDs(ctx context.Context, ids []string) ([]model.Event, error)
	List(ctx context.Context, filter model.EventFilter, page model.Page) ([]model.Event, error)
}

// RequestStore is the persistence contract for participation requests.
type RequestStore interface {
	Create(ctx context.Context, req *model.ParticipationRequest) error
	GetByID(ctx context.Context, id string) (*model.ParticipationRequest, error)
	ExistsActive(ctx context.Context, requesterID, eventID string) (bool, error)
	FindByIDs(ctx context.Context, ids []string) ([]model.ParticipationRequest, error)
	UpdateStatus(ctx context.Context, id string, status model.RequestStatus) error
	UpdateStatuses(ctx context.Context, ids []string, status model.RequestStatus) error
	ListByRequester(ctx context.Context, requesterID string) ([]model.ParticipationRequest, error)
	ListByEvent(ctx context.Context, eventID string) ([]model.ParticipationRequest, error)
}

// CompilationStore is the persistence contract for compilations.
type CompilationStore interface {
	Create(ctx context.Context, c *model.Compilation) error
	Update(ctx context.Context, c *model.Compilation) error
	GetByID(ctx context.Context, id string) (*model.Compilation, error)
	List(ctx context.Context, pinned *bool, page model.Page) ([]model.Compilation, error)
	Delete(ctx context.Context, id string) error
}
