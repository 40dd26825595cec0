package service

import (
	"context"

	"afisha-backend/internal/model"
)

// CapacityGuard owns the invariant "confirmed requests never exceed the
// participant limit" for a single event. AcquireForUpdate serializes every
// admission decision on the event: the row lock is held until the enclosing
// transaction commits, so two concurrent decisions can never both observe a
// stale confirmed count and jointly overshoot the limit.
//
// The arithmetic methods never fail; they saturate at the bounds. The caller
// applies exactly the reserved number of confirmations before the
// transaction commits.
type CapacityGuard struct {
	events EventStore
}

// NewCapacityGuard constructs a CapacityGuard over an event store.
func NewCapacityGuard(events EventStore) *CapacityGuard {
	return &CapacityGuard{events: events}
}

// AcquireForUpdate locks the event row exclusively for the rest of the
// enclosing transaction and returns the current record.
// Returns repository.ErrNotFound when no such event exists.
func (g *CapacityGuard) AcquireForUpdate(ctx context.Context, eventID string) (*model.Event, error) {
	return g.events.AcquireForUpdate(ctx, eventID)
}

// TryReserve returns how many of count slots are actually available:
// min(count, remaining capacity). An unlimited event always grants the full
// count. The event is not mutated; the caller applies the reservation.
func (g *CapacityGuard) TryReserve(e *model.Event, count int) int {
	if count <= 0 {
		return 0
	}
	if e.Unlimited() {
		return count
	}
	remaining := e.ParticipantLimit - e.ConfirmedRequests
	if remaining < 0 {
		remaining = 0
	}
	if count < remaining {
		return count
	}
	return remaining
}

// Release frees count previously confirmed slots, never dropping the
// counter below zero. The caller persists the event afterwards.
func (g *CapacityGuard) Release(e *model.Event, count int) {
	if count <= 0 {
		return
	}
	e.ConfirmedRequests -= count
	if e.ConfirmedRequests < 0 {
		e.ConfirmedRequests = 0
	}
}
