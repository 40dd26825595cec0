// Package service implements business logic and orchestration between HTTP
// handlers and the repository layer. The participation-request admission
// workflow lives here.
package service

// ConflictError signals that an operation would violate a business
// invariant. It is a comparable value type so callers can match a specific
// rule with errors.Is or any conflict with errors.As.
type ConflictError struct {
	Reason string
}

func (e ConflictError) Error() string { return e.Reason }

var (
	// ErrDuplicateRequest: the requester already has a non-canceled request
	// for this event.
	ErrDuplicateRequest = ConflictError{"duplicate request"}
	// ErrOwnEvent: an initiator cannot request participation in their own event.
	ErrOwnEvent = ConflictError{"initiator cannot request own event"}
	// ErrEventNotPublished: requests may only target events already published.
	ErrEventNotPublished = ConflictError{"event not open for requests"}
	// ErrLimitExceeded: the event's confirmed count already equals its limit.
	ErrLimitExceeded = ConflictError{"limit exceeded"}
	// ErrLimitReached: bulk confirmation refused because the event is full.
	ErrLimitReached = ConflictError{"limit reached"}
	// ErrRejectConfirmed: a bulk rejection included an already-confirmed request.
	ErrRejectConfirmed = ConflictError{"cannot reject an already-confirmed request"}
	// ErrDemoteConfirmed: capacity ran out mid-batch on an already-confirmed
	// request, which must never be silently demoted.
	ErrDemoteConfirmed = ConflictError{"cannot demote an already-confirmed request"}

	// ErrNotOwner: the event does not belong to the acting user.
	ErrNotOwner = ConflictError{"event does not belong to user"}
	// ErrEventNotPending: admin moderation applies only to pending events.
	ErrEventNotPending = ConflictError{"event is not pending moderation"}
	// ErrEventPublished: a published event cannot be edited by its initiator.
	ErrEventPublished = ConflictError{"published event cannot be modified"}
	// ErrEventDateTooSoon: events must start at least two hours from now.
	ErrEventDateTooSoon = ConflictError{"event date must be at least two hours in the future"}
)
