// Package model defines the core domain types for the event-management backend.
package model

import "time"

// EventState is the moderation lifecycle of an event itself.
type EventState string

const (
	EventStatePending   EventState = "PENDING"
	EventStatePublished EventState = "PUBLISHED"
	EventStateCanceled  EventState = "CANCELED"
)

// StateAction is an admin moderation verb applied to a pending event.
type StateAction string

const (
	StateActionPublish StateAction = "PUBLISH_EVENT"
	StateActionReject  StateAction = "REJECT_EVENT"
)

// Event represents an event created by an initiator, joinable through
// participation requests.
type Event struct {
	ID                string     `json:"id"`
	Title             string     `json:"title"`
	Annotation        string     `json:"annotation"`
	Description       string     `json:"description"`
	CategoryID        string     `json:"category"`
	InitiatorID       string     `json:"initiator"`
	EventDate         time.Time  `json:"eventDate"`
	Paid              bool       `json:"paid"`
	ParticipantLimit  int        `json:"participantLimit"`
	RequestModeration bool       `json:"requestModeration"`
	ConfirmedRequests int        `json:"confirmedRequests"`
	State             EventState `json:"state"`
	CreatedOn         time.Time  `json:"createdOn"`
	PublishedOn       *time.Time `json:"publishedOn,omitempty"`
}

// Unlimited reports whether the event accepts any number of participants.
// A participant limit of zero means no limit.
func (e *Event) Unlimited() bool {
	return e.ParticipantLimit == 0
}

// IsFull returns true when no confirmed slots remain.
func (e *Event) IsFull() bool {
	return !e.Unlimited() && e.ConfirmedRequests >= e.ParticipantLimit
}

// Moderated reports whether joining this event requires explicit confirmation.
// An event with no participant limit auto-confirms regardless of the flag.
func (e *Event) Moderated() bool {
	return e.RequestModeration && !e.Unlimited()
}

// ModerationPolicy normalizes the tri-state wire flag into a two-valued
// policy. The flag is nullable on the wire; an absent value means fallback.
func ModerationPolicy(flag *bool, fallback bool) bool {
	if flag == nil {
		return fallback
	}
	return *flag
}

// NewEventPayload is the payload for creating a new event.
// RequestModeration is nullable on the wire and defaults to true.
type NewEventPayload struct {
	Title             string    `json:"title" validate:"required,min=3,max=120"`
	Annotation        string    `json:"annotation" validate:"required,min=20,max=2000"`
	Description       string    `json:"description" validate:"required,min=20,max=7000"`
	CategoryID        string    `json:"category" validate:"required,uuid"`
	EventDate         time.Time `json:"eventDate" validate:"required"`
	Paid              bool      `json:"paid"`
	ParticipantLimit  int       `json:"participantLimit" validate:"min=0"`
	RequestModeration *bool     `json:"requestModeration"`
}

// UpdateEventPayload is the patch payload for an event owned by its initiator.
// Nil fields are left unchanged.
type UpdateEventPayload struct {
	Title             *string    `json:"title,omitempty" validate:"omitempty,min=3,max=120"`
	Annotation        *string    `json:"annotation,omitempty" validate:"omitempty,min=20,max=2000"`
	Description       *string    `json:"description,omitempty" validate:"omitempty,min=20,max=7000"`
	CategoryID        *string    `json:"category,omitempty" validate:"omitempty,uuid"`
	EventDate         *time.Time `json:"eventDate,omitempty"`
	Paid              *bool      `json:"paid,omitempty"`
	ParticipantLimit  *int       `json:"participantLimit,omitempty" validate:"omitempty,min=0"`
	RequestModeration *bool      `json:"requestModeration,omitempty"`
}

// ModerateEventPayload is the admin moderation payload.
type ModerateEventPayload struct {
	StateAction StateAction `json:"stateAction" validate:"required,oneof=PUBLISH_EVENT REJECT_EVENT"`
}

// EventFilter narrows event listings.
type EventFilter struct {
	Text       string
	CategoryID string
	Paid       *bool
	States     []EventState
	Initiators []string
}
