package model

import "time"

// RequestStatus is the lifecycle state of a participation request.
type RequestStatus string

const (
	RequestStatusPending   RequestStatus = "PENDING"
	RequestStatusConfirmed RequestStatus = "CONFIRMED"
	RequestStatusRejected  RequestStatus = "REJECTED"
	RequestStatusCanceled  RequestStatus = "CANCELED"
)

// ParticipationRequest is a user's request to join an event. Requests are
// never deleted; cancellation is a terminal status kept for history.
type ParticipationRequest struct {
	ID          string        `json:"id"`
	EventID     string        `json:"event"`
	RequesterID string        `json:"requester"`
	Created     time.Time     `json:"created"`
	Status      RequestStatus `json:"status"`
}

// RequestStatusUpdate is the bulk moderation payload submitted by an event's
// initiator. Status may only name a decision, not an entry state.
type RequestStatusUpdate struct {
	RequestIDs []string      `json:"requestIds" validate:"required,min=1,dive,uuid"`
	Status     RequestStatus `json:"status" validate:"required,oneof=CONFIRMED REJECTED"`
}

// RequestStatusUpdateResult reports the outcome of a bulk moderation call.
type RequestStatusUpdateResult struct {
	Confirmed []ParticipationRequest `json:"confirmedRequests"`
	Rejected  []ParticipationRequest `json:"rejectedRequests"`
}
