package handler

import (
	"net/http"
	"time"

	"afisha-backend/internal/model"
	"afisha-backend/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

// RequestHandler holds the HTTP handlers for the participation-request API.
type RequestHandler struct {
	svc      *service.RequestService
	validate *validator.Validate
}

// NewRequestHandler constructs a RequestHandler.
func NewRequestHandler(svc *service.RequestService, validate *validator.Validate) *RequestHandler {
	return &RequestHandler{svc: svc, validate: validate}
}

// Create handles POST /users/{userId}/requests?eventId=
func (h *RequestHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	eventID := r.URL.Query().Get("eventId")
	if eventID == "" {
		writeError(w, http.StatusBadRequest, "Missing parameter.", "eventId is required")
		return
	}

	req, err := h.svc.Create(r.Context(), userID, eventID, time.Now())
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, req)
}

// Cancel handles PATCH /users/{userId}/requests/{requestId}/cancel
func (h *RequestHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	requestID := chi.URLParam(r, "requestId")

	req, err := h.svc.Cancel(r.Context(), userID, requestID)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, req)
}

// ListOwn handles GET /users/{userId}/requests
func (h *RequestHandler) ListOwn(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")

	reqs, err := h.svc.FindByRequester(r.Context(), userID)
	if err != nil {
		respondError(w, err)
		return
	}
	if reqs == nil {
		reqs = []model.ParticipationRequest{}
	}
	writeJSON(w, http.StatusOK, reqs)
}

// ListByEvent handles GET /users/{userId}/events/{eventId}/requests
func (h *RequestHandler) ListByEvent(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	eventID := chi.URLParam(r, "eventId")

	reqs, err := h.svc.FindByEvent(r.Context(), userID, eventID)
	if err != nil {
		respondError(w, err)
		return
	}
	if reqs == nil {
		reqs = []model.ParticipationRequest{}
	}
	writeJSON(w, http.StatusOK, reqs)
}

// UpdateStatuses handles PATCH /users/{userId}/events/{eventId}/requests
func (h *RequestHandler) UpdateStatuses(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	eventID := chi.URLParam(r, "eventId")

	var upd model.RequestStatusUpdate
	if !decodeValid(w, r, h.validate, &upd) {
		return
	}

	result, err := h.svc.UpdateStatuses(r.Context(), userID, eventID, upd)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
