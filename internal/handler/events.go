package handler

import (
	"net/http"

	"afisha-backend/internal/model"
	"afisha-backend/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

// EventHandler holds the HTTP handlers for the event API.
type EventHandler struct {
	svc      *service.EventService
	validate *validator.Validate
}

// NewEventHandler constructs an EventHandler.
func NewEventHandler(svc *service.EventService, validate *validator.Validate) *EventHandler {
	return &EventHandler{svc: svc, validate: validate}
}

// Create handles POST /users/{userId}/events
func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload model.NewEventPayload
	if !decodeValid(w, r, h.validate, &payload) {
		return
	}

	event, err := h.svc.Create(r.Context(), chi.URLParam(r, "userId"), payload)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, event)
}

// ListOwn handles GET /users/{userId}/events
func (h *EventHandler) ListOwn(w http.ResponseWriter, r *http.Request) {
	page, err := parsePage(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid paging parameters.", err.Error())
		return
	}

	events, err := h.svc.ListByInitiator(r.Context(), chi.URLParam(r, "userId"), page)
	if err != nil {
		respondError(w, err)
		return
	}
	writeEvents(w, events)
}

// GetOwn handles GET /users/{userId}/events/{eventId}
func (h *EventHandler) GetOwn(w http.ResponseWriter, r *http.Request) {
	event, err := h.svc.GetOwn(r.Context(), chi.URLParam(r, "userId"), chi.URLParam(r, "eventId"))
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, event)
}

// UpdateOwn handles PATCH /users/{userId}/events/{eventId}
func (h *EventHandler) UpdateOwn(w http.ResponseWriter, r *http.Request) {
	var payload model.UpdateEventPayload
	if !decodeValid(w, r, h.validate, &payload) {
		return
	}

	event, err := h.svc.UpdateByInitiator(r.Context(), chi.URLParam(r, "userId"), chi.URLParam(r, "eventId"), payload)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, event)
}

// Moderate handles PATCH /admin/events/{eventId}
func (h *EventHandler) Moderate(w http.ResponseWriter, r *http.Request) {
	var payload model.ModerateEventPayload
	if !decodeValid(w, r, h.validate, &payload) {
		return
	}

	event, err := h.svc.Moderate(r.Context(), chi.URLParam(r, "eventId"), payload.StateAction)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, event)
}

// ListAdmin handles GET /admin/events?users=&states=&from=&size=
func (h *EventHandler) ListAdmin(w http.ResponseWriter, r *http.Request) {
	page, err := parsePage(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid paging parameters.", err.Error())
		return
	}
	filter := model.EventFilter{
		Initiators: r.URL.Query()["users"],
	}
	for _, s := range r.URL.Query()["states"] {
		filter.States = append(filter.States, model.EventState(s))
	}

	events, err := h.svc.FindAdmin(r.Context(), filter, page)
	if err != nil {
		respondError(w, err)
		return
	}
	writeEvents(w, events)
}

// ListPublic handles GET /events?text=&category=&paid=&from=&size=
func (h *EventHandler) ListPublic(w http.ResponseWriter, r *http.Request) {
	page, err := parsePage(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid paging parameters.", err.Error())
		return
	}
	paid, err := parseBoolParam(r, "paid")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid filter.", err.Error())
		return
	}
	filter := model.EventFilter{
		Text:       r.URL.Query().Get("text"),
		CategoryID: r.URL.Query().Get("category"),
		Paid:       paid,
	}

	events, err := h.svc.FindPublic(r.Context(), filter, page)
	if err != nil {
		respondError(w, err)
		return
	}
	writeEvents(w, events)
}

// GetPublic handles GET /events/{eventId}
func (h *EventHandler) GetPublic(w http.ResponseWriter, r *http.Request) {
	event, err := h.svc.GetPublished(r.Context(), chi.URLParam(r, "eventId"))
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, event)
}

func writeEvents(w http.ResponseWriter, events []model.Event) {
	if events == nil {
		events = []model.Event{}
	}
	writeJSON(w, http.StatusOK, events)
}
