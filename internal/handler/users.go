package handler

import (
	"net/http"

	"afisha-backend/internal/model"
	"afisha-backend/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

// UserHandler holds the HTTP handlers for the admin user API.
type UserHandler struct {
	svc      *service.UserService
	validate *validator.Validate
}

// NewUserHandler constructs a UserHandler.
func NewUserHandler(svc *service.UserService, validate *validator.Validate) *UserHandler {
	return &UserHandler{svc: svc, validate: validate}
}

// Create handles POST /admin/users
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload model.NewUserPayload
	if !decodeValid(w, r, h.validate, &payload) {
		return
	}

	user, err := h.svc.Create(r.Context(), payload)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

// List handles GET /admin/users?ids=&from=&size=
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := parsePage(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid paging parameters.", err.Error())
		return
	}
	ids := r.URL.Query()["ids"]

	users, err := h.svc.List(r.Context(), ids, page)
	if err != nil {
		respondError(w, err)
		return
	}
	if users == nil {
		users = []model.User{}
	}
	writeJSON(w, http.StatusOK, users)
}

// Delete handles DELETE /admin/users/{userId}
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "userId")); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
