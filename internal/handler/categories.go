package handler

import (
	"net/http"

	"afisha-backend/internal/model"
	"afisha-backend/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

// CategoryHandler holds the HTTP handlers for the category API.
type CategoryHandler struct {
	svc      *service.CategoryService
	validate *validator.Validate
}

// NewCategoryHandler constructs a CategoryHandler.
func NewCategoryHandler(svc *service.CategoryService, validate *validator.Validate) *CategoryHandler {
	return &CategoryHandler{svc: svc, validate: validate}
}

// Create handles POST /admin/categories
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload model.CategoryPayload
	if !decodeValid(w, r, h.validate, &payload) {
		return
	}

	cat, err := h.svc.Create(r.Context(), payload)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, cat)
}

// Update handles PATCH /admin/categories/{catId}
func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	var payload model.CategoryPayload
	if !decodeValid(w, r, h.validate, &payload) {
		return
	}

	cat, err := h.svc.Update(r.Context(), chi.URLParam(r, "catId"), payload)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cat)
}

// Delete handles DELETE /admin/categories/{catId}
func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "catId")); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Get handles GET /categories/{catId}
func (h *CategoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	cat, err := h.svc.Get(r.Context(), chi.URLParam(r, "catId"))
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cat)
}

// List handles GET /categories?from=&size=
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := parsePage(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid paging parameters.", err.Error())
		return
	}

	cats, err := h.svc.List(r.Context(), page)
	if err != nil {
		respondError(w, err)
		return
	}
	if cats == nil {
		cats = []model.Category{}
	}
	writeJSON(w, http.StatusOK, cats)
}
