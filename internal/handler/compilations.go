package handler

import (
	"net/http"

	"afisha-backend/internal/model"
	"afisha-backend/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

// CompilationHandler holds the HTTP handlers for the compilation API.
type CompilationHandler struct {
	svc      *service.CompilationService
	validate *validator.Validate
}

// NewCompilationHandler constructs a CompilationHandler.
func NewCompilationHandler(svc *service.CompilationService, validate *validator.Validate) *CompilationHandler {
	return &CompilationHandler{svc: svc, validate: validate}
}

// Create handles POST /admin/compilations
func (h *CompilationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload model.NewCompilationPayload
	if !decodeValid(w, r, h.validate, &payload) {
		return
	}

	comp, err := h.svc.Create(r.Context(), payload)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, comp)
}

// Update handles PATCH /admin/compilations/{compId}
func (h *CompilationHandler) Update(w http.ResponseWriter, r *http.Request) {
	var payload model.UpdateCompilationPayload
	if !decodeValid(w, r, h.validate, &payload) {
		return
	}

	comp, err := h.svc.Update(r.Context(), chi.URLParam(r, "compId"), payload)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, comp)
}

// Delete handles DELETE /admin/compilations/{compId}
func (h *CompilationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "compId")); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Get handles GET /compilations/{compId}
func (h *CompilationHandler) Get(w http.ResponseWriter, r *http.Request) {
	comp, err := h.svc.Get(r.Context(), chi.URLParam(r, "compId"))
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, comp)
}

// List handles GET /compilations?pinned=&from=&size=
func (h *CompilationHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := parsePage(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid paging parameters.", err.Error())
		return
	}
	pinned, err := parseBoolParam(r, "pinned")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid filter.", err.Error())
		return
	}

	comps, err := h.svc.List(r.Context(), pinned, page)
	if err != nil {
		respondError(w, err)
		return
	}
	if comps == nil {
		comps = []model.Compilation{}
	}
	writeJSON(w, http.StatusOK, comps)
}
