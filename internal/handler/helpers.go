// Package handler contains chi HTTP handlers that translate HTTP
// requests/responses to and from the service layer.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"afisha-backend/internal/model"
	"afisha-backend/internal/repository"
	"afisha-backend/internal/service"

	"github.com/go-playground/validator/v10"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, reason, msg string) {
	writeJSON(w, status, model.ErrorResponse{
		Status: statusName(status),
		Reason: reason,
		Error:  msg,
	})
}

func statusName(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "BAD_REQUEST"
	case http.StatusNotFound:
		return "NOT_FOUND"
	case http.StatusConflict:
		return "CONFLICT"
	case http.StatusServiceUnavailable:
		return "SERVICE_UNAVAILABLE"
	default:
		return "INTERNAL_SERVER_ERROR"
	}
}

// respondError maps domain errors onto HTTP statuses: missing objects are
// 404, business-rule violations 409, transient store contention 503 (safe
// for the client to retry the whole operation), everything else 500.
func respondError(w http.ResponseWriter, err error) {
	var conflict service.ConflictError
	switch {
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, "The required object was not found.", err.Error())
	case errors.As(err, &conflict):
		writeError(w, http.StatusConflict, "The operation violates a business rule.", conflict.Reason)
	case errors.Is(err, repository.ErrAlreadyExists):
		writeError(w, http.StatusConflict, "The object already exists.", err.Error())
	case errors.Is(err, repository.ErrReferenced):
		writeError(w, http.StatusConflict, "The object is still referenced.", err.Error())
	case errors.Is(err, repository.ErrUnavailable):
		writeError(w, http.StatusServiceUnavailable, "The store is temporarily unavailable, retry the request.", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "Unexpected error.", err.Error())
	}
}

func decodeJSON(r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(nil, r.Body, 1<<20) // 1 MB limit
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// decodeValid decodes the body into dst and runs struct validation;
// a false return means the error response has already been written.
func decodeValid(w http.ResponseWriter, r *http.Request, validate *validator.Validate, dst any) bool {
	if err := decodeJSON(r, dst); err != nil {
		writeError(w, http.StatusBadRequest, "Malformed request body.", err.Error())
		return false
	}
	if err := validate.Struct(dst); err != nil {
		writeError(w, http.StatusBadRequest, "Request validation failed.", err.Error())
		return false
	}
	return true
}

// parsePage reads the from/size paging window, defaulting to 0/10.
func parsePage(r *http.Request) (model.Page, error) {
	page := model.DefaultPage
	if raw := r.URL.Query().Get("from"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return page, errors.New("from must be a non-negative integer")
		}
		page.From = n
	}
	if raw := r.URL.Query().Get("size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return page, errors.New("size must be a positive integer")
		}
		page.Size = n
	}
	return page, nil
}

func parseBoolParam(r *http.Request, name string) (*bool, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, errors.New(name + " must be a boolean")
	}
	return &v, nil
}
