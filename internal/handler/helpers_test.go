package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"afisha-backend/internal/model"
	"afisha-backend/internal/repository"
	"afisha-backend/internal/service"

	"github.com/stretchr/testify/require"
)

func TestRespondError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantName   string
	}{
		{"not found", repository.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"wrapped not found", fmt.Errorf("user abc: %w", repository.ErrNotFound), http.StatusNotFound, "NOT_FOUND"},
		{"business conflict", service.ErrLimitExceeded, http.StatusConflict, "CONFLICT"},
		{"duplicate key", repository.ErrAlreadyExists, http.StatusConflict, "CONFLICT"},
		{"still referenced", repository.ErrReferenced, http.StatusConflict, "CONFLICT"},
		{"store contention", repository.ErrUnavailable, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE"},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			respondError(rec, tt.err)

			require.Equal(t, tt.wantStatus, rec.Code)
			require.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var body model.ErrorResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			require.Equal(t, tt.wantName, body.Status)
		})
	}
}

func TestRespondErrorConflictCarriesReason(t *testing.T) {
	rec := httptest.NewRecorder()
	respondError(rec, service.ErrDuplicateRequest)

	var body model.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.Equal(t, service.ErrDuplicateRequest.Reason, body.Error)
}

func TestParsePage(t *testing.T) {
	get := func(query string) (model.Page, error) {
		r := httptest.NewRequest(http.MethodGet, "/events"+query, nil)
		return parsePage(r)
	}

	page, err := get("")
	require.NoError(t, err)
	require.Equal(t, model.DefaultPage, page)

	page, err = get("?from=20&size=5")
	require.NoError(t, err)
	require.Equal(t, model.Page{From: 20, Size: 5}, page)

	_, err = get("?from=-1")
	require.Error(t, err)

	_, err = get("?size=0")
	require.Error(t, err)

	_, err = get("?size=many")
	require.Error(t, err)
}

func TestParseBoolParam(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/events?paid=true", nil)
	v, err := parseBoolParam(r, "paid")
	require.NoError(t, err)
	require.NotNil(t, v)
	require.True(t, *v)

	r = httptest.NewRequest(http.MethodGet, "/events", nil)
	v, err = parseBoolParam(r, "paid")
	require.NoError(t, err)
	require.Nil(t, v)

	r = httptest.NewRequest(http.MethodGet, "/events?paid=maybe", nil)
	_, err = parseBoolParam(r, "paid")
	require.Error(t, err)
}

func TestDecodeJSONRejectsUnknownFields(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/admin/categories",
		strings.NewReader(`{"name":"music","surprise":true}`))

	var payload model.CategoryPayload
	err := decodeJSON(r, &payload)
	require.Error(t, err)
}

func TestDecodeValidWritesBadRequest(t *testing.T) {
	validate := NewValidator()

	rec := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/admin/categories", strings.NewReader(`{`))
	var payload model.CategoryPayload
	require.False(t, decodeValid(rec, r, validate, &payload))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	r = httptest.NewRequest(http.MethodPost, "/admin/categories", strings.NewReader(`{"name":""}`))
	require.False(t, decodeValid(rec, r, validate, &payload))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	r = httptest.NewRequest(http.MethodPost, "/admin/categories", strings.NewReader(`{"name":"music"}`))
	require.True(t, decodeValid(rec, r, validate, &payload))
	require.Equal(t, "music", payload.Name)
}
