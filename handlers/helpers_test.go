package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Dosada05/swiss-tournament/services"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapServiceErrorToHTTP(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("%w: id 4", services.ErrTournamentNotFound), http.StatusNotFound},
		{services.ErrPlayerNotFound, http.StatusNotFound},
		{services.ErrAlreadyEnrolled, http.StatusConflict},
		{services.ErrDuplicatePairing, http.StatusConflict},
		{services.ErrSelfMatch, http.StatusUnprocessableEntity},
		{services.ErrInvalidWinner, http.StatusUnprocessableEntity},
		{services.ErrNotEnrolled, http.StatusUnprocessableEntity},
		{fmt.Errorf("tournament 1: %w", services.ErrOddPlayerCount), http.StatusUnprocessableEntity},
		{services.ErrNameRequired, http.StatusBadRequest},
		{services.ErrInvalidCredentials, http.StatusUnauthorized},
		{services.ErrExportUnavailable, http.StatusServiceUnavailable},
		{errors.New("disk on fire"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			rec := httptest.NewRecorder()
			mapServiceErrorToHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil), tt.err)
			assert.Equal(t, tt.want, rec.Code)
			assert.Contains(t, rec.Body.String(), `"error"`)
		})
	}
}

func TestServerErrorHidesCause(t *testing.T) {
	rec := httptest.NewRecorder()
	serverErrorResponse(rec, httptest.NewRequest(http.MethodGet, "/", nil), errors.New("pq: password authentication failed"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestGetIDFromURL(t *testing.T) {
	tests := []struct {
		value   string
		want    int
		wantErr bool
	}{
		{"12", 12, false},
		{"0", 0, true},
		{"-3", 0, true},
		{"abc", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("tournamentID", tt.value)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

		got, err := getIDFromURL(req, "tournamentID")
		if tt.wantErr {
			assert.Error(t, err, tt.value)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestReadJSON(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{"valid", `{"name":"Open"}`, ""},
		{"empty", ``, "must not be empty"},
		{"unknown field", `{"title":"Open"}`, "unknown key"},
		{"wrong type", `{"name":5}`, "incorrect JSON type"},
		{"two values", `{"name":"a"}{"name":"b"}`, "single JSON value"},
		{"malformed", `{"name":`, "badly-formed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var dst services.CreateTournamentInput
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			err := readJSON(httptest.NewRecorder(), req, &dst)
			if tt.wantErr == "" {
				require.NoError(t, err)
				assert.Equal(t, "Open", dst.Name)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestOriginChecker(t *testing.T) {
	check := originChecker([]string{"https://app.example.com"})

	req := httptest.NewRequest(http.MethodGet, "http://api.example.com/ws/tournaments/1", nil)
	assert.True(t, check(req), "no origin header")

	req.Header.Set("Origin", "https://app.example.com")
	assert.True(t, check(req))

	req.Header.Set("Origin", "https://evil.example.com")
	assert.False(t, check(req))

	req.Header.Set("Origin", "http://api.example.com")
	assert.True(t, check(req), "same host")

	assert.True(t, originChecker([]string{"*"})(req))
}
