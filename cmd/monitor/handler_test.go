package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMux(reg *Registry) *http.ServeMux {
	hub := NewHub(reg, zerolog.Nop())
	opts := CheckOptions{Threshold: time.Minute, MinTabs: 1, PerCheck: 2}
	return NewMux(reg, hub, opts, zerolog.Nop())
}

func do(t *testing.T, mux http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestRegisterTab(t *testing.T) {
	reg, _ := newTestRegistry()
	mux := newTestMux(reg)

	rec := do(t, mux, http.MethodPost, "/tabs", `{"title":"Docs","url":"https://docs.example","idleSeconds":120}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp registerResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.ID)

	tabs := reg.List()
	require.Len(t, tabs, 1)
	assert.Equal(t, "Docs", tabs[0].Title)
}

func TestRegisterTab_BadRequests(t *testing.T) {
	reg, _ := newTestRegistry()
	mux := newTestMux(reg)

	assert.Equal(t, http.StatusBadRequest, do(t, mux, http.MethodPost, "/tabs", `{`).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, mux, http.MethodPost, "/tabs", `{"idleSeconds":5}`).Code)
	assert.Empty(t, reg.List())
}

func TestListTabs(t *testing.T) {
	reg, _ := newTestRegistry()
	reg.Register("a", "", 0)
	reg.Register("b", "", 0)
	mux := newTestMux(reg)

	rec := do(t, mux, http.MethodGet, "/tabs", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var tabs []Tab
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tabs))
	assert.Len(t, tabs, 2)
}

func TestTouchTab(t *testing.T) {
	reg, _ := newTestRegistry()
	id := reg.Register("a", "", time.Hour)
	mux := newTestMux(reg)

	assert.Equal(t, http.StatusOK, do(t, mux, http.MethodPost, "/tabs/touch", `{"id":1}`).Code)
	assert.Equal(t, http.StatusNotFound, do(t, mux, http.MethodPost, "/tabs/touch", `{"id":7}`).Code)
	assert.Empty(t, reg.PickIdle(time.Minute, 0, 1), "tab %d was just touched", id)
}

func TestStatsEndpoints(t *testing.T) {
	reg, _ := newTestRegistry()
	id := reg.Register("a", "", 0)
	freed, err := reg.Discard(id)
	require.NoError(t, err)
	mux := newTestMux(reg)

	var s Stats
	rec := do(t, mux, http.MethodGet, "/stats", "")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &s))
	assert.Equal(t, Stats{Tabs: 1, Discarded: 1, FreedMB: freed}, s)

	rec = do(t, mux, http.MethodPost, "/stats/reset", "")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &s))
	assert.Equal(t, Stats{Tabs: 1}, s)
}

func TestCheckNow_NoOverlays(t *testing.T) {
	reg, _ := newTestRegistry()
	reg.Register("a", "", time.Hour)
	mux := newTestMux(reg)

	rec := do(t, mux, http.MethodPost, "/check", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"offered":0}`, rec.Body.String())
}

func TestHealth(t *testing.T) {
	reg, _ := newTestRegistry()
	rec := do(t, newTestMux(reg), http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}
