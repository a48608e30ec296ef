package main

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

type registerRequest struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	IdleSeconds int    `json:"idleSeconds"`
}

type registerResponse struct {
	ID int `json:"id"`
}

type touchRequest struct {
	ID int `json:"id"`
}

const maxRequestBody = 1 << 16 // 64 KB

func writeJSON(w http.ResponseWriter, log zerolog.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("encode response")
	}
}

func writeError(w http.ResponseWriter, log zerolog.Logger, status int, msg string) {
	writeJSON(w, log, status, map[string]string{"error": msg})
}

func ListTabs(reg *Registry, log zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, log, http.StatusOK, reg.List())
	}
}

func RegisterTab(reg *Registry, log zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
		var req registerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, log, http.StatusBadRequest, "invalid json")
			return
		}
		if req.Title == "" && req.URL == "" {
			writeError(w, log, http.StatusBadRequest, "title or url required")
			return
		}
		if req.IdleSeconds < 0 {
			req.IdleSeconds = 0
		}

		id := reg.Register(req.Title, req.URL, time.Duration(req.IdleSeconds)*time.Second)
		log.Info().Int("tab", id).Str("title", req.Title).Msg("tab registered")

		writeJSON(w, log, http.StatusCreated, registerResponse{ID: id})
	}
}

func TouchTab(reg *Registry, log zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
		var req touchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, log, http.StatusBadRequest, "invalid json")
			return
		}
		if !reg.Touch(req.ID) {
			writeError(w, log, http.StatusNotFound, "unknown tab")
			return
		}
		writeJSON(w, log, http.StatusOK, map[string]string{"status": "ok"})
	}
}

func GetStats(reg *Registry, log zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, log, http.StatusOK, reg.Stats())
	}
}

func ResetStats(reg *Registry, log zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reg.ResetStats()
		writeJSON(w, log, http.StatusOK, reg.Stats())
	}
}

// CheckNow runs one idle check immediately, like the periodic one.
func CheckNow(hub *Hub, opts CheckOptions, log zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		offered := hub.Check(r.Context(), opts)
		writeJSON(w, log, http.StatusOK, map[string]int{"offered": offered})
	}
}

func Health() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}
}

// NewMux routes the monitor's HTTP and websocket endpoints.
func NewMux(reg *Registry, hub *Hub, opts CheckOptions, log zerolog.Logger) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /tabs", ListTabs(reg, log))
	mux.HandleFunc("POST /tabs", RegisterTab(reg, log))
	mux.HandleFunc("POST /tabs/touch", TouchTab(reg, log))
	mux.HandleFunc("GET /stats", GetStats(reg, log))
	mux.HandleFunc("POST /stats/reset", ResetStats(reg, log))
	mux.HandleFunc("POST /check", CheckNow(hub, opts, log))
	mux.HandleFunc("GET /health", Health())
	mux.HandleFunc("GET /ws", hub.ServeWS)
	return mux
}
