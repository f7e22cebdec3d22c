package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/cbodonnell/snake/pkg/log"
	"github.com/cbodonnell/snake/pkg/state"
	"github.com/cbodonnell/snake/pkg/version"
	"github.com/gorilla/mux"
)

// BestScoreReader exposes the process wide best score.
type BestScoreReader interface {
	Best() int
}

type BestScoreResponse struct {
	BestScore int `json:"bestScore"`
}

type VersionResponse struct {
	Version string `json:"version"`
}

func HandleHealthz() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}
}

func HandleVersion() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, VersionResponse{Version: version.Get()})
	}
}

func HandleGetBestScore(bestScore BestScoreReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, BestScoreResponse{BestScore: bestScore.Best()})
	}
}

func HandleListSessions(stateManager state.StateManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessions, err := stateManager.List(r.Context())
		if err != nil {
			log.Error("failed to list sessions: %v", err)
			http.Error(w, "Failed to list sessions", http.StatusInternalServerError)
			return
		}
		writeJSON(w, sessions)
	}
}

func HandleGetSession(stateManager state.StateManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := mux.Vars(r)["sessionID"]
		snapshot, err := stateManager.Get(r.Context(), sessionID)
		if err != nil {
			if state.IsSessionNotFound(err) {
				http.Error(w, "Session not found", http.StatusNotFound)
				return
			}
			log.Error("failed to get session %s: %v", sessionID, err)
			http.Error(w, "Failed to get session", http.StatusInternalServerError)
			return
		}
		writeJSON(w, snapshot)
	}
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("failed to encode response: %v", err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}
