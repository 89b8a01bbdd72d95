package server

import (
	"net/http"
	"strings"

	"github.com/quizhub/api/internal/engine"
)

// JoinRequest is the request body for joining a session. An empty name gets a
// generated one.
type JoinRequest struct {
	Name string `json:"name"`
}

// JoinResponse identifies the joined player.
type JoinResponse struct {
	PlayerID int64  `json:"playerId"`
	Name     string `json:"name"`
}

func handleJoin(sessions *engine.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := pathID(r, "sessionID")
		if err != nil {
			writeError(w, http.StatusNotFound, "session not found")
			return
		}

		// An empty body joins with a generated name.
		var req JoinRequest
		if r.ContentLength > 0 {
			if err := readJSON(r, &req); err != nil {
				writeError(w, http.StatusBadRequest, "invalid request body")
				return
			}
		}
		req.Name = strings.TrimSpace(req.Name)
		if len(req.Name) > 30 {
			writeError(w, http.StatusBadRequest, "name must be at most 30 characters")
			return
		}

		player, err := sessions.Join(sessionID, req.Name)
		if err != nil {
			engineError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, JoinResponse{
			PlayerID: player.ID,
			Name:     player.Name,
		})
	}
}
