package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/quizhub/api/internal/engine"
)

// StartSessionRequest is the request body for starting a live session.
type StartSessionRequest struct {
	// CountdownSeconds overrides the pre-question countdown for this session.
	CountdownSeconds int `json:"countdownSeconds,omitempty"`
}

// StartSessionResponse carries the id of the freshly created session.
type StartSessionResponse struct {
	SessionID int64  `json:"sessionId"`
	State     string `json:"state"`
}

// SessionActionRequest is the request body for driving a session transition.
type SessionActionRequest struct {
	Action string `json:"action"`
}

// SessionStatusResponse is the polling view of a session.
type SessionStatusResponse struct {
	SessionID     int64          `json:"sessionId"`
	State         string         `json:"state"`
	QuestionIndex int            `json:"questionIndex"`
	Players       []PlayerResult `json:"players"`
}

// PlayerResult is one player with their cumulative score.
type PlayerResult struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// SessionResultsResponse is the final ranking of a session.
type SessionResultsResponse struct {
	SessionID int64          `json:"sessionId"`
	Ranking   []PlayerResult `json:"ranking"`
}

func playerResults(players []engine.Player) []PlayerResult {
	out := make([]PlayerResult, len(players))
	for i, p := range players {
		out[i] = PlayerResult{ID: p.ID, Name: p.Name, Score: p.Score}
	}
	return out
}

func handleStartSession(store Store, sessions *engine.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		quizID, err := pathID(r, "quizID")
		if err != nil {
			writeError(w, http.StatusNotFound, "quiz not found")
			return
		}

		// An empty body is fine; the request only carries optional overrides.
		var req StartSessionRequest
		if r.ContentLength > 0 {
			if err := readJSON(r, &req); err != nil {
				writeError(w, http.StatusBadRequest, "invalid request body")
				return
			}
		}
		if req.CountdownSeconds < 0 || req.CountdownSeconds > 60 {
			writeError(w, http.StatusBadRequest, "countdownSeconds must be between 0 and 60")
			return
		}

		quiz, err := store.QuizSnapshot(r.Context(), adminFrom(r).AdminID, quizID)
		if errors.Is(err, ErrNotFound) {
			writeError(w, http.StatusNotFound, "quiz not found")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		if len(quiz.Questions) == 0 {
			writeError(w, http.StatusBadRequest, "quiz has no questions")
			return
		}

		session, err := sessions.Start(quiz, time.Duration(req.CountdownSeconds)*time.Second)
		if err != nil {
			engineError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, StartSessionResponse{
			SessionID: session.ID,
			State:     session.State().String(),
		})
	}
}

func handleSessionAction(sessions *engine.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := pathID(r, "sessionID")
		if err != nil {
			writeError(w, http.StatusNotFound, "session not found")
			return
		}

		var req SessionActionRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		action, err := engine.ParseAction(req.Action)
		if err != nil {
			engineError(w, err)
			return
		}

		session, err := sessions.Get(sessionID)
		if err != nil {
			engineError(w, err)
			return
		}
		if err := session.Apply(action); err != nil {
			engineError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func handleSessionStatus(sessions *engine.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := pathID(r, "sessionID")
		if err != nil {
			writeError(w, http.StatusNotFound, "session not found")
			return
		}

		session, err := sessions.Get(sessionID)
		if err != nil {
			engineError(w, err)
			return
		}

		status := session.Status()
		writeJSON(w, http.StatusOK, SessionStatusResponse{
			SessionID:     session.ID,
			State:         status.State.String(),
			QuestionIndex: status.QuestionIndex,
			Players:       playerResults(status.Players),
		})
	}
}

func handleSessionResults(sessions *engine.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := pathID(r, "sessionID")
		if err != nil {
			writeError(w, http.StatusNotFound, "session not found")
			return
		}

		session, err := sessions.Get(sessionID)
		if err != nil {
			engineError(w, err)
			return
		}

		ranked, err := session.FinalResults()
		if err != nil {
			engineError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, SessionResultsResponse{
			SessionID: session.ID,
			Ranking:   playerResults(ranked),
		})
	}
}
