package server

import (
	"net/http"

	"github.com/quizhub/api/internal/engine"
)

// SubmitAnswerRequest is the request body for answering the open question.
// Resubmitting while the window is open overwrites the earlier submission.
type SubmitAnswerRequest struct {
	QuestionIndex int     `json:"questionIndex"`
	AnswerIDs     []int64 `json:"answerIds"`
}

func handleAnswer(sessions *engine.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID, err := pathID(r, "playerID")
		if err != nil {
			writeError(w, http.StatusNotFound, "player not found")
			return
		}

		var req SubmitAnswerRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		if err := sessions.SubmitAnswer(playerID, req.QuestionIndex, req.AnswerIDs); err != nil {
			engineError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
