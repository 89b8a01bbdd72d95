package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/quizhub/api/internal/engine"
)

// QuizRequest is the request body for creating or renaming a quiz.
type QuizRequest struct {
	Name string `json:"name"`
}

func (req *QuizRequest) validate() string {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return "name is required"
	}
	if len(req.Name) > 100 {
		return "name must be at most 100 characters"
	}
	return ""
}

func handleListQuizzes(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		quizzes, err := store.ListQuizzes(r.Context(), adminFrom(r).AdminID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		if quizzes == nil {
			quizzes = []QuizSummary{}
		}
		writeJSON(w, http.StatusOK, quizzes)
	}
}

func handleCreateQuiz(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req QuizRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if msg := req.validate(); msg != "" {
			writeError(w, http.StatusBadRequest, msg)
			return
		}

		quiz, err := store.CreateQuiz(r.Context(), adminFrom(r).AdminID, req.Name)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusCreated, quiz)
	}
}

func handleGetQuiz(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		quizID, err := pathID(r, "quizID")
		if err != nil {
			writeError(w, http.StatusNotFound, "quiz not found")
			return
		}

		quiz, err := store.GetQuiz(r.Context(), adminFrom(r).AdminID, quizID)
		if errors.Is(err, ErrNotFound) {
			writeError(w, http.StatusNotFound, "quiz not found")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		if quiz.Questions == nil {
			quiz.Questions = []QuestionDetail{}
		}
		writeJSON(w, http.StatusOK, quiz)
	}
}

func handleRenameQuiz(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		quizID, err := pathID(r, "quizID")
		if err != nil {
			writeError(w, http.StatusNotFound, "quiz not found")
			return
		}

		var req QuizRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if msg := req.validate(); msg != "" {
			writeError(w, http.StatusBadRequest, msg)
			return
		}

		quiz, err := store.RenameQuiz(r.Context(), adminFrom(r).AdminID, quizID, req.Name)
		if errors.Is(err, ErrNotFound) {
			writeError(w, http.StatusNotFound, "quiz not found")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, quiz)
	}
}

func handleDeleteQuiz(store Store, sessions *engine.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		quizID, err := pathID(r, "quizID")
		if err != nil {
			writeError(w, http.StatusNotFound, "quiz not found")
			return
		}

		err = store.DeleteQuiz(r.Context(), adminFrom(r).AdminID, quizID)
		if errors.Is(err, ErrNotFound) {
			writeError(w, http.StatusNotFound, "quiz not found")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		// Live sessions of a deleted quiz end immediately; their results and
		// chat stay queryable until process teardown.
		sessions.EndSessionsForQuiz(quizID)

		w.WriteHeader(http.StatusNoContent)
	}
}
