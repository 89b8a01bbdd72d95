package server

import (
	"errors"
	"net/http"
	"strings"
)

// QuestionRequest is the request body for creating or replacing a question.
type QuestionRequest struct {
	Text            string          `json:"text"`
	DurationSeconds int             `json:"durationSeconds"`
	Points          int             `json:"points"`
	Answers         []AnswerRequest `json:"answers"`
}

// AnswerRequest is one answer option of a QuestionRequest.
type AnswerRequest struct {
	Text    string `json:"text"`
	Correct bool   `json:"correct"`
}

func (req *QuestionRequest) validate() string {
	req.Text = strings.TrimSpace(req.Text)
	if req.Text == "" {
		return "text is required"
	}
	if len(req.Text) > 200 {
		return "text must be at most 200 characters"
	}
	if req.DurationSeconds < 1 || req.DurationSeconds > 300 {
		return "durationSeconds must be between 1 and 300"
	}
	if req.Points < 1 || req.Points > 10 {
		return "points must be between 1 and 10"
	}
	if len(req.Answers) < 2 || len(req.Answers) > 6 {
		return "a question needs between 2 and 6 answers"
	}

	correct := 0
	seen := make(map[string]bool, len(req.Answers))
	for i := range req.Answers {
		req.Answers[i].Text = strings.TrimSpace(req.Answers[i].Text)
		text := req.Answers[i].Text
		if text == "" {
			return "answer text is required"
		}
		if seen[text] {
			return "answer texts must be unique"
		}
		seen[text] = true
		if req.Answers[i].Correct {
			correct++
		}
	}
	if correct == 0 {
		return "at least one answer must be correct"
	}
	return ""
}

func (req *QuestionRequest) input() QuestionInput {
	in := QuestionInput{
		Text:            req.Text,
		DurationSeconds: req.DurationSeconds,
		Points:          req.Points,
	}
	for _, a := range req.Answers {
		in.Answers = append(in.Answers, AnswerInput{Text: a.Text, Correct: a.Correct})
	}
	return in
}

func handleCreateQuestion(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		quizID, err := pathID(r, "quizID")
		if err != nil {
			writeError(w, http.StatusNotFound, "quiz not found")
			return
		}

		var req QuestionRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if msg := req.validate(); msg != "" {
			writeError(w, http.StatusBadRequest, msg)
			return
		}

		question, err := store.CreateQuestion(r.Context(), adminFrom(r).AdminID, quizID, req.input())
		if errors.Is(err, ErrNotFound) {
			writeError(w, http.StatusNotFound, "quiz not found")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusCreated, question)
	}
}

func handleUpdateQuestion(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		quizID, err := pathID(r, "quizID")
		if err != nil {
			writeError(w, http.StatusNotFound, "quiz not found")
			return
		}
		questionID, err := pathID(r, "questionID")
		if err != nil {
			writeError(w, http.StatusNotFound, "question not found")
			return
		}

		var req QuestionRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if msg := req.validate(); msg != "" {
			writeError(w, http.StatusBadRequest, msg)
			return
		}

		question, err := store.UpdateQuestion(r.Context(), adminFrom(r).AdminID, quizID, questionID, req.input())
		if errors.Is(err, ErrNotFound) {
			writeError(w, http.StatusNotFound, "question not found")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, question)
	}
}

func handleDeleteQuestion(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		quizID, err := pathID(r, "quizID")
		if err != nil {
			writeError(w, http.StatusNotFound, "quiz not found")
			return
		}
		questionID, err := pathID(r, "questionID")
		if err != nil {
			writeError(w, http.StatusNotFound, "question not found")
			return
		}

		err = store.DeleteQuestion(r.Context(), adminFrom(r).AdminID, quizID, questionID)
		if errors.Is(err, ErrNotFound) {
			writeError(w, http.StatusNotFound, "question not found")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
