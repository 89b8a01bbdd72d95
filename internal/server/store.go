package server

import (
	"context"
	"errors"

	"github.com/quizhub/api/internal/engine"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrEmailTaken = errors.New("email already registered")
)

// adminSession identifies an authenticated admin resolved from a cookie.
type adminSession struct {
	AdminID string
	Email   string
}

// QuizSummary is a quiz without its questions.
type QuizSummary struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	QuestionCount int    `json:"questionCount"`
	CreatedAt     string `json:"createdAt"`
}

// QuizDetail is the full quiz with nested questions and answers.
type QuizDetail struct {
	ID        int64            `json:"id"`
	Name      string           `json:"name"`
	Questions []QuestionDetail `json:"questions"`
	CreatedAt string           `json:"createdAt"`
}

// QuestionDetail is one question with its answer options.
type QuestionDetail struct {
	ID              int64          `json:"id"`
	Text            string         `json:"text"`
	DurationSeconds int            `json:"durationSeconds"`
	Points          int            `json:"points"`
	Answers         []AnswerDetail `json:"answers"`
}

// AnswerDetail is one answer option of a question.
type AnswerDetail struct {
	ID      int64  `json:"id"`
	Text    string `json:"text"`
	Correct bool   `json:"correct"`
}

// QuestionInput is the validated payload for creating or replacing a question.
type QuestionInput struct {
	Text            string
	DurationSeconds int
	Points          int
	Answers         []AnswerInput
}

// AnswerInput is one answer option of a QuestionInput.
type AnswerInput struct {
	Text    string
	Correct bool
}

// Store abstracts persistence of admin accounts and quiz content. Live
// sessions are not stored; they belong to the engine.
type Store interface {
	CreateAdmin(ctx context.Context, email, passwordHash string) (string, error)
	AdminByEmail(ctx context.Context, email string) (id, passwordHash string, err error)
	CreateAdminSession(ctx context.Context, adminID string) (string, error)
	DeleteAdminSession(ctx context.Context, sessionID string) error
	AdminFromSession(ctx context.Context, sessionID string) (adminSession, error)

	CreateQuiz(ctx context.Context, adminID, name string) (QuizSummary, error)
	ListQuizzes(ctx context.Context, adminID string) ([]QuizSummary, error)
	GetQuiz(ctx context.Context, adminID string, quizID int64) (QuizDetail, error)
	RenameQuiz(ctx context.Context, adminID string, quizID int64, name string) (QuizSummary, error)
	DeleteQuiz(ctx context.Context, adminID string, quizID int64) error

	CreateQuestion(ctx context.Context, adminID string, quizID int64, in QuestionInput) (QuestionDetail, error)
	UpdateQuestion(ctx context.Context, adminID string, quizID, questionID int64, in QuestionInput) (QuestionDetail, error)
	DeleteQuestion(ctx context.Context, adminID string, quizID, questionID int64) error

	// QuizSnapshot loads the frozen question sequence handed to the engine
	// when a session starts.
	QuizSnapshot(ctx context.Context, adminID string, quizID int64) (engine.Quiz, error)
}
