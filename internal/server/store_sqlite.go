package server

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/quizhub/api/internal/engine"
)

// SQLiteStore persists admins and quiz content in SQLite.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (s *SQLiteStore) CreateAdmin(ctx context.Context, email, passwordHash string) (string, error) {
	var adminID string
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO admins (email, password_hash)
		VALUES (?, ?)
		RETURNING id
	`, email, passwordHash).Scan(&adminID)
	if err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return "", ErrEmailTaken
	}
	return adminID, err
}

func (s *SQLiteStore) AdminByEmail(ctx context.Context, email string) (string, string, error) {
	var adminID, passwordHash string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, password_hash FROM admins WHERE email = ?
	`, email).Scan(&adminID, &passwordHash)
	if errors.Is(err, sql.ErrNoRows) {
		return "", "", ErrNotFound
	}
	return adminID, passwordHash, err
}

func (s *SQLiteStore) CreateAdminSession(ctx context.Context, adminID string) (string, error) {
	sessionID := uuid.NewString()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO admin_sessions (id, admin_id) VALUES (?, ?)
	`, sessionID, adminID)
	return sessionID, err
}

func (s *SQLiteStore) DeleteAdminSession(ctx context.Context, sessionID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM admin_sessions WHERE id = ?`, sessionID)
	return err
}

func (s *SQLiteStore) AdminFromSession(ctx context.Context, sessionID string) (adminSession, error) {
	var sess adminSession
	err := s.db.QueryRowContext(ctx, `
		SELECT a.id, a.email
		FROM admin_sessions s
		JOIN admins a ON a.id = s.admin_id
		WHERE s.id = ?
	`, sessionID).Scan(&sess.AdminID, &sess.Email)
	if errors.Is(err, sql.ErrNoRows) {
		return adminSession{}, ErrNotFound
	}
	return sess, err
}

func (s *SQLiteStore) CreateQuiz(ctx context.Context, adminID, name string) (QuizSummary, error) {
	var q QuizSummary
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO quizzes (admin_id, name)
		VALUES (?, ?)
		RETURNING id, name, created_at
	`, adminID, name).Scan(&q.ID, &q.Name, &q.CreatedAt)
	return q, err
}

func (s *SQLiteStore) ListQuizzes(ctx context.Context, adminID string) ([]QuizSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT q.id, q.name,
			(SELECT COUNT(*) FROM questions WHERE quiz_id = q.id),
			q.created_at
		FROM quizzes q
		WHERE q.admin_id = ?
		ORDER BY q.created_at DESC
	`, adminID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var quizzes []QuizSummary
	for rows.Next() {
		var q QuizSummary
		if err := rows.Scan(&q.ID, &q.Name, &q.QuestionCount, &q.CreatedAt); err != nil {
			return nil, err
		}
		quizzes = append(quizzes, q)
	}
	return quizzes, rows.Err()
}

func (s *SQLiteStore) GetQuiz(ctx context.Context, adminID string, quizID int64) (QuizDetail, error) {
	var q QuizDetail
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, created_at FROM quizzes WHERE id = ? AND admin_id = ?
	`, quizID, adminID).Scan(&q.ID, &q.Name, &q.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return QuizDetail{}, ErrNotFound
	}
	if err != nil {
		return QuizDetail{}, err
	}

	questions, err := s.loadQuestions(ctx, quizID)
	if err != nil {
		return QuizDetail{}, err
	}
	q.Questions = questions
	return q, nil
}

func (s *SQLiteStore) RenameQuiz(ctx context.Context, adminID string, quizID int64, name string) (QuizSummary, error) {
	var q QuizSummary
	err := s.db.QueryRowContext(ctx, `
		UPDATE quizzes SET name = ?
		WHERE id = ? AND admin_id = ?
		RETURNING id, name, created_at
	`, name, quizID, adminID).Scan(&q.ID, &q.Name, &q.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return QuizSummary{}, ErrNotFound
	}
	return q, err
}

func (s *SQLiteStore) DeleteQuiz(ctx context.Context, adminID string, quizID int64) error {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM quizzes WHERE id = ? AND admin_id = ?
	`, quizID, adminID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLiteStore) CreateQuestion(ctx context.Context, adminID string, quizID int64, in QuestionInput) (QuestionDetail, error) {
	if err := s.quizOwned(ctx, adminID, quizID); err != nil {
		return QuestionDetail{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return QuestionDetail{}, err
	}
	defer tx.Rollback()

	var questionID int64
	err = tx.QueryRowContext(ctx, `
		INSERT INTO questions (quiz_id, position, text, duration_seconds, points)
		VALUES (?, (SELECT COALESCE(MAX(position), 0) + 1 FROM questions WHERE quiz_id = ?), ?, ?, ?)
		RETURNING id
	`, quizID, quizID, in.Text, in.DurationSeconds, in.Points).Scan(&questionID)
	if err != nil {
		return QuestionDetail{}, err
	}

	if err := insertAnswers(ctx, tx, questionID, in.Answers); err != nil {
		return QuestionDetail{}, err
	}
	if err := tx.Commit(); err != nil {
		return QuestionDetail{}, err
	}

	return s.loadQuestion(ctx, questionID)
}

func (s *SQLiteStore) UpdateQuestion(ctx context.Context, adminID string, quizID, questionID int64, in QuestionInput) (QuestionDetail, error) {
	if err := s.quizOwned(ctx, adminID, quizID); err != nil {
		return QuestionDetail{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return QuestionDetail{}, err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE questions SET text = ?, duration_seconds = ?, points = ?
		WHERE id = ? AND quiz_id = ?
	`, in.Text, in.DurationSeconds, in.Points, questionID, quizID)
	if err != nil {
		return QuestionDetail{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return QuestionDetail{}, ErrNotFound
	}

	// Replace the answer set wholesale; answer ids are not stable across edits.
	if _, err := tx.ExecContext(ctx, `DELETE FROM answers WHERE question_id = ?`, questionID); err != nil {
		return QuestionDetail{}, err
	}
	if err := insertAnswers(ctx, tx, questionID, in.Answers); err != nil {
		return QuestionDetail{}, err
	}
	if err := tx.Commit(); err != nil {
		return QuestionDetail{}, err
	}

	return s.loadQuestion(ctx, questionID)
}

func (s *SQLiteStore) DeleteQuestion(ctx context.Context, adminID string, quizID, questionID int64) error {
	if err := s.quizOwned(ctx, adminID, quizID); err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx, `
		DELETE FROM questions WHERE id = ? AND quiz_id = ?
	`, questionID, quizID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLiteStore) QuizSnapshot(ctx context.Context, adminID string, quizID int64) (engine.Quiz, error) {
	detail, err := s.GetQuiz(ctx, adminID, quizID)
	if err != nil {
		return engine.Quiz{}, err
	}

	quiz := engine.Quiz{ID: detail.ID, Name: detail.Name}
	for _, q := range detail.Questions {
		question := engine.Question{
			ID:       q.ID,
			Text:     q.Text,
			Duration: time.Duration(q.DurationSeconds) * time.Second,
			Points:   q.Points,
		}
		for _, a := range q.Answers {
			question.Answers = append(question.Answers, engine.Answer{
				ID:      a.ID,
				Text:    a.Text,
				Correct: a.Correct,
			})
		}
		quiz.Questions = append(quiz.Questions, question)
	}
	return quiz, nil
}

func (s *SQLiteStore) quizOwned(ctx context.Context, adminID string, quizID int64) error {
	var id int64
	err := s.db.QueryRowContext(ctx, `
		SELECT id FROM quizzes WHERE id = ? AND admin_id = ?
	`, quizID, adminID).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

func (s *SQLiteStore) loadQuestions(ctx context.Context, quizID int64) ([]QuestionDetail, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, text, duration_seconds, points
		FROM questions
		WHERE quiz_id = ?
		ORDER BY position
	`, quizID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var questions []QuestionDetail
	for rows.Next() {
		var q QuestionDetail
		if err := rows.Scan(&q.ID, &q.Text, &q.DurationSeconds, &q.Points); err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range questions {
		answers, err := s.loadAnswers(ctx, questions[i].ID)
		if err != nil {
			return nil, err
		}
		questions[i].Answers = answers
	}
	return questions, nil
}

func (s *SQLiteStore) loadQuestion(ctx context.Context, questionID int64) (QuestionDetail, error) {
	var q QuestionDetail
	err := s.db.QueryRowContext(ctx, `
		SELECT id, text, duration_seconds, points FROM questions WHERE id = ?
	`, questionID).Scan(&q.ID, &q.Text, &q.DurationSeconds, &q.Points)
	if errors.Is(err, sql.ErrNoRows) {
		return QuestionDetail{}, ErrNotFound
	}
	if err != nil {
		return QuestionDetail{}, err
	}

	q.Answers, err = s.loadAnswers(ctx, questionID)
	return q, err
}

func (s *SQLiteStore) loadAnswers(ctx context.Context, questionID int64) ([]AnswerDetail, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, text, correct FROM answers WHERE question_id = ? ORDER BY position
	`, questionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var answers []AnswerDetail
	for rows.Next() {
		var a AnswerDetail
		var correct int
		if err := rows.Scan(&a.ID, &a.Text, &correct); err != nil {
			return nil, err
		}
		a.Correct = correct == 1
		answers = append(answers, a)
	}
	return answers, rows.Err()
}

func insertAnswers(ctx context.Context, tx *sql.Tx, questionID int64, answers []AnswerInput) error {
	for i, a := range answers {
		correct := 0
		if a.Correct {
			correct = 1
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO answers (question_id, position, text, correct)
			VALUES (?, ?, ?, ?)
		`, questionID, i+1, a.Text, correct); err != nil {
			return err
		}
	}
	return nil
}
