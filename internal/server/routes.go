package server

import (
	"database/sql"
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/swaggest/swgui/v5emb"

	"github.com/quizhub/api/internal/engine"
)

func addRoutes(r chi.Router, logger *slog.Logger, db *sql.DB, store Store, sessions *engine.Manager) {
	r.Get("/openapi.json", handleOpenAPI())
	r.Mount("/docs", v5emb.New("QuizHub API", "/openapi.json", "/docs"))
	r.Get("/healthz", handleHealth(logger, db))
	r.Get("/ws/echo", handleWSEcho(logger))

	// Player routes take no auth; players are anonymous within a session.
	r.Route("/api", func(r chi.Router) {
		r.Post("/sessions/{sessionID}/join", handleJoin(sessions))
		r.Get("/sessions/{sessionID}", handleSessionStatus(sessions))
		r.Get("/sessions/{sessionID}/results", handleSessionResults(sessions))
		r.Post("/players/{playerID}/answer", handleAnswer(sessions))
		r.Post("/players/{playerID}/chat", handleChatSend(sessions))
		r.Get("/players/{playerID}/chat", handleChatHistory(sessions))
	})

	// Admin auth.
	r.Post("/api/admin/register", handleAdminRegister(store))
	r.Post("/api/admin/login", handleAdminLogin(store))
	r.Post("/api/admin/logout", handleAdminLogout(store))
	r.Get("/api/admin/me", handleAdminMe(store))

	// Admin quiz content and session control, behind the admin cookie.
	r.Route("/api/admin/quizzes", func(r chi.Router) {
		r.Use(adminAuthMiddleware(store))

		r.Get("/", handleListQuizzes(store))
		r.Post("/", handleCreateQuiz(store))
		r.Get("/{quizID}", handleGetQuiz(store))
		r.Put("/{quizID}", handleRenameQuiz(store))
		r.Delete("/{quizID}", handleDeleteQuiz(store, sessions))

		r.Post("/{quizID}/questions", handleCreateQuestion(store))
		r.Put("/{quizID}/questions/{questionID}", handleUpdateQuestion(store))
		r.Delete("/{quizID}/questions/{questionID}", handleDeleteQuestion(store))

		r.Post("/{quizID}/sessions", handleStartSession(store, sessions))
	})

	r.With(adminAuthMiddleware(store)).
		Post("/api/sessions/{sessionID}/action", handleSessionAction(sessions))
}
