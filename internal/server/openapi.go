package server

import (
	"encoding/json"
	"net/http"

	openapi "github.com/swaggest/openapi-go"
	"github.com/swaggest/openapi-go/openapi31"
)

// ErrorResponse is returned for all error responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

func newOpenAPISpec() *openapi31.Spec {
	r := openapi31.NewReflector()
	r.Spec.Info.Title = "QuizHub API"
	r.Spec.Info.Version = "0.1.0"
	r.Spec.Info.WithDescription("Backend API for hosting live quiz sessions.")

	// GET /healthz
	getHealthz, _ := r.NewOperationContext(http.MethodGet, "/healthz")
	getHealthz.SetSummary("Health check")
	getHealthz.SetDescription("Returns the health status of backend dependencies.")
	getHealthz.AddRespStructure(HealthResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getHealthz.AddRespStructure(HealthResponse{}, openapi.WithHTTPStatus(http.StatusServiceUnavailable))
	_ = r.AddOperation(getHealthz)

	// GET /ws/echo
	getWSEcho, _ := r.NewOperationContext(http.MethodGet, "/ws/echo")
	getWSEcho.SetSummary("WebSocket echo")
	getWSEcho.SetDescription("Upgrades to a WebSocket connection that echoes messages back.")
	getWSEcho.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusSwitchingProtocols),
		openapi.WithContentType("text/plain"))
	_ = r.AddOperation(getWSEcho)

	// POST /api/sessions/{sessionID}/join
	postJoin, _ := r.NewOperationContext(http.MethodPost, "/api/sessions/{sessionID}/join")
	postJoin.SetSummary("Join a session")
	postJoin.SetDescription("Join a lobby as a player. Omit the name to get a generated one.")
	postJoin.AddReqStructure(JoinRequest{})
	postJoin.AddRespStructure(JoinResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postJoin.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	postJoin.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	postJoin.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	_ = r.AddOperation(postJoin)

	// GET /api/sessions/{sessionID}
	getStatus, _ := r.NewOperationContext(http.MethodGet, "/api/sessions/{sessionID}")
	getStatus.SetSummary("Session status")
	getStatus.SetDescription("Returns the session state, current question index, and player scores.")
	getStatus.AddRespStructure(SessionStatusResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getStatus.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(getStatus)

	// GET /api/sessions/{sessionID}/results
	getResults, _ := r.NewOperationContext(http.MethodGet, "/api/sessions/{sessionID}/results")
	getResults.SetSummary("Final results")
	getResults.SetDescription("Returns the final ranking once the session reaches final results.")
	getResults.AddRespStructure(SessionResultsResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getResults.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	getResults.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	_ = r.AddOperation(getResults)

	// POST /api/players/{playerID}/answer
	postAnswer, _ := r.NewOperationContext(http.MethodPost, "/api/players/{playerID}/answer")
	postAnswer.SetSummary("Submit answer")
	postAnswer.SetDescription("Submit answer ids for the currently open question. Resubmitting overwrites.")
	postAnswer.AddReqStructure(SubmitAnswerRequest{})
	postAnswer.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusNoContent))
	postAnswer.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	postAnswer.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	postAnswer.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	_ = r.AddOperation(postAnswer)

	// POST /api/players/{playerID}/chat
	postChat, _ := r.NewOperationContext(http.MethodPost, "/api/players/{playerID}/chat")
	postChat.SetSummary("Send chat message")
	postChat.SetDescription("Appends a message to the session chat log.")
	postChat.AddReqStructure(ChatSendRequest{})
	postChat.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusNoContent))
	postChat.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	postChat.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(postChat)

	// GET /api/players/{playerID}/chat
	getChat, _ := r.NewOperationContext(http.MethodGet, "/api/players/{playerID}/chat")
	getChat.SetSummary("Chat history")
	getChat.SetDescription("Returns the full chat log of the player's session in send order.")
	getChat.AddRespStructure(ChatHistoryResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getChat.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(getChat)

	// POST /api/admin/register
	postRegister, _ := r.NewOperationContext(http.MethodPost, "/api/admin/register")
	postRegister.SetSummary("Admin registration")
	postRegister.SetDescription("Creates an admin account with email and password.")
	postRegister.AddReqStructure(AdminRegisterRequest{})
	postRegister.AddRespStructure(AdminMeResponse{}, openapi.WithHTTPStatus(http.StatusCreated))
	postRegister.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	postRegister.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	_ = r.AddOperation(postRegister)

	// POST /api/admin/login
	postLogin, _ := r.NewOperationContext(http.MethodPost, "/api/admin/login")
	postLogin.SetSummary("Admin login")
	postLogin.SetDescription("Authenticate with email and password. Sets admin_session cookie.")
	postLogin.AddReqStructure(AdminLoginRequest{})
	postLogin.AddRespStructure(AdminMeResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postLogin.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(postLogin)

	// POST /api/admin/logout
	postLogout, _ := r.NewOperationContext(http.MethodPost, "/api/admin/logout")
	postLogout.SetSummary("Admin logout")
	postLogout.SetDescription("Clears admin session and cookie.")
	postLogout.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(postLogout)

	// GET /api/admin/me
	getMe, _ := r.NewOperationContext(http.MethodGet, "/api/admin/me")
	getMe.SetSummary("Current admin")
	getMe.SetDescription("Returns the currently authenticated admin. Requires admin_session cookie.")
	getMe.AddRespStructure(AdminMeResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getMe.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(getMe)

	// GET /api/admin/quizzes
	listQuizzes, _ := r.NewOperationContext(http.MethodGet, "/api/admin/quizzes")
	listQuizzes.SetSummary("List quizzes")
	listQuizzes.SetDescription("Returns the admin's quizzes with question counts. Requires admin_session cookie.")
	listQuizzes.AddRespStructure([]QuizSummary{}, openapi.WithHTTPStatus(http.StatusOK))
	listQuizzes.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(listQuizzes)

	// POST /api/admin/quizzes
	createQuiz, _ := r.NewOperationContext(http.MethodPost, "/api/admin/quizzes")
	createQuiz.SetSummary("Create quiz")
	createQuiz.SetDescription("Creates an empty quiz. Requires admin_session cookie.")
	createQuiz.AddReqStructure(QuizRequest{})
	createQuiz.AddRespStructure(QuizSummary{}, openapi.WithHTTPStatus(http.StatusCreated))
	createQuiz.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	createQuiz.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(createQuiz)

	// GET /api/admin/quizzes/{quizID}
	getQuiz, _ := r.NewOperationContext(http.MethodGet, "/api/admin/quizzes/{quizID}")
	getQuiz.SetSummary("Get quiz")
	getQuiz.SetDescription("Returns a quiz with full question and answer details. Requires admin_session cookie.")
	getQuiz.AddRespStructure(QuizDetail{}, openapi.WithHTTPStatus(http.StatusOK))
	getQuiz.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	getQuiz.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(getQuiz)

	// PUT /api/admin/quizzes/{quizID}
	renameQuiz, _ := r.NewOperationContext(http.MethodPut, "/api/admin/quizzes/{quizID}")
	renameQuiz.SetSummary("Rename quiz")
	renameQuiz.SetDescription("Renames a quiz. Requires admin_session cookie.")
	renameQuiz.AddReqStructure(QuizRequest{})
	renameQuiz.AddRespStructure(QuizSummary{}, openapi.WithHTTPStatus(http.StatusOK))
	renameQuiz.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	renameQuiz.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	renameQuiz.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(renameQuiz)

	// DELETE /api/admin/quizzes/{quizID}
	deleteQuiz, _ := r.NewOperationContext(http.MethodDelete, "/api/admin/quizzes/{quizID}")
	deleteQuiz.SetSummary("Delete quiz")
	deleteQuiz.SetDescription("Deletes a quiz and ends its running sessions. Requires admin_session cookie.")
	deleteQuiz.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusNoContent))
	deleteQuiz.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	deleteQuiz.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(deleteQuiz)

	// POST /api/admin/quizzes/{quizID}/questions
	createQuestion, _ := r.NewOperationContext(http.MethodPost, "/api/admin/quizzes/{quizID}/questions")
	createQuestion.SetSummary("Add question")
	createQuestion.SetDescription("Appends a question with answers to a quiz. Requires admin_session cookie.")
	createQuestion.AddReqStructure(QuestionRequest{})
	createQuestion.AddRespStructure(QuestionDetail{}, openapi.WithHTTPStatus(http.StatusCreated))
	createQuestion.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	createQuestion.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	createQuestion.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(createQuestion)

	// PUT /api/admin/quizzes/{quizID}/questions/{questionID}
	updateQuestion, _ := r.NewOperationContext(http.MethodPut, "/api/admin/quizzes/{quizID}/questions/{questionID}")
	updateQuestion.SetSummary("Update question")
	updateQuestion.SetDescription("Replaces a question's text, timing, and answers. Requires admin_session cookie.")
	updateQuestion.AddReqStructure(QuestionRequest{})
	updateQuestion.AddRespStructure(QuestionDetail{}, openapi.WithHTTPStatus(http.StatusOK))
	updateQuestion.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	updateQuestion.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	updateQuestion.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(updateQuestion)

	// DELETE /api/admin/quizzes/{quizID}/questions/{questionID}
	deleteQuestion, _ := r.NewOperationContext(http.MethodDelete, "/api/admin/quizzes/{quizID}/questions/{questionID}")
	deleteQuestion.SetSummary("Delete question")
	deleteQuestion.SetDescription("Removes a question from a quiz. Requires admin_session cookie.")
	deleteQuestion.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusNoContent))
	deleteQuestion.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	deleteQuestion.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(deleteQuestion)

	// POST /api/admin/quizzes/{quizID}/sessions
	startSession, _ := r.NewOperationContext(http.MethodPost, "/api/admin/quizzes/{quizID}/sessions")
	startSession.SetSummary("Start session")
	startSession.SetDescription("Starts a live session in the lobby state. Requires admin_session cookie.")
	startSession.AddReqStructure(StartSessionRequest{})
	startSession.AddRespStructure(StartSessionResponse{}, openapi.WithHTTPStatus(http.StatusCreated))
	startSession.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	startSession.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	startSession.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	_ = r.AddOperation(startSession)

	// POST /api/sessions/{sessionID}/action
	sessionAction, _ := r.NewOperationContext(http.MethodPost, "/api/sessions/{sessionID}/action")
	sessionAction.SetSummary("Drive session")
	sessionAction.SetDescription("Applies a host action to the session state machine. Requires admin_session cookie.")
	sessionAction.AddReqStructure(SessionActionRequest{})
	sessionAction.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusNoContent))
	sessionAction.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	sessionAction.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	sessionAction.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	sessionAction.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(sessionAction)

	return r.Spec
}

func handleOpenAPI() http.HandlerFunc {
	spec := newOpenAPISpec()
	data, _ := json.MarshalIndent(spec, "", "  ")

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}
