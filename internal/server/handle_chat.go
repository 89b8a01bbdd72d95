package server

import (
	"net/http"
	"time"

	"github.com/quizhub/api/internal/engine"
)

// ChatSendRequest is the request body for posting a chat message.
type ChatSendRequest struct {
	Message string `json:"message"`
}

// ChatMessageResponse is one chat message in a history response.
type ChatMessageResponse struct {
	PlayerID   int64  `json:"playerId"`
	PlayerName string `json:"playerName"`
	Message    string `json:"message"`
	SentAt     string `json:"sentAt"`
}

// ChatHistoryResponse is the full ordered chat log of the player's session.
type ChatHistoryResponse struct {
	Messages []ChatMessageResponse `json:"messages"`
}

func handleChatSend(sessions *engine.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID, err := pathID(r, "playerID")
		if err != nil {
			writeError(w, http.StatusNotFound, "player not found")
			return
		}

		var req ChatSendRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		if err := sessions.SendChat(playerID, req.Message); err != nil {
			engineError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func handleChatHistory(sessions *engine.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID, err := pathID(r, "playerID")
		if err != nil {
			writeError(w, http.StatusNotFound, "player not found")
			return
		}

		history, err := sessions.ChatHistory(playerID)
		if err != nil {
			engineError(w, err)
			return
		}

		messages := make([]ChatMessageResponse, len(history))
		for i, m := range history {
			messages[i] = ChatMessageResponse{
				PlayerID:   m.PlayerID,
				PlayerName: m.PlayerName,
				Message:    m.Body,
				SentAt:     m.SentAt.UTC().Format(time.RFC3339Nano),
			}
		}

		writeJSON(w, http.StatusOK, ChatHistoryResponse{Messages: messages})
	}
}
