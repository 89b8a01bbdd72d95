package engine

import (
	"time"
	"unicode/utf8"
)

// ChatMessage is one entry of a session's append-only chat log. The player
// name is snapshotted at send time; messages are never deleted individually.
type ChatMessage struct {
	PlayerID   int64
	PlayerName string
	Body       string
	SentAt     time.Time
}

const (
	minChatLen = 1
	maxChatLen = 100
)

// sendChat appends a message to the session's chat log. Chat stays available
// in every state, including after the session has ended.
func (s *Session) sendChat(playerID int64, body string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.findPlayerLocked(playerID)
	if p == nil {
		return ErrPlayerNotFound
	}
	if n := utf8.RuneCountInString(body); n < minChatLen || n > maxChatLen {
		return ErrInvalidMessageLength
	}

	s.chat = append(s.chat, ChatMessage{
		PlayerID:   playerID,
		PlayerName: p.Name,
		Body:       body,
		SentAt:     s.clock.Now(),
	})
	return nil
}

// chatHistory returns the full ordered message log. Every player of the
// session sees the same history.
func (s *Session) chatHistory(playerID int64) ([]ChatMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.findPlayerLocked(playerID) == nil {
		return nil, ErrPlayerNotFound
	}

	history := make([]ChatMessage, len(s.chat))
	copy(history, s.chat)
	return history, nil
}
