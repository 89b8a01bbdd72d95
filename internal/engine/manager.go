package engine

import (
	"sync"
	"time"
)

// MaxActiveSessions bounds how many sessions of one quiz may be live (not yet
// ended) at the same time.
const MaxActiveSessions = 10

// DefaultCountdown is the delay between QUESTION_COUNTDOWN and QUESTION_OPEN
// when no per-session override is given.
const DefaultCountdown = 5 * time.Second

// Manager owns every live session and hands out session and player ids.
// Sessions are never removed; an ended session stays available for result and
// chat queries until process teardown.
type Manager struct {
	clock     Clock
	countdown time.Duration

	mu            sync.Mutex
	nextSessionID int64
	nextPlayerID  int64
	sessions      map[int64]*Session
	byQuiz        map[int64][]*Session
	players       map[int64]*Session
}

// NewManager creates a session manager. A zero countdown falls back to
// DefaultCountdown.
func NewManager(clock Clock, countdown time.Duration) *Manager {
	if countdown <= 0 {
		countdown = DefaultCountdown
	}
	return &Manager{
		clock:     clock,
		countdown: countdown,
		sessions:  make(map[int64]*Session),
		byQuiz:    make(map[int64][]*Session),
		players:   make(map[int64]*Session),
	}
}

// Start freezes the quiz's questions into a new session in lobby state. The
// active-session count check and the insertion happen under one lock, so
// concurrent Start calls for the same quiz cannot exceed the bound.
func (m *Manager) Start(quiz Quiz, countdownOverride time.Duration) (*Session, error) {
	countdown := m.countdown
	if countdownOverride > 0 {
		countdown = countdownOverride
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	active := 0
	for _, s := range m.byQuiz[quiz.ID] {
		if s.State() != StateEnd {
			active++
		}
	}
	if active >= MaxActiveSessions {
		return nil, ErrTooManyActiveSessions
	}

	m.nextSessionID++
	s := newSession(m.nextSessionID, quiz, countdown, m.clock)
	m.sessions[s.ID] = s
	m.byQuiz[quiz.ID] = append(m.byQuiz[quiz.ID], s)
	return s, nil
}

// Get looks up a session by id.
func (m *Manager) Get(sessionID int64) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// Join adds a player to a lobby session and returns the created player.
// Player ids are unique across all sessions.
func (m *Manager) Join(sessionID int64, name string) (Player, error) {
	s, err := m.Get(sessionID)
	if err != nil {
		return Player{}, err
	}

	m.mu.Lock()
	m.nextPlayerID++
	id := m.nextPlayerID
	m.mu.Unlock()

	p, err := s.join(name, id)
	if err != nil {
		return Player{}, err
	}

	m.mu.Lock()
	m.players[p.ID] = s
	m.mu.Unlock()
	return p, nil
}

// SubmitAnswer records the player's answer for the given question index of
// their session.
func (m *Manager) SubmitAnswer(playerID int64, questionIndex int, answerIDs []int64) error {
	s, err := m.sessionForPlayer(playerID)
	if err != nil {
		return err
	}
	return s.submitAnswer(playerID, questionIndex, answerIDs)
}

// SendChat appends a chat message to the player's session.
func (m *Manager) SendChat(playerID int64, body string) error {
	s, err := m.sessionForPlayer(playerID)
	if err != nil {
		return err
	}
	return s.sendChat(playerID, body)
}

// ChatHistory returns the full chat log of the player's session.
func (m *Manager) ChatHistory(playerID int64) ([]ChatMessage, error) {
	s, err := m.sessionForPlayer(playerID)
	if err != nil {
		return nil, err
	}
	return s.chatHistory(playerID)
}

// EndSessionsForQuiz force-ends every live session of a quiz. Called when the
// quiz itself is deleted.
func (m *Manager) EndSessionsForQuiz(quizID int64) {
	m.mu.Lock()
	sessions := make([]*Session, len(m.byQuiz[quizID]))
	copy(sessions, m.byQuiz[quizID])
	m.mu.Unlock()

	for _, s := range sessions {
		s.ForceEnd()
	}
}

func (m *Manager) sessionForPlayer(playerID int64) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.players[playerID]
	if !ok {
		return nil, ErrPlayerNotFound
	}
	return s, nil
}
