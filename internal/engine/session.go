package engine

import (
	"sort"
	"sync"
	"time"
)

// Player is a participant joined to a session. Players are identified by a
// numeric id that is unique across all sessions and cannot leave once joined.
type Player struct {
	ID    int64
	Name  string
	Score int
}

// Status is a point-in-time snapshot of a session for polling reads.
type Status struct {
	State         State
	QuestionIndex int
	Players       []Player
}

// Session is one live, timed playthrough of a quiz. Every mutation, including
// timer callbacks, is serialized on the session mutex, so a timer firing and
// an admin action never interleave.
type Session struct {
	ID     int64
	QuizID int64

	clock     Clock
	countdown time.Duration

	mu            sync.Mutex
	state         State
	questionIndex int
	questions     []Question
	players       []*Player
	names         map[string]struct{}
	submissions   map[int64]*submission
	chat          []ChatMessage
	timer         Timer
	timerGen      uint64
}

func newSession(id int64, quiz Quiz, countdown time.Duration, clock Clock) *Session {
	// Deep copy so quiz edits after start never reach a running session.
	questions := make([]Question, len(quiz.Questions))
	copy(questions, quiz.Questions)
	for i, q := range questions {
		questions[i].Answers = append([]Answer(nil), q.Answers...)
	}

	return &Session{
		ID:            id,
		QuizID:        quiz.ID,
		clock:         clock,
		countdown:     countdown,
		state:         StateLobby,
		questionIndex: -1,
		questions:     questions,
		names:         make(map[string]struct{}),
		submissions:   make(map[int64]*submission),
	}
}

// State returns the session's current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Status returns the session state, current question index, and players in
// join order.
func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	players := make([]Player, len(s.players))
	for i, p := range s.players {
		players[i] = *p
	}
	return Status{
		State:         s.state,
		QuestionIndex: s.questionIndex,
		Players:       players,
	}
}

// Apply performs an explicit admin action. Illegal actions fail with
// ErrInvalidStateTransition and mutate nothing. Actions that preempt a pending
// timer cancel it inside the same critical section, so the timer and the
// action cannot both transition.
func (s *Session) Apply(action Action) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateEnd {
		return ErrInvalidStateTransition
	}

	switch action {
	case ActionNextQuestion:
		if s.state != StateLobby && s.state != StateAnswerShow {
			return ErrInvalidStateTransition
		}
		if s.questionIndex+1 >= len(s.questions) {
			return ErrNoMoreQuestions
		}
		s.questionIndex++
		s.enterCountdownLocked()

	case ActionSkipCountdown:
		if s.state != StateQuestionCountdown {
			return ErrInvalidStateTransition
		}
		s.cancelTimerLocked()
		s.enterOpenLocked()

	case ActionGoToAnswer:
		switch s.state {
		case StateQuestionOpen:
			// Close the window early; scoring finalizes exactly as on timer close.
			s.cancelTimerLocked()
			s.enterCloseLocked()
		case StateQuestionClose:
		default:
			return ErrInvalidStateTransition
		}
		s.state = StateAnswerShow

	case ActionGoToFinalResults:
		if s.state != StateAnswerShow && s.state != StateQuestionClose {
			return ErrInvalidStateTransition
		}
		s.state = StateFinalResults

	case ActionEnd:
		s.cancelTimerLocked()
		s.state = StateEnd

	default:
		return ErrUnknownAction
	}
	return nil
}

// ForceEnd ends the session regardless of state. Used when the owning quiz is
// deleted; ending an already ended session is a no-op.
func (s *Session) ForceEnd() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateEnd {
		return
	}
	s.cancelTimerLocked()
	s.state = StateEnd
}

func (s *Session) enterCountdownLocked() {
	s.state = StateQuestionCountdown
	s.scheduleLocked(s.countdown, func() {
		if s.state != StateQuestionCountdown {
			return
		}
		s.enterOpenLocked()
	})
}

func (s *Session) enterOpenLocked() {
	s.state = StateQuestionOpen
	// Leftover submissions from a previous pass over this index are discarded.
	s.submissions = make(map[int64]*submission)
	s.scheduleLocked(s.questions[s.questionIndex].Duration, func() {
		if s.state != StateQuestionOpen {
			return
		}
		s.enterCloseLocked()
	})
}

func (s *Session) enterCloseLocked() {
	s.scoreCurrentQuestionLocked()
	s.state = StateQuestionClose
}

// scheduleLocked arms the session timer. The callback re-acquires the session
// lock and checks the generation counter, so a timer whose generation was
// superseded by cancelTimerLocked fires as a no-op even if Stop raced.
func (s *Session) scheduleLocked(d time.Duration, fn func()) {
	s.timerGen++
	gen := s.timerGen
	s.timer = s.clock.AfterFunc(d, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.timerGen != gen || s.state == StateEnd {
			return
		}
		fn()
	})
}

func (s *Session) cancelTimerLocked() {
	s.timerGen++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

// join adds a player in lobby state. An empty name is generated and retried
// until unique within the session.
func (s *Session) join(name string, id int64) (Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateLobby {
		return Player{}, ErrSessionNotInLobby
	}

	if name == "" {
		for {
			name = randomPlayerName()
			if _, taken := s.names[name]; !taken {
				break
			}
		}
	} else if _, taken := s.names[name]; taken {
		return Player{}, ErrDuplicateName
	}

	p := &Player{ID: id, Name: name}
	s.players = append(s.players, p)
	s.names[name] = struct{}{}
	return *p, nil
}

// submitAnswer records (or overwrites) the player's answer for the currently
// open question.
func (s *Session) submitAnswer(playerID int64, questionIndex int, answerIDs []int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.findPlayerLocked(playerID) == nil {
		return ErrPlayerNotFound
	}
	if s.state != StateQuestionOpen || questionIndex != s.questionIndex {
		return ErrSessionNotOpen
	}
	if len(answerIDs) == 0 {
		return ErrInvalidAnswerIDs
	}

	q := s.questions[s.questionIndex]
	chosen := make(map[int64]struct{}, len(answerIDs))
	for _, id := range answerIDs {
		if !q.hasAnswer(id) {
			return ErrInvalidAnswerIDs
		}
		chosen[id] = struct{}{}
	}

	s.submissions[playerID] = &submission{
		playerID: playerID,
		chosen:   chosen,
		at:       s.clock.Now(),
	}
	return nil
}

// FinalResults returns players ranked by cumulative score descending, ties
// broken by join order. Only available once the session has reached final
// results (or was ended).
func (s *Session) FinalResults() ([]Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateFinalResults && s.state != StateEnd {
		return nil, ErrResultsNotReady
	}

	ranked := make([]Player, len(s.players))
	for i, p := range s.players {
		ranked[i] = *p
	}
	// Stable sort keeps join order for equal scores.
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked, nil
}

func (s *Session) findPlayerLocked(playerID int64) *Player {
	for _, p := range s.players {
		if p.ID == playerID {
			return p
		}
	}
	return nil
}
