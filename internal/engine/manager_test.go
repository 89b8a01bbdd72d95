package engine

import (
	"errors"
	"testing"

	"golang.org/x/sync/errgroup"
)

func TestGetUnknownSession(t *testing.T) {
	mgr := NewManager(newManualClock(), 0)

	if _, err := mgr.Get(42); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("err = %v, want ErrSessionNotFound", err)
	}
}

func TestActiveSessionBound(t *testing.T) {
	mgr := NewManager(newManualClock(), 0)
	quiz := testQuiz(threeSecondQuestion())

	sessions := make([]*Session, 0, MaxActiveSessions)
	for i := 0; i < MaxActiveSessions; i++ {
		s, err := mgr.Start(quiz, 0)
		if err != nil {
			t.Fatalf("start %d: %v", i, err)
		}
		sessions = append(sessions, s)
	}

	if _, err := mgr.Start(quiz, 0); !errors.Is(err, ErrTooManyActiveSessions) {
		t.Fatalf("err = %v, want ErrTooManyActiveSessions", err)
	}

	// Ended sessions no longer count against the bound.
	sessions[0].ForceEnd()
	if _, err := mgr.Start(quiz, 0); err != nil {
		t.Fatalf("start after end: %v", err)
	}

	// A different quiz has its own budget.
	if _, err := mgr.Start(Quiz{ID: 2, Questions: quiz.Questions}, 0); err != nil {
		t.Fatalf("start other quiz: %v", err)
	}
}

func TestFrozenQuestionsIgnoreLaterEdits(t *testing.T) {
	mgr := NewManager(newManualClock(), 0)
	quiz := testQuiz(threeSecondQuestion())

	s, err := mgr.Start(quiz, 0)
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	// Mutating the caller's slice after start must not leak into the session.
	quiz.Questions[0].Answers[0].Correct = false
	quiz.Questions[0].Answers[1].Correct = true

	p := mustJoin(t, mgr, s.ID, "alice")
	openQuestion(t, s)
	if err := mgr.SubmitAnswer(p.ID, 0, []int64{101}); err != nil {
		t.Fatalf("submit: %v", err)
	}
	mustApply(t, s, ActionGoToAnswer)

	if got := scores(t, s)["alice"]; got != 10 {
		t.Fatalf("score = %d, want 10 (session saw the edited quiz?)", got)
	}
}

func TestEndSessionsForQuiz(t *testing.T) {
	mgr := NewManager(newManualClock(), 0)
	quiz := testQuiz(threeSecondQuestion())

	s1, err := mgr.Start(quiz, 0)
	if err != nil {
		t.Fatalf("start s1: %v", err)
	}
	s2, err := mgr.Start(quiz, 0)
	if err != nil {
		t.Fatalf("start s2: %v", err)
	}
	other, err := mgr.Start(Quiz{ID: 9, Questions: quiz.Questions}, 0)
	if err != nil {
		t.Fatalf("start other: %v", err)
	}

	mgr.EndSessionsForQuiz(quiz.ID)

	if got := s1.State(); got != StateEnd {
		t.Errorf("s1 state = %s, want END", got)
	}
	if got := s2.State(); got != StateEnd {
		t.Errorf("s2 state = %s, want END", got)
	}
	if got := other.State(); got == StateEnd {
		t.Errorf("other quiz's session was ended too")
	}
}

func TestConcurrentJoins(t *testing.T) {
	mgr := NewManager(newManualClock(), 0)
	s, err := mgr.Start(testQuiz(threeSecondQuestion()), 0)
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	const n = 32
	ids := make([]int64, n)
	var g errgroup.Group
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			p, err := mgr.Join(s.ID, "")
			if err != nil {
				return err
			}
			ids[i] = p.ID
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatalf("concurrent join: %v", err)
	}

	seen := make(map[int64]bool, n)
	for _, id := range ids {
		if seen[id] {
			t.Fatalf("player id %d assigned twice", id)
		}
		seen[id] = true
	}

	status := s.Status()
	if len(status.Players) != n {
		t.Fatalf("players = %d, want %d", len(status.Players), n)
	}
	names := make(map[string]bool, n)
	for _, p := range status.Players {
		if names[p.Name] {
			t.Fatalf("generated name %q assigned twice", p.Name)
		}
		names[p.Name] = true
	}
}

func TestConcurrentSubmissions(t *testing.T) {
	mgr := NewManager(newManualClock(), 0)
	s, err := mgr.Start(testQuiz(threeSecondQuestion()), 0)
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	const n = 16
	players := make([]Player, n)
	for i := range players {
		players[i] = mustJoin(t, mgr, s.ID, "")
	}

	openQuestion(t, s)

	var g errgroup.Group
	for _, p := range players {
		p := p
		g.Go(func() error {
			return mgr.SubmitAnswer(p.ID, 0, []int64{101})
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatalf("concurrent submit: %v", err)
	}

	mustApply(t, s, ActionGoToAnswer)

	// All submissions share a timestamp, so everyone ties for first.
	for _, p := range s.Status().Players {
		if p.Score != 10 {
			t.Fatalf("player %s score = %d, want 10", p.Name, p.Score)
		}
	}
}
