package engine

import (
	"errors"
	"regexp"
	"testing"
)

func TestJoinOnlyInLobby(t *testing.T) {
	mgr, s, _ := startSession(t, threeSecondQuestion())

	mustApply(t, s, ActionNextQuestion)
	if _, err := mgr.Join(s.ID, "late"); !errors.Is(err, ErrSessionNotInLobby) {
		t.Fatalf("err = %v, want ErrSessionNotInLobby", err)
	}
}

func TestDuplicateNameRejected(t *testing.T) {
	mgr, s, _ := startSession(t, threeSecondQuestion())

	mustJoin(t, mgr, s.ID, "alice")
	if _, err := mgr.Join(s.ID, "alice"); !errors.Is(err, ErrDuplicateName) {
		t.Fatalf("err = %v, want ErrDuplicateName", err)
	}
}

var generatedNameRe = regexp.MustCompile(`^[a-z]{5}[0-9]{3}$`)

func TestGeneratedNames(t *testing.T) {
	mgr, s, _ := startSession(t, threeSecondQuestion())

	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		p := mustJoin(t, mgr, s.ID, "")

		if !generatedNameRe.MatchString(p.Name) {
			t.Fatalf("generated name %q does not match 5 letters + 3 digits", p.Name)
		}
		if seen[p.Name] {
			t.Fatalf("generated name %q repeated within session", p.Name)
		}
		seen[p.Name] = true

		// Letters and digits are each distinct within the name.
		for _, part := range []string{p.Name[:5], p.Name[5:]} {
			chars := make(map[rune]bool)
			for _, r := range part {
				if chars[r] {
					t.Fatalf("generated name %q repeats %q", p.Name, r)
				}
				chars[r] = true
			}
		}
	}
}

func TestPlayerIDsUniqueAcrossSessions(t *testing.T) {
	clock := newManualClock()
	mgr := NewManager(clock, 0)

	seen := make(map[int64]bool)
	for i := 0; i < 3; i++ {
		s, err := mgr.Start(Quiz{ID: int64(i + 1), Questions: []Question{threeSecondQuestion()}}, 0)
		if err != nil {
			t.Fatalf("start %d: %v", i, err)
		}
		for j := 0; j < 4; j++ {
			p := mustJoin(t, mgr, s.ID, "")
			if seen[p.ID] {
				t.Fatalf("player id %d repeated across sessions", p.ID)
			}
			seen[p.ID] = true
		}
	}
}

func TestJoinOrderPreservedInStatus(t *testing.T) {
	mgr, s, _ := startSession(t, threeSecondQuestion())

	names := []string{"alice", "bob", "carol"}
	for _, n := range names {
		mustJoin(t, mgr, s.ID, n)
	}

	status := s.Status()
	if len(status.Players) != len(names) {
		t.Fatalf("players = %d, want %d", len(status.Players), len(names))
	}
	for i, n := range names {
		if status.Players[i].Name != n {
			t.Errorf("players[%d] = %q, want %q", i, status.Players[i].Name, n)
		}
	}
}

func TestTiedScoresRankByJoinOrder(t *testing.T) {
	mgr, s, _ := startSession(t, threeSecondQuestion())
	mustJoin(t, mgr, s.ID, "alice")
	mustJoin(t, mgr, s.ID, "bob")

	mustApply(t, s, ActionEnd)

	ranked, err := s.FinalResults()
	if err != nil {
		t.Fatalf("final results: %v", err)
	}
	if ranked[0].Name != "alice" || ranked[1].Name != "bob" {
		t.Fatalf("tie order = [%s %s], want join order [alice bob]", ranked[0].Name, ranked[1].Name)
	}
}
