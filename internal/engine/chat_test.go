package engine

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestChatAppendAndHistory(t *testing.T) {
	mgr, s, clock := startSession(t, threeSecondQuestion())
	alice := mustJoin(t, mgr, s.ID, "alice")
	bob := mustJoin(t, mgr, s.ID, "bob")

	if err := mgr.SendChat(alice.ID, "hello"); err != nil {
		t.Fatalf("alice send: %v", err)
	}
	clock.Advance(time.Second)
	if err := mgr.SendChat(bob.ID, "hi alice"); err != nil {
		t.Fatalf("bob send: %v", err)
	}

	// Every player of the session sees the same ordered history.
	for _, p := range []Player{alice, bob} {
		history, err := mgr.ChatHistory(p.ID)
		if err != nil {
			t.Fatalf("history for %s: %v", p.Name, err)
		}
		if len(history) != 2 {
			t.Fatalf("history for %s has %d messages, want 2", p.Name, len(history))
		}
		if history[0].PlayerName != "alice" || history[0].Body != "hello" {
			t.Errorf("first message = %s/%q", history[0].PlayerName, history[0].Body)
		}
		if history[1].PlayerName != "bob" || history[1].Body != "hi alice" {
			t.Errorf("second message = %s/%q", history[1].PlayerName, history[1].Body)
		}
		if history[1].SentAt.Before(history[0].SentAt) {
			t.Errorf("history not ordered by send time")
		}
	}
}

func TestChatValidation(t *testing.T) {
	mgr, s, _ := startSession(t, threeSecondQuestion())
	p := mustJoin(t, mgr, s.ID, "alice")

	tests := []struct {
		name     string
		playerID int64
		body     string
		wantErr  error
	}{
		{"unknown player", p.ID + 999, "hello", ErrPlayerNotFound},
		{"empty body", p.ID, "", ErrInvalidMessageLength},
		{"too long", p.ID, strings.Repeat("x", 101), ErrInvalidMessageLength},
		{"max length ok", p.ID, strings.Repeat("x", 100), nil},
		{"single char ok", p.ID, "y", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := mgr.SendChat(tt.playerID, tt.body)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestChatSurvivesSessionEnd(t *testing.T) {
	mgr, s, _ := startSession(t, threeSecondQuestion())
	p := mustJoin(t, mgr, s.ID, "alice")

	if err := mgr.SendChat(p.ID, "before end"); err != nil {
		t.Fatalf("send: %v", err)
	}
	mustApply(t, s, ActionEnd)

	history, err := mgr.ChatHistory(p.ID)
	if err != nil {
		t.Fatalf("history after end: %v", err)
	}
	if len(history) != 1 || history[0].Body != "before end" {
		t.Fatalf("history after end = %+v", history)
	}

	// New messages are still accepted; the chat log outlives the game.
	if err := mgr.SendChat(p.ID, "gg"); err != nil {
		t.Fatalf("send after end: %v", err)
	}
}
