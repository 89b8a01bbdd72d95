package engine

import (
	"errors"
	"testing"
	"time"
)

func openQuestion(t *testing.T, s *Session) {
	t.Helper()
	mustApply(t, s, ActionNextQuestion)
	mustApply(t, s, ActionSkipCountdown)
}

func scores(t *testing.T, s *Session) map[string]int {
	t.Helper()
	out := make(map[string]int)
	for _, p := range s.Status().Players {
		out[p.Name] = p.Score
	}
	return out
}

func TestRankBasedScoring(t *testing.T) {
	mgr, s, clock := startSession(t, threeSecondQuestion())
	alice := mustJoin(t, mgr, s.ID, "alice")
	bob := mustJoin(t, mgr, s.ID, "bob")
	carol := mustJoin(t, mgr, s.ID, "carol")

	openQuestion(t, s)

	if err := mgr.SubmitAnswer(alice.ID, 0, []int64{101}); err != nil {
		t.Fatalf("alice: %v", err)
	}
	clock.Advance(time.Second)
	if err := mgr.SubmitAnswer(bob.ID, 0, []int64{101}); err != nil {
		t.Fatalf("bob: %v", err)
	}
	if err := mgr.SubmitAnswer(carol.ID, 0, []int64{102}); err != nil {
		t.Fatalf("carol: %v", err)
	}

	clock.Advance(2 * time.Second)

	got := scores(t, s)
	want := map[string]int{"alice": 10, "bob": 5, "carol": 0}
	for name, score := range want {
		if got[name] != score {
			t.Errorf("%s score = %d, want %d", name, got[name], score)
		}
	}
}

func TestScoringTimestampTiesShareRank(t *testing.T) {
	mgr, s, clock := startSession(t, threeSecondQuestion())
	alice := mustJoin(t, mgr, s.ID, "alice")
	bob := mustJoin(t, mgr, s.ID, "bob")
	carol := mustJoin(t, mgr, s.ID, "carol")

	openQuestion(t, s)

	// alice and bob answer at the same instant, carol a second later.
	if err := mgr.SubmitAnswer(alice.ID, 0, []int64{101}); err != nil {
		t.Fatalf("alice: %v", err)
	}
	if err := mgr.SubmitAnswer(bob.ID, 0, []int64{101}); err != nil {
		t.Fatalf("bob: %v", err)
	}
	clock.Advance(time.Second)
	if err := mgr.SubmitAnswer(carol.ID, 0, []int64{101}); err != nil {
		t.Fatalf("carol: %v", err)
	}

	clock.Advance(2 * time.Second)

	got := scores(t, s)
	// Competition ranking: 1, 1, 3 -> 10, 10, floor(10/3).
	want := map[string]int{"alice": 10, "bob": 10, "carol": 3}
	for name, score := range want {
		if got[name] != score {
			t.Errorf("%s score = %d, want %d", name, got[name], score)
		}
	}
}

func TestLaterSubmissionOverwritesEarlier(t *testing.T) {
	mgr, s, clock := startSession(t, threeSecondQuestion())
	p := mustJoin(t, mgr, s.ID, "alice")

	openQuestion(t, s)

	if err := mgr.SubmitAnswer(p.ID, 0, []int64{102}); err != nil {
		t.Fatalf("first submit: %v", err)
	}
	clock.Advance(time.Second)
	if err := mgr.SubmitAnswer(p.ID, 0, []int64{101}); err != nil {
		t.Fatalf("second submit: %v", err)
	}

	clock.Advance(2 * time.Second)

	if got := scores(t, s)["alice"]; got != 10 {
		t.Fatalf("score = %d, want 10 (latest submission wins)", got)
	}
}

func TestNoSubmissionAfterClose(t *testing.T) {
	mgr, s, clock := startSession(t, threeSecondQuestion())
	p := mustJoin(t, mgr, s.ID, "alice")

	openQuestion(t, s)
	clock.Advance(3 * time.Second)
	if got := s.State(); got != StateQuestionClose {
		t.Fatalf("state = %s, want QUESTION_CLOSE", got)
	}

	err := mgr.SubmitAnswer(p.ID, 0, []int64{101})
	if !errors.Is(err, ErrSessionNotOpen) {
		t.Fatalf("err = %v, want ErrSessionNotOpen", err)
	}
	if got := scores(t, s)["alice"]; got != 0 {
		t.Fatalf("score = %d, want 0", got)
	}
}

func TestSubmissionValidation(t *testing.T) {
	mgr, s, _ := startSession(t, threeSecondQuestion())
	p := mustJoin(t, mgr, s.ID, "alice")

	openQuestion(t, s)

	tests := []struct {
		name          string
		playerID      int64
		questionIndex int
		answerIDs     []int64
		wantErr       error
	}{
		{"unknown player", p.ID + 999, 0, []int64{101}, ErrPlayerNotFound},
		{"wrong question index", p.ID, 1, []int64{101}, ErrSessionNotOpen},
		{"empty selection", p.ID, 0, nil, ErrInvalidAnswerIDs},
		{"foreign answer id", p.ID, 0, []int64{999}, ErrInvalidAnswerIDs},
		{"mixed valid and foreign", p.ID, 0, []int64{101, 999}, ErrInvalidAnswerIDs},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := mgr.SubmitAnswer(tt.playerID, tt.questionIndex, tt.answerIDs)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestMultipleCorrectAnswersRequireExactSet(t *testing.T) {
	q := Question{
		ID:       21,
		Text:     "Which are South American capitals?",
		Duration: 3 * time.Second,
		Points:   10,
		Answers: []Answer{
			{ID: 301, Text: "Lima", Correct: true},
			{ID: 302, Text: "Bogota", Correct: true},
			{ID: 303, Text: "Madrid"},
		},
	}
	mgr, s, clock := startSession(t, q)
	alice := mustJoin(t, mgr, s.ID, "alice")
	bob := mustJoin(t, mgr, s.ID, "bob")
	carol := mustJoin(t, mgr, s.ID, "carol")

	openQuestion(t, s)

	// Exact set is correct; subsets and supersets are not.
	if err := mgr.SubmitAnswer(alice.ID, 0, []int64{301, 302}); err != nil {
		t.Fatalf("alice: %v", err)
	}
	if err := mgr.SubmitAnswer(bob.ID, 0, []int64{301}); err != nil {
		t.Fatalf("bob: %v", err)
	}
	if err := mgr.SubmitAnswer(carol.ID, 0, []int64{301, 302, 303}); err != nil {
		t.Fatalf("carol: %v", err)
	}

	clock.Advance(3 * time.Second)

	got := scores(t, s)
	want := map[string]int{"alice": 10, "bob": 0, "carol": 0}
	for name, score := range want {
		if got[name] != score {
			t.Errorf("%s score = %d, want %d", name, got[name], score)
		}
	}
}

func TestScoresAccumulateAcrossQuestions(t *testing.T) {
	q1 := threeSecondQuestion()
	q2 := Question{
		ID:       12,
		Text:     "Capital of Ecuador?",
		Duration: 3 * time.Second,
		Points:   4,
		Answers: []Answer{
			{ID: 201, Text: "Quito", Correct: true},
			{ID: 202, Text: "Guayaquil"},
		},
	}
	mgr, s, clock := startSession(t, q1, q2)
	p := mustJoin(t, mgr, s.ID, "alice")

	openQuestion(t, s)
	if err := mgr.SubmitAnswer(p.ID, 0, []int64{101}); err != nil {
		t.Fatalf("q1 submit: %v", err)
	}
	clock.Advance(3 * time.Second)
	mustApply(t, s, ActionGoToAnswer)

	openQuestion(t, s)
	if err := mgr.SubmitAnswer(p.ID, 1, []int64{201}); err != nil {
		t.Fatalf("q2 submit: %v", err)
	}
	clock.Advance(3 * time.Second)

	if got := scores(t, s)["alice"]; got != 14 {
		t.Fatalf("cumulative score = %d, want 14", got)
	}
}
