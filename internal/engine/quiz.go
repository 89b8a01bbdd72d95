// Package engine implements the live quiz session engine: session lifecycle,
// timed question windows, answer scoring, player registry, and chat. Sessions
// live entirely in memory; quiz content arrives as an immutable snapshot that
// is frozen per session when it starts.
package engine

import "time"

// Answer is one selectable option of a question.
type Answer struct {
	ID      int64
	Text    string
	Correct bool
}

// Question is a single timed question of a quiz snapshot.
type Question struct {
	ID       int64
	Text     string
	Duration time.Duration
	Points   int
	Answers  []Answer
}

// Quiz is the immutable question sequence handed to Start. The engine copies
// the slice so later edits by the caller cannot affect a running session.
type Quiz struct {
	ID        int64
	Name      string
	Questions []Question
}

// correctSet returns the ids of the question's correct answers.
func (q Question) correctSet() map[int64]struct{} {
	set := make(map[int64]struct{})
	for _, a := range q.Answers {
		if a.Correct {
			set[a.ID] = struct{}{}
		}
	}
	return set
}

// hasAnswer reports whether id names one of the question's answers.
func (q Question) hasAnswer(id int64) bool {
	for _, a := range q.Answers {
		if a.ID == id {
			return true
		}
	}
	return false
}
