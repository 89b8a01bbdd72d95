package engine

import (
	"sort"
	"time"
)

// submission is a player's answer for one question. At most one per player per
// question; a later submission overwrites the earlier one while the window is
// open.
type submission struct {
	playerID int64
	chosen   map[int64]struct{}
	at       time.Time
}

// scoreCurrentQuestionLocked finalizes scoring for the question whose window
// just closed. A submission is correct iff its chosen set exactly equals the
// question's correct set. Correct submissions are ranked by timestamp
// ascending with competition ranking (timestamp ties share a rank) and award
// floor(points / rank); everyone else scores zero.
func (s *Session) scoreCurrentQuestionLocked() {
	q := s.questions[s.questionIndex]
	want := q.correctSet()

	var correct []*submission
	for _, sub := range s.submissions {
		if answerSetsEqual(sub.chosen, want) {
			correct = append(correct, sub)
		}
	}
	sort.Slice(correct, func(i, j int) bool {
		return correct[i].at.Before(correct[j].at)
	})

	rank := 1
	for i, sub := range correct {
		if i > 0 && correct[i].at.After(correct[i-1].at) {
			rank = i + 1
		}
		if p := s.findPlayerLocked(sub.playerID); p != nil {
			p.Score += q.Points / rank
		}
	}
}

func answerSetsEqual(a, b map[int64]struct{}) bool {
	if len(a) != len(b) {
		return false
	}
	for id := range a {
		if _, ok := b[id]; !ok {
			return false
		}
	}
	return true
}
