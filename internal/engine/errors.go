package engine

import "errors"

var (
	// ErrSessionNotFound is returned when a session id is unknown.
	ErrSessionNotFound = errors.New("session not found")
	// ErrPlayerNotFound is returned when a player id is unknown.
	ErrPlayerNotFound = errors.New("player not found")

	// ErrInvalidStateTransition is returned for an action that is illegal in the current state.
	ErrInvalidStateTransition = errors.New("invalid state transition")
	// ErrNoMoreQuestions is returned by NEXT_QUESTION when every question has been played.
	ErrNoMoreQuestions = errors.New("no more questions")
	// ErrSessionNotInLobby is returned when joining a session that has already started.
	ErrSessionNotInLobby = errors.New("session is not in lobby")
	// ErrSessionNotOpen is returned when submitting outside the answer window.
	ErrSessionNotOpen = errors.New("question is not open for answers")
	// ErrResultsNotReady is returned before the session reaches final results.
	ErrResultsNotReady = errors.New("results are not ready")

	// ErrDuplicateName is returned when a chosen player name is already taken in the session.
	ErrDuplicateName = errors.New("player name already taken")
	// ErrInvalidAnswerIDs is returned when a submission is empty or references unknown answers.
	ErrInvalidAnswerIDs = errors.New("invalid answer selection")
	// ErrInvalidMessageLength is returned for chat messages outside 1-100 characters.
	ErrInvalidMessageLength = errors.New("message must be between 1 and 100 characters")
	// ErrUnknownAction is returned when an action string does not parse.
	ErrUnknownAction = errors.New("unknown session action")

	// ErrTooManyActiveSessions is returned when a quiz already has the maximum
	// number of sessions that have not yet ended.
	ErrTooManyActiveSessions = errors.New("too many active sessions for quiz")
)

// Kind classifies engine errors so the transport layer can map them to status
// codes without matching individual sentinels.
type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindInvalidState
	KindValidationFailed
	KindConflict
	KindCapacityExceeded
)

// KindOf reports the Kind of an engine error, or KindUnknown for foreign errors.
func KindOf(err error) Kind {
	switch {
	case errors.Is(err, ErrSessionNotFound),
		errors.Is(err, ErrPlayerNotFound):
		return KindNotFound
	case errors.Is(err, ErrInvalidStateTransition),
		errors.Is(err, ErrNoMoreQuestions),
		errors.Is(err, ErrSessionNotInLobby),
		errors.Is(err, ErrSessionNotOpen),
		errors.Is(err, ErrResultsNotReady):
		return KindInvalidState
	case errors.Is(err, ErrInvalidAnswerIDs),
		errors.Is(err, ErrInvalidMessageLength),
		errors.Is(err, ErrUnknownAction):
		return KindValidationFailed
	case errors.Is(err, ErrDuplicateName):
		return KindConflict
	case errors.Is(err, ErrTooManyActiveSessions):
		return KindCapacityExceeded
	default:
		return KindUnknown
	}
}
