package engine

// State is the phase of a session's state machine.
type State int

const (
	StateLobby State = iota
	StateQuestionCountdown
	StateQuestionOpen
	StateQuestionClose
	StateAnswerShow
	StateFinalResults
	StateEnd
)

var stateNames = map[State]string{
	StateLobby:             "LOBBY",
	StateQuestionCountdown: "QUESTION_COUNTDOWN",
	StateQuestionOpen:      "QUESTION_OPEN",
	StateQuestionClose:     "QUESTION_CLOSE",
	StateAnswerShow:        "ANSWER_SHOW",
	StateFinalResults:      "FINAL_RESULTS",
	StateEnd:               "END",
}

func (s State) String() string { return stateNames[s] }

// Action is an explicit admin-driven transition request.
type Action int

const (
	ActionNextQuestion Action = iota
	ActionSkipCountdown
	ActionGoToAnswer
	ActionGoToFinalResults
	ActionEnd
)

var actionNames = map[Action]string{
	ActionNextQuestion:     "NEXT_QUESTION",
	ActionSkipCountdown:    "SKIP_COUNTDOWN",
	ActionGoToAnswer:       "GO_TO_ANSWER",
	ActionGoToFinalResults: "GO_TO_FINAL_RESULTS",
	ActionEnd:              "END",
}

func (a Action) String() string { return actionNames[a] }

// ParseAction maps a wire action name to an Action.
func ParseAction(name string) (Action, error) {
	for a, n := range actionNames {
		if n == name {
			return a, nil
		}
	}
	return 0, ErrUnknownAction
}
