package session

import "github.com/abhisek/valenz/internal/explain"

// startedMsg is sent once the controller has built the session.
type startedMsg struct {
	Err error
}

// explainReadyMsg carries an explanation for the element with the given id.
type explainReadyMsg struct {
	ID          string
	Explanation *explain.Explanation
	Err         error
}
