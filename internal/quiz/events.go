package quiz

// EventKind identifies what happened in a session.
type EventKind string

const (
	EventStarted   EventKind = "started"
	EventAnswered  EventKind = "answered"
	EventCompleted EventKind = "completed"
	EventRetried   EventKind = "retried"
)

// Event describes one state transition of a Controller.
type Event struct {
	Kind      EventKind
	SessionID string
	Round     int

	// Question and Chosen are set for EventAnswered.
	Question *Question
	Chosen   Answer

	// FirstAttempt is true when the answer counted towards stats.
	FirstAttempt bool

	// Pending, Right and Wrong are the partition sizes after the transition.
	Pending int
	Right   int
	Wrong   int
}

// Observer receives events synchronously after each transition.
type Observer func(Event)
