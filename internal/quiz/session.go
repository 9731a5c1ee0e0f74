package quiz

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/abhisek/valenz/internal/settings"
)

// Dataset resolves item ids to items.
type Dataset interface {
	Lookup(id string) (Item, bool)
}

// SettingsStore is the settings collaborator: the ordered per-item settings
// and an explicit persist step.
type SettingsStore interface {
	Items() []*settings.ItemSetting
	Persist(ctx context.Context) error
}

// RetryTally decides what happens to the right partition when only the wrong
// answers are repeated.
type RetryTally int

const (
	// KeepRight leaves earlier right answers in place, so the next tally
	// counts them together with the retried questions.
	KeepRight RetryTally = iota

	// ResetRight clears the right partition so the next tally covers only
	// the retried questions.
	ResetRight
)

// ParseRetryTally maps "keep" and "reset" to a RetryTally.
func ParseRetryTally(s string) (RetryTally, error) {
	switch s {
	case "", "keep":
		return KeepRight, nil
	case "reset":
		return ResetRight, nil
	}
	return KeepRight, fmt.Errorf("unknown retry tally %q (want keep or reset)", s)
}

func (t RetryTally) String() string {
	if t == ResetRight {
		return "reset"
	}
	return "keep"
}

// Option configures a Controller.
type Option func(*Controller)

// WithSource sets the random source used for building and shuffling.
func WithSource(rng Source) Option {
	return func(c *Controller) { c.rng = rng }
}

// WithDistractors sets how many wrong answers each question offers.
func WithDistractors(n int) Option {
	return func(c *Controller) { c.distractors = n }
}

// WithRetryTally sets the RepeatWrongOnly behavior for the right partition.
func WithRetryTally(t RetryTally) Option {
	return func(c *Controller) { c.retryTally = t }
}

// Controller owns one quiz session: the pending queue and the right/wrong
// partitions. It is not safe for concurrent use.
type Controller struct {
	dataset     Dataset
	settings    SettingsStore
	rng         Source
	distractors int
	retryTally  RetryTally
	builder     *Builder

	sessionID string
	round     int
	total     int
	pending   []*Question
	right     []*Question
	wrong     []*Question
	owners    map[string]*settings.ItemSetting

	observers []Observer
}

// NewController creates a Controller. Call Start before answering.
func NewController(dataset Dataset, store SettingsStore, opts ...Option) *Controller {
	c := &Controller{
		dataset:     dataset,
		settings:    store,
		distractors: DefaultDistractors,
		owners:      make(map[string]*settings.ItemSetting),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.rng == nil {
		c.rng = NewRand()
	}
	c.builder = NewBuilder(c.rng, c.distractors)
	return c
}

// Subscribe registers an observer for session events.
func (c *Controller) Subscribe(o Observer) {
	c.observers = append(c.observers, o)
}

// Start builds a fresh session from the enabled settings. An enabled id that
// the dataset does not know aborts construction with *UnknownItemError and
// leaves the current session untouched. No enabled items is not an error: the
// session is simply complete from the start.
func (c *Controller) Start() error {
	var questions []*Question
	owners := make(map[string]*settings.ItemSetting)

	for _, setting := range c.settings.Items() {
		if !setting.Enabled {
			continue
		}
		item, ok := c.dataset.Lookup(setting.ID)
		if !ok {
			return &UnknownItemError{ID: setting.ID}
		}
		questions = append(questions, c.builder.Build(item))
		owners[item.ID] = setting
	}

	c.sessionID = uuid.NewString()
	c.round = 1
	c.total = len(questions)
	c.pending = Shuffled(c.rng, questions)
	c.right = nil
	c.wrong = nil
	c.owners = owners

	c.emit(Event{Kind: EventStarted})
	return nil
}

// RepeatAll restarts the session with the same enabled set. Every question is
// rebuilt, so answer arrangements change too.
func (c *Controller) RepeatAll() error {
	return c.Start()
}

// RepeatWrongOnly queues the wrongly answered questions again, shuffled, and
// clears the wrong partition. The right partition follows the RetryTally option.
func (c *Controller) RepeatWrongOnly() {
	c.pending = Shuffled(c.rng, c.wrong)
	c.wrong = nil
	if c.retryTally == ResetRight {
		c.right = nil
	}
	c.round++
	c.emit(Event{Kind: EventRetried})
}

// Answer processes one answer event. Questions not in the pending queue are
// ignored. The first answer to a question in a session is recorded in the
// item's stats and in the right or wrong partition; a correct answer removes
// the question from the queue, a wrong one leaves it for another attempt.
//
// The returned error only reports a failed persist; the session state has
// already been updated when it is returned.
func (c *Controller) Answer(ctx context.Context, q *Question, chosen Answer) error {
	if q == nil || indexOf(c.pending, q.ID) < 0 {
		return nil
	}

	first := indexOf(c.right, q.ID) < 0 && indexOf(c.wrong, q.ID) < 0
	if first {
		if owner := c.owners[q.ID]; owner != nil {
			owner.Stats.Record(chosen.Correct)
		}
		if chosen.Correct {
			c.right = append(c.right, q)
		} else {
			c.wrong = append(c.wrong, q)
		}
	}

	if chosen.Correct {
		i := indexOf(c.pending, q.ID)
		c.pending = append(c.pending[:i:i], c.pending[i+1:]...)
	}

	c.emit(Event{Kind: EventAnswered, Question: q, Chosen: chosen, FirstAttempt: first})
	if c.IsComplete() {
		c.emit(Event{Kind: EventCompleted})
	}

	if first {
		if err := c.settings.Persist(ctx); err != nil {
			return fmt.Errorf("record answer for %s: %w", q.ID, err)
		}
	}
	return nil
}

// IsComplete reports whether the pending queue is empty.
func (c *Controller) IsComplete() bool {
	return len(c.pending) == 0
}

// Current returns the question at the head of the queue, or nil when complete.
func (c *Controller) Current() *Question {
	if len(c.pending) == 0 {
		return nil
	}
	return c.pending[0]
}

// Pending returns a copy of the pending queue.
func (c *Controller) Pending() []*Question { return clone(c.pending) }

// Right returns a copy of the right partition.
func (c *Controller) Right() []*Question { return clone(c.right) }

// Wrong returns a copy of the wrong partition.
func (c *Controller) Wrong() []*Question { return clone(c.wrong) }

// Tally returns the sizes of the right and wrong partitions.
func (c *Controller) Tally() (right, wrong int) {
	return len(c.right), len(c.wrong)
}

// Total returns how many questions the last Start built.
func (c *Controller) Total() int { return c.total }

// Round is 1 after Start and increases with every RepeatWrongOnly.
func (c *Controller) Round() int { return c.round }

// SessionID identifies the session created by the last Start.
func (c *Controller) SessionID() string { return c.sessionID }

// RetryTally returns the configured RepeatWrongOnly behavior.
func (c *Controller) RetryTally() RetryTally { return c.retryTally }

func (c *Controller) emit(e Event) {
	if len(c.observers) == 0 {
		return
	}
	e.SessionID = c.sessionID
	e.Round = c.round
	e.Pending = len(c.pending)
	e.Right = len(c.right)
	e.Wrong = len(c.wrong)
	for _, o := range c.observers {
		o(e)
	}
}

func indexOf(qs []*Question, id string) int {
	for i, q := range qs {
		if q.ID == id {
			return i
		}
	}
	return -1
}

func clone(qs []*Question) []*Question {
	return append([]*Question(nil), qs...)
}
