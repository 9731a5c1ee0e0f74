package session

import (
	"context"
	"errors"
	"time"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/abhisek/valenz/internal/elements"
	"github.com/abhisek/valenz/internal/explain"
	"github.com/abhisek/valenz/internal/quiz"
	"github.com/abhisek/valenz/internal/router"
	"github.com/abhisek/valenz/internal/screen"
	"github.com/abhisek/valenz/internal/screens/summary"
	"github.com/abhisek/valenz/internal/ui/components"
	"github.com/abhisek/valenz/internal/ui/layout"
)

const explainTimeout = 45 * time.Second

// Explainer produces valence explanations. It is satisfied by *explain.Service.
type Explainer interface {
	Available() bool
	Explain(ctx context.Context, req explain.Request) (*explain.Explanation, error)
}

// SessionScreen runs one quiz session on top of a quiz.Controller.
type SessionScreen struct {
	ctrl      *quiz.Controller
	dataset   *elements.Dataset
	explainer Explainer
	log       *zap.Logger

	started   bool
	errMsg    string
	warning   string
	roundSize int

	question    *quiz.Question
	choice      components.MultiChoice
	misses      []string
	showingDone bool
	quitConfirm bool

	explaining  bool
	explanation *explain.Explanation
	explainErr  string
}

var _ screen.Screen = (*SessionScreen)(nil)
var _ screen.KeyHintProvider = (*SessionScreen)(nil)

// New creates a SessionScreen. explainer and log may be nil.
func New(ctrl *quiz.Controller, dataset *elements.Dataset, explainer Explainer, log *zap.Logger) *SessionScreen {
	if log == nil {
		log = zap.NewNop()
	}
	return &SessionScreen{
		ctrl:      ctrl,
		dataset:   dataset,
		explainer: explainer,
		log:       log,
	}
}

func (s *SessionScreen) Init() tea.Cmd {
	ctrl := s.ctrl
	return func() tea.Msg {
		return startedMsg{Err: ctrl.Start()}
	}
}

func (s *SessionScreen) Title() string {
	return "Test"
}

func (s *SessionScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.errMsg != "" || (s.started && s.question == nil):
		return []layout.KeyHint{{Key: "any key", Description: "Back"}}
	case s.quitConfirm:
		return []layout.KeyHint{
			{Key: "Y", Description: "Leave test"},
			{Key: "N", Description: "Keep going"},
		}
	case s.showingDone:
		hints := []layout.KeyHint{{Key: "any key", Description: "Next"}}
		return append(hints, s.explainHint()...)
	}
	hints := []layout.KeyHint{
		{Key: "1-" + string(rune('0'+len(s.choice.Answers))), Description: "Answer"},
		{Key: "↑↓ Enter", Description: "Choose"},
	}
	hints = append(hints, s.explainHint()...)
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Quit"})
}

func (s *SessionScreen) explainHint() []layout.KeyHint {
	if !s.canExplain() {
		return nil
	}
	return []layout.KeyHint{{Key: "?", Description: "Explain"}}
}

func (s *SessionScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case startedMsg:
		return s.handleStarted(msg)

	case summary.RepeatMsg:
		return s.handleRepeat(msg)

	case components.ChosenMsg:
		return s.handleChosen(msg)

	case explainReadyMsg:
		return s.handleExplainReady(msg)

	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *SessionScreen) handleStarted(msg startedMsg) (screen.Screen, tea.Cmd) {
	s.started = true
	if msg.Err != nil {
		s.log.Error("start session", zap.Error(msg.Err))
		s.errMsg = msg.Err.Error()
		return s, nil
	}
	s.beginRound()
	return s, nil
}

func (s *SessionScreen) handleRepeat(msg summary.RepeatMsg) (screen.Screen, tea.Cmd) {
	if msg.WrongOnly {
		s.ctrl.RepeatWrongOnly()
	} else if err := s.ctrl.RepeatAll(); err != nil {
		s.log.Error("repeat session", zap.Error(err))
		s.errMsg = err.Error()
		return s, nil
	}
	s.beginRound()
	return s, nil
}

func (s *SessionScreen) beginRound() {
	s.roundSize = len(s.ctrl.Pending())
	s.loadCurrent()
}

// loadCurrent shows the question at the head of the queue.
func (s *SessionScreen) loadCurrent() {
	s.question = s.ctrl.Current()
	s.misses = nil
	s.showingDone = false
	s.explaining = false
	s.explanation = nil
	s.explainErr = ""
	if s.question != nil {
		s.choice = components.NewMultiChoice(s.question)
	}
}

func (s *SessionScreen) handleChosen(msg components.ChosenMsg) (screen.Screen, tea.Cmd) {
	if s.question == nil {
		return s, nil
	}
	if err := s.ctrl.Answer(context.Background(), s.question, msg.Answer); err != nil {
		s.log.Warn("persist answer", zap.String("element", s.question.ID), zap.Error(err))
		s.warning = "Could not save statistics: " + err.Error()
	}
	if msg.Answer.Correct {
		s.showingDone = true
	} else {
		s.misses = append(s.misses, msg.Answer.Value)
	}
	return s, nil
}

func (s *SessionScreen) handleExplainReady(msg explainReadyMsg) (screen.Screen, tea.Cmd) {
	if s.question == nil || msg.ID != s.question.ID {
		return s, nil
	}
	s.explaining = false
	if msg.Err != nil {
		s.explainErr = msg.Err.Error()
		return s, nil
	}
	s.explanation = msg.Explanation
	return s, nil
}

func (s *SessionScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	if !s.started {
		return s, nil
	}

	// Error or empty session: any key goes back.
	if s.errMsg != "" || s.question == nil {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}

	if s.quitConfirm {
		switch msg.String() {
		case "y", "Y":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "n", "N", "esc":
			s.quitConfirm = false
		}
		return s, nil
	}

	if key.Matches(msg, components.KeyExplain) && s.canExplain() {
		return s, s.requestExplanation()
	}

	if s.showingDone {
		return s, s.advance()
	}

	if key.Matches(msg, components.KeyBack) {
		s.quitConfirm = true
		return s, nil
	}

	var cmd tea.Cmd
	s.choice, cmd = s.choice.Update(msg)
	return s, cmd
}

// advance moves past a solved question, to the results when the queue is empty.
func (s *SessionScreen) advance() tea.Cmd {
	if s.ctrl.IsComplete() {
		s.question = nil
		s.showingDone = false
		res := summary.Result{
			Round:  s.ctrl.Round(),
			Total:  s.ctrl.Total(),
			Right:  s.ctrl.Right(),
			Wrong:  s.ctrl.Wrong(),
			Tally:  s.ctrl.RetryTally(),
			Warned: s.warning != "",
		}
		return func() tea.Msg {
			return router.PushScreenMsg{Screen: summary.New(res)}
		}
	}
	s.loadCurrent()
	return nil
}

func (s *SessionScreen) canExplain() bool {
	return s.explainer != nil && s.explainer.Available() && s.question != nil &&
		!s.explaining && s.explanation == nil
}

func (s *SessionScreen) requestExplanation() tea.Cmd {
	el, ok := s.dataset.Get(s.question.ID)
	if !ok {
		s.explainErr = "unknown element " + s.question.ID
		return nil
	}
	req := explain.Request{Element: el}
	if len(s.misses) > 0 {
		req.Chosen = s.misses[len(s.misses)-1]
	}

	s.explaining = true
	s.explainErr = ""
	explainer := s.explainer
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), explainTimeout)
		defer cancel()
		exp, err := explainer.Explain(ctx, req)
		if errors.Is(err, context.DeadlineExceeded) {
			err = errors.New("the explanation took too long")
		}
		return explainReadyMsg{ID: el.Symbol, Explanation: exp, Err: err}
	}
}
