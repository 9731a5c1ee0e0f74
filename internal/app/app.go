package app

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/valenz/internal/elements"
	"github.com/abhisek/valenz/internal/quiz"
	"github.com/abhisek/valenz/internal/router"
	"github.com/abhisek/valenz/internal/screen"
	"github.com/abhisek/valenz/internal/screens/home"
	sessionscreen "github.com/abhisek/valenz/internal/screens/session"
	"github.com/abhisek/valenz/internal/screens/welcome"
	"github.com/abhisek/valenz/internal/selfupdate"
	"github.com/abhisek/valenz/internal/settings"
	"github.com/abhisek/valenz/internal/ui/layout"
)

const updateCheckTimeout = 5 * time.Second

// UpdateChecker reports whether a newer release exists.
type UpdateChecker interface {
	Check(ctx context.Context, in *selfupdate.CheckInput) (*selfupdate.CheckResult, error)
}

// Options wires the TUI to its collaborators.
type Options struct {
	Dataset     *elements.Dataset
	Settings    *settings.Store
	Explainer   sessionscreen.Explainer
	QuizOptions []quiz.Option
	Logger      *zap.Logger

	// Version is the running version, used for the update check.
	Version string

	// StartTest opens a test right away instead of waiting on the home menu.
	StartTest bool

	// Splash shows the welcome animation first.
	Splash bool

	// Updates is optional; nil skips the update check.
	Updates UpdateChecker
}

// updateCheckedMsg carries the result of the background update check.
type updateCheckedMsg struct {
	Result *selfupdate.CheckResult
	Err    error
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router  *router.Router
	opts    Options
	initCmd tea.Cmd
	status  string
	width   int
	height  int
}

// newAppModel creates the root model with the home screen at the bottom of
// the stack.
func newAppModel(opts Options) AppModel {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	homeScreen := home.New(home.Deps{
		Dataset:       opts.Dataset,
		Settings:      opts.Settings,
		Explainer:     opts.Explainer,
		NewController: controllerFactory(opts),
		Log:           opts.Logger,
	})

	m := AppModel{opts: opts}
	switch {
	case opts.StartTest:
		m.router = router.New(homeScreen)
		m.initCmd = m.router.Push(homeScreen.NewTest())
	case opts.Splash:
		m.router = router.New(welcome.New(func() screen.Screen { return homeScreen }))
		m.initCmd = m.router.Active().Init()
	default:
		m.router = router.New(homeScreen)
		m.initCmd = homeScreen.Init()
	}
	return m
}

// controllerFactory builds controllers that log their events.
func controllerFactory(opts Options) func() *quiz.Controller {
	return func() *quiz.Controller {
		ctrl := quiz.NewController(opts.Dataset, opts.Settings, opts.QuizOptions...)
		ctrl.Subscribe(LogEvents(opts.Logger))
		return ctrl
	}
}

// LogEvents returns an observer that writes session events to log.
func LogEvents(log *zap.Logger) quiz.Observer {
	return func(e quiz.Event) {
		fields := []zap.Field{
			zap.String("session_id", e.SessionID),
			zap.Int("round", e.Round),
			zap.Int("pending", e.Pending),
			zap.Int("right", e.Right),
			zap.Int("wrong", e.Wrong),
		}
		switch e.Kind {
		case quiz.EventAnswered:
			fields = append(fields,
				zap.String("element", e.Question.ID),
				zap.String("chosen", e.Chosen.Value),
				zap.Bool("correct", e.Chosen.Correct),
				zap.Bool("first_attempt", e.FirstAttempt),
			)
			log.Debug("quiz answer", fields...)
		default:
			log.Info("quiz "+string(e.Kind), fields...)
		}
	}
}

func (m AppModel) Init() tea.Cmd {
	return tea.Batch(m.initCmd, m.checkForUpdate())
}

func (m AppModel) checkForUpdate() tea.Cmd {
	if m.opts.Updates == nil || m.opts.Version == "" || m.opts.Version == "dev" {
		return nil
	}
	updates, version := m.opts.Updates, m.opts.Version
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), updateCheckTimeout)
		defer cancel()
		res, err := updates.Check(ctx, &selfupdate.CheckInput{Version: version})
		return updateCheckedMsg{Result: res, Err: err}
	}
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case updateCheckedMsg:
		switch {
		case msg.Err != nil:
			m.opts.Logger.Debug("update check failed", zap.Error(msg.Err))
		case msg.Result != nil && msg.Result.UpdateAvailable:
			m.status = fmt.Sprintf("%s available  ", msg.Result.LatestVersion)
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	if m.width == 0 || m.height == 0 {
		return v
	}
	v.SetContent(m.render())
	return v
}

// render composes header, active screen and footer for the current size.
func (m AppModel) render() string {
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.status, m.width)
	footer := layout.RenderFooter(m.footerHints(active), m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	if p, ok := active.(screen.KeyHintProvider); ok {
		return append(p.KeyHints(), layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
