package app

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/funcdrill/internal/router"
	"github.com/abhisek/funcdrill/internal/screen"
	"github.com/abhisek/funcdrill/internal/screens/funcselect"
	"github.com/abhisek/funcdrill/internal/screens/learn"
	"github.com/abhisek/funcdrill/internal/screens/quiz"
	"github.com/abhisek/funcdrill/internal/screens/rangeinput"
	"github.com/abhisek/funcdrill/internal/session"
	"github.com/abhisek/funcdrill/internal/store"
	"github.com/abhisek/funcdrill/internal/ui/layout"
	"github.com/abhisek/funcdrill/internal/ui/theme"
)

// Options configures the TUI.
type Options struct {
	// Prefs persists theme and last selection. Nil keeps them in memory.
	Prefs  store.PrefsRepo
	Logger *slog.Logger
	Rand   *rand.Rand

	// Theme overrides the stored theme for this run.
	Theme string

	// Function, when set, skips the function menu. With a valid Range the
	// quiz (or the learn table, if Learn is set) opens directly.
	Function *session.FunctionSpec
	Range    session.Range
	Learn    bool
}

// prefsState is shared between the model and screen callbacks.
type prefsState struct {
	repo   store.PrefsRepo
	prefs  store.Prefs
	logger *slog.Logger
}

func (p *prefsState) save() {
	if p.repo == nil {
		return
	}
	if err := p.repo.Save(context.Background(), p.prefs); err != nil {
		p.logger.Warn("saving preferences failed", "err", err)
	}
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	prefs  *prefsState
	start  tea.Cmd
	width  int
	height int
}

// newAppModel creates a new AppModel rooted at the function menu.
func newAppModel(opts Options) AppModel {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	ps := &prefsState{repo: opts.Prefs, prefs: store.DefaultPrefs(), logger: logger}
	if opts.Prefs != nil {
		p, err := opts.Prefs.Load(context.Background())
		if err != nil {
			logger.Warn("loading preferences failed", "err", err)
		} else {
			ps.prefs = p
		}
	}

	name := ps.prefs.Theme
	if opts.Theme != "" {
		name = opts.Theme
	}
	theme.Apply(name)

	last := session.Range{Start: ps.prefs.LastStart, End: ps.prefs.LastEnd}
	env := &screen.Env{Logger: logger, Rand: opts.Rand}
	root := funcselect.New(env, session.FunctionID(ps.prefs.LastFunction), last)

	env.OnSelect = func(fn session.FunctionSpec, r session.Range) {
		ps.prefs.LastFunction = string(fn.ID)
		ps.prefs.LastStart = r.Start
		ps.prefs.LastEnd = r.End
		ps.save()
		root.Remember(r)
	}

	m := AppModel{
		router: router.New(root),
		prefs:  ps,
	}

	if fn := opts.Function; fn != nil {
		var first screen.Screen
		switch {
		case !opts.Range.Valid():
			first = rangeinput.New(env, *fn, last)
		case opts.Learn:
			first = learn.New(env, *fn, opts.Range)
		default:
			first = quiz.New(env, *fn, opts.Range)
		}
		m.start = m.router.Push(first)
	}
	return m
}

func (m AppModel) Init() tea.Cmd {
	return m.start
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "ctrl+t":
			m.prefs.prefs.Theme = theme.Toggle()
			m.prefs.save()
			return m, nil
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

// render draws the current frame for the known window size.
func (m AppModel) render() string {
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	var title, status string
	if active != nil {
		title = active.Title()
	}
	if sp, ok := active.(screen.StatusProvider); ok {
		status = sp.Status()
	}

	header := layout.RenderHeader(title, status, m.width)

	footerHints := []layout.KeyHint{
		{Key: "Ctrl+T", Description: "Theme"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
	if hp, ok := active.(screen.KeyHintProvider); ok {
		footerHints = hp.KeyHints()
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
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
