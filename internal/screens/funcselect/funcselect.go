package funcselect

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/funcdrill/internal/router"
	"github.com/abhisek/funcdrill/internal/screen"
	"github.com/abhisek/funcdrill/internal/screens/rangeinput"
	"github.com/abhisek/funcdrill/internal/session"
	"github.com/abhisek/funcdrill/internal/ui/components"
	"github.com/abhisek/funcdrill/internal/ui/layout"
	"github.com/abhisek/funcdrill/internal/ui/theme"
)

// FuncSelectScreen is the root screen: pick the function to drill.
type FuncSelectScreen struct {
	env  *screen.Env
	menu components.Menu
	last session.Range
}

var _ screen.Screen = (*FuncSelectScreen)(nil)
var _ screen.KeyHintProvider = (*FuncSelectScreen)(nil)

// New creates the function menu. lastFn preselects an entry and last
// prefills the range screen; both may be zero.
func New(env *screen.Env, lastFn session.FunctionID, last session.Range) *FuncSelectScreen {
	s := &FuncSelectScreen{env: env, last: last}

	var items []components.MenuItem
	selected := 0
	for i, fn := range session.Catalog() {
		items = append(items, components.MenuItem{
			Label:  fn.Name,
			Hotkey: fn.Key,
			Action: s.open(fn),
		})
		if fn.ID == lastFn {
			selected = i
		}
	}
	s.menu = components.NewMenu(items)
	s.menu.Selected = selected
	return s
}

// open returns the menu action that moves on to the range screen for fn.
func (s *FuncSelectScreen) open(fn session.FunctionSpec) func() tea.Cmd {
	return func() tea.Cmd {
		next := rangeinput.New(s.env, fn, s.last)
		return func() tea.Msg { return router.PushScreenMsg{Screen: next} }
	}
}

func (s *FuncSelectScreen) Init() tea.Cmd {
	return nil
}

func (s *FuncSelectScreen) Title() string {
	return "Select Function"
}

func (s *FuncSelectScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "1-6", Description: "Pick"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+T", Description: "Theme"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (s *FuncSelectScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

// Remember updates the range offered next time a function is picked.
func (s *FuncSelectScreen) Remember(r session.Range) {
	s.last = r
}

func (s *FuncSelectScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(layout.Centered("Select Function", width,
		lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)))
	b.WriteString("\n")
	b.WriteString(layout.Centered("Practice computing functions in your head", width,
		lipgloss.NewStyle().Foreground(theme.TextDim)))
	b.WriteString("\n\n")

	menu := theme.Card.Render(strings.TrimRight(s.menu.View(), "\n"))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, menu))
	return b.String()
}
