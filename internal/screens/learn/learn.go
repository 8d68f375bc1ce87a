package learn

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/funcdrill/internal/router"
	"github.com/abhisek/funcdrill/internal/screen"
	"github.com/abhisek/funcdrill/internal/screens/quiz"
	"github.com/abhisek/funcdrill/internal/session"
	"github.com/abhisek/funcdrill/internal/ui/layout"
	"github.com/abhisek/funcdrill/internal/ui/theme"
)

// LearnScreen lists the answer for every value of the range before a quiz.
type LearnScreen struct {
	env    *screen.Env
	fn     session.FunctionSpec
	rng    session.Range
	rows   []session.TableRow
	offset int
	height int // rows visible in the last render
}

var _ screen.Screen = (*LearnScreen)(nil)
var _ screen.KeyHintProvider = (*LearnScreen)(nil)

// New creates a LearnScreen for fn over r.
func New(env *screen.Env, fn session.FunctionSpec, r session.Range) *LearnScreen {
	return &LearnScreen{
		env:    env,
		fn:     fn,
		rng:    r,
		rows:   session.AnswerTable(fn, r),
		height: 10,
	}
}

func (s *LearnScreen) Init() tea.Cmd {
	return nil
}

func (s *LearnScreen) Title() string {
	return "Learn: " + s.fn.Name
}

func (s *LearnScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Enter", Description: "Start quiz"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *LearnScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	switch kmsg.String() {
	case "up", "k":
		s.scroll(-1)
	case "down", "j":
		s.scroll(1)
	case "pgup":
		s.scroll(-s.height)
	case "pgdown", " ":
		s.scroll(s.height)
	case "home", "g":
		s.offset = 0
	case "end", "G":
		s.scroll(len(s.rows))
	case "enter":
		next := quiz.New(s.env, s.fn, s.rng)
		return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
	case "esc":
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	return s, nil
}

func (s *LearnScreen) scroll(delta int) {
	s.offset += delta
	if maxOff := len(s.rows) - s.height; s.offset > maxOff {
		s.offset = maxOff
	}
	if s.offset < 0 {
		s.offset = 0
	}
}

func (s *LearnScreen) View(width, height int) string {
	// heading, column header, rule, and scroll hint take 5 lines
	visible := height - 5
	if visible < 1 {
		visible = 1
	}
	s.height = visible
	s.scroll(0)

	valueWidth := len(fmt.Sprint(s.rng.End)) + 2
	answerWidth := 8
	for _, row := range s.rows {
		answerWidth = max(answerWidth, len(row.Text))
	}
	lineWidth := valueWidth + answerWidth + 6

	var b strings.Builder
	b.WriteString(layout.Centered(
		fmt.Sprintf("%s for %s (%d decimal places)", s.fn.Name, s.rng, s.fn.Decimals), width,
		lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)))
	b.WriteString("\n\n")

	var t strings.Builder
	t.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Bold(true).
		Render(fmt.Sprintf("%*s   %-*s", valueWidth, "x", answerWidth, "answer")))
	t.WriteString("\n")
	t.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", lineWidth)))

	end := min(s.offset+visible, len(s.rows))
	for _, row := range s.rows[s.offset:end] {
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if row.Undefined {
			style = style.Foreground(theme.TextDim)
		}
		t.WriteString("\n")
		t.WriteString(style.Render(fmt.Sprintf("%*d   %-*s", valueWidth, row.Value, answerWidth, row.Text)))
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, t.String()))

	if len(s.rows) > visible {
		b.WriteString("\n")
		b.WriteString(layout.Centered(
			fmt.Sprintf("rows %d-%d of %d", s.offset+1, end, len(s.rows)), width,
			lipgloss.NewStyle().Foreground(theme.TextDim)))
	}
	return b.String()
}
