package rangeinput

import (
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/funcdrill/internal/router"
	"github.com/abhisek/funcdrill/internal/screen"
	"github.com/abhisek/funcdrill/internal/screens/learn"
	"github.com/abhisek/funcdrill/internal/screens/quiz"
	"github.com/abhisek/funcdrill/internal/session"
	"github.com/abhisek/funcdrill/internal/ui/components"
	"github.com/abhisek/funcdrill/internal/ui/layout"
	"github.com/abhisek/funcdrill/internal/ui/theme"
)

const boundCharLimit = 7

// RangeInputScreen asks for the start and end of the range to drill.
type RangeInputScreen struct {
	env    *screen.Env
	fn     session.FunctionSpec
	inputs [2]components.TextInput
	focus  int
	errMsg string
}

var _ screen.Screen = (*RangeInputScreen)(nil)
var _ screen.KeyHintProvider = (*RangeInputScreen)(nil)

// New creates a RangeInputScreen for fn, prefilled with last when it is a
// valid range.
func New(env *screen.Env, fn session.FunctionSpec, last session.Range) *RangeInputScreen {
	s := &RangeInputScreen{
		env: env,
		fn:  fn,
		inputs: [2]components.TextInput{
			components.NewTextInput("Starting Value", true, boundCharLimit),
			components.NewTextInput("Ending Value", true, boundCharLimit),
		},
	}
	s.inputs[1].Blur()
	if last.Valid() {
		s.inputs[0].SetValue(strconv.Itoa(last.Start))
		s.inputs[1].SetValue(strconv.Itoa(last.End))
	}
	return s
}

func (s *RangeInputScreen) Init() tea.Cmd {
	return s.inputs[s.focus].Focus()
}

func (s *RangeInputScreen) Title() string {
	return s.fn.Name
}

func (s *RangeInputScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Switch"},
		{Key: "Enter", Description: "Start"},
		{Key: "L", Description: "Learn"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *RangeInputScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "tab", "shift+tab", "up", "down":
			return s, s.switchFocus()
		case "enter":
			return s.commit(false)
		case "l", "L":
			return s.commit(true)
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
		s.errMsg = ""
	}

	var cmd tea.Cmd
	s.inputs[s.focus], cmd = s.inputs[s.focus].Update(msg)
	return s, cmd
}

func (s *RangeInputScreen) switchFocus() tea.Cmd {
	s.inputs[s.focus].Blur()
	s.focus = 1 - s.focus
	return s.inputs[s.focus].Focus()
}

// commit validates the range and opens the quiz, or the learn table first.
func (s *RangeInputScreen) commit(toLearn bool) (screen.Screen, tea.Cmd) {
	r, err := session.ParseRange(s.inputs[0].Value(), s.inputs[1].Value())
	if err != nil {
		s.errMsg = err.Error()
		if verr, ok := session.IsValidation(err); ok {
			s.errMsg = verr.Message()
		}
		return s, nil
	}
	s.errMsg = ""

	var next screen.Screen
	if toLearn {
		next = learn.New(s.env, s.fn, r)
	} else {
		next = quiz.New(s.env, s.fn, r)
	}
	return s, func() tea.Msg { return router.PushScreenMsg{Screen: next} }
}

func (s *RangeInputScreen) View(width, height int) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(layout.Centered("Select Range for "+s.fn.Name, width,
		lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)))
	b.WriteString("\n\n")

	labels := [2]string{"Starting Value:", "Ending Value:  "}
	var form strings.Builder
	for i := range s.inputs {
		style := lipgloss.NewStyle().Foreground(theme.TextDim)
		if i == s.focus {
			style = lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
		}
		form.WriteString(style.Render(labels[i]) + " " + s.inputs[i].View())
		form.WriteString("\n\n")
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, form.String()))

	if s.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(layout.Centered(s.errMsg, width, lipgloss.NewStyle().Foreground(theme.Error)))
		b.WriteString("\n")
		b.WriteString(layout.Centered(session.RangeHint, width, lipgloss.NewStyle().Foreground(theme.TextDim)))
	}
	return b.String()
}
