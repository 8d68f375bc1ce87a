package results

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/funcdrill/internal/router"
	"github.com/abhisek/funcdrill/internal/screen"
	"github.com/abhisek/funcdrill/internal/session"
	"github.com/abhisek/funcdrill/internal/ui/layout"
	"github.com/abhisek/funcdrill/internal/ui/theme"
)

// ResultsScreen displays the final score of a quiz.
type ResultsScreen struct {
	summary session.Summary
	replay  func() screen.Screen
}

var _ screen.Screen = (*ResultsScreen)(nil)
var _ screen.KeyHintProvider = (*ResultsScreen)(nil)

// New creates a ResultsScreen. replay, if non-nil, builds a fresh quiz over
// the same function and range.
func New(summary session.Summary, replay func() screen.Screen) *ResultsScreen {
	return &ResultsScreen{summary: summary, replay: replay}
}

func (s *ResultsScreen) Init() tea.Cmd {
	return nil
}

func (s *ResultsScreen) Title() string {
	return "Results"
}

func (s *ResultsScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{{Key: "Enter", Description: "Play again"}}
	if s.replay != nil {
		hints = append(hints, layout.KeyHint{Key: "R", Description: "Same range"})
	}
	return append(hints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
}

func (s *ResultsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	switch kmsg.String() {
	case "enter", "esc":
		return s, func() tea.Msg { return router.PopToRootMsg{} }
	case "r", "R":
		if s.replay != nil {
			next := s.replay()
			return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
		}
	}
	return s, nil
}

func (s *ResultsScreen) View(width, height int) string {
	sum := s.summary

	heading := "Quiz complete!"
	if sum.Exited {
		heading = "Quiz ended"
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(layout.Centered(heading, width,
		lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)))
	b.WriteString("\n\n")

	b.WriteString(layout.Centered(
		fmt.Sprintf("%s over %s", sum.Function.Name, sum.Range), width,
		lipgloss.NewStyle().Foreground(theme.TextDim)))
	b.WriteString("\n\n")

	score := fmt.Sprintf("Your Score: %d / %d", sum.Score, sum.Answered)
	b.WriteString(layout.Centered(score, width,
		lipgloss.NewStyle().Foreground(theme.Text).Bold(true)))
	b.WriteString("\n\n")

	mins := int(sum.Duration.Minutes())
	secs := int(sum.Duration.Seconds()) % 60
	stats := fmt.Sprintf("Accuracy: %.0f%%      Questions: %d of %d      Best streak: %d      Time: %d:%02d",
		sum.Accuracy()*100, sum.Answered, sum.Total, sum.BestStreak, mins, secs)
	b.WriteString(layout.Centered(stats, width,
		lipgloss.NewStyle().Foreground(theme.TextDim)))

	return b.String()
}
