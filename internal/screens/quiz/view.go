package quiz

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/funcdrill/internal/session"
	"github.com/abhisek/funcdrill/internal/ui/components"
	"github.com/abhisek/funcdrill/internal/ui/layout"
	"github.com/abhisek/funcdrill/internal/ui/theme"
)

func (s *QuizScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.Error).Render(s.errMsg))
	}
	q := s.question
	if q == nil {
		return ""
	}

	var b strings.Builder

	infoLeft := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render("  " + s.fn.Name)
	infoRight := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("Q %d/%d", q.Index+1, q.Total))

	infoLine := infoLeft
	if pad := width - lipgloss.Width(infoLeft) - lipgloss.Width(infoRight) - 4; pad > 0 {
		infoLine += strings.Repeat(" ", pad) + infoRight
	}
	b.WriteString(infoLine)
	b.WriteString("\n  ")
	b.WriteString(components.NewProgressBar(q.Index, q.Total, width-6).View())
	b.WriteString("\n\n\n")

	b.WriteString(layout.Centered(fmt.Sprintf("%s ( %d ) = ?", q.FunctionName, q.Value), width,
		lipgloss.NewStyle().Foreground(theme.Text).Bold(true)))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.input.View()))
	b.WriteString("\n\n")

	b.WriteString(s.renderFeedback(width))
	return b.String()
}

// renderFeedback shows the notice or the verdict for the current question.
func (s *QuizScreen) renderFeedback(width int) string {
	if s.notice != "" {
		return layout.Centered(s.notice, width, lipgloss.NewStyle().Foreground(theme.Accent))
	}
	out := s.outcome
	if out == nil {
		return ""
	}
	switch out.Result {
	case session.ResultCorrect:
		msg := "✓ Correct!"
		if session.StreakMilestone(out.Streak) {
			msg += fmt.Sprintf("  %d in a row!", out.Streak)
		}
		return layout.Centered(msg, width, theme.Correct)
	case session.ResultUndefined:
		return layout.Centered(
			fmt.Sprintf("✗ %s is undefined at %d.", s.fn.Name, out.Value), width, theme.Incorrect)
	default:
		return layout.Centered(
			fmt.Sprintf("✗ The correct answer is %s.", out.ExpectedText), width, theme.Incorrect)
	}
}
