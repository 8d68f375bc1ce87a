package quiz

import (
	"errors"
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/funcdrill/internal/router"
	"github.com/abhisek/funcdrill/internal/screen"
	"github.com/abhisek/funcdrill/internal/screens/results"
	"github.com/abhisek/funcdrill/internal/session"
	"github.com/abhisek/funcdrill/internal/ui/components"
	"github.com/abhisek/funcdrill/internal/ui/layout"
)

const emptyAnswerNotice = "Please enter an answer."

// QuizScreen drives one session.Engine from key presses and renders its
// events.
type QuizScreen struct {
	env      *screen.Env
	engine   *session.Engine
	fn       session.FunctionSpec
	rng      session.Range
	question *session.Question
	outcome  *session.Outcome
	input    components.TextInput
	notice   string
	errMsg   string
	score    int
	answered int
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)
var _ screen.StatusProvider = (*QuizScreen)(nil)

// New creates a QuizScreen. The session starts when the screen is pushed.
func New(env *screen.Env, fn session.FunctionSpec, r session.Range) *QuizScreen {
	return &QuizScreen{
		env:    env,
		engine: session.NewEngine(env.EngineOptions()...),
		fn:     fn,
		rng:    r,
		input:  components.NewTextInput(fn.Placeholder(), false, 24),
	}
}

func (s *QuizScreen) Init() tea.Cmd {
	q, err := s.engine.Start(s.fn, s.rng)
	if err != nil {
		s.errMsg = err.Error()
		if verr, ok := session.IsValidation(err); ok {
			s.errMsg = verr.Message()
		}
		return nil
	}
	s.env.Remember(s.fn, s.rng)
	s.question = &q
	return s.input.Init()
}

func (s *QuizScreen) Title() string {
	return "Mode: " + s.fn.Name
}

// Status shows the running score as "score / answered".
func (s *QuizScreen) Status() string {
	return fmt.Sprintf("Score: %d / %d  ", s.score, s.answered)
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	if s.errMsg != "" {
		return []layout.KeyHint{{Key: "any key", Description: "Back"}}
	}
	if s.outcome != nil {
		return []layout.KeyHint{
			{Key: "Enter/S", Description: "Next"},
			{Key: "Esc", Description: "Exit"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Submit"},
		{Key: "Tab", Description: "Skip"},
		{Key: "Esc", Description: "Exit"},
	}
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case advanceMsg:
		step, err := s.engine.Advance(msg.Token)
		if errors.Is(err, session.ErrStaleToken) {
			return s, nil
		}
		return s.applyStep(step, err)

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.outcome == nil && s.question != nil {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *QuizScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if s.errMsg != "" {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	if s.question == nil {
		return s, nil
	}

	switch msg.String() {
	case "esc":
		return s.exit()
	case "tab":
		return s.skip()
	case "enter":
		if s.outcome != nil {
			return s.skip()
		}
		return s.submit()
	case "s", "S":
		if s.outcome != nil {
			return s.skip()
		}
	}

	if s.outcome != nil {
		return s, nil
	}
	s.notice = ""
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *QuizScreen) submit() (screen.Screen, tea.Cmd) {
	out, err := s.engine.Submit(s.input.Value())
	switch {
	case errors.Is(err, session.ErrEmptyInput):
		s.notice = emptyAnswerNotice
		return s, nil
	case err != nil:
		s.env.Log().Warn("submit rejected", "err", err)
		return s, nil
	}

	s.outcome = &out
	s.score = out.Score
	s.answered = out.Answered
	s.notice = ""
	s.input.Submit(out.Correct)

	if out.Correct {
		token := out.Token
		return s, tea.Tick(session.AutoAdvanceDelay, func(time.Time) tea.Msg {
			return advanceMsg{Token: token}
		})
	}
	return s, nil
}

func (s *QuizScreen) skip() (screen.Screen, tea.Cmd) {
	step, err := s.engine.Skip()
	return s.applyStep(step, err)
}

func (s *QuizScreen) exit() (screen.Screen, tea.Cmd) {
	sum, err := s.engine.End(true)
	if err != nil {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	return s, s.showResults(sum)
}

func (s *QuizScreen) applyStep(step session.Step, err error) (screen.Screen, tea.Cmd) {
	if err != nil {
		s.env.Log().Warn("advance failed", "err", err)
		return s, nil
	}
	if step.Done() {
		return s, s.showResults(*step.Summary)
	}
	s.question = step.Question
	s.outcome = nil
	s.notice = ""
	return s, s.input.Reset(s.fn.Placeholder())
}

func (s *QuizScreen) showResults(sum session.Summary) tea.Cmd {
	s.question = nil
	s.outcome = nil
	env, fn, r := s.env, s.fn, s.rng
	next := results.New(sum, func() screen.Screen { return New(env, fn, r) })
	return func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
}
