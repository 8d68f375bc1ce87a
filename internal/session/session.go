package session

import (
	"log/slog"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Engine runs one quiz session at a time. It is not safe for concurrent
// use; callers drive it from a single event loop.
type Engine struct {
	state  *SessionState
	sink   Sink
	rng    *rand.Rand
	now    func() time.Time
	logger *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithSink sets the event receiver.
func WithSink(s Sink) Option {
	return func(e *Engine) { e.sink = s }
}

// WithRand sets the shuffle source. Tests pass a seeded source.
func WithRand(r *rand.Rand) Option {
	return func(e *Engine) { e.rng = r }
}

// WithClock overrides time.Now for durations.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// NewEngine creates an idle engine.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		sink:   SinkFuncs{},
		now:    time.Now,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Active reports whether a session is in progress.
func (e *Engine) Active() bool {
	return e.state != nil
}

// Snapshot returns a copy of the live session state.
func (e *Engine) Snapshot() (Snapshot, bool) {
	if e.state == nil {
		return Snapshot{}, false
	}
	return e.state.snapshot(), true
}

// Token returns the advance token for the current question.
func (e *Engine) Token() Token {
	if e.state == nil {
		return Token{}
	}
	return e.state.token()
}

// Start validates fn and r, shuffles the range, and asks the first question.
// Any session already running is discarded.
func (e *Engine) Start(fn FunctionSpec, r Range) (Question, error) {
	c, ok := canonical(fn)
	if !ok {
		return Question{}, &ValidationError{Reason: ReasonUnknownFunction, Field: "function", Value: string(fn.ID)}
	}
	if _, err := NewRange(r.Start, r.End); err != nil {
		return Question{}, err
	}

	queue := r.Values()
	Shuffle(queue, e.rng)

	e.state = NewSessionState(uuid.NewString(), c, r, queue, e.now())
	e.logger.Info("session started",
		"session_id", e.state.ID,
		"function", string(c.ID),
		"range", r.String(),
		"questions", len(queue),
	)

	if e.state.Exhausted() {
		e.finish(false)
		return Question{}, nil
	}

	q := e.state.question()
	e.sink.QuestionReady(q)
	return q, nil
}

// Submit checks raw against the current question. Empty input is rejected
// without touching any counter. Non-numeric input is scored as incorrect.
func (e *Engine) Submit(raw string) (Outcome, error) {
	st := e.state
	if st == nil {
		return Outcome{}, ErrNoActiveSession
	}
	if !st.AwaitingAnswer {
		return Outcome{}, ErrAlreadyResolved
	}
	input := strings.TrimSpace(raw)
	if input == "" {
		return Outcome{}, ErrEmptyInput
	}

	value := st.CurrentValue()
	expected := Expected(st.Function, value)
	result := Check(expected, ParseAnswer(input), st.Function.Decimals)

	st.Answered++
	st.recordStreak(result == ResultCorrect)
	if result == ResultCorrect {
		st.Score++
	}
	st.AwaitingAnswer = false

	out := Outcome{
		Result:       result,
		Correct:      result == ResultCorrect,
		Value:        value,
		Expected:     expected,
		ExpectedText: FormatAnswer(expected),
		Input:        input,
		Score:        st.Score,
		Answered:     st.Answered,
		Streak:       st.Streak,
		Token:        st.token(),
	}
	e.logger.Debug("answer checked",
		"session_id", st.ID,
		"value", value,
		"input", input,
		"expected", out.ExpectedText,
		"result", result.String(),
	)
	e.sink.AnswerResolved(out)
	return out, nil
}

// Skip moves past the current question. A pending question is passed over
// without scoring and without counting as answered, and breaks the streak.
func (e *Engine) Skip() (Step, error) {
	if e.state == nil {
		return Step{}, ErrNoActiveSession
	}
	if e.state.AwaitingAnswer {
		e.state.Streak = 0
	}
	return e.advance(), nil
}

// Advance moves on only if t still names the live session's current,
// already-resolved question. It backs the timed advance after a correct
// answer.
func (e *Engine) Advance(t Token) (Step, error) {
	st := e.state
	if st == nil || st.AwaitingAnswer || st.token() != t {
		return Step{}, ErrStaleToken
	}
	return e.advance(), nil
}

// End finishes the session. With exited set, the answered count becomes the
// number of questions passed, plus the current one only if it was already
// checked. Unlike a plain current-index count, this keeps Score <= Answered
// when the current question was already scored.
func (e *Engine) End(exited bool) (Summary, error) {
	st := e.state
	if st == nil {
		return Summary{}, ErrNoActiveSession
	}
	if exited {
		answered := st.CurrentIndex
		if !st.Exhausted() && !st.AwaitingAnswer {
			answered++
		}
		st.Answered = answered
	}
	return e.finish(exited), nil
}

func (e *Engine) advance() Step {
	st := e.state
	st.CurrentIndex++
	if st.Exhausted() {
		sum := e.finish(false)
		return Step{Summary: &sum}
	}
	st.AwaitingAnswer = true
	q := st.question()
	e.sink.QuestionReady(q)
	return Step{Question: &q}
}

func (e *Engine) finish(exited bool) Summary {
	sum := buildSummary(e.state, exited, e.now())
	e.state = nil
	e.logger.Info("session ended",
		"session_id", sum.SessionID,
		"score", sum.Score,
		"answered", sum.Answered,
		"total", sum.Total,
		"exited", exited,
	)
	e.sink.SessionEnded(sum)
	return sum
}

// Shuffle permutes vals in place with Fisher-Yates. A nil rng uses the
// global source.
func Shuffle(vals []int, rng *rand.Rand) {
	intN := rand.IntN
	if rng != nil {
		intN = rng.IntN
	}
	for i := len(vals) - 1; i > 0; i-- {
		j := intN(i + 1)
		vals[i], vals[j] = vals[j], vals[i]
	}
}
