package screen

import (
	"log/slog"
	"math/rand/v2"

	"github.com/abhisek/funcdrill/internal/session"
)

// Env carries the dependencies screens share across one program run.
type Env struct {
	Logger *slog.Logger
	// Rand seeds quiz shuffles. Nil uses the global source.
	Rand *rand.Rand
	// OnSelect is called when the learner commits to a function and range.
	OnSelect func(fn session.FunctionSpec, r session.Range)
}

// Log returns the configured logger, or a discarding one.
func (e *Env) Log() *slog.Logger {
	if e == nil || e.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return e.Logger
}

// Remember reports a committed selection to OnSelect, if set.
func (e *Env) Remember(fn session.FunctionSpec, r session.Range) {
	if e == nil || e.OnSelect == nil {
		return
	}
	e.OnSelect(fn, r)
}

// EngineOptions returns the session options derived from the environment.
func (e *Env) EngineOptions() []session.Option {
	if e == nil {
		return nil
	}
	opts := []session.Option{session.WithLogger(e.Log())}
	if e.Rand != nil {
		opts = append(opts, session.WithRand(e.Rand))
	}
	return opts
}
