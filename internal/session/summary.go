package session

import "time"

// Summary is the final report of a session.
type Summary struct {
	SessionID  string
	Function   FunctionSpec
	Range      Range
	Score      int
	Answered   int
	Total      int
	BestStreak int
	Exited     bool
	Duration   time.Duration
}

// Accuracy returns Score/Answered, or 0 when nothing was answered.
func (s Summary) Accuracy() float64 {
	if s.Answered == 0 {
		return 0
	}
	return float64(s.Score) / float64(s.Answered)
}

// buildSummary snapshots the counters at session end.
func buildSummary(state *SessionState, exited bool, now time.Time) Summary {
	return Summary{
		SessionID:  state.ID,
		Function:   state.Function,
		Range:      state.Range,
		Score:      state.Score,
		Answered:   state.Answered,
		Total:      len(state.Queue),
		BestStreak: state.BestStreak,
		Exited:     exited,
		Duration:   now.Sub(state.StartTime),
	}
}
