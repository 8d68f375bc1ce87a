package session

import "time"

// Phase is the lifecycle position of a session.
type Phase int

const (
	PhaseIdle     Phase = iota // No session started
	PhaseAwaiting              // Question displayed, answer pending
	PhaseResolved              // Answer checked, waiting for skip/advance
	PhaseEnded                 // Queue exhausted or exited
)

func (p Phase) String() string {
	switch p {
	case PhaseAwaiting:
		return "awaiting"
	case PhaseResolved:
		return "resolved"
	case PhaseEnded:
		return "ended"
	default:
		return "idle"
	}
}

// SessionState is the mutable state of one quiz attempt. It is owned by an
// Engine and only changed through Engine methods.
type SessionState struct {
	// ID is the UUID for this attempt.
	ID string

	Function FunctionSpec
	Range    Range

	// Queue is a permutation of Range.Values().
	Queue []int

	// CurrentIndex points into Queue; len(Queue) means exhausted.
	CurrentIndex int

	// Score counts correct submissions.
	Score int

	// Answered counts submissions (never skips).
	Answered int

	// AwaitingAnswer is true between a question being shown and its answer
	// being checked.
	AwaitingAnswer bool

	// Streak counts consecutive correct answers; BestStreak is its maximum.
	Streak     int
	BestStreak int

	StartTime time.Time
}

// NewSessionState creates the state for a freshly shuffled queue.
func NewSessionState(id string, fn FunctionSpec, r Range, queue []int, now time.Time) *SessionState {
	return &SessionState{
		ID:             id,
		Function:       fn,
		Range:          r,
		Queue:          queue,
		AwaitingAnswer: len(queue) > 0,
		StartTime:      now,
	}
}

// Phase derives the lifecycle phase from the counters.
func (s *SessionState) Phase() Phase {
	switch {
	case s.CurrentIndex >= len(s.Queue):
		return PhaseEnded
	case s.AwaitingAnswer:
		return PhaseAwaiting
	default:
		return PhaseResolved
	}
}

// Exhausted reports whether every queued value has been passed.
func (s *SessionState) Exhausted() bool {
	return s.CurrentIndex >= len(s.Queue)
}

// CurrentValue returns the value being asked. Callers must check Exhausted.
func (s *SessionState) CurrentValue() int {
	return s.Queue[s.CurrentIndex]
}

func (s *SessionState) question() Question {
	return Question{
		SessionID:    s.ID,
		Index:        s.CurrentIndex,
		Total:        len(s.Queue),
		Value:        s.CurrentValue(),
		FunctionName: s.Function.Name,
		Decimals:     s.Function.Decimals,
	}
}

func (s *SessionState) token() Token {
	return Token{SessionID: s.ID, Index: s.CurrentIndex}
}

// Snapshot is a read-only copy of SessionState.
type Snapshot struct {
	SessionID    string
	Function     FunctionSpec
	Range        Range
	Queue        []int
	CurrentIndex int
	Score        int
	Answered     int
	Streak       int
	Phase        Phase
}

func (s *SessionState) snapshot() Snapshot {
	queue := make([]int, len(s.Queue))
	copy(queue, s.Queue)
	return Snapshot{
		SessionID:    s.ID,
		Function:     s.Function,
		Range:        s.Range,
		Queue:        queue,
		CurrentIndex: s.CurrentIndex,
		Score:        s.Score,
		Answered:     s.Answered,
		Streak:       s.Streak,
		Phase:        s.Phase(),
	}
}
