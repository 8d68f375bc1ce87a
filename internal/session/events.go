package session

import "time"

// AutoAdvanceDelay is how long a correct answer stays on screen before the
// next question.
const AutoAdvanceDelay = 500 * time.Millisecond

// Question is emitted whenever a new value is ready to be asked.
type Question struct {
	SessionID    string
	Index        int // zero-based position in the queue
	Total        int
	Value        int
	FunctionName string
	Decimals     int
}

// Token identifies a resolved question. Advance only accepts the token of
// the live session's current question, so a timer that fires after the
// learner skipped, exited, or restarted does nothing.
type Token struct {
	SessionID string
	Index     int
}

// Outcome is emitted when a submission is checked.
type Outcome struct {
	Result       Result
	Correct      bool
	Value        int
	Expected     float64
	ExpectedText string
	Input        string
	Score        int
	Answered     int
	Streak       int
	Token        Token
}

// Step is the result of moving past a question: either the next question or
// the final summary.
type Step struct {
	Question *Question
	Summary  *Summary
}

// Done reports whether the step ended the session.
func (s Step) Done() bool {
	return s.Summary != nil
}

// Sink receives engine events. Implementations must not call back into the
// engine synchronously.
type Sink interface {
	QuestionReady(q Question)
	AnswerResolved(o Outcome)
	SessionEnded(s Summary)
}

// SinkFuncs adapts plain functions to Sink. Nil fields are skipped.
type SinkFuncs struct {
	OnQuestion func(Question)
	OnOutcome  func(Outcome)
	OnEnd      func(Summary)
}

func (f SinkFuncs) QuestionReady(q Question) {
	if f.OnQuestion != nil {
		f.OnQuestion(q)
	}
}

func (f SinkFuncs) AnswerResolved(o Outcome) {
	if f.OnOutcome != nil {
		f.OnOutcome(o)
	}
}

func (f SinkFuncs) SessionEnded(s Summary) {
	if f.OnEnd != nil {
		f.OnEnd(s)
	}
}

// Recorder is a Sink that keeps every event in order.
type Recorder struct {
	Questions []Question
	Outcomes  []Outcome
	Summaries []Summary
}

func (r *Recorder) QuestionReady(q Question) { r.Questions = append(r.Questions, q) }
func (r *Recorder) AnswerResolved(o Outcome) { r.Outcomes = append(r.Outcomes, o) }
func (r *Recorder) SessionEnded(s Summary)   { r.Summaries = append(r.Summaries, s) }

// LastQuestion returns the most recent question, if any.
func (r *Recorder) LastQuestion() (Question, bool) {
	if len(r.Questions) == 0 {
		return Question{}, false
	}
	return r.Questions[len(r.Questions)-1], true
}
