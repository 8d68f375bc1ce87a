package session

import (
	"math"
	"math/rand/v2"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEngine(t *testing.T, seed uint64) (*Engine, *Recorder) {
	t.Helper()
	rec := &Recorder{}
	e := NewEngine(
		WithSink(rec),
		WithRand(rand.New(rand.NewPCG(seed, seed+1))),
	)
	return e, rec
}

func startSquare(t *testing.T, e *Engine, start, end int) Question {
	t.Helper()
	fn, err := LookupFunction(string(FuncSquare))
	require.NoError(t, err)
	q, err := e.Start(fn, Range{Start: start, End: end})
	require.NoError(t, err)
	return q
}

func correctAnswer(q Question) string {
	fn, _ := LookupFunction(q.FunctionName)
	return FormatAnswer(Expected(fn, q.Value))
}

func TestShuffle_IsPermutation(t *testing.T) {
	for seed := uint64(0); seed < 20; seed++ {
		r := Range{Start: 3, End: 3 + int(seed)*7 + 1}
		vals := r.Values()
		Shuffle(vals, rand.New(rand.NewPCG(seed, 99)))

		require.Len(t, vals, r.Len())
		sorted := slices.Clone(vals)
		slices.Sort(sorted)
		assert.Equal(t, r.Values(), sorted)
	}
}

func TestShuffle_Deterministic(t *testing.T) {
	a := Range{Start: 1, End: 30}.Values()
	b := Range{Start: 1, End: 30}.Values()
	Shuffle(a, rand.New(rand.NewPCG(7, 8)))
	Shuffle(b, rand.New(rand.NewPCG(7, 8)))
	assert.Equal(t, a, b)
}

func TestStart_BuildsShuffledQueue(t *testing.T) {
	e, rec := testEngine(t, 1)
	q := startSquare(t, e, 1, 5)

	snap, ok := e.Snapshot()
	require.True(t, ok)
	assert.Len(t, snap.Queue, 5)
	sorted := slices.Clone(snap.Queue)
	slices.Sort(sorted)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, sorted)

	assert.Equal(t, snap.Queue[0], q.Value)
	assert.Equal(t, 0, q.Index)
	assert.Equal(t, 5, q.Total)
	assert.Equal(t, "Square", q.FunctionName)
	assert.Equal(t, 3, q.Decimals)
	assert.Equal(t, PhaseAwaiting, snap.Phase)
	assert.Zero(t, snap.Score)
	assert.Zero(t, snap.Answered)

	require.Len(t, rec.Questions, 1)
	assert.Equal(t, q, rec.Questions[0])
}

func TestStart_InvalidRange(t *testing.T) {
	e, rec := testEngine(t, 1)
	fn, _ := LookupFunction("square")

	_, err := e.Start(fn, Range{Start: 5, End: 3})
	require.ErrorIs(t, err, ErrValidation)
	ve, ok := IsValidation(err)
	require.True(t, ok)
	assert.Equal(t, ReasonEndNotAfterStart, ve.Reason)

	assert.False(t, e.Active())
	assert.Empty(t, rec.Questions)

	_, err = e.Skip()
	assert.ErrorIs(t, err, ErrNoActiveSession)
	_, err = e.Submit("9")
	assert.ErrorIs(t, err, ErrNoActiveSession)
	_, err = e.End(true)
	assert.ErrorIs(t, err, ErrNoActiveSession)
}

func TestStart_RangeLimits(t *testing.T) {
	fn, _ := LookupFunction("square")

	t.Run("top of int", func(t *testing.T) {
		e, rec := testEngine(t, 1)
		q, err := e.Start(fn, Range{Start: math.MaxInt - 1, End: math.MaxInt})
		require.NoError(t, err)
		assert.Equal(t, 2, q.Total)
		assert.Contains(t, []int{math.MaxInt - 1, math.MaxInt}, q.Value)
		require.Len(t, rec.Questions, 1)
	})

	t.Run("whole int span rejected", func(t *testing.T) {
		e, rec := testEngine(t, 1)
		require.NotPanics(t, func() {
			_, err := e.Start(fn, Range{Start: 1, End: math.MaxInt})
			ve, ok := IsValidation(err)
			require.True(t, ok)
			assert.Equal(t, ReasonRangeTooLarge, ve.Reason)
		})
		assert.False(t, e.Active())
		assert.Empty(t, rec.Questions)
	})

	t.Run("largest allowed", func(t *testing.T) {
		e, _ := testEngine(t, 1)
		q, err := e.Start(fn, Range{Start: 1, End: MaxRangeLen})
		require.NoError(t, err)
		assert.Equal(t, MaxRangeLen, q.Total)
	})
}

func TestStart_UnknownFunction(t *testing.T) {
	e, _ := testEngine(t, 1)
	_, err := e.Start(FunctionSpec{ID: "tan"}, Range{Start: 1, End: 4})
	ve, ok := IsValidation(err)
	require.True(t, ok)
	assert.Equal(t, ReasonUnknownFunction, ve.Reason)
	assert.False(t, e.Active())
}

func TestStart_UsesCatalogTransform(t *testing.T) {
	e, _ := testEngine(t, 3)
	forged := FunctionSpec{ID: FuncSquare, Name: "Square", Decimals: 3, Transform: func(float64) float64 { return 0 }}
	q, err := e.Start(forged, Range{Start: 2, End: 3})
	require.NoError(t, err)

	out, err := e.Submit(FormatAnswer(float64(q.Value * q.Value)))
	require.NoError(t, err)
	assert.True(t, out.Correct)
}

func TestSubmit_Correct(t *testing.T) {
	e, rec := testEngine(t, 2)
	q := startSquare(t, e, 1, 5)

	out, err := e.Submit(correctAnswer(q))
	require.NoError(t, err)
	assert.Equal(t, ResultCorrect, out.Result)
	assert.True(t, out.Correct)
	assert.Equal(t, q.Value, out.Value)
	assert.Equal(t, 1, out.Score)
	assert.Equal(t, 1, out.Answered)
	assert.Equal(t, Token{SessionID: q.SessionID, Index: 0}, out.Token)

	snap, _ := e.Snapshot()
	assert.Equal(t, PhaseResolved, snap.Phase)
	require.Len(t, rec.Outcomes, 1)
}

func TestSubmit_SquareExamples(t *testing.T) {
	tests := []struct {
		input string
		want  Result
	}{
		{"9", ResultCorrect},
		{"9.0001", ResultCorrect},
		{"8.9", ResultIncorrect},
		{"banana", ResultIncorrect},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			e, _ := testEngine(t, 4)
			fn, _ := LookupFunction("square")
			// Walk the queue until 3 comes up.
			q, err := e.Start(fn, Range{Start: 3, End: 4})
			require.NoError(t, err)
			if q.Value != 3 {
				_, err = e.Skip()
				require.NoError(t, err)
			}
			out, err := e.Submit(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out.Result)
			assert.Equal(t, "9", out.ExpectedText)
		})
	}
}

func TestSubmit_Incorrect(t *testing.T) {
	e, _ := testEngine(t, 5)
	startSquare(t, e, 1, 5)

	out, err := e.Submit("-1")
	require.NoError(t, err)
	assert.Equal(t, ResultIncorrect, out.Result)
	assert.False(t, out.Correct)
	assert.Equal(t, 0, out.Score)
	assert.Equal(t, 1, out.Answered)
}

func TestSubmit_EmptyInputKeepsState(t *testing.T) {
	e, rec := testEngine(t, 6)
	q := startSquare(t, e, 1, 5)

	for _, raw := range []string{"", "   ", "\t\n"} {
		_, err := e.Submit(raw)
		assert.ErrorIs(t, err, ErrEmptyInput)
	}

	snap, _ := e.Snapshot()
	assert.Zero(t, snap.Answered)
	assert.Equal(t, PhaseAwaiting, snap.Phase)
	assert.Empty(t, rec.Outcomes)

	out, err := e.Submit(correctAnswer(q))
	require.NoError(t, err)
	assert.True(t, out.Correct)
}

func TestSubmit_DuplicateRejected(t *testing.T) {
	e, _ := testEngine(t, 7)
	q := startSquare(t, e, 1, 5)

	_, err := e.Submit("0")
	require.NoError(t, err)
	_, err = e.Submit(correctAnswer(q))
	assert.ErrorIs(t, err, ErrAlreadyResolved)

	snap, _ := e.Snapshot()
	assert.Equal(t, 1, snap.Answered)
	assert.Equal(t, 0, snap.Score)
}

func TestSkip_AdvancesWithoutCounting(t *testing.T) {
	e, rec := testEngine(t, 8)
	startSquare(t, e, 1, 5)

	step, err := e.Skip()
	require.NoError(t, err)
	require.NotNil(t, step.Question)
	assert.False(t, step.Done())
	assert.Equal(t, 1, step.Question.Index)

	snap, _ := e.Snapshot()
	assert.Equal(t, 1, snap.CurrentIndex)
	assert.Zero(t, snap.Answered)
	assert.Zero(t, snap.Score)
	assert.Equal(t, PhaseAwaiting, snap.Phase)
	assert.Len(t, rec.Questions, 2)
}

func TestSkip_ExhaustsQueue(t *testing.T) {
	e, rec := testEngine(t, 9)
	q := startSquare(t, e, 1, 2)

	_, err := e.Submit(correctAnswer(q))
	require.NoError(t, err)
	step, err := e.Skip()
	require.NoError(t, err)
	require.NotNil(t, step.Question)

	_, err = e.Submit("wrong")
	require.NoError(t, err)
	step, err = e.Skip()
	require.NoError(t, err)
	require.True(t, step.Done())

	sum := *step.Summary
	assert.Equal(t, 1, sum.Score)
	assert.Equal(t, 2, sum.Answered)
	assert.Equal(t, 2, sum.Total)
	assert.False(t, sum.Exited)
	assert.InDelta(t, 0.5, sum.Accuracy(), 1e-9)

	require.Len(t, rec.Summaries, 1)
	assert.Equal(t, sum.SessionID, rec.Summaries[0].SessionID)
	assert.Equal(t, sum.Score, rec.Summaries[0].Score)
	assert.False(t, e.Active())

	_, err = e.Skip()
	assert.ErrorIs(t, err, ErrNoActiveSession)
}

func TestEnd_ExitMidQuestion(t *testing.T) {
	e, _ := testEngine(t, 10)
	q := startSquare(t, e, 1, 5)

	_, err := e.Submit(correctAnswer(q))
	require.NoError(t, err)
	_, err = e.Skip()
	require.NoError(t, err)

	sum, err := e.End(true)
	require.NoError(t, err)
	assert.True(t, sum.Exited)
	assert.Equal(t, 1, sum.Answered)
	assert.Equal(t, 1, sum.Score)
	assert.False(t, e.Active())
}

func TestEnd_ExitAfterSkippingUnanswered(t *testing.T) {
	e, _ := testEngine(t, 11)
	startSquare(t, e, 1, 5)

	for i := 0; i < 3; i++ {
		_, err := e.Skip()
		require.NoError(t, err)
	}
	sum, err := e.End(true)
	require.NoError(t, err)
	assert.Equal(t, 3, sum.Answered)
	assert.Equal(t, 0, sum.Score)
}

func TestEnd_ExitAfterResolvedKeepsScoreBounded(t *testing.T) {
	e, _ := testEngine(t, 12)
	q := startSquare(t, e, 1, 5)

	_, err := e.Submit(correctAnswer(q))
	require.NoError(t, err)

	sum, err := e.End(true)
	require.NoError(t, err)
	assert.Equal(t, 1, sum.Score)
	assert.Equal(t, 1, sum.Answered)
}

func TestEnd_NotExitedKeepsCount(t *testing.T) {
	e, _ := testEngine(t, 13)
	startSquare(t, e, 1, 5)
	_, err := e.Skip()
	require.NoError(t, err)

	sum, err := e.End(false)
	require.NoError(t, err)
	assert.Zero(t, sum.Answered)
	assert.False(t, sum.Exited)
}

func TestEnd_Duration(t *testing.T) {
	now := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	e := NewEngine(WithClock(func() time.Time { return now }))
	startSquare(t, e, 1, 3)
	now = now.Add(90 * time.Second)

	sum, err := e.End(true)
	require.NoError(t, err)
	assert.Equal(t, 90*time.Second, sum.Duration)
}

func TestAdvance_Token(t *testing.T) {
	e, _ := testEngine(t, 14)
	q := startSquare(t, e, 1, 5)

	_, err := e.Advance(e.Token())
	assert.ErrorIs(t, err, ErrStaleToken, "advance while awaiting")

	out, err := e.Submit(correctAnswer(q))
	require.NoError(t, err)

	step, err := e.Advance(out.Token)
	require.NoError(t, err)
	require.NotNil(t, step.Question)
	assert.Equal(t, 1, step.Question.Index)

	_, err = e.Advance(out.Token)
	assert.ErrorIs(t, err, ErrStaleToken, "second advance with same token")
}

func TestAdvance_StaleAfterManualSkip(t *testing.T) {
	e, _ := testEngine(t, 15)
	q := startSquare(t, e, 1, 5)
	out, err := e.Submit(correctAnswer(q))
	require.NoError(t, err)

	_, err = e.Skip()
	require.NoError(t, err)
	_, err = e.Submit("0")
	require.NoError(t, err)

	_, err = e.Advance(out.Token)
	assert.ErrorIs(t, err, ErrStaleToken)
	snap, _ := e.Snapshot()
	assert.Equal(t, 1, snap.CurrentIndex)
}

func TestAdvance_StaleAfterRestart(t *testing.T) {
	e, _ := testEngine(t, 16)
	q := startSquare(t, e, 1, 5)
	out, err := e.Submit(correctAnswer(q))
	require.NoError(t, err)

	_, err = e.End(true)
	require.NoError(t, err)
	_, err = e.Advance(out.Token)
	assert.ErrorIs(t, err, ErrStaleToken)

	q2 := startSquare(t, e, 1, 5)
	_, err = e.Submit(correctAnswer(q2))
	require.NoError(t, err)
	_, err = e.Advance(out.Token)
	assert.ErrorIs(t, err, ErrStaleToken)

	snap, _ := e.Snapshot()
	assert.Equal(t, 0, snap.CurrentIndex)
	assert.NotEqual(t, q.SessionID, snap.SessionID)
}

func TestEngines_Independent(t *testing.T) {
	a, _ := testEngine(t, 17)
	b, _ := testEngine(t, 18)
	qa := startSquare(t, a, 1, 5)
	startSquare(t, b, 10, 20)

	_, err := a.Submit(correctAnswer(qa))
	require.NoError(t, err)

	sa, _ := a.Snapshot()
	sb, _ := b.Snapshot()
	assert.Equal(t, 1, sa.Score)
	assert.Zero(t, sb.Score)
	assert.Len(t, sb.Queue, 11)
}

func TestInvariants_RandomWalk(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 43))
	for run := 0; run < 50; run++ {
		e, _ := testEngine(t, uint64(run))
		fn := Catalog()[run%len(Catalog())]
		start := 1 + rng.IntN(20)
		q, err := e.Start(fn, Range{Start: start, End: start + 1 + rng.IntN(15)})
		require.NoError(t, err)
		total := q.Total

		answered := 0
		for e.Active() {
			snap, _ := e.Snapshot()
			switch rng.IntN(5) {
			case 0, 1:
				if snap.Phase == PhaseAwaiting {
					answered++
				}
				_, _ = e.Submit(FormatAnswer(Expected(fn, snap.Queue[snap.CurrentIndex])))
			case 2:
				if snap.Phase == PhaseAwaiting {
					answered++
				}
				_, _ = e.Submit("x")
			case 3:
				_, _ = e.Submit("")
			default:
				_, err := e.Skip()
				require.NoError(t, err)
			}

			if snap, ok := e.Snapshot(); ok {
				assert.LessOrEqual(t, snap.Score, snap.Answered)
				assert.Equal(t, answered, snap.Answered)
				assert.LessOrEqual(t, snap.Answered, total)
				assert.LessOrEqual(t, snap.CurrentIndex, total)
				assert.GreaterOrEqual(t, snap.CurrentIndex, 0)
			}
		}
	}
}
