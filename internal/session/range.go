package session

import (
	"strconv"
	"strings"
)

// MinStart is the smallest allowed starting value.
const MinStart = 1

// MaxRangeLen is the largest number of values a range may hold.
const MaxRangeLen = 10000

// Range is an inclusive span of integers to drill. Construct it with
// NewRange or ParseRange so Start >= MinStart, End > Start and
// Len() <= MaxRangeLen hold.
type Range struct {
	Start int
	End   int
}

// NewRange validates start and end.
func NewRange(start, end int) (Range, error) {
	if start < MinStart {
		return Range{}, &ValidationError{Reason: ReasonStartBelowMinimum, Field: "start", Value: strconv.Itoa(start)}
	}
	if end <= start {
		return Range{}, &ValidationError{Reason: ReasonEndNotAfterStart, Field: "end", Value: strconv.Itoa(end)}
	}
	if end-start >= MaxRangeLen {
		return Range{}, &ValidationError{Reason: ReasonRangeTooLarge, Field: "end", Value: strconv.Itoa(end)}
	}
	return Range{Start: start, End: end}, nil
}

// ParseRange parses and validates user-entered bounds.
func ParseRange(startText, endText string) (Range, error) {
	start, err := parseBound("start", startText)
	if err != nil {
		return Range{}, err
	}
	end, err := parseBound("end", endText)
	if err != nil {
		return Range{}, err
	}
	return NewRange(start, end)
}

func parseBound(field, text string) (int, error) {
	text = strings.TrimSpace(text)
	n, err := strconv.Atoi(text)
	if err != nil {
		return 0, &ValidationError{Reason: ReasonNonNumeric, Field: field, Value: text}
	}
	return n, nil
}

// Valid reports whether r satisfies the range invariant.
func (r Range) Valid() bool {
	return r.Start >= MinStart && r.End > r.Start && r.End-r.Start < MaxRangeLen
}

// Len returns the number of values in a valid range, and 0 otherwise.
func (r Range) Len() int {
	if !r.Valid() {
		return 0
	}
	return r.End - r.Start + 1
}

// Values returns the range in ascending order. It is empty for an invalid
// range.
func (r Range) Values() []int {
	n := r.Len()
	vals := make([]int, 0, n)
	for i := 0; i < n; i++ {
		vals = append(vals, r.Start+i)
	}
	return vals
}

func (r Range) String() string {
	return strconv.Itoa(r.Start) + "-" + strconv.Itoa(r.End)
}
