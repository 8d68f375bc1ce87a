package session

import (
	"math"
	"strconv"
	"strings"
)

// Result classifies a submitted answer.
type Result int

const (
	ResultIncorrect Result = iota
	ResultCorrect
	// ResultUndefined means the function has no finite value for the
	// question. Such answers are counted but never scored.
	ResultUndefined
)

func (r Result) String() string {
	switch r {
	case ResultCorrect:
		return "correct"
	case ResultUndefined:
		return "undefined"
	default:
		return "incorrect"
	}
}

// RoundTo rounds v to decimals places, half away from zero.
// Non-finite values are returned unchanged.
func RoundTo(v float64, decimals int) float64 {
	if Undefined(v) {
		return v
	}
	m := math.Pow(10, float64(decimals))
	return math.Round(v*m) / m
}

// Undefined reports whether v is NaN or infinite.
func Undefined(v float64) bool {
	return math.IsNaN(v) || math.IsInf(v, 0)
}

// Expected applies fn to n and rounds to fn.Decimals.
func Expected(fn FunctionSpec, n int) float64 {
	return RoundTo(fn.Transform(float64(n)), fn.Decimals)
}

// FormatAnswer renders v in its shortest decimal form ("9", "0.25", "1.414").
func FormatAnswer(v float64) string {
	if Undefined(v) {
		return "undefined"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ParseAnswer converts trimmed user input to a number. Anything that is not
// a finite decimal number yields NaN, which never matches.
func ParseAnswer(raw string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || Undefined(v) {
		return math.NaN()
	}
	return v
}

// Check compares user against expected at the given precision by scaling
// both by 10^decimals and comparing the rounded integers.
func Check(expected, user float64, decimals int) Result {
	if Undefined(expected) {
		return ResultUndefined
	}
	if Undefined(user) {
		return ResultIncorrect
	}
	m := math.Pow(10, float64(decimals))
	if math.Round(expected*m) == math.Round(user*m) {
		return ResultCorrect
	}
	return ResultIncorrect
}
