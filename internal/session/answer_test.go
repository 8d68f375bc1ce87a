package session

import (
	"math"
	"testing"
)

func mustFunc(t *testing.T, id FunctionID) FunctionSpec {
	t.Helper()
	fn, err := LookupFunction(string(id))
	if err != nil {
		t.Fatalf("LookupFunction(%q): %v", id, err)
	}
	return fn
}

func TestExpected(t *testing.T) {
	tests := []struct {
		fn   FunctionID
		n    int
		want float64
	}{
		{FuncSquare, 3, 9},
		{FuncSquare, 12, 144},
		{FuncCube, 3, 27},
		{FuncCube, 10, 1000},
		{FuncSqrt, 2, 1.414},
		{FuncSqrt, 3, 1.732},
		{FuncSqrt, 16, 4},
		{FuncLn, 1, 0},
		{FuncLn, 2, 0.693},
		{FuncLn, 10, 2.303},
		{FuncLog10, 2, 0.301},
		{FuncLog10, 100, 2},
		{FuncInverse, 4, 0.25},
		{FuncInverse, 3, 0.3333},
		{FuncInverse, 7, 0.1429},
	}

	for _, tt := range tests {
		fn := mustFunc(t, tt.fn)
		got := Expected(fn, tt.n)
		if got != tt.want {
			t.Errorf("Expected(%s, %d) = %v, want %v", tt.fn, tt.n, got, tt.want)
		}
		if again := Expected(fn, tt.n); again != got {
			t.Errorf("Expected(%s, %d) not deterministic: %v then %v", tt.fn, tt.n, got, again)
		}
	}
}

func TestExpected_UndefinedOutsideDomain(t *testing.T) {
	tests := []struct {
		fn FunctionID
		n  int
	}{
		{FuncSqrt, -4},
		{FuncLn, 0},
		{FuncLn, -1},
		{FuncLog10, 0},
		{FuncInverse, 0},
	}
	for _, tt := range tests {
		got := Expected(mustFunc(t, tt.fn), tt.n)
		if !Undefined(got) {
			t.Errorf("Expected(%s, %d) = %v, want undefined", tt.fn, tt.n, got)
		}
	}
}

func TestRoundTo_HalfAwayFromZero(t *testing.T) {
	tests := []struct {
		v        float64
		decimals int
		want     float64
	}{
		{2.5, 0, 3},
		{-2.5, 0, -3},
		{0.125, 2, 0.13},
		{-0.125, 2, -0.13},
		{1.41421356, 3, 1.414},
		{9, 3, 9},
	}
	for _, tt := range tests {
		if got := RoundTo(tt.v, tt.decimals); got != tt.want {
			t.Errorf("RoundTo(%v, %d) = %v, want %v", tt.v, tt.decimals, got, tt.want)
		}
	}

	if got := RoundTo(math.Inf(1), 3); !math.IsInf(got, 1) {
		t.Errorf("RoundTo(+Inf) = %v, want +Inf", got)
	}
}

func TestRoundTo_DecimalPlaces(t *testing.T) {
	for _, fn := range Catalog() {
		m := math.Pow(10, float64(fn.Decimals))
		for n := 1; n <= 50; n++ {
			got := Expected(fn, n)
			scaled := got * m
			if math.Abs(scaled-math.Round(scaled)) > 1e-6 {
				t.Errorf("Expected(%s, %d) = %v has more than %d decimals", fn.ID, n, got, fn.Decimals)
			}
		}
	}
}

func TestCheck(t *testing.T) {
	tests := []struct {
		name     string
		expected float64
		input    string
		decimals int
		want     Result
	}{
		{"exact integer", 9, "9", 3, ResultCorrect},
		{"trailing zeros", 9, "9.000", 3, ResultCorrect},
		{"below precision", 9, "9.0001", 3, ResultCorrect},
		{"off by tenth", 9, "8.9", 3, ResultIncorrect},
		{"inverse exact", 0.25, "0.25", 4, ResultCorrect},
		{"inverse padded", 0.25, "0.2500", 4, ResultCorrect},
		{"inverse last digit", 0.25, "0.2501", 4, ResultIncorrect},
		{"leading whitespace", 1.414, "  1.414 ", 3, ResultCorrect},
		{"non-numeric", 9, "nine", 3, ResultIncorrect},
		{"nan literal", 9, "NaN", 3, ResultIncorrect},
		{"inf literal", 9, "Inf", 3, ResultIncorrect},
		{"undefined expected", math.NaN(), "0", 3, ResultUndefined},
		{"infinite expected", math.Inf(1), "Inf", 4, ResultUndefined},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Check(tt.expected, ParseAnswer(tt.input), tt.decimals)
			if got != tt.want {
				t.Errorf("Check(%v, %q, %d) = %v, want %v", tt.expected, tt.input, tt.decimals, got, tt.want)
			}
		})
	}
}

func TestCheck_ExpectedAnswerAlwaysCorrect(t *testing.T) {
	for _, fn := range Catalog() {
		for n := 1; n <= 200; n++ {
			exp := Expected(fn, n)
			if got := Check(exp, ParseAnswer(FormatAnswer(exp)), fn.Decimals); got != ResultCorrect {
				t.Errorf("%s(%d): submitting %q = %v, want correct", fn.ID, n, FormatAnswer(exp), got)
			}
			off := exp + 1/math.Pow(10, float64(fn.Decimals))
			if got := Check(exp, off, fn.Decimals); got != ResultIncorrect {
				t.Errorf("%s(%d): submitting %v = %v, want incorrect", fn.ID, n, off, got)
			}
		}
	}
}

func TestFormatAnswer(t *testing.T) {
	tests := []struct {
		v    float64
		want string
	}{
		{9, "9"},
		{0.25, "0.25"},
		{1.414, "1.414"},
		{0.1429, "0.1429"},
		{math.NaN(), "undefined"},
	}
	for _, tt := range tests {
		if got := FormatAnswer(tt.v); got != tt.want {
			t.Errorf("FormatAnswer(%v) = %q, want %q", tt.v, got, tt.want)
		}
	}
}

func TestAnswerTable(t *testing.T) {
	rows := AnswerTable(mustFunc(t, FuncSquare), Range{Start: 1, End: 3})
	want := []string{"1", "4", "9"}
	if len(rows) != len(want) {
		t.Fatalf("len(rows) = %d, want %d", len(rows), len(want))
	}
	for i, row := range rows {
		if row.Value != i+1 {
			t.Errorf("rows[%d].Value = %d, want %d", i, row.Value, i+1)
		}
		if row.Text != want[i] {
			t.Errorf("rows[%d].Text = %q, want %q", i, row.Text, want[i])
		}
		if row.Undefined {
			t.Errorf("rows[%d] unexpectedly undefined", i)
		}
	}
}
