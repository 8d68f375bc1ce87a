package session

import (
	"fmt"
	"math"
	"strings"
)

// FunctionID names a drillable function.
type FunctionID string

const (
	FuncSquare  FunctionID = "square"
	FuncCube    FunctionID = "cube"
	FuncSqrt    FunctionID = "sqrt"
	FuncLn      FunctionID = "ln"
	FuncLog10   FunctionID = "log10"
	FuncInverse FunctionID = "inverse"
)

// FunctionSpec describes one selectable function. Entries are fixed at
// compile time and never mutated.
type FunctionSpec struct {
	ID        FunctionID
	Key       string // menu hotkey
	Name      string
	Transform func(float64) float64
	Decimals  int
}

var catalog = []FunctionSpec{
	{ID: FuncSquare, Key: "1", Name: "Square", Transform: func(x float64) float64 { return x * x }, Decimals: 3},
	{ID: FuncCube, Key: "2", Name: "Cube", Transform: func(x float64) float64 { return x * x * x }, Decimals: 3},
	{ID: FuncSqrt, Key: "3", Name: "Square Root", Transform: math.Sqrt, Decimals: 3},
	{ID: FuncLn, Key: "4", Name: "Log Base e (ln)", Transform: math.Log, Decimals: 3},
	{ID: FuncLog10, Key: "5", Name: "Log Base 10", Transform: math.Log10, Decimals: 3},
	{ID: FuncInverse, Key: "6", Name: "Inverse", Transform: func(x float64) float64 { return 1 / x }, Decimals: 4},
}

// Catalog returns the selectable functions in menu order.
func Catalog() []FunctionSpec {
	out := make([]FunctionSpec, len(catalog))
	copy(out, catalog)
	return out
}

// LookupFunction resolves a function by ID, menu key, or display name
// (case-insensitive).
func LookupFunction(s string) (FunctionSpec, error) {
	s = strings.TrimSpace(s)
	for _, fn := range catalog {
		if string(fn.ID) == strings.ToLower(s) || fn.Key == s || strings.EqualFold(fn.Name, s) {
			return fn, nil
		}
	}
	return FunctionSpec{}, &ValidationError{Reason: ReasonUnknownFunction, Field: "function", Value: s}
}

// canonical returns the catalog entry with fn's ID. Callers may hold a copy
// of a FunctionSpec, but only catalog transforms are ever applied.
func canonical(fn FunctionSpec) (FunctionSpec, bool) {
	for _, c := range catalog {
		if c.ID == fn.ID {
			return c, true
		}
	}
	return FunctionSpec{}, false
}

// Placeholder returns the answer prompt for the function, e.g.
// "Answer (to 3 decimal places)".
func (fn FunctionSpec) Placeholder() string {
	unit := "places"
	if fn.Decimals == 1 {
		unit = "place"
	}
	return fmt.Sprintf("Answer (to %d decimal %s)", fn.Decimals, unit)
}
