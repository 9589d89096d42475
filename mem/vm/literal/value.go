// Package literal parses the small subset of object and array literals that
// users type as page tables and address lists. It never evaluates code.
package literal

import (
	"math"
	"strconv"
	"strings"
)

// A Value is a parsed literal. It is one of Number, String, Bool, Null,
// Array, or Object.
type Value interface {
	// String formats the value the way it appeared in the source.
	String() string

	value()
}

// Number is a numeric literal. Text keeps the source spelling, including the
// sign.
type Number struct {
	Text string
}

func (n Number) String() string { return n.Text }

func (Number) value() {}

// Float returns the value of the number.
func (n Number) Float() float64 {
	// Out-of-range numbers come back as +/-Inf.
	f, _ := strconv.ParseFloat(n.Text, 64)
	return f
}

// Int returns the value as an int64 if it is a whole number within range.
func (n Number) Int() (int64, bool) {
	if i, err := strconv.ParseInt(n.Text, 10, 64); err == nil {
		return i, true
	}

	f, err := strconv.ParseFloat(n.Text, 64)
	if err != nil || math.IsNaN(f) || f != math.Trunc(f) {
		return 0, false
	}

	if f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, false
	}

	return int64(f), true
}

// Negative returns true if the number is below zero.
func (n Number) Negative() bool {
	return n.Float() < 0
}

// String is a quoted string literal.
type String struct {
	Text string
}

func (s String) String() string { return s.Text }

func (String) value() {}

// Bool is true or false.
type Bool bool

func (b Bool) String() string { return strconv.FormatBool(bool(b)) }

func (Bool) value() {}

// Null is the null literal.
type Null struct{}

func (Null) String() string { return "null" }

func (Null) value() {}

// Array is an ordered list of values.
type Array struct {
	Elems []Value
}

func (a Array) String() string {
	parts := make([]string, len(a.Elems))
	for i, e := range a.Elems {
		parts[i] = e.String()
	}

	return "[" + strings.Join(parts, ", ") + "]"
}

func (Array) value() {}

// A Member is a key-value pair of an object.
type Member struct {
	Key   string
	Value Value
}

// Object is a list of members in source order. Repeated keys are kept.
type Object struct {
	Members []Member
}

func (o Object) String() string {
	parts := make([]string, len(o.Members))
	for i, m := range o.Members {
		parts[i] = m.Key + ": " + m.Value.String()
	}

	return "{" + strings.Join(parts, ", ") + "}"
}

func (Object) value() {}
