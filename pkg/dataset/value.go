// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package dataset

import (
	"strconv"
	"time"
)

type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindDate
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindDate:
		return "date"
	}
	return "unknown"
}

// Value is a tagged nullable scalar. The zero value is null.
type Value struct {
	kind Kind
	b    bool
	i    int64
	f    float64
	s    string
	t    time.Time
}

// Null is the null Value.
var Null = Value{}

func Bool(b bool) Value {
	return Value{kind: KindBool, b: b}
}

func Int(i int64) Value {
	return Value{kind: KindInt, i: i}
}

func Float(f float64) Value {
	return Value{kind: KindFloat, f: f}
}

func Str(s string) Value {
	return Value{kind: KindString, s: s}
}

func Date(t time.Time) Value {
	return Value{kind: KindDate, t: t}
}

func (v Value) Kind() Kind {
	return v.kind
}

func (v Value) IsNull() bool {
	return v.kind == KindNull
}

func (v Value) Bool() bool {
	return v.b
}

func (v Value) Int() int64 {
	return v.i
}

func (v Value) Float() float64 {
	return v.f
}

func (v Value) Str() string {
	return v.s
}

func (v Value) Time() time.Time {
	return v.t
}

// Equal reports whether two values compare equal during diffing. Two nulls
// are equal. Values of the same kind compare by value. An int and a float
// compare numerically and are equal when the float carries exactly the
// integer value. Every other cross-kind pair is unequal: no coercion is
// performed, so Str("1") never equals Int(1).
func (v Value) Equal(w Value) bool {
	if v.kind != w.kind {
		if v.kind == KindInt && w.kind == KindFloat {
			return float64(v.i) == w.f
		}
		if v.kind == KindFloat && w.kind == KindInt {
			return v.f == float64(w.i)
		}
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == w.b
	case KindInt:
		return v.i == w.i
	case KindFloat:
		return v.f == w.f
	case KindString:
		return v.s == w.s
	case KindDate:
		return v.t.Equal(w.t)
	}
	return false
}

// String renders a value for display and CSV output. Null renders as the
// empty string. A date with a zero clock renders as an ISO-8601 date,
// otherwise as RFC 3339.
func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return ""
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'f', -1, 64)
	case KindString:
		return v.s
	case KindDate:
		hour, min, sec := v.t.Clock()
		if hour == 0 && min == 0 && sec == 0 && v.t.Nanosecond() == 0 {
			return v.t.Format("2006-01-02")
		}
		return v.t.Format(time.RFC3339)
	}
	return ""
}
