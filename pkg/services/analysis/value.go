package analysis

import (
	"math"
	"strconv"
)

// Kind tells how a derived value is stored and rendered.
type Kind int

const (
	KindText Kind = iota
	KindInteger
	KindNumber
)

// Value is a derived field value: text, a whole currency amount or a real number.
type Value struct {
	Kind   Kind
	Number float64
	Text   string
}

func Text(s string) Value {
	return Value{Kind: KindText, Text: s}
}

func Integer(i int64) Value {
	return Value{Kind: KindInteger, Number: float64(i)}
}

func Number(f float64) Value {
	return Value{Kind: KindNumber, Number: f}
}

// Amount stores f as an Integer when it has no fractional part.
func Amount(f float64) Value {
	if f == math.Trunc(f) && math.Abs(f) < 1<<53 {
		return Integer(int64(f))
	}
	return Number(f)
}

func (v Value) String() string {
	switch v.Kind {
	case KindInteger:
		return strconv.FormatInt(int64(v.Number), 10)
	case KindNumber:
		return strconv.FormatFloat(v.Number, 'f', -1, 64)
	default:
		return v.Text
	}
}
