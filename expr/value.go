package expr

import (
	"fmt"
)

// Number is the set of element types a tree can do arithmetic over.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Kind tags which half of a Value is meaningful.
type Kind uint8

const (
	KindNumber Kind = iota
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Value is what a node evaluates to: either a number of type N or a boolean.
type Value[N Number] struct {
	kind Kind
	num  N
	b    bool
}

func Num[N Number](n N) Value[N] {
	return Value[N]{kind: KindNumber, num: n}
}

func Bool[N Number](b bool) Value[N] {
	return Value[N]{kind: KindBool, b: b}
}

func (v Value[N]) Kind() Kind {
	return v.kind
}

// Number returns the numeric payload, or ErrTypeMismatch for a boolean.
func (v Value[N]) Number() (N, error) {
	if v.kind != KindNumber {
		var zero N
		return zero, fmt.Errorf("%w: want number, got %v", ErrTypeMismatch, v)
	}
	return v.num, nil
}

// Bool returns the boolean payload, or ErrTypeMismatch for a number.
func (v Value[N]) Bool() (bool, error) {
	if v.kind != KindBool {
		return false, fmt.Errorf("%w: want bool, got %v", ErrTypeMismatch, v)
	}
	return v.b, nil
}

func (v Value[N]) Equal(o Value[N]) bool {
	if v.kind != o.kind {
		return false
	}
	if v.kind == KindBool {
		return v.b == o.b
	}
	return v.num == o.num
}

func (v Value[N]) String() string {
	if v.kind == KindBool {
		return fmt.Sprintf("%t", v.b)
	}
	return fmt.Sprintf("%v", v.num)
}

// isFloat reports whether N has a fractional part.
func isFloat[N Number]() bool {
	var one N = 1
	return one/2 != 0
}
