package expr

import (
	"fmt"
	"math"
)

// Op is a binary operator. Only the arithmetic and ordering operators are
// supported; the rest exist so that a tree can carry them and be rejected.
type Op uint8

const (
	Add Op = iota
	Subtract
	Multiply
	Divide
	Modulo
	LessThan
	LessOrEqual
	GreaterThan
	GreaterOrEqual

	Equal
	NotEqual
	And
	Or
	Xor
)

var opSymbols = [...]string{
	Add:            "+",
	Subtract:       "-",
	Multiply:       "*",
	Divide:         "/",
	Modulo:         "%",
	LessThan:       "<",
	LessOrEqual:    "<=",
	GreaterThan:    ">",
	GreaterOrEqual: ">=",
	Equal:          "==",
	NotEqual:       "!=",
	And:            "&",
	Or:             "|",
	Xor:            "^",
}

func (op Op) String() string {
	if int(op) < len(opSymbols) {
		return opSymbols[op]
	}
	return fmt.Sprintf("op(%d)", uint8(op))
}

// Supported reports whether op is one of the nine operators the optimizer
// understands.
func (op Op) Supported() bool {
	return op <= GreaterOrEqual
}

// Apply combines two evaluated operands. Arithmetic yields a number of the
// operands' type, comparisons yield a bool. Both operands must be numbers.
func Apply[N Number](op Op, l, r Value[N]) (Value[N], error) {
	if !op.Supported() {
		return Value[N]{}, fmt.Errorf("%w: %v", ErrUnsupportedOperator, op)
	}
	a, err := l.Number()
	if err != nil {
		return Value[N]{}, fmt.Errorf("left operand of %v: %w", op, err)
	}
	b, err := r.Number()
	if err != nil {
		return Value[N]{}, fmt.Errorf("right operand of %v: %w", op, err)
	}

	switch op {
	case Add:
		return Num(a + b), nil
	case Subtract:
		return Num(a - b), nil
	case Multiply:
		return Num(a * b), nil
	case Divide:
		if b == 0 && !isFloat[N]() {
			return Value[N]{}, fmt.Errorf("%w: %v / %v", ErrDivideByZero, a, b)
		}
		return Num(a / b), nil
	case Modulo:
		if isFloat[N]() {
			return Num(N(math.Mod(float64(a), float64(b)))), nil
		}
		if b == 0 {
			return Value[N]{}, fmt.Errorf("%w: %v %% %v", ErrDivideByZero, a, b)
		}
		// truncated remainder, same sign as the dividend
		return Num(a - (a/b)*b), nil
	case LessThan:
		return Bool[N](a < b), nil
	case LessOrEqual:
		return Bool[N](a <= b), nil
	case GreaterThan:
		return Bool[N](a > b), nil
	default:
		return Bool[N](a >= b), nil
	}
}
