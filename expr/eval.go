package expr

import (
	"fmt"
)

// Func is the expensive function. It must be a pure function of the values
// it is given: the optimizer calls it once per distinct value-set and shares
// the result between every call site that produced that value-set.
type Func[TIn any, N Number] func([]TIn) (N, error)

// Pure lifts an infallible function into a Func.
func Pure[TIn any, N Number](fn func([]TIn) N) Func[TIn, N] {
	return func(values []TIn) (N, error) {
		return fn(values), nil
	}
}

// Gather resolves indices against input, keeping order and repeats.
func Gather[TIn any](indices []int, input []TIn) ([]TIn, error) {
	values := make([]TIn, len(indices))
	for i, idx := range indices {
		if idx < 0 || idx >= len(input) {
			return nil, fmt.Errorf("%w: index %d, input length %d", ErrIndexOutOfRange, idx, len(input))
		}
		values[i] = input[idx]
	}
	return values, nil
}

// Eval evaluates node without any memoization: every Invocation calls f.
func Eval[TIn any, N Number](node Node[N], input []TIn, f Func[TIn, N]) (Value[N], error) {
	return evaluate(node, func(inv *Invocation[N]) (N, error) {
		values, err := Gather(inv.Indices, input)
		if err != nil {
			var zero N
			return zero, err
		}
		res, err := f(values)
		if err != nil {
			return res, fmt.Errorf("call %v: %w", inv, err)
		}
		return res, nil
	})
}

// EvalResolved evaluates a tree whose Invocations have all been rewritten
// into References. Only the taken branch of a Conditional is evaluated.
func EvalResolved[N Number](node Node[N]) (Value[N], error) {
	return evaluate(node, func(inv *Invocation[N]) (N, error) {
		var zero N
		return zero, fmt.Errorf("%w: %v", ErrUnresolvedInvocation, inv)
	})
}

func evaluate[N Number](node Node[N], invoke func(*Invocation[N]) (N, error)) (Value[N], error) {
	switch n := node.(type) {
	case nil:
		return Value[N]{}, ErrMissingOperand
	case *Constant[N]:
		return n.Value, nil
	case *Reference[N]:
		if n.Memo == nil {
			return Value[N]{}, fmt.Errorf("%w: reference without memo", ErrMissingOperand)
		}
		res, err := n.Memo.Load()
		if err != nil {
			return Value[N]{}, err
		}
		return Num(res), nil
	case *Invocation[N]:
		res, err := invoke(n)
		if err != nil {
			return Value[N]{}, err
		}
		return Num(res), nil
	case *BinaryOp[N]:
		if !n.Op.Supported() {
			return Value[N]{}, fmt.Errorf("%w: %v", ErrUnsupportedOperator, n.Op)
		}
		l, err := evaluate(n.Left, invoke)
		if err != nil {
			return Value[N]{}, err
		}
		r, err := evaluate(n.Right, invoke)
		if err != nil {
			return Value[N]{}, err
		}
		return Apply(n.Op, l, r)
	case *Conditional[N]:
		if n.Test == nil {
			return Value[N]{}, ErrMissingCondition
		}
		t, err := evaluate(n.Test, invoke)
		if err != nil {
			return Value[N]{}, err
		}
		cond, err := t.Bool()
		if err != nil {
			return Value[N]{}, fmt.Errorf("conditional test: %w", err)
		}
		if cond {
			return evaluate(n.IfTrue, invoke)
		}
		return evaluate(n.IfFalse, invoke)
	default:
		return Value[N]{}, fmt.Errorf("%w: %T", ErrUnexpectedNode, node)
	}
}
