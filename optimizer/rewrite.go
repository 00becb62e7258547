package optimizer

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/on-the-ground/memoexpr/expr"
	"github.com/on-the-ground/memoexpr/memo"
)

// rewriter replaces every Invocation with a Reference to the record of its
// value-set. It is owned by a single pass.
type rewriter[TIn comparable, N expr.Number] struct {
	input       []TIn
	table       *memo.Table[TIn, N]
	onDemand    bool
	invocations int
	logger      *zap.Logger
}

// rewrite walks node post-order and returns its replacement. Composite
// nodes are updated in place and returned as is.
func (rw *rewriter[TIn, N]) rewrite(node expr.Node[N]) (expr.Node[N], error) {
	switch n := node.(type) {
	case nil:
		return nil, expr.ErrMissingOperand
	case *expr.Constant[N]:
		return n, nil
	case *expr.BinaryOp[N]:
		if !n.Op.Supported() {
			return nil, fmt.Errorf("%w: %v in %v", expr.ErrUnsupportedOperator, n.Op, n)
		}
		left, err := rw.rewrite(n.Left)
		if err != nil {
			return nil, err
		}
		right, err := rw.rewrite(n.Right)
		if err != nil {
			return nil, err
		}
		n.Left, n.Right = left, right
		return n, nil
	case *expr.Conditional[N]:
		if n.Test == nil {
			return nil, fmt.Errorf("%w: %v", expr.ErrMissingCondition, n)
		}
		// branches before the test; this fixes discovery order
		ifTrue, err := rw.rewrite(n.IfTrue)
		if err != nil {
			return nil, err
		}
		ifFalse, err := rw.rewrite(n.IfFalse)
		if err != nil {
			return nil, err
		}
		test, err := rw.rewrite(n.Test)
		if err != nil {
			return nil, err
		}
		n.Test, n.IfTrue, n.IfFalse = test, ifTrue, ifFalse
		return n, nil
	case *expr.Invocation[N]:
		return rw.intern(n)
	default:
		return nil, fmt.Errorf("%w: %T in input tree", expr.ErrUnexpectedNode, node)
	}
}

func (rw *rewriter[TIn, N]) intern(inv *expr.Invocation[N]) (expr.Node[N], error) {
	values, err := expr.Gather(inv.Indices, rw.input)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", inv, err)
	}
	rw.invocations++

	rec, created := rw.table.Intern(values)
	if created {
		rw.logger.Debug("value-set interned",
			zap.Int("record", rec.ID()),
			zap.Stringer("invocation", inv),
			zap.Any("values", values),
		)
	} else {
		rw.logger.Debug("value-set reused",
			zap.Int("record", rec.ID()),
			zap.Stringer("invocation", inv),
		)
	}

	var m expr.Memo[N] = rec
	if rw.onDemand {
		m = memo.OnDemand[TIn, N]{Record: rec}
	}
	return &expr.Reference[N]{Memo: m}, nil
}
