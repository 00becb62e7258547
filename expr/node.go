// Package expr models the expression trees the optimizer rewrites: numeric
// and boolean constants, binary operators, conditionals and invocations of a
// single expensive function over a selection of input elements.
//
// Trees are built by the caller, usually through a Builder, and may be
// evaluated directly with Eval. The optimizer package rewrites Invocation
// nodes into Reference nodes and evaluates the result with EvalResolved.
package expr

import (
	"fmt"
	"strings"
)

// Node is one of *Constant, *BinaryOp, *Conditional, *Invocation or
// *Reference. The set is closed.
type Node[N Number] interface {
	fmt.Stringer
	isNode()
}

type Constant[N Number] struct {
	Value Value[N]
}

type BinaryOp[N Number] struct {
	Op          Op
	Left, Right Node[N]
}

type Conditional[N Number] struct {
	Test    Node[N]
	IfTrue  Node[N]
	IfFalse Node[N]
}

// Invocation calls the expensive function with input[Indices[0]],
// input[Indices[1]], ... in that order. The function itself is not part of
// the node; it is supplied once per evaluation.
type Invocation[N Number] struct {
	Indices []int
}

// Memo is the cached result an Invocation was rewritten to.
type Memo[N Number] interface {
	fmt.Stringer
	Load() (N, error)
}

// Reference replaces an Invocation after rewriting. Every Invocation that
// resolved to the same value-set points at the same Memo.
type Reference[N Number] struct {
	Memo Memo[N]
}

func (*Constant[N]) isNode()    {}
func (*BinaryOp[N]) isNode()    {}
func (*Conditional[N]) isNode() {}
func (*Invocation[N]) isNode()  {}
func (*Reference[N]) isNode()   {}

func (c *Constant[N]) String() string {
	return c.Value.String()
}

func (b *BinaryOp[N]) String() string {
	return fmt.Sprintf("(%v %v %v)", b.Left, b.Op, b.Right)
}

func (c *Conditional[N]) String() string {
	return fmt.Sprintf("(%v ? %v : %v)", c.Test, c.IfTrue, c.IfFalse)
}

func (i *Invocation[N]) String() string {
	var sb strings.Builder
	sb.WriteString("f[")
	for k, idx := range i.Indices {
		if k > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%d", idx)
	}
	sb.WriteByte(']')
	return sb.String()
}

func (r *Reference[N]) String() string {
	if r.Memo == nil {
		return "$<nil>"
	}
	return "$" + r.Memo.String()
}

// Count returns the number of Invocation nodes reachable from node.
func Count[N Number](node Node[N]) int {
	switch n := node.(type) {
	case *Invocation[N]:
		return 1
	case *BinaryOp[N]:
		return Count[N](n.Left) + Count[N](n.Right)
	case *Conditional[N]:
		return Count[N](n.Test) + Count[N](n.IfTrue) + Count[N](n.IfFalse)
	default:
		return 0
	}
}

// Clone deep-copies node. Rewriting mutates a tree in place, so a tree that
// is needed afterwards has to be cloned first. References are copied but
// keep pointing at the same memo.
func Clone[N Number](node Node[N]) Node[N] {
	switch n := node.(type) {
	case *Constant[N]:
		c := *n
		return &c
	case *BinaryOp[N]:
		return &BinaryOp[N]{Op: n.Op, Left: Clone[N](n.Left), Right: Clone[N](n.Right)}
	case *Conditional[N]:
		return &Conditional[N]{Test: Clone[N](n.Test), IfTrue: Clone[N](n.IfTrue), IfFalse: Clone[N](n.IfFalse)}
	case *Invocation[N]:
		return &Invocation[N]{Indices: append([]int(nil), n.Indices...)}
	case *Reference[N]:
		r := *n
		return &r
	default:
		return node
	}
}
