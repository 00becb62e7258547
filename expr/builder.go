package expr

// Builder assembles trees over the number type N without spelling out type
// arguments at every call site:
//
//	var b expr.Builder[float32]
//	tree := b.If(b.Gt(b.Call(0, 2, 5), b.Call(1, 2, 3)), b.True(), b.Lt(b.Call(1, 2, 3), b.Num(50)))
type Builder[N Number] struct{}

func (Builder[N]) Num(n N) Node[N] {
	return &Constant[N]{Value: Num(n)}
}

func (Builder[N]) Bool(v bool) Node[N] {
	return &Constant[N]{Value: Bool[N](v)}
}

func (b Builder[N]) True() Node[N]  { return b.Bool(true) }
func (b Builder[N]) False() Node[N] { return b.Bool(false) }

// Call builds an Invocation over a copy of indices.
func (Builder[N]) Call(indices ...int) Node[N] {
	return &Invocation[N]{Indices: append([]int(nil), indices...)}
}

func (Builder[N]) Binary(op Op, l, r Node[N]) Node[N] {
	return &BinaryOp[N]{Op: op, Left: l, Right: r}
}

func (b Builder[N]) Add(l, r Node[N]) Node[N] { return b.Binary(Add, l, r) }
func (b Builder[N]) Sub(l, r Node[N]) Node[N] { return b.Binary(Subtract, l, r) }
func (b Builder[N]) Mul(l, r Node[N]) Node[N] { return b.Binary(Multiply, l, r) }
func (b Builder[N]) Div(l, r Node[N]) Node[N] { return b.Binary(Divide, l, r) }
func (b Builder[N]) Mod(l, r Node[N]) Node[N] { return b.Binary(Modulo, l, r) }
func (b Builder[N]) Lt(l, r Node[N]) Node[N]  { return b.Binary(LessThan, l, r) }
func (b Builder[N]) Le(l, r Node[N]) Node[N]  { return b.Binary(LessOrEqual, l, r) }
func (b Builder[N]) Gt(l, r Node[N]) Node[N]  { return b.Binary(GreaterThan, l, r) }
func (b Builder[N]) Ge(l, r Node[N]) Node[N]  { return b.Binary(GreaterOrEqual, l, r) }

func (Builder[N]) If(test, ifTrue, ifFalse Node[N]) Node[N] {
	return &Conditional[N]{Test: test, IfTrue: ifTrue, IfFalse: ifFalse}
}
