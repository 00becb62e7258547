package optimizer_test

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/on-the-ground/memoexpr/costfn"
	"github.com/on-the-ground/memoexpr/expr"
	"github.com/on-the-ground/memoexpr/optimizer"
)

type treeGen struct {
	rnd   *rand.Rand
	b     expr.Builder[int64]
	width int
}

func (g treeGen) number(depth int) expr.Node[int64] {
	if depth == 0 {
		if g.rnd.Intn(4) == 0 {
			return g.b.Num(int64(g.rnd.Intn(10)))
		}
		return g.call()
	}
	switch g.rnd.Intn(4) {
	case 0:
		return g.b.If(g.test(depth-1), g.number(depth-1), g.number(depth-1))
	default:
		ops := []expr.Op{expr.Add, expr.Subtract, expr.Multiply}
		return g.b.Binary(ops[g.rnd.Intn(len(ops))], g.number(depth-1), g.number(depth-1))
	}
}

func (g treeGen) test(depth int) expr.Node[int64] {
	ops := []expr.Op{expr.LessThan, expr.LessOrEqual, expr.GreaterThan, expr.GreaterOrEqual}
	return g.b.Binary(ops[g.rnd.Intn(len(ops))], g.number(depth), g.number(depth))
}

func (g treeGen) call() expr.Node[int64] {
	indices := make([]int, 1+g.rnd.Intn(3))
	for i := range indices {
		indices[i] = g.rnd.Intn(g.width)
	}
	return g.b.Call(indices...)
}

func distinctValueSets(node expr.Node[int64], input []int, seen map[string]struct{}) {
	switch n := node.(type) {
	case *expr.Invocation[int64]:
		values, _ := expr.Gather(n.Indices, input)
		seen[fmt.Sprint(values)] = struct{}{}
	case *expr.BinaryOp[int64]:
		distinctValueSets(n.Left, input, seen)
		distinctValueSets(n.Right, input, seen)
	case *expr.Conditional[int64]:
		distinctValueSets(n.Test, input, seen)
		distinctValueSets(n.IfTrue, input, seen)
		distinctValueSets(n.IfFalse, input, seen)
	}
}

func TestEvaluate_EquivalentToNaive(t *testing.T) {
	sum := expr.Pure(func(values []int) int64 {
		var s int64
		for _, v := range values {
			s += int64(v)
		}
		return s
	})
	input := []int{3, -1, 3, 0, 2, -1}

	for seed := int64(0); seed < 200; seed++ {
		gen := treeGen{rnd: rand.New(rand.NewSource(seed)), width: len(input)}
		tree := gen.number(4)

		seen := map[string]struct{}{}
		distinctValueSets(tree, input, seen)
		invocations := expr.Count[int64](tree)

		naive, err := expr.Eval(expr.Clone[int64](tree), input, sum)
		require.NoError(t, err, "seed %d", seed)

		for _, strategy := range []optimizer.Strategy{optimizer.Eager, optimizer.Concurrent} {
			counter := costfn.NewCounter(sum)
			got, stats, err := optimizer.New[int, int64](optimizer.NewConfig(strategy, 1, 2, nil)).
				Evaluate(expr.Clone[int64](tree), input, counter.Func())
			require.NoError(t, err, "seed %d", seed)

			assert.Equal(t, naive, got, "seed %d %v: %v", seed, strategy, tree)
			assert.Equal(t, len(seen), counter.Calls(), "seed %d %v", seed, strategy)
			assert.Equal(t, len(seen), stats.Records, "seed %d %v", seed, strategy)
			assert.Equal(t, invocations, stats.Invocations, "seed %d %v", seed, strategy)
			assert.LessOrEqual(t, counter.Calls(), invocations, "seed %d %v", seed, strategy)
		}

		counter := costfn.NewCounter(sum)
		got, _, err := optimizer.New[int, int64](optimizer.NewConfig(optimizer.Lazy, 1, 1, nil)).
			Evaluate(expr.Clone[int64](tree), input, counter.Func())
		require.NoError(t, err, "seed %d", seed)
		assert.Equal(t, naive, got, "seed %d lazy", seed)
		assert.LessOrEqual(t, counter.Calls(), len(seen), "seed %d lazy", seed)
	}
}
