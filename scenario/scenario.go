// Package scenario runs expression trees both naively and through the
// optimizer and reports how the two compare.
package scenario

import (
	"fmt"
	"time"

	"github.com/on-the-ground/memoexpr/costfn"
	"github.com/on-the-ground/memoexpr/expr"
	"github.com/on-the-ground/memoexpr/optimizer"
)

type Scenario interface {
	Name() string
	Run(cfg optimizer.Config) (Report, error)
}

type Report struct {
	Name     string
	Strategy optimizer.Strategy

	Naive     string
	Optimized string

	Invocations    int
	NaiveCalls     int
	OptimizedCalls int

	NaiveTime     optimizer.TimeSpan
	OptimizedTime optimizer.TimeSpan
}

// Match reports whether both evaluations produced the same value.
func (r Report) Match() bool {
	return r.Naive == r.Optimized
}

func (r Report) String() string {
	return fmt.Sprintf("%s [%v]: naive=%s (%d calls, %v) optimized=%s (%d calls, %v)",
		r.Name, r.Strategy,
		r.Naive, r.NaiveCalls, r.NaiveTime.Duration().Round(time.Microsecond),
		r.Optimized, r.OptimizedCalls, r.OptimizedTime.Duration().Round(time.Microsecond),
	)
}

// Case is a tree over a fixed input and expensive function. Build is called
// once per run, since optimizing consumes the tree.
type Case[TIn comparable, N expr.Number] struct {
	Title string
	Input []TIn
	Func  expr.Func[TIn, N]
	Build func(b expr.Builder[N]) expr.Node[N]
}

func (c Case[TIn, N]) Name() string {
	return c.Title
}

func (c Case[TIn, N]) Run(cfg optimizer.Config) (Report, error) {
	counter := costfn.NewCounter(c.Func)
	tree := c.Build(expr.Builder[N]{})
	report := Report{
		Name:        c.Title,
		Strategy:    cfg.Strategy,
		Invocations: expr.Count[N](tree),
	}

	start := time.Now()
	naive, err := expr.Eval(tree, c.Input, counter.Func())
	report.NaiveTime = optimizer.NewTimeSpan(start, time.Now())
	if err != nil {
		return report, fmt.Errorf("%s: naive: %w", c.Title, err)
	}
	report.Naive = naive.String()
	report.NaiveCalls = counter.Calls()
	counter.Reset()

	start = time.Now()
	optimized, _, err := optimizer.New[TIn, N](cfg).Evaluate(tree, c.Input, counter.Func())
	report.OptimizedTime = optimizer.NewTimeSpan(start, time.Now())
	if err != nil {
		return report, fmt.Errorf("%s: optimized: %w", c.Title, err)
	}
	report.Optimized = optimized.String()
	report.OptimizedCalls = counter.Calls()

	return report, nil
}

// All returns the built-in scenarios. delay is the latency added to every
// call in the scenarios that measure time.
func All(delay time.Duration) []Scenario {
	return []Scenario{
		ConditionalInt(),
		BinaryInt(),
		ConditionalString(),
		Latency(delay),
		Performance(delay),
	}
}

// ConditionalInt compares two half-sums and branches on the result.
func ConditionalInt() Case[int, float32] {
	return Case[int, float32]{
		Title: "conditional-int",
		Input: []int{1, 18, 0, -5, 12, 21},
		Func:  expr.Pure(costfn.HalfSum),
		Build: func(b expr.Builder[float32]) expr.Node[float32] {
			return b.If(
				b.Gt(b.Call(0, 2, 5), b.Call(1, 2, 3)),
				b.Lt(b.Call(0, 2, 5), b.Num(120)),
				b.If(
					b.Gt(b.Add(b.Call(1, 2, 3), b.Num(15)), b.Num(50)),
					b.True(),
					b.False(),
				),
			)
		},
	}
}

// BinaryInt is pure arithmetic over two distinct value-sets.
func BinaryInt() Case[int, float32] {
	return Case[int, float32]{
		Title: "binary-int",
		Input: []int{1, 18, 0, -5, 12, 21},
		Func:  expr.Pure(costfn.HalfSum),
		Build: func(b expr.Builder[float32]) expr.Node[float32] {
			return b.Sub(
				b.Add(b.Call(0, 2, 5), b.Call(1, 2, 3)),
				b.Call(0, 2, 5),
			)
		},
	}
}

// ConditionalString scores selections of strings, some with repeated
// indices.
func ConditionalString() Case[string, int] {
	return Case[string, int]{
		Title: "conditional-string",
		Input: []string{"aa", "bb", "cc", "dd", "ee", "ff"},
		Func:  expr.Pure(costfn.Score),
		Build: func(b expr.Builder[int]) expr.Node[int] {
			return b.If(
				b.Lt(b.Call(0, 2), b.Call(0, 1)),
				b.Gt(b.Call(0, 2, 4, 4), b.Call(0, 2)),
				b.Le(b.Call(0, 2), b.Call(1, 3, 3)),
			)
		},
	}
}

// Latency has four call sites but two value-sets: indices differ, values
// do not.
func Latency(delay time.Duration) Case[int, int64] {
	return Case[int, int64]{
		Title: "latency",
		Input: []int{2, 5, 2, 5},
		Func:  costfn.Slow(costfn.FactorialSum, delay),
		Build: func(b expr.Builder[int64]) expr.Node[int64] {
			return b.Mul(
				b.Add(b.Call(0, 1), b.Call(2, 3)),
				b.Add(b.Call(1), b.Call(3)),
			)
		},
	}
}

// Performance repeats a few slow calls many times under a conditional.
func Performance(delay time.Duration) Case[int, int64] {
	return Case[int, int64]{
		Title: "performance",
		Input: []int{1, 3, 8, 4},
		Func:  costfn.Slow(costfn.FactorialSum, delay),
		Build: func(b expr.Builder[int64]) expr.Node[int64] {
			pair := func() expr.Node[int64] {
				return b.Add(b.Call(0, 2, 1, 1), b.Call(0, 2, 3))
			}
			return b.If(
				b.Gt(b.Call(0, 2, 3), b.Call(0, 2)),
				b.Add(b.Add(b.Mul(pair(), pair()), pair()), pair()),
				b.Mul(b.Sub(b.Call(0, 2), b.Call(0, 2, 3)), b.Num(3)),
			)
		},
	}
}
