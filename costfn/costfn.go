// Package costfn has sample expensive functions and wrappers that make their
// cost observable: artificial latency and call counting.
package costfn

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/on-the-ground/memoexpr/expr"
)

var ErrNegativeFactorial = errors.New("factorial of a negative number")

// HalfSum adds up half of every element.
func HalfSum(values []int) float32 {
	var sum float32
	for _, v := range values {
		sum += float32(v) / 2
	}
	return sum
}

// FactorialSum adds up the factorials of the elements.
func FactorialSum(values []int) (int64, error) {
	var sum int64
	for _, v := range values {
		if v < 0 {
			return 0, fmt.Errorf("%w: %d", ErrNegativeFactorial, v)
		}
		sum += factorial(int64(v))
	}
	return sum, nil
}

func factorial(x int64) int64 {
	if x == 0 {
		return 1
	}
	return x * factorial(x-1)
}

// Score rates strings: "aa" is worth 2, "bb" 5 and anything else 3.
func Score(values []string) int {
	score := 0
	for _, v := range values {
		switch v {
		case "aa":
			score += 2
		case "bb":
			score += 5
		default:
			score += 3
		}
	}
	return score
}

// Slow delays every call to f by d.
func Slow[TIn any, N expr.Number](f expr.Func[TIn, N], d time.Duration) expr.Func[TIn, N] {
	return func(values []TIn) (N, error) {
		time.Sleep(d)
		return f(values)
	}
}

// Counter records every call made through Func. It is safe for concurrent
// use.
type Counter[TIn any, N expr.Number] struct {
	f    expr.Func[TIn, N]
	mu   sync.Mutex
	args [][]TIn
}

func NewCounter[TIn any, N expr.Number](f expr.Func[TIn, N]) *Counter[TIn, N] {
	return &Counter[TIn, N]{f: f}
}

func (c *Counter[TIn, N]) Func() expr.Func[TIn, N] {
	return func(values []TIn) (N, error) {
		c.mu.Lock()
		c.args = append(c.args, append([]TIn(nil), values...))
		c.mu.Unlock()
		return c.f(values)
	}
}

func (c *Counter[TIn, N]) Calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.args)
}

// Args returns the arguments of every call so far, in call order.
func (c *Counter[TIn, N]) Args() [][]TIn {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([][]TIn(nil), c.args...)
}

func (c *Counter[TIn, N]) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.args = nil
}
