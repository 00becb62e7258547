package costfn_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/on-the-ground/memoexpr/costfn"
	"github.com/on-the-ground/memoexpr/expr"
)

func TestHalfSum(t *testing.T) {
	assert.Equal(t, float32(11), costfn.HalfSum([]int{1, 0, 21}))
	assert.Equal(t, float32(6.5), costfn.HalfSum([]int{18, 0, -5}))
	assert.Equal(t, float32(0), costfn.HalfSum(nil))
}

func TestFactorialSum(t *testing.T) {
	got, err := costfn.FactorialSum([]int{1, 8, 4})
	require.NoError(t, err)
	assert.Equal(t, int64(40345), got)

	got, err = costfn.FactorialSum([]int{0})
	require.NoError(t, err)
	assert.Equal(t, int64(1), got)

	_, err = costfn.FactorialSum([]int{2, -1})
	assert.ErrorIs(t, err, costfn.ErrNegativeFactorial)
}

func TestScore(t *testing.T) {
	assert.Equal(t, 5, costfn.Score([]string{"aa", "cc"}))
	assert.Equal(t, 7, costfn.Score([]string{"aa", "bb"}))
	assert.Equal(t, 11, costfn.Score([]string{"aa", "cc", "ee", "ee"}))
}

func TestSlow(t *testing.T) {
	f := costfn.Slow(expr.Pure(costfn.HalfSum), 10*time.Millisecond)
	start := time.Now()
	got, err := f([]int{4})
	require.NoError(t, err)
	assert.Equal(t, float32(2), got)
	assert.GreaterOrEqual(t, time.Since(start), 10*time.Millisecond)
}

func TestCounter(t *testing.T) {
	counter := costfn.NewCounter(expr.Pure(costfn.Score))
	f := counter.Func()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = f([]string{"aa"})
		}()
	}
	wg.Wait()
	assert.Equal(t, 8, counter.Calls())

	counter.Reset()
	_, _ = f([]string{"bb", "cc"})
	assert.Equal(t, [][]string{{"bb", "cc"}}, counter.Args())
}

func TestCounter_CopiesArguments(t *testing.T) {
	counter := costfn.NewCounter(expr.Pure(costfn.HalfSum))
	args := []int{1, 2}
	_, _ = counter.Func()(args)
	args[0] = 99
	assert.Equal(t, [][]int{{1, 2}}, counter.Args())
}
