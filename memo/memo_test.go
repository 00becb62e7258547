package memo_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/on-the-ground/memoexpr/expr"
	"github.com/on-the-ground/memoexpr/memo"
)

func counting(calls *int) expr.Func[int, int] {
	return func(values []int) (int, error) {
		*calls++
		sum := 0
		for _, v := range values {
			sum += v
		}
		return sum, nil
	}
}

func TestRecord_ForceOnce(t *testing.T) {
	calls := 0
	rec := memo.NewRecord(0, []int{1, 2, 3}, counting(&calls))
	assert.Equal(t, memo.Pending, rec.State())

	_, err := rec.Load()
	assert.ErrorIs(t, err, memo.ErrPending)

	v, err := rec.Force()
	require.NoError(t, err)
	assert.Equal(t, 6, v)
	assert.Equal(t, memo.Resolved, rec.State())

	v, err = rec.Force()
	require.NoError(t, err)
	assert.Equal(t, 6, v)

	v, err = rec.Load()
	require.NoError(t, err)
	assert.Equal(t, 6, v)
	assert.Equal(t, 1, calls)
}

func TestRecord_Failure(t *testing.T) {
	boom := errors.New("boom")
	calls := 0
	rec := memo.NewRecord(3, []int{1}, func([]int) (int, error) {
		calls++
		return 0, boom
	})

	_, err := rec.Force()
	assert.ErrorIs(t, err, memo.ErrCallFailure)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, memo.Failed, rec.State())

	_, err = rec.Force()
	assert.ErrorIs(t, err, boom)
	_, err = rec.Load()
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, calls)
}

func TestRecord_PanicBecomesFailure(t *testing.T) {
	rec := memo.NewRecord(0, []int{1}, func([]int) (int, error) {
		panic("kaboom")
	})
	_, err := rec.Force()
	assert.ErrorIs(t, err, memo.ErrCallFailure)
	assert.Contains(t, err.Error(), "kaboom")
	assert.Equal(t, memo.Failed, rec.State())
}

func TestOnDemand_ForcesOnRead(t *testing.T) {
	calls := 0
	rec := memo.NewRecord(0, []int{4, 5}, counting(&calls))
	var m expr.Memo[int] = memo.OnDemand[int, int]{Record: rec}

	v, err := m.Load()
	require.NoError(t, err)
	assert.Equal(t, 9, v)
	_, _ = m.Load()
	assert.Equal(t, 1, calls)
	assert.Equal(t, "#0[4 5]", m.String())
}

func TestTable_InternByValue(t *testing.T) {
	calls := 0
	table := memo.NewTable(counting(&calls))

	a, created := table.Intern([]int{1, 0, 21})
	assert.True(t, created)
	b, created := table.Intern([]int{18, 0, -5})
	assert.True(t, created)
	again, created := table.Intern([]int{1, 0, 21})
	assert.False(t, created)

	assert.Same(t, a, again)
	assert.NotSame(t, a, b)
	assert.Equal(t, 2, table.Len())
	assert.Equal(t, []*memo.Record[int, int]{a, b}, table.Records())
	assert.Equal(t, 0, a.ID())
	assert.Equal(t, 1, b.ID())
	assert.Equal(t, 0, calls)
}

func TestTable_PrefixesAndRepeatsAreDistinct(t *testing.T) {
	table := memo.NewTable(expr.Pure(func(v []string) int { return len(v) }))

	table.Intern([]string{"aa"})
	table.Intern([]string{"aa", "aa"})
	table.Intern([]string{"aa", "bb"})
	table.Intern([]string{"bb", "aa"})
	table.Intern([]string{})
	_, created := table.Intern(nil)

	assert.False(t, created)
	assert.Equal(t, 5, table.Len())
}

func TestTable_Lookup(t *testing.T) {
	table := memo.NewTable(expr.Pure(func(v []int) int { return 0 }))
	rec, _ := table.Intern([]int{1, 2})

	got, ok := table.Lookup([]int{1, 2})
	assert.True(t, ok)
	assert.Same(t, rec, got)

	_, ok = table.Lookup([]int{1})
	assert.False(t, ok)
	_, ok = table.Lookup([]int{1, 2, 3})
	assert.False(t, ok)
	assert.Equal(t, 1, table.Len())
}

func TestTable_Forced(t *testing.T) {
	calls := 0
	table := memo.NewTable(counting(&calls))
	first, _ := table.Intern([]int{1})
	table.Intern([]int{2})

	assert.Equal(t, 0, table.Forced())
	_, _ = first.Force()
	assert.Equal(t, 1, table.Forced())
	assert.Equal(t, 1, calls)
}

func TestRecord_PartitionKey(t *testing.T) {
	f := expr.Pure(func(v []int) int { return 0 })
	a := memo.NewRecord(0, []int{1, 2}, f)
	b := memo.NewRecord(5, []int{1, 2}, f)
	assert.Equal(t, a.PartitionKey(), b.PartitionKey())
}
