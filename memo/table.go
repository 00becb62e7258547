// Package memo holds the per-call memo records the optimizer rewrites
// invocations into, and the table that deduplicates them by value.
//
// A Table is scoped to a single optimization pass. Nothing is shared between
// passes: two passes over the same tree call the expensive function again.
package memo

import (
	"github.com/on-the-ground/memoexpr/expr"
)

// Table maps value-sets to records. Lookups walk a trie with one level per
// element, so two value-sets share a record exactly when they are
// element-wise equal and of equal length.
type Table[TIn comparable, N expr.Number] struct {
	root    trieNode[TIn, N]
	records []*Record[TIn, N]
	call    expr.Func[TIn, N]
}

type trieNode[TIn comparable, N expr.Number] struct {
	children map[TIn]*trieNode[TIn, N]
	record   *Record[TIn, N]
}

func NewTable[TIn comparable, N expr.Number](f expr.Func[TIn, N]) *Table[TIn, N] {
	return &Table[TIn, N]{call: f}
}

// Intern returns the record for values, creating a pending one if no equal
// value-set has been seen. created reports whether a new record was made.
func (t *Table[TIn, N]) Intern(values []TIn) (rec *Record[TIn, N], created bool) {
	node := t.traverse(values, true)
	if node.record != nil {
		return node.record, false
	}
	node.record = NewRecord(len(t.records), values, t.call)
	t.records = append(t.records, node.record)
	return node.record, true
}

// Lookup returns the record for values without creating one.
func (t *Table[TIn, N]) Lookup(values []TIn) (*Record[TIn, N], bool) {
	node := t.traverse(values, false)
	if node == nil || node.record == nil {
		return nil, false
	}
	return node.record, true
}

func (t *Table[TIn, N]) traverse(values []TIn, create bool) *trieNode[TIn, N] {
	node := &t.root
	for _, v := range values {
		next, ok := node.children[v]
		if !ok {
			if !create {
				return nil
			}
			if node.children == nil {
				node.children = make(map[TIn]*trieNode[TIn, N])
			}
			next = &trieNode[TIn, N]{}
			node.children[v] = next
		}
		node = next
	}
	return node
}

// Len is the number of distinct value-sets seen.
func (t *Table[TIn, N]) Len() int {
	return len(t.records)
}

// Records returns the records in discovery order. The slice must not be
// modified.
func (t *Table[TIn, N]) Records() []*Record[TIn, N] {
	return t.records
}

// Forced counts the records that are no longer pending.
func (t *Table[TIn, N]) Forced() int {
	n := 0
	for _, r := range t.records {
		if r.State() != Pending {
			n++
		}
	}
	return n
}
