package memo

import (
	"errors"
	"fmt"

	"github.com/on-the-ground/memoexpr/expr"
)

var (
	ErrCallFailure = errors.New("call to expensive function failed")
	ErrPending     = errors.New("record read before it was forced")
)

// State is the lifecycle of a Record. A record leaves Pending exactly once.
type State uint8

const (
	Pending State = iota
	Resolved
	Failed
)

func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Resolved:
		return "resolved"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", uint8(s))
	}
}

// Record holds one distinct value-set and, once forced, the result of the
// expensive function over it.
//
// A Record is not safe for concurrent use; concurrent forcing hands each
// record to exactly one worker.
type Record[TIn comparable, N expr.Number] struct {
	id     int
	values []TIn
	call   expr.Func[TIn, N]

	state  State
	result N
	err    error
}

func NewRecord[TIn comparable, N expr.Number](id int, values []TIn, f expr.Func[TIn, N]) *Record[TIn, N] {
	return &Record[TIn, N]{
		id:     id,
		values: values,
		call:   f,
	}
}

// ID is the record's position in discovery order.
func (r *Record[TIn, N]) ID() int {
	return r.id
}

func (r *Record[TIn, N]) Values() []TIn {
	return r.values
}

func (r *Record[TIn, N]) State() State {
	return r.state
}

// Force calls the expensive function if the record is still pending and
// fixes the outcome. Later calls return the fixed outcome without calling
// again. A panic in the function is reported as ErrCallFailure.
func (r *Record[TIn, N]) Force() (N, error) {
	if r.state == Pending {
		r.result, r.err = r.invoke()
		if r.err != nil {
			r.state = Failed
		} else {
			r.state = Resolved
		}
		r.call = nil
	}
	return r.result, r.err
}

func (r *Record[TIn, N]) invoke() (res N, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("%w: %v: panic: %v", ErrCallFailure, r, p)
		}
	}()
	res, err = r.call(r.values)
	if err != nil {
		err = fmt.Errorf("%w: %v: %w", ErrCallFailure, r, err)
	}
	return res, err
}

// Load reads the fixed outcome. It never calls the expensive function.
func (r *Record[TIn, N]) Load() (N, error) {
	if r.state == Pending {
		var zero N
		return zero, fmt.Errorf("%w: %v", ErrPending, r)
	}
	return r.result, r.err
}

// PartitionKey identifies the value-set, so equal value-sets map to the
// same worker.
func (r *Record[TIn, N]) PartitionKey() string {
	return fmt.Sprint(r.values)
}

func (r *Record[TIn, N]) String() string {
	return fmt.Sprintf("#%d%v", r.id, r.values)
}

// OnDemand forces its record on first read.
type OnDemand[TIn comparable, N expr.Number] struct {
	*Record[TIn, N]
}

func (o OnDemand[TIn, N]) Load() (N, error) {
	return o.Force()
}
