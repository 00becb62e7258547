// Package dispatch fans work out to a fixed set of worker goroutines. Items
// with equal partition keys always land on the same worker and are handled
// in the order they were sent.
package dispatch

import (
	"context"
	"sync"

	"github.com/cespare/xxhash/v2"
)

type Partitionable interface {
	PartitionKey() string
}

type Config struct {
	BufferSize int // default: 1
	NumWorkers int // default: 1
}

func NewConfig(bufferSize int, numWorkers int) Config {
	if bufferSize <= 0 {
		bufferSize = 1
	}
	if numWorkers <= 0 {
		numWorkers = 1
	}
	return Config{
		BufferSize: bufferSize,
		NumWorkers: numWorkers,
	}
}

// --- common interface ---

type WorkerDispatcher[T any] interface {
	GetChannelOf(msg T) chan T
}

// Send hands msg to its worker, giving up if ctx is done first.
func Send[T any](ctx context.Context, d WorkerDispatcher[T], msg T) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case d.GetChannelOf(msg) <- msg:
		return nil
	}
}

// New starts cfg.NumWorkers workers running handleFn until ctx is done. A
// single worker gets a plain queue; more than one are partitioned by hash.
func New[T Partitionable](
	ctx context.Context,
	cfg Config,
	handleFn func(context.Context, T),
) WorkerDispatcher[T] {
	if cfg.NumWorkers <= 1 {
		return NewSingleQueue(ctx, cfg.BufferSize, handleFn)
	}
	return NewPartitionedQueue(ctx, cfg.NumWorkers, cfg.BufferSize, handleFn)
}

// --- single queue ---

type singleQueue[T any] struct {
	ch chan T
}

func (q singleQueue[T]) GetChannelOf(_ T) chan T {
	return q.ch
}

func NewSingleQueue[T any](
	ctx context.Context,
	bufferSize int,
	handleFn func(context.Context, T),
) WorkerDispatcher[T] {
	ch := make(chan T, bufferSize)
	ready := make(chan struct{})

	go func() {
		close(ready)
		work[T](ctx, ch, handleFn)
	}()

	<-ready

	return singleQueue[T]{ch: ch}
}

// --- partitioned queue ---

type partitionedQueue[T Partitionable] struct {
	chs []chan T
}

func (pq partitionedQueue[T]) GetChannelOf(msg T) chan T {
	return pq.chs[IndexOf(msg, len(pq.chs))]
}

func NewPartitionedQueue[T Partitionable](
	ctx context.Context,
	numWorkers, bufferSize int,
	handleFn func(context.Context, T),
) WorkerDispatcher[T] {
	channels := make([]chan T, numWorkers)
	ready := sync.WaitGroup{}
	for i := 0; i < numWorkers; i++ {
		ready.Add(1)
		ch := make(chan T, bufferSize)
		go func() {
			ready.Done()
			work[T](ctx, ch, handleFn)
		}()
		channels[i] = ch
	}
	ready.Wait()
	return partitionedQueue[T]{chs: channels}
}

func work[T any](ctx context.Context, ch <-chan T, handleFn func(context.Context, T)) {
	for {
		select {
		case msg := <-ch:
			handleFn(ctx, msg)
		case <-ctx.Done():
			return
		}
	}
}

// IndexOf picks the worker for msg out of n.
func IndexOf(msg Partitionable, n int) int {
	switch n {
	case 0:
		panic("number of workers cannot be 0")
	case 1:
		return 0
	default:
		return int(xxhash.Sum64String(msg.PartitionKey()) % uint64(n))
	}
}
