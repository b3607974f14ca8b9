// Package queue provides the blocking handoff between order producers and
// the single matching goroutine. Any number of goroutines may Push;
// exactly one consumer should Pop in a loop, which preserves the matching
// core's single-writer contract.
package queue

import (
	"errors"
	"sync"
)

var ErrShutdown = errors.New("queue is shut down")

// Queue is an unbounded FIFO with blocking Pop and graceful drain on
// shutdown.
type Queue[T any] struct {
	mu       sync.Mutex
	notEmpty *sync.Cond
	items    []T
	shutdown bool
}

func New[T any]() *Queue[T] {
	q := &Queue[T]{}
	q.notEmpty = sync.NewCond(&q.mu)
	return q
}

// Push enqueues an item and wakes one waiting consumer. Returns
// ErrShutdown once Shutdown has been called; the item is not enqueued in
// that case.
func (q *Queue[T]) Push(item T) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.shutdown {
		return ErrShutdown
	}
	q.items = append(q.items, item)
	q.notEmpty.Signal()
	return nil
}

// Pop blocks until an item is available or the queue has been shut down
// and drained. After shutdown, remaining items are still delivered in push
// order; ok is false only once the queue is empty for good.
func (q *Queue[T]) Pop() (item T, ok bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for len(q.items) == 0 && !q.shutdown {
		q.notEmpty.Wait()
	}
	if len(q.items) == 0 {
		return item, false
	}

	item = q.items[0]
	q.items[0] = *new(T) // release the reference
	q.items = q.items[1:]
	return item, true
}

// Shutdown marks the queue closed and wakes every blocked consumer. Items
// already queued remain poppable. Safe to call more than once.
func (q *Queue[T]) Shutdown() {
	q.mu.Lock()
	q.shutdown = true
	q.mu.Unlock()

	q.notEmpty.Broadcast()
}

// Len reports the number of items currently queued.
func (q *Queue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}
