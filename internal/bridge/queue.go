package bridge

import "sync"

// boundedQueue is a goroutine-safe FIFO with an optional capacity limit.
// Producers enqueue concurrently; a single consumer pops. Waiters on either
// side park on notify channels that are closed and remade under the mutex, so
// a blocked enqueue can select over "space freed" and "queue closing".
type boundedQueue[T any] struct {
	mu       sync.Mutex
	items    []T
	capacity int // 0 = unbounded

	arrived  chan struct{} // remade after each enqueue
	vacated  chan struct{} // remade after each pop
	closing  bool
	closedCh chan struct{} // closed once when closing begins
}

func newBoundedQueue[T any](capacity int) *boundedQueue[T] {
	return &boundedQueue[T]{
		capacity: capacity,
		arrived:  make(chan struct{}),
		vacated:  make(chan struct{}),
		closedCh: make(chan struct{}),
	}
}

// enqueue appends item. With block=false a full queue fails with ErrQueueFull;
// with block=true the caller is suspended until space frees or the queue
// begins closing. Once closing, enqueue always fails with ErrClosing.
func (q *boundedQueue[T]) enqueue(item T, block bool) error {
	for {
		q.mu.Lock()
		if q.closing {
			q.mu.Unlock()
			return ErrClosing
		}
		if q.capacity == 0 || len(q.items) < q.capacity {
			q.items = append(q.items, item)
			close(q.arrived)
			q.arrived = make(chan struct{})
			q.mu.Unlock()
			return nil
		}
		if !block {
			q.mu.Unlock()
			return ErrQueueFull
		}
		vacated := q.vacated
		q.mu.Unlock()

		select {
		case <-vacated:
			// re-check under the lock; another producer may have won the slot
		case <-q.closedCh:
			return ErrClosing
		}
	}
}

// pop removes the oldest item, blocking until one arrives or the queue is
// closing and empty. The second return is false only in the latter case,
// which guarantees every item enqueued before closing is still delivered.
func (q *boundedQueue[T]) pop() (T, bool) {
	for {
		q.mu.Lock()
		if len(q.items) > 0 {
			item := q.items[0]
			var zero T
			q.items[0] = zero // release the reference
			q.items = q.items[1:]
			if len(q.items) == 0 {
				q.items = nil // let the backing array go
			}
			close(q.vacated)
			q.vacated = make(chan struct{})
			q.mu.Unlock()
			return item, true
		}
		if q.closing {
			q.mu.Unlock()
			var zero T
			return zero, false
		}
		arrived := q.arrived
		q.mu.Unlock()

		select {
		case <-arrived:
		case <-q.closedCh:
		}
	}
}

// close begins teardown: no further enqueues are accepted and all parked
// producers and the consumer are woken. Idempotent.
func (q *boundedQueue[T]) close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closing {
		return
	}
	q.closing = true
	close(q.closedCh)
}

// size returns the current number of queued items.
func (q *boundedQueue[T]) size() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}
