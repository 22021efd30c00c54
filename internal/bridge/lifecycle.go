package bridge

import "sync"

// state is the bridge lifecycle. Transitions are one-way:
// open -> closing (refs hit zero, or abort) -> closed (queue drained).
type state int

const (
	stateOpen state = iota
	stateClosing
	stateClosed
)

func (s state) String() string {
	switch s {
	case stateOpen:
		return "open"
	case stateClosing:
		return "closing"
	case stateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// lifecycle owns the producer reference count and drives the state machine
// over the queue. The count and state share one mutex; they are the only
// structures mutated by multiple producers.
type lifecycle[T any] struct {
	mu      sync.Mutex
	st      state
	refs    int
	aborted bool
	queue   *boundedQueue[T]
	zeroCh  chan struct{} // closed once when refs first reaches zero
}

func newLifecycle[T any](queue *boundedQueue[T], initialRefs int) *lifecycle[T] {
	return &lifecycle[T]{
		queue:  queue,
		refs:   initialRefs,
		zeroCh: make(chan struct{}),
	}
}

// acquire adds a producer reference. It fails with ErrClosing once teardown
// has begun and ErrClosed once the bridge is fully torn down.
func (lc *lifecycle[T]) acquire() error {
	lc.mu.Lock()
	defer lc.mu.Unlock()
	switch lc.st {
	case stateClosed:
		return ErrClosed
	case stateClosing:
		return ErrClosing
	}
	lc.refs++
	return nil
}

// release drops a producer reference. When the count reaches zero the bridge
// begins closing; Abort forces closing at once and voids every outstanding
// reference, so producers that observe ErrClosing simply stop without a
// matching release. An Abort that lands once teardown has already begun is a
// no-op, whichever side started the teardown. Releasing a reference that was
// never acquired is a contract violation and panics.
func (lc *lifecycle[T]) release(mode ReleaseMode) {
	lc.mu.Lock()
	if lc.aborted {
		// References were voided by the abort; a release racing with it or
		// arriving after it is benign, even once the bridge has closed.
		lc.mu.Unlock()
		return
	}
	if mode == Abort {
		if lc.st != stateOpen {
			// The last release already started (or finished) teardown; there
			// is nothing left for the abort to cut short. zeroCh is closed.
			lc.mu.Unlock()
			return
		}
		lc.aborted = true
		lc.refs = 0
		lc.st = stateClosing
		close(lc.zeroCh)
		lc.mu.Unlock()
		lc.queue.close()
		return
	}
	if lc.st == stateClosed {
		lc.mu.Unlock()
		panic("bridge: release after close")
	}
	if lc.refs <= 0 {
		lc.mu.Unlock()
		panic("bridge: release without matching acquire")
	}
	lc.refs--
	if lc.refs > 0 {
		lc.mu.Unlock()
		return
	}
	lc.st = stateClosing
	close(lc.zeroCh)
	lc.mu.Unlock()
	lc.queue.close()
}

// markClosed records the terminal state. Called by the dispatcher exactly
// once, after the queue is drained and the count is zero.
func (lc *lifecycle[T]) markClosed() {
	lc.mu.Lock()
	defer lc.mu.Unlock()
	lc.st = stateClosed
}

// state returns the current lifecycle state.
func (lc *lifecycle[T]) state() state {
	lc.mu.Lock()
	defer lc.mu.Unlock()
	return lc.st
}

// isAborted reports whether teardown was forced via Abort.
func (lc *lifecycle[T]) isAborted() bool {
	lc.mu.Lock()
	defer lc.mu.Unlock()
	return lc.aborted
}

// zero returns a channel closed once the reference count has reached zero.
func (lc *lifecycle[T]) zero() <-chan struct{} {
	return lc.zeroCh
}
