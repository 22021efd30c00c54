package bridge

import "errors"

// Control-flow signals returned by Call and Acquire. These are expected
// outcomes the caller reacts to, not failures.
var (
	// ErrClosing reports that teardown has begun. The caller must stop
	// producing immediately and make no further calls through the bridge.
	ErrClosing = errors.New("bridge: closing")

	// ErrQueueFull reports that a non-blocking call found a bounded queue at
	// capacity. The caller may retry, back off, or drop the item.
	ErrQueueFull = errors.New("bridge: queue full")

	// ErrClosed reports that the bridge has already been fully torn down.
	ErrClosed = errors.New("bridge: closed")
)

// CallMode selects how Call behaves against a full queue.
type CallMode int

const (
	// Blocking suspends the caller until space frees or the bridge closes.
	Blocking CallMode = iota
	// NonBlocking fails immediately with ErrQueueFull when the queue is full.
	NonBlocking
)

// String returns the mode name for logs.
func (m CallMode) String() string {
	switch m {
	case Blocking:
		return "blocking"
	case NonBlocking:
		return "non_blocking"
	default:
		return "unknown"
	}
}

// ReleaseMode selects how Release treats the bridge as a whole.
type ReleaseMode int

const (
	// Release drops one producer reference.
	Release ReleaseMode = iota
	// Abort drops all references and forces the bridge into closing
	// regardless of other holders. Queued items are drained through the
	// Discard hook rather than the Process callback.
	Abort
)

// String returns the mode name for logs.
func (m ReleaseMode) String() string {
	switch m {
	case Release:
		return "release"
	case Abort:
		return "abort"
	default:
		return "unknown"
	}
}
