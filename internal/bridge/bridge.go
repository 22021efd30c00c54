package bridge

import (
	"errors"

	logpkg "github.com/rzbill/relay/pkg/log"
)

// Options configures a Bridge.
type Options[T any] struct {
	// Process handles one item on the consumer goroutine. Required. It must
	// not block indefinitely; the dispatch loop runs items one at a time.
	Process func(item T)
	// Finalize runs exactly once, after the queue is drained and the last
	// reference is released. Optional.
	Finalize func()
	// Discard receives items drained after an abort, when Process can no
	// longer run. Cleanup tied to item delivery belongs here. Optional.
	Discard func(item T)
	// MaxQueueSize bounds the pending-item queue. 0 means unbounded.
	MaxQueueSize int
	// InitialProducers is the reference count the bridge starts with.
	// Defaults to 1; the creator holds those references and must release
	// them.
	InitialProducers int
	// Logger receives lifecycle events at debug level. Optional.
	Logger logpkg.Logger
}

// Bridge funnels items from any number of producer goroutines to one consumer
// goroutine. See the package documentation for the full protocol.
type Bridge[T any] struct {
	queue     *boundedQueue[T]
	lifecycle *lifecycle[T]
	logger    logpkg.Logger
	done      chan struct{}
}

// New validates opts, creates the bridge, and starts its dispatch goroutine.
func New[T any](opts Options[T]) (*Bridge[T], error) {
	if opts.Process == nil {
		return nil, errors.New("bridge: Options.Process is required")
	}
	if opts.MaxQueueSize < 0 {
		return nil, errors.New("bridge: Options.MaxQueueSize must be >= 0")
	}
	if opts.InitialProducers < 0 {
		return nil, errors.New("bridge: Options.InitialProducers must be >= 0")
	}
	if opts.InitialProducers == 0 {
		opts.InitialProducers = 1
	}
	logger := opts.Logger
	if logger == nil {
		logger = logpkg.NewNopLogger()
	}

	queue := newBoundedQueue[T](opts.MaxQueueSize)
	lc := newLifecycle(queue, opts.InitialProducers)
	b := &Bridge[T]{
		queue:     queue,
		lifecycle: lc,
		logger:    logger,
		done:      make(chan struct{}),
	}

	d := &dispatcher[T]{
		queue:     queue,
		lifecycle: lc,
		process:   opts.Process,
		finalize:  opts.Finalize,
		discard:   opts.Discard,
		logger:    logger,
		done:      b.done,
	}
	go d.run()

	logger.Debug("bridge created",
		logpkg.Int("max_queue_size", opts.MaxQueueSize),
		logpkg.Int("initial_producers", opts.InitialProducers),
	)
	return b, nil
}

// Acquire adds a producer reference. Each producer acquires once, before its
// first Call. Returns ErrClosing once teardown has begun and ErrClosed once
// the bridge is gone.
func (b *Bridge[T]) Acquire() error {
	return b.lifecycle.acquire()
}

// Call enqueues item for the consumer. A nil return means the item is owned
// by the bridge until delivery. ErrClosing means teardown has begun: the
// caller must stop producing and must not touch the bridge again through this
// reference. ErrQueueFull can only occur in NonBlocking mode against a
// bounded queue.
func (b *Bridge[T]) Call(item T, mode CallMode) error {
	if b.lifecycle.state() == stateClosed {
		panic("bridge: call after close")
	}
	return b.queue.enqueue(item, mode == Blocking)
}

// Release drops a producer reference, or with Abort forces teardown
// regardless of remaining references. When the count reaches zero the queue
// is drained and Finalize runs on the consumer goroutine.
func (b *Bridge[T]) Release(mode ReleaseMode) {
	b.logger.Debug("bridge release", logpkg.Str("mode", mode.String()))
	b.lifecycle.release(mode)
}

// Done returns a channel closed after Finalize has run and the bridge has
// reached its terminal state.
func (b *Bridge[T]) Done() <-chan struct{} {
	return b.done
}

// Pending returns the number of items queued but not yet delivered.
func (b *Bridge[T]) Pending() int {
	return b.queue.size()
}
