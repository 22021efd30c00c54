package bridge

import (
	logpkg "github.com/rzbill/relay/pkg/log"
)

// dispatcher is the single consumer context. Exactly one goroutine runs run;
// the Process callback is therefore never entered concurrently with itself or
// with Finalize.
type dispatcher[T any] struct {
	queue     *boundedQueue[T]
	lifecycle *lifecycle[T]
	process   func(T)
	finalize  func()
	discard   func(T)
	logger    logpkg.Logger
	done      chan struct{}
}

// run pops items until the queue is drained and closing, invoking Process for
// each one - or Discard once an abort has voided the callback's environment.
// It then waits for the reference count to reach zero, runs Finalize exactly
// once, and marks the bridge closed.
func (d *dispatcher[T]) run() {
	for {
		item, ok := d.queue.pop()
		if !ok {
			break
		}
		if d.lifecycle.isAborted() {
			// The processing environment is gone, but cleanup that would have
			// happened as a side effect of processing must still happen.
			if d.discard != nil {
				d.discard(item)
			}
			continue
		}
		d.process(item)
	}

	// An abort can close the queue while producers still hold references;
	// destruction additionally requires the count to have reached zero.
	<-d.lifecycle.zero()

	if d.finalize != nil {
		d.finalize()
	}
	d.lifecycle.markClosed()
	d.logger.Debug("bridge finalized")
	close(d.done)
}
