// Package bridge implements a many-producer, single-consumer callback bridge.
//
// A Bridge lets any number of producer goroutines hand items to exactly one
// consumer goroutine that owns a non-goroutine-safe environment. The consumer
// side is a dedicated dispatch loop started by New; producers interact only
// through Acquire, Call, and Release.
//
// # Lifecycle
//
// A bridge moves through three states:
//
//	open    - producers may acquire references and call
//	closing - teardown has begun; calls fail with ErrClosing
//	closed  - queue drained, finalize has run, all resources released
//
// The bridge begins closing when the producer reference count reaches zero,
// or immediately when any holder releases with Abort. Items already queued at
// that point are still drained: through the Process callback on a normal
// close, or through the Discard hook after an abort, since the callback's
// environment is no longer valid then. The Finalize callback runs exactly
// once, after the queue is empty and the reference count is zero, and never
// concurrently with Process.
//
// # Producer protocol
//
//	if err := b.Acquire(); err != nil { return }
//	for _, item := range work {
//	    if err := b.Call(item, bridge.Blocking); errors.Is(err, bridge.ErrClosing) {
//	        return // teardown began elsewhere; the reference is already void
//	    }
//	}
//	b.Release(bridge.Release)
//
// Items from a single producer reach the consumer in call order. No order is
// guaranteed between different producers.
//
// # Errors
//
// ErrClosing and ErrQueueFull are control-flow signals producers must check,
// not failures. Misuse of the lifecycle (releasing a reference that was never
// acquired, calling after the bridge is closed) is a contract violation and
// panics rather than corrupting state.
package bridge
