// Package roundtrip implements the completion protocol layered on top of the
// callback bridge: producers that need an asynchronous boolean answer per
// item attach a Completion to it, and the consumer's environment later
// resolves that Completion through Resolve - the single external entry point
// for registering a result.
//
// A Registry is each producer's private bookkeeping of items it has emitted
// but not yet seen resolved. Only the owning goroutine touches the registry
// structure; the per-record mutex inside each Completion protects just the
// two scalar fields shared with the resolving side, so unrelated producers
// never serialize against each other. Resolution order is not related to
// emission order - the producer harvests with a full scan, not a FIFO pop.
//
// A Journal optionally persists every resolution a producer observes, in the
// style of a completed-items buffer: newest-first listing with a retention
// cap.
package roundtrip
