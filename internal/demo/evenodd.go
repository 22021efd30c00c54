package demo

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/rzbill/relay/internal/bridge"
	logpkg "github.com/rzbill/relay/pkg/log"
)

// Item is one value emitted by an even/odd producer.
type Item struct {
	Value    int
	Producer int
	// Final marks the producer's last item. The consumer uses it to account
	// for producer completion even when the item is drained after an abort.
	Final bool
}

// EvenOddOptions configures RunEvenOdd.
type EvenOddOptions struct {
	// Producers is the number of generator goroutines. Even-indexed producers
	// emit even values, odd-indexed producers odd values.
	Producers int
	// Iterations is the number of values each producer emits.
	Iterations int
	// QueueSize bounds the bridge queue. 0 = unbounded.
	QueueSize int
	Logger    logpkg.Logger
	// OnValue observes each item on the consumer goroutine. Optional.
	OnValue func(Item)
}

// EvenOddStats summarizes a run.
type EvenOddStats struct {
	Delivered int
	Discarded int
	Completed int
}

// RunEvenOdd starts opts.Producers generator goroutines, funnels their values
// through a bridge to a single consumer, and returns once the bridge has
// finalized. Cancelling ctx aborts the bridge; queued items are discarded but
// Final items still count toward producer completion.
func RunEvenOdd(ctx context.Context, opts EvenOddOptions) (EvenOddStats, error) {
	if opts.Producers < 1 || opts.Iterations < 1 {
		return EvenOddStats{}, fmt.Errorf("demo: evenodd needs at least 1 producer and 1 iteration")
	}
	logger := opts.Logger
	if logger == nil {
		logger = logpkg.NewNopLogger()
	}
	logger = logger.WithComponent("demo.evenodd")

	var delivered, discarded, completed atomic.Int64
	account := func(it Item) {
		if it.Final {
			completed.Add(1)
			logger.Debug("producer completed", logpkg.Int("producer", it.Producer))
		}
	}

	b, err := bridge.New(bridge.Options[Item]{
		Process: func(it Item) {
			delivered.Add(1)
			logger.Debug("value delivered",
				logpkg.Int("producer", it.Producer),
				logpkg.Int("value", it.Value),
			)
			if opts.OnValue != nil {
				opts.OnValue(it)
			}
			account(it)
		},
		Discard: func(it Item) {
			discarded.Add(1)
			account(it)
		},
		Finalize: func() {
			logger.Debug("all producers released")
		},
		MaxQueueSize:     opts.QueueSize,
		InitialProducers: opts.Producers,
		Logger:           logger,
	})
	if err != nil {
		return EvenOddStats{}, err
	}

	for p := 0; p < opts.Producers; p++ {
		go produceEvenOdd(ctx, b, p, opts.Iterations)
	}

	var runErr error
	select {
	case <-b.Done():
	case <-ctx.Done():
		b.Release(bridge.Abort)
		<-b.Done()
		runErr = ctx.Err()
	}

	stats := EvenOddStats{
		Delivered: int(delivered.Load()),
		Discarded: int(discarded.Load()),
		Completed: int(completed.Load()),
	}
	logger.Info("evenodd run finished",
		logpkg.Int("delivered", stats.Delivered),
		logpkg.Int("discarded", stats.Discarded),
		logpkg.Int("completed", stats.Completed),
	)
	return stats, runErr
}

// produceEvenOdd emits the producer's value stream. The producer holds one of
// the bridge's initial references and releases it on exit, except when a call
// reports closing: then the reference is already void and must not be touched.
func produceEvenOdd(ctx context.Context, b *bridge.Bridge[Item], producer, iterations int) {
	for n := 0; n < iterations; n++ {
		select {
		case <-ctx.Done():
			// The run loop aborts the bridge on cancellation, which voids
			// this reference.
			return
		default:
		}
		item := Item{
			Value:    2*n + producer%2,
			Producer: producer,
			Final:    n == iterations-1,
		}
		if err := b.Call(item, bridge.Blocking); err != nil {
			// ErrClosing: the reference is void and must not be released.
			return
		}
	}
	b.Release(bridge.Release)
}
