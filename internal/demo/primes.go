package demo

import (
	"context"
	"fmt"
	"time"

	"github.com/rzbill/relay/internal/bridge"
	"github.com/rzbill/relay/internal/roundtrip"
	"github.com/rzbill/relay/pkg/id"
	logpkg "github.com/rzbill/relay/pkg/log"
)

// PrimeItem is one reported prime in flight between the producer and the
// decider. Done is resolved by the decider; the producer harvests it through
// its registry.
type PrimeItem struct {
	Value int64
	Token id.Token
	Done  *roundtrip.Completion
}

// PrimesOptions configures RunPrimes.
type PrimesOptions struct {
	// ReportEvery reports every Nth prime found.
	ReportEvery int
	// QueueSize bounds the bridge queue. 0 = unbounded.
	QueueSize int
	// Decider resolves each reported prime. Required.
	Decider *Decider
	// Journal records accepted resolutions. Optional.
	Journal *roundtrip.Journal
	Logger  logpkg.Logger
	// OnReport observes each reported prime on the consumer goroutine.
	// Optional.
	OnReport func(int64)
}

// PrimesStats summarizes a run.
type PrimesStats struct {
	Reported  int
	Accepted  int
	Rejected  int
	Abandoned int
	LastPrime int64
}

// RunPrimes runs a prime producer against a single consumer that defers each
// value to an asynchronous accept decision. The producer keeps generating
// until a decision comes back false or ctx is cancelled, then abandons its
// outstanding records and releases the bridge. Accepted resolutions are
// appended to the journal when one is configured.
func RunPrimes(ctx context.Context, opts PrimesOptions) (PrimesStats, error) {
	if opts.Decider == nil {
		return PrimesStats{}, fmt.Errorf("demo: primes needs a decider")
	}
	if opts.ReportEvery < 1 {
		return PrimesStats{}, fmt.Errorf("demo: primes reportEvery must be >= 1")
	}
	logger := opts.Logger
	if logger == nil {
		logger = logpkg.NewNopLogger()
	}
	logger = logger.WithComponent("demo.primes")

	b, err := bridge.New(bridge.Options[PrimeItem]{
		Process: func(it PrimeItem) {
			logger.Debug("prime reported", logpkg.Int64("value", it.Value))
			if opts.OnReport != nil {
				opts.OnReport(it.Value)
			}
			opts.Decider.Decide(it.Value, it.Done)
		},
		Discard: func(it PrimeItem) {
			// The producer has abandoned its records; resolving here would
			// write to memory nobody reads. Drop the item.
		},
		Finalize: func() {
			logger.Debug("prime bridge finalized")
		},
		MaxQueueSize:     opts.QueueSize,
		InitialProducers: 1,
		Logger:           logger,
	})
	if err != nil {
		return PrimesStats{}, err
	}

	statsCh := make(chan PrimesStats, 1)
	go producePrimes(ctx, b, opts, logger, statsCh)

	var runErr error
	select {
	case <-b.Done():
	case <-ctx.Done():
		b.Release(bridge.Abort)
		<-b.Done()
		runErr = ctx.Err()
	}
	opts.Decider.Wait()

	stats := <-statsCh
	logger.Info("primes run finished",
		logpkg.Int("reported", stats.Reported),
		logpkg.Int("accepted", stats.Accepted),
		logpkg.Int("abandoned", stats.Abandoned),
		logpkg.Int64("last_prime", stats.LastPrime),
	)
	return stats, runErr
}

// producePrimes walks the integers with trial division, reports every
// ReportEvery-th prime as a round-trip item, and after each report harvests
// resolved records. A false result halts generation.
func producePrimes(ctx context.Context, b *bridge.Bridge[PrimeItem], opts PrimesOptions, logger logpkg.Logger, statsCh chan<- PrimesStats) {
	registry := roundtrip.NewRegistry()
	var stats PrimesStats
	values := make(map[id.Token]int64)
	halted := false
	voided := false

	harvest := func() {
		for _, res := range registry.TakeResolved() {
			value := values[res.Token]
			delete(values, res.Token)
			if !res.Result {
				logger.Debug("halt requested", logpkg.Int64("value", value))
				stats.Rejected++
				halted = true
				continue
			}
			stats.Accepted++
			if opts.Journal != nil {
				err := opts.Journal.Append(ctx, res.Token, value, res.Result, time.Now().UnixMilli())
				if err != nil {
					logger.Warn("journal append failed", logpkg.Err(err))
				}
			}
		}
	}

	primeCount := 0
outer:
	for candidate := int64(2); ; candidate++ {
		select {
		case <-ctx.Done():
			voided = true
			break outer
		default:
		}

		divisor := int64(2)
		for ; divisor < candidate && candidate%divisor != 0; divisor++ {
		}
		if divisor >= candidate {
			primeCount++
			if primeCount%opts.ReportEvery == 0 {
				tok, c := registry.Track()
				values[tok] = candidate
				if err := b.Call(PrimeItem{Value: candidate, Token: tok, Done: c}, bridge.Blocking); err != nil {
					// ErrClosing: the reference is void.
					registry.Abandon()
					voided = true
					break outer
				}
				stats.Reported++
				stats.LastPrime = candidate
			}
		}

		harvest()
		if halted {
			break
		}
	}

	stats.Abandoned = registry.Abandon()
	if !voided {
		b.Release(bridge.Release)
	}
	statsCh <- stats
}
