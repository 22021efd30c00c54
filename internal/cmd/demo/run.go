package demorun

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	cfgpkg "github.com/rzbill/relay/internal/config"
	"github.com/rzbill/relay/internal/demo"
	"github.com/rzbill/relay/internal/roundtrip"
	"github.com/rzbill/relay/internal/runtime"
	logpkg "github.com/rzbill/relay/pkg/log"
)

// Options carries the loaded configuration into a demo run.
type Options struct {
	// DataDir holds the storage root for the resolution journal. Empty uses
	// the platform default.
	DataDir string
	Config  cfgpkg.Config
}

// setup layers a signal context over ctx and builds the process logger from
// the configuration. Stdlib logs (e.g. Pebble) are redirected to it.
func setup(ctx context.Context, cfg cfgpkg.Config) (context.Context, context.CancelFunc, logpkg.Logger, error) {
	sctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)

	if err := cfg.Validate(); err != nil {
		stop()
		return nil, nil, nil, err
	}
	logger, err := logpkg.ApplyConfig(&cfg.Log)
	if err != nil {
		stop()
		return nil, nil, nil, err
	}
	logpkg.RedirectStdLog(logger)
	return sctx, stop, logger, nil
}

// RunEvenOdd runs the even/odd generator demo and blocks until it completes
// or ctx is cancelled.
func RunEvenOdd(ctx context.Context, opts Options) error {
	sctx, stop, logger, err := setup(ctx, opts.Config)
	if err != nil {
		return err
	}
	defer stop()

	cfg := opts.Config
	logger.Info("starting evenodd demo",
		logpkg.Int("producers", cfg.EvenOdd.Producers),
		logpkg.Int("iterations", cfg.EvenOdd.Iterations),
		logpkg.Int("queue_size", cfg.Queue.Capacity),
	)

	_, err = demo.RunEvenOdd(sctx, demo.EvenOddOptions{
		Producers:  cfg.EvenOdd.Producers,
		Iterations: cfg.EvenOdd.Iterations,
		QueueSize:  cfg.Queue.Capacity,
		Logger:     logger,
	})
	if errors.Is(err, context.Canceled) {
		logger.Info("evenodd demo interrupted")
		return nil
	}
	return err
}

// RunPrimes runs the prime round-trip demo and blocks until the accept
// policy halts it or ctx is cancelled.
func RunPrimes(ctx context.Context, opts Options) error {
	sctx, stop, logger, err := setup(ctx, opts.Config)
	if err != nil {
		return err
	}
	defer stop()

	cfg := opts.Config
	decider, err := demo.NewDecider(
		cfg.Primes.Accept,
		time.Duration(cfg.Primes.DecisionDelayMs)*time.Millisecond,
		logger,
	)
	if err != nil {
		return err
	}

	var journal *roundtrip.Journal
	if cfg.Primes.JournalDir != "none" {
		dataDir := opts.DataDir
		if dataDir == "" {
			dataDir = cfg.Primes.JournalDir
		}
		if dataDir == "" {
			dataDir = cfgpkg.DefaultDataDir()
		}
		rt, err := runtime.Open(runtime.Options{
			DataDir: filepath.Join(dataDir, "store"),
			Config:  cfg,
		})
		if err != nil {
			return err
		}
		defer rt.Close()
		journal = rt.Journal("primes", cfg.Primes.JournalMax)
	}

	logger.Info("starting primes demo",
		logpkg.Int("report_every", cfg.Primes.ReportEvery),
		logpkg.Str("accept", cfg.Primes.Accept),
		logpkg.Bool("journal", journal != nil),
	)

	_, err = demo.RunPrimes(sctx, demo.PrimesOptions{
		ReportEvery: cfg.Primes.ReportEvery,
		QueueSize:   cfg.Queue.Capacity,
		Decider:     decider,
		Journal:     journal,
		Logger:      logger,
	})
	if errors.Is(err, context.Canceled) {
		logger.Info("primes demo interrupted")
		return nil
	}
	return err
}
