package runtime

import (
	"context"
	"errors"

	cfgpkg "github.com/rzbill/relay/internal/config"
	"github.com/rzbill/relay/internal/roundtrip"
	pebblestore "github.com/rzbill/relay/internal/storage/pebble"
)

// Options for building the Runtime.
type Options struct {
	DataDir string
	Config  cfgpkg.Config
}

// Runtime wires storage and config for a single process.
type Runtime struct {
	db     *pebblestore.DB
	config cfgpkg.Config
}

// Open initializes the underlying storage and returns a Runtime.
func Open(opts Options) (*Runtime, error) {
	db, err := pebblestore.Open(pebblestore.Options{DataDir: opts.DataDir})
	if err != nil {
		return nil, err
	}
	return &Runtime{db: db, config: opts.Config}, nil
}

// Close closes underlying resources.
func (r *Runtime) Close() error {
	if r.db == nil {
		return nil
	}
	return r.db.Close()
}

// CheckHealth performs a simple health check against the storage engine.
func (r *Runtime) CheckHealth(ctx context.Context) error {
	if r.db == nil {
		return errors.New("db not open")
	}
	it, err := r.db.NewIter(nil)
	if err != nil {
		return err
	}
	return it.Close()
}

// Journal opens the resolution journal for the given scope, capped at
// maxEntries when positive.
func (r *Runtime) Journal(scope string, maxEntries int) *roundtrip.Journal {
	j := roundtrip.OpenJournal(r.db, scope)
	if maxEntries > 0 {
		j.SetRetention(maxEntries)
	}
	return j
}

// DB exposes the underlying DB for advanced operations (internal use only).
func (r *Runtime) DB() *pebblestore.DB { return r.db }

// Config returns the runtime configuration.
func (r *Runtime) Config() cfgpkg.Config { return r.config }
