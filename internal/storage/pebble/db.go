package pebblestore

import (
	"context"
	"errors"

	"github.com/cockroachdb/pebble"
)

// ErrNotFound is returned by Get for missing keys.
var ErrNotFound = pebble.ErrNotFound

// Options configures the store.
type Options struct {
	// DataDir is the path to the Pebble database directory. Required.
	DataDir string
	// NoSync skips WAL fsync on commits. Journal writes are low-rate, so the
	// default is durable commits.
	NoSync bool
	// PebbleOptions allows advanced tuning. If nil, Pebble defaults are used.
	PebbleOptions *pebble.Options
}

// DB wraps a Pebble database instance with a fixed sync policy.
type DB struct {
	inner *pebble.DB
	sync  *pebble.WriteOptions
}

// Open creates or opens a Pebble database with the provided options.
func Open(opts Options) (*DB, error) {
	if opts.DataDir == "" {
		return nil, errors.New("pebblestore: Options.DataDir is required")
	}
	po := opts.PebbleOptions
	if po == nil {
		po = &pebble.Options{}
	}
	inner, err := pebble.Open(opts.DataDir, po)
	if err != nil {
		return nil, err
	}
	db := &DB{inner: inner, sync: pebble.Sync}
	if opts.NoSync {
		db.sync = pebble.NoSync
	}
	return db, nil
}

// Close closes the database.
func (db *DB) Close() error {
	if db == nil || db.inner == nil {
		return nil
	}
	return db.inner.Close()
}

// NewBatch creates a batch for atomic multi-key updates.
func (db *DB) NewBatch() *pebble.Batch {
	return db.inner.NewBatch()
}

// CommitBatch commits the batch under the configured sync policy.
func (db *DB) CommitBatch(_ context.Context, b *pebble.Batch) error {
	if b == nil {
		return errors.New("pebblestore: nil batch")
	}
	return b.Commit(db.sync)
}

// Set writes a single key.
func (db *DB) Set(key, value []byte) error {
	return db.inner.Set(key, value, db.sync)
}

// Delete removes a single key.
func (db *DB) Delete(key []byte) error {
	return db.inner.Delete(key, db.sync)
}

// Get returns a copy of the value for key, or ErrNotFound.
func (db *DB) Get(key []byte) ([]byte, error) {
	val, closer, err := db.inner.Get(key)
	if err != nil {
		return nil, err
	}
	defer closer.Close()
	return append([]byte(nil), val...), nil
}

// NewIter creates a raw Pebble iterator with the provided options.
func (db *DB) NewIter(opts *pebble.IterOptions) (*pebble.Iterator, error) {
	return db.inner.NewIter(opts)
}

// PrefixBounds returns iterator bounds covering exactly the keys starting
// with prefix. The upper bound is the prefix's successor: the last non-0xFF
// byte incremented, the tail dropped. A prefix of all 0xFF bytes has no
// successor; the upper bound is then left open.
func PrefixBounds(prefix []byte) *pebble.IterOptions {
	var hi []byte
	for i := len(prefix) - 1; i >= 0; i-- {
		if prefix[i] != 0xFF {
			hi = append([]byte(nil), prefix[:i+1]...)
			hi[i]++
			break
		}
	}
	return &pebble.IterOptions{LowerBound: prefix, UpperBound: hi}
}
