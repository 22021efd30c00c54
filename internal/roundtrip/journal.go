package roundtrip

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	pebblestore "github.com/rzbill/relay/internal/storage/pebble"
	"github.com/rzbill/relay/pkg/id"
)

// JournalEntry records one observed resolution.
type JournalEntry struct {
	Token        string `json:"token"`
	Value        int64  `json:"value"`
	Result       bool   `json:"result"`
	ResolvedAtMs int64  `json:"resolvedAtMs"`
}

// Journal persists resolutions a producer has observed. Tokens are
// time-ordered, so ascending key order is creation order and retention can
// trim from the front.
type Journal struct {
	db         *pebblestore.DB
	scope      string
	maxEntries int
}

// OpenJournal returns a journal storing entries under the given scope.
func OpenJournal(db *pebblestore.DB, scope string) *Journal {
	return &Journal{db: db, scope: scope, maxEntries: 1000}
}

// SetRetention caps the number of stored entries. Values <= 0 keep the
// current cap.
func (j *Journal) SetRetention(maxEntries int) {
	if maxEntries > 0 {
		j.maxEntries = maxEntries
	}
}

func (j *Journal) prefix() []byte {
	return []byte("rt/" + j.scope + "/res/")
}

func (j *Journal) key(token id.Token) []byte {
	return append(j.prefix(), token[:]...)
}

// Append stores the resolution for token. nowMs <= 0 uses the current time.
func (j *Journal) Append(ctx context.Context, token id.Token, value int64, result bool, nowMs int64) error {
	if nowMs <= 0 {
		nowMs = time.Now().UnixMilli()
	}
	entry := JournalEntry{
		Token:        token.String(),
		Value:        value,
		Result:       result,
		ResolvedAtMs: nowMs,
	}
	val, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encode entry: %w", err)
	}
	if err := j.db.Set(j.key(token), val); err != nil {
		return fmt.Errorf("write entry: %w", err)
	}
	return j.trim(ctx)
}

// List returns up to limit entries, newest first.
func (j *Journal) List(ctx context.Context, limit int) ([]JournalEntry, error) {
	if limit <= 0 {
		limit = 100
	}
	iter, err := j.db.NewIter(pebblestore.PrefixBounds(j.prefix()))
	if err != nil {
		return nil, fmt.Errorf("create iterator: %w", err)
	}
	defer iter.Close()

	entries := make([]JournalEntry, 0, limit)
	for ok := iter.Last(); ok && len(entries) < limit; ok = iter.Prev() {
		var entry JournalEntry
		if err := json.Unmarshal(iter.Value(), &entry); err != nil {
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// Count returns the number of stored entries.
func (j *Journal) Count(ctx context.Context) (int, error) {
	iter, err := j.db.NewIter(pebblestore.PrefixBounds(j.prefix()))
	if err != nil {
		return 0, fmt.Errorf("create iterator: %w", err)
	}
	defer iter.Close()
	n := 0
	for ok := iter.First(); ok; ok = iter.Next() {
		n++
	}
	return n, nil
}

// trim deletes the oldest entries beyond the retention cap.
func (j *Journal) trim(ctx context.Context) error {
	count, err := j.Count(ctx)
	if err != nil {
		return err
	}
	excess := count - j.maxEntries
	if excess <= 0 {
		return nil
	}

	iter, err := j.db.NewIter(pebblestore.PrefixBounds(j.prefix()))
	if err != nil {
		return fmt.Errorf("create iterator: %w", err)
	}
	defer iter.Close()

	b := j.db.NewBatch()
	defer b.Close()
	for ok := iter.First(); ok && excess > 0; ok = iter.Next() {
		if err := b.Delete(append([]byte(nil), iter.Key()...), nil); err != nil {
			return fmt.Errorf("delete entry: %w", err)
		}
		excess--
	}
	return j.db.CommitBatch(ctx, b)
}
