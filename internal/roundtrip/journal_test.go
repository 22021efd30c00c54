package roundtrip

import (
	"context"
	"testing"

	pebblestore "github.com/rzbill/relay/internal/storage/pebble"
	"github.com/rzbill/relay/pkg/id"
)

func openTestJournal(t *testing.T) *Journal {
	t.Helper()
	db, err := pebblestore.Open(pebblestore.Options{DataDir: t.TempDir()})
	if err != nil {
		t.Fatalf("open pebble: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return OpenJournal(db, "test")
}

func TestAppendAndListNewestFirst(t *testing.T) {
	j := openTestJournal(t)
	ctx := context.Background()
	gen := id.NewGenerator()

	for i := int64(0); i < 5; i++ {
		if err := j.Append(ctx, gen.Next(), i, i%2 == 0, 1000+i); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	entries, err := j.List(ctx, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 5 {
		t.Fatalf("listed %d entries, want 5", len(entries))
	}
	for i, e := range entries {
		if want := int64(4 - i); e.Value != want {
			t.Fatalf("entry %d has value %d, want %d (newest first)", i, e.Value, want)
		}
	}

	limited, err := j.List(ctx, 2)
	if err != nil || len(limited) != 2 {
		t.Fatalf("limited list: %v %v", limited, err)
	}
}

func TestRetentionTrimsOldest(t *testing.T) {
	j := openTestJournal(t)
	j.SetRetention(3)
	ctx := context.Background()
	gen := id.NewGenerator()

	for i := int64(0); i < 6; i++ {
		if err := j.Append(ctx, gen.Next(), i, true, 0); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	count, err := j.Count(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 3 {
		t.Fatalf("count = %d, want 3 after trim", count)
	}
	entries, err := j.List(ctx, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	for _, e := range entries {
		if e.Value < 3 {
			t.Fatalf("old entry %d survived trim", e.Value)
		}
	}
}
