package bridge

import (
	"errors"
	"testing"
	"time"
)

func TestQueueFIFO(t *testing.T) {
	q := newBoundedQueue[int](0)
	for i := 0; i < 5; i++ {
		if err := q.enqueue(i, false); err != nil {
			t.Fatalf("enqueue %d: %v", i, err)
		}
	}
	for i := 0; i < 5; i++ {
		got, ok := q.pop()
		if !ok || got != i {
			t.Fatalf("pop %d: got %d ok=%v", i, got, ok)
		}
	}
}

func TestNonBlockingEnqueueFull(t *testing.T) {
	q := newBoundedQueue[int](2)
	if err := q.enqueue(1, false); err != nil {
		t.Fatalf("enqueue 1: %v", err)
	}
	if err := q.enqueue(2, false); err != nil {
		t.Fatalf("enqueue 2: %v", err)
	}
	if err := q.enqueue(3, false); !errors.Is(err, ErrQueueFull) {
		t.Fatalf("want ErrQueueFull, got %v", err)
	}
}

// Third blocking enqueue against capacity 2 must suspend until one item is
// dequeued, then succeed.
func TestBlockingEnqueueWaitsForSpace(t *testing.T) {
	q := newBoundedQueue[int](2)
	_ = q.enqueue(1, true)
	_ = q.enqueue(2, true)

	third := make(chan error, 1)
	go func() { third <- q.enqueue(3, true) }()

	select {
	case err := <-third:
		t.Fatalf("third enqueue returned early: %v", err)
	case <-time.After(50 * time.Millisecond):
	}

	if got, ok := q.pop(); !ok || got != 1 {
		t.Fatalf("pop: got %d ok=%v", got, ok)
	}

	select {
	case err := <-third:
		if err != nil {
			t.Fatalf("third enqueue after drain: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatalf("third enqueue still blocked after drain")
	}
}

func TestCloseUnblocksBlockedEnqueue(t *testing.T) {
	q := newBoundedQueue[int](1)
	_ = q.enqueue(1, true)

	blocked := make(chan error, 1)
	go func() { blocked <- q.enqueue(2, true) }()

	time.Sleep(20 * time.Millisecond)
	q.close()

	select {
	case err := <-blocked:
		if !errors.Is(err, ErrClosing) {
			t.Fatalf("want ErrClosing, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatalf("blocked enqueue not released by close")
	}
}

func TestEnqueueAfterClose(t *testing.T) {
	q := newBoundedQueue[int](0)
	q.close()
	if err := q.enqueue(1, true); !errors.Is(err, ErrClosing) {
		t.Fatalf("want ErrClosing, got %v", err)
	}
	if err := q.enqueue(1, false); !errors.Is(err, ErrClosing) {
		t.Fatalf("want ErrClosing, got %v", err)
	}
}

// Items accepted before close must all drain; pop reports done only after.
func TestPopDrainsAfterClose(t *testing.T) {
	q := newBoundedQueue[int](0)
	for i := 0; i < 3; i++ {
		_ = q.enqueue(i, false)
	}
	q.close()
	for i := 0; i < 3; i++ {
		got, ok := q.pop()
		if !ok || got != i {
			t.Fatalf("drain pop %d: got %d ok=%v", i, got, ok)
		}
	}
	if _, ok := q.pop(); ok {
		t.Fatalf("pop after drain must report done")
	}
}

func TestPopBlocksUntilArrival(t *testing.T) {
	q := newBoundedQueue[string](0)
	got := make(chan string, 1)
	go func() {
		v, ok := q.pop()
		if !ok {
			t.Error("pop returned done unexpectedly")
			return
		}
		got <- v
	}()

	time.Sleep(20 * time.Millisecond)
	if err := q.enqueue("late", false); err != nil {
		t.Fatalf("enqueue: %v", err)
	}

	select {
	case v := <-got:
		if v != "late" {
			t.Fatalf("got %q", v)
		}
	case <-time.After(time.Second):
		t.Fatalf("pop never woke")
	}
}
