package demo

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestRunEvenOddDeliversAll(t *testing.T) {
	const producers, iterations = 3, 20

	var mu sync.Mutex
	perProducer := make(map[int][]int)

	stats, err := RunEvenOdd(context.Background(), EvenOddOptions{
		Producers:  producers,
		Iterations: iterations,
		OnValue: func(it Item) {
			mu.Lock()
			perProducer[it.Producer] = append(perProducer[it.Producer], it.Value)
			mu.Unlock()
		},
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if stats.Delivered != producers*iterations {
		t.Fatalf("delivered %d, want %d", stats.Delivered, producers*iterations)
	}
	if stats.Discarded != 0 {
		t.Fatalf("discarded %d, want 0", stats.Discarded)
	}
	if stats.Completed != producers {
		t.Fatalf("completed %d producers, want %d", stats.Completed, producers)
	}

	// Each producer's stream arrives in emission order with the right parity.
	for p := 0; p < producers; p++ {
		values := perProducer[p]
		if len(values) != iterations {
			t.Fatalf("producer %d delivered %d values, want %d", p, len(values), iterations)
		}
		for n, v := range values {
			if want := 2*n + p%2; v != want {
				t.Fatalf("producer %d value %d = %d, want %d", p, n, v, want)
			}
		}
	}
}

func TestRunEvenOddBoundedQueue(t *testing.T) {
	stats, err := RunEvenOdd(context.Background(), EvenOddOptions{
		Producers:  4,
		Iterations: 50,
		QueueSize:  2,
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if stats.Delivered != 200 || stats.Completed != 4 {
		t.Fatalf("stats = %+v, want 200 delivered from 4 producers", stats)
	}
}

func TestRunEvenOddCancelAborts(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	started := make(chan struct{})
	var once sync.Once
	go func() {
		<-started
		cancel()
	}()

	stats, err := RunEvenOdd(ctx, EvenOddOptions{
		Producers:  2,
		Iterations: 1_000_000,
		QueueSize:  4,
		OnValue: func(Item) {
			once.Do(func() { close(started) })
			<-ctx.Done()
		},
	})
	if err != context.Canceled {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if stats.Delivered+stats.Discarded >= 2_000_000 {
		t.Fatalf("run did not stop early: %+v", stats)
	}
}

func TestRunEvenOddValidatesOptions(t *testing.T) {
	if _, err := RunEvenOdd(context.Background(), EvenOddOptions{Producers: 0, Iterations: 5}); err == nil {
		t.Fatalf("zero producers must be rejected")
	}
	if _, err := RunEvenOdd(context.Background(), EvenOddOptions{Producers: 1, Iterations: 0}); err == nil {
		t.Fatalf("zero iterations must be rejected")
	}
}

func TestRunEvenOddFinishesPromptly(t *testing.T) {
	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = RunEvenOdd(context.Background(), EvenOddOptions{Producers: 1, Iterations: 1})
	}()
	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatalf("single-item run hung")
	}
}
