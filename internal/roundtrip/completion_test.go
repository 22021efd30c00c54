package roundtrip

import (
	"sync"
	"testing"
	"time"
)

func TestResolveTakesEffectOnce(t *testing.T) {
	c := NewCompletion()
	if resolved, _ := c.State(); resolved {
		t.Fatalf("fresh record must be unresolved")
	}
	if !c.Resolve(true) {
		t.Fatalf("first resolve must take effect")
	}
	if c.Resolve(false) {
		t.Fatalf("second resolve must be rejected")
	}
	resolved, result := c.State()
	if !resolved || !result {
		t.Fatalf("state = (%v, %v), want (true, true)", resolved, result)
	}
}

func TestConcurrentResolversExactlyOneWins(t *testing.T) {
	c := NewCompletion()
	const racers = 16
	var wg sync.WaitGroup
	wins := make(chan bool, racers)
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func(result bool) {
			defer wg.Done()
			if c.Resolve(result) {
				wins <- result
			}
		}(i%2 == 0)
	}
	wg.Wait()
	close(wins)

	var winners []bool
	for w := range wins {
		winners = append(winners, w)
	}
	if len(winners) != 1 {
		t.Fatalf("%d resolvers took effect, want exactly 1", len(winners))
	}
	resolved, result := c.State()
	if !resolved || result != winners[0] {
		t.Fatalf("stored result %v does not match winner %v", result, winners[0])
	}
}

func TestResolutionVisibleToPoller(t *testing.T) {
	c := NewCompletion()
	go func() {
		time.Sleep(10 * time.Millisecond)
		c.Resolve(true)
	}()
	deadline := time.Now().Add(5 * time.Second)
	for {
		if resolved, result := c.State(); resolved {
			if !result {
				t.Fatalf("result = false, want true")
			}
			return
		}
		if time.Now().After(deadline) {
			t.Fatalf("resolution never observed")
		}
		time.Sleep(time.Millisecond)
	}
}
