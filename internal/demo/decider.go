package demo

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/cel-go/cel"

	"github.com/rzbill/relay/internal/roundtrip"
	logpkg "github.com/rzbill/relay/pkg/log"
)

// Decider turns each reported value into an asynchronous accept decision. The
// decision is a CEL expression over the reported value, its position in the
// stream, and the wall clock; it runs off the consumer goroutine after an
// optional delay and resolves the item's completion record. The first false
// decision flips the decider to rejecting: every later value is resolved false
// without evaluation, so the producer's halt is sticky.
type Decider struct {
	prog   cel.Program
	delay  time.Duration
	logger logpkg.Logger

	mu      sync.Mutex
	accepts bool
	index   int64

	wg sync.WaitGroup
}

// NewDecider compiles expr. An empty expression accepts everything.
func NewDecider(expr string, delay time.Duration, logger logpkg.Logger) (*Decider, error) {
	if logger == nil {
		logger = logpkg.NewNopLogger()
	}
	d := &Decider{
		delay:   delay,
		logger:  logger.WithComponent("demo.decider"),
		accepts: true,
	}
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return d, nil
	}
	env, err := cel.NewEnv(
		cel.Variable("value", cel.IntType),
		cel.Variable("index", cel.IntType),
		cel.Variable("now_ms", cel.IntType),
	)
	if err != nil {
		return nil, err
	}
	ast, iss := env.Parse(expr)
	if iss != nil && iss.Err() != nil {
		return nil, fmt.Errorf("demo: parse accept expression: %w", iss.Err())
	}
	checked, iss2 := env.Check(ast)
	if iss2 != nil && iss2.Err() != nil {
		return nil, fmt.Errorf("demo: check accept expression: %w", iss2.Err())
	}
	prog, err := env.Program(checked)
	if err != nil {
		return nil, err
	}
	d.prog = prog
	return d, nil
}

// Decide schedules a decision for value and eventually resolves c. Called on
// the consumer goroutine; the evaluation itself runs elsewhere.
func (d *Decider) Decide(value int64, c *roundtrip.Completion) {
	d.mu.Lock()
	if !d.accepts {
		d.mu.Unlock()
		c.Resolve(false)
		return
	}
	idx := d.index
	d.index++
	d.mu.Unlock()

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		if d.delay > 0 {
			time.Sleep(d.delay)
		}
		ok := d.eval(value, idx)
		if !ok {
			d.mu.Lock()
			d.accepts = false
			d.mu.Unlock()
			d.logger.Debug("decider rejecting",
				logpkg.Int64("value", value),
				logpkg.Int64("index", idx),
			)
		}
		c.Resolve(ok)
	}()
}

// eval returns the expression result; evaluation errors count as rejection.
func (d *Decider) eval(value, idx int64) bool {
	if d.prog == nil {
		return true
	}
	out, _, err := d.prog.Eval(map[string]any{
		"value":  value,
		"index":  idx,
		"now_ms": time.Now().UnixMilli(),
	})
	if err != nil {
		d.logger.Warn("accept expression failed", logpkg.Err(err))
		return false
	}
	accept, isBool := out.Value().(bool)
	return isBool && accept
}

// Accepting reports whether the decider is still accepting values.
func (d *Decider) Accepting() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.accepts
}

// Wait blocks until all scheduled decisions have resolved.
func (d *Decider) Wait() {
	d.wg.Wait()
}
