// Package throttle gates requests to a FileMaker Web Publishing Engine.
//
// Web-published databases enforce a server-wide session budget and
// answer error 956 ("Maximum number of database sessions exceeded")
// when it is exhausted. The gate keeps a single request in flight per
// client and can additionally enforce a minimum interval between
// successive submissions.
package throttle

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrClosed is returned when entering a closed gate.
var ErrClosed = errors.New("throttle: gate closed")

// Gate serializes and paces requests. It is safe for concurrent use.
type Gate struct {
	sem       chan struct{}
	closed    chan struct{}
	closeOnce sync.Once

	mu       sync.Mutex
	interval time.Duration
	last     time.Time
}

// New creates a gate. A zero interval disables pacing; requests are
// still serialized.
func New(interval time.Duration) *Gate {
	return &Gate{
		sem:      make(chan struct{}, 1),
		closed:   make(chan struct{}),
		interval: interval,
	}
}

// Enter waits for exclusive access and, when pacing is enabled, for the
// interval since the previous request to elapse. It respects context
// cancellation and fails immediately on a closed gate.
func (g *Gate) Enter(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	// Closed gates win over the racing select below.
	select {
	case <-g.closed:
		return ErrClosed
	default:
	}

	select {
	case <-g.closed:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	case g.sem <- struct{}{}:
	}

	if wait := g.pace(); wait > 0 {
		timer := time.NewTimer(wait)
		defer timer.Stop()

		select {
		case <-ctx.Done():
			g.Leave()
			return ctx.Err()
		case <-g.closed:
			g.Leave()
			return ErrClosed
		case <-timer.C:
		}
	}

	return nil
}

// pace records the submission time and returns how long the caller must
// still wait to honor the configured interval.
func (g *Gate) pace() time.Duration {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.interval <= 0 {
		return 0
	}

	now := time.Now()
	next := g.last.Add(g.interval)
	if g.last.IsZero() || !next.After(now) {
		g.last = now
		return 0
	}

	g.last = next

	return next.Sub(now)
}

// Leave releases the access acquired by Enter.
// Calling Leave without a successful Enter panics.
func (g *Gate) Leave() {
	select {
	case <-g.sem:
	default:
		panic("throttle: Leave called without Enter")
	}
}

// Close fails all pending and future Enter calls. It is idempotent.
func (g *Gate) Close() {
	g.closeOnce.Do(func() {
		close(g.closed)
	})
}
