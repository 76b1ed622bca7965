package graph

import (
	"context"
	"time"

	"go.uber.org/atomic"
)

// Animator requests a redraw at a fixed interval, optionally running a
// callback first, e.g. to advance a phase parameter.
//
// Ticks are delivered on C for the event loop to pass to Fire, which keeps
// all drawing on one goroutine. Nothing is queued because the ticker channel
// holds at most one pending tick. The busy flag only makes a Fire reached
// from inside its own callback or redraw a dropped tick; it does not make
// Fire safe to call from several goroutines.
type Animator struct {
	ticker  *time.Ticker
	onTick  func()
	redraw  func()
	busy    *atomic.Bool
	stopped *atomic.Bool
	done    chan struct{}
	dropped *atomic.Int64
}

func newAnimator(interval time.Duration, onTick, redraw func()) *Animator {
	return &Animator{
		ticker:  time.NewTicker(interval),
		onTick:  onTick,
		redraw:  redraw,
		busy:    atomic.NewBool(false),
		stopped: atomic.NewBool(false),
		done:    make(chan struct{}),
		dropped: atomic.NewInt64(0),
	}
}

// C delivers ticks.
func (a *Animator) C() <-chan time.Time {
	return a.ticker.C
}

// Done is closed by Stop.
func (a *Animator) Done() <-chan struct{} {
	return a.done
}

// Fire runs the callback and the redraw for one tick. It returns false when
// the animator is stopped or Fire is already running further up the stack.
func (a *Animator) Fire() bool {
	if a.stopped.Load() {
		return false
	}
	if !a.busy.CompareAndSwap(false, true) {
		a.dropped.Inc()
		return false
	}
	defer a.busy.Store(false)

	if a.onTick != nil {
		a.onTick()
	}
	if a.redraw != nil {
		a.redraw()
	}
	return true
}

// Dropped returns how many ticks Fire skipped because a frame was in flight.
func (a *Animator) Dropped() int64 {
	return a.dropped.Load()
}

// Stop stops the ticker. It is safe to call more than once.
func (a *Animator) Stop() {
	if a.stopped.CompareAndSwap(false, true) {
		a.ticker.Stop()
		close(a.done)
	}
}

// Running reports whether Stop has not been called.
func (a *Animator) Running() bool {
	return !a.stopped.Load()
}

// Run fires on every tick until ctx is cancelled or Stop is called. Use it
// when the animator is the only event source of the calling goroutine.
func (a *Animator) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			a.Stop()
			return
		case <-a.done:
			return
		case <-a.ticker.C:
			a.Fire()
		}
	}
}

// StartAnimation starts redrawing every interval, calling onTick (which may
// be nil) before each redraw. A running animation is stopped first.
func (g *Graph) StartAnimation(interval time.Duration, onTick func()) *Animator {
	g.StopAnimation()
	g.animator = newAnimator(interval, onTick, g.RequestRedraw)
	tracer().Debugf("animation started, interval %v", interval)
	return g.animator
}

// StopAnimation stops the running animation, if any.
func (g *Graph) StopAnimation() {
	if g.animator == nil {
		return
	}
	g.animator.Stop()
	g.animator = nil
}

// Animation returns the running animator or nil.
func (g *Graph) Animation() *Animator {
	return g.animator
}
