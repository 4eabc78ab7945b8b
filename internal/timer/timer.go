// Package timer implements the per-question countdown. Remaining time is
// derived from wall-clock deltas rather than accumulated tick decrements,
// so repeated pause/resume cycles never drift, and the expiry callback is
// guaranteed to fire at most once per countdown.
package timer

import (
	"math"
	"sync"
	"time"

	"github.com/CodingManiac11/ai-interview-assistant/internal/clock"
)

const tickInterval = time.Second

// Timer counts a configured duration down to zero and fires an expiry
// callback exactly once. Reset and Stop cancel any outstanding scheduled
// tick, so a ghost expiry can never fire after the caller has moved on.
type Timer struct {
	mu       sync.Mutex
	clk      clock.Clock
	onExpire func()

	duration  time.Duration // configured countdown
	remaining time.Duration // frozen remainder while paused or stopped
	startedAt time.Time     // instant of the last Start/Resume
	running   bool
	paused    bool

	// gen invalidates scheduled ticks: every state transition bumps it and
	// a tick carrying a stale generation is discarded.
	gen  uint64
	tick clock.Waiter
}

// New creates a stopped timer with a zero duration.
func New(clk clock.Clock) *Timer {
	return &Timer{clk: clk}
}

// Reset cancels any pending countdown and reinitializes to d. onExpire is
// bound to this countdown and invoked without any timer lock held; callers
// can close over whatever context identifies the countdown so a signal
// delivered late is recognizable as stale.
func (t *Timer) Reset(d time.Duration, onExpire func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cancelTickLocked()
	t.onExpire = onExpire
	t.duration = d
	t.remaining = d
	t.running = false
	t.paused = false
}

// Start begins counting down from the configured duration.
func (t *Timer) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.running || t.remaining <= 0 {
		return
	}
	t.running = true
	t.paused = false
	t.startedAt = t.clk.Now()
	t.scheduleTickLocked()
}

// Pause freezes the remaining time, capturing the elapsed wall-clock
// duration since the last Start or Resume.
func (t *Timer) Pause() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.running || t.paused {
		return
	}
	t.remaining -= t.clk.Now().Sub(t.startedAt)
	if t.remaining < 0 {
		t.remaining = 0
	}
	t.running = false
	t.paused = true
	t.cancelTickLocked()
}

// Resume continues from the frozen remaining time.
func (t *Timer) Resume() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.paused || t.remaining <= 0 {
		return
	}
	t.paused = false
	t.running = true
	t.startedAt = t.clk.Now()
	t.scheduleTickLocked()
}

// Stop cancels the countdown without resetting the duration.
func (t *Timer) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.running {
		t.remaining -= t.clk.Now().Sub(t.startedAt)
		if t.remaining < 0 {
			t.remaining = 0
		}
	}
	t.running = false
	t.paused = false
	t.cancelTickLocked()
}

// TimeLeft reports the remaining whole seconds, rounded up so a freshly
// started timer reads its full duration.
func (t *Timer) TimeLeft() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return int(math.Ceil(t.leftLocked().Seconds()))
}

// Elapsed reports whole seconds consumed out of the configured duration.
func (t *Timer) Elapsed() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	elapsed := int(t.duration.Seconds()) - int(math.Ceil(t.leftLocked().Seconds()))
	if elapsed < 0 {
		return 0
	}
	return elapsed
}

func (t *Timer) IsRunning() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.running
}

func (t *Timer) IsPaused() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.paused
}

func (t *Timer) leftLocked() time.Duration {
	left := t.remaining
	if t.running {
		left -= t.clk.Now().Sub(t.startedAt)
	}
	if left < 0 {
		return 0
	}
	return left
}

func (t *Timer) cancelTickLocked() {
	t.gen++
	if t.tick != nil {
		t.tick.Stop()
		t.tick = nil
	}
}

func (t *Timer) scheduleTickLocked() {
	interval := tickInterval
	if left := t.leftLocked(); left < interval {
		interval = left
	}
	gen := t.gen
	t.tick = t.clk.AfterFunc(interval, func() { t.onTick(gen) })
}

func (t *Timer) onTick(gen uint64) {
	t.mu.Lock()
	if gen != t.gen || !t.running {
		// Stale tick from a cancelled countdown.
		t.mu.Unlock()
		return
	}
	if t.leftLocked() > 0 {
		t.scheduleTickLocked()
		t.mu.Unlock()
		return
	}
	t.remaining = 0
	t.running = false
	t.paused = false
	t.cancelTickLocked()
	cb := t.onExpire
	t.mu.Unlock()
	if cb != nil {
		cb()
	}
}
