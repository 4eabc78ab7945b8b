// Package clock abstracts wall-clock time so countdown behavior can be
// driven deterministically in tests.
package clock

import (
	"sort"
	"sync"
	"time"
)

// Waiter is a pending scheduled callback.
type Waiter interface {
	// Stop cancels the callback. It reports whether the call was prevented.
	Stop() bool
}

// Clock provides the current time and deferred callback scheduling.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Waiter
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

func (systemClock) AfterFunc(d time.Duration, f func()) Waiter {
	return time.AfterFunc(d, f)
}

// System returns a Clock backed by the time package.
func System() Clock {
	return systemClock{}
}

// Fake is a manually advanced clock for tests. Callbacks scheduled with
// AfterFunc fire synchronously inside Advance, in deadline order.
type Fake struct {
	mu     sync.Mutex
	now    time.Time
	timers []*fakeWaiter
}

type fakeWaiter struct {
	clk      *Fake
	deadline time.Time
	fn       func()
	stopped  bool
}

func (w *fakeWaiter) Stop() bool {
	w.clk.mu.Lock()
	defer w.clk.mu.Unlock()
	if w.stopped {
		return false
	}
	w.stopped = true
	return true
}

// NewFake returns a Fake clock positioned at start.
func NewFake(start time.Time) *Fake {
	return &Fake{now: start}
}

func (f *Fake) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *Fake) AfterFunc(d time.Duration, fn func()) Waiter {
	f.mu.Lock()
	defer f.mu.Unlock()
	w := &fakeWaiter{clk: f, deadline: f.now.Add(d), fn: fn}
	f.timers = append(f.timers, w)
	return w
}

// Advance moves the clock forward by d, firing every due callback in
// deadline order. Callbacks may schedule further callbacks; those are
// honored within the same Advance if they fall inside the window.
func (f *Fake) Advance(d time.Duration) {
	f.mu.Lock()
	target := f.now.Add(d)
	for {
		w := f.nextDueLocked(target)
		if w == nil {
			break
		}
		if w.deadline.After(f.now) {
			f.now = w.deadline
		}
		w.stopped = true
		fn := w.fn
		f.mu.Unlock()
		fn()
		f.mu.Lock()
	}
	f.now = target
	f.mu.Unlock()
}

func (f *Fake) nextDueLocked(target time.Time) *fakeWaiter {
	pending := f.timers[:0]
	for _, w := range f.timers {
		if !w.stopped {
			pending = append(pending, w)
		}
	}
	f.timers = pending
	sort.SliceStable(f.timers, func(i, j int) bool {
		return f.timers[i].deadline.Before(f.timers[j].deadline)
	})
	if len(f.timers) > 0 && !f.timers[0].deadline.After(target) {
		return f.timers[0]
	}
	return nil
}
