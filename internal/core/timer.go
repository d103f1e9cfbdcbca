package core

import "slices"

// DefaultMaxDelta caps a single frame delta in milliseconds so a stalled
// window (drag, breakpoint, tab switch) does not teleport the horses.
const DefaultMaxDelta = 250.0

// FrameTimer measures the elapsed time between successive frames.
type FrameTimer struct {
	clock    Clock
	last     float64
	started  bool
	MaxDelta float64
}

// NewFrameTimer constructs a FrameTimer reading from the given clock.
func NewFrameTimer(clock Clock) *FrameTimer {
	return &FrameTimer{clock: clock, MaxDelta: DefaultMaxDelta}
}

// Delta returns the milliseconds since the previous call. The first call
// returns zero.
func (f *FrameTimer) Delta() float64 {
	now := f.clock.Now()
	if !f.started {
		f.started = true
		f.last = now
		return 0
	}
	delta := now - f.last
	f.last = now
	if delta < 0 {
		return 0
	}
	if f.MaxDelta > 0 && delta > f.MaxDelta {
		return f.MaxDelta
	}
	return delta
}

// Timer is a pending callback registered with a Scheduler.
type Timer struct {
	due     float64
	fn      func()
	stopped bool
	fired   bool
}

// Stop cancels the timer. It reports whether the call prevented the callback
// from running.
func (t *Timer) Stop() bool {
	if t == nil || t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// Scheduler runs delayed callbacks on the frame loop. It is not safe for
// concurrent use; callers drive it from the same goroutine that updates the
// simulation.
type Scheduler struct {
	now    float64
	timers []*Timer
	firing []*Timer
}

// NewScheduler returns a scheduler whose time origin is now.
func NewScheduler(now float64) *Scheduler {
	return &Scheduler{now: now}
}

// Now returns the time of the last Advance.
func (s *Scheduler) Now() float64 { return s.now }

// After schedules fn to run once ms milliseconds after the current scheduler
// time.
func (s *Scheduler) After(ms float64, fn func()) *Timer {
	if ms < 0 {
		ms = 0
	}
	t := &Timer{due: s.now + ms, fn: fn}
	s.timers = append(s.timers, t)
	return t
}

// Advance moves the scheduler to now and fires every timer that has come due,
// earliest first. Timers scheduled from within a callback run on a later
// Advance at the earliest.
func (s *Scheduler) Advance(now float64) {
	if now > s.now {
		s.now = now
	}
	var due []*Timer
	kept := s.timers[:0]
	for _, t := range s.timers {
		switch {
		case t.stopped:
		case t.due <= s.now:
			due = append(due, t)
		default:
			kept = append(kept, t)
		}
	}
	clear(s.timers[len(kept):])
	s.timers = kept

	slices.SortStableFunc(due, func(a, b *Timer) int {
		switch {
		case a.due < b.due:
			return -1
		case a.due > b.due:
			return 1
		}
		return 0
	})
	s.firing = due
	defer func() { s.firing = nil }()
	for _, t := range due {
		if t.stopped {
			continue
		}
		t.fired = true
		if t.fn != nil {
			t.fn()
		}
	}
}

// StopAll cancels every pending timer.
func (s *Scheduler) StopAll() {
	for _, t := range s.firing {
		t.stopped = true
	}
	for _, t := range s.timers {
		t.stopped = true
	}
	clear(s.timers)
	s.timers = s.timers[:0]
}

// Pending reports how many timers are still waiting to fire.
func (s *Scheduler) Pending() int {
	n := 0
	for _, t := range s.timers {
		if !t.stopped {
			n++
		}
	}
	return n
}
