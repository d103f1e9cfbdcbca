package core

import "testing"

func TestRNGDeterministic(t *testing.T) {
	a := NewRNG(42)
	b := NewRNG(42)
	for i := 0; i < 100; i++ {
		if x, y := a.Float64(), b.Float64(); x != y {
			t.Fatalf("draw %d diverged: %v != %v", i, x, y)
		}
	}
}

func TestRNGRange(t *testing.T) {
	r := NewRNG(7)
	for i := 0; i < 1000; i++ {
		v := r.Range(3, 6)
		if v < 3 || v >= 6 {
			t.Fatalf("expected value in [3,6), got %v", v)
		}
	}
}

func TestFixedClamps(t *testing.T) {
	if got := Fixed(-1).Float64(); got != 0 {
		t.Fatalf("expected negative fixed value to clamp to 0, got %v", got)
	}
	if got := Fixed(2).Float64(); got >= 1 {
		t.Fatalf("expected fixed value below 1, got %v", got)
	}
	if got := Fixed(0.25).Float64(); got != 0.25 {
		t.Fatalf("expected 0.25, got %v", got)
	}
}

func TestManualClock(t *testing.T) {
	var c ManualClock
	if c.Now() != 0 {
		t.Fatalf("expected zero origin, got %v", c.Now())
	}
	c.Advance(16)
	c.Advance(-5)
	if got := c.Now(); got != 16 {
		t.Fatalf("expected 16, got %v", got)
	}
	c.Set(1000)
	if got := c.Now(); got != 1000 {
		t.Fatalf("expected 1000, got %v", got)
	}
}

func TestFrameTimerDelta(t *testing.T) {
	var c ManualClock
	ft := NewFrameTimer(&c)
	if d := ft.Delta(); d != 0 {
		t.Fatalf("expected first delta 0, got %v", d)
	}
	c.Advance(16)
	if d := ft.Delta(); d != 16 {
		t.Fatalf("expected delta 16, got %v", d)
	}
	c.Advance(5000)
	if d := ft.Delta(); d != DefaultMaxDelta {
		t.Fatalf("expected delta clamped to %v, got %v", DefaultMaxDelta, d)
	}
	c.Set(0)
	if d := ft.Delta(); d != 0 {
		t.Fatalf("expected backwards clock to yield 0, got %v", d)
	}
}

func TestSchedulerFiresInDueOrder(t *testing.T) {
	s := NewScheduler(0)
	var order []string
	s.After(200, func() { order = append(order, "b") })
	s.After(100, func() { order = append(order, "a") })
	s.After(500, func() { order = append(order, "c") })

	s.Advance(50)
	if len(order) != 0 {
		t.Fatalf("nothing should fire yet, got %v", order)
	}
	s.Advance(250)
	if len(order) != 2 || order[0] != "a" || order[1] != "b" {
		t.Fatalf("expected [a b], got %v", order)
	}
	if s.Pending() != 1 {
		t.Fatalf("expected one pending timer, got %d", s.Pending())
	}
	s.Advance(500)
	if len(order) != 3 || order[2] != "c" {
		t.Fatalf("expected c to fire last, got %v", order)
	}
}

func TestSchedulerStop(t *testing.T) {
	s := NewScheduler(0)
	fired := false
	timer := s.After(100, func() { fired = true })
	if !timer.Stop() {
		t.Fatal("expected Stop to cancel a pending timer")
	}
	if timer.Stop() {
		t.Fatal("second Stop should report false")
	}
	s.Advance(1000)
	if fired {
		t.Fatal("stopped timer must not fire")
	}
}

func TestSchedulerStopAllFromCallback(t *testing.T) {
	s := NewScheduler(0)
	second := false
	s.After(10, func() { s.StopAll() })
	s.After(10, func() { second = true })
	s.After(20, func() { second = true })
	s.Advance(100)
	if second {
		t.Fatal("StopAll inside a callback must cancel the rest of the batch")
	}
	if s.Pending() != 0 {
		t.Fatalf("expected no pending timers, got %d", s.Pending())
	}
}

func TestParameterLookup(t *testing.T) {
	snap := ParameterSnapshot{Groups: []ParameterGroup{{
		Name:   "Track",
		Params: []Parameter{IntParam("lanes", "Lanes", 5), FloatParam("boost", "Boost", 1.7)},
	}}}
	p, ok := snap.Lookup("boost")
	if !ok || p.Value != "1.7" || p.Type != ParamTypeFloat {
		t.Fatalf("unexpected lookup result %+v ok=%v", p, ok)
	}
	if _, ok := snap.Lookup("missing"); ok {
		t.Fatal("expected missing key lookup to fail")
	}
}
