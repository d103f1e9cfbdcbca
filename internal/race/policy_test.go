package race

import (
	"errors"
	"math"
	"testing"

	"derby/internal/core"
)

func TestBurstyResamplesBelowChance(t *testing.T) {
	p := Bursty{Chance: 0.015, Min: 3, Max: 6}
	a := Agent{Speed: 1}
	p.Apply(&a, core.Fixed(0.01))
	if math.Abs(a.Speed-3.03) > 1e-9 {
		t.Fatalf("expected resampled speed 3.03, got %v", a.Speed)
	}
}

func TestBurstyKeepsSpeedAboveChance(t *testing.T) {
	p := Bursty{Chance: 0.015, Min: 3, Max: 6}
	a := Agent{Speed: 4.2}
	p.Apply(&a, core.Fixed(0.5))
	if a.Speed != 4.2 {
		t.Fatalf("expected unchanged speed, got %v", a.Speed)
	}
}

func TestBurstyStaysInRange(t *testing.T) {
	p := Bursty{Chance: 1, Min: 3, Max: 6}
	rng := core.NewRNG(5)
	a := Agent{}
	for i := 0; i < 1000; i++ {
		p.Apply(&a, rng)
		if a.Speed < 3 || a.Speed >= 6 {
			t.Fatalf("speed %v outside [3,6)", a.Speed)
		}
	}
}

func TestBurstyResampleRate(t *testing.T) {
	p := Bursty{Chance: 0.015, Min: 3, Max: 6}
	rng := core.NewRNG(11)
	a := Agent{Speed: -1}
	changes := 0
	const ticks = 200000
	for i := 0; i < ticks; i++ {
		before := a.Speed
		p.Apply(&a, rng)
		if a.Speed != before {
			changes++
		}
	}
	rate := float64(changes) / ticks
	if rate < 0.012 || rate > 0.018 {
		t.Fatalf("expected resample rate near 0.015, got %v", rate)
	}
}

func TestDecay(t *testing.T) {
	a := Agent{Speed: 10}
	decay(&a, 0.99, 2)
	if math.Abs(a.Speed-9.9) > 1e-9 {
		t.Fatalf("expected 9.9, got %v", a.Speed)
	}
	a.Speed = 2.01
	decay(&a, 0.99, 2)
	if a.Speed != 2 {
		t.Fatalf("expected floor 2, got %v", a.Speed)
	}
}

func TestPolicyRegistry(t *testing.T) {
	names := Policies()
	if len(names) < 2 || names[0] != "bursty" || names[1] != "steady" {
		t.Fatalf("unexpected registered policies %v", names)
	}

	p, err := NewPolicy("bursty", Tuning{})
	if err != nil {
		t.Fatal(err)
	}
	if b, ok := p.(Bursty); !ok || b.Chance != 0.015 || b.Min != 3 || b.Max != 6 {
		t.Fatalf("unexpected bursty policy %#v", p)
	}

	p, err = NewPolicy("steady", DefaultTuning())
	if err != nil {
		t.Fatal(err)
	}
	if s, ok := p.(Steady); !ok || s.Speed != 4.5 {
		t.Fatalf("unexpected steady policy %#v", p)
	}

	if _, err := NewPolicy("teleport", DefaultTuning()); !errors.Is(err, ErrUnknownPolicy) {
		t.Fatalf("expected ErrUnknownPolicy, got %v", err)
	}
}

func TestTuningDefaults(t *testing.T) {
	tuning := Tuning{MaxSpeed: 8}.withDefaults()
	if tuning.MaxSpeed != 8 || tuning.BoostStep != 1.7 || tuning.FrameMs != 16 {
		t.Fatalf("unexpected defaults %+v", tuning)
	}
	snap := DefaultTuning().Parameters()
	if p, ok := snap.Lookup("boost_step"); !ok || p.Value != "1.7" {
		t.Fatalf("expected boost_step parameter, got %+v", p)
	}
	if p, ok := snap.Lookup("horses"); !ok || p.Value != "5" {
		t.Fatalf("expected horses parameter, got %+v", p)
	}
}
