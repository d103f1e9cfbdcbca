package race

import (
	"errors"
	"fmt"
	"sort"

	"derby/internal/core"
)

// ErrUnknownPolicy is returned when a policy name has no registered factory.
var ErrUnknownPolicy = errors.New("race: unknown speed policy")

// SpeedPolicy assigns the speed of a computer-controlled horse once per tick.
type SpeedPolicy interface {
	Apply(a *Agent, rng core.RandomSource)
}

// Bursty resamples speed uniformly from [Min, Max) with probability Chance per
// tick and otherwise leaves it unchanged, so AI horses surge in discrete jumps.
type Bursty struct {
	Chance float64
	Min    float64
	Max    float64
}

// Apply implements SpeedPolicy.
func (p Bursty) Apply(a *Agent, rng core.RandomSource) {
	if rng.Float64() >= p.Chance {
		return
	}
	a.Speed = p.Min + rng.Float64()*(p.Max-p.Min)
}

// Steady pins every AI horse to a constant speed. It makes races
// reproducible without a random source and is used by tests and sweeps.
type Steady struct {
	Speed float64
}

// Apply implements SpeedPolicy.
func (p Steady) Apply(a *Agent, _ core.RandomSource) {
	a.Speed = p.Speed
}

// decay slows the player's horse towards a coasting floor.
func decay(a *Agent, factor, floor float64) {
	a.Speed *= factor
	if a.Speed < floor {
		a.Speed = floor
	}
}

// PolicyFactory constructs a SpeedPolicy from the race tuning.
type PolicyFactory func(t Tuning) SpeedPolicy

var policies = map[string]PolicyFactory{}

// RegisterPolicy adds a policy factory under the provided name.
func RegisterPolicy(name string, f PolicyFactory) {
	if name == "" || f == nil {
		return
	}
	policies[name] = f
}

// Policies lists the registered policy names in sorted order.
func Policies() []string {
	names := make([]string, 0, len(policies))
	for name := range policies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewPolicy builds the named policy for the given tuning.
func NewPolicy(name string, t Tuning) (SpeedPolicy, error) {
	f, ok := policies[name]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownPolicy, name)
	}
	return f(t.withDefaults()), nil
}

func init() {
	RegisterPolicy("bursty", func(t Tuning) SpeedPolicy {
		return Bursty{Chance: t.AIChance, Min: t.AIMinSpeed, Max: t.AIMaxSpeed}
	})
	RegisterPolicy("steady", func(t Tuning) SpeedPolicy {
		return Steady{Speed: (t.AIMinSpeed + t.AIMaxSpeed) / 2}
	})
}
