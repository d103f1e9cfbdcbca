// Package race implements the horse race simulation: five horses on a
// one-dimensional track, one steered by player taps and four by an AI speed
// policy, advanced once per rendered frame.
package race

import (
	"errors"
	"fmt"
	"time"

	"derby/internal/core"

	"github.com/google/uuid"
)

// AgentCount is the number of horses in every race.
const AgentCount = 5

var (
	// ErrInvalidPlayer reports a player horse index outside [0, AgentCount).
	ErrInvalidPlayer = errors.New("race: player index out of range")
	// ErrInvalidViewport reports a non-positive viewport width.
	ErrInvalidViewport = errors.New("race: viewport width must be positive")
)

// Phase is the lifecycle state of a race.
type Phase uint8

const (
	PhaseIdle Phase = iota
	PhaseRacing
	PhaseFinished
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseRacing:
		return "racing"
	case PhaseFinished:
		return "finished"
	default:
		return fmt.Sprintf("Phase(%d)", uint8(p))
	}
}

// Result is one finish record. Time is measured in milliseconds from the
// start signal.
type Result struct {
	Agent int
	Time  float64
}

// Config describes a race to set up.
type Config struct {
	// ID identifies the race instance; a random UUID is used when empty.
	ID            string
	Player        int
	ViewportWidth float64
	// Tuning falls back to DefaultTuning when zero.
	Tuning Tuning
	// Policy drives the AI horses; Bursty built from Tuning when nil.
	Policy SpeedPolicy
	// Random feeds the policy; seeded from the wall clock when nil.
	Random core.RandomSource
}

// Race is the state of a single race. It is created idle, runs once and is
// discarded afterwards; nothing in it is ever reset in place.
//
// Race is not safe for concurrent use. All calls are expected from the frame
// loop goroutine.
type Race struct {
	id     string
	tuning Tuning
	policy SpeedPolicy
	rng    core.RandomSource

	player      int
	agents      []Agent
	trackLength float64
	finishLine  float64

	phase     Phase
	startedAt float64
	results   []Result
	reported  bool
	ticks     int
}

// New builds an idle race. Track geometry is derived from the viewport width
// once and never changes afterwards.
func New(cfg Config) (*Race, error) {
	if cfg.Player < 0 || cfg.Player >= AgentCount {
		return nil, fmt.Errorf("%w: %d", ErrInvalidPlayer, cfg.Player)
	}
	if cfg.ViewportWidth <= 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidViewport, cfg.ViewportWidth)
	}

	tuning := cfg.Tuning.withDefaults()
	policy := cfg.Policy
	if policy == nil {
		policy = Bursty{Chance: tuning.AIChance, Min: tuning.AIMinSpeed, Max: tuning.AIMaxSpeed}
	}
	rng := cfg.Random
	if rng == nil {
		rng = core.NewRNG(time.Now().UnixNano())
	}
	id := cfg.ID
	if id == "" {
		id = uuid.NewString()
	}

	agents := make([]Agent, AgentCount)
	for i := range agents {
		agents[i] = Agent{Index: i, Player: i == cfg.Player}
	}

	trackLength := cfg.ViewportWidth * tuning.TrackScale
	return &Race{
		id:          id,
		tuning:      tuning,
		policy:      policy,
		rng:         rng,
		player:      cfg.Player,
		agents:      agents,
		trackLength: trackLength,
		finishLine:  trackLength - tuning.FinishMargin,
		results:     make([]Result, 0, AgentCount),
	}, nil
}

// ID returns the race instance identifier.
func (r *Race) ID() string { return r.id }

// Player returns the index of the player's horse.
func (r *Race) Player() int { return r.player }

// Phase returns the current lifecycle state.
func (r *Race) Phase() Phase { return r.phase }

// Racing reports whether horses are currently advancing.
func (r *Race) Racing() bool { return r.phase == PhaseRacing }

// Tuning returns the constants this race runs with.
func (r *Race) Tuning() Tuning { return r.tuning }

// TrackLength returns the total track length.
func (r *Race) TrackLength() float64 { return r.trackLength }

// FinishLine returns the position at which a horse finishes.
func (r *Race) FinishLine() float64 { return r.finishLine }

// StartedAt returns the clock reading captured by Start.
func (r *Race) StartedAt() float64 { return r.startedAt }

// Ticks returns how many racing ticks have been simulated.
func (r *Race) Ticks() int { return r.ticks }

// Agents returns a copy of every horse in index order.
func (r *Race) Agents() []Agent {
	return append([]Agent(nil), r.agents...)
}

// Agent returns a copy of the horse at index i.
func (r *Race) Agent(i int) (Agent, bool) {
	if i < 0 || i >= len(r.agents) {
		return Agent{}, false
	}
	return r.agents[i], true
}

// Results returns the finish records in the order horses crossed the line.
func (r *Race) Results() []Result {
	return append([]Result(nil), r.results...)
}

// Start moves an idle race into the racing phase and records now as the
// start time. It reports false when the race has already started.
func (r *Race) Start(now float64) bool {
	if r.phase != PhaseIdle {
		return false
	}
	r.phase = PhaseRacing
	r.startedAt = now
	return true
}

// Boost adds one boost step to horse i, clamped to the maximum speed. It is a
// no-op outside the racing phase, for finished horses and for unknown indices.
func (r *Race) Boost(i int) bool {
	if r.phase != PhaseRacing || i < 0 || i >= len(r.agents) {
		return false
	}
	a := &r.agents[i]
	if a.Finished {
		return false
	}
	a.Speed += r.tuning.BoostStep
	if a.Speed > r.tuning.MaxSpeed {
		a.Speed = r.tuning.MaxSpeed
	}
	return true
}

// Tick advances every running horse by delta milliseconds of real time. now
// is the clock reading for this frame and stamps any finish crossing.
//
// Horses are processed in index order, so two horses crossing on the same
// tick are recorded lowest index first. When the last horse crosses, the race
// moves to PhaseFinished and Tick returns the outcome with ok set; this
// happens exactly once per race.
func (r *Race) Tick(now, delta float64) (outcome Outcome, ok bool) {
	if r.phase != PhaseRacing {
		return Outcome{}, false
	}
	if delta < 0 {
		delta = 0
	}
	r.ticks++
	step := delta / r.tuning.FrameMs

	allFinished := true
	for i := range r.agents {
		a := &r.agents[i]
		if a.Finished {
			continue
		}
		if a.Player {
			decay(a, r.tuning.PlayerDecay, r.tuning.PlayerMinSpeed)
		} else {
			r.policy.Apply(a, r.rng)
			if a.Speed < 0 {
				a.Speed = 0
			}
		}

		a.Position += a.Speed * step
		if a.Position < r.finishLine {
			allFinished = false
			continue
		}
		a.Finished = true
		elapsed := now - r.startedAt
		if elapsed < 0 {
			elapsed = 0
		}
		r.results = append(r.results, Result{Agent: a.Index, Time: elapsed})
	}

	if !allFinished {
		return Outcome{}, false
	}
	r.phase = PhaseFinished
	return r.finalize(), true
}

func (r *Race) finalize() Outcome {
	if r.reported {
		panic("race: outcome reported twice for " + r.id)
	}
	r.reported = true
	return Finalize(r.results, r.player)
}
