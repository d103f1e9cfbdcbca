// Package scene hosts one race on an event bus: it listens for the start and
// boost signals, ticks the simulation once per frame and announces the final
// standing exactly once.
package scene

import (
	"fmt"
	"io"

	"derby/internal/core"
	"derby/internal/events"
	"derby/internal/race"

	"github.com/charmbracelet/log"
)

// Options configures a scene.
type Options struct {
	RaceID string
	Player int
	Width  float64
	Height float64
	Tuning race.Tuning
	Policy race.SpeedPolicy
	Random core.RandomSource
}

// Scene owns a race and the listeners that drive it. Listeners registered by
// the scene are removed by Close.
type Scene struct {
	bus    *events.Bus
	clock  core.Clock
	log    *log.Logger
	race   *race.Race
	camera *race.Camera
	height float64

	subs    events.Group
	crossed int
	closed  bool
}

// New sets up an idle race, subscribes to the inbound topics and publishes
// events.Ready.
func New(bus *events.Bus, clock core.Clock, opts Options, logger *log.Logger) (*Scene, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	r, err := race.New(race.Config{
		ID:            opts.RaceID,
		Player:        opts.Player,
		ViewportWidth: opts.Width,
		Tuning:        opts.Tuning,
		Policy:        opts.Policy,
		Random:        opts.Random,
	})
	if err != nil {
		return nil, fmt.Errorf("scene setup: %w", err)
	}

	s := &Scene{
		bus:    bus,
		clock:  clock,
		log:    logger.With("race", r.ID()),
		race:   r,
		camera: race.NewCamera(opts.Width, opts.Height, r.TrackLength()),
		height: opts.Height,
	}
	s.camera.Snap(race.StartX, race.LaneY(r.Player(), opts.Height))

	s.subs.Add(events.Subscribe(bus, events.Start, func(events.Signal) { s.start() }))
	s.subs.Add(events.Subscribe(bus, events.Boost, func(events.Signal) { s.race.Boost(s.race.Player()) }))

	s.log.Info("scene ready",
		"player", r.Player(),
		"track", r.TrackLength(),
		"finish", r.FinishLine(),
	)
	events.Publish(bus, events.Ready, events.ReadyEvent{RaceID: r.ID(), Handle: s})
	return s, nil
}

func (s *Scene) start() {
	if s.closed {
		return
	}
	if s.race.Start(s.clock.Now()) {
		s.log.Info("race started", "at", s.race.StartedAt())
	}
}

// Update advances the race by delta milliseconds and moves the camera.
func (s *Scene) Update(delta float64) {
	if s.closed {
		return
	}
	out, done := s.race.Tick(s.clock.Now(), delta)

	if results := s.race.Results(); len(results) > s.crossed {
		for _, res := range results[s.crossed:] {
			s.log.Debug("horse finished", "horse", res.Agent, "ms", res.Time)
		}
		s.crossed = len(results)
	}

	if player, ok := s.race.Agent(s.race.Player()); ok {
		s.camera.Follow(race.StartX+player.Position, race.LaneY(player.Index, s.height))
	}

	if !done {
		return
	}
	payload := events.NewGameOver(s.race.ID(), s.race.Player(), out)
	s.log.Info("game over", "rank", payload.Rank, "ticks", s.race.Ticks())
	events.Publish(s.bus, events.Finished, payload)
}

// Resize adapts the viewport. Track geometry stays fixed for the race.
func (s *Scene) Resize(w, h float64) {
	s.height = h
	s.camera.Resize(w, h)
}

// Close removes every listener the scene registered. The scene is inert
// afterwards.
func (s *Scene) Close() {
	if s.closed {
		return
	}
	s.closed = true
	s.subs.Release()
	s.log.Debug("scene closed", "phase", s.race.Phase())
}

// RaceID returns the race instance identifier.
func (s *Scene) RaceID() string { return s.race.ID() }

// Player returns the player's horse index.
func (s *Scene) Player() int { return s.race.Player() }

// Phase returns the race phase.
func (s *Scene) Phase() race.Phase { return s.race.Phase() }

// Agents returns a snapshot of every horse.
func (s *Scene) Agents() []race.Agent { return s.race.Agents() }

// Results returns finish records in crossing order.
func (s *Scene) Results() []race.Result { return s.race.Results() }

// TrackLength returns the track length fixed at setup.
func (s *Scene) TrackLength() float64 { return s.race.TrackLength() }

// FinishLine returns the finish position fixed at setup.
func (s *Scene) FinishLine() float64 { return s.race.FinishLine() }

// Tuning returns the race constants.
func (s *Scene) Tuning() race.Tuning { return s.race.Tuning() }

// Camera returns a copy of the camera state.
func (s *Scene) Camera() race.Camera { return *s.camera }

// Elapsed returns milliseconds since the start signal. It is zero before the
// start and stops at the last finish time.
func (s *Scene) Elapsed() float64 {
	switch s.race.Phase() {
	case race.PhaseIdle:
		return 0
	case race.PhaseFinished:
		results := s.race.Results()
		return results[len(results)-1].Time
	}
	return s.clock.Now() - s.race.StartedAt()
}

// Closed reports whether Close has been called.
func (s *Scene) Closed() bool { return s.closed }
