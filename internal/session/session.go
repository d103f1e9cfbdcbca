// Package session drives the screens around a race: horse selection, the
// countdown that fires the start signal, and the delayed result reveal.
package session

import (
	"errors"
	"fmt"
	"io"

	"derby/internal/core"
	"derby/internal/events"
	"derby/internal/race"
	"derby/internal/scene"

	"github.com/charmbracelet/log"
)

const (
	// CountdownFrom is the first number shown before the start.
	CountdownFrom = 3
	// CountdownStepMs is the time each countdown number stays on screen.
	CountdownStepMs = 1000.0
	// RevealDelayMs separates the finish from the results screen.
	RevealDelayMs = 1000.0
)

// ErrNotInLobby is returned by Select outside the lobby.
var ErrNotInLobby = errors.New("session: horse can only be picked in the lobby")

// Phase is the screen the session is on.
type Phase uint8

const (
	PhaseLobby Phase = iota
	PhaseCountdown
	PhaseRacing
	PhaseFinished
)

func (p Phase) String() string {
	switch p {
	case PhaseLobby:
		return "lobby"
	case PhaseCountdown:
		return "countdown"
	case PhaseRacing:
		return "racing"
	case PhaseFinished:
		return "finished"
	default:
		return fmt.Sprintf("Phase(%d)", uint8(p))
	}
}

// SceneFactory builds the scene for a selected horse on the given bus.
type SceneFactory func(bus *events.Bus, player int) (*scene.Scene, error)

// Session owns the current scene plus every timer and listener the
// presentation layer registers around it.
type Session struct {
	bus      *events.Bus
	clock    core.Clock
	sched    *core.Scheduler
	log      *log.Logger
	newScene SceneFactory

	subs      events.Group
	scene     *scene.Scene
	phase     Phase
	countdown int
	result    *events.GameOver
}

// New creates a session in the lobby.
func New(bus *events.Bus, clock core.Clock, factory SceneFactory, logger *log.Logger) *Session {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	s := &Session{
		bus:      bus,
		clock:    clock,
		sched:    core.NewScheduler(clock.Now()),
		log:      logger,
		newScene: factory,
	}
	s.subs.Add(events.Subscribe(bus, events.Finished, s.onGameOver))
	return s
}

// Select picks the player's horse, builds a fresh scene and starts the
// countdown.
func (s *Session) Select(player int) error {
	if s.phase != PhaseLobby {
		return ErrNotInLobby
	}
	sc, err := s.newScene(s.bus, player)
	if err != nil {
		return fmt.Errorf("select horse %d: %w", player, err)
	}
	s.scene = sc
	s.result = nil
	s.phase = PhaseCountdown
	s.countdown = CountdownFrom
	s.sched.Advance(s.clock.Now())
	s.sched.After(CountdownStepMs, s.countdownStep)
	s.log.Info("horse selected", "horse", player+1, "race", sc.RaceID())
	return nil
}

func (s *Session) countdownStep() {
	s.countdown--
	if s.countdown > 0 {
		s.sched.After(CountdownStepMs, s.countdownStep)
		return
	}
	s.phase = PhaseRacing
	events.Publish(s.bus, events.Start, events.Signal{})
}

// Tap boosts the player's horse while the race is running.
func (s *Session) Tap() bool {
	if s.phase != PhaseRacing || s.scene == nil || s.scene.Phase() != race.PhaseRacing {
		return false
	}
	events.Publish(s.bus, events.Boost, events.Signal{})
	return true
}

// Update runs due timers and advances the scene by delta milliseconds.
func (s *Session) Update(delta float64) {
	s.sched.Advance(s.clock.Now())
	if s.scene != nil {
		s.scene.Update(delta)
	}
}

func (s *Session) onGameOver(ev events.GameOver) {
	if s.scene == nil || ev.RaceID != s.scene.RaceID() {
		return
	}
	res := ev
	s.result = &res
	reward := RewardFor(ev.Rank)
	s.log.Info("race result", "rank", ev.Rank, "reward", reward.Label)
	s.sched.After(RevealDelayMs, func() { s.phase = PhaseFinished })
}

// Restart discards the current scene and returns to the lobby.
func (s *Session) Restart() {
	s.sched.StopAll()
	if s.scene != nil {
		s.scene.Close()
		s.scene = nil
	}
	s.result = nil
	s.countdown = 0
	s.phase = PhaseLobby
}

// Close stops every pending timer and listener. The session must not be
// used afterwards.
func (s *Session) Close() {
	s.Restart()
	s.subs.Release()
}

// Phase returns the current screen.
func (s *Session) Phase() Phase { return s.phase }

// Countdown returns the number currently shown during the countdown.
func (s *Session) Countdown() int { return s.countdown }

// Scene returns the active scene, if any.
func (s *Session) Scene() *scene.Scene { return s.scene }

// PendingTimers reports how many delayed callbacks are outstanding.
func (s *Session) PendingTimers() int { return s.sched.Pending() }

// Result returns the final standing once the race is over.
func (s *Session) Result() (events.GameOver, bool) {
	if s.result == nil {
		return events.GameOver{}, false
	}
	return *s.result, true
}

// Reward returns the prize for the finished race.
func (s *Session) Reward() Reward {
	if s.result == nil {
		return RewardFor(0)
	}
	return RewardFor(s.result.Rank)
}

// Leaderboard returns the rows of the results screen.
func (s *Session) Leaderboard() []Row {
	if s.result == nil {
		return nil
	}
	return Leaderboard(*s.result)
}
