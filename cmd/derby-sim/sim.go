package main

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"derby/internal/app"
	"derby/internal/core"
	"derby/internal/events"
	"derby/internal/race"
	"derby/internal/scene"
	"derby/internal/session"

	"github.com/charmbracelet/log"
)

const frameMs = 16.0

// maxFrames bounds a single race; a race where nobody taps still finishes
// well within it at the minimum player speed.
const maxFrames = 100_000

type job struct {
	n      int
	player int
}

type outcome struct {
	job
	ev  events.GameOver
	err error
}

// bot taps with a fixed probability per frame so that it averages rate taps
// per second.
type bot struct {
	rng  *core.RNG
	odds float64
}

func newBot(seed int64, rate float64) bot {
	odds := rate * frameMs / 1000
	if odds > 1 {
		odds = 1
	}
	return bot{rng: core.NewRNG(seed), odds: odds}
}

func (b bot) tap() bool {
	return b.odds > 0 && b.rng.Float64() < b.odds
}

// runRace plays one full session headlessly: pick, countdown, race and
// result reveal on a manual clock.
func runRace(cfg *app.Config, policy race.SpeedPolicy, j job, tapRate float64, logger *log.Logger) (events.GameOver, error) {
	clock := &core.ManualClock{}
	bus := events.NewBus()
	factory := func(bus *events.Bus, player int) (*scene.Scene, error) {
		return scene.New(bus, clock, scene.Options{
			Player: player,
			Width:  float64(cfg.Width),
			Height: float64(cfg.Height),
			Policy: policy,
			Random: cfg.RNG(j.n),
		}, logger)
	}
	s := session.New(bus, clock, factory, logger)
	defer s.Close()

	if err := s.Select(j.player); err != nil {
		return events.GameOver{}, err
	}
	b := newBot(cfg.Seed^int64(j.n+1)<<20, tapRate)
	for frame := 0; frame < maxFrames && s.Phase() != session.PhaseFinished; frame++ {
		clock.Advance(frameMs)
		if b.tap() {
			s.Tap()
		}
		s.Update(frameMs)
	}
	ev, ok := s.Result()
	if !ok {
		return events.GameOver{}, errors.New("race did not finish")
	}
	return ev, nil
}

// summary aggregates finished races.
type summary struct {
	races      int
	failed     int
	ranks      [race.AgentCount + 1]int
	wins       [race.AgentCount]int
	playerTime float64
	winTime    float64
}

func (s *summary) add(ev events.GameOver) {
	s.races++
	if ev.Rank >= 1 && ev.Rank <= race.AgentCount {
		s.ranks[ev.Rank]++
	}
	if len(ev.Results) > 0 {
		winner := ev.Results[0]
		if winner.ID >= 0 && winner.ID < race.AgentCount {
			s.wins[winner.ID]++
		}
		s.winTime += winner.Time
	}
	for _, r := range ev.Results {
		if r.ID == ev.Player {
			s.playerTime += r.Time
		}
	}
}

func (s *summary) write(w io.Writer) {
	fmt.Fprintf(w, "Races: %d (%d failed)\n", s.races, s.failed)
	if s.races == 0 {
		return
	}
	n := float64(s.races)
	fmt.Fprintf(w, "Mean player time: %.2fs\n", s.playerTime/n/1000)
	fmt.Fprintf(w, "Mean winning time: %.2fs\n", s.winTime/n/1000)
	fmt.Fprintln(w, "Player rank distribution:")
	for rank := 1; rank <= race.AgentCount; rank++ {
		pct := 100 * float64(s.ranks[rank]) / n
		fmt.Fprintf(w, "  %d: %5d %6.2f%% %s\n", rank, s.ranks[rank], pct, strings.Repeat("#", int(pct/2)))
	}
	lanes := make([]int, race.AgentCount)
	for i := range lanes {
		lanes[i] = i
	}
	sort.SliceStable(lanes, func(a, b int) bool { return s.wins[lanes[a]] > s.wins[lanes[b]] })
	fmt.Fprintln(w, "Wins by horse:")
	for _, lane := range lanes {
		fmt.Fprintf(w, "  Horse %d: %d\n", lane+1, s.wins[lane])
	}
}

func writeTuning(w io.Writer, t race.Tuning) {
	for _, group := range t.Parameters().Groups {
		parts := make([]string, len(group.Params))
		for i, p := range group.Params {
			parts[i] = p.Key + "=" + p.Value
		}
		fmt.Fprintf(w, "%s: %s\n", group.Name, strings.Join(parts, " "))
	}
}
