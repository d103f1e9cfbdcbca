package app

import (
	"fmt"

	"derby/internal/core"
	"derby/internal/events"
	"derby/internal/race"
	"derby/internal/scene"
	"derby/internal/session"

	"github.com/charmbracelet/log"
)

// SceneFactory returns a factory that builds scenes from the configuration.
// Every scene gets its own random source derived from Seed.
func (c *Config) SceneFactory(clock core.Clock, logger *log.Logger) (session.SceneFactory, error) {
	tuning := race.DefaultTuning()
	policy, err := race.NewPolicy(c.Policy, tuning)
	if err != nil {
		return nil, fmt.Errorf("scene factory: %w", err)
	}
	n := 0
	return func(bus *events.Bus, player int) (*scene.Scene, error) {
		rng := c.RNG(n)
		n++
		return scene.New(bus, clock, scene.Options{
			Player: player,
			Width:  float64(c.Width),
			Height: float64(c.Height),
			Tuning: tuning,
			Policy: policy,
			Random: rng,
		}, logger)
	}, nil
}
