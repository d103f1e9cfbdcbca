//go:build ebiten

package main

import (
	"errors"
	"flag"
	"net/http"
	"os"

	"derby/internal/app"
	"derby/internal/events"
	"derby/internal/feed"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	if err := cfg.LoadEnv(".env"); err != nil {
		fatal(err)
	}
	cfg.Bind(flag.CommandLine)
	flag.Parse()
	if err := cfg.Validate(); err != nil {
		fatal(err)
	}

	logger, err := cfg.Logger(os.Stderr)
	if err != nil {
		fatal(err)
	}

	bus := events.NewBus()
	if cfg.FeedAddr != "" {
		hub := feed.NewHub(logger.WithPrefix("feed"))
		defer hub.Close()
		hub.Attach(bus)
		mux := http.NewServeMux()
		mux.Handle("/results", hub.Handler())
		go func() {
			logger.Info("serving results feed", "addr", cfg.FeedAddr)
			if err := http.ListenAndServe(cfg.FeedAddr, mux); err != nil {
				logger.Error("results feed stopped", "err", err)
			}
		}()
	}

	game, err := app.New(cfg, bus, logger)
	if err != nil {
		logger.Fatal("cannot create game", "err", err)
	}
	defer game.Close()

	ebiten.SetWindowTitle("derby")
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(cfg.Width*cfg.Scale, cfg.Height*cfg.Scale)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		logger.Fatal("game stopped", "err", err)
	}
}

func fatal(err error) {
	os.Stderr.WriteString("derby: " + err.Error() + "\n")
	os.Exit(2)
}
