package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"sync"
	"time"

	"derby/internal/app"
	"derby/internal/events"
	"derby/internal/feed"
	"derby/internal/race"
)

func main() {
	cfg := app.NewConfig()
	cfg.LogLevel = "warn"
	envPath := ".env"
	if v, ok := os.LookupEnv("DERBY_ENV_FILE"); ok {
		envPath = v
	}
	if err := cfg.LoadEnv(envPath); err != nil {
		os.Stderr.WriteString("derby-sim: " + err.Error() + "\n")
		os.Exit(2)
	}
	cfg.Bind(flag.CommandLine)
	races := flag.Int("races", 1000, "number of races to run")
	workers := flag.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	tapRate := flag.Float64("tap-rate", 8, "bot taps per second")
	flag.Parse()

	logger, err := cfg.Logger(os.Stderr)
	if err != nil {
		os.Stderr.WriteString("derby-sim: " + err.Error() + "\n")
		os.Exit(2)
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal("invalid configuration", "err", err)
	}
	if *workers < 1 {
		*workers = 1
	}

	tuning := race.DefaultTuning()
	policy, err := race.NewPolicy(cfg.Policy, tuning)
	if err != nil {
		logger.Fatal("invalid policy", "err", err)
	}
	writeTuning(os.Stdout, tuning)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	bus := events.NewBus()
	var srv *http.Server
	if cfg.FeedAddr != "" {
		hub := feed.NewHub(logger.WithPrefix("feed"))
		defer hub.Close()
		hub.Attach(bus)
		mux := http.NewServeMux()
		mux.Handle("/results", hub.Handler())
		srv = &http.Server{Addr: cfg.FeedAddr, Handler: mux}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("results feed stopped", "err", err)
			}
		}()
		logger.Info("serving results feed", "addr", cfg.FeedAddr)
	}

	logger.Info("running races", "races", *races, "workers", *workers, "policy", cfg.Policy, "tap_rate", *tapRate)

	jobs := make(chan job)
	results := make(chan outcome)
	var wg sync.WaitGroup

	for i := 0; i < *workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				ev, err := runRace(cfg, policy, j, *tapRate, logger)
				results <- outcome{job: j, ev: ev, err: err}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		defer close(jobs)
		for n := 0; n < *races; n++ {
			j := job{n: n, player: n % race.AgentCount}
			if lane, ok := cfg.Player(); ok {
				j.player = lane
			}
			select {
			case jobs <- j:
			case <-ctx.Done():
				return
			}
		}
	}()

	start := time.Now()
	var sum summary
	for res := range results {
		if res.err != nil {
			sum.failed++
			logger.Warn("race failed", "n", res.n, "err", res.err)
			continue
		}
		sum.add(res.ev)
		events.Publish(bus, events.Finished, res.ev)
	}
	logger.Info("batch complete", "elapsed", time.Since(start).Round(time.Millisecond))
	sum.write(os.Stdout)

	if srv != nil {
		logger.Info("results feed still up, interrupt to exit")
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		srv.Shutdown(shutdown)
	}
}
