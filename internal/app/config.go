package app

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"slices"
	"strconv"
	"time"

	"derby/internal/core"
	"derby/internal/race"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

// EnvPrefix is prepended to every field name when reading the environment.
const EnvPrefix = "DERBY_"

// Config represents the command-line parameters for the application.
type Config struct {
	Horse    int // 1-based; 0 shows the horse picker
	Width    int
	Height   int
	Scale    int
	TPS      int
	Seed     int64 // 0 seeds from the wall clock
	Policy   string
	FeedAddr string
	LogLevel string
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Width:    960,
		Height:   540,
		Scale:    1,
		TPS:      60,
		Policy:   "bursty",
		LogLevel: "info",
	}
}

// Bind attaches the configuration to the provided FlagSet. Call it after
// LoadEnv so that environment values become the flag defaults.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.IntVar(&c.Horse, "horse", c.Horse, "horse to ride (1-5, 0 to pick on screen)")
	fs.IntVar(&c.Width, "width", c.Width, "viewport width in pixels")
	fs.IntVar(&c.Height, "height", c.Height, "viewport height in pixels")
	fs.IntVar(&c.Scale, "scale", c.Scale, "window scale multiplier")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for AI horses (0 = random)")
	fs.StringVar(&c.Policy, "policy", c.Policy, "AI speed policy")
	fs.StringVar(&c.FeedAddr, "feed", c.FeedAddr, "serve the websocket results feed on this address")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "debug, info, warn or error")
}

// LoadEnv overrides defaults from DERBY_* variables. Variables set in the
// process environment win over those read from the dotenv file at path. A
// missing file is not an error.
func (c *Config) LoadEnv(path string) error {
	file := map[string]string{}
	if path != "" {
		vars, err := godotenv.Read(path)
		switch {
		case err == nil:
			file = vars
		case errors.Is(err, fs.ErrNotExist):
		default:
			return fmt.Errorf("read %s: %w", path, err)
		}
	}
	return c.ApplyEnv(func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := file[key]
		return v, ok
	})
}

// ApplyEnv overrides defaults using lookup, which is queried with the
// prefixed upper-case field names.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	ints := []struct {
		key string
		dst *int
	}{
		{"HORSE", &c.Horse},
		{"WIDTH", &c.Width},
		{"HEIGHT", &c.Height},
		{"SCALE", &c.Scale},
		{"TPS", &c.TPS},
	}
	for _, f := range ints {
		v, ok := lookup(EnvPrefix + f.key)
		if !ok || v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s%s: %w", EnvPrefix, f.key, err)
		}
		*f.dst = n
	}
	if v, ok := lookup(EnvPrefix + "SEED"); ok && v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%sSEED: %w", EnvPrefix, err)
		}
		c.Seed = n
	}
	if v, ok := lookup(EnvPrefix + "POLICY"); ok && v != "" {
		c.Policy = v
	}
	if v, ok := lookup(EnvPrefix + "FEED"); ok {
		c.FeedAddr = v
	}
	if v, ok := lookup(EnvPrefix + "LOG_LEVEL"); ok && v != "" {
		c.LogLevel = v
	}
	return nil
}

// Validate reports the first invalid field.
func (c *Config) Validate() error {
	switch {
	case c.Horse < 0 || c.Horse > race.AgentCount:
		return fmt.Errorf("horse %d: %w", c.Horse, race.ErrInvalidPlayer)
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("viewport %dx%d: %w", c.Width, c.Height, race.ErrInvalidViewport)
	case c.Scale < 1:
		return fmt.Errorf("scale must be at least 1, got %d", c.Scale)
	case c.TPS <= 0:
		return fmt.Errorf("tps must be positive, got %d", c.TPS)
	case !slices.Contains(race.Policies(), c.Policy):
		return fmt.Errorf("policy %q: %w", c.Policy, race.ErrUnknownPolicy)
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	return nil
}

// Logger builds a logger writing to w at the configured level.
func (c *Config) Logger(w io.Writer) (*log.Logger, error) {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Prefix:          "derby",
	}), nil
}

// RNG returns the random source for race n of this run. Races are seeded
// from Seed so a fixed seed replays the same AI behaviour.
func (c *Config) RNG(n int) *core.RNG {
	seed := c.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return core.NewRNG(seed + int64(n))
}

// Player converts the 1-based Horse field to a lane index. ok is false when
// the horse is picked on screen.
func (c *Config) Player() (lane int, ok bool) {
	if c.Horse == 0 {
		return 0, false
	}
	return c.Horse - 1, true
}
