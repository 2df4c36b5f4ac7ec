package app

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"archipelago/internal/world"
)

// KVList collects repeatable key=value flags.
type KVList []string

func (l *KVList) String() string {
	return strings.Join(*l, ",")
}

func (l *KVList) Set(value string) error {
	if !strings.Contains(value, "=") {
		return fmt.Errorf("expected key=value, got %q", value)
	}
	*l = append(*l, value)
	return nil
}

// Map returns the pairs as a map. Later keys win.
func (l KVList) Map() map[string]string {
	out := make(map[string]string, len(l))
	for _, kv := range l {
		parts := strings.SplitN(kv, "=", 2)
		if len(parts) != 2 {
			continue
		}
		out[strings.TrimSpace(parts[0])] = strings.TrimSpace(parts[1])
	}
	return out
}

// Config holds the command-line settings shared by the explorers.
type Config struct {
	Seed     int64
	Width    int
	Height   int
	Zoom     float64
	TPS      int
	HUDWidth int
	Pan      float64

	TuningPath string
	LogLevel   string
	Overrides  KVList
}

// NewConfig returns the default explorer settings.
func NewConfig() *Config {
	return &Config{
		Width:    960,
		Height:   640,
		Zoom:     2,
		TPS:      60,
		HUDWidth: 260,
		Pan:      4,
		LogLevel: "info",
	}
}

// Bind registers the settings on fs.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.Int64Var(&c.Seed, "seed", c.Seed, "world seed (0 picks one from the clock)")
	fs.IntVar(&c.Width, "width", c.Width, "viewport width in pixels or cells")
	fs.IntVar(&c.Height, "height", c.Height, "viewport height in pixels or cells")
	fs.Float64Var(&c.Zoom, "zoom", c.Zoom, "screen pixels per world unit")
	fs.IntVar(&c.TPS, "tps", c.TPS, "updates per second")
	fs.IntVar(&c.HUDWidth, "hud", c.HUDWidth, "HUD panel width in pixels (0 hides it)")
	fs.Float64Var(&c.Pan, "pan", c.Pan, "world units moved per update while a pan key is held")
	fs.StringVar(&c.TuningPath, "tuning", c.TuningPath, "YAML file with generation settings")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "log level: debug, info, warn or error")
	fs.Var(&c.Overrides, "set", "generation override in key=value form (repeatable)")
}

// WorldConfig builds the world configuration: defaults, then the tuning file,
// then -seed, then -set overrides.
func (c *Config) WorldConfig() (world.Config, error) {
	cfg := world.DefaultConfig()
	if c.TuningPath != "" {
		t, err := world.LoadTuning(c.TuningPath)
		if err != nil {
			return world.Config{}, err
		}
		if err := cfg.Apply(t); err != nil {
			return world.Config{}, fmt.Errorf("%s: %w", c.TuningPath, err)
		}
	}
	if c.Seed != 0 {
		cfg.Seed = c.Seed
	}
	cfg.Merge(c.Overrides.Map())
	if err := cfg.Params.Validate(); err != nil {
		return world.Config{}, err
	}
	return cfg, nil
}

// NewLogger returns a text logger writing to w at the named level.
func NewLogger(w io.Writer, level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}
