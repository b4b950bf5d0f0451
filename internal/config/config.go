// Package config loads runner settings from the environment and holds the
// gameplay balance presets.
package config

import (
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/caarlos0/env/v11"
)

// Mode selects how the runner advances simulated time.
type Mode string

const (
	ModeRealtime Mode = "realtime" // follow the wall clock
	ModeReplay   Mode = "replay"   // run jittered frames back to back
)

// Config holds the runner settings. Every field can be set through a
// SAVE_-prefixed environment variable.
type Config struct {
	FrameInterval  time.Duration `env:"FRAME_INTERVAL" envDefault:"100ms"`
	Warp           uint64        `env:"WARP" envDefault:"1"`
	RunFor         time.Duration `env:"RUN_FOR" envDefault:"0s"`
	StatusInterval time.Duration `env:"STATUS_INTERVAL" envDefault:"5s"`
	JournalDSN     string        `env:"JOURNAL_DSN" envDefault:"file:journal?mode=memory&cache=shared"`
	LogLevel       slog.Level    `env:"LOG_LEVEL" envDefault:"INFO"`
	Autoplay       bool          `env:"AUTOPLAY" envDefault:"true"`
	Mode           Mode          `env:"MODE" envDefault:"realtime"`
	ReplayFrames   int           `env:"REPLAY_FRAMES" envDefault:"100000"`
	JitterSeed     int64         `env:"JITTER_SEED" envDefault:"42"`
	Difficulty     string        `env:"DIFFICULTY" envDefault:"default"`
	APIPort        int           `env:"API_PORT" envDefault:"0"` // 0 disables the HTTP API
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.ParseWithOptions(target, env.Options{Prefix: "SAVE_"}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load parses Config from the environment and validates it.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks settings that the environment parser cannot.
func (c Config) Validate() error {
	if c.FrameInterval <= 0 {
		return fmt.Errorf("frame interval must be positive, got %s", c.FrameInterval)
	}
	if c.Warp == 0 {
		return fmt.Errorf("warp must be at least 1")
	}
	// Jittered replay frames last up to 1.5 warped frame intervals.
	if c.Warp > uint64(math.MaxInt64/2/c.FrameInterval) {
		return fmt.Errorf("warp %d is too large for a %s frame interval", c.Warp, c.FrameInterval)
	}
	if c.RunFor < 0 {
		return fmt.Errorf("run duration must not be negative, got %s", c.RunFor)
	}
	switch c.Mode {
	case ModeRealtime, ModeReplay:
	default:
		return fmt.Errorf("unknown mode %q", c.Mode)
	}
	if c.Mode == ModeReplay && c.ReplayFrames <= 0 {
		return fmt.Errorf("replay needs a positive frame count, got %d", c.ReplayFrames)
	}
	if c.APIPort < 0 || c.APIPort > 65535 {
		return fmt.Errorf("invalid API port %d", c.APIPort)
	}
	if _, err := BalanceFor(c.Difficulty); err != nil {
		return err
	}
	return nil
}
