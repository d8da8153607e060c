// Package config holds all rehearse configuration, loaded from the
// environment (with a best-effort .env file) on top of defaults.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds all rehearse configuration.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Practice PracticeConfig
}

type ServerConfig struct {
	Bind string `env:"REHEARSE_BIND" envDefault:"127.0.0.1"`
	Port int    `env:"REHEARSE_PORT" envDefault:"37878"`
}

type DatabaseConfig struct {
	Path string `env:"REHEARSE_DB"` // empty: resolved via store.DefaultDBPath()
}

type PracticeConfig struct {
	TypingDelayMS int `env:"REHEARSE_TYPING_DELAY_MS" envDefault:"1500"`
	HintDismissMS int `env:"REHEARSE_HINT_DISMISS_MS" envDefault:"5000"`
}

// Load reads configuration from the environment. A missing .env file is not
// an error; the process environment wins either way.
func Load() (Config, error) {
	_ = godotenv.Load()

	var c Config
	if err := env.Parse(&c); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return c, nil
}

// Default returns a Config with defaults only, ignoring the environment.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Bind: "127.0.0.1",
			Port: 37878,
		},
		Practice: PracticeConfig{
			TypingDelayMS: 1500,
			HintDismissMS: 5000,
		},
	}
}

// ListenAddr returns the bind:port address string.
func (c *Config) ListenAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Bind, c.Server.Port)
}

// TypingDelay returns the simulated partner typing delay.
func (p PracticeConfig) TypingDelay() time.Duration {
	return time.Duration(p.TypingDelayMS) * time.Millisecond
}

// HintDismiss returns the encouragement-hint auto-dismiss delay.
func (p PracticeConfig) HintDismiss() time.Duration {
	return time.Duration(p.HintDismissMS) * time.Millisecond
}
