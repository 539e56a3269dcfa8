package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Config holds the settings that are read from the environment rather than
// passed on the command line.
type Config struct {
	ConnectTimeout time.Duration `env:"SWEEP_CONNECT_TIMEOUT" envDefault:"30s"`
	AppName        string        `env:"SWEEP_APP_NAME" envDefault:"go-unitysweep"`
	LogLevel       string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat      string        `env:"LOG_FORMAT" envDefault:"console"`
}

// Load reads envFile, if it exists, into the process environment without
// overriding variables that are already set, then parses Config.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("unable to load %v: %w", envFile, err)
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("unable to parse configuration: %w", err)
	}

	if cfg.ConnectTimeout <= 0 {
		return nil, fmt.Errorf("SWEEP_CONNECT_TIMEOUT must be positive, got %v", cfg.ConnectTimeout)
	}

	return cfg, nil
}
