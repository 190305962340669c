package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Env is the process environment. CLI flags default to these values.
type Env struct {
	DBPath       string        `env:"RINGSIDE_DB"           envDefault:"~/.ringside/ringside.db"`
	FPS          int           `env:"RINGSIDE_FPS"          envDefault:"60"`
	Difficulty   string        `env:"RINGSIDE_DIFFICULTY"   envDefault:"normal"`
	SSHAddr      string        `env:"RINGSIDE_SSH_ADDR"     envDefault:":23234"`
	HostKeyPath  string        `env:"RINGSIDE_HOST_KEY"`
	IdleTimeout  time.Duration `env:"RINGSIDE_IDLE_TIMEOUT" envDefault:"30m"`
	LogLevel     string        `env:"RINGSIDE_LOG_LEVEL"    envDefault:"info"`
	LogFile      string        `env:"RINGSIDE_LOG_FILE"     envDefault:"~/.ringside/ringside.log"`
	OTelEndpoint string        `env:"RINGSIDE_OTEL_ENDPOINT"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// LoadEnv parses Env from the process environment.
func LoadEnv() (Env, error) {
	var e Env
	if err := ParseEnv(&e); err != nil {
		return Env{}, err
	}
	return e, nil
}
