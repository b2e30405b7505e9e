package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Env holds process settings shared by the binaries. Flags override these.
type Env struct {
	Config    string        `env:"PARADE_CONFIG"`
	Seed      int64         `env:"PARADE_SEED"`
	LogLevel  string        `env:"PARADE_LOG_LEVEL"  envDefault:"info"`
	LogFormat string        `env:"PARADE_LOG_FORMAT" envDefault:"text"`
	NoColor   bool          `env:"PARADE_NO_COLOR"`
	WebAddr   string        `env:"PARADE_WEB_ADDR"   envDefault:":8080"`
	WebDelay  time.Duration `env:"PARADE_WEB_DELAY"  envDefault:"400ms"`
}

// ParseEnv loads settings from the process environment.
func ParseEnv() (Env, error) {
	var cfg Env
	if err := env.Parse(&cfg); err != nil {
		return Env{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// ParseEnvFrom loads settings from the given variables instead of the
// process environment.
func ParseEnvFrom(vars map[string]string) (Env, error) {
	var cfg Env
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: vars}); err != nil {
		return Env{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
