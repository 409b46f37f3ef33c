package config

import (
	"errors"
	"fmt"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var defaultEnvLoaded sync.Once

var (
	ErrNilPointer    = errors.New("config: nil pointer provided")
	ErrParsingConfig = errors.New("config: failed to parse environment variables")
)

// Load parses environment variables into the provided config struct
// based on `env` field tags. The default .env file is loaded once per
// process; a missing .env file is not an error.
func Load[T any](v *T) error {
	defaultEnvLoaded.Do(func() {
		_ = godotenv.Load()
	})

	if v == nil {
		return ErrNilPointer
	}

	if err := env.Parse(v); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	return nil
}

// MustLoad is Load for service wiring: it panics on error so a
// misconfigured process fails at startup instead of at first use.
func MustLoad[T any]() T {
	var v T
	if err := Load(&v); err != nil {
		panic(fmt.Sprintf("config: %T: %v", v, err))
	}
	return v
}
