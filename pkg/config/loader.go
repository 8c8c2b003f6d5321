package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// cache keeps one parsed copy per configuration type.
type cache struct {
	mu     sync.Mutex
	values map[reflect.Type]any
}

var (
	global = &cache{values: make(map[reflect.Type]any)}

	defaultEnvLoaded sync.Once
)

// LoadEnv reads the given .env files into the process environment without
// overriding variables that are already set. With no paths it reads ./.env.
func LoadEnv(paths ...string) error {
	if err := godotenv.Load(paths...); err != nil {
		return errors.Join(ErrLoadingEnvFile, err)
	}
	return nil
}

// Load parses environment variables into v using `env` struct tags.
// The default .env file is read once per process if present. Each
// configuration type is parsed once; later calls receive the cached copy.
//
//	type EmitterConfig struct {
//		Interval time.Duration `env:"EMIT_INTERVAL" envDefault:"1s"`
//	}
//
//	var cfg EmitterConfig
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
func Load[T any](v *T) error {
	defaultEnvLoaded.Do(func() {
		// The .env file is optional.
		_ = godotenv.Load()
	})
	if v == nil {
		return ErrNilPointer
	}

	key := reflect.TypeFor[T]()

	global.mu.Lock()
	defer global.mu.Unlock()

	if cached, ok := global.values[key]; ok {
		*v = cached.(T)
		return nil
	}

	if err := env.Parse(v); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	global.values[key] = *v
	return nil
}

// MustLoad works like Load but panics if configuration loading fails.
// Use it for configuration the process cannot start without.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
}

// ResetCache drops all cached configurations so the next Load parses the
// environment again. Intended for tests.
func ResetCache() {
	global.mu.Lock()
	defer global.mu.Unlock()
	clear(global.values)
}
