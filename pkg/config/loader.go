package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var (
	ErrNilPointer    = errors.New("config: nil pointer passed to Load")
	ErrParsingConfig = errors.New("config: failed to parse environment variables")
)

var (
	mu     sync.Mutex
	cache  = make(map[string]any)
	envDot sync.Once
)

// Load parses environment variables into v based on its env struct tags.
// The first call loads a .env file from the working directory when one
// exists. Each configuration type is parsed once per process; later calls
// for the same type return the cached value.
func Load[T any](v *T) error {
	if v == nil {
		return ErrNilPointer
	}
	envDot.Do(func() {
		// Missing .env is fine, real deployments use the environment.
		_ = godotenv.Load()
	})

	key := typeName[T]()

	mu.Lock()
	defer mu.Unlock()

	if cached, ok := cache[key]; ok {
		*v = cached.(T)
		return nil
	}
	if err := env.Parse(v); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	cache[key] = *v
	return nil
}

// MustLoad works like Load but panics on failure. Intended for configuration
// the process cannot start without.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
}

// LoadEnv loads the given dotenv files into the process environment before
// any Load call. Later files override earlier ones.
func LoadEnv(paths ...string) error {
	for _, path := range paths {
		if err := godotenv.Overload(path); err != nil {
			return err
		}
	}
	return nil
}

func typeName[T any]() string {
	var zero T
	if t := reflect.TypeOf(zero); t != nil {
		return t.String()
	}
	return fmt.Sprintf("%T", *new(T))
}
