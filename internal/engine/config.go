package engine

import (
	"context"
	"fmt"
	"time"

	logging "github.com/ipfs/go-log/v2"
	"github.com/sethvargo/go-envconfig"
)

// Config controls the pipeline and the generation bounds. Every field can be
// set from the environment.
type Config struct {
	// Minimize runs Hopcroft minimization after subset construction.
	Minimize bool `env:"LANGGEN_MINIMIZE, default=true"`
	// Complete adds a sink state so every state has a move on every symbol.
	Complete bool `env:"LANGGEN_COMPLETE, default=false"`
	// MaxStates caps subset construction; zero means no cap.
	MaxStates int `env:"LANGGEN_MAX_STATES, default=10000"`

	MaxAttempts int `env:"LANGGEN_MAX_ATTEMPTS, default=100"`
	// MaxResults bounds enumeration; zero means no bound.
	MaxResults int   `env:"LANGGEN_MAX_RESULTS, default=100000"`
	Seed       int64 `env:"LANGGEN_SEED, default=1"`

	// CacheTTL is how long compiled automata are kept; zero disables the cache.
	CacheTTL time.Duration `env:"LANGGEN_CACHE_TTL, default=10m"`
	LogLevel string        `env:"LANGGEN_LOG_LEVEL, default=warn"`
}

// LoadConfig reads the configuration from the process environment.
func LoadConfig(ctx context.Context) (Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return cfg, fmt.Errorf("engine: load config: %w", err)
	}
	return cfg, nil
}

// DefaultConfig returns the configuration with every field at its default,
// ignoring the environment.
func DefaultConfig() Config {
	var cfg Config
	err := envconfig.ProcessWith(context.Background(), &envconfig.Config{
		Target:   &cfg,
		Lookuper: envconfig.MapLookuper(nil),
	})
	if err != nil {
		panic(err)
	}
	return cfg
}

// loggers matches the go-log subsystems of this module.
const loggers = "^(engine|grammar|langgen)$"

// SetLogLevel applies level (debug, info, warn, error) to the loggers of this
// module that have been registered.
func SetLogLevel(level string) error {
	if err := logging.SetLogLevelRegex(loggers, level); err != nil {
		return fmt.Errorf("engine: log level %q: %w", level, err)
	}
	return nil
}
