// Package config loads the run configuration of the oracle harness:
// defaults, then an optional YAML file, then MODGRAPH_* environment
// overrides, then validation.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/modgraph/strategy"
)

// MaxFileSize bounds the size of a configuration file.
const MaxFileSize = 1 << 20

var (
	// ErrFileTooLarge is returned when the file exceeds MaxFileSize.
	ErrFileTooLarge = errors.New("config: file too large")

	// ErrInvalid wraps every validation failure.
	ErrInvalid = errors.New("config: invalid configuration")
)

var validate = validator.New()

// Range is an inclusive count range.
type Range struct {
	Min int `yaml:"min" validate:"gte=0"`
	Max int `yaml:"max" validate:"gtefield=Min"`
}

// SizeRange converts r for strategy.SliceOf.
func (r Range) SizeRange() strategy.SizeRange {
	return strategy.SizeRange{Min: r.Min, Max: r.Max}
}

// Config is the harness configuration.
type Config struct {
	// Nodes bounds the module count of a case. At least one node is required.
	Nodes Range `yaml:"nodes"`
	// EdgeAttempts bounds the number of edge attempts of a case.
	EdgeAttempts Range `yaml:"edge_attempts"`
	// Mutations bounds the number of mutations of a case.
	Mutations Range `yaml:"mutations"`
	// Seed of the first case; case i uses Seed+i.
	Seed int64 `yaml:"seed"`
	// Cases is the number of cases per run.
	Cases int `yaml:"cases" validate:"gte=1"`
	// Parallelism bounds concurrently running cases.
	Parallelism int `yaml:"parallelism" validate:"gte=1,lte=256"`
	// WorkDir holds generated packages; empty means a temporary directory per case.
	WorkDir string `yaml:"work_dir"`
	// StorePath is the replay store directory; empty means in memory.
	StorePath string `yaml:"store_path"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level" validate:"oneof=debug info warn error"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Nodes:        Range{Min: 1, Max: 20},
		EdgeAttempts: Range{Min: 0, Max: 40},
		Mutations:    Range{Min: 0, Max: 20},
		Seed:         strategy.DefaultSeed,
		Cases:        64,
		Parallelism:  4,
		LogLevel:     "info",
	}
}

// Load returns Default overlaid with the file at path (if path is not empty)
// and the environment, validated.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}
	if err := loadEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if info.Size() > MaxFileSize {
		return fmt.Errorf("%w: %s is %d bytes", ErrFileTooLarge, path, info.Size())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err = yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}

	return nil
}

func loadEnv(cfg *Config) error {
	ints := []struct {
		key string
		dst *int
	}{
		{"MODGRAPH_CASES", &cfg.Cases},
		{"MODGRAPH_PARALLELISM", &cfg.Parallelism},
	}
	for _, e := range ints {
		if v := os.Getenv(e.key); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("%w: %s=%q", ErrInvalid, e.key, v)
			}
			*e.dst = n
		}
	}
	if v := os.Getenv("MODGRAPH_SEED"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: MODGRAPH_SEED=%q", ErrInvalid, v)
		}
		cfg.Seed = n
	}
	if v := os.Getenv("MODGRAPH_STORE_PATH"); v != "" {
		cfg.StorePath = v
	}
	if v := os.Getenv("MODGRAPH_LOG_LEVEL"); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}

	return nil
}

// Validate checks field constraints and that every case has at least one node.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if c.Nodes.Min < 1 {
		return fmt.Errorf("%w: nodes.min must be at least 1", ErrInvalid)
	}

	return nil
}

// SlogLevel maps LogLevel onto slog.
func (c Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
