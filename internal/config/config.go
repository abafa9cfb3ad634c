package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variable names
const (
	EnvMaxIndex = "PFV_MAX_INDEX"
	EnvWorkers  = "PFV_WORKERS"
	EnvAuditLog = "PFV_AUDIT_LOG"
)

// DefaultMaxIndex bounds the reconstructed series (4 bytes of delta plus
// prefix and price per index).
const DefaultMaxIndex = 1 << 22

// HardMaxIndex is the largest value PFV_MAX_INDEX may take. A series of
// this length already holds tens of millions of prices in memory.
const HardMaxIndex = 1 << 26

// Config holds verifier settings.
type Config struct {
	MaxIndex int
	Workers  int
	AuditLog bool
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		MaxIndex: DefaultMaxIndex,
		Workers:  runtime.NumCPU(),
		AuditLog: false,
	}
}

// Load reads the given .env files (missing files are skipped; variables
// already set in the environment win) and builds a Config from the
// environment.
func Load(files ...string) (Config, error) {
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}
	return FromEnv()
}

// FromEnv builds a Config from the current environment.
func FromEnv() (Config, error) {
	cfg := Default()

	var err error
	if cfg.MaxIndex, err = envInt(EnvMaxIndex, cfg.MaxIndex); err != nil {
		return Config{}, err
	}
	if cfg.MaxIndex <= 0 {
		return Config{}, fmt.Errorf("%s must be positive, got %d", EnvMaxIndex, cfg.MaxIndex)
	}
	if cfg.MaxIndex > HardMaxIndex {
		return Config{}, fmt.Errorf("%s must be at most %d, got %d", EnvMaxIndex, HardMaxIndex, cfg.MaxIndex)
	}
	if cfg.Workers, err = envInt(EnvWorkers, cfg.Workers); err != nil {
		return Config{}, err
	}
	if cfg.Workers <= 0 {
		return Config{}, fmt.Errorf("%s must be positive, got %d", EnvWorkers, cfg.Workers)
	}
	if cfg.AuditLog, err = envBool(EnvAuditLog, cfg.AuditLog); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func envInt(k string, def int) (int, error) {
	s := strings.TrimSpace(os.Getenv(k))
	if s == "" {
		return def, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%s: %q is not an integer", k, s)
	}
	return v, nil
}

func envBool(k string, def bool) (bool, error) {
	s := strings.TrimSpace(os.Getenv(k))
	if s == "" {
		return def, nil
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return false, fmt.Errorf("%s: %q is not a boolean", k, s)
	}
	return v, nil
}
