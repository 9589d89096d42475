// Package config loads the settings of pagesim from .env files and the
// environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sarchlab/pagesim/mem/vm"
)

// Environment variables read by Load.
const (
	EnvPageSize    = "PAGESIM_PAGE_SIZE"
	EnvLogLevel    = "PAGESIM_LOG_LEVEL"
	EnvMonitorPort = "PAGESIM_MONITOR_PORT"
)

// DefaultEnvFile is loaded when no file is given. It may be missing.
const DefaultEnvFile = ".env"

// Config holds the settings of a pagesim process.
type Config struct {
	PageSize    vm.PageSize
	LogLevel    slog.Level
	MonitorPort int
}

// Default returns the settings used when nothing is configured.
func Default() Config {
	return Config{
		PageSize: vm.DefaultPageSize,
		LogLevel: slog.LevelInfo,
	}
}

// Load reads the given .env files into the environment, without overriding
// variables that are already set, and builds a Config from the environment.
// With no files, DefaultEnvFile is read if it exists.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		err := godotenv.Load(DefaultEnvFile)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("loading %s: %w", DefaultEnvFile, err)
		}
	} else if err := godotenv.Load(envFiles...); err != nil {
		return Config{}, fmt.Errorf("loading env files: %w", err)
	}

	return FromEnv()
}

// FromEnv builds a Config from the environment only.
func FromEnv() (Config, error) {
	c := Default()

	if v, ok := lookup(EnvPageSize); ok {
		size, err := vm.ParsePageSize(v)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvPageSize, err)
		}

		c.PageSize = size
	}

	if v, ok := lookup(EnvLogLevel); ok {
		level, err := ParseLogLevel(v)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvLogLevel, err)
		}

		c.LogLevel = level
	}

	if v, ok := lookup(EnvMonitorPort); ok {
		port, err := strconv.Atoi(v)
		if err != nil || port < 0 || port > 65535 {
			return Config{}, fmt.Errorf("%s: invalid port %q", EnvMonitorPort, v)
		}

		c.MonitorPort = port
	}

	return c, nil
}

// ParseLogLevel accepts debug, info, warn, or error in any case.
func ParseLogLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, fmt.Errorf("invalid log level %q", s)
	}

	return level, nil
}

func lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(v) == "" {
		return "", false
	}

	return strings.TrimSpace(v), true
}
