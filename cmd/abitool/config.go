package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/eth2030/abicodec/log"
)

// ErrInvalidConfig is returned by Config.Validate.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds the settings of one abitool invocation.
type Config struct {
	Verbosity int    // log level 0-5
	LogFormat string // log.FormatJSON or log.FormatText
	Call      bool   // payloads carry a 4-byte selector prefix
}

// DefaultConfig returns the settings used when no flag or environment
// variable overrides them.
func DefaultConfig() Config {
	return Config{
		Verbosity: 3,
		LogFormat: log.FormatJSON,
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Verbosity < 0 || c.Verbosity > 5 {
		return fmt.Errorf("%w: verbosity %d out of range 0-5", ErrInvalidConfig, c.Verbosity)
	}
	switch c.LogFormat {
	case log.FormatJSON, log.FormatText:
	default:
		return fmt.Errorf("%w: unknown log format %q", ErrInvalidConfig, c.LogFormat)
	}
	return nil
}

// ApplyEnvironment overrides cfg from ABITOOL_VERBOSITY, ABITOOL_LOG_FORMAT
// and ABITOOL_CALL. Unparsable values are ignored. Flags are applied after
// the environment and take precedence.
func ApplyEnvironment(cfg *Config) {
	if v := os.Getenv("ABITOOL_VERBOSITY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Verbosity = n
		}
	}
	if v := os.Getenv("ABITOOL_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}
	if v := os.Getenv("ABITOOL_CALL"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Call = b
		}
	}
}
