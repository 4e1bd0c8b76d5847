package config

import "fmt"

// Validate checks configuration invariants after normalization.
func (c *Config) Validate() error {
	if c.Encoder.OutputFPS < 0 {
		return fmt.Errorf("encoder output_fps must not be negative, got %d", c.Encoder.OutputFPS)
	}
	if c.Encoder.MinFreeSpaceMiB < 0 {
		return fmt.Errorf("encoder min_free_space_mib must not be negative, got %d", c.Encoder.MinFreeSpaceMiB)
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}
