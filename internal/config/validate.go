package config

import (
	"fmt"

	"heliocat/internal/units"
)

var validLogFormats = map[string]struct{}{
	"console": {},
	"json":    {},
}

var validLogLevels = map[string]struct{}{
	"debug": {},
	"info":  {},
	"warn":  {},
	"error": {},
}

// Validate checks the configuration for values that would fail later in
// surprising places.
func (c *Config) Validate() error {
	if _, ok := validLogFormats[c.Logging.Format]; !ok {
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	if _, ok := validLogLevels[c.Logging.Level]; !ok {
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	if c.Ingest.DefaultWaveunit != "" {
		if _, err := units.Resolve(c.Ingest.DefaultWaveunit); err != nil {
			return fmt.Errorf("ingest.default_waveunit: %w", err)
		}
	}
	return nil
}
