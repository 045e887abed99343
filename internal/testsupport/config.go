package testsupport

import (
	"path/filepath"
	"testing"

	"heliocat/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.LogDir = filepath.Join(base, "logs")

	for _, opt := range opts {
		opt(&cfg)
	}

	return &cfg
}

// WithDefaultWaveunit sets the fallback wavelength unit on the test config.
func WithDefaultWaveunit(unit string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Ingest.DefaultWaveunit = unit
	}
}

// WithPattern sets the ingest glob pattern on the test config.
func WithPattern(pattern string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Ingest.Pattern = pattern
	}
}
