package config

const (
	defaultDataDir     = "~/.local/share/heliocat"
	defaultLogDir      = "~/.local/share/heliocat/logs"
	defaultScanPattern = "*"
	defaultLogFormat   = "console"
	defaultLogLevel    = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		Ingest: Ingest{
			Pattern: defaultScanPattern,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
