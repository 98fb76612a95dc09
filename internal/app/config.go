package app

import "fmt"

// Config holds all the necessary configuration for an App instance to run.
// Location and Plugin may come from flags, a run profile, or both; flags win.
type Config struct {
	ProfilePath string
	Location    string
	Plugin      string
	LogFormat   string
	LogLevel    string
}

// NewConfig validates a Config and fills in defaults.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, fmt.Errorf("invalid log-format: must be 'text' or 'json'")
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, fmt.Errorf("invalid log-level: must be 'debug', 'info', 'warn', or 'error'")
	}

	if cfg.ProfilePath == "" && cfg.Location == "" {
		return nil, fmt.Errorf("either a run profile or an image location is required")
	}
	return &cfg, nil
}
