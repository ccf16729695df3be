package config

import (
	"fmt"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535 (got %d)", c.Server.Port)
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error (got %q)", c.Log.Level)
	}

	if err := c.Ledger.validate(); err != nil {
		return fmt.Errorf("ledger: %w", err)
	}

	return nil
}

func (l *LedgerConfig) validate() error {
	if l.SpecMaxDepth <= 0 {
		return fmt.Errorf("spec_max_depth must be > 0 (got %d)", l.SpecMaxDepth)
	}
	if l.MaxLinesPerRecord < 0 {
		return fmt.Errorf("max_lines_per_record must be >= 0 (got %d)", l.MaxLinesPerRecord)
	}
	return nil
}
