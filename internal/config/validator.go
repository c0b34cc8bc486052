package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate checks values that the env tags cannot express.
// Every problem is reported at once so a broken .env is fixed in one pass.
func (c *Config) Validate() error {
	var problems []string

	if c.APIKey == "" {
		problems = append(problems, ErrMsgAPIKeyRequired)
	}
	if c.Port <= 0 || c.Port > 65535 {
		problems = append(problems, fmt.Sprintf("PORT out of range: %d", c.Port))
	}
	if c.DBMaxConns < MinDBConns {
		problems = append(problems, fmt.Sprintf("DB_MAX_CONNS must be at least %d", MinDBConns))
	}
	if c.SlowQueryThreshold <= 0 {
		problems = append(problems, "DB_SLOW_QUERY_THRESHOLD must be positive")
	}
	if c.AutosaveInterval < MinTickInterval {
		problems = append(problems, fmt.Sprintf("AUTOSAVE_INTERVAL must be at least %s", MinTickInterval))
	}
	if c.PlaytimeInterval < MinTickInterval {
		problems = append(problems, fmt.Sprintf("PLAYTIME_INTERVAL must be at least %s", MinTickInterval))
	}
	if c.VehicleAutosaveInterval < MinTickInterval {
		problems = append(problems, fmt.Sprintf("VEHICLE_AUTOSAVE_INTERVAL must be at least %s", MinTickInterval))
	}
	if c.StartingCash < 0 || c.StartingBank < 0 {
		problems = append(problems, "starting balances must not be negative")
	}
	if c.WorkerCount < 1 || c.SaveConcurrency < 1 {
		problems = append(problems, "WORKER_COUNT and SAVE_CONCURRENCY must be at least 1")
	}
	// A zero rate disables admin API rate limiting
	if c.RateLimitPerSecond < 0 || (c.RateLimitPerSecond > 0 && c.RateLimitBurst < 1) {
		problems = append(problems, "RATE_LIMIT_PER_SECOND must not be negative and RATE_LIMIT_BURST must be at least 1")
	}

	if len(problems) > 0 {
		return errors.New("invalid configuration: " + strings.Join(problems, "; "))
	}
	return nil
}

// Warnings returns non-fatal findings, such as example secrets left in place.
func (c *Config) Warnings() []string {
	var warnings []string

	if c.DBPassword == ExampleDBPassword {
		warnings = append(warnings, "DB_PASSWORD appears to be using the example value - please use a secure password")
	}
	if c.APIKey == ExampleAPIKey {
		warnings = append(warnings, "API_KEY appears to be using the example value - generate a secure key with: openssl rand -hex 32")
	}

	return warnings
}
