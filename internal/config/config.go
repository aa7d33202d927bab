// Package config handles loading and validation of wedosctl configuration.
package config

import (
	"fmt"
	"strings"
	"time"
)

// Default values applied when the config file leaves a field unset.
const (
	DefaultTimeout       = 30 * time.Second
	DefaultOutput        = "table"
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "text"
	DefaultMonitorListen = ":8085"
	DefaultVerifyServer  = "ns.wedos.com:53"
	DefaultVerifyTimeout = 5 * time.Second
	DefaultRateRPS       = 2
	DefaultRateBurst     = 2
)

// Config holds the resolved runtime configuration for wedosctl.
// All fields carry their defaults after FileConfig.ToConfig.
type Config struct {
	// WAPI account settings
	User       string // account login, usually an email address
	SecretFile string // path to a file holding the WAPI password
	Endpoint   string // override for the API endpoint, empty means production
	Test       bool   // send requests with the WAPI test flag set

	// Request behavior
	Timeout   time.Duration
	RateRPS   float64 // sustained requests per second against the API
	RateBurst int

	// Output and logging
	Output    string // table, json, yaml
	LogLevel  string // debug, info, warn, error
	LogFormat string // json, text

	// Monitor mode
	MonitorListen string

	// Post-commit verification
	VerifyServer  string
	VerifyTimeout time.Duration
}

// ValidationError aggregates configuration validation failures.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("configuration error: %s", e.Errors[0])
	}
	return fmt.Sprintf("configuration errors:\n  - %s", strings.Join(e.Errors, "\n  - "))
}

// Validate performs cross-field validation on the complete configuration.
func (c *Config) Validate() error {
	var errs []string

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Sprintf("log_level: must be debug, info, warn or error, got %q", c.LogLevel))
	}

	switch c.LogFormat {
	case "json", "text":
	default:
		errs = append(errs, fmt.Sprintf("log_format: must be json or text, got %q", c.LogFormat))
	}

	switch c.Output {
	case "table", "json", "yaml":
	default:
		errs = append(errs, fmt.Sprintf("output: must be table, json or yaml, got %q", c.Output))
	}

	if c.Timeout <= 0 {
		errs = append(errs, fmt.Sprintf("timeout: must be positive, got %s", c.Timeout))
	}
	if c.RateRPS <= 0 {
		errs = append(errs, fmt.Sprintf("rate_limit.rps: must be positive, got %g", c.RateRPS))
	}
	if c.RateBurst < 1 {
		errs = append(errs, fmt.Sprintf("rate_limit.burst: must be at least 1, got %d", c.RateBurst))
	}
	if c.VerifyTimeout <= 0 {
		errs = append(errs, fmt.Sprintf("verify.timeout: must be positive, got %s", c.VerifyTimeout))
	}

	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}
