package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	appDir   = "wedosctl"
	fileName = "config.yaml"
)

// pathOverride, when non-empty, replaces the default config file path.
// Intended for testing. Use SetPath / ResetPath to manage.
var pathOverride string

// SetPath overrides the config file path. Intended for testing.
func SetPath(p string) { pathOverride = p }

// ResetPath clears the path override, reverting to the default.
func ResetPath() { pathOverride = "" }

// Path returns the absolute path to the config file.
// If SetPath has been called, that value is returned instead.
// Otherwise it uses os.UserConfigDir which resolves to
// ~/Library/Application Support on macOS, ~/.config on Linux, and
// %AppData% on Windows.
func Path() (string, error) {
	if pathOverride != "" {
		return pathOverride, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("unable to determine config directory: %w", err)
	}
	return filepath.Join(base, appDir, fileName), nil
}

// FileConfig represents the YAML configuration file structure.
// This mirrors the runtime Config but uses YAML-friendly types.
type FileConfig struct {
	// WAPI account settings
	User       string `yaml:"user,omitempty"`
	SecretFile string `yaml:"secret_file,omitempty"`
	Endpoint   string `yaml:"endpoint,omitempty"`
	Test       *bool  `yaml:"test,omitempty"` // pointer to distinguish unset from false

	// Request behavior
	Timeout   string               `yaml:"timeout,omitempty"` // Go duration format (e.g. "30s")
	RateLimit *FileRateLimitConfig `yaml:"rate_limit,omitempty"`

	// Output and logging
	Output  string             `yaml:"output,omitempty"` // table, json, yaml
	Logging *FileLoggingConfig `yaml:"logging,omitempty"`

	// Monitor mode
	Monitor *FileMonitorConfig `yaml:"monitor,omitempty"`

	// Post-commit verification
	Verify *FileVerifyConfig `yaml:"verify,omitempty"`
}

// FileLoggingConfig holds logging settings.
type FileLoggingConfig struct {
	Level  string `yaml:"level,omitempty"`  // debug, info, warn, error
	Format string `yaml:"format,omitempty"` // json, text
}

// FileRateLimitConfig holds client-side API rate limit settings.
type FileRateLimitConfig struct {
	RPS   float64 `yaml:"rps,omitempty"`
	Burst int     `yaml:"burst,omitempty"`
}

// FileMonitorConfig holds monitor server settings.
type FileMonitorConfig struct {
	Listen string `yaml:"listen,omitempty"` // address for health/metrics endpoints
}

// FileVerifyConfig holds post-commit DNS verification settings.
type FileVerifyConfig struct {
	Server  string `yaml:"server,omitempty"`  // authoritative nameserver host:port
	Timeout string `yaml:"timeout,omitempty"` // Go duration format
}

// envVarPattern matches ${VAR} or ${VAR:-default} syntax.
var envVarPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

// InterpolateEnvVars replaces ${VAR} patterns with environment variable values.
// Supports ${VAR:-default} syntax for default values.
func InterpolateEnvVars(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		groups := envVarPattern.FindStringSubmatch(match)
		if len(groups) < 2 {
			return match
		}
		varName := groups[1]
		defaultValue := ""
		if len(groups) >= 3 {
			defaultValue = groups[2]
		}

		if value := os.Getenv(varName); value != "" {
			return value
		}
		return defaultValue
	})
}

// interpolateEnvVars interpolates environment variables in all string
// fields of the config structure.
func (c *FileConfig) interpolateEnvVars() {
	c.User = InterpolateEnvVars(c.User)
	c.SecretFile = InterpolateEnvVars(c.SecretFile)
	c.Endpoint = InterpolateEnvVars(c.Endpoint)
	c.Timeout = InterpolateEnvVars(c.Timeout)
	c.Output = InterpolateEnvVars(c.Output)

	if c.Logging != nil {
		c.Logging.Level = InterpolateEnvVars(c.Logging.Level)
		c.Logging.Format = InterpolateEnvVars(c.Logging.Format)
	}
	if c.Monitor != nil {
		c.Monitor.Listen = InterpolateEnvVars(c.Monitor.Listen)
	}
	if c.Verify != nil {
		c.Verify.Server = InterpolateEnvVars(c.Verify.Server)
		c.Verify.Timeout = InterpolateEnvVars(c.Verify.Timeout)
	}
}

// LoadFile reads and parses a YAML configuration file.
// Environment variables in ${VAR} format are interpolated.
func LoadFile(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg FileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing YAML config: %w", err)
	}

	cfg.interpolateEnvVars()

	return &cfg, nil
}

// Load reads the config file from the default path (or the SetPath
// override). A missing file is not an error; the zero FileConfig is
// returned so that ToConfig yields pure defaults.
func Load() (*FileConfig, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	cfg, err := LoadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &FileConfig{}, nil
		}
		return nil, err
	}
	return cfg, nil
}

// ToConfig converts file config to the runtime Config, applying defaults.
// Values from the file take precedence; flags override later.
func (c *FileConfig) ToConfig() *Config {
	cfg := &Config{
		Timeout:       DefaultTimeout,
		Output:        DefaultOutput,
		LogLevel:      DefaultLogLevel,
		LogFormat:     DefaultLogFormat,
		RateRPS:       DefaultRateRPS,
		RateBurst:     DefaultRateBurst,
		MonitorListen: DefaultMonitorListen,
		VerifyServer:  DefaultVerifyServer,
		VerifyTimeout: DefaultVerifyTimeout,
	}

	cfg.User = c.User
	cfg.SecretFile = c.SecretFile
	cfg.Endpoint = c.Endpoint
	if c.Test != nil {
		cfg.Test = *c.Test
	}
	if c.Timeout != "" {
		if timeout, err := time.ParseDuration(c.Timeout); err == nil && timeout > 0 {
			cfg.Timeout = timeout
		}
	}
	if c.Output != "" {
		cfg.Output = strings.ToLower(c.Output)
	}

	if c.Logging != nil {
		if c.Logging.Level != "" {
			cfg.LogLevel = strings.ToLower(c.Logging.Level)
		}
		if c.Logging.Format != "" {
			cfg.LogFormat = strings.ToLower(c.Logging.Format)
		}
	}

	if c.RateLimit != nil {
		if c.RateLimit.RPS > 0 {
			cfg.RateRPS = c.RateLimit.RPS
		}
		if c.RateLimit.Burst > 0 {
			cfg.RateBurst = c.RateLimit.Burst
		}
	}

	if c.Monitor != nil && c.Monitor.Listen != "" {
		cfg.MonitorListen = c.Monitor.Listen
	}

	if c.Verify != nil {
		if c.Verify.Server != "" {
			cfg.VerifyServer = c.Verify.Server
		}
		if c.Verify.Timeout != "" {
			if timeout, err := time.ParseDuration(c.Verify.Timeout); err == nil && timeout > 0 {
				cfg.VerifyTimeout = timeout
			}
		}
	}

	return cfg
}
