package stress

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"
)

// Config controls a stress run.
type Config struct {
	// Writer goroutines per backend, each doing OpsPerWriter increments
	Writers      int `json:"writers"`
	OpsPerWriter int `json:"ops_per_writer"`

	// Reader goroutines per backend, each doing OpsPerReader gets
	Readers      int `json:"readers"`
	OpsPerReader int `json:"ops_per_reader"`

	// Backends to exercise, in order
	Backends []string `json:"backends"`

	// How often live snapshots are published, in milliseconds
	SampleEveryMS int `json:"sample_every_ms"`

	// Where -plain -report writes the raw markdown, empty to skip.
	// $VAR and ${VAR} are expanded.
	ReportPath string `json:"report_path"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Writers:       8,
		OpsPerWriter:  25000,
		Readers:       8,
		OpsPerReader:  25000,
		Backends:      []string{"mutex", "rwmutex", "serial", "barrier", "spin"},
		SampleEveryMS: 100,
	}
}

// Load reads a config file, starting from defaults so a partial file
// works. An empty path returns the defaults untouched.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	cfg.ReportPath = expandString(cfg.ReportPath)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SampleInterval returns the snapshot publishing interval.
func (c *Config) SampleInterval() time.Duration {
	if c.SampleEveryMS <= 0 {
		return 100 * time.Millisecond
	}
	return time.Duration(c.SampleEveryMS) * time.Millisecond
}

func (c *Config) validate() error {
	if c.Writers < 1 {
		return fmt.Errorf("writers must be at least 1, got %d", c.Writers)
	}
	if c.OpsPerWriter < 1 {
		return fmt.Errorf("ops_per_writer must be at least 1, got %d", c.OpsPerWriter)
	}
	if c.Readers < 0 {
		return fmt.Errorf("readers must not be negative, got %d", c.Readers)
	}
	if len(c.Backends) == 0 {
		return fmt.Errorf("backends must not be empty")
	}
	for _, name := range c.Backends {
		if !knownBackend(name) {
			return fmt.Errorf("unknown backend: %s", name)
		}
	}
	return nil
}

// expandString expands environment variables in a string.
// Supports $VAR and ${VAR} syntax.
func expandString(s string) string {
	re := regexp.MustCompile(`\$\{([^}]+)\}|\$([A-Za-z_][A-Za-z0-9_]*)`)

	return re.ReplaceAllStringFunc(s, func(match string) string {
		var varName string
		if strings.HasPrefix(match, "${") {
			varName = match[2 : len(match)-1]
		} else {
			varName = match[1:]
		}

		if value := os.Getenv(varName); value != "" {
			return value
		}

		// Leave the reference alone if the env var is unset
		return match
	})
}
