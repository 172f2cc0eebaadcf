// Package config loads fluxtree settings from defaults and the user's
// config file. Command-line flags are applied on top by cmd/fluxtree.
package config

import (
	"fmt"
	"slices"
	"time"

	"github.com/renato0307/fluxtree/internal/logging"
	"github.com/renato0307/fluxtree/internal/ui"
)

// Config holds every setting fluxtree reads
type Config struct {
	Theme        string        `yaml:"theme"`
	PollInterval time.Duration `yaml:"pollInterval"`
	Kubeconfig   string        `yaml:"kubeconfig"`
	KubectlPath  string        `yaml:"kubectlPath"`
	FluxPath     string        `yaml:"fluxPath"`
	// Icons is a pointer so a file can turn icons off
	Icons *bool `yaml:"icons"`
	// CLITimeout bounds each kubectl or flux invocation
	CLITimeout time.Duration `yaml:"cliTimeout"`
	// PoolSize is how many cluster clients stay cached
	PoolSize int           `yaml:"poolSize"`
	Log      LogConfig     `yaml:"log"`
	Metrics  MetricsConfig `yaml:"metrics"`
}

type LogConfig struct {
	File       string `yaml:"file"`
	Level      string `yaml:"level"`
	Format     string `yaml:"format"`
	MaxSizeMB  int    `yaml:"maxSizeMB"`
	MaxBackups int    `yaml:"maxBackups"`
}

type MetricsConfig struct {
	// Address for /metrics in watch mode, e.g. ":9090". Empty disables it.
	Address string `yaml:"address"`
}

// Default returns the built-in settings
func Default() Config {
	icons := true
	return Config{
		Theme:        "charm",
		PollInterval: 30 * time.Second,
		KubectlPath:  "kubectl",
		FluxPath:     "flux",
		Icons:        &icons,
		CLITimeout:   30 * time.Second,
		PoolSize:     10,
		Log: LogConfig{
			Level:      "info",
			Format:     "text",
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
	}
}

// WithIcons reports whether status glyphs are shown
func (c Config) WithIcons() bool {
	return c.Icons == nil || *c.Icons
}

// Validate checks values a user may have mistyped
func (c Config) Validate() error {
	if !slices.Contains(ui.AvailableThemes(), c.Theme) {
		return fmt.Errorf("unknown theme %q (available: %v)", c.Theme, ui.AvailableThemes())
	}
	if c.PollInterval < time.Second {
		return fmt.Errorf("pollInterval must be at least 1s, got %s", c.PollInterval)
	}
	if c.CLITimeout <= 0 {
		return fmt.Errorf("cliTimeout must be positive, got %s", c.CLITimeout)
	}
	if c.PoolSize <= 0 {
		return fmt.Errorf("poolSize must be positive, got %d", c.PoolSize)
	}
	switch c.Log.Format {
	case "", string(logging.FormatText), string(logging.FormatJSON):
	default:
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}
	return nil
}

// Logging converts the log section for logging.Init
func (c Config) Logging() logging.Config {
	return logging.Config{
		FilePath:   c.Log.File,
		Level:      logging.ParseLevel(c.Log.Level),
		Format:     logging.ParseFormat(c.Log.Format),
		MaxSizeMB:  c.Log.MaxSizeMB,
		MaxBackups: c.Log.MaxBackups,
	}
}
