package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/renato0307/fluxtree/internal/messages"
)

// For mocking in tests
var osUserHomeDir = os.UserHomeDir

const (
	userConfigDir  = ".config/fluxtree"
	configFileName = "config.yaml"
)

// UserConfigPath returns ~/.config/fluxtree/config.yaml
func UserConfigPath() (string, error) {
	home, err := osUserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, userConfigDir, configFileName), nil
}

// Load layers the file at path over the defaults. An empty path means the
// user config file, which is optional; an explicit path must exist.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := UserConfigPath()
		if err != nil {
			// no home directory; run on defaults
			return cfg, nil
		}
		path = p
	}

	overlay, err := loadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, messages.WrapError(err, "error loading config from %s", path)
	}

	cfg = Merge(cfg, overlay)
	if err := cfg.Validate(); err != nil {
		return Config{}, messages.WrapError(err, "invalid config %s", path)
	}
	return cfg, nil
}

func loadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Merge lays the fields set in overlay over base
func Merge(base, overlay Config) Config {
	out := base

	if overlay.Theme != "" {
		out.Theme = overlay.Theme
	}
	if overlay.PollInterval != 0 {
		out.PollInterval = overlay.PollInterval
	}
	if overlay.Kubeconfig != "" {
		out.Kubeconfig = overlay.Kubeconfig
	}
	if overlay.KubectlPath != "" {
		out.KubectlPath = overlay.KubectlPath
	}
	if overlay.FluxPath != "" {
		out.FluxPath = overlay.FluxPath
	}
	if overlay.Icons != nil {
		out.Icons = overlay.Icons
	}
	if overlay.CLITimeout != 0 {
		out.CLITimeout = overlay.CLITimeout
	}
	if overlay.PoolSize != 0 {
		out.PoolSize = overlay.PoolSize
	}

	if overlay.Log.File != "" {
		out.Log.File = overlay.Log.File
	}
	if overlay.Log.Level != "" {
		out.Log.Level = overlay.Log.Level
	}
	if overlay.Log.Format != "" {
		out.Log.Format = overlay.Log.Format
	}
	if overlay.Log.MaxSizeMB != 0 {
		out.Log.MaxSizeMB = overlay.Log.MaxSizeMB
	}
	if overlay.Log.MaxBackups != 0 {
		out.Log.MaxBackups = overlay.Log.MaxBackups
	}

	if overlay.Metrics.Address != "" {
		out.Metrics.Address = overlay.Metrics.Address
	}
	return out
}
