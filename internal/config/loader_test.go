package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renato0307/fluxtree/internal/logging"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, userConfigDir, configFileName)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func mockHome(t *testing.T, dir string) {
	t.Helper()
	original := osUserHomeDir
	osUserHomeDir = func() (string, error) { return dir, nil }
	t.Cleanup(func() { osUserHomeDir = original })
}

func TestLoad_DefaultOnly(t *testing.T) {
	mockHome(t, t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.True(t, cfg.WithIcons())
}

func TestLoad_NoHome(t *testing.T) {
	original := osUserHomeDir
	osUserHomeDir = func() (string, error) { return "", errors.New("$HOME is not defined") }
	t.Cleanup(func() { osUserHomeDir = original })

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "charm", cfg.Theme)
}

func TestLoad_UserOverride(t *testing.T) {
	dir := t.TempDir()
	mockHome(t, dir)
	writeConfig(t, dir, `
theme: nord
pollInterval: 10s
fluxPath: /usr/local/bin/flux
icons: false
log:
  file: /tmp/fluxtree.log
  level: debug
metrics:
  address: ":9090"
`)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "nord", cfg.Theme)
	assert.Equal(t, 10*time.Second, cfg.PollInterval)
	assert.Equal(t, "/usr/local/bin/flux", cfg.FluxPath)
	assert.False(t, cfg.WithIcons())
	assert.Equal(t, ":9090", cfg.Metrics.Address)

	// untouched keys keep their defaults
	assert.Equal(t, "kubectl", cfg.KubectlPath)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, 10, cfg.Log.MaxSizeMB)

	lc := cfg.Logging()
	assert.Equal(t, "/tmp/fluxtree.log", lc.FilePath)
	assert.Equal(t, slog.LevelDebug, lc.Level)
	assert.Equal(t, logging.FormatText, lc.Format)
}

func TestLoad_ExplicitPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("theme: dracula\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "dracula", cfg.Theme)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		missing bool
		wantErr string
	}{
		{
			name:    "explicit file missing",
			missing: true,
			wantErr: "error loading config",
		},
		{
			name:    "malformed yaml",
			content: "theme: [nord",
			wantErr: "error loading config",
		},
		{
			name:    "unknown theme",
			content: "theme: solarized\n",
			wantErr: `unknown theme "solarized"`,
		},
		{
			name:    "poll interval too short",
			content: "pollInterval: 100ms\n",
			wantErr: "pollInterval must be at least 1s",
		},
		{
			name:    "bad log format",
			content: "log:\n  format: xml\n",
			wantErr: "log.format must be text or json",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if !tt.missing {
				require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))
			}

			_, err := Load(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestMerge(t *testing.T) {
	off := false
	base := Default()
	merged := Merge(base, Config{
		PoolSize:   3,
		Icons:      &off,
		CLITimeout: time.Minute,
		Log:        LogConfig{Format: "json", MaxBackups: 7},
	})

	assert.Equal(t, 3, merged.PoolSize)
	assert.False(t, merged.WithIcons())
	assert.Equal(t, time.Minute, merged.CLITimeout)
	assert.Equal(t, "json", merged.Log.Format)
	assert.Equal(t, 7, merged.Log.MaxBackups)
	assert.Equal(t, base.Theme, merged.Theme)
	assert.Equal(t, base.PollInterval, merged.PollInterval)

	// base is not modified
	assert.True(t, base.WithIcons())
}
