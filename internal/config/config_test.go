package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, []string{"pacmd", "list-sinks"}, cfg.Pulse.ListCommand)
	assert.Equal(t, []string{"pacmd", "set-default-sink"}, cfg.Pulse.SetCommand)
	assert.Equal(t, 5*time.Second, cfg.CommandTimeout())
	assert.True(t, cfg.IsDesktopEnabled())
	assert.False(t, cfg.IsSoundEnabled())
	assert.Equal(t, "audio-x-generic", cfg.Notifications.Desktop.Icon)
	assert.Empty(t, cfg.Outputs)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.json")
	t.Setenv("AUDIO_SWITCHER_SOUNDS", "/opt/sounds")

	configJSON := `{
		"pulse": {
			"listCommand": ["pactl-compat", "list-sinks"],
			"commandTimeout": "2s"
		},
		"outputs": ["Headphones", "Speakers"],
		"notifications": {
			"desktop": {
				"method": "beeep",
				"sound": true,
				"soundFile": "${AUDIO_SWITCHER_SOUNDS}/switch.wav",
				"volume": 0.4
			}
		}
	}`

	err := os.WriteFile(configPath, []byte(configJSON), 0644)
	require.NoError(t, err)

	cfg, err := Load(configPath)
	require.NoError(t, err)

	assert.Equal(t, []string{"pactl-compat", "list-sinks"}, cfg.Pulse.ListCommand)
	// untouched fields keep defaults
	assert.Equal(t, []string{"pacmd", "set-default-sink"}, cfg.Pulse.SetCommand)
	assert.Equal(t, 2*time.Second, cfg.CommandTimeout())
	assert.Equal(t, []string{"Headphones", "Speakers"}, cfg.Outputs)
	assert.Equal(t, "beeep", cfg.Notifications.Desktop.Method)
	assert.Equal(t, "/opt/sounds/switch.wav", cfg.Notifications.Desktop.SoundFile)
	assert.InDelta(t, 0.4, cfg.Notifications.Desktop.Volume, 0.0001)
	assert.True(t, cfg.IsSoundEnabled())
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfigNotExists(t *testing.T) {
	cfg, err := Load("/nonexistent/config.json")
	require.NoError(t, err)
	assert.NotNil(t, cfg)
	assert.True(t, cfg.Notifications.Desktop.Enabled)
}

func TestLoadConfigInvalidJSON(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(configPath, []byte("{not json"), 0644))

	_, err := Load(configPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.ApplyDefaults()

	assert.Equal(t, []string{"pacmd", "list-sinks"}, cfg.Pulse.ListCommand)
	assert.Equal(t, []string{"pacmd", "set-default-sink"}, cfg.Pulse.SetCommand)
	assert.Equal(t, "auto", cfg.Notifications.Desktop.Method)
	assert.Equal(t, "Audio Output", cfg.Notifications.Desktop.Title)
	assert.Equal(t, 1.0, cfg.Notifications.Desktop.Volume)
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{
			name:    "valid config",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "empty list command",
			mutate:  func(c *Config) { c.Pulse.ListCommand = nil },
			wantErr: true,
		},
		{
			name:    "blank set command",
			mutate:  func(c *Config) { c.Pulse.SetCommand = []string{""} },
			wantErr: true,
		},
		{
			name:    "bad timeout",
			mutate:  func(c *Config) { c.Pulse.CommandTimeout = "soon" },
			wantErr: true,
		},
		{
			name:    "negative timeout",
			mutate:  func(c *Config) { c.Pulse.CommandTimeout = "-1s" },
			wantErr: true,
		},
		{
			name:    "zero timeout disables it",
			mutate:  func(c *Config) { c.Pulse.CommandTimeout = "0s" },
			wantErr: false,
		},
		{
			name:    "invalid method",
			mutate:  func(c *Config) { c.Notifications.Desktop.Method = "pigeon" },
			wantErr: true,
		},
		{
			name:    "method none",
			mutate:  func(c *Config) { c.Notifications.Desktop.Method = "none" },
			wantErr: false,
		},
		{
			name:    "volume too high",
			mutate:  func(c *Config) { c.Notifications.Desktop.Volume = 1.5 },
			wantErr: true,
		},
		{
			name:    "sound without file",
			mutate:  func(c *Config) { c.Notifications.Desktop.Sound = true },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestIsDesktopEnabled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Notifications.Desktop.Method = "none"
	assert.False(t, cfg.IsDesktopEnabled())

	cfg = DefaultConfig()
	cfg.Notifications.Desktop.Enabled = false
	assert.False(t, cfg.IsDesktopEnabled())
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	assert.Equal(t, "/tmp/xdg/audio-switcher/config.json", DefaultPath())
}
