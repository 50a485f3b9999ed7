package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/777genius/audio-switcher/internal/platform"
)

const defaultCommandTimeout = 5 * time.Second

// Config represents the switcher configuration
type Config struct {
	Pulse         PulseConfig         `json:"pulse"`
	Outputs       []string            `json:"outputs"` // Default allow-list for cycling when -o is not given
	Notifications NotificationsConfig `json:"notifications"`
}

// PulseConfig holds the sound-server commands
type PulseConfig struct {
	ListCommand    []string `json:"listCommand"`    // stdout is scraped for sinks
	SetCommand     []string `json:"setCommand"`     // sink index is appended as last arg
	CommandTimeout string   `json:"commandTimeout"` // e.g. "5s"
}

// NotificationsConfig represents notification settings
type NotificationsConfig struct {
	Desktop DesktopConfig `json:"desktop"`
}

// DesktopConfig represents desktop notification settings
type DesktopConfig struct {
	Enabled   bool    `json:"enabled"`
	Method    string  `json:"method"` // "auto", "notify-send", "beeep", "none" (default: "auto")
	Title     string  `json:"title"`
	Icon      string  `json:"icon"`      // Icon name or path
	Sound     bool    `json:"sound"`     // Play soundFile on the newly selected device
	SoundFile string  `json:"soundFile"` // MP3, WAV, FLAC, OGG or AIFF
	Volume    float64 `json:"volume"`    // Volume level 0.0-1.0, default 1.0
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Pulse: PulseConfig{
			ListCommand:    []string{"pacmd", "list-sinks"},
			SetCommand:     []string{"pacmd", "set-default-sink"},
			CommandTimeout: defaultCommandTimeout.String(),
		},
		Notifications: NotificationsConfig{
			Desktop: DesktopConfig{
				Enabled: true,
				Method:  "auto",
				Title:   "Audio Output",
				Icon:    "audio-x-generic",
				Volume:  1.0,
			},
		},
	}
}

// DefaultPath returns the config file location under the XDG config dir
func DefaultPath() string {
	return filepath.Join(platform.ConfigDir(), "config.json")
}

// Load loads configuration from a file
// If the file doesn't exist, returns default config
func Load(path string) (*Config, error) {
	if !platform.FileExists(path) {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	config.Notifications.Desktop.Icon = platform.ExpandEnv(config.Notifications.Desktop.Icon)
	config.Notifications.Desktop.SoundFile = platform.ExpandEnv(config.Notifications.Desktop.SoundFile)

	config.ApplyDefaults()

	return config, nil
}

// ApplyDefaults fills in missing fields with default values
func (c *Config) ApplyDefaults() {
	defaults := DefaultConfig()

	if len(c.Pulse.ListCommand) == 0 {
		c.Pulse.ListCommand = defaults.Pulse.ListCommand
	}
	if len(c.Pulse.SetCommand) == 0 {
		c.Pulse.SetCommand = defaults.Pulse.SetCommand
	}
	if c.Pulse.CommandTimeout == "" {
		c.Pulse.CommandTimeout = defaults.Pulse.CommandTimeout
	}

	if c.Notifications.Desktop.Method == "" {
		c.Notifications.Desktop.Method = "auto"
	}
	if c.Notifications.Desktop.Title == "" {
		c.Notifications.Desktop.Title = defaults.Notifications.Desktop.Title
	}
	if c.Notifications.Desktop.Volume == 0 {
		c.Notifications.Desktop.Volume = 1.0
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if len(c.Pulse.ListCommand) == 0 || c.Pulse.ListCommand[0] == "" {
		return fmt.Errorf("pulse.listCommand must not be empty")
	}
	if len(c.Pulse.SetCommand) == 0 || c.Pulse.SetCommand[0] == "" {
		return fmt.Errorf("pulse.setCommand must not be empty")
	}
	if c.Pulse.CommandTimeout != "" {
		d, err := time.ParseDuration(c.Pulse.CommandTimeout)
		if err != nil {
			return fmt.Errorf("invalid pulse.commandTimeout %q: %w", c.Pulse.CommandTimeout, err)
		}
		if d < 0 {
			return fmt.Errorf("pulse.commandTimeout must be >= 0 (got %s)", d)
		}
	}

	validMethods := map[string]bool{
		"":            true, // empty means auto
		"auto":        true,
		"notify-send": true,
		"beeep":       true,
		"none":        true,
	}
	if !validMethods[c.Notifications.Desktop.Method] {
		return fmt.Errorf("invalid notification method: %s (must be one of: auto, notify-send, beeep, none)", c.Notifications.Desktop.Method)
	}

	if c.Notifications.Desktop.Volume < 0.0 || c.Notifications.Desktop.Volume > 1.0 {
		return fmt.Errorf("desktop volume must be between 0.0 and 1.0 (got %.2f)", c.Notifications.Desktop.Volume)
	}

	if c.Notifications.Desktop.Sound && c.Notifications.Desktop.SoundFile == "" {
		return fmt.Errorf("soundFile is required when sound is enabled")
	}

	return nil
}

// CommandTimeout returns the per-command timeout, 0 meaning none
func (c *Config) CommandTimeout() time.Duration {
	if c.Pulse.CommandTimeout == "" {
		return defaultCommandTimeout
	}
	d, err := time.ParseDuration(c.Pulse.CommandTimeout)
	if err != nil {
		return defaultCommandTimeout
	}
	return d
}

// IsDesktopEnabled returns true if desktop notifications are enabled
func (c *Config) IsDesktopEnabled() bool {
	return c.Notifications.Desktop.Enabled && c.Notifications.Desktop.Method != "none"
}

// IsSoundEnabled returns true if a chime should play after switching
func (c *Config) IsSoundEnabled() bool {
	return c.Notifications.Desktop.Sound && c.Notifications.Desktop.SoundFile != ""
}
