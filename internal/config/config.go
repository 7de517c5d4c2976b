// Package config loads the optional tasknag TOML configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Duration is a time.Duration that unmarshals from TOML strings like "2s" or "500ms".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", string(text), err)
	}
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

type Config struct {
	Task   Task   `toml:"task"`
	UI     UI     `toml:"ui"`
	Notify Notify `toml:"notify"`
}

type Task struct {
	Bin string `toml:"bin"`
	// UrgencyWindow is handed verbatim to the task binary inside the
	// due.before filter, so it stays a Taskwarrior duration string
	// ("23h"), not a Go duration.
	UrgencyWindow  string   `toml:"urgency_window"`
	CommandTimeout Duration `toml:"command_timeout"`
}

type UI struct {
	PollInterval  Duration `toml:"poll_interval"`
	RaiseInterval Duration `toml:"raise_interval"`
	CloseDelay    Duration `toml:"close_delay"`
	Width         int      `toml:"width"`
	Height        int      `toml:"height"`
}

type Notify struct {
	Enabled bool `toml:"enabled"`
}

// Default returns the built-in configuration: nag when nothing is due in the
// next 23 hours, poll every 2s, re-raise every 500ms, window sized to 70% of
// a 1080p desktop.
func Default() *Config {
	return &Config{
		Task: Task{
			Bin:            "task",
			UrgencyWindow:  "23h",
			CommandTimeout: Duration{Duration: 10 * time.Second},
		},
		UI: UI{
			PollInterval:  Duration{Duration: 2 * time.Second},
			RaiseInterval: Duration{Duration: 500 * time.Millisecond},
			CloseDelay:    Duration{Duration: time.Second},
			Width:         1344,
			Height:        756,
		},
		Notify: Notify{Enabled: true},
	}
}

// DefaultPath returns ~/.config/tasknag/config.toml.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "tasknag", "config.toml")
}

// Load reads the configuration file at path. A missing file is not an error;
// the defaults are returned so the reminder still runs unconfigured.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	applyDefaults(cfg)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config %s: %w", path, err)
	}

	return cfg, nil
}

func applyDefaults(cfg *Config) {
	def := Default()
	if cfg.Task.Bin == "" {
		cfg.Task.Bin = def.Task.Bin
	}
	if cfg.Task.UrgencyWindow == "" {
		cfg.Task.UrgencyWindow = def.Task.UrgencyWindow
	}
	if cfg.Task.CommandTimeout.Duration == 0 {
		cfg.Task.CommandTimeout = def.Task.CommandTimeout
	}
	if cfg.UI.PollInterval.Duration == 0 {
		cfg.UI.PollInterval = def.UI.PollInterval
	}
	if cfg.UI.RaiseInterval.Duration == 0 {
		cfg.UI.RaiseInterval = def.UI.RaiseInterval
	}
	if cfg.UI.CloseDelay.Duration == 0 {
		cfg.UI.CloseDelay = def.UI.CloseDelay
	}
	if cfg.UI.Width == 0 {
		cfg.UI.Width = def.UI.Width
	}
	if cfg.UI.Height == 0 {
		cfg.UI.Height = def.UI.Height
	}
}

func validate(cfg *Config) error {
	if cfg.Task.CommandTimeout.Duration <= 0 {
		return fmt.Errorf("task.command_timeout must be positive, got %s", cfg.Task.CommandTimeout)
	}
	if cfg.UI.PollInterval.Duration <= 0 {
		return fmt.Errorf("ui.poll_interval must be positive, got %s", cfg.UI.PollInterval)
	}
	if cfg.UI.RaiseInterval.Duration <= 0 {
		return fmt.Errorf("ui.raise_interval must be positive, got %s", cfg.UI.RaiseInterval)
	}
	if cfg.UI.CloseDelay.Duration <= 0 {
		return fmt.Errorf("ui.close_delay must be positive, got %s", cfg.UI.CloseDelay)
	}
	if cfg.UI.Width <= 0 || cfg.UI.Height <= 0 {
		return fmt.Errorf("ui.width and ui.height must be positive, got %dx%d", cfg.UI.Width, cfg.UI.Height)
	}
	return nil
}
