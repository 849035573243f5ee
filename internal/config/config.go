package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Default ports. The WebSocket port defaults to 0, meaning "pick a free
// port at startup"; the discovery port is fixed so companions know where
// to probe.
const (
	DefaultUDPPort          = 47810
	DefaultDebounceMS       = 200
	DefaultPlaybackInterval = 100
)

// Config is the daemon configuration.
type Config struct {
	// DebounceMS is the chord debounce window in milliseconds.
	DebounceMS int `json:"debounce_ms"`

	// PlaybackIntervalMS is the pause between played sequence steps.
	PlaybackIntervalMS int `json:"playback_interval_ms"`

	// WSPort is the companion server port. 0 selects a free port.
	WSPort int `json:"ws_port"`

	// UDPPort is the discovery responder port.
	UDPPort int `json:"udp_port"`

	// DataDir holds the shortcut store. Empty selects the user config dir.
	DataDir string `json:"data_dir"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `json:"log_level"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		DebounceMS:         DefaultDebounceMS,
		PlaybackIntervalMS: DefaultPlaybackInterval,
		WSPort:             0,
		UDPPort:            DefaultUDPPort,
		LogLevel:           "info",
	}
}

// Load reads the configuration at path, filling unset fields with
// defaults. A missing file returns the defaults without error.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

// applyDefaults restores zero-valued fields the file left out.
func (c *Config) applyDefaults() {
	if c.DebounceMS <= 0 {
		c.DebounceMS = DefaultDebounceMS
	}
	if c.PlaybackIntervalMS <= 0 {
		c.PlaybackIntervalMS = DefaultPlaybackInterval
	}
	if c.UDPPort <= 0 {
		c.UDPPort = DefaultUDPPort
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

// Debounce returns the debounce window as a duration.
func (c Config) Debounce() time.Duration {
	return time.Duration(c.DebounceMS) * time.Millisecond
}

// PlaybackInterval returns the inter-step pause as a duration.
func (c Config) PlaybackInterval() time.Duration {
	return time.Duration(c.PlaybackIntervalMS) * time.Millisecond
}

// StorePath returns the shortcut store location, resolving the data
// directory against the user config dir when unset.
func (c Config) StorePath() (string, error) {
	dir := c.DataDir
	if dir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return "", fmt.Errorf("locate user config dir: %w", err)
		}
		dir = filepath.Join(base, "keycast")
	}
	return filepath.Join(dir, "shortcuts.json"), nil
}
