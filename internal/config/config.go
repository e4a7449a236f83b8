package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	appName = "awesomeaudio"

	defaultProgressIntervalMS = 500
	minProgressIntervalMS     = 50
)

// Session backends.
const (
	SessionPulse = "pulse"
	SessionNone  = "none"
)

type Config struct {
	ProgressIntervalMS int  `koanf:"progress_interval_ms"` // progress cadence (default: 500)
	Resume             bool `koanf:"resume"`               // seek to the saved position on load
	Notifications      bool `koanf:"notifications"`        // desktop notification when playback starts

	Session     SessionConfig     `koanf:"session"`
	MediaCenter MediaCenterConfig `koanf:"media_center"`

	// Discord Rich Presence (enabled when app_id is set)
	Discord DiscordConfig `koanf:"discord"`

	// Last.fm now playing and scrobbling (enabled when configured)
	Lastfm LastfmConfig `koanf:"lastfm"`
}

// SessionConfig selects the audio session backend.
type SessionConfig struct {
	Backend string `koanf:"backend"` // "pulse" or "none" (default: "pulse")
	Server  string `koanf:"server"`  // PulseAudio server address, empty for the default socket
}

// MediaCenterConfig controls now-playing publication.
type MediaCenterConfig struct {
	Enabled *bool  `koanf:"enabled"` // default: true
	Artist  string `koanf:"artist"`  // overrides the tag value
	Title   string `koanf:"title"`   // overrides the tag value
	Artwork string `koanf:"artwork"` // image path, overrides embedded art
}

// DiscordConfig holds Discord Rich Presence configuration.
type DiscordConfig struct {
	AppID string `koanf:"app_id"`
}

// LastfmConfig holds Last.fm configuration.
type LastfmConfig struct {
	APIKey     string `koanf:"api_key"`
	APISecret  string `koanf:"api_secret"`
	SessionKey string `koanf:"session_key"`
}

// Load reads the user and local config files.
func Load() (*Config, error) {
	return LoadFrom(getConfigPaths()...)
}

// LoadFrom reads the given files in order; later files win. Missing files
// are skipped.
func LoadFrom(paths ...string) (*Config, error) {
	k := koanf.New(".")

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	cfg := &Config{
		ProgressIntervalMS: defaultProgressIntervalMS,
		Session:            SessionConfig{Backend: SessionPulse},
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	if cfg.ProgressIntervalMS < minProgressIntervalMS {
		cfg.ProgressIntervalMS = defaultProgressIntervalMS
	}
	if cfg.Session.Backend != SessionNone {
		cfg.Session.Backend = SessionPulse
	}

	// Expand ~ in media_center artwork
	if cfg.MediaCenter.Artwork != "" {
		cfg.MediaCenter.Artwork = expandPath(cfg.MediaCenter.Artwork)
	}

	return cfg, nil
}

func getConfigPaths() []string {
	return []string{
		// 1. $XDG_CONFIG_HOME/awesomeaudio/config.toml
		filepath.Join(xdg.ConfigHome, appName, "config.toml"),
		// 2. ./config.toml (pwd, highest priority)
		"config.toml",
	}
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// ProgressInterval returns the progress cadence.
func (c *Config) ProgressInterval() time.Duration {
	return time.Duration(c.ProgressIntervalMS) * time.Millisecond
}

// MediaCenterEnabled reports whether now-playing publication is on.
func (c *Config) MediaCenterEnabled() bool {
	return c.MediaCenter.Enabled == nil || *c.MediaCenter.Enabled
}

// HasDiscordConfig returns true if Discord Rich Presence is configured.
func (c *Config) HasDiscordConfig() bool {
	return c.Discord.AppID != ""
}

// HasLastfmConfig returns true if Last.fm is configured.
func (c *Config) HasLastfmConfig() bool {
	return c.Lastfm.APIKey != "" && c.Lastfm.APISecret != ""
}

// CanScrobble returns true if Last.fm is configured with a session key.
func (c *Config) CanScrobble() bool {
	return c.HasLastfmConfig() && c.Lastfm.SessionKey != ""
}
