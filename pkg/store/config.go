package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Backend names a snapshot storage engine.
type Backend string

const (
	BackendFile   Backend = "file"
	BackendSQLite Backend = "sqlite"
)

// DefaultScrollback bounds the message pane when scrollback is unset.
const DefaultScrollback = 500

// Config is what a Persistence needs to find its document.
type Config interface {
	BasePath() string
	Backend() Backend
}

// Settings is the resolved configuration for a shelf process.
type Settings struct {
	Path       string        `json:"path"`
	Engine     Backend       `json:"backend"`
	Tick       time.Duration `json:"tick"`
	LogPath    string        `json:"log"`
	LogLevel   string        `json:"log_level"`
	Scrollback int           `json:"scrollback"`
}

func (s *Settings) BasePath() string { return s.Path }

func (s *Settings) Backend() Backend { return s.Engine }

// DefaultPath is the per-user directory holding the inventory document.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "~/.shelf"
	}
	return filepath.Join(dir, "shelf")
}

// LoadConfig reads .shelf (yaml, json or toml) from $SHELF_CONFIG_PATH, the
// user config directory or the working directory, then applies SHELF_*
// environment overrides.
func LoadConfig() (*Settings, error) {
	v := viper.New()
	v.SetDefault("path", DefaultPath())
	v.SetDefault("backend", string(BackendFile))
	v.SetDefault("tick", "100ms")
	v.SetDefault("log", "")
	v.SetDefault("log_level", "info")
	v.SetDefault("scrollback", DefaultScrollback)
	v.SetConfigName(".shelf")
	v.SetEnvPrefix("SHELF")
	v.AutomaticEnv()

	if override := os.Getenv("SHELF_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath(DefaultPath())
	v.AddConfigPath("./")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("store: read config: %w", err)
		}
	}
	return settingsFrom(v)
}

func settingsFrom(v *viper.Viper) (*Settings, error) {
	path, err := homedir.Expand(v.GetString("path"))
	if err != nil {
		return nil, fmt.Errorf("store: expand path: %w", err)
	}
	backend := Backend(v.GetString("backend"))
	switch backend {
	case BackendFile, BackendSQLite:
	default:
		return nil, fmt.Errorf("store: unknown backend %q", backend)
	}
	tick := v.GetDuration("tick")
	if tick <= 0 {
		return nil, errors.New("store: tick must be positive")
	}
	logPath := v.GetString("log")
	if logPath == "" {
		logPath = filepath.Join(path, "shelf.log")
	} else if logPath, err = homedir.Expand(logPath); err != nil {
		return nil, fmt.Errorf("store: expand log path: %w", err)
	}
	scrollback := v.GetInt("scrollback")
	if scrollback <= 0 {
		scrollback = DefaultScrollback
	}
	return &Settings{
		Path:       path,
		Engine:     backend,
		Tick:       tick,
		LogPath:    logPath,
		LogLevel:   v.GetString("log_level"),
		Scrollback: scrollback,
	}, nil
}
