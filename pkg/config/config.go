// Package config loads notas settings from defaults, an optional .notas
// file and NOTAS_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

const (
	KeyBackend  = "backend"
	KeyPath     = "path"
	KeyCache    = "cache"
	KeyTimeout  = "timeout"
	KeyDebounce = "debounce"
	KeyLogLevel = "log-level"
)

// Defaults for every key.
const (
	DefaultBackend  = "diskv"
	DefaultPath     = "~/.notas"
	DefaultCache    = "~/.notas-cache"
	DefaultTimeout  = time.Second
	DefaultDebounce = 500 * time.Millisecond
	DefaultLogLevel = "warn"
)

// Settings is the resolved configuration.
type Settings struct {
	StoreBackend string        `json:"backend"`
	Path         string        `json:"path"`
	Cache        string        `json:"cache"`
	Timeout      time.Duration `json:"timeout"`
	Debounce     time.Duration `json:"debounce"`
	LogLevel     string        `json:"logLevel"`
}

// Load resolves settings. A missing config file is not an error.
func Load() (*Settings, error) {
	v := viper.New()
	v.SetDefault(KeyBackend, DefaultBackend)
	v.SetDefault(KeyPath, DefaultPath)
	v.SetDefault(KeyCache, DefaultCache)
	v.SetDefault(KeyTimeout, DefaultTimeout)
	v.SetDefault(KeyDebounce, DefaultDebounce)
	v.SetDefault(KeyLogLevel, DefaultLogLevel)

	v.SetConfigName(".notas") // .yaml is implicit
	v.SetEnvPrefix("NOTAS")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if override := os.Getenv("NOTAS_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read config file: %w", err)
		}
	}

	path, err := homedir.Expand(v.GetString(KeyPath))
	if err != nil {
		return nil, fmt.Errorf("config: expand path: %w", err)
	}
	cache, err := homedir.Expand(v.GetString(KeyCache))
	if err != nil {
		return nil, fmt.Errorf("config: expand cache: %w", err)
	}

	s := &Settings{
		StoreBackend: strings.ToLower(strings.TrimSpace(v.GetString(KeyBackend))),
		Path:         path,
		Cache:        cache,
		Timeout:      v.GetDuration(KeyTimeout),
		Debounce:     v.GetDuration(KeyDebounce),
		LogLevel:     v.GetString(KeyLogLevel),
	}
	if s.Timeout <= 0 {
		s.Timeout = DefaultTimeout
	}
	if s.Debounce <= 0 {
		s.Debounce = DefaultDebounce
	}
	return s, nil
}

// BasePath implements store.Config.
func (s *Settings) BasePath() string {
	return s.Path
}

// Backend implements store.Config.
func (s *Settings) Backend() string {
	return s.StoreBackend
}

// CacheSettings returns the store configuration for the local fallback cache.
// The cache always lives in diskv.
func (s *Settings) CacheSettings() *Settings {
	return &Settings{StoreBackend: DefaultBackend, Path: s.Cache}
}

// Level parses LogLevel, falling back to warn.
func (s *Settings) Level() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(s.LogLevel)); err != nil {
		return slog.LevelWarn
	}
	return lvl
}

// Logger builds a text logger writing to w at the configured level.
func (s *Settings) Logger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: s.Level()}))
}
