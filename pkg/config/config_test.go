package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mitchellh/go-homedir"
)

func init() {
	homedir.DisableCache = true
}

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	home := t.TempDir()
	t.Setenv("HOME", home)

	s, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if s.Backend() != DefaultBackend {
		t.Fatalf("expected backend %q, got %q", DefaultBackend, s.Backend())
	}
	if s.BasePath() != filepath.Join(home, ".notas") {
		t.Fatalf("expected path under home, got %q", s.BasePath())
	}
	if s.Timeout != time.Second {
		t.Fatalf("expected 1s timeout, got %s", s.Timeout)
	}
	if s.Debounce != 500*time.Millisecond {
		t.Fatalf("expected 500ms debounce, got %s", s.Debounce)
	}
	if s.Level() != slog.LevelWarn {
		t.Fatalf("expected warn level, got %s", s.Level())
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	dir := t.TempDir()
	t.Setenv("NOTAS_BACKEND", "SQLite")
	t.Setenv("NOTAS_PATH", filepath.Join(dir, "db"))
	t.Setenv("NOTAS_TIMEOUT", "250ms")
	t.Setenv("NOTAS_LOG_LEVEL", "debug")

	s, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if s.Backend() != "sqlite" {
		t.Fatalf("expected sqlite backend, got %q", s.Backend())
	}
	if s.BasePath() != filepath.Join(dir, "db") {
		t.Fatalf("unexpected path %q", s.BasePath())
	}
	if s.Timeout != 250*time.Millisecond {
		t.Fatalf("expected 250ms timeout, got %s", s.Timeout)
	}
	if s.Level() != slog.LevelDebug {
		t.Fatalf("expected debug level, got %s", s.Level())
	}
}

func TestLoadConfigFile(t *testing.T) {
	t.Chdir(t.TempDir())
	dir := t.TempDir()
	data := []byte("backend: memory\ndebounce: 2s\n")
	if err := os.WriteFile(filepath.Join(dir, ".notas.yaml"), data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("NOTAS_CONFIG_PATH", dir)

	s, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if s.Backend() != "memory" {
		t.Fatalf("expected memory backend from file, got %q", s.Backend())
	}
	if s.Debounce != 2*time.Second {
		t.Fatalf("expected 2s debounce, got %s", s.Debounce)
	}
	if s.CacheSettings().Backend() != DefaultBackend {
		t.Fatal("cache settings must use diskv")
	}
}
