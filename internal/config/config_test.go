package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "env-secret")

	cfg, errLoad := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if errLoad != nil {
		t.Fatalf("load: %v", errLoad)
	}
	if cfg.Server.Addr != ":5000" {
		t.Fatalf("unexpected default addr %q", cfg.Server.Addr)
	}
	if cfg.JWT.AccessExpiry != 15*time.Minute {
		t.Fatalf("unexpected default access expiry %v", cfg.JWT.AccessExpiry)
	}
	if cfg.JWT.Secret != "env-secret" {
		t.Fatalf("env secret not applied")
	}
}

func TestLoadFileThenEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte(`
server:
  addr: ":8080"
database:
  dsn: "file.db"
jwt:
  secret: "file-secret"
  access-expiry: 30m
models:
  custom-model: gpt-4o
`)
	if errWrite := os.WriteFile(path, content, 0o644); errWrite != nil {
		t.Fatalf("write config: %v", errWrite)
	}
	t.Setenv("DATABASE_URL", "postgres://localhost/app")

	cfg, errLoad := Load(path)
	if errLoad != nil {
		t.Fatalf("load: %v", errLoad)
	}
	if cfg.Server.Addr != ":8080" {
		t.Fatalf("file addr not applied, got %q", cfg.Server.Addr)
	}
	if cfg.Database.DSN != "postgres://localhost/app" {
		t.Fatalf("env must win over file, got %q", cfg.Database.DSN)
	}
	if cfg.JWT.Secret != "file-secret" {
		t.Fatalf("file secret not applied")
	}
	if cfg.JWT.AccessExpiry != 30*time.Minute {
		t.Fatalf("file access expiry not applied, got %v", cfg.JWT.AccessExpiry)
	}
	if cfg.Models["custom-model"] != "gpt-4o" {
		t.Fatalf("model table not loaded: %v", cfg.Models)
	}
}

func TestLoadRequiresJWTSecret(t *testing.T) {
	if _, errLoad := Load(filepath.Join(t.TempDir(), "nope.yaml")); errLoad == nil {
		t.Fatalf("expected error when no jwt secret is configured")
	}
}
