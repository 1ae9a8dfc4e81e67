package config

import (
	"os"
	"testing"
)

func setRequired(t *testing.T) {
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("ADMIN_API_KEY", "admin-key")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("config load: %v", err)
	}
	if cfg.Port != 8080 || cfg.DBName != "pulsecheck" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.FromEmail != "no-reply@pulsecheck.app" {
		t.Fatalf("unexpected default from address: %s", cfg.FromEmail)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	setRequired(t)
	t.Setenv("PORT", "9000")
	t.Setenv("BASE_URL", "https://feedback.example.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("config load: %v", err)
	}
	if cfg.Port != 9000 {
		t.Fatalf("port env override failed, got %d", cfg.Port)
	}
	if cfg.BaseURL != "https://feedback.example.com" {
		t.Fatalf("base url env override failed, got %s", cfg.BaseURL)
	}
}

func TestLoadMissingRequired(t *testing.T) {
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")
	t.Setenv("JWT_SECRET", "secret")
	// t.Setenv registers the restore; envconfig only treats a key as
	// missing when it is unset, not merely empty.
	t.Setenv("ADMIN_API_KEY", "placeholder")
	_ = os.Unsetenv("ADMIN_API_KEY")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing ADMIN_API_KEY")
	}
}
