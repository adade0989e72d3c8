package config

import (
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv(EnvDB, "")
	t.Setenv(EnvLegacy, "")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(cfg.DBPath, "jobtrack.db") {
		t.Fatalf("unexpected default db path: %q", cfg.DBPath)
	}
	if !strings.HasSuffix(cfg.LegacyPath, "applications.json") {
		t.Fatalf("unexpected default legacy path: %q", cfg.LegacyPath)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv(EnvDB, "/tmp/custom/jobs.db")
	t.Setenv(EnvLegacy, "/tmp/custom/old.json")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.DBPath != "/tmp/custom/jobs.db" {
		t.Fatalf("db override ignored: %q", cfg.DBPath)
	}
	if cfg.LegacyPath != "/tmp/custom/old.json" {
		t.Fatalf("legacy override ignored: %q", cfg.LegacyPath)
	}
}
