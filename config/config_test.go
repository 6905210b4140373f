package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "client.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFillsDefaults(t *testing.T) {
	path := writeTempConfig(t, "agent:\n  host: agent.example.com\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Agent.Port != 4931 {
		t.Fatalf("expected default port 4931, got %d", cfg.Agent.Port)
	}
	if cfg.Session.SuiteID != 1 {
		t.Fatalf("expected default suite id 1, got %d", cfg.Session.SuiteID)
	}
	if cfg.Logging.Level != "info" {
		t.Fatalf("expected default logging level info, got %q", cfg.Logging.Level)
	}
}

func TestLoadMissingHostFails(t *testing.T) {
	path := writeTempConfig(t, "agent:\n  port: 4931\n")
	_, err := Load(path)
	if err == nil {
		t.Fatal("expected error for missing agent host")
	}
}

func TestLoadInvalidSuiteIDFails(t *testing.T) {
	path := writeTempConfig(t, "agent:\n  host: agent.example.com\nsession:\n  suite_id: 99\n")
	_, err := Load(path)
	if err == nil {
		t.Fatal("expected error for unsupported suite id")
	}
}

func TestLoadInvalidAddressFamilyFails(t *testing.T) {
	path := writeTempConfig(t, "agent:\n  host: agent.example.com\n  address_family: ip9\n")
	_, err := Load(path)
	if err == nil {
		t.Fatal("expected error for invalid address family")
	}
}

func TestLoadMissingFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}
