package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "query.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadDefaultsAndOverrides(t *testing.T) {
	path := writeConfig(t, `
host = "ts.example.net"
timeout = "750ms"
login_name = "serveradmin"
login_password = "hunter2"
server_id = 3
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Host != "ts.example.net" {
		t.Fatalf("unexpected host: %q", cfg.Host)
	}
	if cfg.Port != DefaultPort {
		t.Fatalf("port should default to %d, got %d", DefaultPort, cfg.Port)
	}
	if cfg.Timeout != 750*time.Millisecond {
		t.Fatalf("unexpected timeout: %v", cfg.Timeout)
	}
	if cfg.ServerID != 3 {
		t.Fatalf("unexpected server id: %d", cfg.ServerID)
	}
	if cfg.Addr() != "ts.example.net:10011" {
		t.Fatalf("unexpected addr: %q", cfg.Addr())
	}
}

func TestLoadRejectsBadInput(t *testing.T) {
	cases := map[string]string{
		"missing host":     `port = 10011`,
		"bad timeout":      "host = \"x\"\ntimeout = \"soon\"",
		"port range":       "host = \"x\"\nport = 70000",
		"password no name": "host = \"x\"\nlogin_password = \"p\"",
	}
	for name, content := range cases {
		if _, err := Load(writeConfig(t, content)); err == nil {
			t.Fatalf("%s: expected load failure", name)
		}
	}
}

func TestWriteTemplateRefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "query.toml")
	if err := WriteTemplate(path, false); err != nil {
		t.Fatalf("write template: %v", err)
	}
	if err := WriteTemplate(path, false); err == nil {
		t.Fatalf("expected overwrite refusal")
	}
	if _, err := Load(path); err != nil {
		t.Fatalf("template should load cleanly: %v", err)
	}
}
