package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, `{"server":{},"form":{}}`))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Addr != defaultAddr {
		t.Fatalf("expected default addr %s, got %s", defaultAddr, cfg.Server.Addr)
	}
	if cfg.Server.Port != defaultPort {
		t.Fatalf("expected default port %s, got %s", defaultPort, cfg.Server.Port)
	}
	if cfg.Form.DataPath != defaultDataPath {
		t.Fatalf("expected default data path, got %s", cfg.Form.DataPath)
	}
	if cfg.Form.BaseURL != "" {
		t.Fatalf("expected same-origin base url, got %q", cfg.Form.BaseURL)
	}
}

func TestLoadHonoursOverrides(t *testing.T) {
	cfg, err := Load(writeConfig(t, `{
		"server": {"addr":"0.0.0.0","port":":9999"},
		"form": {"base_url":"https://trips.example.com/","data_path":"tmp/acts.json"}
	}`))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Addr != "0.0.0.0" || cfg.Server.Port != ":9999" {
		t.Fatalf("server overrides not applied: %+v", cfg.Server)
	}
	if cfg.Form.BaseURL != "https://trips.example.com" {
		t.Fatalf("expected trailing slash trimmed, got %q", cfg.Form.BaseURL)
	}
	if cfg.Form.DataPath != "tmp/acts.json" {
		t.Fatalf("data path override not applied: %+v", cfg.Form)
	}
}

func TestLoadAcceptsTopLevelListener(t *testing.T) {
	cfg, err := Load(writeConfig(t, `{"addr":"10.0.0.1","port":":7000"}`))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Addr != "10.0.0.1" || cfg.Server.Port != ":7000" {
		t.Fatalf("top-level listener not applied: %+v", cfg.Server)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load("missing.json"); err == nil {
		t.Fatalf("expected error for missing file")
	}
	if _, err := Load(writeConfig(t, `{`)); err == nil {
		t.Fatalf("expected error for invalid json")
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("ITINERARY_PORT", ":9100")
	t.Setenv("ITINERARY_BASE_URL", "http://localhost:9100/")
	cfg, err := Default().ApplyEnv()
	if err != nil {
		t.Fatalf("apply env: %v", err)
	}
	if cfg.Server.Port != ":9100" {
		t.Fatalf("expected env port, got %s", cfg.Server.Port)
	}
	if cfg.Server.Addr != defaultAddr {
		t.Fatalf("expected default addr to survive, got %s", cfg.Server.Addr)
	}
	if cfg.Form.BaseURL != "http://localhost:9100" {
		t.Fatalf("expected env base url, got %q", cfg.Form.BaseURL)
	}
}

func TestApplyEnvAllowedOrigins(t *testing.T) {
	t.Setenv("ITINERARY_ALLOWED_ORIGINS", "https://a.example/, ,https://b.example")
	cfg, err := Default().ApplyEnv()
	if err != nil {
		t.Fatalf("apply env: %v", err)
	}
	if len(cfg.Form.AllowedOrigins) != 2 || cfg.Form.AllowedOrigins[0] != "https://a.example" || cfg.Form.AllowedOrigins[1] != "https://b.example" {
		t.Fatalf("unexpected origins %v", cfg.Form.AllowedOrigins)
	}
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := "server:\n  port: \":9300\"\nform:\n  base_url: https://trips.example.com/\n  allowed_origins:\n    - https://trips.example.com\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Port != ":9300" || cfg.Server.Addr != defaultAddr {
		t.Fatalf("unexpected server config %+v", cfg.Server)
	}
	if cfg.Form.BaseURL != "https://trips.example.com" || len(cfg.Form.AllowedOrigins) != 1 {
		t.Fatalf("unexpected form config %+v", cfg.Form)
	}
}
