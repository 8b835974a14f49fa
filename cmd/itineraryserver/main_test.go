package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestParseFlagsDefaults(t *testing.T) {
	opts, envFile, err := parseFlags(nil)
	if err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	if opts.ConfigPath != "config.json" || opts.LogDir != "data" || envFile != ".env" {
		t.Fatalf("unexpected defaults %+v env=%q", opts, envFile)
	}
	if opts.ReadTimeout != 10*time.Second || opts.ShutdownTimeout != 5*time.Second {
		t.Fatalf("unexpected timeouts %+v", opts)
	}
}

func TestParseFlagsOverrides(t *testing.T) {
	opts, envFile, err := parseFlags([]string{"-config", "/etc/itinerary.yaml", "-log-dir", "/var/log/itinerary", "-read-timeout", "3s", "-env-file", ""})
	if err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	if opts.ConfigPath != "/etc/itinerary.yaml" || opts.LogDir != "/var/log/itinerary" || opts.ReadTimeout != 3*time.Second {
		t.Fatalf("unexpected options %+v", opts)
	}
	if envFile != "" {
		t.Fatalf("expected env file to be disabled, got %q", envFile)
	}
}

func TestParseFlagsRejectsPositionalArgs(t *testing.T) {
	if _, _, err := parseFlags([]string{"extra"}); err == nil {
		t.Fatalf("expected error for positional argument")
	}
}

func TestLoadEnvFile(t *testing.T) {
	if err := loadEnvFile(filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Fatalf("expected missing env file to be ignored, got %v", err)
	}

	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("ITINERARY_PORT=:9400\nITINERARY_ADDR=0.0.0.0\n"), 0o644); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Setenv("ITINERARY_PORT", "")
	os.Unsetenv("ITINERARY_PORT")
	t.Setenv("ITINERARY_ADDR", "10.1.1.1")

	if err := loadEnvFile(path); err != nil {
		t.Fatalf("load env file: %v", err)
	}
	if got := os.Getenv("ITINERARY_PORT"); got != ":9400" {
		t.Fatalf("expected port from env file, got %q", got)
	}
	if got := os.Getenv("ITINERARY_ADDR"); got != "10.1.1.1" {
		t.Fatalf("expected existing variable to win, got %q", got)
	}
}
