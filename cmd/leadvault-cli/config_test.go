package main

import (
	"os"
	"path/filepath"
	"testing"
)

func resetFlags() {
	flagURL = defaultURL
	flagKey = ""
}

func TestResolveConfig_EnvOverridesDefault(t *testing.T) {
	resetFlags()
	t.Setenv("LEADVAULT_URL", "http://env.example:3030")
	t.Setenv("LEADVAULT_API_KEY", "env-key")
	t.Setenv("HOME", t.TempDir()) // no config file

	resolveConfig()

	if flagURL != "http://env.example:3030" {
		t.Errorf("flagURL = %q", flagURL)
	}
	if flagKey != "env-key" {
		t.Errorf("flagKey = %q", flagKey)
	}
}

func TestResolveConfig_FlagWins(t *testing.T) {
	resetFlags()
	flagURL = "http://flag.example:4040"
	flagKey = "flag-key"
	t.Setenv("LEADVAULT_URL", "http://env.example:3030")
	t.Setenv("LEADVAULT_API_KEY", "env-key")

	resolveConfig()

	if flagURL != "http://flag.example:4040" {
		t.Errorf("flagURL = %q, flag must take precedence", flagURL)
	}
	if flagKey != "flag-key" {
		t.Errorf("flagKey = %q, flag must take precedence", flagKey)
	}
}

func TestResolveConfig_ConfigFileFallback(t *testing.T) {
	resetFlags()
	t.Setenv("LEADVAULT_URL", "")
	t.Setenv("LEADVAULT_API_KEY", "")

	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".leadvault")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	cfg := "url: http://file.example:5050\napi_key: file-key\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(cfg), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	resolveConfig()

	if flagURL != "http://file.example:5050" {
		t.Errorf("flagURL = %q", flagURL)
	}
	if flagKey != "file-key" {
		t.Errorf("flagKey = %q", flagKey)
	}
}
