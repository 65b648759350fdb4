package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_YAMLAndEnvOverride(t *testing.T) {
	dir := t.TempDir()
	configFile := writeFile(t, dir, "config.yml", `
name: speechkitd
language: en
server:
  addr: ":9090"
providers:
  deepgram:
    timeout: 30s
`)
	envFile := writeFile(t, dir, ".env", "LANGUAGE=de\n")
	t.Cleanup(func() { os.Unsetenv("LANGUAGE") })

	var cfg Config
	if err := Load("speechkitd", &cfg, WithConfigFile(configFile), WithEnvFile(envFile)); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Name != "speechkitd" {
		t.Errorf("Name = %q", cfg.Name)
	}
	if cfg.Server.Addr != ":9090" {
		t.Errorf("Server.Addr = %q", cfg.Server.Addr)
	}
	if cfg.Language != "de" {
		t.Errorf("Language = %q, want env override", cfg.Language)
	}
	if cfg.Providers["deepgram"].Timeout != 30*time.Second {
		t.Errorf("deepgram timeout = %v", cfg.Providers["deepgram"].Timeout)
	}
}

func TestLoad_MissingFilesUsesDefaults(t *testing.T) {
	var cfg Config
	if err := Load("speechkitd", &cfg, WithConfigFile(filepath.Join(t.TempDir(), "none.yml"))); err != nil {
		t.Fatalf("Load: %v", err)
	}
	cfg.ApplyDefaults()
	if cfg.Server.Addr != ":8080" || cfg.Language != "auto" {
		t.Errorf("defaults not applied: %+v", cfg)
	}
	if !cfg.Debug {
		t.Error("development should enable debug")
	}
}

func TestConfig_Validate(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}

	cfg.Environment = "sandbox"
	if err := cfg.Validate(); err == nil {
		t.Error("bad environment accepted")
	}

	cfg.Environment = "production"
	cfg.Providers = map[string]ProviderConfig{
		"openai-compatible": {BaseURL: "::not-a-url::"},
	}
	if err := cfg.Validate(); err == nil {
		t.Error("bad provider base URL accepted")
	}
}

func TestConfig_OverrideAccessors(t *testing.T) {
	cfg := Config{Providers: map[string]ProviderConfig{
		"groq":              {Timeout: 10 * time.Second},
		"openai-compatible": {BaseURL: "http://localhost:9000/v1"},
		"deepgram":          {APIKeyEnv: "DG_SECRET"},
	}}

	if got := cfg.Endpoints(); len(got) != 1 || got["openai-compatible"] != "http://localhost:9000/v1" {
		t.Errorf("Endpoints = %v", got)
	}
	if got := cfg.Timeouts(); len(got) != 1 || got["groq"] != 10*time.Second {
		t.Errorf("Timeouts = %v", got)
	}
	if got := cfg.CredentialEnvOverrides(); len(got) != 1 || got["deepgram"] != "DG_SECRET" {
		t.Errorf("CredentialEnvOverrides = %v", got)
	}
}

func TestEnvKeyVariants(t *testing.T) {
	got := envKeyVariants("SERVER_ADDR")
	want := map[string]bool{"server_addr": true, "server.addr": true}
	for _, v := range got {
		delete(want, v)
	}
	if len(want) != 0 {
		t.Errorf("missing variants %v in %v", want, got)
	}
}
