package logger

import (
	"testing"
)

func TestNewDefault(t *testing.T) {
	l := NewDefault("test-svc")
	if l == nil {
		t.Fatal("expected non-nil logger")
	}
	if l.service != "test-svc" {
		t.Errorf("expected service 'test-svc', got %q", l.service)
	}
}

func TestNew_InvalidLevelFallsBack(t *testing.T) {
	cfg := &Config{Level: "not-a-level", Format: "json", Output: "stdout"}
	if New(cfg, "test") == nil {
		t.Fatal("expected logger to be created even with invalid level")
	}
}

func TestConfig_Validate(t *testing.T) {
	cfg := &Config{}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}

	bad := &Config{Level: "loud", Format: "json"}
	if err := bad.Validate(); err == nil {
		t.Error("expected error for invalid level")
	}
}

func TestRegistry_GetFallsBackToComponent(t *testing.T) {
	l := Get("some-unregistered-component")
	if l == nil {
		t.Fatal("expected fallback logger")
	}
}

func TestRegistry_RegisterAndGet(t *testing.T) {
	l := NewDefault("svc")
	Register("router-test", l)
	if Get("router-test") != l {
		t.Error("expected registered logger back")
	}
}

func TestFields(t *testing.T) {
	m := Fields("provider", "groq", "attempt", 2)
	if m["provider"] != "groq" || m["attempt"] != 2 {
		t.Errorf("Fields = %v", m)
	}
	// Odd trailing key is dropped.
	m = Fields("only-key")
	if len(m) != 0 {
		t.Errorf("expected empty map, got %v", m)
	}
}
