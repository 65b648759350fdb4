package server

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tmm22/speechkit/logger"
)

func TestConfig_ApplyDefaults(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()

	if cfg.Addr != ":8080" {
		t.Errorf("Addr = %q", cfg.Addr)
	}
	if cfg.ReadTimeout != 30*time.Second || cfg.IdleTimeout != 60*time.Second {
		t.Errorf("timeouts = %+v", cfg)
	}
	if cfg.MaxBodyBytes() != 100<<20 {
		t.Errorf("MaxBodyBytes() = %d", cfg.MaxBodyBytes())
	}

	custom := Config{Addr: ":9999", ReadTimeout: time.Second, MaxBodySize: "10MB"}
	custom.ApplyDefaults()
	if custom.Addr != ":9999" || custom.ReadTimeout != time.Second {
		t.Errorf("defaults overwrote explicit values: %+v", custom)
	}
	if custom.MaxBodyBytes() != 10<<20 {
		t.Errorf("MaxBodyBytes() = %d", custom.MaxBodyBytes())
	}
}

func TestConfig_Validate(t *testing.T) {
	cfg := Config{Addr: ":8080", ReadTimeout: -time.Second}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for negative read timeout")
	}

	cfg = Config{}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestServer_StartStop(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()
	cfg.Addr = "127.0.0.1:0"

	srv := New(cfg, logger.NewDefault("test"))
	srv.GinEngine().GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"pong": true})
	})

	if err := srv.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer srv.Stop(context.Background())

	if srv.Addr() == "" {
		t.Fatal("Addr() empty after Start")
	}

	resp, err := http.Get("http://" + srv.Addr() + "/ping")
	if err != nil {
		t.Fatalf("GET /ping: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d", resp.StatusCode)
	}
	if id := resp.Header.Get("X-Request-Id"); id == "" {
		t.Error("expected X-Request-Id on response")
	}

	var body map[string]bool
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if !body["pong"] {
		t.Errorf("body = %v", body)
	}

	if err := srv.Stop(context.Background()); err != nil {
		t.Errorf("Stop: %v", err)
	}
}
