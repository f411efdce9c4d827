package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.BaseURL != "http://localhost:8000" {
		t.Fatalf("base_url = %q", cfg.Server.BaseURL)
	}
	if cfg.Resolver.Mode != "remote" {
		t.Fatalf("resolver.mode = %q", cfg.Resolver.Mode)
	}
	if cfg.Resolver.Timeout != 20*time.Second || cfg.Summarizer.Timeout != 20*time.Second {
		t.Fatalf("timeouts = %v / %v", cfg.Resolver.Timeout, cfg.Summarizer.Timeout)
	}
	if cfg.History.Capacity != 10 {
		t.Fatalf("history.capacity = %d", cfg.History.Capacity)
	}
	if cfg.History.Path == "" || cfg.Session.TokenPath == "" {
		t.Fatalf("state paths must default under the home directory")
	}
	if cfg.MockAPI.TokenTTL != 24*time.Hour {
		t.Fatalf("mockapi.token_ttl = %v", cfg.MockAPI.TokenTTL)
	}
}

func TestExplicitFileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `{
		"server": {"base_url": "https://summarize.internal:9443"},
		"resolver": {"mode": "local", "timeout": "5s"},
		"history": {"capacity": 3}
	}`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.BaseURL != "https://summarize.internal:9443" {
		t.Fatalf("base_url = %q", cfg.Server.BaseURL)
	}
	if cfg.Resolver.Mode != "local" || cfg.Resolver.Timeout != 5*time.Second {
		t.Fatalf("resolver = %+v", cfg.Resolver)
	}
	if cfg.History.Capacity != 3 {
		t.Fatalf("history.capacity = %d", cfg.History.Capacity)
	}
	// untouched sections keep their defaults
	if cfg.Summarizer.Timeout != 20*time.Second {
		t.Fatalf("summarizer.timeout = %v", cfg.Summarizer.Timeout)
	}
}

func TestMissingExplicitFileIsError(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Fatalf("explicitly named missing file must fail")
	}
}

func TestInvalidResolverMode(t *testing.T) {
	path := writeConfig(t, `{"resolver": {"mode": "chromedp"}}`)
	if _, err := LoadConfig(path); err == nil {
		t.Fatalf("expected validation error for unsupported resolver mode")
	}
}

func TestEmptyBaseURLRejected(t *testing.T) {
	path := writeConfig(t, `{"server": {"base_url": "   "}}`)
	if _, err := LoadConfig(path); err == nil {
		t.Fatalf("expected validation error for blank base_url")
	}
}
