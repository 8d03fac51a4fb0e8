package config

import (
	"strings"
	"testing"
	"time"

	"github.com/olgasafonova/whatsonchain-mcp-server/woc"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("config load: %v", err)
	}

	if cfg.Network != "main" {
		t.Errorf("Network = %q, want main", cfg.Network)
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("Timeout = %v, want 30s", cfg.Timeout)
	}
	if !cfg.EnableCache {
		t.Error("cache should be enabled by default")
	}
	if cfg.Profile != "current" {
		t.Errorf("Profile = %q, want current", cfg.Profile)
	}
	if cfg.RateLimit != 60 {
		t.Errorf("RateLimit = %d, want 60", cfg.RateLimit)
	}
	if cfg.HTTPMode() {
		t.Error("stdio should be the default transport")
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("WOC_NETWORK", "testnet")
	t.Setenv("WOC_API_KEY", "secret")
	t.Setenv("WOC_TIMEOUT", "5s")
	t.Setenv("WOC_ENABLE_CACHE", "false")
	t.Setenv("WOC_PROFILE", "legacy")
	t.Setenv("WOC_HTTP_ADDR", ":8080")
	t.Setenv("WOC_LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("config load: %v", err)
	}

	cc := cfg.ClientConfig()
	if cc.Network != woc.NetworkTest {
		t.Errorf("Network = %q, want test", cc.Network)
	}
	if cc.APIKey != "secret" || cc.Timeout != 5*time.Second {
		t.Errorf("unexpected client config: %+v", cc)
	}
	if cc.EnableCache {
		t.Error("cache should be disabled")
	}
	if cc.Profile != woc.ProfileLegacy {
		t.Errorf("Profile = %q, want legacy", cc.Profile)
	}
	if !cfg.HTTPMode() {
		t.Error("HTTP mode should be on when WOC_HTTP_ADDR is set")
	}
	if lc := cfg.LoggingConfig(); lc.Level != "debug" {
		t.Errorf("log level = %q, want debug", lc.Level)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   string
		wantErr string
	}{
		{"unknown profile", "WOC_PROFILE", "beta", "WOC_PROFILE"},
		{"zero timeout", "WOC_TIMEOUT", "0s", "WOC_TIMEOUT"},
		{"unparsable timeout", "WOC_TIMEOUT", "soon", "environment"},
		{"negative rate limit", "WOC_RATE_LIMIT", "-1", "WOC_RATE_LIMIT"},
		{"zero body size", "WOC_MAX_BODY_SIZE", "0", "WOC_MAX_BODY_SIZE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q should mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestClientConfig_UnknownNetworkIsSTN(t *testing.T) {
	cfg := &Config{Network: "regtest", Timeout: time.Second, Profile: "current"}
	if got := cfg.ClientConfig().Network; got != woc.NetworkSTN {
		t.Errorf("Network = %q, want stn", got)
	}
}

func TestLoggingConfig_KeepsRotationDefaults(t *testing.T) {
	cfg := &Config{LogFile: "/tmp/woc.log"}
	lc := cfg.LoggingConfig()

	if lc.FilePath != "/tmp/woc.log" {
		t.Errorf("FilePath = %q", lc.FilePath)
	}
	if lc.MaxSizeMB != 100 || lc.MaxBackups != 3 {
		t.Errorf("rotation defaults lost: %+v", lc)
	}
}
