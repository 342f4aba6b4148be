package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.AccountID == "" {
		t.Error("default account id is empty")
	}
	if cfg.HTTPTimeout != 30*time.Second {
		t.Errorf("default timeout = %v, want 30s", cfg.HTTPTimeout)
	}
}

func TestLoadFileAndEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"account_id": "from-file", "output_dir": "/tmp/out"}`), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	t.Setenv("PPVCHECK_ACCOUNT_ID", "from-env")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.AccountID != "from-env" {
		t.Errorf("account id = %q, env must win over file", cfg.AccountID)
	}
	if cfg.OutputDir != "/tmp/out" {
		t.Errorf("output dir = %q, want the file value", cfg.OutputDir)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "defaults are valid", mutate: func(c *Config) {}},
		{name: "missing export URL", mutate: func(c *Config) { c.ExportListingURL = "" }, wantErr: true},
		{name: "missing grid URL", mutate: func(c *Config) { c.GridURL = "" }, wantErr: true},
		{name: "zero timeout", mutate: func(c *Config) { c.HTTPTimeoutSecs = 0 }, wantErr: true},
		{name: "negative rate limit", mutate: func(c *Config) { c.RateLimitPerSec = -1 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr && err == nil {
				t.Error("expected a validation error")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected validation error: %v", err)
			}
		})
	}
}
