package goDigest

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Config)
		wantValid bool
	}{
		{
			name:      "defaults valid",
			mutate:    func(*Config) {},
			wantValid: true,
		},
		{
			name: "single round range valid",
			mutate: func(c *Config) {
				c.Rounds.Min = 5000
				c.Rounds.Max = 5000
			},
			wantValid: true,
		},
		{
			name: "rounds min zero invalid",
			mutate: func(c *Config) {
				c.Rounds.Min = 0
			},
			wantValid: false,
		},
		{
			name: "rounds inverted invalid",
			mutate: func(c *Config) {
				c.Rounds.Min = 9000
				c.Rounds.Max = 5000
			},
			wantValid: false,
		},
		{
			name: "salt length below minimum invalid",
			mutate: func(c *Config) {
				c.Salt.Length = 4
				c.Salt.MinLength = 8
			},
			wantValid: false,
		},
		{
			name: "salt alphabet with separator invalid",
			mutate: func(c *Config) {
				c.Salt.Alphabet = "ab$"
			},
			wantValid: false,
		},
		{
			name: "empty salt alphabet valid",
			mutate: func(c *Config) {
				c.Salt.Alphabet = ""
			},
			wantValid: true,
		},
		{
			name: "audit enabled without buffer invalid",
			mutate: func(c *Config) {
				c.Audit.Enabled = true
				c.Audit.BufferSize = 0
			},
			wantValid: false,
		},
		{
			name: "audit disabled without buffer valid",
			mutate: func(c *Config) {
				c.Audit.Enabled = false
				c.Audit.BufferSize = 0
			},
			wantValid: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.wantValid && err != nil {
				t.Fatalf("expected valid config, got %v", err)
			}
			if !tc.wantValid && err == nil {
				t.Fatal("expected invalid config, got nil")
			}
		})
	}
}

func TestLoadConfigYAMLOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "godigest.yaml")
	data := []byte(`
rounds:
  min: 6000
  max: 7000
upgrade:
  persist_on_authenticate: false
metrics:
  enabled: true
`)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Rounds.Min != 6000 || cfg.Rounds.Max != 7000 {
		t.Fatalf("unexpected rounds %+v", cfg.Rounds)
	}
	if !cfg.Upgrade.Enabled {
		t.Fatal("upgrade should keep its default when the file omits it")
	}
	if cfg.Upgrade.PersistOnAuthenticate {
		t.Fatal("persist_on_authenticate should be overridden by the file")
	}
	if !cfg.Metrics.Enabled {
		t.Fatal("metrics should be enabled by the file")
	}
	if cfg.Salt.Length != 16 || cfg.Salt.MinLength != 8 {
		t.Fatalf("salt defaults lost: %+v", cfg.Salt)
	}
}

func TestLoadConfigRejectsInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "godigest.yaml")
	if err := os.WriteFile(path, []byte("rounds:\n  min: 9000\n  max: 10\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected inverted round range to be rejected")
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("GODIGEST_ROUNDS_MIN", "5500")
	t.Setenv("GODIGEST_ROUNDS_MAX", "6500")
	t.Setenv("GODIGEST_AUDIT_ENABLED", "true")

	cfg, err := LoadConfigFromEnv()
	if err != nil {
		t.Fatalf("LoadConfigFromEnv: %v", err)
	}
	if cfg.Rounds.Min != 5500 || cfg.Rounds.Max != 6500 {
		t.Fatalf("unexpected rounds %+v", cfg.Rounds)
	}
	if !cfg.Audit.Enabled || cfg.Audit.BufferSize != 1024 {
		t.Fatalf("unexpected audit %+v", cfg.Audit)
	}
	if !cfg.Upgrade.Enabled {
		t.Fatal("upgrade default lost")
	}
}
