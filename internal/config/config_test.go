package config

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Mode != ModeCatalog {
		t.Errorf("expected default mode %q, got %q", ModeCatalog, cfg.Mode)
	}
	if cfg.Recommendation.WireSpeedStep != 20 {
		t.Errorf("expected default wire_speed_step 20, got %v", cfg.Recommendation.WireSpeedStep)
	}
	if cfg.Navigation.AcceptTarget != "defect-selection" {
		t.Errorf("expected default accept_target defect-selection, got %q", cfg.Navigation.AcceptTarget)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Server.Port)
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.weldy.yml")

	original := DefaultConfig()
	original.Mode = ModeTree
	original.KnowledgeBase = []string{"kb/**/*.yaml", "extra.json"}
	original.Recommendation.WireSpeedStep = 25
	original.Navigation.AcceptTarget = "setup"
	original.Defaults = DefaultsConfig{Thickness: "1/4", Voltage: 22, WireSpeed: 300}
	original.Server.Port = 9090

	if err := original.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if diff := cmp.Diff(original, loaded); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadMissingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nonexistent.yml")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load should not fail for missing file: %v", err)
	}
	if diff := cmp.Diff(DefaultConfig(), cfg); diff != "" {
		t.Errorf("missing file should yield defaults:\n%s", diff)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yml")

	if err := DefaultConfig().Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	t.Setenv("WELDY_MODE", "tree")
	t.Setenv("WELDY_SERVER__PORT", "9191")
	t.Setenv("WELDY_RECOMMENDATION__WIRE_SPEED_STEP", "25")

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Mode != ModeTree {
		t.Errorf("mode override failed: got %q", loaded.Mode)
	}
	if loaded.Server.Port != 9191 {
		t.Errorf("nested port override failed: got %d", loaded.Server.Port)
	}
	if loaded.Recommendation.WireSpeedStep != 25 {
		t.Errorf("wire step override failed: got %v", loaded.Recommendation.WireSpeedStep)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"invalid mode", func(c *Config) { c.Mode = "maze" }},
		{"zero wire step", func(c *Config) { c.Recommendation.WireSpeedStep = 0 }},
		{"negative floor", func(c *Config) { c.Recommendation.MinVoltage = -1 }},
		{"zero voltage floor", func(c *Config) { c.Recommendation.MinVoltage = 0 }},
		{"zero wire speed floor", func(c *Config) { c.Recommendation.MinWireSpeed = 0 }},
		{"bad accept target", func(c *Config) { c.Navigation.AcceptTarget = "home" }},
		{"bad restart mode", func(c *Config) { c.Navigation.RestartMode = "sometimes" }},
		{"empty thickness", func(c *Config) { c.Defaults.Thickness = "" }},
		{"zero voltage", func(c *Config) { c.Defaults.Voltage = 0 }},
		{"zero search dimensions", func(c *Config) { c.Search.Dimensions = 0 }},
		{"port out of range", func(c *Config) { c.Server.Port = 70000 }},
		{"bad log format", func(c *Config) { c.Log.Format = "xml" }},
	}

	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("DefaultConfig should be valid, got: %v", err)
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestEngineOptions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Defaults = DefaultsConfig{Thickness: "3/16", Voltage: 20, WireSpeed: 250}
	opts := cfg.EngineOptions()
	if opts.Defaults.MetalThickness != "3/16" || opts.Defaults.Voltage != 20 || opts.Defaults.WireSpeed != 250 {
		t.Errorf("defaults = %+v", opts.Defaults)
	}
	if opts.RestartMode != "reset" {
		t.Errorf("restart mode = %q", opts.RestartMode)
	}
}

func TestValidatePort(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"8080", false},
		{"1", false},
		{"0", true},
		{"65536", true},
		{"http", true},
	}
	for _, tt := range tests {
		if err := validatePort(tt.input); (err != nil) != tt.wantErr {
			t.Errorf("validatePort(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
	}
}
