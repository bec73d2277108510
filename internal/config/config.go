package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/weldyapp/weldy/internal/engine"
)

// EnvPrefix prefixes environment overrides. A double underscore separates
// nested keys: WELDY_SERVER__PORT -> server.port.
const EnvPrefix = "WELDY_"

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (WELDY_*).
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	cfg := DefaultConfig()

	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(key, "__", ".")
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

var validModes = map[Mode]bool{
	ModeCatalog: true,
	ModeTree:    true,
}

var validAcceptTargets = map[string]bool{
	engine.AcceptDefectSelection: true,
	engine.AcceptSetup:           true,
}

var validRestartModes = map[string]bool{
	engine.RestartReset:    true,
	engine.RestartPreserve: true,
}

var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if !validModes[c.Mode] {
		return fmt.Errorf("invalid mode %q: must be one of catalog, tree", c.Mode)
	}

	r := c.Recommendation
	if r.VoltageStep <= 0 || r.WireSpeedStep <= 0 {
		return fmt.Errorf("recommendation steps must be positive")
	}
	if r.MinVoltage <= 0 || r.MinWireSpeed <= 0 {
		return fmt.Errorf("recommendation.min_voltage and recommendation.min_wire_speed must be positive")
	}

	if !validAcceptTargets[c.Navigation.AcceptTarget] {
		return fmt.Errorf("invalid navigation.accept_target %q: must be one of defect-selection, setup", c.Navigation.AcceptTarget)
	}
	if !validRestartModes[c.Navigation.RestartMode] {
		return fmt.Errorf("invalid navigation.restart_mode %q: must be one of reset, preserve", c.Navigation.RestartMode)
	}

	if c.Defaults.Thickness == "" {
		return fmt.Errorf("defaults.thickness is required")
	}
	if c.Defaults.Voltage <= 0 || c.Defaults.WireSpeed <= 0 {
		return fmt.Errorf("defaults.voltage and defaults.wire_speed must be positive")
	}

	if c.Search.Enabled && c.Search.Dimensions <= 0 {
		return fmt.Errorf("search.dimensions must be positive")
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}

	if c.Log.Format != "" && !validLogFormats[c.Log.Format] {
		return fmt.Errorf("invalid log.format %q: must be one of json, console", c.Log.Format)
	}

	return nil
}
