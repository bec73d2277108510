package config

import (
	"github.com/weldyapp/weldy/internal/engine"
	"github.com/weldyapp/weldy/internal/params"
	"github.com/weldyapp/weldy/internal/recommend"
)

// DefaultPath is the config file looked up in the working directory.
const DefaultPath = ".weldy.yml"

// DefaultConfig returns a Config with sensible defaults: the embedded catalog,
// 20 IPM wire steps, accept back to defect selection.
func DefaultConfig() *Config {
	return &Config{
		Mode:           ModeCatalog,
		Recommendation: recommend.DefaultConfig(),
		Navigation: NavigationConfig{
			AcceptTarget: engine.AcceptDefectSelection,
			RestartMode:  engine.RestartReset,
		},
		Defaults: DefaultsConfig{
			Thickness: params.DefaultThickness,
			Voltage:   params.DefaultVoltage,
			WireSpeed: params.DefaultWireSpeed,
		},
		Search: SearchConfig{
			Enabled:    true,
			Dimensions: 512,
		},
		Server: ServerConfig{
			Port:            8080,
			AllowAllOrigins: true,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// EngineOptions converts the navigation and defaults sections.
func (c *Config) EngineOptions() engine.Options {
	return engine.Options{
		AcceptTarget: c.Navigation.AcceptTarget,
		RestartMode:  c.Navigation.RestartMode,
		Defaults:     params.New(c.Defaults.Thickness, c.Defaults.Voltage, c.Defaults.WireSpeed),
	}
}
