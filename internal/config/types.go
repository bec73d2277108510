package config

import "github.com/weldyapp/weldy/internal/recommend"

// Mode selects which graph drives the wizard.
type Mode string

const (
	// ModeCatalog walks defect combinations -> causes -> fixes derived from
	// the knowledge base.
	ModeCatalog Mode = "catalog"
	// ModeTree walks the authored decision tree.
	ModeTree Mode = "tree"
)

// Config is the top-level weldy configuration, corresponding to .weldy.yml.
type Config struct {
	Mode           Mode             `yaml:"mode" koanf:"mode"`
	KnowledgeBase  []string         `yaml:"knowledge_base" koanf:"knowledge_base"`
	DecisionTree   string           `yaml:"decision_tree" koanf:"decision_tree"`
	Recommendation recommend.Config `yaml:"recommendation" koanf:"recommendation"`
	Navigation     NavigationConfig `yaml:"navigation" koanf:"navigation"`
	Defaults       DefaultsConfig   `yaml:"defaults" koanf:"defaults"`
	Search         SearchConfig     `yaml:"search" koanf:"search"`
	Server         ServerConfig     `yaml:"server" koanf:"server"`
	Log            LogConfig        `yaml:"log" koanf:"log"`
}

// NavigationConfig controls where accept and restart send the user.
type NavigationConfig struct {
	AcceptTarget string `yaml:"accept_target" koanf:"accept_target"`
	RestartMode  string `yaml:"restart_mode" koanf:"restart_mode"`
}

// DefaultsConfig holds the machine settings a new session starts with.
type DefaultsConfig struct {
	Thickness string  `yaml:"thickness" koanf:"thickness"`
	Voltage   float64 `yaml:"voltage" koanf:"voltage"`
	WireSpeed float64 `yaml:"wire_speed" koanf:"wire_speed"`
}

// SearchConfig controls the free-text symptom search index.
type SearchConfig struct {
	Enabled    bool `yaml:"enabled" koanf:"enabled"`
	Dimensions int  `yaml:"dimensions" koanf:"dimensions"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int  `yaml:"port" koanf:"port"`
	AllowAllOrigins bool `yaml:"allow_all_origins" koanf:"allow_all_origins"`
}

// LogConfig holds logger settings. Format is "json" or "console".
type LogConfig struct {
	Level  string `yaml:"level" koanf:"level"`
	Format string `yaml:"format" koanf:"format"`
}
