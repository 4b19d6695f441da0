package assistant

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/tailored-agentic-units/assistant-state/conversation"
	"github.com/tailored-agentic-units/assistant-state/derived"
	"github.com/tailored-agentic-units/assistant-state/runtimestate"
	"github.com/tailored-agentic-units/assistant-state/uistate"
)

const defaultObserver = "slog"

// Config holds initialization parameters for every store in a Bundle.
// Each section delegates to that package's config-driven constructor.
type Config struct {
	// Observer names a registered observer ("noop", "slog", "zap").
	Observer     string              `json:"observer,omitempty" yaml:"observer,omitempty" toml:"observer,omitempty"`
	Conversation conversation.Config `json:"conversation" yaml:"conversation" toml:"conversation"`
	Runtime      runtimestate.Config `json:"runtime" yaml:"runtime" toml:"runtime"`
	UI           uistate.Config      `json:"ui" yaml:"ui" toml:"ui"`
	Derived      derived.Config      `json:"derived" yaml:"derived" toml:"derived"`
}

// DefaultConfig returns a Config with defaults for all stores.
func DefaultConfig() Config {
	return Config{
		Observer:     defaultObserver,
		Conversation: conversation.DefaultConfig(),
		Runtime:      runtimestate.DefaultConfig(),
		UI:           uistate.DefaultConfig(),
		Derived:      derived.DefaultConfig(),
	}
}

// Merge applies non-zero values from source into c, delegating to each
// section's Merge method.
func (c *Config) Merge(source *Config) {
	if source.Observer != "" {
		c.Observer = source.Observer
	}
	c.Conversation.Merge(&source.Conversation)
	c.Runtime.Merge(&source.Runtime)
	c.UI.Merge(&source.UI)
	c.Derived.Merge(&source.Derived)
}

// LoadConfig reads a config file, merges it with defaults, and returns the
// resulting Config. The format follows the file extension: .json, .yaml,
// .yml or .toml.
func LoadConfig(filename string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var loaded Config
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".json":
		err = json.Unmarshal(data, &loaded)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &loaded)
	case ".toml":
		err = toml.Unmarshal(data, &loaded)
	default:
		return nil, fmt.Errorf("%w: %q", ErrConfigFormat, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.Merge(&loaded)
	return &cfg, nil
}
