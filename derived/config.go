package derived

const (
	defaultMaxTokens     = 4096
	defaultNoRuntimeName = "No Runtime"
)

// Config holds registry parameters.
type Config struct {
	// DefaultMaxTokens is reported by MaxTokens when the runtime publishes 0.
	DefaultMaxTokens int `json:"default_max_tokens,omitempty" yaml:"default_max_tokens,omitempty" toml:"default_max_tokens,omitempty"`
	// NoRuntimeName is reported by RuntimeName when no runtime is attached.
	NoRuntimeName string `json:"no_runtime_name,omitempty" yaml:"no_runtime_name,omitempty" toml:"no_runtime_name,omitempty"`
}

// DefaultConfig returns the default registry configuration.
func DefaultConfig() Config {
	return Config{
		DefaultMaxTokens: defaultMaxTokens,
		NoRuntimeName:    defaultNoRuntimeName,
	}
}

// Merge applies non-zero values from source into c.
func (c *Config) Merge(source *Config) {
	if source.DefaultMaxTokens > 0 {
		c.DefaultMaxTokens = source.DefaultMaxTokens
	}
	if source.NoRuntimeName != "" {
		c.NoRuntimeName = source.NoRuntimeName
	}
}
