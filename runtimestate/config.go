package runtimestate

// Config holds runtime store initialization parameters.
type Config struct {
	// Model is the initial model identifier.
	Model string `json:"model,omitempty" yaml:"model,omitempty" toml:"model,omitempty"`
	// Settings are the initial generation settings.
	Settings Settings `json:"settings,omitzero" yaml:"settings,omitempty" toml:"settings,omitempty"`
}

// DefaultConfig returns the default runtime configuration: no model and
// runtime-chosen settings.
func DefaultConfig() Config {
	return Config{}
}

// Merge applies non-zero values from source into c.
func (c *Config) Merge(source *Config) {
	if source.Model != "" {
		c.Model = source.Model
	}
	c.Settings.Merge(&source.Settings)
}
