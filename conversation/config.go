package conversation

const defaultModel = "unknown"

// Config holds conversation store initialization parameters.
type Config struct {
	// DefaultModel fills Message.Metadata.Model when input leaves it empty.
	DefaultModel string `json:"default_model,omitempty" yaml:"default_model,omitempty" toml:"default_model,omitempty"`
	// Title is the initial conversation title.
	Title string `json:"title,omitempty" yaml:"title,omitempty" toml:"title,omitempty"`
}

// DefaultConfig returns the default conversation configuration.
func DefaultConfig() Config {
	return Config{DefaultModel: defaultModel}
}

// Merge applies non-zero values from source into c.
func (c *Config) Merge(source *Config) {
	if source.DefaultModel != "" {
		c.DefaultModel = source.DefaultModel
	}
	if source.Title != "" {
		c.Title = source.Title
	}
}
