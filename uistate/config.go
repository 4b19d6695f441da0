package uistate

// Config holds UI store initialization parameters.
type Config struct {
	// Theme is the initial theme. Unknown values fall back to DefaultTheme.
	Theme Theme `json:"theme,omitempty" yaml:"theme,omitempty" toml:"theme,omitempty"`
	// SidebarOpen opens the sidebar initially.
	SidebarOpen bool `json:"sidebar_open,omitempty" yaml:"sidebar_open,omitempty" toml:"sidebar_open,omitempty"`
}

// DefaultConfig returns the default UI configuration.
func DefaultConfig() Config {
	return Config{Theme: DefaultTheme}
}

// Merge applies non-zero values from source into c.
func (c *Config) Merge(source *Config) {
	if source.Theme != "" {
		c.Theme = source.Theme
	}
	if source.SidebarOpen {
		c.SidebarOpen = true
	}
}
