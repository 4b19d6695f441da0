package runtimestate

// Runtime is the identity of an attached model runtime.
type Runtime interface {
	Name() string
	Capabilities() Capabilities
}

// Capabilities are the feature flags a runtime publishes.
type Capabilities struct {
	SupportsStreaming   bool `json:"supports_streaming" yaml:"supports_streaming" toml:"supports_streaming"`
	SupportsAttachments bool `json:"supports_attachments" yaml:"supports_attachments" toml:"supports_attachments"`
	MaxTokens           int  `json:"max_tokens" yaml:"max_tokens" toml:"max_tokens"`
}

// Static is a Runtime with a fixed name and capability set.
type Static struct {
	Label string       `json:"name" yaml:"name"`
	Caps  Capabilities `json:"capabilities" yaml:"capabilities"`
}

// Name returns the runtime label.
func (s Static) Name() string { return s.Label }

// Capabilities returns the fixed capability set.
func (s Static) Capabilities() Capabilities { return s.Caps }

// Settings are the generation parameters sent with each request. Zero values
// leave the choice to the runtime.
type Settings struct {
	Temperature     float64 `json:"temperature,omitempty" yaml:"temperature,omitempty" toml:"temperature,omitempty"`
	TopP            float64 `json:"top_p,omitempty" yaml:"top_p,omitempty" toml:"top_p,omitempty"`
	MaxOutputTokens int     `json:"max_output_tokens,omitempty" yaml:"max_output_tokens,omitempty" toml:"max_output_tokens,omitempty"`
	SystemPrompt    string  `json:"system_prompt,omitempty" yaml:"system_prompt,omitempty" toml:"system_prompt,omitempty"`
}

// Merge applies non-zero values from source into s.
func (s *Settings) Merge(source *Settings) {
	if source.Temperature != 0 {
		s.Temperature = source.Temperature
	}
	if source.TopP != 0 {
		s.TopP = source.TopP
	}
	if source.MaxOutputTokens != 0 {
		s.MaxOutputTokens = source.MaxOutputTokens
	}
	if source.SystemPrompt != "" {
		s.SystemPrompt = source.SystemPrompt
	}
}

// SettingsPatch is a partial update of Settings. Unlike Merge, a patch can
// reset a field to its zero value.
type SettingsPatch struct {
	Temperature     *float64 `json:"temperature,omitempty" yaml:"temperature,omitempty"`
	TopP            *float64 `json:"top_p,omitempty" yaml:"top_p,omitempty"`
	MaxOutputTokens *int     `json:"max_output_tokens,omitempty" yaml:"max_output_tokens,omitempty"`
	SystemPrompt    *string  `json:"system_prompt,omitempty" yaml:"system_prompt,omitempty"`
}

func (p SettingsPatch) apply(s Settings) Settings {
	if p.Temperature != nil {
		s.Temperature = *p.Temperature
	}
	if p.TopP != nil {
		s.TopP = *p.TopP
	}
	if p.MaxOutputTokens != nil {
		s.MaxOutputTokens = *p.MaxOutputTokens
	}
	if p.SystemPrompt != nil {
		s.SystemPrompt = *p.SystemPrompt
	}
	return s
}

// State is the value held by the runtime store. A nil Current means no
// runtime is attached.
type State struct {
	Model        string       `json:"model"`
	Current      Runtime      `json:"-"`
	Connected    bool         `json:"connected"`
	Settings     Settings     `json:"settings"`
	Capabilities Capabilities `json:"capabilities"`
}

// HasRuntime reports whether a runtime is attached.
func (s State) HasRuntime() bool {
	return s.Current != nil
}

// RuntimeName returns the attached runtime's name, or "" when none is.
func (s State) RuntimeName() string {
	if s.Current == nil {
		return ""
	}
	return s.Current.Name()
}
