package uistate

import "slices"

// Theme selects the color scheme.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
	ThemeAuto  Theme = "auto"
)

// DefaultTheme is substituted for unknown theme values.
const DefaultTheme = ThemeLight

var themes = []Theme{ThemeLight, ThemeDark, ThemeAuto}

// Valid reports whether t is a known theme.
func (t Theme) Valid() bool {
	return slices.Contains(themes, t)
}

// State is the value held by the UI store.
type State struct {
	ScrolledToBottom  bool   `json:"scrolled_to_bottom"`
	ShowScrollButton  bool   `json:"show_scroll_button"`
	SelectedMessageID string `json:"selected_message_id"`
	ComposerValue     string `json:"composer_value"`
	Theme             Theme  `json:"theme"`
	SidebarOpen       bool   `json:"sidebar_open"`
}
