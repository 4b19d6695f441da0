package uistate

import (
	"fmt"

	"github.com/tailored-agentic-units/assistant-state/observability"
	"github.com/tailored-agentic-units/assistant-state/store"
)

// Option configures a Store.
type Option func(*Store)

// WithObserver sets the observer for UI and store events.
func WithObserver(o observability.Observer) Option {
	return func(s *Store) { s.observer = o }
}

// Store is the UI store.
type Store struct {
	state    *store.Writable[State]
	cfg      Config
	observer observability.Observer
	events   observability.Emitter
}

// New creates a UI store scrolled to the bottom with the configured theme.
// A nil cfg uses DefaultConfig.
func New(cfg *Config, opts ...Option) *Store {
	c := DefaultConfig()
	if cfg != nil {
		c.Merge(cfg)
	}

	s := &Store{cfg: c, observer: observability.NoOpObserver{}}
	for _, opt := range opts {
		opt(s)
	}

	s.events = observability.NewEmitter(s.observer, "ui")
	s.cfg.Theme = s.checkTheme(s.cfg.Theme)
	s.state = store.NewWritable(s.initial(),
		store.WithName("ui"),
		store.WithObserver(s.observer),
	)
	return s
}

func (s *Store) initial() State {
	return State{
		ScrolledToBottom: true,
		Theme:            s.cfg.Theme,
		SidebarOpen:      s.cfg.SidebarOpen,
	}
}

// State exposes the UI state without its write path.
func (s *Store) State() store.Readable[State] {
	return store.ReadOnly[State](s.state)
}

// Get returns the current UI state.
func (s *Store) Get() State {
	return s.state.Get()
}

// Subscribe registers fn for the current state and every change.
func (s *Store) Subscribe(fn func(State)) store.Unsubscriber {
	return s.state.Subscribe(fn)
}

// SetScrolledToBottom records whether the transcript is scrolled to the end.
func (s *Store) SetScrolledToBottom(scrolled bool) error {
	return s.update("set scrolled to bottom", func(st *State) { st.ScrolledToBottom = scrolled })
}

// SetShowScrollButton records whether the scroll-to-bottom button is wanted.
func (s *Store) SetShowScrollButton(show bool) error {
	return s.update("set show scroll button", func(st *State) { st.ShowScrollButton = show })
}

// SetSelectedMessage selects the message with id; "" clears the selection.
func (s *Store) SetSelectedMessage(id string) error {
	return s.update("set selected message", func(st *State) { st.SelectedMessageID = id })
}

// SetComposerValue replaces the composer text.
func (s *Store) SetComposerValue(value string) error {
	return s.update("set composer value", func(st *State) { st.ComposerValue = value })
}

// SetTheme applies theme. An unknown theme is replaced by DefaultTheme and
// reported as a warning event; the call still succeeds.
func (s *Store) SetTheme(theme Theme) error {
	theme = s.checkTheme(theme)
	return s.update("set theme", func(st *State) { st.Theme = theme })
}

func (s *Store) checkTheme(theme Theme) Theme {
	if theme.Valid() {
		return theme
	}
	s.events.Emit(EventThemeRejected, observability.LevelWarning, map[string]any{
		"rejected": string(theme),
		"fallback": string(DefaultTheme),
	})
	return DefaultTheme
}

// ToggleSidebar flips sidebar visibility.
func (s *Store) ToggleSidebar() error {
	return s.update("toggle sidebar", func(st *State) { st.SidebarOpen = !st.SidebarOpen })
}

// Clear resets the store to its configured initial state.
func (s *Store) Clear() error {
	if err := s.state.Set(s.initial()); err != nil {
		return fmt.Errorf("clear ui: %w", err)
	}
	s.events.Emit(EventClear, observability.LevelVerbose, nil)
	return nil
}

// Subscribers reports the number of live subscriptions.
func (s *Store) Subscribers() int {
	return s.state.Subscribers()
}

func (s *Store) update(op string, change func(*State)) error {
	err := s.state.Update(func(st State) State {
		change(&st)
		return st
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
