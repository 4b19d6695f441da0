package runtimestate

import (
	"fmt"

	"github.com/tailored-agentic-units/assistant-state/observability"
	"github.com/tailored-agentic-units/assistant-state/store"
)

// Option configures a Store.
type Option func(*Store)

// WithObserver sets the observer for runtime and store events.
func WithObserver(o observability.Observer) Option {
	return func(s *Store) { s.observer = o }
}

// Store is the runtime store.
type Store struct {
	state    *store.Writable[State]
	cfg      Config
	observer observability.Observer
	events   observability.Emitter
}

// New creates a runtime store with no runtime attached. A nil cfg uses
// DefaultConfig.
func New(cfg *Config, opts ...Option) *Store {
	c := DefaultConfig()
	if cfg != nil {
		c.Merge(cfg)
	}

	s := &Store{cfg: c, observer: observability.NoOpObserver{}}
	for _, opt := range opts {
		opt(s)
	}

	s.events = observability.NewEmitter(s.observer, "runtime")
	s.state = store.NewWritable(s.initial(),
		store.WithName("runtime"),
		store.WithObserver(s.observer),
	)
	return s
}

func (s *Store) initial() State {
	return State{Model: s.cfg.Model, Settings: s.cfg.Settings}
}

// State exposes the runtime state without its write path.
func (s *Store) State() store.Readable[State] {
	return store.ReadOnly[State](s.state)
}

// Get returns the current runtime state.
func (s *Store) Get() State {
	return s.state.Get()
}

// Subscribe registers fn for the current state and every change.
func (s *Store) Subscribe(fn func(State)) store.Unsubscriber {
	return s.state.Subscribe(fn)
}

// SetRuntime attaches rt and publishes its capabilities. A nil rt detaches
// the current runtime, resets capabilities and marks the store disconnected.
func (s *Store) SetRuntime(rt Runtime) error {
	if rt == nil {
		err := s.update("detach runtime", func(st *State) {
			st.Current = nil
			st.Connected = false
			st.Capabilities = Capabilities{}
		})
		if err == nil {
			s.events.Emit(EventDetach, observability.LevelInfo, nil)
		}
		return err
	}

	caps := s.normalize(rt.Name(), rt.Capabilities())
	err := s.update("attach runtime", func(st *State) {
		st.Current = rt
		st.Capabilities = caps
	})
	if err == nil {
		s.events.Emit(EventAttach, observability.LevelInfo, map[string]any{
			"runtime":    rt.Name(),
			"streaming":  caps.SupportsStreaming,
			"max_tokens": caps.MaxTokens,
		})
	}
	return err
}

func (s *Store) normalize(name string, caps Capabilities) Capabilities {
	if caps.MaxTokens < 0 {
		s.events.Emit(EventCapabilitiesNormalized, observability.LevelWarning, map[string]any{
			"runtime":    name,
			"field":      "max_tokens",
			"rejected":   caps.MaxTokens,
			"normalized": 0,
		})
		caps.MaxTokens = 0
	}
	return caps
}

// SetConnected records the connection status.
func (s *Store) SetConnected(connected bool) error {
	err := s.update("set connected", func(st *State) { st.Connected = connected })
	if err == nil {
		s.events.Emit(EventConnection, observability.LevelInfo, map[string]any{"connected": connected})
	}
	return err
}

// UpdateSettings merges patch into the generation settings.
func (s *Store) UpdateSettings(patch SettingsPatch) error {
	return s.update("update settings", func(st *State) { st.Settings = patch.apply(st.Settings) })
}

// SetModel records the model identifier; "" clears it.
func (s *Store) SetModel(model string) error {
	return s.update("set model", func(st *State) { st.Model = model })
}

// Clear resets the store to its configured initial state.
func (s *Store) Clear() error {
	if err := s.state.Set(s.initial()); err != nil {
		return fmt.Errorf("clear runtime: %w", err)
	}
	s.events.Emit(EventClear, observability.LevelInfo, nil)
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
