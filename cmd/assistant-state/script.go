package main

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/tailored-agentic-units/assistant-state/assistant"
	"github.com/tailored-agentic-units/assistant-state/conversation"
	"github.com/tailored-agentic-units/assistant-state/runtimestate"
	"github.com/tailored-agentic-units/assistant-state/uistate"
)

// refPrefix marks a step value as a reference to an id recorded by an
// earlier add_message step.
const refPrefix = "@"

var errUnknownRef = errors.New("unknown message reference")

// Script is a replayable sequence of actions.
type Script struct {
	Steps []Step `yaml:"steps"`
}

// Step is one action. Which fields apply depends on Action.
type Step struct {
	Action string `yaml:"action"`

	// add_message records the assigned id under Ref.
	Ref string `yaml:"ref,omitempty"`
	// ID targets update_message and remove_message; it may be a reference.
	ID string `yaml:"id,omitempty"`

	Role           string         `yaml:"role,omitempty"`
	Content        *string        `yaml:"content,omitempty"`
	Status         string         `yaml:"status,omitempty"`
	Tokens         *int           `yaml:"tokens,omitempty"`
	Model          *string        `yaml:"model,omitempty"`
	ProcessingTime *time.Duration `yaml:"processing_time,omitempty"`

	Runtime  *runtimestate.Static        `yaml:"runtime,omitempty"`
	Settings *runtimestate.SettingsPatch `yaml:"settings,omitempty"`
	Title    *string                     `yaml:"title,omitempty"`

	// Value carries the argument of single-value setters: a bool for
	// set_loading, set_connected, set_scrolled_to_bottom and
	// set_show_scroll_button, a string for the rest.
	Value yaml.Node `yaml:"value,omitempty"`
}

// ParseScript decodes a YAML script. Unknown fields are rejected.
func ParseScript(data []byte) (*Script, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var script Script
	if err := dec.Decode(&script); err != nil {
		return nil, fmt.Errorf("failed to parse script: %w", err)
	}
	for i, step := range script.Steps {
		if _, ok := handlers[step.Action]; !ok {
			return nil, fmt.Errorf("step %d: unknown action %q", i+1, step.Action)
		}
	}
	return &script, nil
}

// Runner applies steps to a bundle's actions and tracks message references.
type Runner struct {
	actions *assistant.Actions
	refs    map[string]string
}

// NewRunner creates a Runner over actions.
func NewRunner(actions *assistant.Actions) *Runner {
	return &Runner{actions: actions, refs: make(map[string]string)}
}

// Ref returns the message id recorded under name.
func (r *Runner) Ref(name string) (string, bool) {
	id, ok := r.refs[name]
	return id, ok
}

// Apply runs one step.
func (r *Runner) Apply(step Step) error {
	handler, ok := handlers[step.Action]
	if !ok {
		return fmt.Errorf("unknown action %q", step.Action)
	}
	return handler(r, step)
}

func (r *Runner) resolve(id string) (string, error) {
	name, ok := strings.CutPrefix(id, refPrefix)
	if !ok {
		return id, nil
	}
	resolved, ok := r.refs[name]
	if !ok {
		return "", fmt.Errorf("%w: %s", errUnknownRef, id)
	}
	return resolved, nil
}

type handler func(*Runner, Step) error

var handlers = map[string]handler{
	"add_message":    (*Runner).addMessage,
	"update_message": (*Runner).updateMessage,
	"remove_message": func(r *Runner, s Step) error {
		id, err := r.resolve(s.ID)
		if err != nil {
			return err
		}
		return r.actions.RemoveMessage(id)
	},
	"clear_conversation": func(r *Runner, _ Step) error {
		clear(r.refs)
		return r.actions.ClearConversation()
	},
	"set_loading": boolSetter(func(a *assistant.Actions, v bool) error { return a.SetLoading(v) }),
	"set_error": stringSetter(func(a *assistant.Actions, v string) error {
		if v == "" {
			return a.SetError(nil)
		}
		return a.SetError(errors.New(v))
	}),
	"set_latest_message": func(r *Runner, s Step) error {
		id, err := r.stringValue(s, true)
		if err != nil {
			return err
		}
		return r.actions.SetLatestMessageID(id)
	},
	"update_metadata": func(r *Runner, s Step) error {
		return r.actions.UpdateMetadata(conversation.MetadataPatch{Title: s.Title})
	},

	"set_runtime": func(r *Runner, s Step) error {
		if s.Runtime == nil {
			return r.actions.SetRuntime(nil)
		}
		return r.actions.SetRuntime(*s.Runtime)
	},
	"set_connected": boolSetter(func(a *assistant.Actions, v bool) error { return a.SetConnected(v) }),
	"update_settings": func(r *Runner, s Step) error {
		if s.Settings == nil {
			return errors.New("settings required")
		}
		return r.actions.UpdateRuntimeSettings(*s.Settings)
	},
	"set_model":     stringSetter(func(a *assistant.Actions, v string) error { return a.SetModel(v) }),
	"clear_runtime": func(r *Runner, _ Step) error { return r.actions.ClearRuntime() },

	"set_scrolled_to_bottom": boolSetter(func(a *assistant.Actions, v bool) error { return a.SetScrolledToBottom(v) }),
	"set_show_scroll_button": boolSetter(func(a *assistant.Actions, v bool) error { return a.SetShowScrollButton(v) }),
	"set_selected_message": func(r *Runner, s Step) error {
		id, err := r.stringValue(s, true)
		if err != nil {
			return err
		}
		return r.actions.SetSelectedMessage(id)
	},
	"set_composer": stringSetter(func(a *assistant.Actions, v string) error { return a.SetComposerValue(v) }),
	"set_theme": stringSetter(func(a *assistant.Actions, v string) error {
		return a.SetTheme(uistate.Theme(v))
	}),
	"toggle_sidebar": func(r *Runner, _ Step) error { return r.actions.ToggleSidebar() },
	"clear_ui":       func(r *Runner, _ Step) error { return r.actions.ClearUI() },

	"reset": func(r *Runner, _ Step) error {
		clear(r.refs)
		return r.actions.Reset()
	},
}

func (r *Runner) addMessage(s Step) error {
	in := conversation.MessageInput{
		ID:     s.ID,
		Role:   conversation.Role(s.Role),
		Status: conversation.Status(s.Status),
	}
	if s.Content != nil {
		in.Content = *s.Content
	}
	if s.Tokens != nil {
		in.Metadata.Tokens = *s.Tokens
	}
	if s.Model != nil {
		in.Metadata.Model = *s.Model
	}
	if s.ProcessingTime != nil {
		in.Metadata.ProcessingTime = *s.ProcessingTime
	}

	id, err := r.actions.AddMessage(in)
	if err != nil {
		return err
	}
	if s.Ref != "" {
		r.refs[s.Ref] = id
	}
	return nil
}

func (r *Runner) updateMessage(s Step) error {
	id, err := r.resolve(s.ID)
	if err != nil {
		return err
	}

	patch := conversation.MessagePatch{Content: s.Content}
	if s.Role != "" {
		role := conversation.Role(s.Role)
		patch.Role = &role
	}
	if s.Status != "" {
		status := conversation.Status(s.Status)
		patch.Status = &status
	}
	if s.Tokens != nil || s.Model != nil || s.ProcessingTime != nil {
		patch.Metadata = &conversation.MessageMetadataPatch{
			Tokens:         s.Tokens,
			Model:          s.Model,
			ProcessingTime: s.ProcessingTime,
		}
	}
	return r.actions.UpdateMessage(id, patch)
}

func (r *Runner) stringValue(s Step, resolveRef bool) (string, error) {
	var v string
	if s.Value.Kind != 0 {
		if err := s.Value.Decode(&v); err != nil {
			return "", fmt.Errorf("value: %w", err)
		}
	}
	if resolveRef {
		return r.resolve(v)
	}
	return v, nil
}

func boolSetter(set func(*assistant.Actions, bool) error) handler {
	return func(r *Runner, s Step) error {
		var v bool
		if s.Value.Kind == 0 {
			return errors.New("value required")
		}
		if err := s.Value.Decode(&v); err != nil {
			return fmt.Errorf("value: %w", err)
		}
		return set(r.actions, v)
	}
}

func stringSetter(set func(*assistant.Actions, string) error) handler {
	return func(r *Runner, s Step) error {
		v, err := r.stringValue(s, false)
		if err != nil {
			return err
		}
		return set(r.actions, v)
	}
}
