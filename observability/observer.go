// Package observability carries store and domain events to logging backends.
// Level values align with OpenTelemetry SeverityNumbers so events can be
// forwarded to an OTel collector without translation.
package observability

import (
	"context"
	"log/slog"
	"maps"
	"slices"
	"time"
)

// Level represents event severity aligned with OTel SeverityNumber ranges.
type Level int

const (
	LevelVerbose Level = 5  // OTel DEBUG (5-8)
	LevelInfo    Level = 9  // OTel INFO (9-12)
	LevelWarning Level = 13 // OTel WARN (13-16)
	LevelError   Level = 17 // OTel ERROR (17-20)
)

// String returns the OTel severity text for the level.
func (l Level) String() string {
	switch {
	case l <= 4:
		return "TRACE"
	case l <= 8:
		return "DEBUG"
	case l <= 12:
		return "INFO"
	case l <= 16:
		return "WARN"
	case l <= 20:
		return "ERROR"
	default:
		return "FATAL"
	}
}

// SlogLevel maps this level to the corresponding slog.Level.
func (l Level) SlogLevel() slog.Level {
	switch {
	case l <= 8:
		return slog.LevelDebug
	case l <= 12:
		return slog.LevelInfo
	case l <= 16:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}

// EventType identifies the kind of event. Each package declares its own
// constants ("store.set", "conversation.message.add", ...).
type EventType string

// Event is emitted by stores when their state changes or when an input is
// normalized. Source names the emitting store.
type Event struct {
	Type      EventType
	Level     Level
	Timestamp time.Time
	Source    string
	Data      map[string]any
}

// Keys returns the Data keys in sorted order so backends render attributes
// deterministically.
func (e Event) Keys() []string {
	return slices.Sorted(maps.Keys(e.Data))
}

// Observer receives events for logging, tracing, or metrics. Observers are
// invoked synchronously on the mutating goroutine and must not mutate stores.
type Observer interface {
	OnEvent(ctx context.Context, event Event)
}

// Emitter stamps events with a fixed source before handing them to an
// Observer. A zero Emitter discards events.
type Emitter struct {
	Observer Observer
	Source   string
}

// NewEmitter binds observer to source. A nil observer yields NoOpObserver.
func NewEmitter(observer Observer, source string) Emitter {
	if observer == nil {
		observer = NoOpObserver{}
	}
	return Emitter{Observer: observer, Source: source}
}

// Emit sends an event of the given type and level.
func (e Emitter) Emit(eventType EventType, level Level, data map[string]any) {
	if e.Observer == nil {
		return
	}
	e.Observer.OnEvent(context.Background(), Event{
		Type:      eventType,
		Level:     level,
		Timestamp: time.Now(),
		Source:    e.Source,
		Data:      data,
	})
}
