package observability

import "context"

// MultiObserver fans out events to several observers in registration order.
type MultiObserver struct {
	observers []Observer
}

// NewMultiObserver forwards events to every non-nil observer given.
func NewMultiObserver(observers ...Observer) *MultiObserver {
	filtered := make([]Observer, 0, len(observers))
	for _, obs := range observers {
		if obs != nil {
			filtered = append(filtered, obs)
		}
	}
	return &MultiObserver{observers: filtered}
}

// Add appends an observer. Nil observers are ignored.
func (m *MultiObserver) Add(observer Observer) {
	if observer != nil {
		m.observers = append(m.observers, observer)
	}
}

// Len reports how many observers receive events.
func (m *MultiObserver) Len() int {
	return len(m.observers)
}

func (m *MultiObserver) OnEvent(ctx context.Context, event Event) {
	for _, obs := range m.observers {
		obs.OnEvent(ctx, event)
	}
}
