package observability

import "context"

// NoOpObserver discards all events. It is the default for every store.
type NoOpObserver struct{}

func (NoOpObserver) OnEvent(ctx context.Context, event Event) {}
