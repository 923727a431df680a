package observability

import "context"

// NoOpObserver discards every event. It is the fallback when no observer is
// configured anywhere.
type NoOpObserver struct{}

// OnEvent implements Observer by doing nothing.
func (NoOpObserver) OnEvent(context.Context, Event) {}
