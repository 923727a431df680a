package observability

import "context"

// MultiObserver fans an event stream out to several observers, e.g. local
// slog output plus OTel span events for the same session.
type MultiObserver struct {
	targets []Observer
}

// NewMultiObserver creates a MultiObserver over the non-nil observers.
func NewMultiObserver(observers ...Observer) *MultiObserver {
	m := &MultiObserver{}
	for _, obs := range observers {
		if obs != nil {
			m.targets = append(m.targets, obs)
		}
	}
	return m
}

// OnEvent delivers the event to every target in registration order.
func (m *MultiObserver) OnEvent(ctx context.Context, event Event) {
	for _, target := range m.targets {
		target.OnEvent(ctx, event)
	}
}
