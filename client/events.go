package client

import "github.com/strandworks/genchat/observability"

// Client event types emitted around service calls.
const (
	EventRequestStart    observability.EventType = "client.request.start"
	EventRequestComplete observability.EventType = "client.request.complete"
)
