package agent

import "github.com/strandworks/genchat/observability"

// Event types emitted during the tool-calling loop.
const (
	EventRunStart     observability.EventType = "agent.run.start"
	EventRunComplete  observability.EventType = "agent.run.complete"
	EventTurnStart    observability.EventType = "agent.turn.start"
	EventToolCall     observability.EventType = "agent.tool.call"
	EventToolComplete observability.EventType = "agent.tool.complete"
	EventError        observability.EventType = "agent.error"
)
