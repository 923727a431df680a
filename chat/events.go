package chat

import "github.com/strandworks/genchat/observability"

// Chat event types emitted around the send pipeline.
//
// chat.send.blocked is the one diagnostic callers cannot reconstruct from
// return values: the send itself succeeded, but the response was inadmissible
// and history was left untouched.
const (
	EventSendStart     observability.EventType = "chat.send.start"
	EventSendBlocked   observability.EventType = "chat.send.blocked"
	EventTurnsAdmitted observability.EventType = "chat.turns.admitted"
	EventChainFault    observability.EventType = "chat.chain.fault"
)
