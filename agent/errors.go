package agent

import "errors"

var (
	// ErrMaxTurns is returned by Run when the loop exhausts its turn budget
	// without the model producing a final response.
	ErrMaxTurns = errors.New("max turns reached")

	// ErrNilChat reports a Runner constructed without a chat session.
	ErrNilChat = errors.New("chat session is nil")

	// ErrNilRegistry reports a Runner constructed without a tool registry.
	ErrNilRegistry = errors.New("tool registry is nil")
)
