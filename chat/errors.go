package chat

import "errors"

// Sentinel errors for chat construction.
var (
	ErrNilGenerator = errors.New("generator is nil")
	ErrNoModel      = errors.New("model name is empty")
)
