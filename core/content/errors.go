package content

import "errors"

// Sentinel errors for message normalization and history validation.
var (
	ErrBadMessage     = errors.New("invalid message")
	ErrInvalidHistory = errors.New("invalid history")
)
