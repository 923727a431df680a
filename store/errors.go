package store

import "errors"

// Sentinel errors for store operations.
var (
	ErrNoID       = errors.New("record has no ID")
	ErrBadID      = errors.New("record ID is not a valid file name")
	ErrLoadFailed = errors.New("load failed")
	ErrSaveFailed = errors.New("save failed")
)
