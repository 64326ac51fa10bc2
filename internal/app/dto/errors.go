package dto

import "errors"

// Run orchestration errors
var (
	ErrNilRequest   = errors.New("run request cannot be nil")
	ErrNilGraph     = errors.New("graph cannot be nil")
	ErrRunActive    = errors.New("a run is already active")
	ErrRunNotActive = errors.New("no run in progress")
)
