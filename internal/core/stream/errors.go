// Package stream defines domain-specific errors
package stream

import "errors"

var (
	ErrUnknownEventType = errors.New("unknown event type")
	ErrMissingNodeID    = errors.New("event requires a node ID")
	ErrStreamClosed     = errors.New("stream is closed")
)
