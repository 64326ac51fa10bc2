// Package graph defines domain-specific errors
package graph

import "errors"

// Domain errors - defined once, used everywhere
var (
	// Connection rejection reasons, in validation order
	ErrUnknownNode       = errors.New("unknown node")
	ErrUnknownPort       = errors.New("unknown port")
	ErrTypeMismatch      = errors.New("incompatible port types")
	ErrInputAlreadyBound = errors.New("input port already bound")

	// Node errors
	ErrNilNode            = errors.New("node cannot be nil")
	ErrInvalidNodeID      = errors.New("invalid node ID")
	ErrInvalidComponentID = errors.New("invalid component ID")
	ErrDuplicateNodeID    = errors.New("duplicate node ID")

	// Port errors
	ErrInvalidPortName    = errors.New("invalid port name")
	ErrInvalidDataType    = errors.New("invalid data type")
	ErrInvalidDirection   = errors.New("invalid port direction")
	ErrDuplicatePort      = errors.New("duplicate port name")
	ErrPortLimitReached   = errors.New("port limit reached")
	ErrPortLimitUnderflow = errors.New("port limit underflow")

	// Edge errors
	ErrNilEdge             = errors.New("edge cannot be nil")
	ErrInvalidEdgeID       = errors.New("invalid edge ID")
	ErrInvalidEdgeEndpoint = errors.New("invalid edge endpoint")
	ErrDuplicateEdgeID     = errors.New("duplicate edge ID")
	ErrUnknownEdge         = errors.New("unknown edge")
)
