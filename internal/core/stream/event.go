// Package stream defines the progress-event wire protocol emitted by the
// remote execution engine and the reader contract for consuming it.
package stream

import (
	"context"
	"encoding/json"
	"fmt"
)

// EventType is the discriminator carried in every inbound record.
type EventType string

const (
	// EventToken is an incremental partial output for one node
	EventToken EventType = "token"
	// EventNodeComplete is terminal for a single node
	EventNodeComplete EventType = "node_complete"
	// EventFlowComplete is terminal for the whole run
	EventFlowComplete EventType = "flow_complete"
	// EventError reports a node failure (node_id set) or a run failure
	EventError EventType = "error"
)

// Event is one inbound progress record. Data carries the token payload,
// node result, or flow summary depending on Type.
type Event struct {
	Type   EventType   `json:"event"`
	NodeID string      `json:"node_id,omitempty"`
	Data   interface{} `json:"data,omitempty"`
	Error  string      `json:"error,omitempty"`
}

// Validate checks the record against the protocol rules.
func (e *Event) Validate() error {
	switch e.Type {
	case EventToken, EventNodeComplete:
		if e.NodeID == "" {
			return fmt.Errorf("%w: %s", ErrMissingNodeID, e.Type)
		}
	case EventFlowComplete, EventError:
		// node_id optional: an error without one is terminal for the run
	default:
		return fmt.Errorf("%w: %q", ErrUnknownEventType, e.Type)
	}
	return nil
}

// Parse decodes and validates one wire record.
func Parse(raw []byte) (*Event, error) {
	var e Event
	if err := json.Unmarshal(raw, &e); err != nil {
		return nil, fmt.Errorf("malformed event record: %w", err)
	}
	if err := e.Validate(); err != nil {
		return nil, err
	}
	return &e, nil
}

// Terminal reports whether no further events are valid for the event's
// scope: flow_complete ends the run, error without a node ID ends the run.
func (e *Event) Terminal() bool {
	return e.Type == EventFlowComplete || (e.Type == EventError && e.NodeID == "")
}

// Stream is a live progress-event connection. Recv blocks until the next
// event, the context deadline, or stream close; Close releases the
// underlying connection and makes subsequent Recv calls fail with
// ErrStreamClosed.
type Stream interface {
	Recv(ctx context.Context) (*Event, error)
	Close() error
}
