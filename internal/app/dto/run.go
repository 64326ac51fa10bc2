// Package dto defines the data transfer objects for run orchestration.
package dto

import "time"

// RunRequest carries the initial inputs and context handed to the engine
// when a run is created.
type RunRequest struct {
	Inputs      map[string]interface{} `json:"inputs"`
	Context     map[string]interface{} `json:"context"`
	IdleTimeout time.Duration          `json:"idle_timeout,omitempty"`
}

// Validate fills defaults; empty maps are valid inputs.
func (r *RunRequest) Validate() error {
	if r == nil {
		return ErrNilRequest
	}
	if r.Inputs == nil {
		r.Inputs = make(map[string]interface{})
	}
	if r.Context == nil {
		r.Context = make(map[string]interface{})
	}
	return nil
}

// RunStatus is the overall state of one execution attempt.
type RunStatus string

const (
	StatusIdle       RunStatus = "idle"
	StatusPersisting RunStatus = "persisting"
	StatusStreaming  RunStatus = "streaming"
	StatusCompleted  RunStatus = "completed"
	StatusFailed     RunStatus = "failed"
)

// Terminal reports whether no further events are valid for the run.
func (s RunStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// FailureKind distinguishes run failure causes so callers can present
// "could not save", "could not connect", "engine stalled", and "the engine
// reported an error" differently.
type FailureKind string

const (
	FailureNone       FailureKind = ""
	FailurePersist    FailureKind = "persist_error"
	FailureConnection FailureKind = "connection_error"
	FailureTimeout    FailureKind = "timeout"
	FailureEngine     FailureKind = "engine_error"
)

// NodeStatus is the per-node execution state within a run.
type NodeStatus string

const (
	NodeRunning   NodeStatus = "running"
	NodeCompleted NodeStatus = "completed"
	NodeFailed    NodeStatus = "failed"
)

// Terminal reports whether further events for the node are no-ops.
func (s NodeStatus) Terminal() bool {
	return s == NodeCompleted || s == NodeFailed
}

// NodeState tracks one node's accumulated progress.
type NodeState struct {
	Status NodeStatus    `json:"status"`
	Tokens []interface{} `json:"tokens,omitempty"`
	Result interface{}   `json:"result,omitempty"`
	Error  string        `json:"error,omitempty"`
}

// RunSnapshot is a point-in-time copy of a run's state, safe to hand to
// observers while the fold loop keeps writing.
type RunSnapshot struct {
	RunID     string                `json:"run_id"`
	FlowID    string                `json:"flow_id"`
	Status    RunStatus             `json:"status"`
	Failure   FailureKind           `json:"failure,omitempty"`
	Error     string                `json:"error,omitempty"`
	Nodes     map[string]*NodeState `json:"nodes"`
	Summary   interface{}           `json:"summary,omitempty"`
	StartTime time.Time             `json:"start_time"`
	EndTime   time.Time             `json:"end_time,omitempty"`
}
