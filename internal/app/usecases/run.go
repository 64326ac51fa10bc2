package usecases

import (
	"sync"
	"time"

	"github.com/flowcanvas/flowcanvas/internal/app/dto"
	"github.com/flowcanvas/flowcanvas/internal/core/stream"
	"github.com/flowcanvas/flowcanvas/internal/infrastructure/metrics"
)

// Run is one execution attempt of a persisted flow, tracked as an explicit
// state machine. The fold loop is the sole writer; observers read through
// Snapshot and the accessors.
type Run struct {
	mu        sync.RWMutex
	id        string
	flowID    string
	status    dto.RunStatus
	failure   dto.FailureKind
	errMsg    string
	nodes     map[string]*dto.NodeState
	summary   interface{}
	startTime time.Time
	endTime   time.Time
	cancelled bool

	src  stream.Stream
	done chan struct{}
}

func newRun(id string) *Run {
	return &Run{
		id:        id,
		status:    dto.StatusIdle,
		nodes:     make(map[string]*dto.NodeState),
		startTime: time.Now(),
		done:      make(chan struct{}),
	}
}

// ID returns the run identifier.
func (r *Run) ID() string { return r.id }

// Status returns the current overall state.
func (r *Run) Status() dto.RunStatus {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.status
}

// Failure returns the failure kind, FailureNone unless Failed.
func (r *Run) Failure() dto.FailureKind {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.failure
}

// Err returns the failure message, empty unless Failed.
func (r *Run) Err() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.errMsg
}

// Done is closed once the fold loop has exited; after that the run's state
// no longer changes.
func (r *Run) Done() <-chan struct{} { return r.done }

// Cancel closes the progress connection and transitions Streaming -> Idle
// without a terminal outcome. Per-node results already received stay
// readable. Work already completed server-side is not touched.
func (r *Run) Cancel() error {
	r.mu.Lock()
	if r.status != dto.StatusStreaming {
		r.mu.Unlock()
		return dto.ErrRunNotActive
	}
	r.cancelled = true
	r.status = dto.StatusIdle
	src := r.src
	r.mu.Unlock()

	if src != nil {
		return src.Close()
	}
	return nil
}

// Snapshot returns a deep copy of the run state.
func (r *Run) Snapshot() *dto.RunSnapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()

	nodes := make(map[string]*dto.NodeState, len(r.nodes))
	for id, ns := range r.nodes {
		clone := &dto.NodeState{
			Status: ns.Status,
			Result: ns.Result,
			Error:  ns.Error,
		}
		if ns.Tokens != nil {
			clone.Tokens = append([]interface{}(nil), ns.Tokens...)
		}
		nodes[id] = clone
	}
	return &dto.RunSnapshot{
		RunID:     r.id,
		FlowID:    r.flowID,
		Status:    r.status,
		Failure:   r.failure,
		Error:     r.errMsg,
		Nodes:     nodes,
		Summary:   r.summary,
		StartTime: r.startTime,
		EndTime:   r.endTime,
	}
}

// setStatus is used by the client during the Persisting/Streaming phases.
func (r *Run) setStatus(s dto.RunStatus) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.status = s
}

// fail moves the run to Failed unless it already reached a terminal state
// or was cancelled back to Idle.
func (r *Run) fail(kind dto.FailureKind, msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.status.Terminal() || r.cancelled {
		return
	}
	r.status = dto.StatusFailed
	r.failure = kind
	r.errMsg = msg
	r.endTime = time.Now()
	metrics.RunFailed(string(kind))
}

// apply folds one inbound event into the run state. Events arriving after a
// terminal state (for the run or for the addressed node) are well-defined
// no-ops. Events for a node not yet tracked create its entry on first
// sight.
func (r *Run) apply(ev *stream.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.status != dto.StatusStreaming {
		return
	}
	metrics.EventFolded(string(ev.Type))

	switch ev.Type {
	case stream.EventToken:
		ns := r.node(ev.NodeID)
		if ns.Status.Terminal() {
			return
		}
		ns.Tokens = append(ns.Tokens, ev.Data)

	case stream.EventNodeComplete:
		ns := r.node(ev.NodeID)
		if ns.Status.Terminal() {
			return
		}
		ns.Status = dto.NodeCompleted
		ns.Result = ev.Data

	case stream.EventFlowComplete:
		r.status = dto.StatusCompleted
		r.summary = ev.Data
		r.endTime = time.Now()
		metrics.RunCompleted()

	case stream.EventError:
		if ev.NodeID != "" {
			// Node failure is terminal for that node only; siblings in
			// flight keep streaming.
			ns := r.node(ev.NodeID)
			if ns.Status.Terminal() {
				return
			}
			ns.Status = dto.NodeFailed
			ns.Error = ev.Error
			return
		}
		r.status = dto.StatusFailed
		r.failure = dto.FailureEngine
		r.errMsg = ev.Error
		r.endTime = time.Now()
		metrics.RunFailed(string(dto.FailureEngine))
	}
}

// node returns the tracking entry for nodeID, creating it on first sight.
func (r *Run) node(nodeID string) *dto.NodeState {
	ns, ok := r.nodes[nodeID]
	if !ok {
		ns = &dto.NodeState{Status: dto.NodeRunning}
		r.nodes[nodeID] = ns
	}
	return ns
}

func (r *Run) terminal() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.status.Terminal()
}

func (r *Run) wasCancelled() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.cancelled
}
