package usecases

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/flowcanvas/flowcanvas/internal/app/dto"
	"github.com/flowcanvas/flowcanvas/internal/core/graph"
	"github.com/flowcanvas/flowcanvas/internal/core/stream"
	"github.com/flowcanvas/flowcanvas/internal/infrastructure/metrics"
	"github.com/flowcanvas/flowcanvas/pkg/serialization"
)

// DefaultIdleTimeout bounds how long a run waits between events before it
// fails with FailureTimeout. The engine may stall or the connection may die
// silently; without a bound the run would hang in Streaming forever.
const DefaultIdleTimeout = 120 * time.Second

// Client drives flows through remote execution: persist if needed, open
// the progress stream, fold events into run state. Runs are independent;
// starting two in quick succession yields two separate state machines.
type Client struct {
	store       FlowStore
	engine      Engine
	idleTimeout time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithIdleTimeout overrides the default Streaming idle timeout.
// Zero disables the timeout.
func WithIdleTimeout(d time.Duration) Option {
	return func(c *Client) { c.idleTimeout = d }
}

// NewClient creates a run client over a persistence store and an engine.
func NewClient(store FlowStore, engine Engine, opts ...Option) *Client {
	c := &Client{
		store:       store,
		engine:      engine,
		idleTimeout: DefaultIdleTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Start submits the graph for execution. The graph is saved (or updated)
// first when it has no identifier or has been mutated since the last save.
// On success the returned run is Streaming and folds events in the
// background until a terminal event, a failure, or cancellation.
//
// On persist or connection failure the returned run is already Failed with
// the distinguishing reason, alongside the error.
func (c *Client) Start(ctx context.Context, g *graph.Graph, req *dto.RunRequest) (*Run, error) {
	if g == nil {
		return nil, dto.ErrNilGraph
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	run := newRun(uuid.NewString())
	metrics.RunStarted()

	run.setStatus(dto.StatusPersisting)
	if err := c.persist(ctx, g); err != nil {
		run.fail(dto.FailurePersist, err.Error())
		close(run.done)
		return run, fmt.Errorf("persist flow: %w", err)
	}
	run.flowID = g.FlowID

	src, err := c.engine.OpenRun(ctx, g.FlowID, req)
	if err != nil {
		run.fail(dto.FailureConnection, err.Error())
		close(run.done)
		return run, fmt.Errorf("open run stream: %w", err)
	}

	run.src = src
	run.setStatus(dto.StatusStreaming)

	timeout := c.idleTimeout
	if req.IdleTimeout > 0 {
		timeout = req.IdleTimeout
	}
	go c.fold(ctx, run, timeout)

	return run, nil
}

// persist saves or updates the graph's document when dirty.
func (c *Client) persist(ctx context.Context, g *graph.Graph) error {
	if !g.Dirty() {
		return nil
	}
	doc := serialization.Encode(g)
	if g.FlowID == "" {
		id, err := c.store.Save(ctx, doc)
		if err != nil {
			return err
		}
		g.MarkSaved(id)
		return nil
	}
	if err := c.store.Update(ctx, g.FlowID, doc); err != nil {
		return err
	}
	g.MarkSaved(g.FlowID)
	return nil
}

// fold is the run's event loop and the sole writer of its state.
func (c *Client) fold(ctx context.Context, run *Run, idleTimeout time.Duration) {
	defer close(run.done)
	defer run.src.Close()

	for {
		recvCtx := ctx
		var cancel context.CancelFunc
		if idleTimeout > 0 {
			recvCtx, cancel = context.WithTimeout(ctx, idleTimeout)
		}
		ev, err := run.src.Recv(recvCtx)
		if cancel != nil {
			cancel()
		}

		if err != nil {
			switch {
			case run.wasCancelled():
				// Cancel already moved the run back to Idle.
			case run.terminal():
			case errors.Is(err, context.DeadlineExceeded):
				run.fail(dto.FailureTimeout, "no event received within idle timeout")
			case errors.Is(err, stream.ErrStreamClosed):
				run.fail(dto.FailureConnection, "stream closed before a terminal event")
			default:
				run.fail(dto.FailureConnection, err.Error())
			}
			return
		}

		run.apply(ev)
		if run.terminal() {
			return
		}
	}
}
