// Package usecases contains the run orchestration logic: persisting a flow,
// opening a progress stream against the execution engine, and folding the
// event stream into observable run state.
package usecases

import (
	"context"

	"github.com/flowcanvas/flowcanvas/internal/app/dto"
	"github.com/flowcanvas/flowcanvas/internal/core/stream"
	"github.com/flowcanvas/flowcanvas/pkg/serialization"
)

// FlowStore is the persistence service, treated as a black box: save hands
// back a stable identifier, load is the inverse.
type FlowStore interface {
	Save(ctx context.Context, doc *serialization.Document) (string, error)
	Update(ctx context.Context, id string, doc *serialization.Document) error
	Load(ctx context.Context, id string) (*serialization.Document, error)
}

// Engine is the remote execution engine: given a persisted flow identifier
// and initial inputs it opens a live progress-event stream.
type Engine interface {
	OpenRun(ctx context.Context, flowID string, req *dto.RunRequest) (stream.Stream, error)
}
