package flowcanvas

import (
	"context"
	"fmt"

	catalogrepo "github.com/flowcanvas/flowcanvas/internal/adapters/catalog"
	"github.com/flowcanvas/flowcanvas/internal/adapters/engine/ws"
	flowrepo "github.com/flowcanvas/flowcanvas/internal/adapters/repository/flow"
	"github.com/flowcanvas/flowcanvas/internal/app/dto"
	"github.com/flowcanvas/flowcanvas/internal/app/usecases"
	"github.com/flowcanvas/flowcanvas/internal/core/catalog"
	coregraph "github.com/flowcanvas/flowcanvas/internal/core/graph"
	"github.com/flowcanvas/flowcanvas/pkg/serialization"
)

// Re-export core graph types for convenience
type (
	Graph      = coregraph.Graph
	Node       = coregraph.Node
	Edge       = coregraph.Edge
	Port       = coregraph.Port
	DataType   = coregraph.DataType
	Proposal   = coregraph.Proposal
	RunRequest = dto.RunRequest
	Run        = usecases.Run
)

// DefaultEngineURL is where a locally running execution engine listens.
const DefaultEngineURL = "ws://localhost:8002"

// NewGraph creates an empty flow graph.
func NewGraph(name string) *Graph { return coregraph.New(name) }

// Runtime bundles the component catalog, flow persistence, the export
// pipeline, and the run client behind one entry point. The default runtime
// keeps flows in memory and talks to an engine at DefaultEngineURL.
type Runtime struct {
	registry   catalog.Registry
	store      usecases.FlowStore
	client     *usecases.Client
	serializer *serialization.Serializer
}

// RuntimeOption configures a Runtime.
type RuntimeOption func(*runtimeConfig)

type runtimeConfig struct {
	registry   catalog.Registry
	store      usecases.FlowStore
	engine     usecases.Engine
	serializer *serialization.Serializer
}

// WithRegistry replaces the builtin component catalog.
func WithRegistry(r catalog.Registry) RuntimeOption {
	return func(c *runtimeConfig) { c.registry = r }
}

// WithStore replaces the in-memory flow store, e.g. with the Postgres one.
func WithStore(s usecases.FlowStore) RuntimeOption {
	return func(c *runtimeConfig) { c.store = s }
}

// WithEngine replaces the default execution engine client.
func WithEngine(e usecases.Engine) RuntimeOption {
	return func(c *runtimeConfig) { c.engine = e }
}

// WithSerializer replaces the export serializer, e.g. with a JSON one for
// human-readable files.
func WithSerializer(s *serialization.Serializer) RuntimeOption {
	return func(c *runtimeConfig) { c.serializer = s }
}

// NewRuntime constructs a runtime. Without options it is self-contained
// apart from the engine connection: builtin catalog, in-memory store,
// MessagePack+zstd exports.
func NewRuntime(opts ...RuntimeOption) *Runtime {
	cfg := runtimeConfig{
		registry:   catalogrepo.NewBuiltinRegistry(),
		store:      flowrepo.NewInMemoryRepository(),
		serializer: serialization.DefaultSerializer(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.engine == nil {
		cfg.engine = ws.NewClient(DefaultEngineURL)
	}
	return &Runtime{
		registry:   cfg.registry,
		store:      cfg.store,
		client:     usecases.NewClient(cfg.store, cfg.engine),
		serializer: cfg.serializer,
	}
}

// PlaceComponent instantiates a catalog component and adds the fresh node to
// the graph, returning it for further wiring.
func (rt *Runtime) PlaceComponent(g *Graph, componentID string) (*Node, error) {
	def, err := rt.registry.GetComponent(componentID)
	if err != nil {
		return nil, err
	}
	node := catalog.NewNode(def)
	if err := g.AddNode(node); err != nil {
		return nil, err
	}
	return node, nil
}

// SaveFlow persists the graph, assigning a flow identifier on first save.
func (rt *Runtime) SaveFlow(ctx context.Context, g *Graph) (string, error) {
	if g == nil {
		return "", dto.ErrNilGraph
	}
	doc := serialization.Encode(g)
	if g.FlowID == "" {
		id, err := rt.store.Save(ctx, doc)
		if err != nil {
			return "", err
		}
		g.MarkSaved(id)
		return id, nil
	}
	if err := rt.store.Update(ctx, g.FlowID, doc); err != nil {
		return "", err
	}
	g.MarkSaved(g.FlowID)
	return g.FlowID, nil
}

// LoadFlow retrieves a persisted flow and reconstructs its graph.
func (rt *Runtime) LoadFlow(ctx context.Context, id string) (*Graph, error) {
	doc, err := rt.store.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	g, err := serialization.Decode(doc)
	if err != nil {
		return nil, fmt.Errorf("stored flow %s is not decodable: %w", id, err)
	}
	g.MarkSaved(id)
	return g, nil
}

// Export serializes the graph to offline file bytes.
func (rt *Runtime) Export(g *Graph) ([]byte, error) {
	if g == nil {
		return nil, dto.ErrNilGraph
	}
	return rt.serializer.ExportDocument(serialization.Encode(g))
}

// Import reads exported file bytes back into a graph, applying the same
// structural checks as live mutation.
func (rt *Runtime) Import(data []byte) (*Graph, error) {
	doc, err := rt.serializer.ImportDocument(data)
	if err != nil {
		return nil, err
	}
	return serialization.Decode(doc)
}

// Start submits the graph for execution, persisting it first when needed,
// and returns the live run.
func (rt *Runtime) Start(ctx context.Context, g *Graph, req *RunRequest) (*Run, error) {
	return rt.client.Start(ctx, g, req)
}
