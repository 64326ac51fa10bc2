// Package graph provides the core flow graph entity and its mutation
// operations. All mutations are synchronous and side-effect-free beyond the
// graph's own state; the single-writer discipline is the caller's
// responsibility.
package graph

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Graph is the aggregate of nodes and edges composing one flow.
// Edges keep insertion order; nodes are keyed by ID.
type Graph struct {
	// FlowID is the persistence-service identifier, empty until first save.
	FlowID    string           `json:"flow_id,omitempty"`
	Name      string           `json:"name"`
	Nodes     map[string]*Node `json:"nodes"`
	Edges     []*Edge          `json:"edges"`
	CreatedAt time.Time        `json:"created_at,omitempty"`
	UpdatedAt time.Time        `json:"updated_at,omitempty"`

	dirty bool
}

// New creates an empty graph with the given display name.
func New(name string) *Graph {
	now := time.Now()
	return &Graph{
		Name:      name,
		Nodes:     make(map[string]*Node),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (g *Graph) touch() {
	g.UpdatedAt = time.Now()
	g.dirty = true
}

// MarkSaved records that the current structure has been persisted under id.
func (g *Graph) MarkSaved(id string) {
	g.FlowID = id
	g.dirty = false
}

// Dirty reports whether the graph needs persisting before a run: it has
// never been saved, or has been mutated since the last save.
func (g *Graph) Dirty() bool {
	return g.FlowID == "" || g.dirty
}

// AddNode adds a node to the graph.
func (g *Graph) AddNode(node *Node) error {
	if node == nil {
		return ErrNilNode
	}
	if err := node.Validate(); err != nil {
		return err
	}
	if g.Nodes == nil {
		g.Nodes = make(map[string]*Node)
	}
	if _, exists := g.Nodes[node.ID]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateNodeID, node.ID)
	}
	g.Nodes[node.ID] = node
	g.touch()
	return nil
}

// RemoveNode removes a node and, atomically, every edge touching it.
// Dangling edges must never be observable, so the cascade happens in the
// same mutation.
func (g *Graph) RemoveNode(nodeID string) error {
	if _, exists := g.Nodes[nodeID]; !exists {
		return fmt.Errorf("%w: %s", ErrUnknownNode, nodeID)
	}
	delete(g.Nodes, nodeID)
	g.Edges = filterEdges(g.Edges, func(e *Edge) bool { return !e.Touches(nodeID) })
	g.touch()
	return nil
}

// AddEdge validates the proposal and, on acceptance, commits a new edge
// with a fresh ID. On rejection the graph is unchanged and the rejection
// reason is returned.
func (g *Graph) AddEdge(p Proposal) (*Edge, error) {
	if err := g.ValidateConnection(p); err != nil {
		return nil, err
	}
	e := &Edge{
		ID:         uuid.NewString(),
		Source:     p.Source,
		Target:     p.Target,
		SourcePort: p.SourcePort,
		TargetPort: p.TargetPort,
	}
	g.Edges = append(g.Edges, e)
	g.touch()
	return e, nil
}

// AttachEdge commits an edge that already carries an ID, applying the same
// connection checks as AddEdge. Used when reconstructing a graph from a
// persisted document, where edge identity must survive the round trip.
func (g *Graph) AttachEdge(e *Edge) error {
	if e == nil {
		return ErrNilEdge
	}
	if err := e.Validate(); err != nil {
		return err
	}
	for _, existing := range g.Edges {
		if existing.ID == e.ID {
			return fmt.Errorf("%w: %s", ErrDuplicateEdgeID, e.ID)
		}
	}
	if err := g.ValidateConnection(Proposal{
		Source:     e.Source,
		SourcePort: e.SourcePort,
		Target:     e.Target,
		TargetPort: e.TargetPort,
	}); err != nil {
		return err
	}
	g.Edges = append(g.Edges, e)
	g.touch()
	return nil
}

// RemoveEdge removes a single edge. No cascade.
func (g *Graph) RemoveEdge(edgeID string) error {
	for i, e := range g.Edges {
		if e.ID == edgeID {
			g.Edges = append(g.Edges[:i], g.Edges[i+1:]...)
			g.touch()
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrUnknownEdge, edgeID)
}

// SetNodeField replaces a single configuration field value on a node.
// Ports are never altered by field mutation.
func (g *Graph) SetNodeField(nodeID, field string, value interface{}) error {
	node, exists := g.Nodes[nodeID]
	if !exists {
		return fmt.Errorf("%w: %s", ErrUnknownNode, nodeID)
	}
	if node.Fields == nil {
		node.Fields = make(map[string]interface{})
	}
	node.Fields[field] = value
	node.UpdatedAt = time.Now()
	g.touch()
	return nil
}

// AddPort appends a port to an extensible node, subject to the declared
// maximum for the direction.
func (g *Graph) AddPort(nodeID string, dir PortDirection, port Port) error {
	node, exists := g.Nodes[nodeID]
	if !exists {
		return fmt.Errorf("%w: %s", ErrUnknownNode, nodeID)
	}
	if !dir.Known() {
		return ErrInvalidDirection
	}
	if port.Name == "" {
		return ErrInvalidPortName
	}
	if !port.Type.Known() {
		return ErrInvalidDataType
	}
	ports := node.ports(dir)
	if !node.Extensible {
		return fmt.Errorf("%w: component %s is not extensible", ErrPortLimitReached, node.ComponentID)
	}
	if limit := node.portLimit(dir); limit > 0 && len(ports) >= limit {
		return fmt.Errorf("%w: %s ports capped at %d", ErrPortLimitReached, dir, limit)
	}
	if _, dup := findPort(ports, port.Name); dup {
		return fmt.Errorf("%w: %s", ErrDuplicatePort, port.Name)
	}
	if dir == DirectionInput {
		node.InputPorts = append(node.InputPorts, port)
	} else {
		node.OutputPorts = append(node.OutputPorts, port)
	}
	node.UpdatedAt = time.Now()
	g.touch()
	return nil
}

// RemovePort removes the port at index for the direction, cascading removal
// of every edge bound to it (same discipline as node removal).
func (g *Graph) RemovePort(nodeID string, dir PortDirection, index int) error {
	node, exists := g.Nodes[nodeID]
	if !exists {
		return fmt.Errorf("%w: %s", ErrUnknownNode, nodeID)
	}
	if !dir.Known() {
		return ErrInvalidDirection
	}
	if !node.Extensible {
		return fmt.Errorf("%w: component %s is not extensible", ErrPortLimitUnderflow, node.ComponentID)
	}
	ports := node.ports(dir)
	if len(ports) == 0 {
		return fmt.Errorf("%w: no %s ports left", ErrPortLimitUnderflow, dir)
	}
	if index < 0 || index >= len(ports) {
		return fmt.Errorf("%w: %s index %d", ErrUnknownPort, dir, index)
	}
	name := ports[index].Name
	g.Edges = filterEdges(g.Edges, func(e *Edge) bool { return !e.bindsPort(nodeID, name, dir) })
	if dir == DirectionInput {
		node.InputPorts = append(node.InputPorts[:index], node.InputPorts[index+1:]...)
	} else {
		node.OutputPorts = append(node.OutputPorts[:index], node.OutputPorts[index+1:]...)
	}
	node.UpdatedAt = time.Now()
	g.touch()
	return nil
}

// incomingEdges counts edges already terminating on the given input port.
func (g *Graph) incomingEdges(nodeID, port string) int {
	n := 0
	for _, e := range g.Edges {
		if e.Target == nodeID && e.TargetPort == port {
			n++
		}
	}
	return n
}

func filterEdges(edges []*Edge, keep func(*Edge) bool) []*Edge {
	out := edges[:0]
	for _, e := range edges {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}
