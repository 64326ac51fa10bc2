// Package graph provides edge definitions
package graph

// Edge is a directed, type-checked connection from one node's output port
// to another node's input port. JSON field names follow the canvas wire
// format (sourceHandle/targetHandle carry the port names).
type Edge struct {
	ID         string `json:"id" validate:"required"`
	Source     string `json:"source" validate:"required"`
	Target     string `json:"target" validate:"required"`
	SourcePort string `json:"sourceHandle" validate:"required"`
	TargetPort string `json:"targetHandle" validate:"required"`
}

// Validate ensures edge integrity
func (e *Edge) Validate() error {
	if e.ID == "" {
		return ErrInvalidEdgeID
	}
	if e.Source == "" || e.Target == "" {
		return ErrInvalidEdgeEndpoint
	}
	if e.SourcePort == "" || e.TargetPort == "" {
		return ErrInvalidPortName
	}
	return nil
}

// Touches reports whether the edge references the given node on either end.
func (e *Edge) Touches(nodeID string) bool {
	return e.Source == nodeID || e.Target == nodeID
}

// bindsPort reports whether the edge terminates on the given node port for
// the given direction.
func (e *Edge) bindsPort(nodeID, port string, dir PortDirection) bool {
	if dir == DirectionInput {
		return e.Target == nodeID && e.TargetPort == port
	}
	return e.Source == nodeID && e.SourcePort == port
}
