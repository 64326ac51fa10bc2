// Package graph provides node and port definitions
package graph

import "time"

// PortDirection distinguishes input ports from output ports.
type PortDirection string

const (
	// DirectionInput marks a port that receives data
	DirectionInput PortDirection = "input"
	// DirectionOutput marks a port that produces data
	DirectionOutput PortDirection = "output"
)

// Known reports whether d is a valid direction.
func (d PortDirection) Known() bool {
	return d == DirectionInput || d == DirectionOutput
}

// Port is a typed, named attachment point on a node.
// Required and Multiple only carry meaning for input ports.
type Port struct {
	Name        string   `json:"name" validate:"required"`
	DisplayName string   `json:"display_name,omitempty"`
	Type        DataType `json:"type" validate:"required,data_type"`
	Description string   `json:"description,omitempty"`
	Required    bool     `json:"required,omitempty"`
	Multiple    bool     `json:"multiple,omitempty"`
}

// Position is the node's canvas placement. The core carries it for
// persistence but attaches no meaning to it.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Node is an instance of a catalog component placed on the graph.
// Port slices and extensibility caps are copied from the catalog entry at
// creation time, so later catalog changes never affect placed nodes.
type Node struct {
	ID          string                 `json:"id" validate:"required"`
	ComponentID string                 `json:"component_id" validate:"required"`
	DisplayName string                 `json:"display_name,omitempty"`
	Position    Position               `json:"position"`
	Fields      map[string]interface{} `json:"fields,omitempty"`
	InputPorts  []Port                 `json:"inputs" validate:"dive"`
	OutputPorts []Port                 `json:"outputs" validate:"dive"`
	Extensible  bool                   `json:"extensible,omitempty"`
	MaxInputs   int                    `json:"max_inputs,omitempty"`
	MaxOutputs  int                    `json:"max_outputs,omitempty"`
	CreatedAt   time.Time              `json:"created_at,omitempty"`
	UpdatedAt   time.Time              `json:"updated_at,omitempty"`
}

// Validate ensures node integrity: identity fields are present, every port
// carries a known type, and port names are unique per direction.
func (n *Node) Validate() error {
	if n.ID == "" {
		return ErrInvalidNodeID
	}
	if n.ComponentID == "" {
		return ErrInvalidComponentID
	}
	if err := validatePorts(n.InputPorts); err != nil {
		return err
	}
	return validatePorts(n.OutputPorts)
}

func validatePorts(ports []Port) error {
	seen := make(map[string]struct{}, len(ports))
	for _, p := range ports {
		if p.Name == "" {
			return ErrInvalidPortName
		}
		if !p.Type.Known() {
			return ErrInvalidDataType
		}
		if _, dup := seen[p.Name]; dup {
			return ErrDuplicatePort
		}
		seen[p.Name] = struct{}{}
	}
	return nil
}

// InputPort returns the named input port, if present.
func (n *Node) InputPort(name string) (*Port, bool) {
	return findPort(n.InputPorts, name)
}

// OutputPort returns the named output port, if present.
func (n *Node) OutputPort(name string) (*Port, bool) {
	return findPort(n.OutputPorts, name)
}

func findPort(ports []Port, name string) (*Port, bool) {
	for i := range ports {
		if ports[i].Name == name {
			return &ports[i], true
		}
	}
	return nil, false
}

// ports returns the port slice for a direction.
func (n *Node) ports(dir PortDirection) []Port {
	if dir == DirectionInput {
		return n.InputPorts
	}
	return n.OutputPorts
}

// portLimit returns the declared maximum port count for a direction.
// Zero means no declared bound.
func (n *Node) portLimit(dir PortDirection) int {
	if dir == DirectionInput {
		return n.MaxInputs
	}
	return n.MaxOutputs
}
