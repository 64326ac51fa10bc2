// Package catalog defines the read-only component registry the core
// instantiates nodes from. The registry is an injected dependency so tests
// can supply a fixed catalog.
package catalog

import (
	"time"

	"github.com/google/uuid"

	"github.com/flowcanvas/flowcanvas/internal/core/graph"
)

// FieldKind enumerates the configuration field widget types.
type FieldKind string

const (
	FieldString  FieldKind = "string"
	FieldNumber  FieldKind = "number"
	FieldBoolean FieldKind = "boolean"
	FieldSelect  FieldKind = "select"
	FieldSecret  FieldKind = "secret"
)

// FieldSpec describes one configurable field of a component.
type FieldSpec struct {
	Name        string        `json:"name" validate:"required"`
	DisplayName string        `json:"display_name,omitempty"`
	Kind        FieldKind     `json:"kind"`
	Description string        `json:"description,omitempty"`
	Default     interface{}   `json:"default,omitempty"`
	Options     []interface{} `json:"options,omitempty"`
	Required    bool          `json:"required,omitempty"`
	Advanced    bool          `json:"advanced,omitempty"`
}

// ComponentDefinition is the static catalog entry a node is created from.
type ComponentDefinition struct {
	ID          string       `json:"id" validate:"required"`
	DisplayName string       `json:"display_name"`
	Description string       `json:"description,omitempty"`
	Category    string       `json:"category,omitempty"`
	Icon        string       `json:"icon,omitempty"`
	Version     string       `json:"version,omitempty"`
	Inputs      []graph.Port `json:"inputs"`
	Outputs     []graph.Port `json:"outputs"`
	Fields      []FieldSpec  `json:"fields,omitempty"`
	Extensible  bool         `json:"extensible,omitempty"`
	MaxInputs   int          `json:"max_inputs,omitempty"`
	MaxOutputs  int          `json:"max_outputs,omitempty"`
}

// Registry is the external catalog lookup, treated as a black box.
type Registry interface {
	// GetComponent returns the definition for id, or ErrComponentNotFound.
	GetComponent(id string) (*ComponentDefinition, error)
}

// NewNode instantiates a node from a component definition. Port specs,
// extensibility caps, and field defaults are copied so the node may diverge
// from the catalog entry afterwards.
func NewNode(def *ComponentDefinition) *graph.Node {
	now := time.Now()
	node := &graph.Node{
		ID:          uuid.NewString(),
		ComponentID: def.ID,
		DisplayName: def.DisplayName,
		InputPorts:  append([]graph.Port(nil), def.Inputs...),
		OutputPorts: append([]graph.Port(nil), def.Outputs...),
		Extensible:  def.Extensible,
		MaxInputs:   def.MaxInputs,
		MaxOutputs:  def.MaxOutputs,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for _, f := range def.Fields {
		if f.Default == nil {
			continue
		}
		if node.Fields == nil {
			node.Fields = make(map[string]interface{}, len(def.Fields))
		}
		node.Fields[f.Name] = f.Default
	}
	return node
}
