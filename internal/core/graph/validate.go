package graph

import "fmt"

// Proposal describes a candidate connection between two node ports.
type Proposal struct {
	Source     string `json:"source"`
	SourcePort string `json:"sourceHandle"`
	Target     string `json:"target"`
	TargetPort string `json:"targetHandle"`
}

// ValidateConnection decides whether a proposed edge is acceptable.
// It is a pure decision function with no side effects, safe to call
// speculatively (e.g. for live drag feedback).
//
// Checks run in a fixed order so rejection reasons are deterministic:
//  1. both nodes exist
//  2. the named ports exist with the expected direction
//  3. the port types are compatible
//  4. single-edge inputs are not already bound
func (g *Graph) ValidateConnection(p Proposal) error {
	source, ok := g.Nodes[p.Source]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownNode, p.Source)
	}
	target, ok := g.Nodes[p.Target]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownNode, p.Target)
	}
	out, ok := source.OutputPort(p.SourcePort)
	if !ok {
		return fmt.Errorf("%w: %s has no output %q", ErrUnknownPort, p.Source, p.SourcePort)
	}
	in, ok := target.InputPort(p.TargetPort)
	if !ok {
		return fmt.Errorf("%w: %s has no input %q", ErrUnknownPort, p.Target, p.TargetPort)
	}
	if !Compatible(out.Type, in.Type) {
		return fmt.Errorf("%w: %s -> %s", ErrTypeMismatch, out.Type, in.Type)
	}
	if !in.Multiple && g.incomingEdges(p.Target, p.TargetPort) > 0 {
		return fmt.Errorf("%w: %s.%s", ErrInputAlreadyBound, p.Target, p.TargetPort)
	}
	return nil
}
