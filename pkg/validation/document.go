package validation

import (
	"fmt"

	"github.com/flowcanvas/flowcanvas/pkg/serialization"
)

// ValidateDocument checks a flow document's field-level rules before it
// crosses a persistence boundary. Structural edge checks (port existence,
// type compatibility, multiplicity) belong to serialization.Decode; this
// layer only guards the shape.
func ValidateDocument(doc *serialization.Document) error {
	if doc == nil {
		return serialization.ErrNilDocument
	}
	if err := ValidateStruct(doc); err != nil {
		return err
	}
	for _, n := range doc.Nodes {
		if n == nil {
			return fmt.Errorf("document contains a nil node")
		}
		if err := ValidateStruct(n); err != nil {
			return fmt.Errorf("node %q: %w", n.ID, err)
		}
	}
	for _, e := range doc.Edges {
		if e == nil {
			return fmt.Errorf("document contains a nil edge")
		}
		if err := ValidateStruct(e); err != nil {
			return fmt.Errorf("edge %q: %w", e.ID, err)
		}
	}
	return nil
}
