package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowcanvas/flowcanvas/internal/core/graph"
	"github.com/flowcanvas/flowcanvas/pkg/serialization"
)

func validDocument() *serialization.Document {
	return &serialization.Document{
		Name:    "valid-flow",
		Version: serialization.Version,
		Nodes: []*graph.Node{
			{
				ID:          "n1",
				ComponentID: "chat_input",
				OutputPorts: []graph.Port{{Name: "message", Type: graph.TypeText}},
			},
		},
	}
}

func TestValidateDocument_Valid(t *testing.T) {
	assert.NoError(t, ValidateDocument(validDocument()))
}

func TestValidateDocument_Rejections(t *testing.T) {
	t.Run("nil document", func(t *testing.T) {
		assert.ErrorIs(t, ValidateDocument(nil), serialization.ErrNilDocument)
	})

	t.Run("missing name", func(t *testing.T) {
		doc := validDocument()
		doc.Name = ""
		assert.Error(t, ValidateDocument(doc))
	})

	t.Run("node without component id", func(t *testing.T) {
		doc := validDocument()
		doc.Nodes[0].ComponentID = ""
		err := ValidateDocument(doc)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "n1")
	})

	t.Run("port with unknown data type", func(t *testing.T) {
		doc := validDocument()
		doc.Nodes[0].OutputPorts[0].Type = "Integer"
		assert.Error(t, ValidateDocument(doc))
	})

	t.Run("edge missing handles", func(t *testing.T) {
		doc := validDocument()
		doc.Edges = []*graph.Edge{{ID: "e1", Source: "n1", Target: "n1"}}
		assert.Error(t, ValidateDocument(doc))
	})
}

func TestValidateStruct_ReportsJSONFieldNames(t *testing.T) {
	err := ValidateStruct(&graph.Port{Name: "", Type: graph.TypeText})
	require.Error(t, err)

	verrs, ok := err.(ValidationErrors)
	require.True(t, ok)
	require.NotEmpty(t, verrs)
	assert.Equal(t, "name", verrs[0].Field)
	assert.Equal(t, "field is required", verrs[0].Message)
}
