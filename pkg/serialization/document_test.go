package serialization

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowcanvas/flowcanvas/internal/core/graph"
)

// buildFlow assembles a small valid flow through the mutation operations.
func buildFlow(t *testing.T) *graph.Graph {
	t.Helper()
	g := graph.New("support-bot")

	require.NoError(t, g.AddNode(&graph.Node{
		ID:          "input",
		ComponentID: "chat_input",
		Fields:      map[string]interface{}{"placeholder": "Ask me anything"},
		OutputPorts: []graph.Port{{Name: "message", Type: graph.TypeText}},
	}))
	require.NoError(t, g.AddNode(&graph.Node{
		ID:          "llm",
		ComponentID: "openai_llm",
		Fields:      map[string]interface{}{"model": "gpt-4"},
		InputPorts:  []graph.Port{{Name: "prompt", Type: graph.TypeText, Required: true}},
		OutputPorts: []graph.Port{{Name: "response", Type: graph.TypeText}},
	}))
	require.NoError(t, g.AddNode(&graph.Node{
		ID:          "output",
		ComponentID: "text_output",
		InputPorts:  []graph.Port{{Name: "text", Type: graph.TypeAny}},
	}))

	_, err := g.AddEdge(graph.Proposal{Source: "input", SourcePort: "message", Target: "llm", TargetPort: "prompt"})
	require.NoError(t, err)
	_, err = g.AddEdge(graph.Proposal{Source: "llm", SourcePort: "response", Target: "output", TargetPort: "text"})
	require.NoError(t, err)

	return g
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	g := buildFlow(t)

	doc := Encode(g)
	assert.Equal(t, Version, doc.Version)
	assert.Len(t, doc.Nodes, 3)
	assert.Len(t, doc.Edges, 2)

	decoded, err := Decode(doc)
	require.NoError(t, err)

	assert.Equal(t, g.Name, decoded.Name)
	assert.Equal(t, g.Nodes, decoded.Nodes)
	assert.Equal(t, g.Edges, decoded.Edges)
}

func TestEncode_NodesSortedDeterministically(t *testing.T) {
	g := buildFlow(t)
	doc := Encode(g)

	assert.Equal(t, "input", doc.Nodes[0].ID)
	assert.Equal(t, "llm", doc.Nodes[1].ID)
	assert.Equal(t, "output", doc.Nodes[2].ID)
}

func TestEncode_DocumentOwnsCopies(t *testing.T) {
	g := buildFlow(t)
	doc := Encode(g)

	require.NoError(t, g.SetNodeField("llm", "model", "gpt-3.5-turbo"))
	assert.Equal(t, "gpt-4", doc.Nodes[1].Fields["model"], "graph mutation must not reach the document")
}

func TestDecode_Rejections(t *testing.T) {
	base := Encode(buildFlow(t))

	withEdges := func(edges ...*graph.Edge) *Document {
		doc := *base
		doc.Edges = edges
		return &doc
	}

	tests := []struct {
		name    string
		doc     *Document
		wantErr error
	}{
		{
			name:    "nil document",
			doc:     nil,
			wantErr: ErrNilDocument,
		},
		{
			name:    "unknown version fails closed",
			doc:     &Document{Name: "x", Version: "2.0.0"},
			wantErr: ErrUnsupportedVersion,
		},
		{
			name:    "missing version fails closed",
			doc:     &Document{Name: "x"},
			wantErr: ErrUnsupportedVersion,
		},
		{
			name: "edge referencing unknown node",
			doc: withEdges(&graph.Edge{
				ID: "e1", Source: "ghost", SourcePort: "message",
				Target: "llm", TargetPort: "prompt",
			}),
			wantErr: graph.ErrUnknownNode,
		},
		{
			name: "edge referencing unknown port",
			doc: withEdges(&graph.Edge{
				ID: "e1", Source: "input", SourcePort: "ghost",
				Target: "llm", TargetPort: "prompt",
			}),
			wantErr: graph.ErrUnknownPort,
		},
		{
			name: "edge with reversed direction",
			doc: withEdges(&graph.Edge{
				ID: "e1", Source: "llm", SourcePort: "prompt",
				Target: "input", TargetPort: "message",
			}),
			wantErr: graph.ErrUnknownPort,
		},
		{
			name: "overbound single-edge input",
			doc: withEdges(
				&graph.Edge{ID: "e1", Source: "input", SourcePort: "message", Target: "llm", TargetPort: "prompt"},
				&graph.Edge{ID: "e2", Source: "input", SourcePort: "message", Target: "llm", TargetPort: "prompt"},
			),
			wantErr: graph.ErrInputAlreadyBound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := Decode(tt.doc)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, g, "no partial graph on rejection")
		})
	}
}
