package serialization

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowcanvas/flowcanvas/internal/core/graph"
)

func exportFixture() *Document {
	return &Document{
		Name:    "export-me",
		Version: Version,
		Nodes: []*graph.Node{
			{
				ID:          "n1",
				ComponentID: "chat_input",
				Fields:      map[string]interface{}{"placeholder": "hi"},
				OutputPorts: []graph.Port{{Name: "message", Type: graph.TypeText}},
			},
			{
				ID:          "n2",
				ComponentID: "text_output",
				InputPorts:  []graph.Port{{Name: "text", Type: graph.TypeAny}},
			},
		},
		Edges: []*graph.Edge{
			{ID: "e1", Source: "n1", SourcePort: "message", Target: "n2", TargetPort: "text"},
		},
	}
}

func TestSerializer_FileRoundTrip(t *testing.T) {
	configs := []struct {
		name   string
		config Config
	}{
		{"json plain", Config{Codec: NewJSONCodec(), Compression: CompressionNone}},
		{"json gzip", Config{Codec: NewJSONCodec(), Compression: CompressionGzip}},
		{"msgpack zstd", Config{Codec: NewMsgPackCodec(), Compression: CompressionZstd}},
	}

	for _, tc := range configs {
		t.Run(tc.name, func(t *testing.T) {
			s := NewSerializer(tc.config)
			doc := exportFixture()

			data, err := s.ExportDocument(doc)
			require.NoError(t, err)
			require.NotEmpty(t, data)

			imported, err := s.ImportDocument(data)
			require.NoError(t, err)
			assert.Equal(t, doc.Name, imported.Name)
			assert.Equal(t, doc.Version, imported.Version)
			assert.False(t, imported.ExportedAt.IsZero(), "export stamps a timestamp")

			// Imported documents go through the same trust boundary as decode.
			g, err := Decode(imported)
			require.NoError(t, err)
			assert.Len(t, g.Nodes, 2)
			require.Len(t, g.Edges, 1)
			assert.Equal(t, "e1", g.Edges[0].ID)
			assert.Equal(t, graph.TypeText, g.Nodes["n1"].OutputPorts[0].Type)
		})
	}
}

func TestSerializer_UnmarshalGarbage(t *testing.T) {
	s := DefaultSerializer()
	_, err := s.ImportDocument([]byte("not a flow document"))
	assert.Error(t, err)
}

func TestSerializer_ExportNil(t *testing.T) {
	s := DefaultSerializer()
	_, err := s.ExportDocument(nil)
	assert.ErrorIs(t, err, ErrNilDocument)
}

func TestCodecNames(t *testing.T) {
	assert.Equal(t, "json", NewJSONCodec().Name())
	assert.Equal(t, "msgpack", NewMsgPackCodec().Name())
}
