package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowcanvas/flowcanvas/internal/core/graph"
)

func TestNewNode_CopiesDefinition(t *testing.T) {
	def := &ComponentDefinition{
		ID:          "openai_llm",
		DisplayName: "OpenAI LLM",
		Category:    "Language Models",
		Inputs: []graph.Port{
			{Name: "prompt", Type: graph.TypeText, Required: true},
		},
		Outputs: []graph.Port{
			{Name: "response", Type: graph.TypeText},
		},
		Fields: []FieldSpec{
			{Name: "model", Kind: FieldSelect, Default: "gpt-4"},
			{Name: "temperature", Kind: FieldNumber, Default: 0.7},
			{Name: "api_key", Kind: FieldSecret},
		},
	}

	node := NewNode(def)
	require.NotEmpty(t, node.ID)
	assert.Equal(t, "openai_llm", node.ComponentID)
	assert.Equal(t, def.Inputs, node.InputPorts)
	assert.Equal(t, def.Outputs, node.OutputPorts)
	assert.Equal(t, "gpt-4", node.Fields["model"])
	assert.Equal(t, 0.7, node.Fields["temperature"])
	assert.NotContains(t, node.Fields, "api_key", "fields without defaults stay unset")

	// Structural divergence of the node must not leak back to the catalog.
	node.InputPorts[0].Name = "mutated"
	assert.Equal(t, "prompt", def.Inputs[0].Name)

	other := NewNode(def)
	assert.NotEqual(t, node.ID, other.ID, "each placement gets a fresh ID")
}

func TestNewNode_ExtensibleCaps(t *testing.T) {
	def := &ComponentDefinition{
		ID:         "merge",
		Extensible: true,
		MaxInputs:  4,
		Inputs:     []graph.Port{{Name: "in_1", Type: graph.TypeAny}},
	}

	node := NewNode(def)
	assert.True(t, node.Extensible)
	assert.Equal(t, 4, node.MaxInputs)
	assert.Zero(t, node.MaxOutputs)
}
