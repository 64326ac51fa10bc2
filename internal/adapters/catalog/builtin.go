package catalogrepo

import (
	"github.com/flowcanvas/flowcanvas/internal/core/catalog"
	"github.com/flowcanvas/flowcanvas/internal/core/graph"
)

// NewBuiltinRegistry creates a registry seeded with the builtin pipeline
// components.
func NewBuiltinRegistry() *InMemoryRegistry {
	r := NewInMemoryRegistry()
	for _, def := range builtinComponents() {
		// Definitions are static; a duplicate here is a programming error.
		if err := r.Register(def); err != nil {
			panic(err)
		}
	}
	return r
}

func builtinComponents() []*catalog.ComponentDefinition {
	return []*catalog.ComponentDefinition{
		{
			ID:          "chat_input",
			DisplayName: "Chat Input",
			Description: "Entry point that receives the user's chat message",
			Category:    "inputs",
			Icon:        "message-circle",
			Outputs: []graph.Port{
				{Name: "message", DisplayName: "Message", Type: graph.TypeMessage},
			},
		},
		{
			ID:          "text_input",
			DisplayName: "Text Input",
			Description: "Provides a fixed text value to downstream nodes",
			Category:    "inputs",
			Icon:        "type",
			Outputs: []graph.Port{
				{Name: "text", DisplayName: "Text", Type: graph.TypeText},
			},
			Fields: []catalog.FieldSpec{
				{Name: "value", DisplayName: "Value", Kind: catalog.FieldString},
			},
		},
		{
			ID:          "prompt_template",
			DisplayName: "Prompt Template",
			Description: "Renders a template with named variable inputs",
			Category:    "prompts",
			Icon:        "file-text",
			Inputs: []graph.Port{
				{Name: "variables", DisplayName: "Variables", Type: graph.TypeAny, Multiple: true},
			},
			Outputs: []graph.Port{
				{Name: "prompt", DisplayName: "Prompt", Type: graph.TypeText},
			},
			Fields: []catalog.FieldSpec{
				{Name: "template", DisplayName: "Template", Kind: catalog.FieldString, Required: true},
			},
			Extensible: true,
			MaxInputs:  16,
		},
		{
			ID:          "openai_llm",
			DisplayName: "OpenAI Model",
			Description: "Calls an OpenAI chat model with the incoming prompt",
			Category:    "models",
			Icon:        "sparkles",
			Inputs: []graph.Port{
				{Name: "prompt", DisplayName: "Prompt", Type: graph.TypeText, Required: true},
				{Name: "system_message", DisplayName: "System Message", Type: graph.TypeText},
			},
			Outputs: []graph.Port{
				{Name: "response", DisplayName: "Response", Type: graph.TypeText},
			},
			Fields: []catalog.FieldSpec{
				{Name: "model", DisplayName: "Model", Kind: catalog.FieldSelect, Default: "gpt-4o",
					Options: []interface{}{"gpt-4o", "gpt-4o-mini", "gpt-4-turbo"}},
				{Name: "temperature", DisplayName: "Temperature", Kind: catalog.FieldNumber, Default: 0.7},
				{Name: "api_key", DisplayName: "API Key", Kind: catalog.FieldSecret, Required: true},
			},
		},
		{
			ID:          "anthropic_llm",
			DisplayName: "Anthropic Model",
			Description: "Calls an Anthropic chat model with the incoming prompt",
			Category:    "models",
			Icon:        "sparkles",
			Inputs: []graph.Port{
				{Name: "prompt", DisplayName: "Prompt", Type: graph.TypeText, Required: true},
				{Name: "system_message", DisplayName: "System Message", Type: graph.TypeText},
			},
			Outputs: []graph.Port{
				{Name: "response", DisplayName: "Response", Type: graph.TypeText},
			},
			Fields: []catalog.FieldSpec{
				{Name: "model", DisplayName: "Model", Kind: catalog.FieldSelect, Default: "claude-sonnet-4-0",
					Options: []interface{}{"claude-sonnet-4-0", "claude-opus-4-0", "claude-3-5-haiku-latest"}},
				{Name: "temperature", DisplayName: "Temperature", Kind: catalog.FieldNumber, Default: 0.7},
				{Name: "api_key", DisplayName: "API Key", Kind: catalog.FieldSecret, Required: true},
			},
		},
		{
			ID:          "conditional",
			DisplayName: "Conditional",
			Description: "Routes one of two values based on a boolean condition",
			Category:    "logic",
			Icon:        "git-branch",
			Inputs: []graph.Port{
				{Name: "condition", DisplayName: "Condition", Type: graph.TypeBoolean, Required: true},
				{Name: "if_true", DisplayName: "If True", Type: graph.TypeAny},
				{Name: "if_false", DisplayName: "If False", Type: graph.TypeAny},
			},
			Outputs: []graph.Port{
				{Name: "result", DisplayName: "Result", Type: graph.TypeAny},
				{Name: "branch_taken", DisplayName: "Branch Taken", Type: graph.TypeText},
			},
		},
		{
			ID:          "text_splitter",
			DisplayName: "Text Splitter",
			Description: "Splits text into overlapping chunks for embedding",
			Category:    "processing",
			Icon:        "scissors",
			Inputs: []graph.Port{
				{Name: "text", DisplayName: "Text", Type: graph.TypeText, Required: true},
			},
			Outputs: []graph.Port{
				{Name: "chunks", DisplayName: "Chunks", Type: graph.TypeData},
			},
			Fields: []catalog.FieldSpec{
				{Name: "chunk_size", DisplayName: "Chunk Size", Kind: catalog.FieldNumber, Default: 1000},
				{Name: "chunk_overlap", DisplayName: "Chunk Overlap", Kind: catalog.FieldNumber, Default: 200, Advanced: true},
			},
		},
		{
			ID:          "vector_store",
			DisplayName: "Vector Store",
			Description: "Stores document chunks and retrieves similar ones for a query",
			Category:    "retrieval",
			Icon:        "database",
			Inputs: []graph.Port{
				{Name: "documents", DisplayName: "Documents", Type: graph.TypeData, Multiple: true},
				{Name: "query", DisplayName: "Query", Type: graph.TypeText},
			},
			Outputs: []graph.Port{
				{Name: "results", DisplayName: "Results", Type: graph.TypeData},
			},
			Fields: []catalog.FieldSpec{
				{Name: "collection", DisplayName: "Collection", Kind: catalog.FieldString, Required: true},
				{Name: "top_k", DisplayName: "Top K", Kind: catalog.FieldNumber, Default: 4, Advanced: true},
			},
		},
		{
			ID:          "web_search",
			DisplayName: "Web Search",
			Description: "Searches the web and returns result snippets",
			Category:    "tools",
			Icon:        "globe",
			Inputs: []graph.Port{
				{Name: "query", DisplayName: "Query", Type: graph.TypeText, Required: true},
			},
			Outputs: []graph.Port{
				{Name: "results", DisplayName: "Results", Type: graph.TypeData},
			},
			Fields: []catalog.FieldSpec{
				{Name: "max_results", DisplayName: "Max Results", Kind: catalog.FieldNumber, Default: 5},
			},
		},
		{
			ID:          "dataframe_filter",
			DisplayName: "DataFrame Filter",
			Description: "Filters tabular data rows by a column expression",
			Category:    "processing",
			Icon:        "table",
			Inputs: []graph.Port{
				{Name: "data", DisplayName: "Data", Type: graph.TypeDataFrame, Required: true},
			},
			Outputs: []graph.Port{
				{Name: "filtered", DisplayName: "Filtered", Type: graph.TypeDataFrame},
			},
			Fields: []catalog.FieldSpec{
				{Name: "expression", DisplayName: "Expression", Kind: catalog.FieldString, Required: true},
			},
		},
		{
			ID:          "text_output",
			DisplayName: "Text Output",
			Description: "Terminal node that surfaces its input as the flow result",
			Category:    "outputs",
			Icon:        "monitor",
			Inputs: []graph.Port{
				{Name: "value", DisplayName: "Value", Type: graph.TypeAny, Required: true},
			},
		},
	}
}
