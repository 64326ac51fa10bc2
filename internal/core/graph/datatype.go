// Package graph provides the core flow graph domain entities
// following Clean Architecture principles.
package graph

// DataType is the closed vocabulary of port types.
type DataType string

const (
	// TypeText represents plain text values
	TypeText DataType = "Text"
	// TypeNumber represents numeric values
	TypeNumber DataType = "Number"
	// TypeBoolean represents boolean values
	TypeBoolean DataType = "Boolean"
	// TypeData represents arbitrary structured data
	TypeData DataType = "Data"
	// TypeDataFrame represents tabular data
	TypeDataFrame DataType = "DataFrame"
	// TypeEmbeddings represents embedding vectors
	TypeEmbeddings DataType = "Embeddings"
	// TypeLanguageModel represents a language model handle
	TypeLanguageModel DataType = "LanguageModel"
	// TypeMemory represents conversation memory
	TypeMemory DataType = "Memory"
	// TypeMessage represents a chat message
	TypeMessage DataType = "Message"
	// TypeTool represents an agent tool
	TypeTool DataType = "Tool"
	// TypeVectorStore represents a vector store handle
	TypeVectorStore DataType = "VectorStore"
	// TypeAny is the wildcard, compatible with every other type
	TypeAny DataType = "Any"
)

var knownDataTypes = map[DataType]struct{}{
	TypeText: {}, TypeNumber: {}, TypeBoolean: {}, TypeData: {},
	TypeDataFrame: {}, TypeEmbeddings: {}, TypeLanguageModel: {},
	TypeMemory: {}, TypeMessage: {}, TypeTool: {}, TypeVectorStore: {},
	TypeAny: {},
}

// Known reports whether d is part of the closed type vocabulary.
func (d DataType) Known() bool {
	_, ok := knownDataTypes[d]
	return ok
}

// Compatible reports whether a connection between two port types is allowed.
// The relation is symmetric: types match when they are equal or when either
// side is the Any wildcard. There are no implicit coercions.
func Compatible(a, b DataType) bool {
	if a == TypeAny || b == TypeAny {
		return true
	}
	return a == b
}
