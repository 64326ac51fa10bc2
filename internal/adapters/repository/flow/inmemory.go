// Package flowrepo provides flow document persistence implementations.
package flowrepo

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/flowcanvas/flowcanvas/internal/infrastructure/metrics"
	"github.com/flowcanvas/flowcanvas/pkg/serialization"
	"github.com/flowcanvas/flowcanvas/pkg/validation"
)

// ErrFlowNotFound is returned when no document exists for an identifier.
var ErrFlowNotFound = errors.New("flow not found")

// InMemoryRepository is a thread-safe map-backed flow store, suitable for
// local usage and tests.
type InMemoryRepository struct {
	mu    sync.RWMutex
	flows map[string]*serialization.Document
}

// NewInMemoryRepository creates an empty in-memory flow store.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		flows: make(map[string]*serialization.Document),
	}
}

// Save validates the document, stores it under a fresh identifier, and
// returns the identifier.
func (r *InMemoryRepository) Save(ctx context.Context, doc *serialization.Document) (string, error) {
	if err := validation.ValidateDocument(doc); err != nil {
		return "", fmt.Errorf("invalid flow document: %w", err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	id := uuid.NewString()
	r.flows[id] = doc
	metrics.FlowSaved()
	return id, nil
}

// Update replaces the document stored under an existing identifier.
func (r *InMemoryRepository) Update(ctx context.Context, id string, doc *serialization.Document) error {
	if err := validation.ValidateDocument(doc); err != nil {
		return fmt.Errorf("invalid flow document: %w", err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.flows[id]; !ok {
		return fmt.Errorf("%w: %s", ErrFlowNotFound, id)
	}
	r.flows[id] = doc
	metrics.FlowSaved()
	return nil
}

// Load retrieves the document for an identifier.
func (r *InMemoryRepository) Load(ctx context.Context, id string) (*serialization.Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	doc, ok := r.flows[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrFlowNotFound, id)
	}
	metrics.FlowLoaded()
	return doc, nil
}
