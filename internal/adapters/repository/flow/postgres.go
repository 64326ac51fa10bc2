package flowrepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/flowcanvas/flowcanvas/internal/infrastructure/metrics"
	"github.com/flowcanvas/flowcanvas/pkg/serialization"
	"github.com/flowcanvas/flowcanvas/pkg/validation"
)

// PostgresRepository stores flow documents as JSONB rows.
type PostgresRepository struct {
	pool      *pgxpool.Pool
	tableName string
}

// NewPostgresRepository creates a flow store over an existing pool.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{
		pool:      pool,
		tableName: "flows",
	}
}

// Migrate creates the flows table if it does not exist.
func (r *PostgresRepository) Migrate(ctx context.Context) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id UUID PRIMARY KEY,
			name TEXT NOT NULL,
			document JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`, r.tableName)
	if _, err := r.pool.Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to migrate flows table: %w", err)
	}
	return nil
}

// Save validates and inserts a document, returning its fresh identifier.
func (r *PostgresRepository) Save(ctx context.Context, doc *serialization.Document) (string, error) {
	if err := validation.ValidateDocument(doc); err != nil {
		return "", fmt.Errorf("invalid flow document: %w", err)
	}
	payload, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("failed to serialize flow document: %w", err)
	}

	id := uuid.NewString()
	query := fmt.Sprintf(`
		INSERT INTO %s (id, name, document)
		VALUES ($1, $2, $3)
	`, r.tableName)
	if _, err := r.pool.Exec(ctx, query, id, doc.Name, payload); err != nil {
		return "", fmt.Errorf("failed to save flow: %w", err)
	}
	metrics.FlowSaved()
	return id, nil
}

// Update replaces the document for an existing identifier.
func (r *PostgresRepository) Update(ctx context.Context, id string, doc *serialization.Document) error {
	if err := validation.ValidateDocument(doc); err != nil {
		return fmt.Errorf("invalid flow document: %w", err)
	}
	payload, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to serialize flow document: %w", err)
	}

	query := fmt.Sprintf(`
		UPDATE %s SET name = $2, document = $3, updated_at = now()
		WHERE id = $1
	`, r.tableName)
	tag, err := r.pool.Exec(ctx, query, id, doc.Name, payload)
	if err != nil {
		return fmt.Errorf("failed to update flow: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", ErrFlowNotFound, id)
	}
	metrics.FlowSaved()
	return nil
}

// Load retrieves the document for an identifier.
func (r *PostgresRepository) Load(ctx context.Context, id string) (*serialization.Document, error) {
	query := fmt.Sprintf(`SELECT document FROM %s WHERE id = $1`, r.tableName)

	var payload []byte
	err := r.pool.QueryRow(ctx, query, id).Scan(&payload)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrFlowNotFound, id)
		}
		return nil, fmt.Errorf("failed to load flow: %w", err)
	}

	var doc serialization.Document
	if err := json.Unmarshal(payload, &doc); err != nil {
		return nil, fmt.Errorf("failed to deserialize flow document: %w", err)
	}
	metrics.FlowLoaded()
	return &doc, nil
}
