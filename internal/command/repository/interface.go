package repository

import (
	"context"

	"lifehub-assistant/internal/model"
)

// StoreRepository is the interface for record persistence in the hosted
// data store.
type StoreRepository interface {
	CreateRecord(ctx context.Context, opt CreateRecordOptions) (model.Record, error)
	GetRecord(ctx context.Context, id string) (model.Record, error)
}

// KnowledgeRepository handles the semantic index (Qdrant).
type KnowledgeRepository interface {
	Register(ctx context.Context, artifact model.Artifact) error
	Search(ctx context.Context, opt SearchOptions) ([]SearchResult, error)
}

// CreateRecordOptions defines a record to persist.
type CreateRecordOptions struct {
	Kind    model.RecordKind
	Title   string
	Content string   // Markdown body
	Tags    []string // appended to the body as #tags
}

// SearchOptions defines semantic search parameters. UserID restricts the
// search to artifacts registered by that user.
type SearchOptions struct {
	Query  string
	Limit  int
	UserID string
}

// SearchResult represents a semantic search result.
type SearchResult struct {
	RecordID string
	Score    float64
	Payload  map[string]interface{}
}
