package qdrant

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"lifehub-assistant/internal/command/repository"
	"lifehub-assistant/internal/model"
	pkgLog "lifehub-assistant/pkg/log"
	pkgQdrant "lifehub-assistant/pkg/qdrant"
	"lifehub-assistant/pkg/voyage"
)

type implRepository struct {
	client         *pkgQdrant.Client
	embedder       *voyage.Client
	collectionName string
	l              pkgLog.Logger
}

// New creates a new Qdrant knowledge repository.
func New(client *pkgQdrant.Client, embedder *voyage.Client, collectionName string, l pkgLog.Logger) repository.KnowledgeRepository {
	return &implRepository{
		client:         client,
		embedder:       embedder,
		collectionName: collectionName,
		l:              l,
	}
}

// Register embeds an artifact's content and stores it in Qdrant for later
// semantic lookup.
func (r *implRepository) Register(ctx context.Context, artifact model.Artifact) error {
	vectors, err := r.embedder.Embed(ctx, []string{artifact.Content})
	if err != nil {
		r.l.Errorf(ctx, "knowledge repository: failed to generate embedding: %v", err)
		return fmt.Errorf("failed to generate embedding: %w", err)
	}
	if len(vectors) == 0 {
		r.l.Errorf(ctx, "knowledge repository: empty embedding response for artifact %s", artifact.RecordID)
		return fmt.Errorf("empty embedding response")
	}

	// Qdrant requires point IDs to be UUID or uint64. The store record ID
	// is an arbitrary string, so derive a deterministic UUID from it: the
	// same record always maps to the same point.
	point := pkgQdrant.Point{
		ID:     recordIDToUUID(artifact.RecordID),
		Vector: vectors[0],
		Payload: map[string]interface{}{
			"record_id":   artifact.RecordID,
			"user_id":     artifact.UserID,
			"entity_type": string(artifact.EntityType),
			"content":     artifact.Content,
			"url":         artifact.URL,
			"create_time": artifact.CreateTime,
		},
	}

	req := pkgQdrant.UpsertPointsRequest{Points: []pkgQdrant.Point{point}}
	if err := r.client.UpsertPoints(ctx, r.collectionName, req); err != nil {
		r.l.Errorf(ctx, "knowledge repository: failed to upsert point: %v", err)
		return fmt.Errorf("failed to upsert point: %w", err)
	}

	r.l.Infof(ctx, "knowledge repository: registered %s artifact %s", artifact.EntityType, artifact.RecordID)
	return nil
}

// Search performs semantic search over registered artifacts.
func (r *implRepository) Search(ctx context.Context, opt repository.SearchOptions) ([]repository.SearchResult, error) {
	vectors, err := r.embedder.Embed(ctx, []string{opt.Query})
	if err != nil {
		r.l.Errorf(ctx, "knowledge repository: failed to generate query embedding: %v", err)
		return nil, fmt.Errorf("failed to generate query embedding: %w", err)
	}
	if len(vectors) == 0 {
		r.l.Errorf(ctx, "knowledge repository: empty embedding response for query %q", opt.Query)
		return nil, fmt.Errorf("empty embedding response")
	}

	searchReq := pkgQdrant.SearchRequest{
		Vector:      vectors[0],
		Limit:       opt.Limit,
		WithPayload: true,
		Filter:      userFilter(opt.UserID),
	}

	resp, err := r.client.SearchPoints(ctx, r.collectionName, searchReq)
	if err != nil {
		r.l.Errorf(ctx, "knowledge repository: failed to search: %v", err)
		return nil, fmt.Errorf("failed to search: %w", err)
	}

	// The original record ID lives in the payload, not in the point ID.
	results := make([]repository.SearchResult, 0, len(resp.Result))
	for _, scored := range resp.Result {
		recordIDRaw, exists := scored.Payload["record_id"]
		if !exists {
			r.l.Errorf(ctx, "knowledge repository: record_id missing in payload for point %v", scored.ID)
			continue
		}
		recordID, ok := recordIDRaw.(string)
		if !ok {
			r.l.Errorf(ctx, "knowledge repository: record_id has type %T for point %v", recordIDRaw, scored.ID)
			continue
		}
		results = append(results, repository.SearchResult{
			RecordID: recordID,
			Score:    scored.Score,
			Payload:  scored.Payload,
		})
	}

	r.l.Infof(ctx, "knowledge repository: found %d results for query %q", len(results), opt.Query)
	return results, nil
}

// userFilter restricts search to points registered by one user. An empty
// user ID means no restriction.
func userFilter(userID string) map[string]interface{} {
	if userID == "" {
		return nil
	}
	return map[string]interface{}{
		"must": []map[string]interface{}{
			{
				"key": "user_id",
				"match": map[string]interface{}{
					"value": userID,
				},
			},
		},
	}
}

// recordIDToUUID derives a deterministic UUID v5 from a store record ID.
func recordIDToUUID(recordID string) string {
	namespace := uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")
	return uuid.NewSHA1(namespace, []byte(recordID)).String()
}
