// Package storysearch indexes the scenario catalog's story pool in
// Typesense, offering retrieval-by-keyword as an alternative to iterating
// the in-memory pool directly.
package storysearch

import (
	"context"
	"fmt"

	"github.com/typesense/typesense-go/v4/typesense"
	"github.com/typesense/typesense-go/v4/typesense/api"
	"github.com/typesense/typesense-go/v4/typesense/api/pointer"
	"sprintbench.app/core/internal/scenario"
)

const collectionName = "stories"

// Config configures the Typesense connection.
type Config struct {
	Nodes  []string
	APIKey string
}

// Index wraps a Typesense client scoped to the "stories" collection.
type Index struct {
	client *typesense.Client
}

// New constructs an Index against the first configured node.
func New(cfg Config) (*Index, error) {
	if len(cfg.Nodes) == 0 {
		return nil, fmt.Errorf("storysearch: at least one node is required")
	}
	client := typesense.NewClient(
		typesense.WithServer(cfg.Nodes[0]),
		typesense.WithAPIKey(cfg.APIKey),
	)
	return &Index{client: client}, nil
}

// EnsureCollection creates the stories collection schema if absent.
func (ix *Index) EnsureCollection(ctx context.Context) error {
	schema := &api.CollectionSchema{
		Name: collectionName,
		Fields: []api.Field{
			{Name: "id", Type: "string"},
			{Name: "title", Type: "string"},
			{Name: "description", Type: "string"},
			{Name: "points", Type: "int32"},
		},
	}
	if _, err := ix.client.Collections().Create(ctx, schema); err != nil {
		return fmt.Errorf("storysearch: create collection: %w", err)
	}
	return nil
}

// IndexStories upserts every story into the collection.
func (ix *Index) IndexStories(ctx context.Context, stories []scenario.Story) error {
	for _, s := range stories {
		doc := map[string]any{
			"id":          s.ID,
			"title":       s.Title,
			"description": s.Description,
			"points":      s.StoryPoints,
		}
		if _, err := ix.client.Collection(collectionName).Documents().Upsert(ctx, doc); err != nil {
			return fmt.Errorf("storysearch: upsert story %s: %w", s.ID, err)
		}
	}
	return nil
}

// Search runs a keyword search over story title/description.
func (ix *Index) Search(ctx context.Context, query string, limit int) ([]string, error) {
	params := &api.SearchCollectionParams{
		Q:       pointer.String(query),
		QueryBy: pointer.String("title,description"),
		PerPage: pointer.Int(limit),
	}
	result, err := ix.client.Collection(collectionName).Documents().Search(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("storysearch: search: %w", err)
	}

	var ids []string
	if result.Hits != nil {
		for _, hit := range *result.Hits {
			if hit.Document == nil {
				continue
			}
			if id, ok := (*hit.Document)["id"].(string); ok {
				ids = append(ids, id)
			}
		}
	}
	return ids, nil
}
