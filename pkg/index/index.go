// Package index defines the similarity-index contract used by the
// plagiarism pipeline. The store is queried with a hybrid vector and
// fuses dense and sparse similarity internally; callers only see one
// scalar score per match.
package index

import (
	"context"

	"github.com/resumeguard/backend/pkg/ai"
)

// Match is one nearest neighbor returned by a query, ordered by
// descending score with deterministic tie-breaking by id.
type Match struct {
	Score      float64 `json:"score"`
	SourceFile string  `json:"source_file"`
	ID         string  `json:"id"`
}

// Metadata is the provenance stored alongside an indexed chunk.
type Metadata struct {
	SourceFile string
	ChunkIndex int
	Content    string
}

// Store is the narrow interface over the hybrid vector store. Query is
// the request-path read; Upsert belongs to the corpus ingestion flow.
type Store interface {
	Query(ctx context.Context, vec ai.HybridVector, topK int, namespace string) ([]Match, error)
	Upsert(ctx context.Context, id string, vec ai.HybridVector, meta Metadata, namespace string) error
}
