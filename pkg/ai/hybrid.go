package ai

import (
	"context"
	"strings"

	"github.com/pkoukk/tiktoken-go"

	"github.com/resumeguard/backend/pkg/fault"
)

const (
	truncateEncoding = "o200k_base"
	defaultMaxTokens = 2048
)

// HybridEmbedder composes a dense embedding service and a sparse lexical
// encoder into one hybrid representation per text. Input is truncated
// query-style at a fixed token limit before either side runs, so oversized
// chunks degrade instead of failing.
type HybridEmbedder struct {
	dense     DenseEmbedder
	sparse    SparseEncoder
	maxTokens int
}

// NewHybridEmbedderParams configures a HybridEmbedder. MaxTokens falls back
// to a conservative default when unset.
type NewHybridEmbedderParams struct {
	Dense     DenseEmbedder
	Sparse    SparseEncoder
	MaxTokens int
}

// NewHybridEmbedder creates a hybrid embedder from a dense embedding client
// and a sparse encoder.
func NewHybridEmbedder(params NewHybridEmbedderParams) *HybridEmbedder {
	maxTokens := params.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}
	return &HybridEmbedder{
		dense:     params.Dense,
		sparse:    params.Sparse,
		maxTokens: maxTokens,
	}
}

// Embed produces the hybrid vector for the given text. A failure on either
// side aborts the call; a zero vector is never substituted because it would
// corrupt similarity comparisons downstream.
func (e *HybridEmbedder) Embed(ctx context.Context, text string) (HybridVector, error) {
	truncated, err := truncateTokens(text, e.maxTokens)
	if err != nil {
		return HybridVector{}, fault.New(fault.KindEmbeddingFailure, "failed to truncate input", err)
	}

	dense, err := e.dense.GenerateEmbedding(ctx, []byte(truncated))
	if err != nil {
		return HybridVector{}, fault.New(fault.KindEmbeddingFailure, "dense embedding failed", err)
	}

	sparse, err := e.sparse.Encode(truncated)
	if err != nil {
		return HybridVector{}, fault.New(fault.KindEmbeddingFailure, "sparse encoding failed", err)
	}

	return HybridVector{
		Dense:  dense,
		Sparse: sparse,
	}, nil
}

// truncateTokens cuts trailing content beyond maxTokens, keeping the head
// of the text.
func truncateTokens(text string, maxTokens int) (string, error) {
	if strings.TrimSpace(text) == "" {
		return text, nil
	}

	enc, err := tiktoken.GetEncoding(truncateEncoding)
	if err != nil {
		return "", err
	}

	tokens := enc.Encode(text, nil, nil)
	if len(tokens) <= maxTokens {
		return text, nil
	}
	return enc.Decode(tokens[:maxTokens]), nil
}
