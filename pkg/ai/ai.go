package ai

import (
	"context"
)

// HybridVector pairs a dense semantic embedding with a sparse lexical
// term-weight vector. Dense length is fixed by the embedding model;
// sparse keys are unique by construction.
type HybridVector struct {
	Dense  []float32          `json:"dense"`
	Sparse map[uint32]float32 `json:"sparse"`
}

// GenerateOptions holds configuration for completion requests.
type GenerateOptions struct {
	Model         string   // Model identifier to use for generation
	SystemPrompts []string // System prompts prepended to the request
	Temperature   float64  // Sampling temperature (0.0-2.0)
}

// GenerateOption is a functional option for configuring completion requests.
type GenerateOption func(*GenerateOptions)

// WithModel returns a GenerateOption that sets the model to use.
func WithModel(model string) GenerateOption {
	return func(o *GenerateOptions) {
		o.Model = model
	}
}

// WithSystemPrompts returns a GenerateOption that sets the system prompts
// to prepend to the request.
func WithSystemPrompts(prompts ...string) GenerateOption {
	return func(o *GenerateOptions) {
		o.SystemPrompts = prompts
	}
}

// WithTemperature returns a GenerateOption that sets the sampling temperature.
func WithTemperature(temp float64) GenerateOption {
	return func(o *GenerateOptions) {
		o.Temperature = temp
	}
}

// CompletionClient is the narrow interface over the structured-completion
// service. Implementations send a prompt and either return plain text or
// unmarshal a schema-constrained response into a typed value.
type CompletionClient interface {
	GenerateCompletion(
		ctx context.Context,
		prompt string,
		opts ...GenerateOption,
	) (string, error)
	GenerateCompletionWithFormat(
		ctx context.Context,
		name string,
		description string,
		prompt string,
		out any,
		opts ...GenerateOption,
	) error
}

// DenseEmbedder produces dense vector embeddings for text.
type DenseEmbedder interface {
	GenerateEmbedding(ctx context.Context, input []byte) ([]float32, error)
}

// SparseEncoder produces sparse lexical term-weight vectors for text.
type SparseEncoder interface {
	Encode(text string) (map[uint32]float32, error)
}

// Embedder produces hybrid vectors for text chunks.
type Embedder interface {
	Embed(ctx context.Context, text string) (HybridVector, error)
}
