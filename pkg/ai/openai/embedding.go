package openai

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v3"
)

const defaultDimensions = 1024

// GenerateEmbedding creates a dense vector embedding for the given input
// using the configured embedding model. Empty input returns a zero vector
// of the configured dimensionality without calling the service.
func (c *Client) GenerateEmbedding(ctx context.Context, input []byte) ([]float32, error) {
	dim := c.dimensions
	if dim <= 0 {
		dim = defaultDimensions
	}
	if len(strings.TrimSpace(string(input))) == 0 {
		return make([]float32, dim), nil
	}
	if c.EmbeddingClient == nil {
		return nil, fmt.Errorf("embedding client not configured")
	}

	if err := c.reqLock.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer c.reqLock.Release(1)

	res, err := c.EmbeddingClient.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Input: openai.EmbeddingNewParamsInputUnion{OfString: openai.String(string(input))},
		Model: openai.EmbeddingModel(c.embeddingModel),
	})
	if err != nil {
		return nil, err
	}
	if len(res.Data) != 1 {
		return nil, fmt.Errorf("unexpected embedding result size: got %d want 1", len(res.Data))
	}

	out := make([]float32, 0, dim)
	for _, v := range res.Data[0].Embedding {
		if len(out) >= dim {
			break
		}
		out = append(out, float32(v))
	}
	for len(out) < dim {
		out = append(out, 0)
	}
	return out, nil
}
