package openai

import (
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"golang.org/x/sync/semaphore"
)

// Client talks to OpenAI-compatible endpoints for chat completions and
// dense embeddings. Separate API clients are kept for the two concerns so
// they can point at different hosts.
type Client struct {
	completionModel string
	embeddingModel  string
	dimensions      int

	reqLock *semaphore.Weighted

	ChatClient      *openai.Client
	EmbeddingClient *openai.Client
}

// NewClientParams configures a Client. URL fields may be empty to use the
// default OpenAI endpoint; Dimensions must match the embedding model.
type NewClientParams struct {
	CompletionModel string
	EmbeddingModel  string
	Dimensions      int

	ChatURL      string
	ChatKey      string
	EmbeddingURL string
	EmbeddingKey string

	MaxConcurrentRequests int64
}

// NewClient creates a Client from the given parameters.
func NewClient(params NewClientParams) *Client {
	maxConcurrent := params.MaxConcurrentRequests
	if maxConcurrent <= 0 {
		maxConcurrent = 8
	}

	return &Client{
		completionModel: params.CompletionModel,
		embeddingModel:  params.EmbeddingModel,
		dimensions:      params.Dimensions,

		reqLock: semaphore.NewWeighted(maxConcurrent),

		ChatClient:      newAPIClient(params.ChatURL, params.ChatKey),
		EmbeddingClient: newAPIClient(params.EmbeddingURL, params.EmbeddingKey),
	}
}

func newAPIClient(baseURL string, apiKey string) *openai.Client {
	if apiKey == "" {
		return nil
	}
	options := []option.RequestOption{
		option.WithAPIKey(apiKey),
	}
	if baseURL != "" {
		options = append(options, option.WithBaseURL(baseURL))
	}

	client := openai.NewClient(options...)
	return &client
}
