package ollama

import (
	"net/http"
	"net/url"

	"github.com/ollama/ollama/api"
	"golang.org/x/sync/semaphore"
)

// Client implements completion and dense-embedding calls against a local
// or remote Ollama server.
type Client struct {
	completionModel string
	embeddingModel  string
	dimensions      int

	reqLock *semaphore.Weighted

	API *api.Client
}

// NewClientParams contains configuration options for creating a Client.
type NewClientParams struct {
	CompletionModel string
	EmbeddingModel  string
	Dimensions      int

	BaseURL string
	APIKey  string

	MaxConcurrentRequests int64
}

type headerTransport struct {
	headers map[string]string
	rt      http.RoundTripper
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// clone so original request isn't modified
	r := req.Clone(req.Context())
	for k, v := range t.headers {
		if r.Header.Get(k) == "" {
			r.Header.Set(k, v)
		}
	}
	return t.rt.RoundTrip(r)
}

// NewClient connects to the Ollama server at BaseURL (or the default when
// empty) and uses the configured models for completions and embeddings.
func NewClient(params NewClientParams) (*Client, error) {
	var (
		u   *url.URL
		err error
	)

	if params.BaseURL != "" {
		u, err = url.Parse(params.BaseURL)
		if err != nil {
			return nil, err
		}
	}

	httpClient := &http.Client{
		Transport: &headerTransport{
			headers: map[string]string{
				"Authorization": "Bearer " + params.APIKey,
			},
			rt: http.DefaultTransport,
		},
	}

	maxConcurrent := params.MaxConcurrentRequests
	if maxConcurrent <= 0 {
		maxConcurrent = 4
	}

	return &Client{
		completionModel: params.CompletionModel,
		embeddingModel:  params.EmbeddingModel,
		dimensions:      params.Dimensions,

		reqLock: semaphore.NewWeighted(maxConcurrent),

		API: api.NewClient(u, httpClient),
	}, nil
}
