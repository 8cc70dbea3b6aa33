package embedding

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"notechat/internal/config"
)

// Client calls an OpenAI-compatible embeddings endpoint. Both the OpenAI
// response shape and the Ollama-native shape are accepted, so a local Ollama
// serving bge-small works with the same config keys as a hosted endpoint.
type Client struct {
	baseURL   string
	apiKey    string
	model     string
	dimension int
	client    *http.Client
}

// NewClient creates an embeddings client from configuration. The API key is
// optional: local endpoints do not require one.
func NewClient(cfg config.EmbedderConfig) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("embedder base_url is required")
	}
	if cfg.Model == "" {
		return nil, errors.New("embedder model is required")
	}
	if cfg.Dimension <= 0 {
		return nil, fmt.Errorf("embedder dimension must be positive, got %d", cfg.Dimension)
	}
	key := ""
	if cfg.APIKeyEnv != "" {
		key = os.Getenv(cfg.APIKeyEnv)
	}
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:   cfg.BaseURL,
		apiKey:    key,
		model:     cfg.Model,
		dimension: cfg.Dimension,
		client:    &http.Client{Timeout: timeout},
	}, nil
}

// Model returns the identifier of the embedding model.
func (c *Client) Model() string { return c.model }

// Dimension returns the configured dimensionality of the produced vectors.
func (c *Client) Dimension() int { return c.dimension }

// Embed returns an embedding vector for the given text. A response whose
// width differs from the configured dimension is an explicit error rather
// than a silently corrupt index entry.
func (c *Client) Embed(ctx context.Context, text string) ([]float32, error) {
	type reqBody struct {
		Input  string `json:"input,omitempty"`
		Prompt string `json:"prompt,omitempty"`
		Model  string `json:"model"`
	}
	data, _ := json.Marshal(reqBody{Input: text, Prompt: text, Model: c.model})
	url := fmt.Sprintf("%s/embeddings", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("embeddings request failed: %s", resp.Status)
	}
	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	vec, err := decodeEmbedding(payload)
	if err != nil {
		return nil, err
	}
	if len(vec) != c.dimension {
		return nil, fmt.Errorf("model %s returned a %d-dim vector, config expects %d",
			c.model, len(vec), c.dimension)
	}
	return vec, nil
}

func decodeEmbedding(payload []byte) ([]float32, error) {
	// OpenAI-compatible shape first
	var openaiOut struct {
		Data []struct {
			Embedding []float32 `json:"embedding"`
		} `json:"data"`
	}
	if err := json.Unmarshal(payload, &openaiOut); err == nil {
		if len(openaiOut.Data) > 0 && len(openaiOut.Data[0].Embedding) > 0 {
			return openaiOut.Data[0].Embedding, nil
		}
	}
	// Ollama-native shape: { "embedding": [...] }
	var ollamaOut struct {
		Embedding []float32 `json:"embedding"`
	}
	if err := json.Unmarshal(payload, &ollamaOut); err == nil {
		if len(ollamaOut.Embedding) > 0 {
			return ollamaOut.Embedding, nil
		}
	}
	return nil, errors.New("no embedding returned")
}
