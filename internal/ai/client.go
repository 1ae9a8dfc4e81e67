// Package ai wraps the OpenAI embeddings and completions endpoints.
package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	embeddingModel  = "text-embedding-3-small"
	completionModel = "gpt-3.5-turbo-instruct"

	// EmbeddingDims is requested explicitly; text-embedding-3-small
	// natively produces 1536 dimensions.
	EmbeddingDims = 768

	maxSummaryTokens = 150
	requestTimeout   = 30 * time.Second
)

var (
	ErrEmbedding  = errors.New("embedding generation failed")
	ErrCompletion = errors.New("completion generation failed")
)

// Client talks to the OpenAI REST API.
type Client struct {
	http *resty.Client
}

// NewClient creates a Client. It reads OPENAI_BASE_URL; if empty it falls
// back to the public API endpoint.
func NewClient(apiKey string) *Client {
	base := os.Getenv("OPENAI_BASE_URL")
	if base == "" {
		base = "https://api.openai.com/v1"
	}

	c := resty.New().
		SetBaseURL(base).
		SetHeader("Authorization", "Bearer "+apiKey).
		SetHeader("Content-Type", "application/json").
		SetTimeout(requestTimeout)

	return &Client{http: c}
}

type embeddingRequest struct {
	Input      string `json:"input"`
	Model      string `json:"model"`
	Dimensions int    `json:"dimensions"`
}

type embeddingResponse struct {
	Data []struct {
		Embedding []float32 `json:"embedding"`
	} `json:"data"`
}

type completionRequest struct {
	Model     string `json:"model"`
	Prompt    string `json:"prompt"`
	MaxTokens int    `json:"max_tokens"`
}

type completionResponse struct {
	Choices []struct {
		Text string `json:"text"`
	} `json:"choices"`
}

type apiError struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Embed generates a fixed-dimension vector for the given text.
func (c *Client) Embed(ctx context.Context, text string) ([]float32, error) {
	reqBody := embeddingRequest{
		Input:      text,
		Model:      embeddingModel,
		Dimensions: EmbeddingDims,
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(&reqBody).
		Post("/embeddings")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEmbedding, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("%w: %s", ErrEmbedding, errorMessage(resp))
	}

	var er embeddingResponse
	if err := json.Unmarshal(resp.Body(), &er); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrEmbedding, err)
	}
	if len(er.Data) == 0 {
		return nil, fmt.Errorf("%w: empty response", ErrEmbedding)
	}
	vec := er.Data[0].Embedding
	if len(vec) != EmbeddingDims {
		return nil, fmt.Errorf("%w: expected %d dimensions, got %d", ErrEmbedding, EmbeddingDims, len(vec))
	}
	return vec, nil
}

// Summarize requests a bounded free-text completion for the given prompt
// and returns it with surrounding whitespace trimmed.
func (c *Client) Summarize(ctx context.Context, prompt string) (string, error) {
	reqBody := completionRequest{
		Model:     completionModel,
		Prompt:    prompt,
		MaxTokens: maxSummaryTokens,
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(&reqBody).
		Post("/completions")
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrCompletion, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("%w: %s", ErrCompletion, errorMessage(resp))
	}

	var cr completionResponse
	if err := json.Unmarshal(resp.Body(), &cr); err != nil {
		return "", fmt.Errorf("%w: decode response: %v", ErrCompletion, err)
	}
	if len(cr.Choices) == 0 {
		return "", fmt.Errorf("%w: empty response", ErrCompletion)
	}
	return strings.TrimSpace(cr.Choices[0].Text), nil
}

func errorMessage(resp *resty.Response) string {
	var apiErr apiError
	if json.Unmarshal(resp.Body(), &apiErr) == nil && apiErr.Error.Message != "" {
		return fmt.Sprintf("status %d: %s", resp.StatusCode(), apiErr.Error.Message)
	}
	return fmt.Sprintf("status %d: %s", resp.StatusCode(), resp.String())
}
