package openrouter

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"docqa/config"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// Client talks to the OpenRouter API, which is OpenAI-compatible. One client
// serves both the embedding and the chat model.
type Client struct {
	api            openai.Client
	embeddingModel string
	chatModel      string
}

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type embeddingRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

type embeddingResponse struct {
	Data []struct {
		Embedding []float64 `json:"embedding"`
		Index     int       `json:"index"`
	} `json:"data"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

type chatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float32   `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Index   int     `json:"index"`
		Message Message `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// NewClient builds a client from the openrouter config section. OpenRouter's
// optional attribution headers are sent when configured.
func NewClient() (*Client, error) {
	cfg := config.Cfg.OpenRouter
	if cfg.Key == "" {
		return nil, errors.New("missing openrouter key")
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.Key),
		option.WithBaseURL(cfg.BaseURL),
	}
	if cfg.HTTPReferer != "" {
		opts = append(opts, option.WithHeader("HTTP-Referer", cfg.HTTPReferer))
	}
	if cfg.XTitle != "" {
		opts = append(opts, option.WithHeader("X-Title", cfg.XTitle))
	}

	return &Client{
		api:            openai.NewClient(opts...),
		embeddingModel: cfg.EmbeddingModel,
		chatModel:      cfg.ChatModel,
	}, nil
}

// Embeddings returns one vector per input, in input order. Batching is the
// caller's concern.
func (c *Client) Embeddings(ctx context.Context, inputs []string) ([][]float32, error) {
	if len(inputs) == 0 {
		return [][]float32{}, nil
	}

	req := embeddingRequest{Model: c.embeddingModel, Input: inputs}
	var out embeddingResponse
	if err := c.api.Post(ctx, "/embeddings", req, &out); err != nil {
		return nil, err
	}
	if out.Error != nil {
		return nil, errors.New(out.Error.Message)
	}
	if len(out.Data) != len(inputs) {
		return nil, fmt.Errorf("embeddings: got %d vectors for %d inputs", len(out.Data), len(inputs))
	}

	vectors := make([][]float32, len(out.Data))
	for i := range out.Data {
		src := out.Data[i].Embedding
		vec := make([]float32, len(src))
		for k := range src {
			vec[k] = float32(src[k])
		}
		vectors[i] = vec
	}
	return vectors, nil
}

// Chat runs a non-streaming chat completion and returns the assistant text.
func (c *Client) Chat(ctx context.Context, messages []Message) (string, error) {
	req := chatRequest{
		Model:       c.chatModel,
		Messages:    messages,
		Temperature: 0.2,
	}
	var out chatResponse
	if err := c.api.Post(ctx, "/chat/completions", req, &out); err != nil {
		return "", err
	}
	if out.Error != nil {
		return "", errors.New(out.Error.Message)
	}
	if len(out.Choices) == 0 {
		return "", errors.New("no choices returned")
	}
	return strings.TrimSpace(out.Choices[0].Message.Content), nil
}
