package openai

import (
	"context"
	"errors"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/sashabaranov/go-openai"

	domai "github.com/bryanwahyu/truthlens/internal/domain/ai"
)

const systemPrompt = "You are TruthLens AI, a misinformation detection assistant. Follow the output format requested by the user exactly."

type Client struct {
	*openai.Client
	Model string
}

// NewClient builds a chat-completions provider. baseURL may be empty.
func NewClient(apiKey, model, baseURL string) *Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &Client{Client: openai.NewClientWithConfig(cfg), Model: model}
}

func (c *Client) Name() string { return "openai" }

func (c *Client) Generate(ctx context.Context, prompt string, cfg domai.GenerationConfig) (string, error) {
	model := c.Model
	if model == "" {
		model = openai.GPT4oMini
	}
	req := openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: cfg.Temperature,
		TopP:        cfg.TopP,
	}
	// For reasoning models (o1/o3/o4/gpt-5*) use MaxCompletionTokens instead of MaxTokens
	if strings.HasPrefix(model, "o1") || strings.HasPrefix(model, "o3") || strings.HasPrefix(model, "o4") || strings.HasPrefix(model, "gpt-5") {
		req.MaxCompletionTokens = cfg.MaxOutputTokens
		req.Temperature = 0
		req.TopP = 0
	} else {
		req.MaxTokens = cfg.MaxOutputTokens
	}

	resp, err := c.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", classify(err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", domai.ErrEmptyResponse
	}
	return resp.Choices[0].Message.Content, nil
}

// classify maps SDK errors onto the shared upstream error kinds.
func classify(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return domai.NewUpstreamError(apiErr.HTTPStatusCode, apiErr.Message)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return domai.NewUpstreamError(reqErr.HTTPStatusCode, string(reqErr.Body))
	}
	return eris.Wrap(err, "openai: create chat completion")
}
