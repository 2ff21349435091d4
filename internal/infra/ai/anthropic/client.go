package anthropic

import (
	"context"
	"errors"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/rotisserie/eris"

	domai "github.com/bryanwahyu/truthlens/internal/domain/ai"
)

const systemPrompt = "You are TruthLens AI, a misinformation detection assistant. Follow the output format requested by the user exactly."

// Client implements the provider port with the Messages API.
type Client struct {
	client sdk.Client
	model  sdk.Model
}

// NewClient builds the provider. The SDK's own retries are disabled so a
// failure reaches the caller's fallback on the first attempt.
func NewClient(apiKey, model, baseURL string) *Client {
	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	m := sdk.Model(model)
	if model == "" {
		m = sdk.ModelClaudeHaiku4_5
	}
	return &Client{client: sdk.NewClient(opts...), model: m}
}

func (c *Client) Name() string { return "anthropic" }

func (c *Client) Generate(ctx context.Context, prompt string, cfg domai.GenerationConfig) (string, error) {
	params := sdk.MessageNewParams{
		Model:     c.model,
		MaxTokens: int64(cfg.MaxOutputTokens),
		System: []sdk.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: []sdk.MessageParam{
			sdk.NewUserMessage(sdk.NewTextBlock(prompt)),
		},
	}
	if cfg.Temperature > 0 {
		params.Temperature = sdk.Float(float64(cfg.Temperature))
	}

	resp, err := c.client.Messages.New(ctx, params)
	if err != nil {
		var apiErr *sdk.Error
		if errors.As(err, &apiErr) {
			return "", domai.NewUpstreamError(apiErr.StatusCode, apiErr.Error())
		}
		return "", eris.Wrap(err, "anthropic: create message")
	}
	if len(resp.Content) == 0 || resp.Content[0].Text == "" {
		return "", domai.ErrEmptyResponse
	}
	return resp.Content[0].Text, nil
}
