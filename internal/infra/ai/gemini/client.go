package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"

	"github.com/rotisserie/eris"

	domai "github.com/bryanwahyu/truthlens/internal/domain/ai"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	defaultModel   = "gemini-1.5-flash"
)

// Option configures the client.
type Option func(*Client)

// WithBaseURL overrides the API base URL (tests, proxies).
func WithBaseURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.baseURL = u
		}
	}
}

// WithModel overrides the default model.
func WithModel(m string) Option {
	return func(c *Client) {
		if m != "" {
			c.model = m
		}
	}
}

// WithHTTPClient overrides the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// Client calls models/{model}:generateContent with the key as a query param.
type Client struct {
	apiKey  string
	baseURL string
	model   string
	http    *http.Client
}

func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		model:   defaultModel,
		http:    &http.Client{},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *Client) Name() string { return "gemini" }

type part struct {
	Text string `json:"text"`
}

type content struct {
	Parts []part `json:"parts"`
}

type generationConfig struct {
	Temperature     float32 `json:"temperature"`
	TopK            int     `json:"topK"`
	TopP            float32 `json:"topP"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (c *Client) Generate(ctx context.Context, prompt string, cfg domai.GenerationConfig) (string, error) {
	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: generationConfig{
			Temperature:     cfg.Temperature,
			TopK:            cfg.TopK,
			TopP:            cfg.TopP,
			MaxOutputTokens: cfg.MaxOutputTokens,
		},
	})
	if err != nil {
		return "", eris.Wrap(err, "gemini: marshal request")
	}

	endpoint := c.baseURL + "/models/" + url.PathEscape(c.model) + ":generateContent?key=" + url.QueryEscape(c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", eris.Wrap(err, "gemini: create request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", eris.Wrap(err, "gemini: network error")
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", eris.Wrap(err, "gemini: read response")
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", domai.NewUpstreamError(resp.StatusCode, string(raw))
	}

	var out generateResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", eris.Wrap(err, "gemini: decode response")
	}
	if out.Error != nil {
		return "", domai.NewUpstreamError(out.Error.Code, out.Error.Message)
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 || out.Candidates[0].Content.Parts[0].Text == "" {
		return "", domai.ErrEmptyResponse
	}
	return out.Candidates[0].Content.Parts[0].Text, nil
}
