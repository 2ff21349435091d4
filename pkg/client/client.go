package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rotisserie/eris"
)

// DefaultBasePath is where the API is mounted on the server.
const DefaultBasePath = "/make-server-76a6fe9f"

// APIError is returned when the server responds with a non-2xx status.
// Message and Details come from the {"error", "details"} body when present.
type APIError struct {
	StatusCode int
	Message    string
	Details    string
}

func (e *APIError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("truthlens: HTTP %d: %s: %s", e.StatusCode, e.Message, e.Details)
	}
	return fmt.Sprintf("truthlens: HTTP %d: %s", e.StatusCode, e.Message)
}

// Option configures the Client.
type Option func(*Client)

// WithHTTPClient sets a custom *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithBasePath overrides DefaultBasePath.
func WithBasePath(p string) Option {
	return func(c *Client) {
		c.basePath = p
	}
}

// Client calls the TruthLens HTTP API. It never substitutes local results
// for a failed call; degraded analyses are reported by the server.
type Client struct {
	baseURL  string
	basePath string
	token    string
	http     *http.Client
}

// New creates a client for the server at baseURL (scheme://host[:port])
// authenticating with token (the anonymous public key works).
func New(baseURL, token string, opts ...Option) *Client {
	c := &Client{
		baseURL:  baseURL,
		basePath: DefaultBasePath,
		token:    token,
		http: &http.Client{
			// three sequential model calls on the server side
			Timeout: 120 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) AnalyzeContent(ctx context.Context, content, contentType, contextHint string) (*AnalyzeResponse, error) {
	var resp AnalyzeResponse
	body := AnalyzeRequest{Content: content, ContentType: contentType, Context: contextHint}
	if err := c.post(ctx, "/analyze", body, &resp); err != nil {
		return nil, eris.Wrap(err, "truthlens: analyze")
	}
	return &resp, nil
}

func (c *Client) GetAnalysis(ctx context.Context, id string) (*AnalysisRecord, error) {
	var resp struct {
		Data AnalysisRecord `json:"data"`
	}
	if err := c.get(ctx, "/analysis/"+url.PathEscape(id), &resp); err != nil {
		return nil, eris.Wrapf(err, "truthlens: get analysis %s", id)
	}
	return &resp.Data, nil
}

// ListAnalyses returns up to 50 analyses, newest first.
func (c *Client) ListAnalyses(ctx context.Context) ([]AnalysisRecord, error) {
	var resp struct {
		Data []AnalysisRecord `json:"data"`
	}
	if err := c.get(ctx, "/analyses", &resp); err != nil {
		return nil, eris.Wrap(err, "truthlens: list analyses")
	}
	return resp.Data, nil
}

// AnalyzeBatch returns one result per item, in order. Rejected items carry
// Error instead of failing the whole call.
func (c *Client) AnalyzeBatch(ctx context.Context, items []AnalyzeRequest) ([]BatchItem, error) {
	var resp struct {
		Results []BatchItem `json:"results"`
	}
	body := map[string]any{"items": items}
	if err := c.post(ctx, "/analyze-batch", body, &resp); err != nil {
		return nil, eris.Wrap(err, "truthlens: analyze batch")
	}
	return resp.Results, nil
}

// Translate converts text into target; source may be empty for auto-detect.
func (c *Client) Translate(ctx context.Context, text, target, source string) (*Translation, error) {
	var resp Translation
	body := map[string]string{"text": text, "targetLanguage": target}
	if source != "" {
		body["sourceLanguage"] = source
	}
	if err := c.post(ctx, "/translate", body, &resp); err != nil {
		return nil, eris.Wrap(err, "truthlens: translate")
	}
	return &resp, nil
}

func (c *Client) DetectLanguage(ctx context.Context, text string) (*Detection, error) {
	var resp Detection
	if err := c.post(ctx, "/detect-language", map[string]string{"text": text}, &resp); err != nil {
		return nil, eris.Wrap(err, "truthlens: detect language")
	}
	return &resp, nil
}

func (c *Client) GenerateVideo(ctx context.Context, story StoryPrompt, opts VideoOptions) (*VideoResult, error) {
	var resp struct {
		VideoResult VideoResult `json:"videoResult"`
	}
	body := struct {
		StoryPrompt StoryPrompt  `json:"storyPrompt"`
		Options     VideoOptions `json:"options"`
	}{story, opts}
	if err := c.post(ctx, "/generate-video", body, &resp); err != nil {
		return nil, eris.Wrap(err, "truthlens: generate video")
	}
	return &resp.VideoResult, nil
}

func (c *Client) GetVideo(ctx context.Context, id string) (*VideoRecord, error) {
	var resp struct {
		Data VideoRecord `json:"data"`
	}
	if err := c.get(ctx, "/video/"+url.PathEscape(id), &resp); err != nil {
		return nil, eris.Wrapf(err, "truthlens: get video %s", id)
	}
	return &resp.Data, nil
}

func (c *Client) Health(ctx context.Context) (*Health, error) {
	var resp Health
	if err := c.get(ctx, "/health", &resp); err != nil {
		return nil, eris.Wrap(err, "truthlens: health")
	}
	return &resp, nil
}

func (c *Client) post(ctx context.Context, path string, body any, out any) error {
	buf, err := json.Marshal(body)
	if err != nil {
		return eris.Wrap(err, "marshal request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+c.basePath+path, bytes.NewReader(buf))
	if err != nil {
		return eris.Wrap(err, "create request")
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, out)
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+c.basePath+path, nil)
	if err != nil {
		return eris.Wrap(err, "create request")
	}
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		return eris.Wrap(err, "execute request")
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return eris.Wrap(err, "read response body")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: string(data)}
		var body struct {
			Error   string `json:"error"`
			Details string `json:"details"`
		}
		if json.Unmarshal(data, &body) == nil && body.Error != "" {
			apiErr.Message = body.Error
			apiErr.Details = body.Details
		}
		return apiErr
	}

	if err := json.Unmarshal(data, out); err != nil {
		return eris.Wrap(err, "decode response")
	}
	return nil
}
