package google

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
	DefaultTranslateURL = "https://translation.googleapis.com/language/translate/v2"
	DefaultSpeechURL    = "https://speech.googleapis.com/v1/speech:recognize"
	DefaultVisionURL    = "https://vision.googleapis.com/v1/images:annotate"
)

// Endpoints holds the three REST endpoints. Empty fields use the defaults.
type Endpoints struct {
	Translate string
	Speech    string
	Vision    string
}

// Client talks to the Cloud Translation, Speech-to-Text and Vision REST
// APIs with a single API key passed as ?key=.
type Client struct {
	apiKey    string
	endpoints Endpoints
	http      *http.Client
}

func NewClient(apiKey string, ep Endpoints, hc *http.Client) *Client {
	if ep.Translate == "" {
		ep.Translate = DefaultTranslateURL
	}
	if ep.Speech == "" {
		ep.Speech = DefaultSpeechURL
	}
	if ep.Vision == "" {
		ep.Vision = DefaultVisionURL
	}
	if hc == nil {
		hc = &http.Client{}
	}
	return &Client{apiKey: apiKey, endpoints: ep, http: hc}
}

// post sends body as JSON and decodes a 2xx answer into out. Non-2xx
// answers become *ai.UpstreamError.
func (c *Client) post(ctx context.Context, endpoint string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return eris.Wrap(err, "marshal request")
	}

	u, err := url.Parse(endpoint)
	if err != nil {
		return eris.Wrapf(err, "parse endpoint %s", endpoint)
	}
	q := u.Query()
	q.Set("key", c.apiKey)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.String(), bytes.NewReader(payload))
	if err != nil {
		return eris.Wrap(err, "create request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return eris.Wrap(err, "network error")
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return eris.Wrap(err, "read response")
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return domai.NewUpstreamError(resp.StatusCode, string(raw))
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return eris.Wrap(err, "decode response")
	}
	return nil
}
