package google

import (
	"context"
	"encoding/json"

	"github.com/rotisserie/eris"

	"github.com/bryanwahyu/truthlens/internal/domain/media"
)

// DefaultFeatures is used when the caller asks for none.
var DefaultFeatures = []media.Feature{
	{Type: "TEXT_DETECTION"},
	{Type: "SAFE_SEARCH_DETECTION"},
	{Type: "LABEL_DETECTION"},
	{Type: "FACE_DETECTION"},
}

type annotateRequest struct {
	Requests []annotateImageRequest `json:"requests"`
}

type annotateImageRequest struct {
	Image struct {
		Content string `json:"content"`
	} `json:"image"`
	Features []media.Feature `json:"features"`
}

// Annotate returns the first entry of responses[] untouched, or {} when the
// API sent none.
func (c *Client) Annotate(ctx context.Context, imageBase64 string, features []media.Feature) (json.RawMessage, error) {
	if len(features) == 0 {
		features = DefaultFeatures
	}
	r := annotateImageRequest{Features: features}
	r.Image.Content = imageBase64

	var resp struct {
		Responses []json.RawMessage `json:"responses"`
	}
	if err := c.post(ctx, c.endpoints.Vision, annotateRequest{Requests: []annotateImageRequest{r}}, &resp); err != nil {
		return nil, eris.Wrap(err, "vision annotate")
	}
	if len(resp.Responses) == 0 {
		return json.RawMessage(`{}`), nil
	}
	return resp.Responses[0], nil
}
