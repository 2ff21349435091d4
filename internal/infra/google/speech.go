package google

import (
	"context"
	"encoding/json"
	"maps"

	"github.com/rotisserie/eris"

	"github.com/bryanwahyu/truthlens/internal/domain/media"
)

// defaultSpeechConfig matches browser MediaRecorder output.
func defaultSpeechConfig() media.SpeechConfig {
	return media.SpeechConfig{
		"encoding":                   "WEBM_OPUS",
		"sampleRateHertz":            48000,
		"languageCode":               "en-IN",
		"enableAutomaticPunctuation": true,
		"model":                      "latest_long",
	}
}

type recognizeResponse struct {
	Results []struct {
		Alternatives []struct {
			Transcript string  `json:"transcript"`
			Confidence float64 `json:"confidence"`
		} `json:"alternatives"`
	} `json:"results"`
}

// Recognize transcribes base64 audio. Keys in cfg override the defaults.
// An empty result is not an error; the transcript is just "".
func (c *Client) Recognize(ctx context.Context, audioBase64 string, cfg media.SpeechConfig) (*media.Transcript, error) {
	merged := defaultSpeechConfig()
	maps.Copy(merged, cfg)

	body := map[string]any{
		"config": merged,
		"audio":  map[string]string{"content": audioBase64},
	}

	var raw json.RawMessage
	if err := c.post(ctx, c.endpoints.Speech, body, &raw); err != nil {
		return nil, eris.Wrap(err, "speech recognize")
	}
	var resp recognizeResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, eris.Wrap(err, "speech recognize: decode")
	}

	out := &media.Transcript{FullResponse: raw}
	if len(resp.Results) > 0 && len(resp.Results[0].Alternatives) > 0 {
		alt := resp.Results[0].Alternatives[0]
		out.Transcript = alt.Transcript
		out.Confidence = alt.Confidence
	}
	return out, nil
}
