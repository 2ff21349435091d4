package google

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/bryanwahyu/truthlens/internal/domain/media"
)

type translateRequest struct {
	Q      string `json:"q"`
	Target string `json:"target"`
	Format string `json:"format"`
	Source string `json:"source,omitempty"`
}

type translateResponse struct {
	Data struct {
		Translations []struct {
			TranslatedText         string `json:"translatedText"`
			DetectedSourceLanguage string `json:"detectedSourceLanguage"`
		} `json:"translations"`
	} `json:"data"`
}

// Translate translates text into target. A source of "" or "auto" lets the
// API detect the language.
func (c *Client) Translate(ctx context.Context, text, target, source string) (*media.Translation, error) {
	req := translateRequest{Q: text, Target: target, Format: "text"}
	if source != "" && source != "auto" {
		req.Source = source
	}

	var resp translateResponse
	if err := c.post(ctx, c.endpoints.Translate, req, &resp); err != nil {
		return nil, eris.Wrap(err, "translate")
	}
	if len(resp.Data.Translations) == 0 {
		return nil, eris.New("translate: no translations in response")
	}
	t := resp.Data.Translations[0]
	return &media.Translation{
		TranslatedText:   t.TranslatedText,
		DetectedLanguage: t.DetectedSourceLanguage,
		OriginalText:     text,
	}, nil
}

type detectResponse struct {
	Data struct {
		Detections [][]struct {
			Language   string  `json:"language"`
			Confidence float64 `json:"confidence"`
		} `json:"detections"`
	} `json:"data"`
}

// defaultDetectConfidence is reported when the API omits a confidence.
const defaultDetectConfidence = 0.5

func (c *Client) DetectLanguage(ctx context.Context, text string) (*media.Detection, error) {
	var resp detectResponse
	if err := c.post(ctx, c.endpoints.Translate+"/detect", map[string]string{"q": text}, &resp); err != nil {
		return nil, eris.Wrap(err, "detect language")
	}
	if len(resp.Data.Detections) == 0 || len(resp.Data.Detections[0]) == 0 {
		return nil, eris.New("detect language: no detections in response")
	}
	d := resp.Data.Detections[0][0]
	conf := d.Confidence
	if conf == 0 {
		conf = defaultDetectConfidence
	}
	return &media.Detection{Language: d.Language, Confidence: conf}, nil
}
