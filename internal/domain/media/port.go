package media

import (
	"context"
	"encoding/json"
)

// Translation hasil dari translate API
type Translation struct {
	TranslatedText   string `json:"translatedText"`
	DetectedLanguage string `json:"detectedLanguage,omitempty"`
	OriginalText     string `json:"originalText"`
}

// Detection is the most likely language of a text.
type Detection struct {
	Language   string  `json:"language"`
	Confidence float64 `json:"confidence"`
}

// Transcript is the best speech recognition alternative.
type Transcript struct {
	Transcript   string          `json:"transcript"`
	Confidence   float64         `json:"confidence"`
	FullResponse json.RawMessage `json:"fullResponse,omitempty"`
}

// SpeechConfig overrides recognition defaults (encoding, sampleRateHertz,
// languageCode, ...). Keys are passed through to the recognizer verbatim.
type SpeechConfig map[string]any

// Feature is one vision detection request, e.g. {"type":"TEXT_DETECTION"}.
type Feature struct {
	Type       string `json:"type"`
	MaxResults int    `json:"maxResults,omitempty"`
}

type Translator interface {
	Translate(ctx context.Context, text, target, source string) (*Translation, error)
	DetectLanguage(ctx context.Context, text string) (*Detection, error)
}

type SpeechRecognizer interface {
	Recognize(ctx context.Context, audioBase64 string, cfg SpeechConfig) (*Transcript, error)
}

type VisionAnnotator interface {
	Annotate(ctx context.Context, imageBase64 string, features []Feature) (json.RawMessage, error)
}
