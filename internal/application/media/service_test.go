package media

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryanwahyu/truthlens/internal/domain/analysis"
	domain "github.com/bryanwahyu/truthlens/internal/domain/media"
)

type fakeGoogle struct {
	err      error
	features []domain.Feature
}

func (f *fakeGoogle) Translate(_ context.Context, text, target, _ string) (*domain.Translation, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Translation{TranslatedText: text + "@" + target, OriginalText: text}, nil
}

func (f *fakeGoogle) DetectLanguage(_ context.Context, _ string) (*domain.Detection, error) {
	return &domain.Detection{Language: "hi", Confidence: 0.9}, f.err
}

func (f *fakeGoogle) Recognize(_ context.Context, _ string, _ domain.SpeechConfig) (*domain.Transcript, error) {
	return &domain.Transcript{Transcript: "hi"}, f.err
}

func (f *fakeGoogle) Annotate(_ context.Context, _ string, features []domain.Feature) (json.RawMessage, error) {
	f.features = features
	return json.RawMessage(`{}`), f.err
}

func newSvc(g *fakeGoogle) *Service {
	return &Service{Translator: g, Speech: g, Vision: g}
}

func TestTranslate(t *testing.T) {
	svc := newSvc(&fakeGoogle{})

	out, err := svc.Translate(context.Background(), "hello", "ta", "")
	require.NoError(t, err)
	assert.Equal(t, "hello@ta", out.TranslatedText)

	_, err = svc.Translate(context.Background(), "", "ta", "")
	assert.True(t, errors.Is(err, analysis.ErrValidation))
	assert.EqualError(t, err, "Text is required")

	_, err = svc.Translate(context.Background(), "x", " ", "")
	assert.True(t, errors.Is(err, analysis.ErrValidation))
}

func TestTranslate_UpstreamErrorIsNotValidation(t *testing.T) {
	svc := newSvc(&fakeGoogle{err: errors.New("503")})
	_, err := svc.Translate(context.Background(), "x", "en", "")
	require.Error(t, err)
	assert.False(t, errors.Is(err, analysis.ErrValidation))
}

func TestSpeechToText_Validation(t *testing.T) {
	svc := newSvc(&fakeGoogle{})

	_, err := svc.SpeechToText(context.Background(), "", nil)
	assert.EqualError(t, err, "Audio data is required")

	_, err = svc.SpeechToText(context.Background(), "not base64!!", nil)
	assert.True(t, errors.Is(err, analysis.ErrValidation))

	out, err := svc.SpeechToText(context.Background(), "AAAA", nil)
	require.NoError(t, err)
	assert.Equal(t, "hi", out.Transcript)
}

func TestVisionOCR(t *testing.T) {
	g := &fakeGoogle{}
	svc := newSvc(g)

	_, err := svc.VisionOCR(context.Background(), "", nil)
	assert.EqualError(t, err, "Image data is required")

	_, err = svc.VisionOCR(context.Background(), "AAAA", []domain.Feature{{}})
	assert.True(t, errors.Is(err, analysis.ErrValidation))

	_, err = svc.VisionOCR(context.Background(), "AAAA", []domain.Feature{{Type: "TEXT_DETECTION"}})
	require.NoError(t, err)
	assert.Equal(t, []domain.Feature{{Type: "TEXT_DETECTION"}}, g.features)
}

func TestDetectLanguage(t *testing.T) {
	svc := newSvc(&fakeGoogle{})
	_, err := svc.DetectLanguage(context.Background(), "")
	assert.True(t, errors.Is(err, analysis.ErrValidation))

	out, err := svc.DetectLanguage(context.Background(), "नमस्ते")
	require.NoError(t, err)
	assert.Equal(t, "hi", out.Language)
}
