package media

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/bryanwahyu/truthlens/internal/domain/analysis"
	domain "github.com/bryanwahyu/truthlens/internal/domain/media"
)

// Service validates auxiliary requests and forwards them to the Google
// adapters. There is no fallback here; upstream failures surface as 500.
type Service struct {
	Translator domain.Translator
	Speech     domain.SpeechRecognizer
	Vision     domain.VisionAnnotator
	Log        *zap.Logger
}

func (s *Service) Translate(ctx context.Context, text, target, source string) (*domain.Translation, error) {
	if text == "" {
		return nil, analysis.Invalid("Text is required")
	}
	if strings.TrimSpace(target) == "" {
		return nil, analysis.Invalid("Target language is required")
	}
	out, err := s.Translator.Translate(ctx, text, target, source)
	if err != nil {
		s.logger().Error("translation failed", zap.String("target", target), zap.Error(err))
		return nil, err
	}
	return out, nil
}

func (s *Service) DetectLanguage(ctx context.Context, text string) (*domain.Detection, error) {
	if text == "" {
		return nil, analysis.Invalid("Text is required")
	}
	out, err := s.Translator.DetectLanguage(ctx, text)
	if err != nil {
		s.logger().Error("language detection failed", zap.Error(err))
		return nil, err
	}
	return out, nil
}

func (s *Service) SpeechToText(ctx context.Context, audio string, cfg domain.SpeechConfig) (*domain.Transcript, error) {
	if audio == "" {
		return nil, analysis.Invalid("Audio data is required")
	}
	if !isBase64(audio) {
		return nil, analysis.Invalid("Audio data must be base64 encoded")
	}
	out, err := s.Speech.Recognize(ctx, audio, cfg)
	if err != nil {
		s.logger().Error("speech recognition failed", zap.Int("audio_len", len(audio)), zap.Error(err))
		return nil, err
	}
	return out, nil
}

func (s *Service) VisionOCR(ctx context.Context, image string, features []domain.Feature) (json.RawMessage, error) {
	if image == "" {
		return nil, analysis.Invalid("Image data is required")
	}
	if !isBase64(image) {
		return nil, analysis.Invalid("Image data must be base64 encoded")
	}
	for _, f := range features {
		if f.Type == "" {
			return nil, analysis.Invalid("Feature type is required")
		}
	}
	out, err := s.Vision.Annotate(ctx, image, features)
	if err != nil {
		s.logger().Error("vision annotate failed", zap.Int("image_len", len(image)), zap.Error(err))
		return nil, eris.Wrap(err, "vision ocr")
	}
	return out, nil
}

func (s *Service) logger() *zap.Logger {
	if s.Log == nil {
		return zap.NewNop()
	}
	return s.Log
}

// isBase64 accepts padded standard encoding, the form browsers produce via
// FileReader once the data: prefix is stripped.
func isBase64(s string) bool {
	_, err := base64.StdEncoding.DecodeString(s)
	return err == nil
}
