package gateway

import (
	"context"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	domai "github.com/bryanwahyu/truthlens/internal/domain/ai"
	"github.com/bryanwahyu/truthlens/internal/domain/analysis"
	"github.com/bryanwahyu/truthlens/internal/infra/ai/prompt"
)

// Sampling defaults shared by every provider.
const (
	DefaultTemperature     float32 = 0.3
	DefaultTopK                    = 40
	DefaultTopP            float32 = 0.95
	DefaultMaxOutputTokens         = 2048

	storyTemperature  float32 = 0.7
	reportTemperature float32 = 0.4
)

// DefaultTimeout bounds a single provider call when none is configured.
const DefaultTimeout = 30 * time.Second

// Gateway turns analysis operations into prompts, calls the provider once
// and decodes the answer. It never retries and never falls back; callers
// own that policy.
type Gateway struct {
	provider domai.Provider
	timeout  time.Duration
	log      *zap.Logger
}

func New(provider domai.Provider, timeout time.Duration, log *zap.Logger) *Gateway {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Gateway{provider: provider, timeout: timeout, log: log}
}

// Provider exposes the underlying provider name for health output.
func (g *Gateway) Provider() string { return g.provider.Name() }

// Request sends prompt with defaults applied to cfg and returns the raw text.
func (g *Gateway) Request(ctx context.Context, p string, cfg domai.GenerationConfig) (string, error) {
	cfg = WithDefaults(cfg)

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	start := time.Now()
	text, err := g.provider.Generate(ctx, p, cfg)
	if err != nil {
		g.log.Warn("ai request failed",
			zap.String("provider", g.provider.Name()),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err),
		)
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		return "", domai.ErrEmptyResponse
	}
	g.log.Debug("ai response received",
		zap.String("provider", g.provider.Name()),
		zap.Int("length", len(text)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return text, nil
}

func (g *Gateway) AnalyzeText(ctx context.Context, content, contextHint string) (*analysis.Result, error) {
	raw, err := g.Request(ctx, prompt.Analysis(content, contextHint), domai.GenerationConfig{})
	if err != nil {
		return nil, eris.Wrap(err, "analyze text")
	}
	var res analysis.Result
	if err := ExtractJSON(raw, &res); err != nil {
		g.log.Warn("no JSON found in analysis response", zap.String("head", head(raw, 500)))
		return nil, err
	}
	return &res, nil
}

func (g *Gateway) GenerateStory(ctx context.Context, res *analysis.Result, content string) (*analysis.StoryPrompt, error) {
	raw, err := g.Request(ctx, prompt.Story(res, content), domai.GenerationConfig{Temperature: storyTemperature})
	if err != nil {
		return nil, eris.Wrap(err, "generate story")
	}
	var story analysis.StoryPrompt
	if err := ExtractJSON(raw, &story); err != nil {
		return nil, err
	}
	return &story, nil
}

// GenerateReport returns the model's text unchanged.
func (g *Gateway) GenerateReport(ctx context.Context, res *analysis.Result, story *analysis.StoryPrompt) (string, error) {
	raw, err := g.Request(ctx, prompt.Report(res, story), domai.GenerationConfig{Temperature: reportTemperature})
	if err != nil {
		return "", eris.Wrap(err, "generate report")
	}
	return raw, nil
}

// WithDefaults fills zero sampling parameters.
func WithDefaults(cfg domai.GenerationConfig) domai.GenerationConfig {
	if cfg.Temperature == 0 {
		cfg.Temperature = DefaultTemperature
	}
	if cfg.TopK == 0 {
		cfg.TopK = DefaultTopK
	}
	if cfg.TopP == 0 {
		cfg.TopP = DefaultTopP
	}
	if cfg.MaxOutputTokens == 0 {
		cfg.MaxOutputTokens = DefaultMaxOutputTokens
	}
	return cfg
}

func head(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
