package ai

import (
	"context"

	"github.com/bryanwahyu/truthlens/internal/domain/analysis"
)

// GenerationConfig holds sampling parameters. Zero values mean "use default".
type GenerationConfig struct {
	Temperature     float32
	TopK            int
	TopP            float32
	MaxOutputTokens int
}

// Provider sends one prompt to a text-generation model and returns its raw
// text. Implementations must not retry.
type Provider interface {
	Name() string
	Generate(ctx context.Context, prompt string, cfg GenerationConfig) (string, error)
}

// Analyzer is the gateway used by the analysis pipeline.
type Analyzer interface {
	AnalyzeText(ctx context.Context, content, contextHint string) (*analysis.Result, error)
	GenerateStory(ctx context.Context, result *analysis.Result, content string) (*analysis.StoryPrompt, error)
	GenerateReport(ctx context.Context, result *analysis.Result, story *analysis.StoryPrompt) (string, error)
}
