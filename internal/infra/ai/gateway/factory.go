package gateway

import (
	"github.com/rotisserie/eris"

	"github.com/bryanwahyu/truthlens/internal/config"
	domai "github.com/bryanwahyu/truthlens/internal/domain/ai"
	"github.com/bryanwahyu/truthlens/internal/infra/ai/anthropic"
	"github.com/bryanwahyu/truthlens/internal/infra/ai/gemini"
	"github.com/bryanwahyu/truthlens/internal/infra/ai/openai"
)

// NewProvider picks the model backend named by cfg.AI.Provider.
func NewProvider(cfg *config.Config) (domai.Provider, error) {
	switch cfg.AI.Provider {
	case "", "gemini":
		return gemini.NewClient(cfg.AI.APIKey,
			gemini.WithBaseURL(cfg.AI.BaseURL),
			gemini.WithModel(cfg.AI.Model),
		), nil
	case "openai":
		return openai.NewClient(cfg.AI.APIKey, cfg.AI.Model, cfg.AI.BaseURL), nil
	case "anthropic":
		return anthropic.NewClient(cfg.AI.APIKey, cfg.AI.Model, cfg.AI.BaseURL), nil
	default:
		return nil, eris.Errorf("unknown ai provider %q", cfg.AI.Provider)
	}
}
