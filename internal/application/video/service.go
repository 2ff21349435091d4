package video

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/bryanwahyu/truthlens/internal/application"
	"github.com/bryanwahyu/truthlens/internal/domain/analysis"
	domain "github.com/bryanwahyu/truthlens/internal/domain/video"
)

const (
	IDPrefix        = "video"
	GeneratedBy     = "truthlens-ai"
	DefaultDuration = 120
	MaxDuration     = 600

	defaultMediaBase = "https://example.com"
	minSize          = 10_000_000
	sizeSpread       = 50_000_000
)

// Service simulates video generation: nothing is rendered, but the record,
// the script artifact and the status invariants are real.
type Service struct {
	Repo      domain.Repository
	Artifacts domain.ArtifactStore // optional
	Clock     application.Clock
	Log       *zap.Logger

	// MediaBaseURL prefixes the simulated video and thumbnail URLs.
	MediaBaseURL string
}

// GenerateCommand untuk satu video
type GenerateCommand struct {
	StoryPrompt *analysis.StoryPrompt
	Options     domain.Options
}

// Generate validates options, resolves defaults, uploads the rendered script
// when an artifact store is wired and persists the record.
func (s *Service) Generate(ctx context.Context, cmd GenerateCommand) (*domain.Result, error) {
	if cmd.StoryPrompt == nil {
		return nil, analysis.Invalid("Story prompt is required")
	}
	opts, tpl, err := resolveOptions(cmd.Options)
	if err != nil {
		return nil, err
	}

	id := application.NewID(IDPrefix, s.Clock)
	base := s.MediaBaseURL
	if base == "" {
		base = defaultMediaBase
	}

	res := domain.Result{
		VideoID:      id,
		VideoURL:     fmt.Sprintf("%s/videos/%s.mp4", base, id),
		ThumbnailURL: fmt.Sprintf("%s/thumbnails/%s.jpg", base, id),
		Duration:     opts.Duration,
		Size:         minSize + rand.Int64N(sizeSpread),
		Status:       domain.StatusCompleted,
		Progress:     100,
	}
	if err := res.Validate(); err != nil {
		return nil, eris.Wrap(err, "video result")
	}

	rec := &domain.Record{
		Result:      res,
		StoryPrompt: *cmd.StoryPrompt,
		Options:     opts,
		Timestamp:   s.Clock.Now(),
		GeneratedBy: GeneratedBy,
	}

	if s.Artifacts != nil {
		script := RenderScript(cmd.StoryPrompt, tpl)
		key := fmt.Sprintf("videos/%s/script.md", id)
		url, err := s.Artifacts.UploadBytes(ctx, key, []byte(script), "text/markdown; charset=utf-8")
		if err != nil {
			// script is a side artifact; the video record stands without it
			s.logger().Warn("video script upload failed", zap.String("video_id", id), zap.Error(err))
		} else {
			rec.ScriptURL = url
		}
	}

	if err := s.Repo.Save(ctx, rec); err != nil {
		return nil, eris.Wrapf(err, "save video %s", id)
	}
	s.logger().Info("video generated",
		zap.String("video_id", id),
		zap.String("template", tpl.ID),
		zap.Int("duration", res.Duration),
	)
	return &res, nil
}

// Get returns the stored record; kv.ErrNotFound when absent.
func (s *Service) Get(ctx context.Context, id string) (*domain.Record, error) {
	return s.Repo.Get(ctx, id)
}

func (s *Service) logger() *zap.Logger {
	if s.Log == nil {
		return zap.NewNop()
	}
	return s.Log
}

func resolveOptions(in domain.Options) (domain.Options, domain.Template, error) {
	tpl := templates[0]
	if in.Template != "" {
		t, ok := FindTemplate(in.Template)
		if !ok {
			return in, tpl, analysis.Invalid("Unknown video template")
		}
		tpl = t
	}

	out := in
	out.Template = tpl.ID

	switch {
	case in.Duration < 0 || in.Duration > MaxDuration:
		return in, tpl, analysis.Invalid(fmt.Sprintf("Duration must be between 1 and %d seconds", MaxDuration))
	case in.Duration == 0 && in.Template != "":
		out.Duration = tpl.Duration
	case in.Duration == 0:
		out.Duration = DefaultDuration
	}

	switch in.Quality {
	case "":
		out.Quality = domain.QualityMedium
	case domain.QualityLow, domain.QualityMedium, domain.QualityHigh:
	default:
		return in, tpl, analysis.Invalid("Invalid video quality")
	}

	switch in.Style {
	case "":
		out.Style = tpl.Style
	case domain.StyleEducational, domain.StyleDramatic, domain.StyleInformative:
	default:
		return in, tpl, analysis.Invalid("Invalid video style")
	}

	if in.IncludeSubtitles == nil {
		yes := true
		out.IncludeSubtitles = &yes
	}
	if in.Language == "" {
		out.Language = "en"
	}
	return out, tpl, nil
}
