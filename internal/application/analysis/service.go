package analysis

import (
	"context"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/bryanwahyu/truthlens/internal/application"
	domai "github.com/bryanwahyu/truthlens/internal/domain/ai"
	domain "github.com/bryanwahyu/truthlens/internal/domain/analysis"
)

// IDPrefix is shared by every persisted analysis key.
const IDPrefix = "analysis"

// DefaultBatchConcurrency bounds the batch worker group when unset.
const DefaultBatchConcurrency = 4

const testAIContent = "This is a test message to verify the AI analysis system is working correctly."

// Recorder receives the outcome of each pipeline run. Optional.
type Recorder interface {
	ObserveAnalysis(fallbacks []string)
}

// Service implements use-cases untuk analysis: analyze, story, report, persist.
// Each of the three model calls degrades to its own fallback; only
// validation and storage failures reach the caller.
type Service struct {
	Repo     domain.Repository
	AI       domai.Analyzer
	Clock    application.Clock
	Log      *zap.Logger
	Recorder Recorder

	BatchConcurrency int
}

//
// ==== USE CASES ====
//

// AnalyzeCommand untuk satu submission
type AnalyzeCommand struct {
	Content     string `json:"content"`
	ContentType string `json:"contentType"`
	Context     string `json:"context,omitempty"`
}

type AnalyzeResult struct {
	AnalysisID     domain.ID           `json:"analysisId"`
	Analysis       *domain.Result      `json:"analysis"`
	StoryPrompt    *domain.StoryPrompt `json:"storyPrompt"`
	DetailedReport string              `json:"detailedReport"`
	Degraded       bool                `json:"degraded"`
	Fallbacks      []string            `json:"fallbacks"`
}

// BatchItemResult holds either a finished analysis or the error for one item.
type BatchItemResult struct {
	AnalysisID      domain.ID           `json:"analysisId,omitempty"`
	Analysis        *domain.Result      `json:"analysis,omitempty"`
	StoryPrompt     *domain.StoryPrompt `json:"storyPrompt,omitempty"`
	OriginalContent string              `json:"originalContent"`
	Degraded        bool                `json:"degraded,omitempty"`
	Fallbacks       []string            `json:"fallbacks,omitempty"`
	Error           string              `json:"error,omitempty"`
}

type SampleAnalysis struct {
	CredibilityScore int              `json:"credibilityScore"`
	RiskLevel        domain.RiskLevel `json:"riskLevel"`
	IssuesCount      int              `json:"issuesCount"`
}

type TestAIResult struct {
	Message        string         `json:"message"`
	SampleAnalysis SampleAnalysis `json:"sampleAnalysis"`
}

// Analyze runs the full pipeline for one submission and persists the record.
func (s *Service) Analyze(ctx context.Context, cmd AnalyzeCommand) (AnalyzeResult, error) {
	ct, err := validate(cmd)
	if err != nil {
		return AnalyzeResult{}, err
	}
	log := s.logger().With(zap.String("content_type", string(ct)))
	log.Info("starting analysis")

	var fallbacks []string

	// STEP 1: analysis
	res, ok := s.analyzeStep(ctx, log, cmd.Content, ct, cmd.Context)
	if !ok {
		fallbacks = append(fallbacks, domain.StepAnalysis)
	}

	// STEP 2: story prompt
	story, ok := s.storyStep(ctx, log, res, cmd.Content)
	if !ok {
		fallbacks = append(fallbacks, domain.StepStoryPrompt)
	}

	// STEP 3: detailed report
	report, err := s.AI.GenerateReport(ctx, res, story)
	if err != nil || strings.TrimSpace(report) == "" {
		log.Warn("report generation degraded to fallback", zap.Error(err))
		report = FallbackReport(res, story)
		fallbacks = append(fallbacks, domain.StepDetailedReport)
	}

	// STEP 4: persist
	rec := &domain.Record{
		Result:          *res,
		StoryPrompt:     *story,
		DetailedReport:  report,
		OriginalContent: cmd.Content,
		ContentType:     ct,
		Timestamp:       s.Clock.Now(),
		ID:              domain.ID(application.NewID(IDPrefix, s.Clock)),
		Fallbacks:       fallbacks,
	}
	if err := s.Repo.Save(ctx, rec); err != nil {
		return AnalyzeResult{}, eris.Wrapf(err, "save analysis %s", rec.ID)
	}
	s.observe(fallbacks)
	log.Info("analysis completed", zap.String("id", string(rec.ID)), zap.Strings("fallbacks", fallbacks))

	return AnalyzeResult{
		AnalysisID:     rec.ID,
		Analysis:       res,
		StoryPrompt:    story,
		DetailedReport: report,
		Degraded:       len(fallbacks) > 0,
		Fallbacks:      nonNil(fallbacks),
	}, nil
}

// AnalyzeBatch runs steps 1 and 2 per item with a rendered report. One
// item's failure never aborts the others; results keep input order.
func (s *Service) AnalyzeBatch(ctx context.Context, items []AnalyzeCommand) ([]BatchItemResult, error) {
	if len(items) == 0 {
		return nil, domain.Invalid("Items array is required")
	}

	limit := s.BatchConcurrency
	if limit <= 0 {
		limit = DefaultBatchConcurrency
	}

	results := make([]BatchItemResult, len(items))
	var g errgroup.Group
	g.SetLimit(limit)
	for i, item := range items {
		g.Go(func() error {
			results[i] = s.batchItem(ctx, item)
			return nil
		})
	}
	_ = g.Wait()
	return results, nil
}

func (s *Service) batchItem(ctx context.Context, cmd AnalyzeCommand) BatchItemResult {
	out := BatchItemResult{OriginalContent: cmd.Content}

	ct, err := validate(cmd)
	if err != nil {
		out.Error = err.Error()
		return out
	}
	log := s.logger().With(zap.String("content_type", string(ct)), zap.Bool("batch", true))

	var fallbacks []string
	res, ok := s.analyzeStep(ctx, log, cmd.Content, ct, cmd.Context)
	if !ok {
		fallbacks = append(fallbacks, domain.StepAnalysis)
	}
	story, ok := s.storyStep(ctx, log, res, cmd.Content)
	if !ok {
		fallbacks = append(fallbacks, domain.StepStoryPrompt)
	}

	rec := &domain.Record{
		Result:          *res,
		StoryPrompt:     *story,
		DetailedReport:  FallbackReport(res, story),
		OriginalContent: cmd.Content,
		ContentType:     ct,
		Timestamp:       s.Clock.Now(),
		ID:              domain.ID(application.NewID(IDPrefix, s.Clock)),
		Fallbacks:       fallbacks,
	}
	if err := s.Repo.Save(ctx, rec); err != nil {
		log.Error("batch item save failed", zap.Error(err))
		out.Error = err.Error()
		return out
	}
	s.observe(fallbacks)

	out.AnalysisID = rec.ID
	out.Analysis = res
	out.StoryPrompt = story
	out.Degraded = len(fallbacks) > 0
	out.Fallbacks = fallbacks
	return out
}

// Get returns one persisted record; kv.ErrNotFound when absent.
func (s *Service) Get(ctx context.Context, id domain.ID) (*domain.Record, error) {
	return s.Repo.Get(ctx, id)
}

// Recent returns up to 50 records, newest first.
func (s *Service) Recent(ctx context.Context) ([]*domain.Record, error) {
	return s.Repo.Recent(ctx)
}

// TestAI calls the model once with a fixed sample and no fallback, so a
// broken key or quota shows up as an error.
func (s *Service) TestAI(ctx context.Context) (TestAIResult, error) {
	res, err := s.AI.AnalyzeText(ctx, testAIContent, "Test context")
	if err != nil {
		return TestAIResult{}, err
	}
	return TestAIResult{
		Message: "AI service is working correctly",
		SampleAnalysis: SampleAnalysis{
			CredibilityScore: res.CredibilityScore,
			RiskLevel:        res.RiskLevel,
			IssuesCount:      len(res.Issues),
		},
	}, nil
}

func (s *Service) analyzeStep(ctx context.Context, log *zap.Logger, content string, ct domain.ContentType, hint string) (*domain.Result, bool) {
	if ct.IsMedia() {
		hint = ct.MediaHint()
	}
	res, err := s.AI.AnalyzeText(ctx, content, hint)
	if err != nil || res == nil {
		log.Warn("analysis degraded to pattern fallback",
			zap.Error(err),
			zap.Bool("auth", domai.IsAuth(err)),
			zap.Bool("rate_limited", domai.IsRateLimited(err)),
		)
		return Synthesize(content), false
	}
	Normalize(res)
	return res, true
}

func (s *Service) storyStep(ctx context.Context, log *zap.Logger, res *domain.Result, content string) (*domain.StoryPrompt, bool) {
	story, err := s.AI.GenerateStory(ctx, res, content)
	if err != nil || story == nil {
		log.Warn("story generation degraded to fallback", zap.Error(err))
		return FallbackStory(res), false
	}
	if story.Characters == nil {
		story.Characters = []string{}
	}
	return story, true
}

func (s *Service) observe(fallbacks []string) {
	if s.Recorder != nil {
		s.Recorder.ObserveAnalysis(fallbacks)
	}
}

func (s *Service) logger() *zap.Logger {
	if s.Log == nil {
		return zap.NewNop()
	}
	return s.Log
}

func validate(cmd AnalyzeCommand) (domain.ContentType, error) {
	if cmd.Content == "" {
		return "", domain.Invalid("Content is required")
	}
	ct := domain.ContentType(cmd.ContentType)
	if !ct.Valid() {
		return "", domain.Invalid("Invalid content type")
	}
	return ct, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
