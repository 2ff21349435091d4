package analysis

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryanwahyu/truthlens/internal/application"
	domai "github.com/bryanwahyu/truthlens/internal/domain/ai"
	domain "github.com/bryanwahyu/truthlens/internal/domain/analysis"
	"github.com/bryanwahyu/truthlens/internal/domain/kv"
)

type memRepo struct {
	mu      sync.Mutex
	records map[domain.ID]*domain.Record
	saveErr error
}

func newMemRepo() *memRepo { return &memRepo{records: map[domain.ID]*domain.Record{}} }

func (r *memRepo) Save(_ context.Context, rec *domain.Record) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records[rec.ID] = rec
	return nil
}

func (r *memRepo) Get(_ context.Context, id domain.ID) (*domain.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[id]
	if !ok {
		return nil, kv.ErrNotFound
	}
	return rec, nil
}

func (r *memRepo) Recent(_ context.Context) ([]*domain.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Record, 0, len(r.records))
	for _, rec := range r.records {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	return out, nil
}

type fakeAI struct {
	mu         sync.Mutex
	analyzeErr error
	storyErr   error
	reportErr  error
	hints      []string
}

func (f *fakeAI) AnalyzeText(_ context.Context, content, hint string) (*domain.Result, error) {
	f.mu.Lock()
	f.hints = append(f.hints, hint)
	f.mu.Unlock()
	if f.analyzeErr != nil {
		return nil, f.analyzeErr
	}
	return &domain.Result{
		CredibilityScore: 20,
		RiskLevel:        domain.RiskCritical,
		Issues:           []domain.Issue{{Type: "fabricated_claim", Severity: domain.RiskCritical, Description: content, Confidence: 90}},
		Summary:          "model summary",
		Recommendations:  []string{"do not share"},
		Sources:          []domain.Source{},
	}, nil
}

func (f *fakeAI) GenerateStory(_ context.Context, _ *domain.Result, _ string) (*domain.StoryPrompt, error) {
	if f.storyErr != nil {
		return nil, f.storyErr
	}
	return &domain.StoryPrompt{Scenario: "model scenario", Characters: []string{"a"}}, nil
}

func (f *fakeAI) GenerateReport(_ context.Context, _ *domain.Result, _ *domain.StoryPrompt) (string, error) {
	if f.reportErr != nil {
		return "", f.reportErr
	}
	return "# model report", nil
}

type countingRecorder struct {
	mu    sync.Mutex
	calls [][]string
}

func (c *countingRecorder) ObserveAnalysis(fallbacks []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = append(c.calls, fallbacks)
}

var fixedNow = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

func newService(ai *fakeAI, repo *memRepo) *Service {
	return &Service{
		Repo:  repo,
		AI:    ai,
		Clock: application.FixedClock{T: fixedNow},
	}
}

func TestAnalyze_AllStepsSucceed(t *testing.T) {
	repo := newMemRepo()
	rec := &countingRecorder{}
	svc := newService(&fakeAI{}, repo)
	svc.Recorder = rec

	out, err := svc.Analyze(context.Background(), AnalyzeCommand{Content: "the moon is cheese", ContentType: "text", Context: "forward"})
	require.NoError(t, err)

	assert.False(t, out.Degraded)
	assert.Empty(t, out.Fallbacks)
	assert.Equal(t, domain.RiskCritical, out.Analysis.RiskLevel)
	assert.Equal(t, "model scenario", out.StoryPrompt.Scenario)
	assert.Equal(t, "# model report", out.DetailedReport)
	assert.Regexp(t, `^analysis_\d+_[0-9a-z]{12}$`, string(out.AnalysisID))

	stored, err := svc.Get(context.Background(), out.AnalysisID)
	require.NoError(t, err)
	assert.Equal(t, *out.Analysis, stored.Result)
	assert.Equal(t, *out.StoryPrompt, stored.StoryPrompt)
	assert.Equal(t, out.DetailedReport, stored.DetailedReport)
	assert.Equal(t, "the moon is cheese", stored.OriginalContent)
	assert.Equal(t, domain.ContentText, stored.ContentType)
	assert.Equal(t, fixedNow, stored.Timestamp)
	assert.Len(t, rec.calls, 1)
}

func TestAnalyze_TextPassesContextMediaReplacesIt(t *testing.T) {
	ai := &fakeAI{}
	svc := newService(ai, newMemRepo())

	_, err := svc.Analyze(context.Background(), AnalyzeCommand{Content: "x", ContentType: "text", Context: "user hint"})
	require.NoError(t, err)
	_, err = svc.Analyze(context.Background(), AnalyzeCommand{Content: "x", ContentType: "image", Context: "ignored"})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"user hint",
		"This is image content that needs verification for potential manipulation or deepfakes.",
	}, ai.hints)
}

func TestAnalyze_AnalysisFailureUsesSynthesizer(t *testing.T) {
	svc := newService(&fakeAI{analyzeErr: domai.NewUpstreamError(429, "quota")}, newMemRepo())

	content := "SHOCKING: share this NOW before they delete it!!"
	out, err := svc.Analyze(context.Background(), AnalyzeCommand{Content: content, ContentType: "text"})
	require.NoError(t, err)

	assert.True(t, out.Degraded)
	assert.Equal(t, []string{domain.StepAnalysis}, out.Fallbacks)
	assert.Equal(t, Synthesize(content), out.Analysis)
}

func TestAnalyze_LaterFailuresKeepFirstResult(t *testing.T) {
	ai := &fakeAI{storyErr: errors.New("boom"), reportErr: domai.ErrUnparsable}
	svc := newService(ai, newMemRepo())

	out, err := svc.Analyze(context.Background(), AnalyzeCommand{Content: "claim", ContentType: "text"})
	require.NoError(t, err)

	assert.Equal(t, 20, out.Analysis.CredibilityScore)
	assert.Equal(t, domain.RiskCritical, out.Analysis.RiskLevel)
	assert.Equal(t, []string{domain.StepStoryPrompt, domain.StepDetailedReport}, out.Fallbacks)
	assert.Equal(t, FallbackStory(out.Analysis), out.StoryPrompt)
	assert.Equal(t, FallbackReport(out.Analysis, out.StoryPrompt), out.DetailedReport)
}

func TestAnalyze_Validation(t *testing.T) {
	svc := newService(&fakeAI{}, newMemRepo())

	_, err := svc.Analyze(context.Background(), AnalyzeCommand{ContentType: "text"})
	assert.True(t, errors.Is(err, domain.ErrValidation))
	assert.EqualError(t, err, "Content is required")

	_, err = svc.Analyze(context.Background(), AnalyzeCommand{Content: "x", ContentType: "pdf"})
	assert.True(t, errors.Is(err, domain.ErrValidation))
	assert.EqualError(t, err, "Invalid content type")
}

func TestAnalyze_SaveFailureIsReturned(t *testing.T) {
	repo := newMemRepo()
	repo.saveErr = errors.New("db down")
	svc := newService(&fakeAI{}, repo)

	_, err := svc.Analyze(context.Background(), AnalyzeCommand{Content: "x", ContentType: "text"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db down")
	assert.False(t, errors.Is(err, domain.ErrValidation))
}

func TestAnalyzeBatch_IsolatesMalformedItem(t *testing.T) {
	repo := newMemRepo()
	svc := newService(&fakeAI{}, repo)
	svc.BatchConcurrency = 2

	items := []AnalyzeCommand{
		{Content: "first", ContentType: "text"},
		{Content: "second", ContentType: "hologram"},
		{Content: "third", ContentType: "audio"},
		{Content: "", ContentType: "text"},
	}
	results, err := svc.AnalyzeBatch(context.Background(), items)
	require.NoError(t, err)
	require.Len(t, results, len(items))

	for i, r := range results {
		assert.Equal(t, items[i].Content, r.OriginalContent, "order kept at %d", i)
	}
	assert.Equal(t, "Invalid content type", results[1].Error)
	assert.Nil(t, results[1].Analysis)
	assert.Equal(t, "Content is required", results[3].Error)

	for _, i := range []int{0, 2} {
		assert.Empty(t, results[i].Error)
		require.NotNil(t, results[i].Analysis)
		assert.NotEmpty(t, results[i].AnalysisID)

		rec, err := repo.Get(context.Background(), results[i].AnalysisID)
		require.NoError(t, err)
		assert.NotEmpty(t, rec.DetailedReport)
	}
}

func TestAnalyzeBatch_UpstreamFailureStillAnalyses(t *testing.T) {
	svc := newService(&fakeAI{analyzeErr: errors.New("timeout"), storyErr: errors.New("timeout")}, newMemRepo())

	results, err := svc.AnalyzeBatch(context.Background(), []AnalyzeCommand{{Content: "Ok", ContentType: "text"}})
	require.NoError(t, err)
	require.NotNil(t, results[0].Analysis)
	assert.True(t, results[0].Degraded)
	assert.Equal(t, []string{domain.StepAnalysis, domain.StepStoryPrompt}, results[0].Fallbacks)
}

func TestAnalyzeBatch_EmptyItems(t *testing.T) {
	svc := newService(&fakeAI{}, newMemRepo())
	_, err := svc.AnalyzeBatch(context.Background(), nil)
	assert.True(t, errors.Is(err, domain.ErrValidation))
}

func TestTestAI(t *testing.T) {
	svc := newService(&fakeAI{}, newMemRepo())
	out, err := svc.TestAI(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, out.SampleAnalysis.IssuesCount)

	svc = newService(&fakeAI{analyzeErr: domai.NewUpstreamError(401, "bad key")}, newMemRepo())
	_, err = svc.TestAI(context.Background())
	assert.True(t, domai.IsAuth(err))
}
