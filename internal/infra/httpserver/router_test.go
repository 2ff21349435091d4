package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryanwahyu/truthlens/internal/application"
	appanalysis "github.com/bryanwahyu/truthlens/internal/application/analysis"
	appmedia "github.com/bryanwahyu/truthlens/internal/application/media"
	appvideo "github.com/bryanwahyu/truthlens/internal/application/video"
	domai "github.com/bryanwahyu/truthlens/internal/domain/ai"
	"github.com/bryanwahyu/truthlens/internal/domain/analysis"
	"github.com/bryanwahyu/truthlens/internal/infra/ai/gateway"
	"github.com/bryanwahyu/truthlens/internal/infra/google"
	kvinfra "github.com/bryanwahyu/truthlens/internal/infra/kv"
	"github.com/bryanwahyu/truthlens/internal/infra/kv/memory"
	"github.com/bryanwahyu/truthlens/internal/middleware"
)

const (
	base  = "/make-server-76a6fe9f"
	token = "Bearer anon-key"
)

type scriptedProvider struct {
	reply string
	err   error
}

func (p *scriptedProvider) Name() string { return "scripted" }

func (p *scriptedProvider) Generate(context.Context, string, domai.GenerationConfig) (string, error) {
	return p.reply, p.err
}

type testServer struct {
	handler  http.Handler
	provider *scriptedProvider
	metrics  *middleware.Metrics
}

func newTestServer(t *testing.T, googleURL string) *testServer {
	t.Helper()
	store := memory.New()
	provider := &scriptedProvider{err: domai.NewUpstreamError(http.StatusUnauthorized, "bad key")}
	metrics := middleware.NewMetrics()
	clock := application.SystemClock{}

	g := google.NewClient("gkey", google.Endpoints{
		Translate: googleURL + "/translate",
		Speech:    googleURL + "/speech",
		Vision:    googleURL + "/vision",
	}, nil)

	h := NewRouter(Deps{
		Analysis: &appanalysis.Service{
			Repo:     kvinfra.NewAnalysisRepository(store),
			AI:       gateway.New(provider, time.Second, nil),
			Clock:    clock,
			Recorder: metrics,
		},
		Media: &appmedia.Service{Translator: g, Speech: g, Vision: g},
		Video: &appvideo.Service{Repo: kvinfra.NewVideoRepository(store), Clock: clock},

		Metrics:  metrics,
		APIKeys:  map[string]string{"anon": "anon-key"},
		Health:   middleware.HealthInfo{Service: "TruthLens AI Server", APIKeyConfigured: true},
		Checkers: map[string]middleware.HealthChecker{"kv": middleware.KVHealthChecker{Store: store}},
		BasePath: base,
	})
	return &testServer{handler: h, provider: provider, metrics: metrics}
}

func (s *testServer) do(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, base+path, strings.NewReader(body))
	req.Header.Set("Authorization", token)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v), rec.Body.String())
}

type analyzeResponse struct {
	Success        bool                 `json:"success"`
	AnalysisID     string               `json:"analysisId"`
	Analysis       analysis.Result      `json:"analysis"`
	StoryPrompt    analysis.StoryPrompt `json:"storyPrompt"`
	DetailedReport string               `json:"detailedReport"`
	Degraded       bool                 `json:"degraded"`
	Fallbacks      []string             `json:"fallbacks"`
}

func TestAnalyze_UpstreamDownStillSucceeds(t *testing.T) {
	s := newTestServer(t, "http://unused")

	rec := s.do(http.MethodPost, "/analyze", `{"content":"SHOCKING: share this NOW before they delete it!!","contentType":"text"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var got analyzeResponse
	decodeBody(t, rec, &got)
	assert.True(t, got.Success)
	assert.True(t, strings.HasPrefix(got.AnalysisID, "analysis_"))
	assert.True(t, got.Degraded)
	assert.Equal(t, []string{analysis.StepAnalysis, analysis.StepStoryPrompt, analysis.StepDetailedReport}, got.Fallbacks)

	assert.Less(t, got.Analysis.CredibilityScore, 75)
	assert.Contains(t, []analysis.RiskLevel{analysis.RiskMedium, analysis.RiskHigh}, got.Analysis.RiskLevel)
	assert.GreaterOrEqual(t, len(got.Analysis.Issues), 2)
	assert.NotEmpty(t, got.DetailedReport)

	// the stored record matches the response
	rec = s.do(http.MethodGet, "/analysis/"+got.AnalysisID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var stored struct {
		Success bool            `json:"success"`
		Data    analysis.Record `json:"data"`
	}
	decodeBody(t, rec, &stored)
	assert.Equal(t, got.Analysis, stored.Data.Result)
	assert.Equal(t, got.StoryPrompt, stored.Data.StoryPrompt)
	assert.Equal(t, got.DetailedReport, stored.Data.DetailedReport)

	snap := s.metrics.Snapshot()
	assert.EqualValues(t, 1, snap["analyses_degraded"])
}

func TestAnalyze_ModelAnswers(t *testing.T) {
	s := newTestServer(t, "http://unused")
	s.provider.err = nil
	s.provider.reply = "```json\n" + `{"credibilityScore":35,"riskLevel":"critical","issues":[{"type":"fabricated_claim","severity":"critical","description":"d","confidence":80}],"summary":"s","recommendations":["r"],"sources":[]}` + "\n```"

	rec := s.do(http.MethodPost, "/analyze", `{"content":"The moon is made of cheese","contentType":"text"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var got analyzeResponse
	decodeBody(t, rec, &got)
	assert.False(t, got.Degraded)
	assert.Empty(t, got.Fallbacks)
	assert.Equal(t, 35, got.Analysis.CredibilityScore)
	assert.Equal(t, analysis.RiskCritical, got.Analysis.RiskLevel)
}

func TestAnalyze_Validation(t *testing.T) {
	s := newTestServer(t, "http://unused")

	rec := s.do(http.MethodPost, "/analyze", `{"content":"","contentType":"text"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Content is required"}`, rec.Body.String())

	rec = s.do(http.MethodPost, "/analyze", `{"content":"x","contentType":"pdf"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodPost, "/analyze", `{not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "error")
}

func TestRequiresBearerToken(t *testing.T) {
	s := newTestServer(t, "http://unused")

	req := httptest.NewRequest(http.MethodGet, base+"/analyses", nil)
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t, "http://unused")

	req := httptest.NewRequest(http.MethodOptions, base+"/analyze", nil)
	req.Header.Set("Origin", "https://truthlens.app")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Authorization, Content-Type")
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)

	assert.Less(t, rec.Code, 300)
	assert.NotEmpty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "600", rec.Header().Get("Access-Control-Max-Age"))
}

func TestGetAnalysis_NotFound(t *testing.T) {
	s := newTestServer(t, "http://unused")

	rec := s.do(http.MethodGet, "/analysis/analysis_1719990000000_abcdef123456", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Analysis not found"}`, rec.Body.String())

	rec = s.do(http.MethodGet, "/analysis/video_1_a", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListAnalyses(t *testing.T) {
	s := newTestServer(t, "http://unused")

	rec := s.do(http.MethodGet, "/analyses", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"data":[]}`, rec.Body.String())

	for _, c := range []string{"first claim", "second claim"} {
		require.Equal(t, http.StatusOK, s.do(http.MethodPost, "/analyze", `{"content":"`+c+`","contentType":"text"}`).Code)
	}

	var got struct {
		Data []analysis.Record `json:"data"`
	}
	decodeBody(t, s.do(http.MethodGet, "/analyses", ""), &got)
	require.Len(t, got.Data, 2)
	assert.False(t, got.Data[0].Timestamp.Before(got.Data[1].Timestamp))
}

func TestAnalyzeBatch(t *testing.T) {
	s := newTestServer(t, "http://unused")

	rec := s.do(http.MethodPost, "/analyze-batch", `{"items":[
		{"content":"claim one","contentType":"text"},
		{"content":"","contentType":"text"},
		{"content":"claim three","contentType":"image"}
	]}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var got struct {
		Success bool                          `json:"success"`
		Results []appanalysis.BatchItemResult `json:"results"`
	}
	decodeBody(t, rec, &got)
	require.Len(t, got.Results, 3)
	assert.NotNil(t, got.Results[0].Analysis)
	assert.NotEmpty(t, got.Results[1].Error)
	assert.Nil(t, got.Results[1].Analysis)
	assert.NotNil(t, got.Results[2].Analysis)
	assert.Equal(t, "claim three", got.Results[2].OriginalContent)

	assert.Equal(t, http.StatusBadRequest, s.do(http.MethodPost, "/analyze-batch", `{"items":[]}`).Code)
}

func TestTestAI_Failure(t *testing.T) {
	s := newTestServer(t, "http://unused")

	rec := s.do(http.MethodGet, "/test-ai", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	var got map[string]any
	decodeBody(t, rec, &got)
	assert.Equal(t, false, got["success"])
	assert.Equal(t, "AI service test failed", got["details"])
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, "http://unused")

	rec := s.do(http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var got map[string]any
	decodeBody(t, rec, &got)
	assert.Equal(t, "ok", got["status"])
	assert.Equal(t, "TruthLens AI Server", got["service"])
}

func TestTranslate(t *testing.T) {
	status := http.StatusOK
	g := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(`{"data":{"translations":[{"translatedText":"hola","detectedSourceLanguage":"en"}]}}`))
	}))
	defer g.Close()
	s := newTestServer(t, g.URL)

	rec := s.do(http.MethodPost, "/translate", `{"text":"hello","targetLanguage":"es"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{"success":true,"translatedText":"hola","detectedLanguage":"en","originalText":"hello"}`, rec.Body.String())

	rec = s.do(http.MethodPost, "/translate", `{"text":"hello","targetLanguage":"??"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodPost, "/translate", `{"text":"","targetLanguage":"es"}`)
	assert.JSONEq(t, `{"error":"Text is required"}`, rec.Body.String())

	status = http.StatusInternalServerError
	rec = s.do(http.MethodPost, "/translate", `{"text":"hello","targetLanguage":"es"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	var got map[string]string
	decodeBody(t, rec, &got)
	assert.Equal(t, "Translation failed", got["error"])
	assert.NotEmpty(t, got["details"])
}

func TestSpeechAndVisionValidation(t *testing.T) {
	s := newTestServer(t, "http://unused")

	rec := s.do(http.MethodPost, "/speech-to-text", `{}`)
	assert.JSONEq(t, `{"error":"Audio data is required"}`, rec.Body.String())

	rec = s.do(http.MethodPost, "/vision-ocr", `{}`)
	assert.JSONEq(t, `{"error":"Image data is required"}`, rec.Body.String())
}

func TestGenerateAndGetVideo(t *testing.T) {
	s := newTestServer(t, "http://unused")

	rec := s.do(http.MethodPost, "/generate-video", `{
		"storyPrompt":{"scenario":"s","characters":["a"],"timeline":"t","motivations":"m","consequences":"c","prevention":"p"},
		"options":{"template":"news"}
	}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var got struct {
		VideoResult struct {
			VideoID  string `json:"videoId"`
			Duration int    `json:"duration"`
			Status   string `json:"status"`
			Progress int    `json:"progress"`
		} `json:"videoResult"`
	}
	decodeBody(t, rec, &got)
	assert.Equal(t, 90, got.VideoResult.Duration)
	assert.Equal(t, "completed", got.VideoResult.Status)
	assert.Equal(t, 100, got.VideoResult.Progress)

	rec = s.do(http.MethodGet, "/video/"+got.VideoResult.VideoID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"generatedBy":"truthlens-ai"`)

	rec = s.do(http.MethodGet, "/video/video_1719990000000_abcdef123456", "")
	assert.JSONEq(t, `{"error":"Video not found"}`, rec.Body.String())

	rec = s.do(http.MethodPost, "/generate-video", `{"options":{}}`)
	assert.JSONEq(t, `{"error":"Story prompt is required"}`, rec.Body.String())
}

func TestVideoTemplates(t *testing.T) {
	s := newTestServer(t, "http://unused")

	var got struct {
		Success bool             `json:"success"`
		Data    []map[string]any `json:"data"`
	}
	decodeBody(t, s.do(http.MethodGet, "/video-templates", ""), &got)
	assert.True(t, got.Success)
	assert.Len(t, got.Data, 4)
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t, "http://unused")
	s.do(http.MethodGet, "/analyses", "")

	rec := s.do(http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var got map[string]any
	decodeBody(t, rec, &got)
	assert.EqualValues(t, 2, got["requests_total"])
}
