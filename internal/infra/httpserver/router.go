package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	appanalysis "github.com/bryanwahyu/truthlens/internal/application/analysis"
	appmedia "github.com/bryanwahyu/truthlens/internal/application/media"
	appvideo "github.com/bryanwahyu/truthlens/internal/application/video"
	"github.com/bryanwahyu/truthlens/internal/domain/analysis"
	"github.com/bryanwahyu/truthlens/internal/domain/kv"
	"github.com/bryanwahyu/truthlens/internal/domain/media"
	"github.com/bryanwahyu/truthlens/internal/domain/video"
	"github.com/bryanwahyu/truthlens/internal/middleware"
)

// maxBodyBytes caps request bodies; base64 audio and images dominate.
const maxBodyBytes = 20 << 20

// Deps is everything the router needs, built once in cmd/api.
type Deps struct {
	Analysis *appanalysis.Service
	Media    *appmedia.Service
	Video    *appvideo.Service

	Metrics  *middleware.Metrics
	Limiter  *middleware.RateLimiter
	APIKeys  map[string]string
	Health   middleware.HealthInfo
	Checkers map[string]middleware.HealthChecker

	BasePath string
	Log      *zap.Logger
}

type Router struct {
	analysisSvc *appanalysis.Service
	mediaSvc    *appmedia.Service
	videoSvc    *appvideo.Service
	log         *zap.Logger
}

func NewRouter(d Deps) http.Handler {
	log := d.Log
	if log == nil {
		log = zap.NewNop()
	}
	if d.Metrics == nil {
		d.Metrics = middleware.NewMetrics()
	}
	r := &Router{analysisSvc: d.Analysis, mediaSvc: d.Media, videoSvc: d.Video, log: log}

	mux := chi.NewRouter()
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
		ExposedHeaders: []string{"Content-Length"},
		MaxAge:         600,
	}))
	mux.Use(middleware.Logging(log))
	mux.Use(d.Metrics.Middleware)

	mux.Route(d.BasePath, func(rt chi.Router) {
		rt.Use(middleware.APIKeyAuth(d.APIKeys))
		if d.Limiter != nil {
			rt.Use(middleware.RateLimitMiddleware(d.Limiter))
		}

		rt.Get("/health", middleware.HealthHandler(d.Health, d.Checkers))
		rt.Get("/metrics", d.Metrics.Handler)
		rt.Get("/test-ai", r.handleTestAI)

		rt.Post("/analyze", r.wrap("Analysis failed", r.handleAnalyze))
		rt.Get("/analysis/{id}", r.wrap("Failed to retrieve analysis", r.handleGetAnalysis))
		rt.Get("/analyses", r.wrap("Failed to retrieve analyses", r.handleListAnalyses))
		rt.Post("/analyze-batch", r.wrap("Batch analysis failed", r.handleAnalyzeBatch))

		rt.Post("/speech-to-text", r.wrap("Speech recognition failed", r.handleSpeechToText))
		rt.Post("/vision-ocr", r.wrap("Vision analysis failed", r.handleVisionOCR))
		rt.Post("/translate", r.wrap("Translation failed", r.handleTranslate))
		rt.Post("/detect-language", r.wrap("Language detection failed", r.handleDetectLanguage))

		rt.Post("/generate-video", r.wrap("Video generation failed", r.handleGenerateVideo))
		rt.Get("/video/{id}", r.wrap("Failed to retrieve video", r.handleGetVideo))
		rt.Get("/video-templates", r.wrap("Failed to list templates", r.handleVideoTemplates))
	})

	return mux
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

// notFoundError carries the 404 message for a specific resource.
type notFoundError struct{ msg string }

func (e notFoundError) Error() string { return e.msg }

// wrap maps handler errors to JSON responses. label is the public error
// text for anything unexpected; the cause goes into details.
func (r *Router) wrap(label string, h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		err := h(w, req)
		if err == nil {
			return
		}

		var ve *analysis.ValidationError
		var nf notFoundError
		switch {
		case errors.As(err, &ve):
			middleware.WriteError(w, http.StatusBadRequest, ve.Msg)
		case errors.As(err, &nf):
			middleware.WriteError(w, http.StatusNotFound, nf.msg)
		default:
			r.log.Error(label, zap.String("path", req.URL.Path), zap.Error(err))
			_ = writeJSON(w, http.StatusInternalServerError, map[string]string{
				"error":   label,
				"details": err.Error(),
			})
		}
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}

func decode(w http.ResponseWriter, req *http.Request, v any) error {
	req.Body = http.MaxBytesReader(w, req.Body, maxBodyBytes)
	if err := json.NewDecoder(req.Body).Decode(v); err != nil {
		return analysis.Invalid("Invalid JSON body")
	}
	return nil
}

// GET /test-ai
func (r *Router) handleTestAI(w http.ResponseWriter, req *http.Request) {
	res, err := r.analysisSvc.TestAI(req.Context())
	if err != nil {
		r.log.Error("ai test failed", zap.Error(err))
		_ = writeJSON(w, http.StatusInternalServerError, map[string]any{
			"success": false,
			"error":   err.Error(),
			"details": "AI service test failed",
		})
		return
	}
	_ = writeJSON(w, http.StatusOK, struct {
		Success bool `json:"success"`
		appanalysis.TestAIResult
	}{true, res})
}

// POST /analyze
// Body: {"content": "...", "contentType": "text", "context": "..."}
func (r *Router) handleAnalyze(w http.ResponseWriter, req *http.Request) error {
	var cmd appanalysis.AnalyzeCommand
	if err := decode(w, req, &cmd); err != nil {
		return err
	}
	cmd.Context = middleware.SanitizeString(cmd.Context)

	res, err := r.analysisSvc.Analyze(req.Context(), cmd)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, struct {
		Success bool `json:"success"`
		appanalysis.AnalyzeResult
	}{true, res})
}

// GET /analysis/{id}
func (r *Router) handleGetAnalysis(w http.ResponseWriter, req *http.Request) error {
	id := chi.URLParam(req, "id")
	// malformed ids can't exist in the store
	if middleware.ValidateRecordID(id, appanalysis.IDPrefix) != nil {
		return notFoundError{"Analysis not found"}
	}
	rec, err := r.analysisSvc.Get(req.Context(), analysis.ID(id))
	if errors.Is(err, kv.ErrNotFound) {
		return notFoundError{"Analysis not found"}
	}
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": rec})
}

// GET /analyses
func (r *Router) handleListAnalyses(w http.ResponseWriter, req *http.Request) error {
	list, err := r.analysisSvc.Recent(req.Context())
	if err != nil {
		return err
	}
	if list == nil {
		list = []*analysis.Record{}
	}
	return writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": list})
}

// POST /analyze-batch
// Body: {"items": [{"content": "...", "contentType": "text"}]}
func (r *Router) handleAnalyzeBatch(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		Items []appanalysis.AnalyzeCommand `json:"items"`
	}
	if err := decode(w, req, &body); err != nil {
		return err
	}
	for i := range body.Items {
		body.Items[i].Context = middleware.SanitizeString(body.Items[i].Context)
	}

	results, err := r.analysisSvc.AnalyzeBatch(req.Context(), body.Items)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, map[string]any{"success": true, "results": results})
}

// POST /speech-to-text
// Body: {"audioData": "<base64>", "config": {...}}
func (r *Router) handleSpeechToText(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		AudioData string             `json:"audioData"`
		Config    media.SpeechConfig `json:"config"`
	}
	if err := decode(w, req, &body); err != nil {
		return err
	}

	t, err := r.mediaSvc.SpeechToText(req.Context(), body.AudioData, body.Config)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, map[string]any{
		"success":      true,
		"transcript":   t.Transcript,
		"confidence":   t.Confidence,
		"fullResponse": t.FullResponse,
	})
}

// POST /vision-ocr
// Body: {"imageData": "<base64>", "features": [{"type": "TEXT_DETECTION"}]}
func (r *Router) handleVisionOCR(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		ImageData string          `json:"imageData"`
		Features  []media.Feature `json:"features"`
	}
	if err := decode(w, req, &body); err != nil {
		return err
	}

	data, err := r.mediaSvc.VisionOCR(req.Context(), body.ImageData, body.Features)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": data})
}

// POST /translate
// Body: {"text": "...", "targetLanguage": "hi", "sourceLanguage": "en"}
func (r *Router) handleTranslate(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		Text           string `json:"text"`
		TargetLanguage string `json:"targetLanguage"`
		SourceLanguage string `json:"sourceLanguage"`
	}
	if err := decode(w, req, &body); err != nil {
		return err
	}
	if err := middleware.ValidateLanguageCode(body.TargetLanguage, false); err != nil {
		return analysis.Invalid("Invalid target language")
	}
	if err := middleware.ValidateLanguageCode(body.SourceLanguage, true); err != nil {
		return analysis.Invalid("Invalid source language")
	}

	t, err := r.mediaSvc.Translate(req.Context(), body.Text, body.TargetLanguage, body.SourceLanguage)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, map[string]any{
		"success":          true,
		"translatedText":   t.TranslatedText,
		"detectedLanguage": t.DetectedLanguage,
		"originalText":     t.OriginalText,
	})
}

// POST /detect-language
func (r *Router) handleDetectLanguage(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		Text string `json:"text"`
	}
	if err := decode(w, req, &body); err != nil {
		return err
	}

	d, err := r.mediaSvc.DetectLanguage(req.Context(), body.Text)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"language":   d.Language,
		"confidence": d.Confidence,
	})
}

// POST /generate-video
// Body: {"storyPrompt": {...}, "options": {"template": "news"}}
func (r *Router) handleGenerateVideo(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		StoryPrompt *analysis.StoryPrompt `json:"storyPrompt"`
		Options     video.Options         `json:"options"`
	}
	if err := decode(w, req, &body); err != nil {
		return err
	}

	res, err := r.videoSvc.Generate(req.Context(), appvideo.GenerateCommand{
		StoryPrompt: body.StoryPrompt,
		Options:     body.Options,
	})
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, map[string]any{"success": true, "videoResult": res})
}

// GET /video/{id}
func (r *Router) handleGetVideo(w http.ResponseWriter, req *http.Request) error {
	id := chi.URLParam(req, "id")
	if middleware.ValidateRecordID(id, appvideo.IDPrefix) != nil {
		return notFoundError{"Video not found"}
	}
	rec, err := r.videoSvc.Get(req.Context(), id)
	if errors.Is(err, kv.ErrNotFound) {
		return notFoundError{"Video not found"}
	}
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": rec})
}

// GET /video-templates
func (r *Router) handleVideoTemplates(w http.ResponseWriter, _ *http.Request) error {
	return writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": appvideo.Templates()})
}
