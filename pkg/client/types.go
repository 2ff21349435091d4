package client

import (
	"encoding/json"
	"time"
)

// Issue is one finding inside an AnalysisResult.
type Issue struct {
	Type        string `json:"type"`
	Severity    string `json:"severity"`
	Description string `json:"description"`
	Confidence  int    `json:"confidence"`
}

type Source struct {
	URL         string `json:"url"`
	Credibility int    `json:"credibility"`
	Domain      string `json:"domain"`
}

type AttackerProfile struct {
	Intent         string `json:"intent"`
	Motivation     string `json:"motivation"`
	Methodology    string `json:"methodology"`
	TargetAudience string `json:"targetAudience"`
}

// AnalysisResult is the credibility assessment of one submission.
type AnalysisResult struct {
	CredibilityScore int              `json:"credibilityScore"`
	RiskLevel        string           `json:"riskLevel"`
	Issues           []Issue          `json:"issues"`
	Summary          string           `json:"summary"`
	Recommendations  []string         `json:"recommendations"`
	Sources          []Source         `json:"sources"`
	AttackerProfile  *AttackerProfile `json:"attackerProfile,omitempty"`
}

type StoryPrompt struct {
	Scenario     string   `json:"scenario"`
	Characters   []string `json:"characters"`
	Timeline     string   `json:"timeline"`
	Motivations  string   `json:"motivations"`
	Consequences string   `json:"consequences"`
	Prevention   string   `json:"prevention"`
}

// AnalyzeRequest is the body for POST /analyze and one batch item.
type AnalyzeRequest struct {
	Content     string `json:"content"`
	ContentType string `json:"contentType"`
	Context     string `json:"context,omitempty"`
}

// AnalyzeResponse is the response from POST /analyze. Degraded is true when
// the server substituted fallback content for at least one AI step; the
// step names are in Fallbacks.
type AnalyzeResponse struct {
	Success        bool           `json:"success"`
	AnalysisID     string         `json:"analysisId"`
	Analysis       AnalysisResult `json:"analysis"`
	StoryPrompt    StoryPrompt    `json:"storyPrompt"`
	DetailedReport string         `json:"detailedReport"`
	Degraded       bool           `json:"degraded"`
	Fallbacks      []string       `json:"fallbacks"`
}

// AnalysisRecord is a persisted analysis as returned by GET /analysis/{id}.
type AnalysisRecord struct {
	AnalysisResult
	StoryPrompt     StoryPrompt `json:"storyPrompt"`
	DetailedReport  string      `json:"detailedReport"`
	OriginalContent string      `json:"originalContent"`
	ContentType     string      `json:"contentType"`
	Timestamp       time.Time   `json:"timestamp"`
	ID              string      `json:"id"`
	Fallbacks       []string    `json:"fallbacks,omitempty"`
}

// BatchItem is one entry of POST /analyze-batch results; Error is set when
// the item was rejected.
type BatchItem struct {
	AnalysisID      string          `json:"analysisId,omitempty"`
	Analysis        *AnalysisResult `json:"analysis,omitempty"`
	StoryPrompt     *StoryPrompt    `json:"storyPrompt,omitempty"`
	OriginalContent string          `json:"originalContent"`
	Degraded        bool            `json:"degraded,omitempty"`
	Fallbacks       []string        `json:"fallbacks,omitempty"`
	Error           string          `json:"error,omitempty"`
}

type Translation struct {
	TranslatedText   string `json:"translatedText"`
	DetectedLanguage string `json:"detectedLanguage"`
	OriginalText     string `json:"originalText"`
}

type Detection struct {
	Language   string  `json:"language"`
	Confidence float64 `json:"confidence"`
}

// VideoOptions are all optional; the server fills template defaults.
type VideoOptions struct {
	Duration         int    `json:"duration,omitempty"`
	Quality          string `json:"quality,omitempty"`
	Style            string `json:"style,omitempty"`
	IncludeSubtitles *bool  `json:"includeSubtitles,omitempty"`
	Language         string `json:"language,omitempty"`
	Template         string `json:"template,omitempty"`
}

type VideoResult struct {
	VideoID      string `json:"videoId"`
	VideoURL     string `json:"videoUrl"`
	ThumbnailURL string `json:"thumbnailUrl"`
	Duration     int    `json:"duration"`
	Size         int64  `json:"size"`
	Status       string `json:"status"`
	Progress     int    `json:"progress"`
	Error        string `json:"error,omitempty"`
}

type VideoRecord struct {
	VideoResult
	StoryPrompt StoryPrompt  `json:"storyPrompt"`
	Options     VideoOptions `json:"options"`
	Timestamp   time.Time    `json:"timestamp"`
	GeneratedBy string       `json:"generatedBy"`
	ScriptURL   string       `json:"scriptUrl,omitempty"`
}

type Health struct {
	Status           string          `json:"status"`
	Service          string          `json:"service"`
	APIKeyConfigured bool            `json:"apiKeyConfigured"`
	Provider         string          `json:"provider,omitempty"`
	Timestamp        time.Time       `json:"timestamp"`
	Checks           json.RawMessage `json:"checks,omitempty"`
}
