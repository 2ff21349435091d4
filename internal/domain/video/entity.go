package video

import (
	"errors"
	"time"

	"github.com/bryanwahyu/truthlens/internal/domain/analysis"
)

// Status enum
type Status string

const (
	StatusGenerating Status = "generating"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// Quality enum
type Quality string

const (
	QualityLow    Quality = "low"
	QualityMedium Quality = "medium"
	QualityHigh   Quality = "high"
)

// Style enum
type Style string

const (
	StyleEducational Style = "educational"
	StyleDramatic    Style = "dramatic"
	StyleInformative Style = "informative"
)

// Options tunes a video generation request. Nil/zero fields take defaults.
type Options struct {
	Duration         int     `json:"duration,omitempty"`
	Quality          Quality `json:"quality,omitempty"`
	Style            Style   `json:"style,omitempty"`
	IncludeSubtitles *bool   `json:"includeSubtitles,omitempty"`
	Language         string  `json:"language,omitempty"`
	Template         string  `json:"template,omitempty"`
}

// Result is what the client sees for one generated video.
type Result struct {
	VideoID      string `json:"videoId"`
	VideoURL     string `json:"videoUrl"`
	ThumbnailURL string `json:"thumbnailUrl"`
	Duration     int    `json:"duration"`
	Size         int64  `json:"size"`
	Status       Status `json:"status"`
	Progress     int    `json:"progress"`
	Error        string `json:"error,omitempty"`
}

var (
	ErrProgressRange    = errors.New("video: progress out of range")
	ErrTerminalMismatch = errors.New("video: progress 100 requires completed, or failed with error")
	ErrFailedNoReason   = errors.New("video: failed status requires an error message")
)

// Validate checks the status/progress invariants.
func (r Result) Validate() error {
	if r.Progress < 0 || r.Progress > 100 {
		return ErrProgressRange
	}
	if r.Status == StatusFailed && r.Error == "" {
		return ErrFailedNoReason
	}
	if r.Progress == 100 && r.Status != StatusCompleted && r.Status != StatusFailed {
		return ErrTerminalMismatch
	}
	return nil
}

// Record is the persisted form of a generated video.
type Record struct {
	Result
	StoryPrompt analysis.StoryPrompt `json:"storyPrompt"`
	Options     Options              `json:"options"`
	Timestamp   time.Time            `json:"timestamp"`
	GeneratedBy string               `json:"generatedBy"`
	ScriptURL   string               `json:"scriptUrl,omitempty"`
}

// Template is one of the fixed presentation styles.
type Template struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Duration    int    `json:"duration"`
	Style       Style  `json:"style"`
	Thumbnail   string `json:"thumbnail"`
}
