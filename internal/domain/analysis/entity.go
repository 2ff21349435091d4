package analysis

import (
	"fmt"
	"time"
)

// ID tipe untuk AnalysisRecord
type ID string

// ContentType enum
type ContentType string

const (
	ContentText  ContentType = "text"
	ContentImage ContentType = "image"
	ContentVideo ContentType = "video"
	ContentAudio ContentType = "audio"
)

// Valid reports whether c is one of the four accepted content types.
func (c ContentType) Valid() bool {
	switch c {
	case ContentText, ContentImage, ContentVideo, ContentAudio:
		return true
	}
	return false
}

// IsMedia is true for image, video and audio submissions.
func (c ContentType) IsMedia() bool {
	return c == ContentImage || c == ContentVideo || c == ContentAudio
}

// MediaHint is the context sent with image, video and audio submissions in
// place of whatever the caller supplied.
func (c ContentType) MediaHint() string {
	return fmt.Sprintf("This is %s content that needs verification for potential manipulation or deepfakes.", c)
}

// RiskLevel enum
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

func (r RiskLevel) Valid() bool {
	switch r {
	case RiskLow, RiskMedium, RiskHigh, RiskCritical:
		return true
	}
	return false
}

// Severity shares the four-level scale of RiskLevel.
type Severity = RiskLevel

// Issue is a single finding. Order inside AnalysisResult.Issues is the
// order the issues were produced in.
type Issue struct {
	Type        string   `json:"type"`
	Severity    Severity `json:"severity"`
	Description string   `json:"description"`
	Confidence  int      `json:"confidence"`
}

// Source is a reference the reader can use to cross-check the content.
type Source struct {
	URL         string `json:"url"`
	Credibility int    `json:"credibility"`
	Domain      string `json:"domain"`
}

// AttackerProfile describes who is likely behind a piece of misinformation.
type AttackerProfile struct {
	Intent         string `json:"intent"`
	Motivation     string `json:"motivation"`
	Methodology    string `json:"methodology"`
	TargetAudience string `json:"targetAudience"`
}

// Result is the credibility assessment of one submission.
// RiskLevel is stored as produced and never recomputed from the score.
type Result struct {
	CredibilityScore int              `json:"credibilityScore"`
	RiskLevel        RiskLevel        `json:"riskLevel"`
	Issues           []Issue          `json:"issues"`
	Summary          string           `json:"summary"`
	Recommendations  []string         `json:"recommendations"`
	Sources          []Source         `json:"sources"`
	AttackerProfile  *AttackerProfile `json:"attackerProfile,omitempty"`
}

// StoryPrompt is the narrative scaffold used for educational videos.
type StoryPrompt struct {
	Scenario     string   `json:"scenario"`
	Characters   []string `json:"characters"`
	Timeline     string   `json:"timeline"`
	Motivations  string   `json:"motivations"`
	Consequences string   `json:"consequences"`
	Prevention   string   `json:"prevention"`
}

// Step names reported when a stage of the pipeline degraded to its fallback.
const (
	StepAnalysis       = "analysis"
	StepStoryPrompt    = "storyPrompt"
	StepDetailedReport = "detailedReport"
)

// Record is what gets persisted per analysis. The Result fields are
// flattened into the top-level object.
type Record struct {
	Result
	StoryPrompt     StoryPrompt `json:"storyPrompt"`
	DetailedReport  string      `json:"detailedReport"`
	OriginalContent string      `json:"originalContent"`
	ContentType     ContentType `json:"contentType"`
	Timestamp       time.Time   `json:"timestamp"`
	ID              ID          `json:"id"`
	Fallbacks       []string    `json:"fallbacks,omitempty"`
}
