package analysis

import (
	"fmt"
	"regexp"
	"strings"

	domain "github.com/bryanwahyu/truthlens/internal/domain/analysis"
)

var (
	emotionalWords = regexp.MustCompile(`(?i)urgent|shocking|breaking|must|share|important|warning`)
	shouting       = regexp.MustCompile(`[A-Z]{5,}`)
)

const (
	baseScore     = 75
	minScore      = 30
	maxScore      = 90
	briefLength   = 50
	highRiskBelow = 40
	lowRiskFrom   = 60
)

// Synthesize builds a pattern-only result from surface features of content.
// It does no I/O, and the same text always yields the same result.
func Synthesize(content string) *domain.Result {
	score := baseScore
	var issues []domain.Issue

	if emotionalWords.MatchString(content) {
		score -= 15
		issues = append(issues, domain.Issue{
			Type:        "emotional_language",
			Severity:    domain.RiskMedium,
			Description: "Content uses emotionally charged language that may indicate bias",
			Confidence:  70,
		})
	}
	if shouting.MatchString(content) {
		score -= 10
		issues = append(issues, domain.Issue{
			Type:        "formatting_concerns",
			Severity:    domain.RiskLow,
			Description: "Excessive use of capital letters detected",
			Confidence:  60,
		})
	}
	if len([]rune(content)) < briefLength {
		score -= 5
		issues = append(issues, domain.Issue{
			Type:        "insufficient_context",
			Severity:    domain.RiskLow,
			Description: "Content is very brief, lacks context for proper verification",
			Confidence:  80,
		})
	}

	// risk is bucketed before clamping
	risk := fallbackRisk(score)

	if len(issues) == 0 {
		issues = append(issues, unavailableIssue())
	}

	plural := "s"
	if len(issues) == 1 {
		plural = ""
	}

	return &domain.Result{
		CredibilityScore: clamp(score, minScore, maxScore),
		RiskLevel:        risk,
		Issues:           issues,
		Summary: fmt.Sprintf("Content analysis completed with pattern recognition. %d potential issue%s identified. Manual verification recommended.",
			len(issues), plural),
		Recommendations: []string{
			"Cross-check information with multiple reliable sources",
			"Verify through official fact-checking websites",
			"Look for corroborating evidence from authoritative sources",
			"Check the original source and publication date",
		},
		Sources: []domain.Source{
			{URL: "https://factchecker.in", Credibility: 85, Domain: "factchecker.in"},
			{URL: "https://factcheck.org", Credibility: 90, Domain: "factcheck.org"},
		},
		AttackerProfile: &domain.AttackerProfile{
			Intent:         "Requires investigation - pattern analysis suggests potential information spreading",
			Motivation:     "Unknown - could be engagement, misinformation, or legitimate sharing",
			Methodology:    "Social media or messaging platform distribution",
			TargetAudience: "General public or specific communities",
		},
	}
}

// fallbackRisk never yields critical. The model path may.
func fallbackRisk(score int) domain.RiskLevel {
	switch {
	case score < highRiskBelow:
		return domain.RiskHigh
	case score < lowRiskFrom:
		return domain.RiskMedium
	default:
		return domain.RiskLow
	}
}

func unavailableIssue() domain.Issue {
	return domain.Issue{
		Type:        "analysis_unavailable",
		Severity:    domain.RiskLow,
		Description: "Full AI analysis temporarily unavailable, basic pattern analysis applied",
		Confidence:  50,
	}
}

// FallbackStory is the canned narrative used when story generation fails.
func FallbackStory(res *domain.Result) *domain.StoryPrompt {
	motivation := "Engagement or attention-seeking"
	if res != nil && res.AttackerProfile != nil && res.AttackerProfile.Motivation != "" {
		motivation = res.AttackerProfile.Motivation
	}
	return &domain.StoryPrompt{
		Scenario:     "A piece of content spreads rapidly across WhatsApp groups and social media, causing confusion before fact-checkers can respond.",
		Characters:   []string{"Concerned citizen", "Content creator", "Community members", "Fact-checkers"},
		Timeline:     "Content spreads within hours through social networks before verification efforts can catch up.",
		Motivations:  motivation,
		Consequences: "Public confusion, resource misallocation, and potential harm to community trust.",
		Prevention:   "Always verify through official sources, check multiple reliable websites, and think before sharing.",
	}
}

// FallbackReport renders the Markdown report from the analysis and story.
func FallbackReport(res *domain.Result, story *domain.StoryPrompt) string {
	risk := strings.ToUpper(string(res.RiskLevel))

	types := make([]string, 0, len(res.Issues))
	for _, is := range res.Issues {
		types = append(types, is.Type)
	}
	audience := "General public"
	if res.AttackerProfile != nil && res.AttackerProfile.TargetAudience != "" {
		audience = res.AttackerProfile.TargetAudience
	}

	var b strings.Builder
	b.WriteString("# TruthLens Misinformation Analysis Report\n\n")

	b.WriteString("## Executive Summary\n")
	fmt.Fprintf(&b, "Content analysis completed with credibility score: %d/100\n", res.CredibilityScore)
	fmt.Fprintf(&b, "Risk Level: %s\n\n", risk)

	b.WriteString("## Threat Assessment\n")
	fmt.Fprintf(&b, "- **Risk Level:** %s\n", risk)
	fmt.Fprintf(&b, "- **Issues Identified:** %d\n", len(res.Issues))
	fmt.Fprintf(&b, "- **Primary Concerns:** %s\n\n", strings.Join(types, ", "))

	b.WriteString("## Technical Analysis\n")
	for _, is := range res.Issues {
		fmt.Fprintf(&b, "- **%s** (%s severity, %d%% confidence): %s\n", is.Type, is.Severity, is.Confidence, is.Description)
	}
	b.WriteString("\n")

	b.WriteString("## Social Impact Assessment\n")
	fmt.Fprintf(&b, "- **Target Audience:** %s\n", audience)
	fmt.Fprintf(&b, "- **Potential Spread:** %s\n", story.Timeline)
	fmt.Fprintf(&b, "- **Consequences:** %s\n\n", story.Consequences)

	b.WriteString("## Mitigation Strategies\n")
	for _, rec := range res.Recommendations {
		fmt.Fprintf(&b, "- %s\n", rec)
	}
	b.WriteString("\n")

	b.WriteString("## Educational Narrative\n")
	fmt.Fprintf(&b, "**Scenario:** %s\n", story.Scenario)
	fmt.Fprintf(&b, "**Prevention Methods:** %s\n\n", story.Prevention)

	b.WriteString("## Conclusion\n")
	b.WriteString(res.Summary)
	b.WriteString("\n\n---\n*Generated by TruthLens AI - Advanced Misinformation Detection System*\n")
	return b.String()
}

// Normalize keeps a model-produced result inside the documented ranges. The
// risk level is only replaced when the model sent something unusable.
func Normalize(res *domain.Result) {
	res.CredibilityScore = clamp(res.CredibilityScore, 0, 100)
	if !res.RiskLevel.Valid() {
		res.RiskLevel = fallbackRisk(res.CredibilityScore)
	}
	if len(res.Issues) == 0 {
		res.Issues = []domain.Issue{unavailableIssue()}
	}
	for i := range res.Issues {
		res.Issues[i].Confidence = clamp(res.Issues[i].Confidence, 0, 100)
		if !res.Issues[i].Severity.Valid() {
			res.Issues[i].Severity = domain.RiskLow
		}
	}
	if res.Recommendations == nil {
		res.Recommendations = []string{}
	}
	if res.Sources == nil {
		res.Sources = []domain.Source{}
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
