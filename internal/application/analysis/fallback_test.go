package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/bryanwahyu/truthlens/internal/domain/analysis"
)

func issueTypes(res *domain.Result) []string {
	out := make([]string, 0, len(res.Issues))
	for _, is := range res.Issues {
		out = append(out, is.Type)
	}
	return out
}

func TestSynthesize_ShoutingEmotionalShortText(t *testing.T) {
	res := Synthesize("SHOCKING: share this NOW before they delete it!!")

	assert.Less(t, res.CredibilityScore, 75)
	assert.Equal(t, 45, res.CredibilityScore)
	assert.Equal(t, []string{"emotional_language", "formatting_concerns", "insufficient_context"}, issueTypes(res))
	assert.Contains(t, []domain.RiskLevel{domain.RiskMedium, domain.RiskHigh}, res.RiskLevel)
	assert.Equal(t, "Content analysis completed with pattern recognition. 3 potential issues identified. Manual verification recommended.", res.Summary)
}

func TestSynthesize_BriefText(t *testing.T) {
	res := Synthesize("Ok")

	assert.Equal(t, []string{"insufficient_context"}, issueTypes(res))
	assert.Equal(t, 70, res.CredibilityScore)
	assert.Equal(t, domain.RiskLow, res.RiskLevel)
	assert.Contains(t, res.Summary, "1 potential issue identified")
}

func TestSynthesize_NoHeuristicMatched(t *testing.T) {
	res := Synthesize("The municipal council published its quarterly budget report on the official website yesterday.")

	require.Len(t, res.Issues, 1)
	assert.Equal(t, "analysis_unavailable", res.Issues[0].Type)
	assert.Equal(t, 50, res.Issues[0].Confidence)
	assert.Equal(t, 75, res.CredibilityScore)
	assert.Equal(t, domain.RiskLow, res.RiskLevel)
}

func TestSynthesize_FixedSourcesAndProfile(t *testing.T) {
	res := Synthesize("anything at all")

	require.Len(t, res.Sources, 2)
	assert.Equal(t, "factchecker.in", res.Sources[0].Domain)
	assert.Equal(t, 90, res.Sources[1].Credibility)
	require.NotNil(t, res.AttackerProfile)
	assert.NotEmpty(t, res.AttackerProfile.Intent)
	assert.Len(t, res.Recommendations, 4)
}

func TestSynthesize_IsPure(t *testing.T) {
	in := "URGENT warning for everyone in the building tonight, please read"
	assert.Equal(t, Synthesize(in), Synthesize(in))
}

func TestSynthesize_ScoreAlwaysInRange(t *testing.T) {
	inputs := []string{"", "a", "BREAKING NEWS", "must share IMPORTANT WARNING urgent", "calm long sentence that has nothing special in it whatsoever"}
	for _, in := range inputs {
		res := Synthesize(in)
		assert.GreaterOrEqual(t, res.CredibilityScore, 30, in)
		assert.LessOrEqual(t, res.CredibilityScore, 90, in)
		assert.NotEqual(t, domain.RiskCritical, res.RiskLevel, in)
		assert.NotEmpty(t, res.Issues, in)
	}
}

func TestFallbackRisk(t *testing.T) {
	assert.Equal(t, domain.RiskHigh, fallbackRisk(39))
	assert.Equal(t, domain.RiskMedium, fallbackRisk(40))
	assert.Equal(t, domain.RiskMedium, fallbackRisk(59))
	assert.Equal(t, domain.RiskLow, fallbackRisk(60))
}

func TestFallbackStory_UsesAttackerMotivation(t *testing.T) {
	story := FallbackStory(&domain.Result{AttackerProfile: &domain.AttackerProfile{Motivation: "political gain"}})
	assert.Equal(t, "political gain", story.Motivations)
	assert.Len(t, story.Characters, 4)

	assert.Equal(t, "Engagement or attention-seeking", FallbackStory(&domain.Result{}).Motivations)
}

func TestFallbackReport_RendersAnalysisAndStory(t *testing.T) {
	res := Synthesize("SHOCKING: share this NOW before they delete it!!")
	story := FallbackStory(res)

	report := FallbackReport(res, story)

	assert.Contains(t, report, "# TruthLens Misinformation Analysis Report")
	assert.Contains(t, report, "credibility score: 45/100")
	assert.Contains(t, report, "Risk Level: MEDIUM")
	assert.Contains(t, report, "- **Primary Concerns:** emotional_language, formatting_concerns, insufficient_context")
	assert.Contains(t, report, "- **formatting_concerns** (low severity, 60% confidence): Excessive use of capital letters detected")
	assert.Contains(t, report, "**Scenario:** "+story.Scenario)
	assert.Contains(t, report, "- Check the original source and publication date")
}

func TestNormalize(t *testing.T) {
	res := &domain.Result{
		CredibilityScore: 140,
		RiskLevel:        "extreme",
	}
	Normalize(res)

	assert.Equal(t, 100, res.CredibilityScore)
	assert.Equal(t, domain.RiskLow, res.RiskLevel)
	require.Len(t, res.Issues, 1)
	assert.Equal(t, "analysis_unavailable", res.Issues[0].Type)
	assert.NotNil(t, res.Sources)
	assert.NotNil(t, res.Recommendations)

	critical := &domain.Result{
		CredibilityScore: 12,
		RiskLevel:        domain.RiskCritical,
		Issues:           []domain.Issue{{Type: "fabricated_quote", Severity: domain.RiskCritical, Confidence: 120}},
	}
	Normalize(critical)
	assert.Equal(t, domain.RiskCritical, critical.RiskLevel)
	assert.Equal(t, 100, critical.Issues[0].Confidence)
}
