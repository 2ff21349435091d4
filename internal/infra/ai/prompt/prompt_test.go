package prompt

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bryanwahyu/truthlens/internal/domain/analysis"
)

func TestAnalysis_EmbedsContentAndContext(t *testing.T) {
	p := Analysis(`He said "vote twice"`, "WhatsApp forward")

	assert.Contains(t, p, `Content to analyze: "He said \"vote twice\""`)
	assert.Contains(t, p, "Context: WhatsApp forward")
	assert.Contains(t, p, `"credibilityScore"`)
	assert.Contains(t, p, "Only return valid JSON.")
}

func TestAnalysis_OmitsEmptyContext(t *testing.T) {
	assert.NotContains(t, Analysis("x", ""), "Context:")
}

func TestStory_ListsIssueDescriptions(t *testing.T) {
	res := &analysis.Result{
		Summary:   "looks forwarded",
		RiskLevel: analysis.RiskHigh,
		Issues: []analysis.Issue{
			{Description: "first"},
			{Description: "second"},
		},
		AttackerProfile: &analysis.AttackerProfile{Motivation: "clicks"},
	}
	p := Story(res, "orig")

	assert.Contains(t, p, "Issues Found: first, second")
	assert.Contains(t, p, "Risk Level: high")
	assert.Contains(t, p, `"motivation":"clicks"`)
}

func TestReport_EmbedsBothDocuments(t *testing.T) {
	p := Report(&analysis.Result{CredibilityScore: 12}, &analysis.StoryPrompt{Scenario: "rumour mill"})
	assert.Contains(t, p, `"credibilityScore":12`)
	assert.Contains(t, p, `"scenario":"rumour mill"`)
}
