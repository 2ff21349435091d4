package prompt

import (
	"encoding/json"
	"fmt"

	"github.com/bryanwahyu/truthlens/internal/domain/analysis"
)

// Report builds the long-form report request. The answer is used verbatim.
func Report(res *analysis.Result, story *analysis.StoryPrompt) string {
	a, _ := json.Marshal(res)
	s, _ := json.Marshal(story)
	return fmt.Sprintf(`
Generate a comprehensive misinformation analysis report based on:

Analysis: %s
Story Context: %s

Create a detailed report with:
1. Executive Summary
2. Threat Assessment
3. Technical Analysis
4. Social Impact Assessment
5. Mitigation Strategies
6. Educational Narrative Summary

Make it professional but accessible, suitable for both technical and non-technical stakeholders in India.`, a, s)
}
