package prompt

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/bryanwahyu/truthlens/internal/domain/analysis"
)

// Story builds the educational video story prompt request.
func Story(res *analysis.Result, originalContent string) string {
	profile, _ := json.Marshal(res.AttackerProfile)
	descs := make([]string, 0, len(res.Issues))
	for _, is := range res.Issues {
		descs = append(descs, is.Description)
	}

	return fmt.Sprintf(`
Based on this misinformation analysis, create a compelling short story video prompt for educational purposes:

Original Content: %q
Analysis Summary: %q
Attacker Profile: %s
Risk Level: %s
Issues Found: %s

Create a story prompt for a 2-3 minute educational video that shows:
1. How this misinformation started and spread
2. The attacker's intentions and methods
3. Who was targeted and why
4. The potential consequences
5. How people can protect themselves

Format as JSON:
{
  "scenario": "compelling narrative setup",
  "characters": ["protagonist", "antagonist", "victims", "fact-checkers"],
  "timeline": "how events unfolded chronologically",
  "motivations": "why the attacker did this",
  "consequences": "real-world impact shown",
  "prevention": "how viewers can spot and stop similar misinformation"
}

Make it engaging but educational, suitable for Indian audiences. Only return valid JSON.`,
		originalContent, res.Summary, profile, res.RiskLevel, strings.Join(descs, ", "))
}
