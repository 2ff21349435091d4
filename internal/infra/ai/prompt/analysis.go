package prompt

import (
	"fmt"
	"strings"
)

// Analysis builds the credibility-analysis prompt. The schema is spelled out
// inline because the model output is parsed leniently, not via a JSON mode.
func Analysis(content, contextHint string) string {
	var b strings.Builder
	b.WriteString(`
You are TruthLens AI, an advanced misinformation detection system for Indian content. Analyze the following content for misinformation, bias, and credibility issues.

`)
	fmt.Fprintf(&b, "Content to analyze: %q\n", content)
	if contextHint != "" {
		fmt.Fprintf(&b, "Context: %s\n", contextHint)
	}
	b.WriteString(`
Provide a comprehensive analysis in JSON format with the following structure:
{
  "credibilityScore": number (0-100),
  "riskLevel": "low" | "medium" | "high" | "critical",
  "issues": [
    {
      "type": "factual_error" | "bias" | "misleading_context" | "false_claim" | "manipulated_media" | "conspiracy_theory" | "hate_speech" | "spam",
      "severity": "low" | "medium" | "high" | "critical",
      "description": "detailed explanation",
      "confidence": number (0-100)
    }
  ],
  "summary": "brief summary of findings",
  "recommendations": ["actionable recommendations"],
  "sources": [
    {
      "url": "fact-check or authoritative source",
      "credibility": number (0-100),
      "domain": "domain name"
    }
  ],
  "attackerProfile": {
    "intent": "what the attacker/misinformer intended to achieve",
    "motivation": "financial, political, ideological, chaos, etc.",
    "methodology": "how they spread the misinformation",
    "targetAudience": "who they were targeting"
  }
}

Focus on Indian context and current affairs. Be thorough but concise. Only return valid JSON.`)
	return b.String()
}
