package video

import (
	"fmt"
	"strings"

	"github.com/bryanwahyu/truthlens/internal/domain/analysis"
	domain "github.com/bryanwahyu/truthlens/internal/domain/video"
)

var templates = []domain.Template{
	{
		ID:          "educational",
		Name:        "Educational Style",
		Description: "Clean, informative presentation with clear visuals",
		Duration:    120,
		Style:       domain.StyleEducational,
		Thumbnail:   "/templates/educational-thumb.jpg",
	},
	{
		ID:          "dramatic",
		Name:        "Dramatic Style",
		Description: "Engaging narrative with dramatic visuals and music",
		Duration:    150,
		Style:       domain.StyleDramatic,
		Thumbnail:   "/templates/dramatic-thumb.jpg",
	},
	{
		ID:          "news",
		Name:        "News Report Style",
		Description: "Professional news report format with graphics",
		Duration:    90,
		Style:       domain.StyleInformative,
		Thumbnail:   "/templates/news-thumb.jpg",
	},
	{
		ID:          "social",
		Name:        "Social Media Style",
		Description: "Short, engaging format optimized for social platforms",
		Duration:    60,
		Style:       domain.StyleEducational,
		Thumbnail:   "/templates/social-thumb.jpg",
	},
}

// Templates returns a copy of the fixed template list.
func Templates() []domain.Template {
	return append([]domain.Template(nil), templates...)
}

// FindTemplate looks a template up by id.
func FindTemplate(id string) (domain.Template, bool) {
	for _, t := range templates {
		if t.ID == id {
			return t, true
		}
	}
	return domain.Template{}, false
}

// RenderScript lays the story out as a timed Markdown script.
func RenderScript(story *analysis.StoryPrompt, tpl domain.Template) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Video Script: %s\n\n", tpl.Name)

	b.WriteString("## Opening (0-10s)\n")
	b.WriteString(story.Scenario + "\n\n")

	b.WriteString("## Characters Introduction (10-30s)\n")
	for i, c := range story.Characters {
		fmt.Fprintf(&b, "%d. %s\n", i+1, c)
	}
	b.WriteString("\n")

	b.WriteString("## Timeline (30-60s)\n")
	b.WriteString(story.Timeline + "\n\n")

	b.WriteString("## Motivations (60-90s)\n")
	b.WriteString(story.Motivations + "\n\n")

	b.WriteString("## Consequences (90-120s)\n")
	b.WriteString(story.Consequences + "\n\n")

	b.WriteString("## Prevention (120-150s)\n")
	b.WriteString(story.Prevention + "\n\n")

	b.WriteString("## Closing (150-180s)\n")
	b.WriteString("Remember: Always verify information through reliable sources and think before sharing.")
	return b.String()
}
