package inference

import (
	"fmt"
	"strings"

	"github.com/kalambet/qgen/internal/taxonomy"
)

// BuildPrompt assembles the question-generation prompt for a role. Level
// details come from the level profile table, so unknown levels get the
// Mid-Level profile while the raw label is still quoted.
func BuildPrompt(role, skills, level string, category taxonomy.Category) string {
	p := taxonomy.ProfileOf(level)

	var sb strings.Builder
	fmt.Fprintf(&sb, "Generate 5 interview questions for a %s position at %s level.\n", role, level)
	fmt.Fprintf(&sb, "Focus areas: %s\n", strings.Join(p.Focus, ", "))
	fmt.Fprintf(&sb, "Required skills: %s\n", skills)
	fmt.Fprintf(&sb, "Experience level: %s\n", p.Experience)
	fmt.Fprintf(&sb, "Questions should test %s knowledge.\n\n", p.Depth)
	sb.WriteString("Format each question clearly with a number.\n")
	fmt.Fprintf(&sb, "Make questions specific to %s role.", taxonomy.DisplayNameOf(category))
	return sb.String()
}
