package questions

import (
	"fmt"

	"github.com/kalambet/qgen/internal/taxonomy"
)

// Select returns the five numbered fallback questions for a role, skills
// string and level, using the default bank.
func Select(role, skills, level string, category taxonomy.Category) []string {
	return defaultBank.Select(role, skills, level, category)
}

// Select returns the five numbered fallback questions from b. It never
// fails: unknown categories use the general group and unknown levels use
// the Mid-Level row.
func (b *Bank) Select(role, skills, level string, category taxonomy.Category) []string {
	g := b.GroupOf(category)
	return number(g.Levels[taxonomy.ResolveLevel(level)], values(role, skills, level))
}

func number(ts []Template, v Values) []string {
	out := make([]string, len(ts))
	for i, t := range ts {
		out[i] = fmt.Sprintf("%d. %s", i+1, t.Expand(v))
	}
	return out
}
