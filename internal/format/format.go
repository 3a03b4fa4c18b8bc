// Package format renders question sets as the plain-text blocks shown to
// users.
package format

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/kalambet/qgen/internal/questions"
	"github.com/kalambet/qgen/internal/taxonomy"
)

const (
	fallbackRule  = 60
	generatedRule = 50
)

// LevelDisplay turns a level label into its heading form: "/" becomes a
// space and every word is title-cased.
func LevelDisplay(level string) string {
	// Casers keep state, so one is built per call.
	return cases.Title(language.English).String(strings.ReplaceAll(level, "/", " "))
}

// Formatter renders fallback responses with the advice of one question
// bank. The zero value uses the embedded default bank.
type Formatter struct {
	Bank *questions.Bank
}

// Fallback renders a rule-based question set with its header and, when
// includeAdvice is set, the level advice footer from the default bank.
func Fallback(qs []string, role, skills, level string, category taxonomy.Category, includeAdvice bool) string {
	return Formatter{}.Fallback(qs, role, skills, level, category, includeAdvice)
}

// Fallback is the bank-aware form of the package-level Fallback.
func (f Formatter) Fallback(qs []string, role, skills, level string, category taxonomy.Category, includeAdvice bool) string {
	var sb strings.Builder
	sb.WriteString("📋 " + LevelDisplay(level) + " Level Interview Questions for " + role + "\n")
	sb.WriteString("🏷️ Category: " + taxonomy.DisplayNameOf(category) + "\n")
	sb.WriteString("💼 Required Skills: " + skills + "\n")
	sb.WriteString(strings.Repeat("=", fallbackRule) + "\n\n")
	sb.WriteString(strings.Join(qs, "\n\n"))
	if includeAdvice {
		b := f.Bank
		if b == nil {
			b = questions.Default()
		}
		sb.WriteString("\n\n")
		sb.WriteString(b.Advice(level))
	}
	return sb.String()
}

// Generated wraps externally generated text in the short header. There is
// no skills line and no advice footer.
func Generated(text, role string, category taxonomy.Category) string {
	var sb strings.Builder
	sb.WriteString("📋 Interview Questions for " + role + "\n")
	sb.WriteString("🏷️ Category: " + taxonomy.DisplayNameOf(category) + "\n")
	sb.WriteString(strings.Repeat("=", generatedRule) + "\n\n")
	sb.WriteString(text)
	return sb.String()
}
