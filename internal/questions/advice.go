package questions

import (
	"strings"

	"github.com/kalambet/qgen/internal/taxonomy"
)

// Advice returns the advice footer for a level from the default bank.
func Advice(level string) string {
	return defaultBank.Advice(level)
}

// Advice renders the advice block for level. Unknown labels get the
// Lead/Principal block.
func (b *Bank) Advice(level string) string {
	l, ok := taxonomy.ParseLevel(level)
	if !ok {
		l = taxonomy.LevelLead
	}
	a := b.AdviceTable[l]

	var sb strings.Builder
	sb.WriteString("💡 ")
	sb.WriteString(a.Title)
	for _, tip := range a.Tips {
		sb.WriteString("\n• ")
		sb.WriteString(tip)
	}
	return sb.String()
}
