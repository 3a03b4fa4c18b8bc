package questions

import (
	"github.com/kalambet/qgen/internal/taxonomy"
)

// QuestionType selects a follow-up question table.
type QuestionType string

const (
	TypeBehavioral     QuestionType = "behavioral"
	TypeTechnicalDepth QuestionType = "technical_depth"
	TypeScenario       QuestionType = "scenario"
	TypeLeadership     QuestionType = "leadership"
)

var questionTypes = []QuestionType{TypeBehavioral, TypeTechnicalDepth, TypeScenario, TypeLeadership}

// QuestionTypes returns the supported follow-up types.
func QuestionTypes() []QuestionType {
	out := make([]QuestionType, len(questionTypes))
	copy(out, questionTypes)
	return out
}

// Valid reports whether t is a supported follow-up type.
func (t QuestionType) Valid() bool {
	for _, known := range questionTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Followup returns three numbered follow-up questions from the default bank.
func Followup(role, skills, level string, qt QuestionType) []string {
	return defaultBank.Followup(role, skills, level, qt)
}

// Followup returns the three numbered questions for (qt, level). An
// unsupported type yields a single advisory string instead; callers can
// tell the two apart by length.
func (b *Bank) Followup(role, skills, level string, qt QuestionType) []string {
	cell, ok := b.cell(qt, level)
	if !ok {
		return []string{b.Unsupported}
	}
	return number(cell.Questions, values(role, skills, level))
}

// FollowupPrompt returns the generation prompt for (qt, level) and false
// when qt is unsupported.
func (b *Bank) FollowupPrompt(role, skills, level string, qt QuestionType) (string, bool) {
	cell, ok := b.cell(qt, level)
	if !ok {
		return "", false
	}
	return cell.Prompt.Expand(values(role, skills, level)), true
}

func (b *Bank) cell(qt QuestionType, level string) (FollowupCell, bool) {
	row, ok := b.Followups[qt]
	if !ok {
		return FollowupCell{}, false
	}
	return row[taxonomy.ResolveLevel(level)], true
}

func values(role, skills, level string) Values {
	return Values{
		Role:   role,
		Skill:  PrimarySkill(skills),
		Skills: skills,
		Level:  level,
	}
}
