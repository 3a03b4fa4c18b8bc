// Package questions implements the rule-based question selectors. All of
// the question text lives in a YAML bank; the default bank is embedded in
// the binary and parsed once at init.
package questions

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/kalambet/qgen/internal/taxonomy"
)

const (
	// MainCount is the number of questions in a main question set.
	MainCount = 5
	// FollowupCount is the number of questions in a follow-up set.
	FollowupCount = 3
)

//go:embed bank.yaml
var defaultBankYAML []byte

// Group is a question-template group: a set of categories sharing one
// table of per-level templates.
type Group struct {
	Name       string                        `yaml:"name"`
	Categories []taxonomy.Category           `yaml:"categories"`
	Levels     map[taxonomy.Level][]Template `yaml:"levels"`
}

// FollowupCell is the entry for one (type, level) pair.
type FollowupCell struct {
	Prompt    Template   `yaml:"prompt"`
	Questions []Template `yaml:"questions"`
}

// AdviceBlock is the interview advice shown under a fallback question set.
type AdviceBlock struct {
	Title string   `yaml:"title"`
	Tips  []string `yaml:"tips"`
}

// Bank holds every question table. A loaded Bank is read-only and safe for
// concurrent use.
type Bank struct {
	Groups      []Group                                          `yaml:"groups"`
	General     Group                                            `yaml:"general"`
	Followups   map[QuestionType]map[taxonomy.Level]FollowupCell `yaml:"followups"`
	Unsupported string                                           `yaml:"unsupported_type"`
	AdviceTable map[taxonomy.Level]AdviceBlock                   `yaml:"advice"`
}

// Load parses and validates a YAML question bank.
func Load(data []byte) (*Bank, error) {
	var b Bank
	if err := yaml.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("parsing question bank: %w", err)
	}
	if err := b.validate(); err != nil {
		return nil, fmt.Errorf("invalid question bank: %w", err)
	}
	return &b, nil
}

var defaultBank = func() *Bank {
	b, err := Load(defaultBankYAML)
	if err != nil {
		panic(err)
	}
	return b
}()

// Default returns the embedded question bank.
func Default() *Bank { return defaultBank }

func (b *Bank) validate() error {
	if len(b.Groups) == 0 {
		return fmt.Errorf("no groups")
	}
	for _, g := range b.Groups {
		if len(g.Categories) == 0 {
			return fmt.Errorf("group %q: no categories", g.Name)
		}
		if err := validateLevels(g.Name, g.Levels); err != nil {
			return err
		}
	}
	if err := validateLevels("general", b.General.Levels); err != nil {
		return err
	}

	for _, qt := range QuestionTypes() {
		row, ok := b.Followups[qt]
		if !ok {
			return fmt.Errorf("followups: missing type %q", qt)
		}
		for _, l := range taxonomy.Levels() {
			cell, ok := row[l]
			if !ok {
				return fmt.Errorf("followups %s: missing level %q", qt, l)
			}
			if err := cell.Prompt.Validate(); err != nil {
				return fmt.Errorf("followups %s/%s prompt: %w", qt, l, err)
			}
			if len(cell.Questions) != FollowupCount {
				return fmt.Errorf("followups %s/%s: want %d questions, got %d", qt, l, FollowupCount, len(cell.Questions))
			}
			for _, t := range cell.Questions {
				if err := t.Validate(); err != nil {
					return fmt.Errorf("followups %s/%s: %w", qt, l, err)
				}
			}
		}
	}
	for qt := range b.Followups {
		if !qt.Valid() {
			return fmt.Errorf("followups: unknown type %q", qt)
		}
	}
	if b.Unsupported == "" {
		return fmt.Errorf("unsupported_type: empty")
	}

	for _, l := range taxonomy.Levels() {
		a, ok := b.AdviceTable[l]
		if !ok || a.Title == "" || len(a.Tips) == 0 {
			return fmt.Errorf("advice: missing level %q", l)
		}
	}
	return nil
}

func validateLevels(group string, levels map[taxonomy.Level][]Template) error {
	for _, l := range taxonomy.Levels() {
		ts, ok := levels[l]
		if !ok {
			return fmt.Errorf("group %q: missing level %q", group, l)
		}
		if len(ts) != MainCount {
			return fmt.Errorf("group %q/%s: want %d questions, got %d", group, l, MainCount, len(ts))
		}
		for _, t := range ts {
			if err := t.Validate(); err != nil {
				return fmt.Errorf("group %q/%s: %w", group, l, err)
			}
		}
	}
	for l := range levels {
		if taxonomy.Rank(l) < 0 {
			return fmt.Errorf("group %q: unknown level %q", group, l)
		}
	}
	return nil
}

// GroupOf resolves a category to its template group. Groups are checked in
// bank order and the first group listing the category wins; anything else
// gets the general group.
func (b *Bank) GroupOf(c taxonomy.Category) *Group {
	for i := range b.Groups {
		for _, member := range b.Groups[i].Categories {
			if member == c {
				return &b.Groups[i]
			}
		}
	}
	return &b.General
}
