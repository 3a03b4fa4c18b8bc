package questions

import (
	"fmt"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// Slot names a template may reference.
const (
	SlotRole   = "role"
	SlotSkill  = "skill"
	SlotSkills = "skills"
	SlotLevel  = "level"
)

var slotPattern = regexp.MustCompile(`\{([a-z_]+)\}`)

var knownSlots = map[string]bool{
	SlotRole:   true,
	SlotSkill:  true,
	SlotSkills: true,
	SlotLevel:  true,
}

// Values fills the slots of a template. Empty values are replaced by the
// template's per-slot default, if it has one.
type Values struct {
	Role   string
	Skill  string
	Skills string
	Level  string
}

func (v Values) lookup(slot string) string {
	switch slot {
	case SlotRole:
		return v.Role
	case SlotSkill:
		return v.Skill
	case SlotSkills:
		return v.Skills
	case SlotLevel:
		return v.Level
	}
	return ""
}

// Template is a question or prompt with named {slot} placeholders.
//
// In YAML a template is either a plain string or a mapping with "text" and
// "defaults" keys.
type Template struct {
	Text     string            `yaml:"text"`
	Defaults map[string]string `yaml:"defaults,omitempty"`
}

// UnmarshalYAML accepts both the scalar and the mapping form.
func (t *Template) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		t.Text = node.Value
		t.Defaults = nil
		return nil
	}
	type plain Template
	var p plain
	if err := node.Decode(&p); err != nil {
		return err
	}
	*t = Template(p)
	return nil
}

// Slots returns the slot names referenced by the template, in order of
// first appearance.
func (t Template) Slots() []string {
	var out []string
	seen := make(map[string]bool)
	for _, m := range slotPattern.FindAllStringSubmatch(t.Text, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			out = append(out, m[1])
		}
	}
	return out
}

// Validate checks that every referenced slot is known, that every default
// belongs to a referenced slot and that {skill} always has a default.
func (t Template) Validate() error {
	if strings.TrimSpace(t.Text) == "" {
		return fmt.Errorf("empty template")
	}
	used := make(map[string]bool)
	for _, s := range t.Slots() {
		if !knownSlots[s] {
			return fmt.Errorf("template %q: unknown slot {%s}", t.Text, s)
		}
		used[s] = true
	}
	for s := range t.Defaults {
		if !used[s] {
			return fmt.Errorf("template %q: default for unused slot %q", t.Text, s)
		}
	}
	if used[SlotSkill] && t.Defaults[SlotSkill] == "" {
		return fmt.Errorf("template %q: {skill} needs a default", t.Text)
	}
	return nil
}

// Expand substitutes v into the template.
func (t Template) Expand(v Values) string {
	return slotPattern.ReplaceAllStringFunc(t.Text, func(m string) string {
		slot := m[1 : len(m)-1]
		if s := v.lookup(slot); s != "" {
			return s
		}
		return t.Defaults[slot]
	})
}
