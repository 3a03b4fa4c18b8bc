package questions

import "strings"

// ParseSkills splits a comma-separated skills string into trimmed,
// non-empty entries, keeping the caller's order.
func ParseSkills(raw string) []string {
	var out []string
	for _, s := range strings.Split(raw, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// PrimarySkill returns the first parsed skill, or "" if there is none.
func PrimarySkill(raw string) string {
	if skills := ParseSkills(raw); len(skills) > 0 {
		return skills[0]
	}
	return ""
}
