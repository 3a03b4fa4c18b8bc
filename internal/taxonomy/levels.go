package taxonomy

// Level is a seniority tier.
type Level string

// The four levels, from least to most senior.
const (
	LevelEntry  Level = "Entry/Junior"
	LevelMid    Level = "Mid-Level"
	LevelSenior Level = "Senior"
	LevelLead   Level = "Lead/Principal"
)

// DefaultLevel is what unrecognised level labels degrade to.
const DefaultLevel = LevelMid

// Depth describes how deep the questions for a level should go.
type Depth string

const (
	DepthBasic        Depth = "basic"
	DepthIntermediate Depth = "intermediate"
	DepthAdvanced     Depth = "advanced"
	DepthExpert       Depth = "expert"
)

// LevelProfile describes what interviews at a level concentrate on.
type LevelProfile struct {
	Level      Level    `json:"level"`
	Focus      []string `json:"focus"`
	Depth      Depth    `json:"depth"`
	Experience string   `json:"experience"`
}

var levels = []Level{LevelEntry, LevelMid, LevelSenior, LevelLead}

var profiles = map[Level]LevelProfile{
	LevelEntry: {
		Level:      LevelEntry,
		Focus:      []string{"fundamentals", "basic concepts", "learning ability", "willingness to learn"},
		Depth:      DepthBasic,
		Experience: "0-2 years",
	},
	LevelMid: {
		Level:      LevelMid,
		Focus:      []string{"practical application", "project experience", "problem-solving", "collaboration"},
		Depth:      DepthIntermediate,
		Experience: "2-5 years",
	},
	LevelSenior: {
		Level:      LevelSenior,
		Focus:      []string{"architecture", "mentoring", "system design", "technical leadership", "best practices"},
		Depth:      DepthAdvanced,
		Experience: "5-8+ years",
	},
	LevelLead: {
		Level:      LevelLead,
		Focus:      []string{"strategy", "technical vision", "team leadership", "cross-functional collaboration", "innovation"},
		Depth:      DepthExpert,
		Experience: "8+ years",
	},
}

// Levels returns the known levels in ascending seniority.
func Levels() []Level {
	out := make([]Level, len(levels))
	copy(out, levels)
	return out
}

// ParseLevel reports whether label is one of the four known levels.
// Matching is exact, so case variants are not recognised.
func ParseLevel(label string) (Level, bool) {
	l := Level(label)
	_, ok := profiles[l]
	return l, ok
}

// ResolveLevel maps a label to a known level, degrading to DefaultLevel.
func ResolveLevel(label string) Level {
	if l, ok := ParseLevel(label); ok {
		return l
	}
	return DefaultLevel
}

// ProfileOf returns the profile for a level label. It never fails: any
// unknown label gets the Mid-Level profile. The returned Focus slice is a
// copy and may be modified by the caller.
func ProfileOf(label string) LevelProfile {
	p := profiles[ResolveLevel(label)]
	p.Focus = append([]string(nil), p.Focus...)
	return p
}

// Rank returns the 0-based seniority position of a level, or -1.
func Rank(l Level) int {
	for i, known := range levels {
		if known == l {
			return i
		}
	}
	return -1
}
