package taxonomy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryOf_Known(t *testing.T) {
	cases := map[string]Category{
		"Software Engineer":               CategorySoftwareDev,
		"Web Developer":                   CategoryFrontend,
		"Deep Learning Engineer":          CategoryMLEngineer,
		"Ethical Hacker":                  CategoryPentesting,
		"Site Reliability Engineer (SRE)": CategorySRE,
		"Database Administrator (DBA)":    CategoryDatabase,
		"Robotics Software Engineer":      CategoryRobotics,
	}
	for role, want := range cases {
		assert.Equal(t, want, CategoryOf(role), role)
	}
}

func TestCategoryOf_UnknownIsDefault(t *testing.T) {
	for _, role := range []string{"", "Chef", "software engineer", " Software Engineer", "Astronaut"} {
		assert.Equal(t, DefaultCategory, CategoryOf(role), "role %q", role)
	}
	assert.Equal(t, "General Technology", DisplayNameOf(DefaultCategory))
}

func TestDisplayNameOf(t *testing.T) {
	assert.Equal(t, "Software Development", DisplayNameOf(CategorySoftwareDev))
	assert.Equal(t, "DevOps & Cloud", DisplayNameOf(CategoryDevOps))
	assert.Equal(t, "Database Administration", DisplayNameOf(CategoryDatabase))

	// Categories that exist but have no display name of their own.
	for _, c := range []Category{CategoryCloud, CategorySRE, CategoryMobile, CategoryAIEngineer, "made_up"} {
		assert.Equal(t, "General Technology", DisplayNameOf(c), string(c))
	}
}

func TestRoles_EveryLabelHasOneCategory(t *testing.T) {
	all := Roles()
	require.Len(t, all, 40)

	seen := make(map[string]bool)
	for _, r := range all {
		assert.False(t, seen[r.Label], "duplicate label %q", r.Label)
		seen[r.Label] = true
		assert.Equal(t, r.Category, CategoryOf(r.Label))
		assert.NotEqual(t, DefaultCategory, r.Category)
	}
}

func TestRoles_ReturnsCopy(t *testing.T) {
	a := Roles()
	a[0].Label = "mutated"
	assert.Equal(t, "Software Engineer", Roles()[0].Label)
}

func TestProfileOf_Known(t *testing.T) {
	p := ProfileOf("Senior")
	assert.Equal(t, LevelSenior, p.Level)
	assert.Equal(t, DepthAdvanced, p.Depth)
	assert.Equal(t, "5-8+ years", p.Experience)
	assert.Equal(t, []string{"architecture", "mentoring", "system design", "technical leadership", "best practices"}, p.Focus)

	assert.Equal(t, DepthBasic, ProfileOf("Entry/Junior").Depth)
	assert.Equal(t, DepthExpert, ProfileOf("Lead/Principal").Depth)
}

func TestProfileOf_UnknownDegradesToMid(t *testing.T) {
	mid := ProfileOf("Mid-Level")
	for _, label := range []string{"", "senior", "Principal", "Mid Level", "Entry / Junior", "staff"} {
		assert.Equal(t, mid, ProfileOf(label), "label %q", label)
	}
}

func TestProfileOf_FocusIsCopied(t *testing.T) {
	p := ProfileOf("Mid-Level")
	p.Focus[0] = "mutated"
	assert.Equal(t, "practical application", ProfileOf("Mid-Level").Focus[0])
}

func TestLevels_StrictlyOrdered(t *testing.T) {
	ls := Levels()
	require.Equal(t, []Level{LevelEntry, LevelMid, LevelSenior, LevelLead}, ls)
	for i, l := range ls {
		assert.Equal(t, i, Rank(l))
	}
	assert.Equal(t, -1, Rank("Staff"))
}

func TestParseLevel(t *testing.T) {
	l, ok := ParseLevel("Lead/Principal")
	assert.True(t, ok)
	assert.Equal(t, LevelLead, l)

	_, ok = ParseLevel("lead/principal")
	assert.False(t, ok)
	assert.Equal(t, LevelMid, ResolveLevel("lead/principal"))
}
