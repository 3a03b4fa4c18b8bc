package questions

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kalambet/qgen/internal/taxonomy"
)

func TestDefaultBankLoads(t *testing.T) {
	b, err := Load(defaultBankYAML)
	require.NoError(t, err)
	require.Len(t, b.Groups, 5)
	assert.Equal(t, "general", b.General.Name)
}

func TestSelect_EveryCell(t *testing.T) {
	categories := []taxonomy.Category{
		taxonomy.CategorySoftwareDev, taxonomy.CategoryFrontend, taxonomy.CategoryBackend, taxonomy.CategoryMobile,
		taxonomy.CategoryDataScience, taxonomy.CategoryMLEngineer, taxonomy.CategoryAIEngineer,
		taxonomy.CategoryCybersecurity, taxonomy.CategoryPentesting, taxonomy.CategorySOC,
		taxonomy.CategoryDevOps, taxonomy.CategoryCloud, taxonomy.CategorySRE,
		taxonomy.CategoryDatabase, taxonomy.CategoryQA, taxonomy.DefaultCategory, "unheard_of",
	}
	levels := append([]string{"", "junior", "Staff"}, "Entry/Junior", "Mid-Level", "Senior", "Lead/Principal")

	for _, c := range categories {
		for _, l := range levels {
			for _, skills := range []string{"", "Go, SQL", " , ,"} {
				qs := Select("Some Role", skills, l, c)
				require.Len(t, qs, MainCount, "%s/%s", c, l)
				for i, q := range qs {
					prefix := fmt.Sprintf("%d. ", i+1)
					assert.True(t, strings.HasPrefix(q, prefix), "%q", q)
					assert.Greater(t, len(q), len(prefix))
					assert.NotContains(t, q, "{")
				}
			}
		}
	}
}

func TestSelect_SoftwareEntryInterpolatesPrimarySkill(t *testing.T) {
	qs := Select("Software Engineer", "Python, SQL", "Entry/Junior", taxonomy.CategorySoftwareDev)
	require.Len(t, qs, 5)
	assert.Equal(t, "1. Explain the difference between Python and procedural programming.", qs[0])
	assert.Equal(t, "5. How do you approach learning a new programming language or framework?", qs[4])
}

func TestSelect_SkillPlaceholders(t *testing.T) {
	qs := Select("Software Engineer", "", "Entry/Junior", taxonomy.CategorySoftwareDev)
	assert.Equal(t, "1. Explain the difference between object-oriented and procedural programming.", qs[0])

	qs = Select("Backend Developer", "  ", "Mid-Level", taxonomy.CategoryBackend)
	assert.Equal(t, "1. Design a REST API for a typical application and explain your choices.", qs[0])

	qs = Select("Chef", "", "Entry/Junior", taxonomy.DefaultCategory)
	assert.Equal(t, "1. What attracts you to this Chef position?", qs[0])
	assert.Equal(t, "3. What projects have you completed using relevant skills?", qs[2])

	qs = Select("Chef", "", "Mid-Level", taxonomy.DefaultCategory)
	assert.Equal(t, "1. Describe a challenging project where you used key skills.", qs[0])
}

func TestSelect_DataSeniorWithoutSkills(t *testing.T) {
	qs := Select("Data Scientist", "", "Senior", taxonomy.CategoryDataScience)
	require.Len(t, qs, 5)
	assert.Equal(t, "1. Design an end-to-end ML pipeline for a production system.", qs[0])
	assert.Equal(t, "5. What strategies do you use for model explainability and fairness?", qs[4])
}

func TestSelect_UnknownLevelIsMid(t *testing.T) {
	for _, l := range []string{"", "senior", "Principal"} {
		assert.Equal(t,
			Select("DevOps Engineer", "AWS", "Mid-Level", taxonomy.CategoryDevOps),
			Select("DevOps Engineer", "AWS", l, taxonomy.CategoryDevOps), l)
	}
}

func TestSelect_UngroupedCategoryUsesGeneral(t *testing.T) {
	assert.Equal(t,
		Select("QA Engineer / Software Tester", "Selenium", "Senior", taxonomy.DefaultCategory),
		Select("QA Engineer / Software Tester", "Selenium", "Senior", taxonomy.CategoryQA))
}

func TestSelect_Idempotent(t *testing.T) {
	a := Select("Penetration Tester", "Burp, Nmap", "Lead/Principal", taxonomy.CategoryPentesting)
	b := Select("Penetration Tester", "Burp, Nmap", "Lead/Principal", taxonomy.CategoryPentesting)
	assert.Equal(t, a, b)

	a[0] = "mutated"
	assert.NotEqual(t, a[0], Select("Penetration Tester", "Burp, Nmap", "Lead/Principal", taxonomy.CategoryPentesting)[0])
}

func TestGroupOf_FirstMatchWins(t *testing.T) {
	b, err := Load([]byte(bankWithOverlap()))
	require.NoError(t, err)

	assert.Equal(t, "first", b.GroupOf("shared").Name)
	assert.Equal(t, "second", b.GroupOf("only_second").Name)
	assert.Equal(t, "general", b.GroupOf("nowhere").Name)

	qs := b.Select("r", "", "Senior", "shared")
	assert.Equal(t, "1. first Senior 1", qs[0])
}

func TestLoad_Rejects(t *testing.T) {
	base := bankWithOverlap()
	cases := map[string]string{
		"bad yaml":       "groups: [",
		"unknown slot":   strings.Replace(base, "first Senior 1", "first {colour}", 1),
		"skill default":  strings.Replace(base, "first Senior 1", "first {skill}", 1),
		"unknown type":   strings.Replace(base, "  leadership:", "  gossip:", 1),
		"short group":    strings.Replace(base, "      - first Senior 5\n", "", 1),
		"no unsupported": strings.Replace(base, "unsupported_type: nope", "", 1),
		"missing advice": strings.Replace(base, "  Senior: {title: s, tips: [x]}\n", "", 1),
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load([]byte(data))
			assert.Error(t, err)
		})
	}
}

func TestTemplate_ScalarAndMapping(t *testing.T) {
	b := Default()
	tmpl := b.Groups[0].Levels[taxonomy.LevelEntry][0]
	assert.Equal(t, map[string]string{"skill": "object-oriented"}, tmpl.Defaults)
	assert.Equal(t, []string{"skill"}, tmpl.Slots())

	plain := b.Groups[0].Levels[taxonomy.LevelEntry][1]
	assert.Nil(t, plain.Defaults)
	assert.Empty(t, plain.Slots())
}

func TestTemplate_Expand(t *testing.T) {
	tmpl := Template{Text: "{role} uses {skill} at {level} with {skills}", Defaults: map[string]string{"skill": "stuff"}}
	require.NoError(t, tmpl.Validate())
	assert.Equal(t, "Dev uses stuff at Senior with ", tmpl.Expand(Values{Role: "Dev", Level: "Senior"}))
	assert.Equal(t, "Dev uses Go at Senior with Go, C", tmpl.Expand(Values{Role: "Dev", Skill: "Go", Skills: "Go, C", Level: "Senior"}))
}

func TestParseSkills(t *testing.T) {
	assert.Equal(t, []string{"Python", "SQL"}, ParseSkills("Python, SQL"))
	assert.Equal(t, []string{"a", "b"}, ParseSkills(" , a,,  b , "))
	assert.Empty(t, ParseSkills(""))
	assert.Empty(t, ParseSkills("  ,  "))
	assert.Equal(t, "Python", PrimarySkill(" Python ,SQL"))
	assert.Equal(t, "", PrimarySkill(","))
}

func bankWithOverlap() string {
	levels := func(sb *strings.Builder, indent, name string) {
		for _, l := range taxonomy.Levels() {
			fmt.Fprintf(sb, "%s%s:\n", indent, l)
			for i := 1; i <= MainCount; i++ {
				fmt.Fprintf(sb, "%s- %s %s %d\n", indent, name, l, i)
			}
		}
	}

	var sb strings.Builder
	sb.WriteString("groups:\n")
	sb.WriteString("  - name: first\n    categories: [shared, a]\n    levels:\n")
	levels(&sb, "      ", "first")
	sb.WriteString("  - name: second\n    categories: [only_second, shared]\n    levels:\n")
	levels(&sb, "      ", "second")
	sb.WriteString("general:\n  name: general\n  levels:\n")
	levels(&sb, "    ", "general")
	sb.WriteString("followups:\n")
	for _, qt := range QuestionTypes() {
		fmt.Fprintf(&sb, "  %s:\n", qt)
		for _, l := range taxonomy.Levels() {
			fmt.Fprintf(&sb, "    %s:\n      prompt: p {role}\n      questions: [q1, q2, q3]\n", l)
		}
	}
	sb.WriteString("unsupported_type: nope\n")
	sb.WriteString("advice:\n")
	for _, l := range taxonomy.Levels() {
		fmt.Fprintf(&sb, "  %s: {title: %s, tips: [x]}\n", l, adviceTitle(l))
	}
	return sb.String()
}

func adviceTitle(l taxonomy.Level) string {
	if l == taxonomy.LevelSenior {
		return "s"
	}
	return "t"
}
