package analysis

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spigell/cv-analyzer/internal/model"
	"github.com/spigell/cv-analyzer/internal/profile"
)

func TestLocalSummary(t *testing.T) {
	developer := model.Profile{Type: model.ProfileDeveloper, SpecificRole: "Backend Developer"}
	found := []model.Skill{
		{Name: "Go", Category: "programming_languages", Confidence: 0.9},
		{Name: "Python", Category: "programming_languages", Confidence: 0.9},
		{Name: "Communication", Category: "soft_skills", Confidence: 0.3},
	}

	tests := []struct {
		name  string
		text  string
		years int
		want  string
	}{
		{
			name: "summary section",
			text: "Jane Doe\njane@example.com\nSummary\nBackend developer building payment systems in Go.\n" +
				"Led a team of five engineers across two countries. Enjoys mentoring.\nExperience\nAcme Corp 2019 - 2023",
			want: "Backend developer building payment systems in Go. Led a team of five engineers across two countries.",
		},
		{
			name: "prose lines without section",
			text: "Jane Doe\njane.doe@example.com | +1 415 555 0100\n" +
				"Experienced engineer who ships reliable backend services for fintech companies.\nSkills\nGo, Python",
			want: "Experienced engineer who ships reliable backend services for fintech companies.",
		},
		{
			name:  "composed",
			text:  "Jane Doe\nSkills\nGo, Python",
			years: 3,
			want:  "Backend Developer with 3 years of experience. Skills include Go, Python.",
		},
		{
			name:  "composed with one year",
			text:  "Jane Doe",
			years: 1,
			want:  "Backend Developer with 1 year of experience. Skills include Go, Python.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LocalSummary(tt.text, developer, tt.years, found))
		})
	}
}

func TestLocalSummaryTruncates(t *testing.T) {
	long := "Summary\n" + strings.Repeat("Designed and built distributed storage systems for many customers ", 10) + "."

	got := LocalSummary(long, model.Profile{}, 0, nil)

	assert.LessOrEqual(t, len([]rune(got)), summaryMaxRunes+1)
	assert.True(t, strings.HasSuffix(got, "…"))
}

func TestComposeSummaryUsesDefaultRole(t *testing.T) {
	got := composeSummary(model.Profile{Type: model.ProfileSales}, 0, nil)
	assert.Equal(t, profile.DefaultRole(model.ProfileSales)+".", got)
}

func TestLocalPersonality(t *testing.T) {
	got := LocalPersonality("Led the team. Managed budgets and mentored juniors.")

	assert.Equal(t, []model.Trait{
		{Name: "Leadership", Score: 0.7},
		{Name: "Teamwork", Score: 0.4},
	}, got.Traits)
}

func TestLocalPersonalityEmpty(t *testing.T) {
	got := LocalPersonality("Jane Doe")

	assert.NotNil(t, got.Traits)
	assert.Empty(t, got.Traits)
}

func TestLocalPersonalityIgnoresDateWords(t *testing.T) {
	got := LocalPersonality("Acme Corp 2019 - present")
	assert.Empty(t, got.Traits)
}

func TestLocalRole(t *testing.T) {
	found := []model.Skill{
		{Name: "Communication", Category: "soft_skills", Confidence: 0.9},
		{Name: "Go", Category: "programming_languages", Confidence: 0.9},
		{Name: "Docker", Category: "devops_tools", Confidence: 0.7},
	}

	role := LocalRole(model.Profile{
		Type:         model.ProfileDeveloper,
		SpecificRole: "Full-Stack Developer",
		Source:       model.SourceTitle,
	}, found)

	assert.Equal(t, "Full-Stack Developer", role.PrimaryRole)
	assert.Equal(t, titleConfidence, role.Confidence)
	assert.Equal(t, []string{profile.DefaultRole(model.ProfileDeveloper)}, role.Alternates)
	assert.Equal(t, []string{"Go", "Docker"}, role.Capabilities)
}

func TestLocalRoleDefault(t *testing.T) {
	role := LocalRole(model.Profile{Type: model.ProfileGeneral, Source: model.SourceDefault}, nil)

	assert.Equal(t, profile.DefaultRole(model.ProfileGeneral), role.PrimaryRole)
	assert.Equal(t, defaultConfidence, role.Confidence)
	assert.Empty(t, role.Alternates)
	assert.NotNil(t, role.Capabilities)
}

func TestRemoteText(t *testing.T) {
	text := strings.Repeat("a", 60) + "\n" + strings.Repeat("b", 60)

	assert.Equal(t, text, remoteText(text, 0))
	assert.Equal(t, text, remoteText(text, 500))
	assert.Equal(t, strings.Repeat("a", 60), remoteText(text, 100))
	assert.Equal(t, strings.Repeat("a", 20), remoteText(strings.Repeat("a", 40), 20))
}
