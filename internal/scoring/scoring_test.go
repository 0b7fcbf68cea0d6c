package scoring

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spigell/cv-analyzer/internal/model"
	"github.com/spigell/cv-analyzer/internal/skills"
)

func skillList(names ...string) []model.Skill {
	out := make([]model.Skill, 0, len(names))
	for _, n := range names {
		canonical, cat, ok := skills.Lookup(n)
		if !ok {
			canonical, cat = n, skills.CategoryOther
		}
		out = append(out, model.Skill{Name: canonical, Category: cat, Confidence: 0.9})
	}
	return out
}

func breakdown(res model.ScoreResult) map[string]int {
	out := make(map[string]int, len(res.Breakdown))
	for _, s := range res.Breakdown {
		out[s.Name] = s.Score
	}
	return out
}

func TestTiersPoints(t *testing.T) {
	tiers := Tiers{{1, 6}, {2, 11}, {3, 15}}

	assert.Equal(t, 0, tiers.Points(0))
	assert.Equal(t, 6, tiers.Points(1))
	assert.Equal(t, 11, tiers.Points(2))
	assert.Equal(t, 15, tiers.Points(40))
	assert.Equal(t, 0, Tiers(nil).Points(5))
}

func TestScoreTechnical(t *testing.T) {
	record := model.AnalysisRecord{
		Summary: "Backend engineer who builds payment services in Go and Python.",
		Profile: model.Profile{Type: model.ProfileDeveloper, Source: model.SourceTitle},
		Skills:  skillList("Go", "Python", "Docker", "Git", "Kubernetes", "PostgreSQL", "Communication", "Teamwork"),
		Role:    model.Role{PrimaryRole: "Backend Developer", Confidence: 0.6},
		Education: model.Education{
			Level: "Master",
		},
		Experience: model.ExperienceRecord{Years: 6, Organizations: []string{"Acme Corp", "Globex Inc"}},
		Entities:   model.EntityBundle{Organizations: []string{"Acme Corp", "Initech"}},
	}

	res := Score(record)

	assert.Equal(t, RubricTechnical, res.Rubric)
	assert.Equal(t, map[string]int{
		CriterionKeySkills:      22,
		CriterionRoleConfidence: 14,
		CriterionTools:          7,
		CriterionExperience:     11,
		CriterionEducation:      9,
		CriterionSoftSkills:     5,
		CriterionSummary:        6,
		CriterionOrganizations:  4,
	}, breakdown(res))
	assert.Equal(t, 78, res.Total)
}

func TestScoreStudent(t *testing.T) {
	record := model.AnalysisRecord{
		Profile:          model.Profile{Type: model.ProfileDeveloper, Source: model.SourceTitle, IsStudent: true, IsITStudent: true},
		Skills:           skillList("Python", "Java", "HTML", "MySQL", "Git", "Communication"),
		Role:             model.Role{PrimaryRole: "IT Engineering Student", Confidence: 0.8},
		Education:        model.Education{Level: "Bachelor"},
		AcademicProjects: []model.AcademicProject{{Name: "Library app"}, {Name: "Chat bot"}},
		Entities:         model.EntityBundle{Organizations: []string{"State University"}},
	}

	res := Score(record)

	assert.Equal(t, RubricStudent, res.Rubric)
	got := breakdown(res)
	assert.Equal(t, map[string]int{
		CriterionKeySkills:          20,
		CriterionRoleConfidence:     14,
		CriterionTechnicalDiversity: 9,
		CriterionExperience:         0,
		CriterionEducation:          7,
		CriterionSoftSkills:         3,
		CriterionSummary:            0,
		CriterionAcademicProjects:   4,
	}, got)
	assert.NotContains(t, got, CriterionOrganizations)
	assert.Equal(t, 57, res.Total)
}

func TestScoreStudentWithNonDeveloperProfileUsesCategoryRubric(t *testing.T) {
	record := model.AnalysisRecord{
		Profile: model.Profile{Type: model.ProfileMarketing, IsStudent: true, IsITStudent: true},
	}
	assert.Equal(t, RubricMarketing, Score(record).Rubric)
}

func TestScoreSales(t *testing.T) {
	record := model.AnalysisRecord{
		Profile:    model.Profile{Type: model.ProfileSales, Source: model.SourceKeywords},
		Skills:     skillList("Salesforce", "CRM", "Negotiation", "Communication", "Lead Generation"),
		Role:       model.Role{PrimaryRole: "Sales Representative", Confidence: 0.6},
		Experience: model.ExperienceRecord{Years: 3},
	}

	res := Score(record)

	assert.Equal(t, RubricSales, res.Rubric)
	assert.Equal(t, map[string]int{
		CriterionKeySkills:      22,
		CriterionRoleConfidence: 9,
		CriterionTools:          5,
		CriterionExperience:     10,
		CriterionEducation:      0,
		CriterionSoftSkills:     7,
		CriterionSummary:        0,
		CriterionOrganizations:  0,
	}, breakdown(res))
	assert.Equal(t, 53, res.Total)
}

func TestFallbackSkillsEarnNoPoints(t *testing.T) {
	extracted := skills.Extract("Loves long walks and gardening on weekends.", skills.Options{})
	require.True(t, extracted.FallbackUsed)

	record := model.AnalysisRecord{
		Profile:              model.Profile{Type: model.ProfileGeneral, Source: model.SourceDefault},
		Skills:               extracted.Skills,
		KeySkills:            extracted.Skills,
		TechnicalProficiency: skills.Categorize(extracted.Skills),
	}

	res := Score(record)

	assert.Equal(t, RubricBusiness, res.Rubric)
	points := breakdown(res)
	assert.Zero(t, points[CriterionKeySkills])
	assert.Zero(t, points[CriterionTools])
	assert.Zero(t, points[CriterionSoftSkills])

	// The same names found in the text do count.
	found := record
	found.Skills = skillList("Communication", "Teamwork", "Problem Solving", "Microsoft Office")
	found.KeySkills = found.Skills
	assert.Positive(t, breakdown(Score(found))[CriterionKeySkills])
}

func TestRubricSelection(t *testing.T) {
	tests := []struct {
		profile model.ProfileType
		want    string
	}{
		{model.ProfileDeveloper, RubricTechnical},
		{model.ProfileEngineering, RubricTechnical},
		{model.ProfileData, RubricTechnical},
		{model.ProfileMarketing, RubricMarketing},
		{model.ProfileSales, RubricSales},
		{model.ProfileDesigner, RubricDesigner},
		{model.ProfileGeneral, RubricBusiness},
		{model.ProfileProfessional, RubricBusiness},
		{"", RubricBusiness},
	}

	for _, tt := range tests {
		r := RubricFor(model.AnalysisRecord{Profile: model.Profile{Type: tt.profile}})
		assert.Equal(t, tt.want, r.Name, tt.profile)
		assert.NotEmpty(t, r.Expected, tt.profile)
	}

	engineering := RubricFor(model.AnalysisRecord{Profile: model.Profile{Type: model.ProfileEngineering}})
	assert.Contains(t, engineering.Expected, "SolidWorks")
}

func TestTotalIsSumAndBounded(t *testing.T) {
	everything := []string{}
	for _, cat := range skills.Taxonomy {
		everything = append(everything, cat.Skills...)
	}
	rich := skillList(everything...)

	profiles := []model.ProfileType{
		model.ProfileDeveloper, model.ProfileEngineering, model.ProfileData, model.ProfileMarketing,
		model.ProfileSales, model.ProfileDesigner, model.ProfileGeneral, model.ProfileProfessional,
	}

	for _, p := range profiles {
		for _, student := range []bool{false, true} {
			for _, record := range []model.AnalysisRecord{
				{Profile: model.Profile{Type: p, IsITStudent: student}},
				{
					Summary:          strings.Repeat("Developer with Python. ", 40),
					Profile:          model.Profile{Type: p, Source: model.SourceTitle, IsITStudent: student},
					Skills:           rich,
					Role:             model.Role{PrimaryRole: "Developer", Confidence: 7},
					Education:        model.Education{Level: "PhD"},
					Experience:       model.ExperienceRecord{Years: 40, Organizations: []string{"A", "B", "C", "D", "E", "F"}},
					AcademicProjects: make([]model.AcademicProject, 12),
				},
			} {
				rubric := RubricFor(record)
				require.Equal(t, MaxTotal, rubric.MaxPoints(), rubric.Name)

				res := rubric.Evaluate(record)
				sum := 0
				for _, sub := range res.Breakdown {
					assert.GreaterOrEqual(t, sub.Score, 0, sub.Name)
					assert.LessOrEqual(t, sub.Score, sub.Max, sub.Name)
					sum += sub.Score
				}
				assert.Equal(t, sum, res.Total)
				assert.LessOrEqual(t, res.Total, MaxTotal)
				assert.GreaterOrEqual(t, res.Total, 0)
			}
		}
	}
}

func TestRoleConfidenceNegativeIsClamped(t *testing.T) {
	res := Score(model.AnalysisRecord{Role: model.Role{Confidence: -3}})
	assert.Zero(t, res.Points(CriterionRoleConfidence))
}

func TestRecommend(t *testing.T) {
	tests := []struct {
		name   string
		record model.AnalysisRecord
		want   string
	}{
		{name: "developer", record: model.AnalysisRecord{Profile: model.Profile{Type: model.ProfileDeveloper}}, want: RecommendDeveloper},
		{name: "data", record: model.AnalysisRecord{Profile: model.Profile{Type: model.ProfileData}}, want: RecommendDeveloper},
		{name: "engineering", record: model.AnalysisRecord{Profile: model.Profile{Type: model.ProfileEngineering}}, want: RecommendITEngineering},
		{name: "it student", record: model.AnalysisRecord{Profile: model.Profile{Type: model.ProfileDeveloper, IsITStudent: true}}, want: RecommendITEngineering},
		{name: "marketing", record: model.AnalysisRecord{Profile: model.Profile{Type: model.ProfileMarketing}}, want: RecommendMarketing},
		{name: "sales", record: model.AnalysisRecord{Profile: model.Profile{Type: model.ProfileSales}}, want: RecommendSales},
		{name: "designer", record: model.AnalysisRecord{Profile: model.Profile{Type: model.ProfileDesigner}}, want: RecommendDesigner},
		{
			name: "general with remote role",
			record: model.AnalysisRecord{
				Profile: model.Profile{Type: model.ProfileGeneral},
				Role:    model.Role{PrimaryRole: "Sales Representative"},
			},
			want: RecommendSales,
		},
		{
			name: "professional",
			record: model.AnalysisRecord{
				Profile: model.Profile{Type: model.ProfileProfessional},
				Role:    model.Role{PrimaryRole: "Head Nurse"},
			},
			want: RecommendGeneral,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Recommend(tt.record))
		})
	}
}
