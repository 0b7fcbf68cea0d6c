package scoring

import (
	"github.com/spigell/cv-analyzer/internal/model"
	"github.com/spigell/cv-analyzer/internal/skills"
)

// Rubric names.
const (
	RubricTechnical = "technical"
	RubricMarketing = "marketing"
	RubricSales     = "sales"
	RubricDesigner  = "designer"
	RubricBusiness  = "business"
	RubricStudent   = "student"
)

// Shared tiers. Skill overlap has diminishing returns: the first matches are
// worth the most.
var (
	keySkillTiers     = Tiers{{1, 6}, {2, 11}, {3, 15}, {4, 19}, {5, 22}, {6, 25}}
	roleTiers         = Tiers{{20, 3}, {40, 6}, {50, 8}, {60, 9}, {70, 11}, {80, 13}, {85, 14}, {95, 15}}
	toolTiers         = Tiers{{1, 3}, {2, 5}, {3, 7}, {4, 9}, {5, 10}}
	softSkillTiers    = Tiers{{1, 3}, {2, 5}, {3, 7}, {4, 9}, {5, 10}}
	summaryTiers      = Tiers{{1, 2}, {50, 4}, {120, 6}, {200, 8}, {300, 10}}
	organizationTiers = Tiers{{1, 2}, {2, 3}, {3, 4}, {4, 5}}
)

// Education tiers are indexed by entities.LevelRank: 1 high school,
// 2 associate, 3 bachelor, 4 master, 5 PhD.
var (
	technicalEducation = Tiers{{1, 3}, {2, 5}, {3, 7}, {4, 9}, {5, 10}}
	businessEducation  = Tiers{{1, 3}, {2, 5}, {3, 8}, {4, 10}}
	creativeEducation  = Tiers{{1, 4}, {2, 7}, {3, 9}, {4, 10}}
)

var (
	technicalExperience = Tiers{{1, 4}, {2, 6}, {3, 8}, {5, 11}, {7, 13}, {10, 15}}
	businessExperience  = Tiers{{1, 5}, {2, 7}, {3, 9}, {5, 12}, {8, 15}}
	salesExperience     = Tiers{{1, 5}, {2, 8}, {3, 10}, {5, 13}, {7, 15}}
	studentExperience   = Tiers{{1, 10}, {2, 13}, {3, 15}}
)

var (
	salesSoftSkills      = Tiers{{1, 4}, {2, 7}, {3, 9}, {4, 10}}
	studentProjectTiers  = Tiers{{1, 3}, {2, 4}, {3, 5}}
	technicalDiversity   = Tiers{{1, 3}, {2, 5}, {3, 7}, {4, 9}, {5, 10}}
	studentKeySkillTiers = Tiers{{1, 7}, {2, 12}, {3, 16}, {4, 20}, {5, 23}, {6, 25}}
)

type criteriaSet struct {
	experience Tiers
	education  Tiers
	softSkills Tiers
}

// standard builds the eight criteria every non-student rubric shares.
func standard(set criteriaSet) []Criterion {
	return []Criterion{
		{Name: CriterionKeySkills, Max: 25, Measure: measureKeySkills, Tiers: keySkillTiers},
		{Name: CriterionRoleConfidence, Max: 15, Measure: measureRoleConfidence, Tiers: roleTiers},
		{Name: CriterionTools, Max: 10, Measure: measureTools, Tiers: toolTiers},
		{Name: CriterionExperience, Max: 15, Measure: measureExperience, Tiers: set.experience},
		{Name: CriterionEducation, Max: 10, Measure: measureEducation, Tiers: set.education},
		{Name: CriterionSoftSkills, Max: 10, Measure: measureSoftSkills, Tiers: set.softSkills},
		{Name: CriterionSummary, Max: 10, Measure: measureSummary, Tiers: summaryTiers},
		{Name: CriterionOrganizations, Max: 5, Measure: measureOrganizations, Tiers: organizationTiers},
	}
}

var (
	technicalCriteria = standard(criteriaSet{technicalExperience, technicalEducation, softSkillTiers})
	marketingCriteria = standard(criteriaSet{businessExperience, businessEducation, softSkillTiers})
	salesCriteria     = standard(criteriaSet{salesExperience, businessEducation, salesSoftSkills})
	designerCriteria  = standard(criteriaSet{businessExperience, creativeEducation, softSkillTiers})
	businessCriteria  = standard(criteriaSet{businessExperience, businessEducation, softSkillTiers})

	// The student rubric credits projects instead of employers and the
	// breadth of technical categories instead of a tool list.
	studentCriteria = []Criterion{
		{Name: CriterionKeySkills, Max: 25, Measure: measureKeySkills, Tiers: studentKeySkillTiers},
		{Name: CriterionRoleConfidence, Max: 15, Measure: measureRoleConfidence, Tiers: roleTiers},
		{Name: CriterionTechnicalDiversity, Max: 10, Measure: measureTechnicalDiversity, Tiers: technicalDiversity},
		{Name: CriterionExperience, Max: 15, Measure: measureExperience, Tiers: studentExperience},
		{Name: CriterionEducation, Max: 10, Measure: measureEducation, Tiers: technicalEducation},
		{Name: CriterionSoftSkills, Max: 10, Measure: measureSoftSkills, Tiers: softSkillTiers},
		{Name: CriterionSummary, Max: 10, Measure: measureSummary, Tiers: summaryTiers},
		{Name: CriterionAcademicProjects, Max: 5, Measure: measureAcademicProjects, Tiers: studentProjectTiers},
	}
)

// RubricFor selects the rubric for a record. IT students get the student
// rubric only while their profile stayed on the developer path.
func RubricFor(record model.AnalysisRecord) Rubric {
	p := record.Profile.Type
	if record.Profile.IsITStudent && p == model.ProfileDeveloper {
		return Rubric{Name: RubricStudent, Criteria: studentCriteria, Expected: skills.ExpectedSkills(p), Tools: skills.Tools(p)}
	}

	r := Rubric{Expected: skills.ExpectedSkills(p), Tools: skills.Tools(p)}
	switch p {
	case model.ProfileDeveloper, model.ProfileEngineering, model.ProfileData:
		r.Name, r.Criteria = RubricTechnical, technicalCriteria
	case model.ProfileMarketing:
		r.Name, r.Criteria = RubricMarketing, marketingCriteria
	case model.ProfileSales:
		r.Name, r.Criteria = RubricSales, salesCriteria
	case model.ProfileDesigner:
		r.Name, r.Criteria = RubricDesigner, designerCriteria
	default:
		r.Name, r.Criteria = RubricBusiness, businessCriteria
	}
	return r
}

// Score evaluates record against its rubric.
func Score(record model.AnalysisRecord) model.ScoreResult {
	return RubricFor(record).Evaluate(record)
}
