// Package scoring turns an analysis record into a 0-100 score using one
// weighted rubric per profile type.
package scoring

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/spigell/cv-analyzer/internal/entities"
	"github.com/spigell/cv-analyzer/internal/model"
	"github.com/spigell/cv-analyzer/internal/skills"
)

// Criterion names as they appear in a breakdown.
const (
	CriterionKeySkills          = "key_skills"
	CriterionRoleConfidence     = "role_confidence"
	CriterionTools              = "tools"
	CriterionExperience         = "experience"
	CriterionEducation          = "education"
	CriterionSoftSkills         = "soft_skills"
	CriterionSummary            = "summary"
	CriterionOrganizations      = "organizations"
	CriterionAcademicProjects   = "academic_projects"
	CriterionTechnicalDiversity = "technical_diversity"
)

// MaxTotal is the sum of the criterion maxima of every rubric.
const MaxTotal = 100

// titleConfidenceFloor is the minimum role confidence credited when the
// profile came from an explicit title line.
const titleConfidenceFloor = 0.85

// Tier awards Points once a measured value reaches Min.
type Tier struct {
	Min    int
	Points int
}

// Tiers must be sorted by ascending Min.
type Tiers []Tier

// Points returns the points of the highest tier reached by v.
func (t Tiers) Points(v int) int {
	points := 0
	for _, tier := range t {
		if v < tier.Min {
			break
		}
		points = tier.Points
	}
	return points
}

// Criterion is one weighted line of a rubric. Measure extracts the raw value
// from the facts, Tiers converts it into points capped at Max.
type Criterion struct {
	Name    string
	Max     int
	Measure func(f *facts) int
	Tiers   Tiers
}

// Rubric is a named, ordered set of criteria whose maxima sum to MaxTotal.
type Rubric struct {
	Name     string
	Criteria []Criterion
	// Expected and Tools are the profile specific lists the skill and tool
	// criteria count against.
	Expected []string
	Tools    []string
}

// Evaluate applies the rubric. Every sub-score is clamped to [0, Max] and
// the total is the sum of the sub-scores.
func (r Rubric) Evaluate(record model.AnalysisRecord) model.ScoreResult {
	f := newFacts(record, r)
	result := model.ScoreResult{
		Rubric:    r.Name,
		Breakdown: make([]model.SubScore, 0, len(r.Criteria)),
	}
	for _, c := range r.Criteria {
		points := c.Tiers.Points(c.Measure(f))
		points = max(0, min(points, c.Max))
		result.Breakdown = append(result.Breakdown, model.SubScore{Name: c.Name, Score: points, Max: c.Max})
		result.Total += points
	}
	return result
}

// MaxPoints returns the sum of the criterion maxima.
func (r Rubric) MaxPoints() int {
	total := 0
	for _, c := range r.Criteria {
		total += c.Max
	}
	return total
}

// facts are the record values the criteria measure, computed once per
// evaluation.
type facts struct {
	record   model.AnalysisRecord
	skillSet map[string]bool
	// placeholders are the injected fallback skills; they never earn points.
	placeholders map[string]bool
	expected     []string
	tools        []string
}

func skillKey(name string) string {
	if canonical, _, ok := skills.Lookup(name); ok {
		name = canonical
	}
	return strings.ToLower(strings.TrimSpace(name))
}

func newFacts(record model.AnalysisRecord, r Rubric) *facts {
	placeholders := make(map[string]bool)
	found := make(map[string]bool)
	for _, list := range [][]model.Skill{record.Skills, record.KeySkills} {
		for _, s := range list {
			if skills.IsFallback(s) {
				placeholders[skillKey(s.Name)] = true
			} else {
				found[skillKey(s.Name)] = true
			}
		}
	}
	for name := range found {
		delete(placeholders, name)
	}

	set := make(map[string]bool)
	add := func(name string) {
		if key := skillKey(name); key != "" && !placeholders[key] {
			set[key] = true
		}
	}
	for _, s := range record.Skills {
		add(s.Name)
	}
	for _, s := range record.KeySkills {
		add(s.Name)
	}
	for _, names := range record.TechnicalProficiency {
		for _, n := range names {
			add(n)
		}
	}
	return &facts{record: record, skillSet: set, placeholders: placeholders, expected: r.Expected, tools: r.Tools}
}

func (f *facts) overlap(list []string) int {
	n := 0
	for _, name := range list {
		if f.skillSet[strings.ToLower(name)] {
			n++
		}
	}
	return n
}

func measureKeySkills(f *facts) int {
	return f.overlap(f.expected)
}

func measureTools(f *facts) int {
	return f.overlap(f.tools)
}

// measureRoleConfidence returns the role confidence in percent.
func measureRoleConfidence(f *facts) int {
	c := f.record.Role.Confidence
	if f.record.Profile.Source == model.SourceTitle && c < titleConfidenceFloor {
		c = titleConfidenceFloor
	}
	c = math.Max(0, math.Min(1, c))
	return int(math.Round(c * 100))
}

func measureExperience(f *facts) int {
	return f.record.Experience.Years
}

func measureEducation(f *facts) int {
	return entities.LevelRank(f.record.Education.Level)
}

func measureSoftSkills(f *facts) int {
	seen := make(map[string]bool)
	for _, s := range f.record.Skills {
		if skills.IsSoftSkill(s.Name) && !f.placeholders[skillKey(s.Name)] {
			seen[strings.ToLower(s.Name)] = true
		}
	}
	return len(seen)
}

// summaryBonusRunes is added to the summary length when the summary names
// an expected skill or the candidate's role, so a focused short summary can
// reach the same tier as a long generic one.
const summaryBonusRunes = 100

func measureSummary(f *facts) int {
	summary := strings.TrimSpace(f.record.Summary)
	if summary == "" {
		return 0
	}
	n := utf8.RuneCountInString(summary)
	lower := strings.ToLower(summary)
	if role := strings.ToLower(f.record.Role.PrimaryRole); role != "" && strings.Contains(lower, role) {
		return n + summaryBonusRunes
	}
	for _, name := range f.expected {
		kw, ok := keywordFor(name)
		if ok && kw.Match(summary) {
			return n + summaryBonusRunes
		}
	}
	return n
}

func measureOrganizations(f *facts) int {
	seen := make(map[string]bool)
	for _, org := range f.record.Experience.Organizations {
		seen[org] = true
	}
	for _, org := range f.record.Entities.Organizations {
		seen[org] = true
	}
	return len(seen)
}

func measureAcademicProjects(f *facts) int {
	return len(f.record.AcademicProjects)
}

func measureTechnicalDiversity(f *facts) int {
	seen := make(map[string]bool)
	for _, s := range f.record.Skills {
		if skills.IsTechnicalCategory(s.Category) && !f.placeholders[skillKey(s.Name)] {
			seen[s.Category] = true
		}
	}
	for cat, names := range f.record.TechnicalProficiency {
		if !skills.IsTechnicalCategory(cat) {
			continue
		}
		for _, n := range names {
			if !f.placeholders[skillKey(n)] {
				seen[cat] = true
				break
			}
		}
	}
	return len(seen)
}

func keywordFor(name string) (*skills.Keyword, bool) {
	canonical, _, ok := skills.Lookup(name)
	if !ok {
		return nil, false
	}
	for _, kw := range skills.Keywords() {
		if kw.Name == canonical {
			return kw, true
		}
	}
	return nil, false
}
