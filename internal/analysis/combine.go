package analysis

import (
	"github.com/spigell/cv-analyzer/internal/entities"
	"github.com/spigell/cv-analyzer/internal/model"
	"github.com/spigell/cv-analyzer/internal/scoring"
	"github.com/spigell/cv-analyzer/internal/skills"
)

const (
	DefaultTopSkills = 10
	minTopSkills     = 8
	maxTopSkills     = 10
)

// resolved holds the value every axis settled on.
type resolved struct {
	summary     string
	skills      []model.Skill
	role        model.Role
	personality model.Personality
	entities    model.EntityBundle
}

// facts are computed once before the race and never touched by remotes.
type facts struct {
	text     string
	profile  model.Profile
	years    int
	projects []model.AcademicProject
}

// combine assembles the final record and scores it.
func combine(f facts, r resolved, topSkills int) model.AnalysisRecord {
	bundle := model.EntityBundle{
		Organizations: nonNil(r.entities.Organizations),
		Dates:         nonNil(r.entities.Dates),
		Locations:     nonNil(r.entities.Locations),
	}

	all := append([]model.Skill(nil), r.skills...)
	skills.SortByConfidence(all)
	if all == nil {
		all = []model.Skill{}
	}

	role := r.role
	role.Alternates = nonNil(role.Alternates)
	role.Capabilities = nonNil(role.Capabilities)

	personality := r.personality
	if personality.Traits == nil {
		personality.Traits = []model.Trait{}
	}

	projects := []model.AcademicProject{}
	if f.profile.IsITStudent {
		projects = append(projects, f.projects...)
	}

	record := model.AnalysisRecord{
		Summary:              r.summary,
		Profile:              f.profile,
		KeySkills:            topN(all, clampTopSkills(topSkills)),
		Skills:               all,
		TechnicalProficiency: skills.Categorize(all),
		Role:                 role,
		Personality:          personality,
		Education:            entities.Education(f.text, bundle),
		Experience: model.ExperienceRecord{
			Years:         f.years,
			Organizations: bundle.Organizations,
			Locations:     bundle.Locations,
		},
		Entities:         bundle,
		AcademicProjects: projects,
	}
	record.Score = scoring.Score(record)
	record.Recommendation = scoring.Recommend(record)
	return record
}

func clampTopSkills(n int) int {
	if n <= 0 {
		return DefaultTopSkills
	}
	return max(minTopSkills, min(n, maxTopSkills))
}

// topN expects list sorted by confidence.
func topN(list []model.Skill, n int) []model.Skill {
	if len(list) > n {
		list = list[:n]
	}
	return append([]model.Skill{}, list...)
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
