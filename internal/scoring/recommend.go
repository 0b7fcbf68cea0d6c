package scoring

import (
	"github.com/spigell/cv-analyzer/internal/model"
	"github.com/spigell/cv-analyzer/internal/profile"
)

// Recommendation labels.
const (
	RecommendDeveloper     = "Developer"
	RecommendITEngineering = "IT Engineering"
	RecommendMarketing     = "Marketing"
	RecommendSales         = "Sales Manager"
	RecommendDesigner      = "Designer"
	RecommendGeneral       = "General Professional"
)

var recommendations = map[model.ProfileType]string{
	model.ProfileDeveloper:   RecommendDeveloper,
	model.ProfileData:        RecommendDeveloper,
	model.ProfileEngineering: RecommendITEngineering,
	model.ProfileMarketing:   RecommendMarketing,
	model.ProfileSales:       RecommendSales,
	model.ProfileDesigner:    RecommendDesigner,
}

// Recommend maps the record to a human readable track. IT students go to
// IT Engineering; general and professional profiles fall back to the
// category of their primary role when it names one.
func Recommend(record model.AnalysisRecord) string {
	p := record.Profile
	if p.IsITStudent && p.Type == model.ProfileDeveloper {
		return RecommendITEngineering
	}
	if label, ok := recommendations[p.Type]; ok {
		return label
	}
	if t, ok := profile.ProfileForRole(record.Role.PrimaryRole); ok {
		if label, ok := recommendations[t]; ok {
			return label
		}
	}
	return RecommendGeneral
}
