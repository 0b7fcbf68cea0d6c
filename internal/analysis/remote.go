package analysis

import (
	"context"
	"errors"
	"strings"

	"github.com/spigell/cv-analyzer/internal/ai"
	"github.com/spigell/cv-analyzer/internal/entities"
	"github.com/spigell/cv-analyzer/internal/model"
	"github.com/spigell/cv-analyzer/internal/profile"
	"github.com/spigell/cv-analyzer/internal/skills"
)

// Remote summary bounds in model tokens.
const (
	summaryMinTokens = 40
	summaryMaxTokens = 130

	minSkillScore   = 0.5
	minEntityScore  = 0.5
	minAltRoleScore = 0.1
	maxAlternates   = 2
)

var errNoResult = errors.New("empty result")

// remotes builds the remote side of every axis. Each function only
// enhances the local value it is given and never mutates it.
type remotes struct {
	inference ai.Inference
	text      string
	profile   model.Profile
}

func (r remotes) summary(ctx context.Context) (string, error) {
	s, err := r.inference.Summarize(ctx, r.text, ai.SummaryOptions{MinLength: summaryMinTokens, MaxLength: summaryMaxTokens})
	if err != nil {
		return "", err
	}
	if s = strings.TrimSpace(s); s == "" {
		return "", errNoResult
	}
	return s, nil
}

// skills asks the zero-shot model which expected skills of the profile the
// candidate has, and merges the confident ones into the local list.
func (r remotes) skills(local []model.Skill) func(ctx context.Context) ([]model.Skill, error) {
	return func(ctx context.Context) ([]model.Skill, error) {
		labels, err := r.inference.Classify(ctx, r.text, skills.ExpectedSkills(r.profile.Type), true)
		if err != nil {
			return nil, err
		}

		var found []model.Skill
		for _, l := range labels {
			if l.Score < minSkillScore {
				continue
			}
			name, cat, ok := skills.Lookup(l.Name)
			if !ok {
				name, cat = l.Name, skills.CategoryOther
			}
			found = append(found, model.Skill{Name: name, Category: cat, Confidence: round2(l.Score)})
		}
		return skills.Merge(local, found), nil
	}
}

// role classifies the text against every known role label. The profile
// itself is never changed by the remote answer.
func (r remotes) role(local model.Role) func(ctx context.Context) (model.Role, error) {
	return func(ctx context.Context) (model.Role, error) {
		labels, err := r.inference.Classify(ctx, r.text, profile.RoleLabels(), false)
		if err != nil {
			return model.Role{}, err
		}
		if len(labels) == 0 {
			return model.Role{}, errNoResult
		}

		role := model.Role{
			PrimaryRole:  labels[0].Name,
			Alternates:   []string{},
			Confidence:   round2(labels[0].Score),
			Capabilities: local.Capabilities,
		}
		for _, l := range labels[1:] {
			if l.Score < minAltRoleScore || len(role.Alternates) == maxAlternates {
				break
			}
			role.Alternates = append(role.Alternates, l.Name)
		}
		return role, nil
	}
}

func (r remotes) personality(ctx context.Context) (model.Personality, error) {
	labels, err := r.inference.Classify(ctx, r.text, TraitLabels(), true)
	if err != nil {
		return model.Personality{}, err
	}

	out := model.Personality{Traits: []model.Trait{}}
	for _, l := range labels {
		if l.Score >= minTraitRemoteScore {
			out.Traits = append(out.Traits, model.Trait{Name: l.Name, Score: round2(l.Score)})
		}
	}
	sortTraits(out.Traits)
	return out, nil
}

// entities adds organisations and locations recognised by the NER model to
// the local bundle. Dates always come from the local extractor.
func (r remotes) entities(local model.EntityBundle) func(ctx context.Context) (model.EntityBundle, error) {
	return func(ctx context.Context) (model.EntityBundle, error) {
		found, err := r.inference.Entities(ctx, r.text)
		if err != nil {
			return model.EntityBundle{}, err
		}

		var extra model.EntityBundle
		for _, e := range found {
			if e.Score < minEntityScore {
				continue
			}
			switch strings.ToUpper(e.Group) {
			case ai.GroupOrganization:
				if org, ok := entities.CleanOrganization(e.Word); ok {
					extra.Organizations = append(extra.Organizations, org)
				}
			case ai.GroupLocation:
				extra.Locations = append(extra.Locations, strings.TrimSpace(e.Word))
			}
		}
		return entities.Merge(local, extra), nil
	}
}

// remoteText trims text to at most limit runes on a line boundary when
// possible. Hosted models reject long inputs.
func remoteText(text string, limit int) string {
	if limit <= 0 {
		return text
	}
	r := []rune(text)
	if len(r) <= limit {
		return text
	}
	cut := string(r[:limit])
	if i := strings.LastIndex(cut, "\n"); i > len(cut)/2 {
		cut = cut[:i]
	}
	return cut
}
