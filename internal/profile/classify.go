// Package profile classifies a résumé into a coarse profile type and a
// specific role label using ordered rule tables.
package profile

import (
	"strings"
	"unicode/utf8"

	"github.com/spigell/cv-analyzer/internal/entities"
	"github.com/spigell/cv-analyzer/internal/model"
	"github.com/spigell/cv-analyzer/internal/sections"
	"github.com/spigell/cv-analyzer/internal/skills"
)

const (
	titleScanLines = 8
	maxTitleRunes  = 80
	maxTitleWords  = 10
)

// Classify derives the profile from text and the skills already found in it.
//
// The IT student path wins first when there is no title or the title
// itself names studies. A senior title or a stated number of years of
// experience rules the student signal out. A title that matches a rule
// decides the profile, otherwise the category lexicons and skill categories
// vote. A title that matches nothing while the vote is empty yields a
// professional profile.
func Classify(text string, found []model.Skill) model.Profile {
	title := FindTitle(text)
	experienced := entities.SeniorTitle(title) || entities.HasExplicitYears(text)
	p := model.Profile{
		Title:     title,
		IsStudent: !experienced && reStudent.MatchString(text),
	}
	p.IsITStudent = p.IsStudent && reITDiscipline.MatchString(text)
	studentTitle := title != "" && (reStudent.MatchString(title) || reITDiscipline.MatchString(title))

	var titleRule *category
	if title != "" {
		for i := range categories {
			if categories[i].title.MatchString(title) {
				titleRule = &categories[i]
				break
			}
		}
	}

	if p.IsITStudent && (title == "" || studentTitle) &&
		(titleRule == nil || titleRule.profile == model.ProfileDeveloper) {
		p.Type = model.ProfileDeveloper
		p.SpecificRole = roleITStudent
		p.Source = model.SourceKeywords
		if studentTitle {
			p.Source = model.SourceTitle
		}
		return p
	}

	if titleRule != nil {
		p.Type = titleRule.profile
		p.SpecificRole = titleRule.role(title)
		p.Source = model.SourceTitle
		return clearDeveloperStudent(p)
	}

	if winner, ok := vote(text, found); ok {
		p.Type = winner.profile
		p.SpecificRole = winner.role(title, text)
		p.Source = model.SourceKeywords
		return clearDeveloperStudent(p)
	}

	if title != "" {
		p.Type = model.ProfileProfessional
		p.SpecificRole = title
		p.Source = model.SourceTitle
		return p
	}

	p.Type = model.ProfileGeneral
	p.SpecificRole = roleGeneralProfessional
	p.Source = model.SourceDefault
	return p
}

// clearDeveloperStudent drops the IT student mark from a developer profile
// that did not take the student path, so it is scored as a developer.
func clearDeveloperStudent(p model.Profile) model.Profile {
	if p.Type == model.ProfileDeveloper {
		p.IsITStudent = false
	}
	return p
}

// DefaultRole returns the generic role label for a profile type.
func DefaultRole(t model.ProfileType) string {
	if c, ok := categoryFor(t); ok {
		return c.defaultRole
	}
	return roleGeneralProfessional
}

// RoleLabels lists every role label the classifier can produce, usable as
// candidate labels for a zero-shot classifier.
func RoleLabels() []string {
	seen := map[string]bool{}
	var out []string
	add := func(s string) {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	for _, c := range categories {
		for _, r := range c.roles {
			add(r.role)
		}
		add(c.defaultRole)
	}
	add(roleITStudent)
	add(roleGeneralProfessional)
	return out
}

// ProfileForRole maps a role label back to its category.
func ProfileForRole(role string) (model.ProfileType, bool) {
	for _, c := range categories {
		if strings.EqualFold(c.defaultRole, role) {
			return c.profile, true
		}
		for _, r := range c.roles {
			if strings.EqualFold(r.role, role) {
				return c.profile, true
			}
		}
	}
	if strings.EqualFold(role, roleITStudent) {
		return model.ProfileDeveloper, true
	}
	return "", false
}

// vote counts lexicon hits per category plus one per found skill whose
// taxonomy category maps to a profile. Ties go to the earlier row.
func vote(text string, found []model.Skill) (category, bool) {
	counts := make(map[model.ProfileType]int, len(categories))
	for _, c := range categories {
		for _, term := range c.lexicon {
			counts[c.profile] += len(term.FindAllStringIndex(text, -1))
		}
	}
	for _, s := range found {
		if p, ok := skills.ProfileForCategory(s.Category); ok {
			counts[p]++
		}
	}

	best, bestCount := -1, 0
	for i, c := range categories {
		if counts[c.profile] > bestCount {
			best, bestCount = i, counts[c.profile]
		}
	}
	if best < 0 {
		return category{}, false
	}
	return categories[best], true
}

// FindTitle returns the first job-title-like line near the top of the
// document or, failing that, next to a contact line.
func FindTitle(text string) string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}

	for i := 0; i < len(lines) && i < titleScanLines; i++ {
		if isTitle(lines[i]) {
			return lines[i]
		}
	}

	for i, line := range lines {
		if !isContact(line) {
			continue
		}
		for _, j := range []int{i - 1, i + 1} {
			if j >= 0 && j < len(lines) && isTitle(lines[j]) {
				return lines[j]
			}
		}
	}
	return ""
}

func isTitle(line string) bool {
	if utf8.RuneCountInString(line) > maxTitleRunes || len(strings.Fields(line)) > maxTitleWords {
		return false
	}
	if isContact(line) {
		return false
	}
	if _, _, ok := sections.Header(line); ok {
		return false
	}
	if reTitleWord.MatchString(line) {
		return true
	}
	for _, c := range categories {
		if c.title.MatchString(line) {
			return true
		}
	}
	return false
}
