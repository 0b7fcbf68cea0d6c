// Package sections recognises résumé section headers and slices text into
// the lines under them.
package sections

import (
	"strings"
	"unicode/utf8"
)

const (
	Skills     = "skills"
	Projects   = "projects"
	Experience = "experience"
	Education  = "education"
	Summary    = "summary"
	Contact    = "contact"
	Other      = "other"
)

const maxHeaderRunes = 45

var titles = map[string]string{}

func init() {
	register(Skills, "skills", "technical skills", "key skills", "core skills",
		"core competencies", "competencies", "competences", "compétences",
		"compétences techniques", "technologies", "tech stack", "technical proficiency",
		"tools", "tools and technologies", "hard skills", "soft skills",
		"areas of expertise", "expertise", "skills and tools", "skills and competencies",
		"it skills", "computer skills")
	register(Projects, "projects", "project", "academic projects", "academic project",
		"university projects", "school projects", "personal projects", "side projects",
		"final year project", "final year projects", "capstone project", "capstone projects",
		"graduation project", "graduation projects", "end of studies project",
		"projets", "projets académiques", "projets academiques", "projets universitaires",
		"pfe")
	register(Experience, "experience", "work experience", "professional experience",
		"employment", "employment history", "work history", "career history",
		"internships", "internship", "experience professionnelle",
		"expérience professionnelle", "expériences professionnelles", "stages")
	register(Education, "education", "academic background", "formation",
		"qualifications", "academic qualifications", "certifications", "certificates",
		"education and training", "diplômes")
	register(Summary, "summary", "professional summary", "profile", "professional profile",
		"objective", "career objective", "about me", "about", "profil", "overview",
		"personal statement")
	register(Contact, "contact", "contact information", "contact details",
		"personal details", "personal information", "coordonnées")
	register(Other, "languages", "interests", "hobbies", "references", "awards",
		"achievements", "activities", "volunteering", "volunteer experience",
		"publications", "langues", "centres d'intérêt", "loisirs")
}

func register(section string, names ...string) {
	for _, n := range names {
		titles[n] = section
	}
}

// Header reports whether line is a section header. A header may carry
// inline content after a colon, as in "Skills: Go, SQL"; that content is
// returned as rest.
func Header(line string) (section, rest string, ok bool) {
	line = strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "#*-•▪►■ "))
	if line == "" {
		return "", "", false
	}

	head := line
	if i := strings.IndexAny(line, ":|"); i >= 0 {
		head, rest = line[:i], strings.TrimSpace(line[i+1:])
	}
	if utf8.RuneCountInString(head) > maxHeaderRunes {
		return "", "", false
	}

	section, ok = titles[normalize(head)]
	if !ok {
		return "", "", false
	}
	return section, rest, true
}

// Lines returns every line that belongs to the named section, across all
// its occurrences, including inline header content.
func Lines(text, section string) []string {
	var (
		out     []string
		current string
	)
	for _, line := range strings.Split(text, "\n") {
		if s, rest, ok := Header(line); ok {
			current = s
			if s == section && rest != "" {
				out = append(out, rest)
			}
			continue
		}
		if current == section && strings.TrimSpace(line) != "" {
			out = append(out, strings.TrimSpace(line))
		}
	}
	return out
}

// Without returns text with every occurrence of the named section removed,
// header lines included. Lines before the first header are kept.
func Without(text, section string) string {
	var (
		out     []string
		current string
	)
	for _, line := range strings.Split(text, "\n") {
		if s, _, ok := Header(line); ok {
			current = s
		}
		if current != section {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}

// Has reports whether text contains a header for section.
func Has(text, section string) bool {
	for _, line := range strings.Split(text, "\n") {
		if s, _, ok := Header(line); ok && s == section {
			return true
		}
	}
	return false
}

func normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "&", " and ")
	s = strings.ReplaceAll(s, "/", " and ")
	s = strings.ReplaceAll(s, "-", " ")
	return strings.Join(strings.Fields(s), " ")
}
