package skills

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/spigell/cv-analyzer/internal/model"
	"github.com/spigell/cv-analyzer/internal/sections"
)

const (
	maxProjects        = 10
	maxProjectNameLen  = 80
	projectNameWords   = 6
	maxDescriptionRune = 400
)

var (
	reNumbered    = regexp.MustCompile(`^\s*\d{1,2}[.)]\s+`)
	reTechPhrase  = regexp.MustCompile(`(?i)(?:using|with|built with|developed with|technologies|tech stack|stack|tools|environment)\s*:?\s*(.+)$`)
	reTechSplit   = regexp.MustCompile(`\s*(?:,|;|/|\band\b|&)\s*`)
	nameDelimiter = []string{": ", " – ", " — ", " - ", " | "}
)

// ExtractProjects mines the projects section into academic projects with
// the technologies each one mentions. Blocks start at bullets, numbered
// items or short "Name: description" lines.
func ExtractProjects(text string) []model.AcademicProject {
	lines := sections.Lines(text, sections.Projects)
	if len(lines) == 0 {
		return nil
	}

	var (
		blocks  [][]string
		current []string
	)
	flush := func() {
		if len(current) > 0 {
			blocks = append(blocks, current)
			current = nil
		}
	}

	for _, line := range lines {
		if startsProject(line, len(current) > 0) {
			flush()
		}
		current = append(current, line)
	}
	flush()

	var out []model.AcademicProject
	for _, block := range blocks {
		p, ok := parseProject(block)
		if !ok {
			continue
		}
		out = append(out, p)
		if len(out) == maxProjects {
			break
		}
	}
	return out
}

func startsProject(line string, open bool) bool {
	if reBullet.MatchString(line) || reNumbered.MatchString(line) {
		return true
	}
	if !open {
		return true
	}
	if utf8.RuneCountInString(line) > maxProjectNameLen {
		return false
	}
	first, _ := utf8.DecodeRuneInString(line)
	if !unicode.IsUpper(first) {
		return false
	}
	for _, d := range nameDelimiter {
		if strings.Contains(line, d) {
			return true
		}
	}
	return false
}

func parseProject(block []string) (model.AcademicProject, bool) {
	head := strings.TrimSpace(reNumbered.ReplaceAllString(reBullet.ReplaceAllString(block[0], ""), ""))
	if head == "" {
		return model.AcademicProject{}, false
	}

	name, desc := head, ""
	for _, d := range nameDelimiter {
		if i := strings.Index(head, d); i > 0 {
			name, desc = strings.TrimSpace(head[:i]), strings.TrimSpace(head[i+len(d):])
			break
		}
	}
	if utf8.RuneCountInString(name) > maxProjectNameLen {
		words := strings.Fields(name)
		if len(words) > projectNameWords {
			words = words[:projectNameWords]
		}
		desc = strings.TrimSpace(head)
		name = strings.Join(words, " ")
	}

	rest := make([]string, 0, len(block))
	if desc != "" {
		rest = append(rest, desc)
	}
	for _, line := range block[1:] {
		rest = append(rest, strings.TrimSpace(reBullet.ReplaceAllString(line, "")))
	}
	desc = truncateRunes(strings.Join(rest, " "), maxDescriptionRune)

	return model.AcademicProject{
		Name:         strings.TrimRight(name, ".:"),
		Description:  desc,
		Technologies: projectTechnologies(strings.Join(block, "\n")),
	}, true
}

func projectTechnologies(text string) []string {
	seen := make(map[string]bool)
	for _, kw := range keywords {
		if kw.Category == CategoryProfessional {
			continue
		}
		if kw.Match(text) {
			seen[kw.Name] = true
		}
	}
	for _, line := range strings.Split(text, "\n") {
		m := reTechPhrase.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		for _, item := range reTechSplit.Split(m[1], -1) {
			if name, _, ok := Lookup(strings.Trim(item, " .()")); ok {
				seen[name] = true
			}
		}
	}

	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func truncateRunes(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	return strings.TrimSpace(string([]rune(s)[:limit])) + "…"
}
