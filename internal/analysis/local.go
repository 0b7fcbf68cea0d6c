package analysis

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/spigell/cv-analyzer/internal/model"
	"github.com/spigell/cv-analyzer/internal/profile"
	"github.com/spigell/cv-analyzer/internal/sections"
	"github.com/spigell/cv-analyzer/internal/skills"
)

const (
	summarySentences    = 3
	summaryMaxRunes     = 400
	minSentenceWords    = 4
	minProseWords       = 6
	maxCapabilities     = 5
	minPhoneDigits      = 9
	maxSummarySkills    = 3
	titleConfidence     = 0.8
	keywordsConfidence  = 0.6
	defaultConfidence   = 0.4
	traitBaseScore      = 0.4
	traitScorePerMatch  = 0.15
	minTraitRemoteScore = 0.5
)

var (
	reSentence = regexp.MustCompile(`[^.!?]+(?:[.!?]+|$)`)
	reContact  = regexp.MustCompile(`(?i)@|https?://|www\.|linkedin\.com|github\.com`)
)

// LocalSummary returns the first few sentences of the summary section. When
// there is none, prose lines of the whole text are used instead. Sentences
// shorter than four words, section headers and contact lines are skipped.
// Without any usable sentence a summary is composed from the profile.
func LocalSummary(text string, p model.Profile, years int, found []model.Skill) string {
	lines := sections.Lines(text, sections.Summary)
	inSection := len(lines) > 0
	if !inSection {
		lines = strings.Split(text, "\n")
	}

	var kept []string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || isContactLine(line) {
			continue
		}
		if _, _, ok := sections.Header(line); ok {
			continue
		}
		if !inSection && len(strings.Fields(line)) < minProseWords {
			continue
		}
		kept = append(kept, line)
	}

	// Summary sections wrap prose over several lines, elsewhere every line
	// stands on its own.
	chunks := kept
	if inSection {
		chunks = []string{strings.Join(kept, " ")}
	}

	var picked []string
	for _, chunk := range chunks {
		for _, s := range reSentence.FindAllString(chunk, -1) {
			s = strings.Join(strings.Fields(s), " ")
			if len(strings.Fields(s)) < minSentenceWords {
				continue
			}
			picked = append(picked, s)
			if len(picked) == summarySentences {
				return truncateRunes(strings.Join(picked, " "), summaryMaxRunes)
			}
		}
	}

	if len(picked) == 0 {
		return composeSummary(p, years, found)
	}
	return truncateRunes(strings.Join(picked, " "), summaryMaxRunes)
}

func isContactLine(line string) bool {
	if reContact.MatchString(line) {
		return true
	}
	digits := 0
	for _, r := range line {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	return digits >= minPhoneDigits
}

func composeSummary(p model.Profile, years int, found []model.Skill) string {
	role := p.SpecificRole
	if role == "" {
		role = profile.DefaultRole(p.Type)
	}

	var b strings.Builder
	b.WriteString(role)
	switch {
	case years == 1:
		b.WriteString(" with 1 year of experience")
	case years > 1:
		fmt.Fprintf(&b, " with %d years of experience", years)
	}
	b.WriteString(".")

	var names []string
	for _, s := range found {
		if s.Confidence <= skills.ConfidenceFallback {
			continue
		}
		names = append(names, s.Name)
		if len(names) == maxSummarySkills {
			break
		}
	}
	if len(names) > 0 {
		b.WriteString(" Skills include ")
		b.WriteString(strings.Join(names, ", "))
		b.WriteString(".")
	}
	return b.String()
}

func truncateRunes(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	r := []rune(s)
	cut := string(r[:limit])
	if i := strings.LastIndex(cut, " "); i > limit/2 {
		cut = cut[:i]
	}
	return strings.TrimRight(cut, " ,;:") + "…"
}

type trait struct {
	name  string
	words *regexp.Regexp
}

func traitWords(terms ...string) *regexp.Regexp {
	quoted := make([]string, 0, len(terms))
	for _, t := range terms {
		quoted = append(quoted, regexp.QuoteMeta(t))
	}
	return regexp.MustCompile(`(?i)(?:^|[^\p{L}])(?:` + strings.Join(quoted, "|") + `)`)
}

var traits = []trait{
	{"Leadership", traitWords("led", "lead", "leading", "managed", "mentored", "supervised", "coordinated", "headed", "leadership")},
	{"Teamwork", traitWords("team", "collaborat", "cooperat", "cross-functional", "together", "équipe")},
	{"Analytical", traitWords("analy", "data-driven", "research", "evaluat", "investigat", "metrics")},
	{"Creativity", traitWords("creativ", "design", "innovat", "original", "imaginat", "invent")},
	{"Communication", traitWords("communicat", "presentation", "public speaking", "wrote", "writing", "negotiat", "client-facing")},
	{"Adaptability", traitWords("adapt", "flexib", "fast-paced", "quick learner", "versatil", "resilien")},
	{"Detail-Oriented", traitWords("detail", "accura", "meticulous", "precise", "thorough", "quality")},
	{"Initiative", traitWords("initiat", "proactive", "self-starter", "founded", "launched", "volunteer", "autonom")},
	{"Organization", traitWords("organiz", "organis", "planned", "planning", "scheduling", "prioritiz", "deadline")},
}

// TraitLabels lists the trait names scored by both the local lexicon and
// the remote classifier.
func TraitLabels() []string {
	out := make([]string, 0, len(traits))
	for _, t := range traits {
		out = append(out, t.name)
	}
	return out
}

// LocalPersonality scores each trait by the number of its lexicon hits.
// Traits without hits are left out.
func LocalPersonality(text string) model.Personality {
	out := model.Personality{Traits: []model.Trait{}}
	for _, t := range traits {
		hits := len(t.words.FindAllStringIndex(text, -1))
		if hits == 0 {
			continue
		}
		score := math.Min(1, traitBaseScore+traitScorePerMatch*float64(hits-1))
		out.Traits = append(out.Traits, model.Trait{Name: t.name, Score: round2(score)})
	}
	sortTraits(out.Traits)
	return out
}

func sortTraits(list []model.Trait) {
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].Score != list[j].Score {
			return list[i].Score > list[j].Score
		}
		return list[i].Name < list[j].Name
	})
}

// LocalRole derives the role from the classified profile. Confidence follows
// the classifier path: title 0.8, keywords 0.6, default 0.4.
func LocalRole(p model.Profile, found []model.Skill) model.Role {
	role := model.Role{
		PrimaryRole:  p.SpecificRole,
		Alternates:   []string{},
		Confidence:   sourceConfidence(p.Source),
		Capabilities: capabilities(found),
	}
	if role.PrimaryRole == "" {
		role.PrimaryRole = profile.DefaultRole(p.Type)
	}
	if def := profile.DefaultRole(p.Type); !strings.EqualFold(def, role.PrimaryRole) {
		role.Alternates = append(role.Alternates, def)
	}
	return role
}

func sourceConfidence(s model.ProfileSource) float64 {
	switch s {
	case model.SourceTitle:
		return titleConfidence
	case model.SourceKeywords:
		return keywordsConfidence
	}
	return defaultConfidence
}

// capabilities are the most confident technical skills, falling back to any
// skill when no technical one was found.
func capabilities(found []model.Skill) []string {
	sorted := append([]model.Skill(nil), found...)
	skills.SortByConfidence(sorted)

	out := []string{}
	for _, s := range sorted {
		if skills.IsTechnicalCategory(s.Category) {
			out = append(out, s.Name)
		}
		if len(out) == maxCapabilities {
			return out
		}
	}
	if len(out) > 0 {
		return out
	}
	for _, s := range sorted {
		out = append(out, s.Name)
		if len(out) == maxCapabilities {
			break
		}
	}
	return out
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
