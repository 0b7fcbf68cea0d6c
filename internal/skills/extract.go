package skills

import (
	"math"
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/spigell/cv-analyzer/internal/model"
	"github.com/spigell/cv-analyzer/internal/sections"
)

// Confidence assigned by the pass that found a skill. A skill found by
// several passes keeps the highest value.
const (
	ConfidenceSection  = 0.9
	ConfidenceTagList  = 0.85
	ConfidenceBullet   = 0.8
	ConfidenceProject  = 0.75
	ConfidenceFullText = 0.7
	ConfidenceToken    = 0.6
	ConfidenceOther    = 0.5
	ConfidenceFallback = 0.3
)

const (
	maxTagLineRunes = 160
	maxTagRunes     = 32
	maxTagWords     = 3
)

var fallbackSkills = []string{"Communication", "Teamwork", "Problem Solving", "Microsoft Office"}

// IsFallback reports whether s is one of the skills Extract injects when it
// finds none, carrying the fallback confidence.
func IsFallback(s model.Skill) bool {
	if math.Abs(s.Confidence-ConfidenceFallback) > 1e-6 {
		return false
	}
	for _, name := range fallbackSkills {
		if strings.EqualFold(name, s.Name) {
			return true
		}
	}
	return false
}

var (
	reBullet   = regexp.MustCompile(`^\s*(?:[-*•▪►■◦‣–]|\d{1,2}[.)])\s+`)
	reTagSplit = regexp.MustCompile(`\s*[,;|•·]\s*`)
)

const tokenCutset = "()[]{}<>\"'`,;:!?"

// Options tune a single extraction run.
type Options struct {
	ITStudent bool
}

// Result is everything the skill extractor found.
type Result struct {
	Skills       []model.Skill
	Projects     []model.AcademicProject
	FallbackUsed bool
}

type collector struct {
	byKey map[string]*model.Skill
}

func newCollector() *collector {
	return &collector{byKey: make(map[string]*model.Skill)}
}

func (c *collector) add(name, category string, confidence float64) {
	key := strings.ToLower(name)
	if s, ok := c.byKey[key]; ok {
		if confidence > s.Confidence {
			s.Confidence = confidence
		}
		return
	}
	c.byKey[key] = &model.Skill{Name: name, Category: category, Confidence: confidence}
}

func (c *collector) addKnown(text string, confidence float64) {
	for _, kw := range keywords {
		if kw.Match(text) {
			c.add(kw.Name, kw.Category, confidence)
		}
	}
}

func (c *collector) list() []model.Skill {
	out := make([]model.Skill, 0, len(c.byKey))
	for _, s := range c.byKey {
		out = append(out, *s)
	}
	SortByConfidence(out)
	return out
}

// Extract runs every pass over text: the skills section, comma separated
// tag lists, bullet points, the full text and standalone technical tokens.
// IT students additionally get their academic projects mined. When nothing
// is found a small generic set is returned with low confidence.
func Extract(text string, opts Options) Result {
	c := newCollector()

	if lines := sections.Lines(text, sections.Skills); len(lines) > 0 {
		c.addKnown(strings.Join(lines, "\n"), ConfidenceSection)
		for _, line := range lines {
			c.tagList(line, true)
		}
	}

	var bullets []string
	for _, line := range strings.Split(text, "\n") {
		if reBullet.MatchString(line) {
			bullets = append(bullets, reBullet.ReplaceAllString(line, ""))
		}
		c.tagList(line, false)
	}
	if len(bullets) > 0 {
		c.addKnown(strings.Join(bullets, "\n"), ConfidenceBullet)
	}

	c.addKnown(text, ConfidenceFullText)
	c.tokens(text)

	var projects []model.AcademicProject
	if opts.ITStudent {
		projects = ExtractProjects(text)
		for _, p := range projects {
			for _, tech := range p.Technologies {
				if name, cat, ok := Lookup(tech); ok {
					c.add(name, cat, ConfidenceProject)
				}
			}
		}
	}

	res := Result{Skills: c.list(), Projects: projects}
	if len(res.Skills) == 0 {
		res.FallbackUsed = true
		for _, name := range fallbackSkills {
			canonical, cat, _ := Lookup(name)
			c.add(canonical, cat, ConfidenceFallback)
		}
		res.Skills = c.list()
	}
	return res
}

// tagList treats short separator heavy lines as lists of skill tags.
// Unknown tags are kept only when the line already looks like a skill list.
func (c *collector) tagList(line string, inSkills bool) {
	line = strings.TrimSpace(reBullet.ReplaceAllString(line, ""))
	if _, rest, ok := sections.Header(line); ok {
		line = rest
	}
	if line == "" || utf8.RuneCountInString(line) > maxTagLineRunes {
		return
	}

	items := reTagSplit.Split(line, -1)
	if len(items) < 3 && !(inSkills && len(items) >= 2) {
		return
	}

	var known int
	var unknown []string
	for _, item := range items {
		item = strings.TrimRight(strings.TrimSpace(item), ".")
		if item == "" {
			continue
		}
		if name, cat, ok := Lookup(item); ok {
			c.add(name, cat, ConfidenceTagList)
			known++
			continue
		}
		if looksLikeTag(item) {
			unknown = append(unknown, item)
		}
	}

	if known == 0 || (!inSkills && known*2 < len(items)) {
		return
	}
	for _, item := range unknown {
		c.add(item, CategoryOther, ConfidenceOther)
	}
}

// tokens picks up standalone technical tokens such as "Node.js" or "C++".
func (c *collector) tokens(text string) {
	for _, field := range strings.Fields(text) {
		tok := strings.Trim(field, tokenCutset)
		tok = strings.TrimRight(tok, ".")
		if !technicalToken(tok) {
			continue
		}
		if name, cat, ok := Lookup(tok); ok {
			c.add(name, cat, ConfidenceToken)
		}
	}
}

func technicalToken(tok string) bool {
	n := utf8.RuneCountInString(tok)
	if n < 2 || n > 20 || IsCommonWord(tok) {
		return false
	}
	if strings.ContainsAny(tok, "@/\\") || strings.HasPrefix(strings.ToLower(tok), "http") {
		return false
	}
	if !strings.ContainsFunc(tok, unicode.IsLetter) {
		return false
	}
	if strings.ContainsAny(tok, "+#") {
		return true
	}
	if strings.Contains(tok, ".") {
		// Abbreviations like "B.Sc" or "Ph.D" have no long segment.
		for _, part := range strings.Split(tok, ".") {
			if utf8.RuneCountInString(part) >= 3 {
				return true
			}
		}
		return false
	}
	return camelCase(tok)
}

func camelCase(tok string) bool {
	var prevLower bool
	for _, r := range tok {
		if unicode.IsUpper(r) && prevLower {
			return true
		}
		prevLower = unicode.IsLower(r)
	}
	return false
}

func looksLikeTag(item string) bool {
	n := utf8.RuneCountInString(item)
	if n < 2 || n > maxTagRunes || IsCommonWord(item) {
		return false
	}
	if len(strings.Fields(item)) > maxTagWords {
		return false
	}
	if strings.ContainsAny(item, "@:") {
		return false
	}
	return strings.ContainsFunc(item, unicode.IsLetter)
}

// SortByConfidence orders skills by confidence, then by name.
func SortByConfidence(skills []model.Skill) {
	sort.SliceStable(skills, func(i, j int) bool {
		if skills[i].Confidence != skills[j].Confidence {
			return skills[i].Confidence > skills[j].Confidence
		}
		return strings.ToLower(skills[i].Name) < strings.ToLower(skills[j].Name)
	})
}

// Categorize groups skill names by taxonomy category. Names inside each
// category are sorted; skills without a category land in "other".
func Categorize(list []model.Skill) map[string][]string {
	out := make(map[string][]string)
	for _, s := range list {
		cat := s.Category
		if cat == "" {
			cat = CategoryOther
		}
		out[cat] = append(out[cat], s.Name)
	}
	for cat := range out {
		sort.Slice(out[cat], func(i, j int) bool {
			return strings.ToLower(out[cat][i]) < strings.ToLower(out[cat][j])
		})
	}
	return out
}

// Merge unions two skill lists keeping the highest confidence per name.
func Merge(a, b []model.Skill) []model.Skill {
	c := newCollector()
	for _, s := range a {
		c.add(s.Name, s.Category, s.Confidence)
	}
	for _, s := range b {
		name, cat := s.Name, s.Category
		if canonical, known, ok := Lookup(name); ok {
			name, cat = canonical, known
		}
		if cat == "" {
			cat = CategoryOther
		}
		c.add(name, cat, s.Confidence)
	}
	return c.list()
}
