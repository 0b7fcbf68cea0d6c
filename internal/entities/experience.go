package entities

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/spigell/cv-analyzer/internal/model"
	"github.com/spigell/cv-analyzer/internal/sections"
)

const (
	MaxExperienceYears = 25

	earliestStartYear = 1950
	futureYearsWindow = 15
	seniorYears       = 5
	titledYears       = 2
)

const (
	yearPattern   = `((?:19|20)\d{2})`
	monthPrefix   = `(?:(?:` + monthNames + `)\.?\s+|\d{1,2}/)?`
	rangeSep      = `\s*(?:-|–|—|to|until|till|through|à|au)\s*`
	openEndedWord = `present|current|now|today|ongoing|date|aujourd'hui|actuel`
)

var (
	reExplicitYears = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(\d{1,2})\+?\s*(?:years?|yrs?)\.?\s+(?:of\s+)?(?:professional\s+|work\s+|working\s+|industry\s+|relevant\s+|hands-on\s+|combined\s+)?experience`),
		regexp.MustCompile(`(?i)experience\s*(?:of|:)?\s*(\d{1,2})\+?\s*(?:years?|yrs?)`),
		regexp.MustCompile(`(?i)(?:over|more\s+than)\s+(\d{1,2})\s+(?:years?|yrs?)\s+(?:in|as|of|working)`),
		regexp.MustCompile(`(?i)(\d{1,2})\+?\s*(?:years?|yrs?)\s+(?:in|as|working\s+(?:in|as|on))\s`),
		regexp.MustCompile(`(?i)(\d{1,2})\s+ans\s+d['’]exp[ée]rience`),
	}

	reRange   = regexp.MustCompile(`(?i)` + monthPrefix + yearPattern + rangeSep + `(?:` + monthPrefix + yearPattern + `|(` + openEndedWord + `))`)
	reSince   = regexp.MustCompile(`(?i)(?:since|from|depuis)\s+` + monthPrefix + yearPattern + `(` + rangeSep + `)?`)
	reSenior  = regexp.MustCompile(`(?i)(?:^|[^\p{L}])(?:senior|sr\.?|lead|manager|director|head|principal|chief|vp|vice\s+president)(?:$|[^\p{L}])`)
	reNumeric = regexp.MustCompile(`^\d+$`)
)

// Interval is a closed span of years.
type Interval struct {
	Start int
	End   int
}

// Experience builds the experience record for text. now decides where
// open-ended spans stop and which years count as too far in the future.
func Experience(text, title string, bundle model.EntityBundle, now time.Time) model.ExperienceRecord {
	return model.ExperienceRecord{
		Years:         ExperienceYears(text, title, now),
		Organizations: bundle.Organizations,
		Locations:     bundle.Locations,
	}
}

// ExperienceYears returns the candidate's years of experience: an explicit
// "N years of experience" statement first, then merged employment spans,
// then a guess from the seniority of the title. The result is within
// [0, MaxExperienceYears].
func ExperienceYears(text, title string, now time.Time) int {
	if n, ok := explicitYears(text); ok {
		return clampYears(n)
	}
	if intervals := Intervals(employmentText(text), now); len(intervals) > 0 {
		return clampYears(TotalYears(MergeIntervals(intervals)))
	}
	switch {
	case reSenior.MatchString(title):
		return seniorYears
	case strings.TrimSpace(title) != "":
		return titledYears
	}
	return 0
}

// HasExplicitYears reports whether text states its years of experience.
func HasExplicitYears(text string) bool {
	_, ok := explicitYears(text)
	return ok
}

// SeniorTitle reports whether title carries a seniority marker.
func SeniorTitle(title string) bool {
	return reSenior.MatchString(title)
}

// employmentText drops the education section when the résumé has an
// experience section, so study years are not counted as employment.
func employmentText(text string) string {
	if !sections.Has(text, sections.Experience) {
		return text
	}
	return sections.Without(text, sections.Education)
}

func explicitYears(text string) (int, bool) {
	best := 0
	for _, re := range reExplicitYears {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			if n, err := strconv.Atoi(m[1]); err == nil && n > best {
				best = n
			}
		}
	}
	return best, best > 0
}

// Intervals extracts year spans such as "2018 - 2021", "Mar 2019 to
// present" or "since 2020". Spans outside [1950, now+15] or running
// backwards are dropped.
func Intervals(text string, now time.Time) []Interval {
	current := now.Year()
	var out []Interval
	add := func(start, end int) {
		if start < earliestStartYear || start > current+futureYearsWindow || end > current+futureYearsWindow || start > end {
			return
		}
		out = append(out, Interval{Start: start, End: end})
	}

	for _, m := range reRange.FindAllStringSubmatch(text, -1) {
		start, _ := strconv.Atoi(m[1])
		end := current
		if reNumeric.MatchString(m[2]) {
			end, _ = strconv.Atoi(m[2])
		}
		add(start, end)
	}
	for _, m := range reSince.FindAllStringSubmatch(text, -1) {
		if m[2] != "" {
			continue
		}
		start, _ := strconv.Atoi(m[1])
		add(start, current)
	}
	return out
}

// MergeIntervals sorts spans by start and merges those that overlap or
// touch, so concurrent roles are not counted twice.
func MergeIntervals(in []Interval) []Interval {
	if len(in) == 0 {
		return nil
	}
	sorted := make([]Interval, len(in))
	copy(sorted, in)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Start != sorted[j].Start {
			return sorted[i].Start < sorted[j].Start
		}
		return sorted[i].End < sorted[j].End
	})

	merged := []Interval{sorted[0]}
	for _, iv := range sorted[1:] {
		last := &merged[len(merged)-1]
		if iv.Start <= last.End {
			if iv.End > last.End {
				last.End = iv.End
			}
			continue
		}
		merged = append(merged, iv)
	}
	return merged
}

// TotalYears sums the lengths of already merged spans.
func TotalYears(merged []Interval) int {
	total := 0
	for _, iv := range merged {
		total += iv.End - iv.Start
	}
	return total
}

func clampYears(n int) int {
	switch {
	case n < 0:
		return 0
	case n > MaxExperienceYears:
		return MaxExperienceYears
	}
	return n
}
