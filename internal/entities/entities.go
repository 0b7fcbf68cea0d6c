// Package entities pulls organisations, dates and locations out of résumé
// text and derives experience and education from them.
package entities

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/spigell/cv-analyzer/internal/model"
	"github.com/spigell/cv-analyzer/internal/skills"
)

const (
	orgWord    = `[A-Z][\p{L}\p{N}&'\-]*`
	orgJoiner  = `(?:of|and|de|du|des|la|le|&)`
	monthNames = `jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|june?|july?|aug(?:ust)?|sep(?:t(?:ember)?)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?|janvier|février|fevrier|mars|avril|mai|juin|juillet|août|aout|septembre|octobre|novembre|décembre|decembre`
)

var (
	reAtOrg  = regexp.MustCompile(`(?:^|\s)(?:at|for|with|chez|@)[ \t]+(` + orgWord + `(?:[ \t]+(?:` + orgWord + `|` + orgJoiner + `))*)`)
	reJoiner = regexp.MustCompile(`^` + orgJoiner + `$`)

	reSchoolPrefix = regexp.MustCompile(`(?:University|Université|Universite|College|Institute|Institut|École|Ecole|School|Academy|Polytechnic)[ \t]+(?:of[ \t]+|de[ \t]+|d'|des[ \t]+|du[ \t]+|for[ \t]+)?` + orgWord + `(?:[ \t]+` + orgWord + `){0,3}`)
	reSchoolSuffix = regexp.MustCompile(`(?:` + orgWord + `[ \t]+){1,4}(?:University|College|Institute|School|Academy|Polytechnic)`)
	reCorporate    = regexp.MustCompile(`(?:` + orgWord + `[ \t]+){0,3}` + orgWord + `,?[ \t]+(?:Inc|LLC|Ltd|Corp|Corporation|GmbH|SARL|SAS|SA|PLC|Group|Technologies|Solutions|Consulting|Labs|Systems|Company)\b\.?`)
	reCapSpan      = regexp.MustCompile(`[A-Z][\p{Ll}]+(?:[ \t]+[A-Z][\p{Ll}]+){1,3}`)
	reHasYear      = regexp.MustCompile(`\b(?:19|20)\d{2}\b`)

	reYear      = regexp.MustCompile(`\b((?:19[5-9]|20\d)\d)\b`)
	reMonthYear = regexp.MustCompile(`(?i)\b((?:` + monthNames + `)\.?\s+(?:19|20)\d{2})\b`)
	reNumMonth  = regexp.MustCompile(`\b((?:0?[1-9]|1[0-2])/(?:19|20)\d{2})\b`)

	reCityName = regexp.MustCompile(`^[A-Z][\p{Ll}]+(?:[ \-][A-Z][\p{Ll}]+)?$`)

	reRoleWords = regexp.MustCompile(`(?i)(?:^|[^\p{L}])(?:developer|engineer|manager|intern|designer|analyst|specialist|consultant|student|assistant|director|lead|officer|internship|freelance|present|current)(?:$|[^\p{L}])`)
	reSchool    = regexp.MustCompile(`(?i)universit|college|institut|école|ecole|school|academy|polytechnic|faculty|faculté`)
)

var usStates = setOf("AL", "AK", "AZ", "AR", "CA", "CO", "CT", "DE", "FL", "GA", "HI", "ID",
	"IL", "IN", "IA", "KS", "KY", "LA", "ME", "MD", "MA", "MI", "MN", "MS", "MO", "MT", "NE",
	"NV", "NH", "NJ", "NM", "NY", "NC", "ND", "OH", "OK", "OR", "PA", "RI", "SC", "SD", "TN",
	"TX", "UT", "VT", "VA", "WA", "WV", "WI", "WY", "DC")

var countries = setOf("USA", "United States", "Canada", "Mexico", "Brazil", "Argentina",
	"United Kingdom", "UK", "England", "Ireland", "France", "Germany", "Spain", "Portugal",
	"Italy", "Netherlands", "Belgium", "Switzerland", "Austria", "Sweden", "Norway", "Denmark",
	"Finland", "Poland", "Romania", "Greece", "Turkey", "Russia", "Ukraine", "Morocco",
	"Algeria", "Tunisia", "Egypt", "Nigeria", "Kenya", "South Africa", "India", "Pakistan",
	"China", "Japan", "Korea", "South Korea", "Singapore", "Malaysia", "Indonesia",
	"Philippines", "Vietnam", "Thailand", "Australia", "New Zealand", "Israel", "UAE",
	"Saudi Arabia", "Qatar", "Lebanon", "Senegal")

var multiWordCities = []string{
	"New York", "San Francisco", "Los Angeles", "Las Vegas", "San Diego", "San Jose",
	"Salt Lake City", "New Orleans", "Hong Kong", "Rio de Janeiro", "Buenos Aires",
	"Mexico City", "Kuala Lumpur", "Tel Aviv", "Cape Town", "Abu Dhabi", "New Delhi",
	"Saint Petersburg", "São Paulo", "Sao Paulo", "Ho Chi Minh City", "Quebec City",
	"Santa Clara", "Palo Alto", "Mountain View", "St. Louis", "Washington D.C.",
}

var reCities = func() *regexp.Regexp {
	quoted := make([]string, 0, len(multiWordCities))
	for _, c := range multiWordCities {
		quoted = append(quoted, regexp.QuoteMeta(c))
	}
	return regexp.MustCompile(`(?:^|[^\p{L}])(` + strings.Join(quoted, "|") + `)(?:$|[^\p{L}])`)
}()

func setOf(items ...string) map[string]bool {
	m := make(map[string]bool, len(items))
	for _, i := range items {
		m[i] = true
	}
	return m
}

// Extract returns the entity bundle for text. Values are unique and sorted.
func Extract(text string) model.EntityBundle {
	locations := extractLocations(text)
	return model.EntityBundle{
		Organizations: extractOrganizations(text, locations),
		Dates:         extractDates(text),
		Locations:     locations,
	}
}

// Merge unions two bundles.
func Merge(a, b model.EntityBundle) model.EntityBundle {
	return model.EntityBundle{
		Organizations: union(a.Organizations, b.Organizations),
		Dates:         union(a.Dates, b.Dates),
		Locations:     union(a.Locations, b.Locations),
	}
}

// CleanOrganization trims an organisation candidate and reports whether
// it survives the common word, skill and job title filters.
func CleanOrganization(s string) (string, bool) {
	s = strings.Trim(strings.TrimSpace(s), ".,;:-–—()|")
	s = strings.Join(strings.Fields(s), " ")
	if strings.HasPrefix(strings.ToLower(s), "the ") {
		s = s[4:]
	}
	if utf8.RuneCountInString(s) < 2 || utf8.RuneCountInString(s) > 80 {
		return "", false
	}

	fields := strings.Fields(s)
	common := 0
	for _, f := range fields {
		if skills.IsCommonWord(f) {
			common++
		}
	}
	if common == len(fields) || (skills.IsCommonWord(fields[0]) && !reSchool.MatchString(s)) {
		return "", false
	}
	if _, _, ok := skills.Lookup(s); ok {
		return "", false
	}
	if reRoleWords.MatchString(s) || reHasYear.MatchString(s) {
		return "", false
	}
	return s, true
}

func extractOrganizations(text string, locations []string) []string {
	isLocation := setOf(locations...)
	for _, loc := range locations {
		if city, _, ok := strings.Cut(loc, ","); ok {
			isLocation[city] = true
		}
	}
	seen := make(map[string]bool)
	add := func(candidate string) {
		org, ok := CleanOrganization(candidate)
		if !ok || isLocation[org] || countries[org] {
			return
		}
		seen[org] = true
	}

	for _, m := range reAtOrg.FindAllStringSubmatch(text, -1) {
		add(trimJoiners(m[1]))
	}
	for _, re := range []*regexp.Regexp{reSchoolPrefix, reSchoolSuffix, reCorporate} {
		for _, m := range re.FindAllString(text, -1) {
			add(m)
		}
	}

	// Capitalised spans are only trusted on lines that also carry a year,
	// which is how employment and education entries are usually written.
	for _, line := range strings.Split(text, "\n") {
		if !reHasYear.MatchString(line) {
			continue
		}
		for _, part := range strings.FieldsFunc(line, isEntrySeparator) {
			for _, m := range reCapSpan.FindAllString(part, -1) {
				add(m)
			}
		}
	}

	return sortedKeys(seen)
}

func isEntrySeparator(r rune) bool {
	switch r {
	case ',', '|', '–', '—', '(', ')', ';', '•':
		return true
	}
	return false
}

// trimJoiners drops trailing lowercase joiners left by a greedy match.
func trimJoiners(s string) string {
	fields := strings.Fields(s)
	for len(fields) > 0 && reJoiner.MatchString(fields[len(fields)-1]) {
		fields = fields[:len(fields)-1]
	}
	return strings.Join(fields, " ")
}

func extractDates(text string) []string {
	seen := make(map[string]bool)
	for _, m := range reMonthYear.FindAllStringSubmatch(text, -1) {
		seen[strings.Join(strings.Fields(m[1]), " ")] = true
	}
	for _, m := range reNumMonth.FindAllStringSubmatch(text, -1) {
		seen[m[1]] = true
	}
	for _, m := range reYear.FindAllStringSubmatch(text, -1) {
		seen[m[1]] = true
	}
	return sortedKeys(seen)
}

// extractLocations looks at comma separated neighbours: a one or two word
// capitalised city followed by a US state code or a known country.
func extractLocations(text string) []string {
	seen := make(map[string]bool)
	for _, line := range strings.Split(text, "\n") {
		parts := strings.Split(line, ",")
		for i := 0; i+1 < len(parts); i++ {
			city := cityCandidate(parts[i])
			if city == "" {
				continue
			}
			if region := regionOf(parts[i+1]); region != "" {
				seen[city+", "+region] = true
			}
		}
	}
	for _, m := range reCities.FindAllStringSubmatch(text, -1) {
		if !coveredCity(seen, m[1]) {
			seen[m[1]] = true
		}
	}
	return sortedKeys(seen)
}

func coveredCity(seen map[string]bool, city string) bool {
	for loc := range seen {
		if strings.HasPrefix(loc, city+", ") {
			return true
		}
	}
	return false
}

func cityCandidate(s string) string {
	if i := strings.LastIndexAny(s, "|–—(•;:"); i >= 0 {
		s = s[i:]
		_, size := utf8.DecodeRuneInString(s)
		s = s[size:]
	}
	s = strings.TrimSpace(s)
	if !reCityName.MatchString(s) || skills.IsCommonWord(s) || reRoleWords.MatchString(s) {
		return ""
	}
	if _, _, ok := skills.Lookup(s); ok {
		return ""
	}
	return s
}

func regionOf(s string) string {
	fields := strings.Fields(s)
	for i := range fields {
		fields[i] = strings.TrimRight(fields[i], ".;)|")
	}
	if len(fields) >= 2 && countries[fields[0]+" "+fields[1]] {
		return fields[0] + " " + fields[1]
	}
	if len(fields) >= 1 && (countries[fields[0]] || usStates[fields[0]]) {
		return fields[0]
	}
	return ""
}

func union(a, b []string) []string {
	seen := make(map[string]bool, len(a)+len(b))
	for _, s := range a {
		seen[s] = true
	}
	for _, s := range b {
		if s = strings.TrimSpace(s); s != "" {
			seen[s] = true
		}
	}
	return sortedKeys(seen)
}

func sortedKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
