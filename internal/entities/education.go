package entities

import (
	"regexp"
	"sort"

	"github.com/spigell/cv-analyzer/internal/model"
)

const (
	LevelPhD        = "PhD"
	LevelMaster     = "Master"
	LevelBachelor   = "Bachelor"
	LevelAssociate  = "Associate"
	LevelHighSchool = "High School"
)

type degreeLevel struct {
	level   string
	pattern *regexp.Regexp
}

func degree(level string, variants string) degreeLevel {
	return degreeLevel{
		level:   level,
		pattern: regexp.MustCompile(`(?i)(?:^|[^\p{L}])(?:` + variants + `)(?:$|[^\p{L}])`),
	}
}

// degreeLevels is ordered from the highest level down.
var degreeLevels = []degreeLevel{
	degree(LevelPhD, `ph\.?\s?d\.?|doctorate|doctoral|doctorat|d\.phil`),
	degree(LevelMaster, `master'?s?(?:\s+(?:of|in|degree|en))|masters|m\.sc\.?|msc|m\.s\.|mba|m\.eng\.?|meng|m\.a\.|mast[eè]re|master\s+\d`),
	degree(LevelBachelor, `bachelor'?s?|b\.sc\.?|bsc|b\.s\.|b\.a\.|b\.eng\.?|beng|b\.?tech|licence\s+(?:en|in|professionnelle)|undergraduate\s+degree`),
	degree(LevelAssociate, `associate'?s?\s+(?:degree|of)|a\.a\.s?|dut|bts|hnd|foundation\s+degree`),
	degree(LevelHighSchool, `high\s+school|secondary\s+school|baccalaur[ée]at|ged|a-levels?|lycée`),
}

// Education picks the highest degree level mentioned in text and the
// organisations from bundle that look like schools.
func Education(text string, bundle model.EntityBundle) model.Education {
	edu := model.Education{Institutions: []string{}}
	for _, d := range degreeLevels {
		if d.pattern.MatchString(text) {
			edu.Level = d.level
			break
		}
	}
	for _, org := range bundle.Organizations {
		if reSchool.MatchString(org) {
			edu.Institutions = append(edu.Institutions, org)
		}
	}
	sort.Strings(edu.Institutions)
	return edu
}

// LevelRank orders levels for scoring; unknown levels rank zero.
func LevelRank(level string) int {
	for i, d := range degreeLevels {
		if d.level == level {
			return len(degreeLevels) - i
		}
	}
	return 0
}
