// Package model holds the records produced by a single résumé analysis.
// Everything here is created fresh per call and never shared between calls.
package model

import (
	"path/filepath"
	"strings"
)

// ProfileType is the coarse candidate category that selects rubrics and expected skills.
type ProfileType string

const (
	ProfileDeveloper    ProfileType = "developer"
	ProfileDesigner     ProfileType = "designer"
	ProfileMarketing    ProfileType = "marketing"
	ProfileSales        ProfileType = "sales"
	ProfileEngineering  ProfileType = "engineering"
	ProfileData         ProfileType = "data"
	ProfileGeneral      ProfileType = "general"
	ProfileProfessional ProfileType = "professional"
)

// ProfileSource tells which classifier path produced a Profile.
type ProfileSource string

const (
	SourceTitle    ProfileSource = "title"
	SourceKeywords ProfileSource = "keywords"
	SourceDefault  ProfileSource = "default"
)

// RawDocument is an already persisted upload. The engine only reads it.
type RawDocument struct {
	Path string `json:"path"`
	Ext  string `json:"ext,omitempty"`
}

// mimeExtensions maps the MIME types uploads declare to extensions.
var mimeExtensions = map[string]string{
	"application/pdf":    "pdf",
	"application/x-pdf":  "pdf",
	"application/msword": "doc",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": "docx",
	"application/vnd.oasis.opendocument.text":                                 "odt",
	"application/rtf":                                                         "rtf",
	"text/rtf":                                                                "rtf",
	"text/plain":                                                              "txt",
	"text/markdown":                                                           "md",
}

// Extension returns the normalized extension without a leading dot. Ext may
// be an extension or a MIME type; the path decides when Ext is empty.
func (d RawDocument) Extension() string {
	ext := strings.ToLower(strings.TrimSpace(d.Ext))
	if ext == "" {
		ext = strings.ToLower(filepath.Ext(d.Path))
	}
	if i := strings.IndexByte(ext, ';'); i >= 0 {
		ext = strings.TrimSpace(ext[:i])
	}
	if mapped, ok := mimeExtensions[ext]; ok {
		return mapped
	}
	ext = strings.TrimPrefix(ext, ".")
	if i := strings.LastIndex(ext, "/"); i >= 0 {
		ext = ext[i+1:]
	}
	return ext
}

type Profile struct {
	Type         ProfileType   `json:"profileType"`
	SpecificRole string        `json:"specificRole"`
	Title        string        `json:"title,omitempty"`
	Source       ProfileSource `json:"source"`
	IsStudent    bool          `json:"isStudent"`
	IsITStudent  bool          `json:"isItStudent"`
}

// Skill is a single extracted skill. Confidence is within [0,1].
type Skill struct {
	Name       string  `json:"name"`
	Confidence float64 `json:"confidence"`
	Category   string  `json:"category"`
}

// EntityBundle keeps unique, sorted values.
type EntityBundle struct {
	Organizations []string `json:"organizations"`
	Dates         []string `json:"dates"`
	Locations     []string `json:"locations"`
}

type ExperienceRecord struct {
	Years         int      `json:"years"`
	Organizations []string `json:"organizations"`
	Locations     []string `json:"locations"`
}

type AcademicProject struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
}

type Role struct {
	PrimaryRole  string   `json:"primaryRole"`
	Alternates   []string `json:"alternates"`
	Confidence   float64  `json:"confidence"`
	Capabilities []string `json:"capabilities"`
}

type Trait struct {
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

type Personality struct {
	Traits []Trait `json:"traits"`
}

type Education struct {
	Level        string   `json:"level"`
	Institutions []string `json:"institutions"`
}

// SubScore is one rubric criterion. Score never exceeds Max.
type SubScore struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
	Max   int    `json:"max"`
}

// ScoreResult.Total is always the exact sum of Breakdown scores.
type ScoreResult struct {
	Total     int        `json:"total"`
	Rubric    string     `json:"rubric"`
	Breakdown []SubScore `json:"breakdown"`
}

// Points returns the score of the named criterion, or zero.
func (s ScoreResult) Points(name string) int {
	for _, sub := range s.Breakdown {
		if sub.Name == name {
			return sub.Score
		}
	}
	return 0
}

// AnalysisRecord is the canonical output of one analysis call.
type AnalysisRecord struct {
	Summary              string              `json:"summary"`
	Profile              Profile             `json:"profile"`
	KeySkills            []Skill             `json:"keySkills"`
	Skills               []Skill             `json:"skills"`
	TechnicalProficiency map[string][]string `json:"technicalProficiency"`
	Role                 Role                `json:"role"`
	Personality          Personality         `json:"personality"`
	Education            Education           `json:"education"`
	Experience           ExperienceRecord    `json:"experience"`
	Entities             EntityBundle        `json:"entities"`
	AcademicProjects     []AcademicProject   `json:"academicProjects"`
	Score                ScoreResult         `json:"score"`
	Recommendation       string              `json:"recommendation"`
}
