package entities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/spigell/cv-analyzer/internal/model"
)

var fixedNow = time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)

func TestExtract(t *testing.T) {
	text := `Jane Doe
Backend Developer
San Francisco, CA

Experience
Acme Corp, Backend Developer, Jan 2018 - 2021
Built payment services with Go for Globex Inc.
Intern at Initech | Paris, France | 06/2016

Education
Bachelor of Science, Stanford University, 2017`

	got := Extract(text)

	assert.Equal(t, []string{"Acme Corp", "Globex Inc", "Initech", "Stanford University"}, got.Organizations)
	assert.Equal(t, []string{"06/2016", "2016", "2017", "2018", "2021", "Jan 2018"}, got.Dates)
	assert.Equal(t, []string{"Paris, France", "San Francisco, CA"}, got.Locations)
}

func TestCleanOrganization(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{in: " The Boring Company. ", want: "Boring Company", ok: true},
		{in: "University of Lyon", want: "University of Lyon", ok: true},
		{in: "Kubernetes", ok: false},
		{in: "Senior Developer", ok: false},
		{in: "January", ok: false},
		{in: "X", ok: false},
	}

	for _, tt := range tests {
		got, ok := CleanOrganization(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestMergeUnionsAndSorts(t *testing.T) {
	got := Merge(
		model.EntityBundle{Organizations: []string{"Globex"}, Dates: []string{"2020"}},
		model.EntityBundle{Organizations: []string{"Acme", "Globex", " "}, Locations: []string{"Berlin"}},
	)
	assert.Equal(t, []string{"Acme", "Globex"}, got.Organizations)
	assert.Equal(t, []string{"2020"}, got.Dates)
	assert.Equal(t, []string{"Berlin"}, got.Locations)
}

func TestExperienceYears(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		text  string
		title string
		want  int
	}{
		{name: "explicit phrase", text: "Engineer with 5 years of experience in payments.", want: 5},
		{name: "explicit phrase beats spans", text: "3+ years experience\n2001 - 2020", want: 3},
		{name: "highest explicit mention", text: "2 years of experience in Go, 7 years of professional experience overall", want: 7},
		{name: "explicit capped", text: "40 years of experience", want: MaxExperienceYears},
		{name: "overlapping spans merge", text: "Acme 2018–2020\nGlobex 2019–2021", want: 3},
		{name: "touching spans merge", text: "2015 - 2018\n2018 - 2020", want: 5},
		{name: "disjoint spans add", text: "2010 - 2012\n2015 to 2016", want: 3},
		{name: "open ended", text: "Mar 2021 - present", want: 4},
		{name: "month separated", text: "09/2019 – 06/2022", want: 3},
		{name: "since", text: "Working at Acme since 2022.", want: 3},
		{name: "from with range is a range", text: "from 2019 to 2020", want: 1},
		{name: "implausible spans dropped", text: "1900 - 1910\n2030 - 2045", want: 0, title: ""},
		{name: "education spans skipped", text: "Experience\nDeveloper at Acme 2016 - 2020\n\nEducation\nBSc Computer Science 2012 - 2016", want: 4},
		{name: "education first then experience", text: "Education\nBSc 2012 - 2016\n\nWork Experience\nDeveloper 2016 - 2020", want: 4},
		{name: "education spans count without experience section", text: "Education\nBSc 2012 - 2016\nDeveloper 2016 - 2020", want: 8},
		{name: "senior title fallback", text: "No dates here.", title: "Senior Accountant", want: 5},
		{name: "plain title fallback", text: "No dates here.", title: "Accountant", want: 2},
		{name: "nothing", text: "No dates here.", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ExperienceYears(tt.text, tt.title, fixedNow))
		})
	}
}

func TestMergeIntervalsNeverExceedsSpan(t *testing.T) {
	in := []Interval{{2012, 2016}, {2010, 2014}, {2013, 2015}, {2018, 2019}, {2011, 2012}}
	merged := MergeIntervals(in)

	assert.Equal(t, []Interval{{2010, 2016}, {2018, 2019}}, merged)
	assert.LessOrEqual(t, TotalYears(merged), 2019-2010)
	assert.Nil(t, MergeIntervals(nil))
}

func TestEducation(t *testing.T) {
	bundle := model.EntityBundle{Organizations: []string{"Stanford University", "Acme Corp", "Ecole Polytechnique"}}

	edu := Education("Master of Science in CS\nBachelor of Arts", bundle)
	assert.Equal(t, LevelMaster, edu.Level)
	assert.Equal(t, []string{"Ecole Polytechnique", "Stanford University"}, edu.Institutions)

	assert.Equal(t, LevelPhD, Education("Ph.D. in Physics", model.EntityBundle{}).Level)
	assert.Equal(t, LevelHighSchool, Education("High School Diploma", model.EntityBundle{}).Level)
	assert.Empty(t, Education("Scrum Master certified", model.EntityBundle{}).Level)

	assert.Greater(t, LevelRank(LevelPhD), LevelRank(LevelBachelor))
	assert.Zero(t, LevelRank(""))
}
