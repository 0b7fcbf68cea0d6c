package sections

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHeader(t *testing.T) {
	tests := []struct {
		line    string
		section string
		rest    string
		ok      bool
	}{
		{line: "SKILLS", section: Skills, ok: true},
		{line: "Technical Skills:", section: Skills, ok: true},
		{line: "Skills & Tools", section: Skills, ok: true},
		{line: "• Work Experience", section: Experience, ok: true},
		{line: "Skills: Go, SQL", section: Skills, rest: "Go, SQL", ok: true},
		{line: "Projets académiques", section: Projects, ok: true},
		{line: "Built a REST API in Go", ok: false},
		{line: "", ok: false},
	}

	for _, tt := range tests {
		section, rest, ok := Header(tt.line)
		assert.Equal(t, tt.ok, ok, tt.line)
		assert.Equal(t, tt.section, section, tt.line)
		assert.Equal(t, tt.rest, rest, tt.line)
	}
}

func TestLines(t *testing.T) {
	text := "Jane Doe\nSkills: Go\nDocker, Kubernetes\n\nEducation\nMIT\nTools\nTerraform"

	assert.Equal(t, []string{"Go", "Docker, Kubernetes", "Terraform"}, Lines(text, Skills))
	assert.Equal(t, []string{"MIT"}, Lines(text, Education))
	assert.Empty(t, Lines(text, Projects))
	assert.True(t, Has(text, Education))
	assert.False(t, Has(text, Summary))
}

func TestWithout(t *testing.T) {
	text := "Jane Doe\nExperience\nAcme 2019 - 2023\nEducation\nMIT 2012 - 2016\nSkills: Go"

	assert.Equal(t, "Jane Doe\nExperience\nAcme 2019 - 2023\nSkills: Go", Without(text, Education))
	assert.Equal(t, text, Without(text, Projects))
}
