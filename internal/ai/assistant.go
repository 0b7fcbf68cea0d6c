package ai

import (
	"context"
	"sort"
)

// Entity group labels used by token classification models.
const (
	GroupOrganization = "ORG"
	GroupLocation     = "LOC"
	GroupPerson       = "PER"
	GroupMisc         = "MISC"
)

// Label is one candidate label with the model's score.
type Label struct {
	Name  string  `mapstructure:"label"`
	Score float64 `mapstructure:"score"`
}

// Entity is one token classification span.
type Entity struct {
	Group string  `mapstructure:"entity_group"`
	Word  string  `mapstructure:"word"`
	Score float64 `mapstructure:"score"`
}

// SummaryOptions bounds the length of a generated summary in tokens.
type SummaryOptions struct {
	MinLength int
	MaxLength int
}

// Inference is the remote NLP collaborator. Implementations must be safe for
// concurrent use; the analysis engine calls all three methods in parallel.
type Inference interface {
	Summarize(ctx context.Context, text string, opts SummaryOptions) (string, error)
	// Classify scores text against the candidate labels. With multiLabel set
	// every label is scored independently, otherwise scores sum to one.
	Classify(ctx context.Context, text string, labels []string, multiLabel bool) ([]Label, error)
	Entities(ctx context.Context, text string) ([]Entity, error)
}

// SortLabels orders labels by descending score, then by name.
func SortLabels(labels []Label) {
	sort.SliceStable(labels, func(i, j int) bool {
		if labels[i].Score != labels[j].Score {
			return labels[i].Score > labels[j].Score
		}
		return labels[i].Name < labels[j].Name
	})
}

// KnownLabels drops labels that were not among the candidates. Models
// sometimes echo rewritten or invented labels back.
func KnownLabels(got []Label, candidates []string) []Label {
	known := make(map[string]bool, len(candidates))
	for _, c := range candidates {
		known[c] = true
	}
	out := make([]Label, 0, len(got))
	seen := make(map[string]bool, len(got))
	for _, l := range got {
		if !known[l.Name] || seen[l.Name] {
			continue
		}
		seen[l.Name] = true
		out = append(out, l)
	}
	return out
}
