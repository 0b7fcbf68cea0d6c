package huggingface

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spigell/cv-analyzer/internal/ai"

	"github.com/mitchellh/mapstructure"
)

var _ ai.Inference = (*Client)(nil)

var errEmptyInput = errors.New("input text must not be empty")

type summaryItem struct {
	SummaryText string `mapstructure:"summary_text"`
}

type zeroShotResult struct {
	Labels []string  `mapstructure:"labels"`
	Scores []float64 `mapstructure:"scores"`
}

type entityItem struct {
	EntityGroup string  `mapstructure:"entity_group"`
	Entity      string  `mapstructure:"entity"`
	Word        string  `mapstructure:"word"`
	Score       float64 `mapstructure:"score"`
}

// Summarize runs the summarization model with the given token bounds.
func (c *Client) Summarize(ctx context.Context, text string, opts ai.SummaryOptions) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", errEmptyInput
	}

	params := map[string]any{"do_sample": false}
	if opts.MinLength > 0 {
		params["min_length"] = opts.MinLength
	}
	if opts.MaxLength > 0 {
		params["max_length"] = opts.MaxLength
	}

	var raw any
	if err := c.postModel(ctx, c.summaryModel, request{Inputs: text, Parameters: params}, &raw); err != nil {
		return "", fmt.Errorf("summarize: %w", err)
	}

	var items []summaryItem
	if err := decodeList(raw, &items); err != nil {
		return "", fmt.Errorf("summarize: %w", err)
	}
	for _, item := range items {
		if s := strings.TrimSpace(item.SummaryText); s != "" {
			return s, nil
		}
	}
	return "", errors.New("summarize: empty summary")
}

// Classify runs zero-shot classification against labels. Both the classic
// {labels, scores} object and the newer list of {label, score} shapes are
// accepted.
func (c *Client) Classify(ctx context.Context, text string, labels []string, multiLabel bool) ([]ai.Label, error) {
	if strings.TrimSpace(text) == "" {
		return nil, errEmptyInput
	}
	if len(labels) == 0 {
		return nil, errors.New("classify: candidate labels are required")
	}

	params := map[string]any{
		"candidate_labels": labels,
		"multi_label":      multiLabel,
	}

	var raw any
	if err := c.postModel(ctx, c.zeroShotModel, request{Inputs: text, Parameters: params}, &raw); err != nil {
		return nil, fmt.Errorf("classify: %w", err)
	}

	got, err := decodeZeroShot(raw)
	if err != nil {
		return nil, fmt.Errorf("classify: %w", err)
	}

	got = ai.KnownLabels(got, labels)
	ai.SortLabels(got)
	return got, nil
}

// Entities runs the token classification model with simple aggregation so
// word pieces come back as whole spans.
func (c *Client) Entities(ctx context.Context, text string) ([]ai.Entity, error) {
	if strings.TrimSpace(text) == "" {
		return nil, errEmptyInput
	}

	params := map[string]any{"aggregation_strategy": "simple"}

	var raw any
	if err := c.postModel(ctx, c.nerModel, request{Inputs: text, Parameters: params}, &raw); err != nil {
		return nil, fmt.Errorf("entities: %w", err)
	}

	var items []entityItem
	if err := decodeList(raw, &items); err != nil {
		return nil, fmt.Errorf("entities: %w", err)
	}

	out := make([]ai.Entity, 0, len(items))
	for _, item := range items {
		group := item.EntityGroup
		if group == "" {
			group = strings.TrimPrefix(strings.TrimPrefix(item.Entity, "B-"), "I-")
		}
		word := strings.TrimSpace(strings.ReplaceAll(item.Word, " ##", ""))
		if group == "" || word == "" {
			continue
		}
		out = append(out, ai.Entity{Group: group, Word: word, Score: item.Score})
	}
	return out, nil
}

func decodeZeroShot(raw any) ([]ai.Label, error) {
	switch v := raw.(type) {
	case map[string]any:
		return decodeLabelsObject(v)
	case []any:
		if len(v) == 0 {
			return nil, nil
		}
		if obj, ok := v[0].(map[string]any); ok {
			if _, classic := obj["labels"]; classic {
				return decodeLabelsObject(obj)
			}
		}
		var labels []ai.Label
		if err := mapstructure.WeakDecode(v, &labels); err != nil {
			return nil, fmt.Errorf("decode labels: %w", err)
		}
		return labels, nil
	default:
		return nil, fmt.Errorf("unexpected response shape %T", raw)
	}
}

func decodeLabelsObject(obj map[string]any) ([]ai.Label, error) {
	var res zeroShotResult
	if err := mapstructure.WeakDecode(obj, &res); err != nil {
		return nil, fmt.Errorf("decode labels: %w", err)
	}
	if len(res.Labels) != len(res.Scores) {
		return nil, fmt.Errorf("labels and scores differ in length: %d != %d", len(res.Labels), len(res.Scores))
	}
	labels := make([]ai.Label, 0, len(res.Labels))
	for i, name := range res.Labels {
		labels = append(labels, ai.Label{Name: name, Score: res.Scores[i]})
	}
	return labels, nil
}

// decodeList accepts either a list or a single object and decodes it into
// target, which must point to a slice.
func decodeList(raw any, target any) error {
	if obj, ok := raw.(map[string]any); ok {
		raw = []any{obj}
	}
	if _, ok := raw.([]any); !ok {
		return fmt.Errorf("unexpected response shape %T", raw)
	}
	if err := mapstructure.WeakDecode(raw, target); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
