package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	_ "embed"

	"github.com/spigell/cv-analyzer/internal/ai"
	"github.com/spigell/cv-analyzer/internal/utils"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, system, message string) (string, error)
}

// Inference implements ai.Inference on top of a Gemini text generator by
// asking for JSON answers and decoding them loosely.
type Inference struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
}

var _ ai.Inference = (*Inference)(nil)

//go:embed system.md
var systemInstruction string

const defaultMaxLogLength = 200

func NewInference(generator contentGenerator, maxLogLength int, logger *zap.Logger) *Inference {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Inference{
		generator: generator,
		logger:    logger,
		maxLogLen: maxLogLength,
	}
}

func (i *Inference) Summarize(ctx context.Context, text string, opts ai.SummaryOptions) (string, error) {
	bounds := "in two or three sentences"
	if opts.MaxLength > 0 {
		bounds = fmt.Sprintf("in %d to %d words", max(opts.MinLength*3/4, 1), opts.MaxLength*3/4)
	}
	task := fmt.Sprintf("Task: summarise the candidate %s, third person, plain text.", bounds)

	raw, err := i.generate(ctx, "summarize", task, text)
	if err != nil {
		return "", err
	}

	summary := strings.TrimSpace(strings.Trim(extractJSON(raw), `"`))
	if summary == "" {
		return "", fmt.Errorf("summarize: empty summary")
	}
	return summary, nil
}

func (i *Inference) Classify(ctx context.Context, text string, labels []string, multiLabel bool) ([]ai.Label, error) {
	if len(labels) == 0 {
		return nil, fmt.Errorf("classify: candidate labels are required")
	}

	candidates, err := json.Marshal(labels)
	if err != nil {
		return nil, fmt.Errorf("marshal labels: %w", err)
	}

	mode := "Exactly one label is correct: scores must sum to 1."
	if multiLabel {
		mode = "Score every label independently."
	}
	task := fmt.Sprintf("Task: score how well each candidate label describes the candidate. %s\n"+
		"Candidate labels: %s\n"+
		`Answer as {"labels":[{"label":"<candidate>","score":<0..1>}]}.`, mode, candidates)

	raw, err := i.generate(ctx, "classify", task, text)
	if err != nil {
		return nil, err
	}

	var payload struct {
		Labels []ai.Label `mapstructure:"labels"`
	}
	if err := decodeJSON(raw, &payload); err != nil {
		return nil, fmt.Errorf("classify: %w", err)
	}

	got := ai.KnownLabels(payload.Labels, labels)
	ai.SortLabels(got)
	return got, nil
}

func (i *Inference) Entities(ctx context.Context, text string) ([]ai.Entity, error) {
	task := "Task: list the named entities in the résumé. Use the groups ORG for organisations, " +
		"LOC for places, PER for people and MISC for anything else.\n" +
		`Answer as {"entities":[{"entity_group":"ORG","word":"<as written>","score":<0..1>}]}.`

	raw, err := i.generate(ctx, "entities", task, text)
	if err != nil {
		return nil, err
	}

	var payload struct {
		Entities []ai.Entity `mapstructure:"entities"`
	}
	if err := decodeJSON(raw, &payload); err != nil {
		return nil, fmt.Errorf("entities: %w", err)
	}

	out := make([]ai.Entity, 0, len(payload.Entities))
	for _, e := range payload.Entities {
		e.Group = strings.ToUpper(strings.TrimSpace(e.Group))
		e.Word = strings.TrimSpace(e.Word)
		if e.Group == "" || e.Word == "" {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (i *Inference) generate(ctx context.Context, task, instruction, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%s: input text must not be empty", task)
	}

	message := instruction + "\n\nRésumé:\n" + text

	i.logger.Debug("gemini generate content request",
		zap.String("task", task),
		zap.Int("prompt_length", utf8.RuneCountInString(message)),
		zap.String("prompt_preview", utils.TruncateForLog(message, i.maxLogLen)),
	)

	raw, err := i.generator.GenerateContent(ctx, systemInstruction, message)
	if err != nil {
		return "", fmt.Errorf("%s: %w", task, err)
	}

	i.logger.Debug("gemini generate content response",
		zap.String("task", task),
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", utils.TruncateForLog(raw, i.maxLogLen)),
	)

	return raw, nil
}

func decodeJSON(raw string, target any) error {
	var data map[string]any
	if err := json.Unmarshal([]byte(extractJSON(raw)), &data); err != nil {
		return fmt.Errorf("parse gemini response: %w", err)
	}
	if err := mapstructure.WeakDecode(data, target); err != nil {
		return fmt.Errorf("decode gemini response: %w", err)
	}
	return nil
}

// extractJSON strips Markdown code fences the model sometimes adds despite
// being asked not to.
func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}
