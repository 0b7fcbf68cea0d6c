package analysis

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spigell/cv-analyzer/internal/ai"
	"github.com/spigell/cv-analyzer/internal/document"
	"github.com/spigell/cv-analyzer/internal/entities"
	"github.com/spigell/cv-analyzer/internal/logger"
	"github.com/spigell/cv-analyzer/internal/model"
	"github.com/spigell/cv-analyzer/internal/profile"
	"github.com/spigell/cv-analyzer/internal/scoring"
	"github.com/spigell/cv-analyzer/internal/skills"
)

// Axis names as they appear in logs.
const (
	AxisSummary     = "summary"
	AxisSkills      = "skills"
	AxisRole        = "role"
	AxisPersonality = "personality"
	AxisEntities    = "entities"
)

const DefaultMaxRemoteChars = 3000

// Config tunes an Engine. Zero values select the defaults.
type Config struct {
	Timeout         time.Duration `mapstructure:"timeout"`
	MinFileBytes    int64         `mapstructure:"min-file-bytes" validate:"gte=0"`
	MinContentChars int           `mapstructure:"min-content-chars" validate:"gte=0"`
	MaxRemoteChars  int           `mapstructure:"max-remote-chars" validate:"gte=0"`
	TopSkills       int           `mapstructure:"top-skills" validate:"omitempty,min=8,max=10"`
}

// Engine analyses one résumé per call. It keeps no per-call state, so a
// single Engine may serve concurrent calls.
type Engine struct {
	cfg       Config
	extractor *document.Extractor
	inference ai.Inference
	logger    *zap.Logger
	now       func() time.Time
	newID     func() string
}

type Option func(*Engine)

// WithClock fixes the time used to close open-ended employment spans.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithExtractor replaces the default document extractor.
func WithExtractor(x *document.Extractor) Option {
	return func(e *Engine) { e.extractor = x }
}

// New returns an engine. A nil inference runs every analysis locally.
func New(cfg Config, inference ai.Inference, log *zap.Logger, opts ...Option) *Engine {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.MaxRemoteChars <= 0 {
		cfg.MaxRemoteChars = DefaultMaxRemoteChars
	}
	cfg.TopSkills = clampTopSkills(cfg.TopSkills)

	log = logger.WithFields(log)
	e := &Engine{
		cfg:       cfg,
		inference: inference,
		logger:    log,
		now:       time.Now,
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.extractor == nil {
		e.extractor = document.NewExtractor(document.Options{
			MinFileBytes:    cfg.MinFileBytes,
			MinContentChars: cfg.MinContentChars,
		}, log)
	}
	return e
}

// Analyze extracts, validates and analyses doc. The only errors returned are
// *document.InputError values.
func (e *Engine) Analyze(ctx context.Context, doc model.RawDocument) (model.AnalysisRecord, error) {
	log := logger.WithAnalysisFields(e.logger, e.newID(), doc.Path)
	log.Info("extracting text", zap.String("ext", doc.Extension()))

	text, err := e.extractor.Extract(ctx, doc)
	if err != nil {
		log.Warn("document rejected", zap.Error(err))
		return model.AnalysisRecord{}, err
	}

	if err := document.Validate(text); err != nil {
		var inputErr *document.InputError
		if errors.As(err, &inputErr) && inputErr.Path == "" {
			inputErr.Path = doc.Path
		}
		log.Warn("document rejected", zap.Error(err))
		return model.AnalysisRecord{}, err
	}

	return e.analyze(ctx, text, log), nil
}

func (e *Engine) AnalyzeFile(ctx context.Context, path string) (model.AnalysisRecord, error) {
	return e.Analyze(ctx, model.RawDocument{Path: path})
}

// AnalyzeText analyses text that was already extracted elsewhere. It runs
// the same content checks and validation as Analyze.
func (e *Engine) AnalyzeText(ctx context.Context, text string) (model.AnalysisRecord, error) {
	log := logger.WithAnalysisFields(e.logger, e.newID(), "")

	cleaned, err := e.extractor.CheckText(text)
	if err == nil {
		err = document.Validate(cleaned)
	}
	if err != nil {
		log.Warn("text rejected", zap.Error(err))
		return model.AnalysisRecord{}, err
	}

	return e.analyze(ctx, cleaned, log), nil
}

// Supports reports whether documents with ext can be analysed.
func (e *Engine) Supports(ext string) bool {
	return e.extractor.Supported(ext)
}

// Score re-scores a persisted record without touching the document.
func (e *Engine) Score(record model.AnalysisRecord) model.ScoreResult {
	return scoring.Score(record)
}

func (e *Engine) analyze(ctx context.Context, text string, log *zap.Logger) model.AnalysisRecord {
	found := skills.Extract(text, skills.Options{})
	p := profile.Classify(text, found.Skills)
	if p.IsITStudent && p.Type == model.ProfileDeveloper {
		found = skills.Extract(text, skills.Options{ITStudent: true})
	}
	if found.FallbackUsed {
		log.Info("no skills found, using the fallback set")
	}

	bundle := entities.Extract(text)
	years := entities.ExperienceYears(text, p.Title, e.now())

	log.Info("classified profile",
		zap.String("profile", string(p.Type)),
		zap.String("role", p.SpecificRole),
		zap.String("source", string(p.Source)),
		zap.Bool("it_student", p.IsITStudent),
		zap.Int("skills", len(found.Skills)),
		zap.Int("years", years),
	)

	localRole := LocalRole(p, found.Skills)
	summary := NewAxis(AxisSummary, LocalSummary(text, p, years, found.Skills), nil)
	skillsAxis := NewAxis(AxisSkills, found.Skills, nil)
	role := NewAxis(AxisRole, localRole, nil)
	personality := NewAxis(AxisPersonality, LocalPersonality(text), nil)
	entityAxis := NewAxis(AxisEntities, bundle, nil)

	if e.inference != nil {
		r := remotes{inference: e.inference, text: remoteText(text, e.cfg.MaxRemoteChars), profile: p}
		summary.Remote = r.summary
		skillsAxis.Remote = r.skills(found.Skills)
		role.Remote = r.role(localRole)
		personality.Remote = r.personality
		entityAxis.Remote = r.entities(bundle)

		axes := []Racer{summary, skillsAxis, role, personality, entityAxis}
		NewOrchestrator(e.cfg.Timeout, log).Race(ctx, axes...)
		for _, a := range axes {
			log.Debug("axis resolved", zap.String(logger.FieldAxis, a.name()), zap.Bool("remote", a.FromRemote()))
		}
	}

	record := combine(facts{
		text:     text,
		profile:  p,
		years:    years,
		projects: found.Projects,
	}, resolved{
		summary:     summary.Value(),
		skills:      skillsAxis.Value(),
		role:        role.Value(),
		personality: personality.Value(),
		entities:    entityAxis.Value(),
	}, e.cfg.TopSkills)

	log.Info("analysis finished",
		zap.Int("score", record.Score.Total),
		zap.String("rubric", record.Score.Rubric),
		zap.String("recommendation", record.Recommendation),
	)
	return record
}
