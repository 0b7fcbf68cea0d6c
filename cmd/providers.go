package cmd

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/cv-analyzer/internal/ai"
	"github.com/spigell/cv-analyzer/internal/ai/gemini"
	"github.com/spigell/cv-analyzer/internal/ai/huggingface"
	"github.com/spigell/cv-analyzer/internal/logger"
	"github.com/spigell/cv-analyzer/internal/secrets"
)

// newInference builds the configured provider. A nil result with a nil
// error means remote analysis is disabled.
func newInference(ctx context.Context, cfg *AIConfig, log *zap.Logger) (ai.Inference, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, nil
	}

	switch provider := strings.TrimSpace(strings.ToLower(cfg.Provider)); provider {
	case "", ProviderHuggingFace:
		return newHuggingFace(cfg.HuggingFace, log)
	case ProviderGemini:
		return newGemini(ctx, cfg.Gemini, log)
	default:
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}
}

func newHuggingFace(cfg *HuggingFaceConfig, log *zap.Logger) (ai.Inference, error) {
	if cfg == nil {
		cfg = &HuggingFaceConfig{}
	}

	// Public models answer anonymous requests with a lower rate limit.
	token, err := secrets.Optional(secrets.Source{
		Name:  "hugging face api token",
		Value: cfg.APIKey,
		File:  cfg.APIKeyFile,
		Env:   "HF_API_TOKEN",
	})
	if err != nil {
		return nil, err
	}

	client := huggingface.New(huggingface.Config{
		APIURL:         cfg.APIURL,
		Token:          token,
		SummaryModel:   cfg.SummaryModel,
		ZeroShotModel:  cfg.ZeroShotModel,
		NERModel:       cfg.NERModel,
		RequestTimeout: cfg.RequestTimeout,
		MaxLogLength:   cfg.MaxLogLength,
	}, logger.WithCommonFields(log, ProviderHuggingFace, cfg.ZeroShotModel))

	return client, nil
}

func newGemini(ctx context.Context, cfg *GeminiConfig, log *zap.Logger) (ai.Inference, error) {
	if cfg == nil {
		return nil, fmt.Errorf("gemini configuration is required when ai.provider is %s", ProviderGemini)
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name:  "gemini api key",
		Value: cfg.APIKey,
		File:  cfg.APIKeyFile,
		Env:   "GEMINI_API_KEY",
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set ai.gemini.api-key-file or GEMINI_API_KEY)", err)
	}

	genLogger := logger.WithCommonFields(log, ProviderGemini, cfg.Model).With(
		zap.Int("ai_retry_attempts", cfg.MaxRetries),
	)

	generator, err := gemini.NewGenerator(ctx, apiKey, cfg.Model, cfg.MaxRetries, genLogger)
	if err != nil {
		return nil, err
	}

	return gemini.NewInference(generator, cfg.MaxLogLength, logger.WithCommonFields(log, ProviderGemini, generator.Model())), nil
}
