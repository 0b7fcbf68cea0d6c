package logger

import (
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

const (
	// FieldProvider is the structured log field key for the inference provider name.
	FieldProvider = "ai_provider"
	// FieldModel is the structured log field key for the inference model identifier.
	FieldModel = "ai_model"
	// FieldAnalysisID correlates every entry written during one analysis call.
	FieldAnalysisID = "analysis_id"
	// FieldFile is the base name of the analysed document.
	FieldFile = "file"
	// FieldAxis names the analysis axis (summary, skills, role...).
	FieldAxis = "axis"
)

// StringField describes a string-valued structured logging field.
type StringField struct {
	Key   string
	Value string
}

// StringFields converts the provided key/value pairs into zap fields, trimming
// whitespace and omitting entries with empty keys or values.
func StringFields(fields ...StringField) []zap.Field {
	result := make([]zap.Field, 0, len(fields))
	for _, field := range fields {
		key := strings.TrimSpace(field.Key)
		if key == "" {
			continue
		}

		value := strings.TrimSpace(field.Value)
		if value == "" {
			continue
		}

		result = append(result, zap.String(key, value))
	}

	return result
}

// WithFields safely attaches the provided fields to the logger.
// A nil logger becomes a no-op logger.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}

	if len(fields) == 0 {
		return logger
	}

	return logger.With(fields...)
}

// CommonFields describes the inference provider and model.
// Empty values are ignored to keep log entries compact.
func CommonFields(provider, model string) []zap.Field {
	return StringFields(
		StringField{Key: FieldProvider, Value: provider},
		StringField{Key: FieldModel, Value: model},
	)
}

func WithCommonFields(logger *zap.Logger, provider, model string) *zap.Logger {
	return WithFields(logger, CommonFields(provider, model)...)
}

// AnalysisFields identifies one analysis call. Only the base name of path is
// logged.
func AnalysisFields(analysisID, path string) []zap.Field {
	file := ""
	if strings.TrimSpace(path) != "" {
		file = filepath.Base(path)
	}
	return StringFields(
		StringField{Key: FieldAnalysisID, Value: analysisID},
		StringField{Key: FieldFile, Value: file},
	)
}

func WithAnalysisFields(logger *zap.Logger, analysisID, path string) *zap.Logger {
	return WithFields(logger, AnalysisFields(analysisID, path)...)
}
