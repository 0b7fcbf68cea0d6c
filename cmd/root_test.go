package cmd

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/cv-analyzer/internal/ai/huggingface"
	"github.com/spigell/cv-analyzer/internal/analysis"
	"github.com/spigell/cv-analyzer/internal/model"
)

func newTestViper(t *testing.T, yaml string) *viper.Viper {
	t.Helper()

	v := viper.New()
	setDefaults(v)
	bindEnv(v)

	if yaml != "" {
		v.SetConfigType("yaml")
		if err := v.ReadConfig(strings.NewReader(yaml)); err != nil {
			t.Fatalf("reading config: %v", err)
		}
	}
	return v
}

func TestDecodeConfigDefaults(t *testing.T) {
	config, err := decodeConfig(newTestViper(t, ""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if config.Analysis.Timeout != analysis.DefaultTimeout {
		t.Fatalf("expected default timeout, got %s", config.Analysis.Timeout)
	}
	if config.Analysis.TopSkills != analysis.DefaultTopSkills {
		t.Fatalf("expected default top skills, got %d", config.Analysis.TopSkills)
	}
	if config.Server.Listen != ":8080" {
		t.Fatalf("expected default listen address, got %q", config.Server.Listen)
	}
	if config.Server.UploadDir != "uploads" {
		t.Fatalf("expected default upload dir, got %q", config.Server.UploadDir)
	}
	if config.AI == nil || config.AI.Enabled {
		t.Fatalf("expected ai to be disabled by default, got %+v", config.AI)
	}
	if config.AI.HuggingFace.ZeroShotModel != huggingface.DefaultZeroShotModel {
		t.Fatalf("unexpected zero-shot model %q", config.AI.HuggingFace.ZeroShotModel)
	}
}

func TestDecodeConfigFromFileAndEnv(t *testing.T) {
	t.Setenv("CV_ANALYZER_ANALYSIS_TOP_SKILLS", "8")

	config, err := decodeConfig(newTestViper(t, `
analysis:
  timeout: 3s
  max-remote-chars: 1500
ai:
  enabled: true
  provider: gemini
  gemini:
    model: gemini-2.5-pro
    max-retries: 5
`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if config.Analysis.Timeout != 3*time.Second {
		t.Fatalf("expected 3s timeout, got %s", config.Analysis.Timeout)
	}
	if config.Analysis.MaxRemoteChars != 1500 {
		t.Fatalf("expected 1500 remote chars, got %d", config.Analysis.MaxRemoteChars)
	}
	if config.Analysis.TopSkills != 8 {
		t.Fatalf("expected top skills from env, got %d", config.Analysis.TopSkills)
	}
	if !config.AI.Enabled || config.AI.Provider != ProviderGemini {
		t.Fatalf("unexpected ai config %+v", config.AI)
	}
	if config.AI.Gemini.Model != "gemini-2.5-pro" || config.AI.Gemini.MaxRetries != 5 {
		t.Fatalf("unexpected gemini config %+v", config.AI.Gemini)
	}
}

func TestDecodeConfigValidation(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{name: "unknown provider", yaml: "ai:\n  provider: openai\n"},
		{name: "top skills out of range", yaml: "analysis:\n  top-skills: 30\n"},
		{name: "empty listen", yaml: "server:\n  listen: \"\"\n"},
		{name: "empty upload dir", yaml: "server:\n  upload-dir: \"\"\n"},
		{name: "bad api url", yaml: "ai:\n  huggingface:\n    api-url: not a url\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := decodeConfig(newTestViper(t, tt.yaml)); err == nil {
				t.Fatal("expected a validation error")
			}
		})
	}
}

func TestNewInference(t *testing.T) {
	ctx := context.Background()

	provider, err := newInference(ctx, &AIConfig{Enabled: false}, zap.NewNop())
	if err != nil || provider != nil {
		t.Fatalf("expected no provider when disabled, got %v, %v", provider, err)
	}

	provider, err = newInference(ctx, &AIConfig{Enabled: true, Provider: "HuggingFace"}, zap.NewNop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := provider.(*huggingface.Client); !ok {
		t.Fatalf("expected a hugging face client, got %T", provider)
	}

	if _, err := newInference(ctx, &AIConfig{Enabled: true, Provider: "openai"}, zap.NewNop()); err == nil {
		t.Fatal("expected an error for an unknown provider")
	}

	t.Setenv("GEMINI_API_KEY", "")
	if _, err := newInference(ctx, &AIConfig{Enabled: true, Provider: ProviderGemini, Gemini: &GeminiConfig{}}, zap.NewNop()); err == nil {
		t.Fatal("expected an error without a gemini api key")
	}
}

func TestSelectDocumentWithoutCandidates(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "photo.png"), []byte("png"), 0o600); err != nil {
		t.Fatal(err)
	}

	_, err := selectDocument(dir, func(ext string) bool { return ext == "pdf" })
	if !errors.Is(err, errNoDocuments) {
		t.Fatalf("expected errNoDocuments, got %v", err)
	}
}

func TestReadAndWriteRecord(t *testing.T) {
	path := filepath.Join(t.TempDir(), "record.json")
	want := model.AnalysisRecord{Summary: "Go developer", Profile: model.Profile{Type: model.ProfileDeveloper}}

	if err := writeRecord(path, want); err != nil {
		t.Fatalf("writing record: %v", err)
	}

	got, err := readRecord(nil, path)
	if err != nil {
		t.Fatalf("reading record: %v", err)
	}
	if got.Summary != want.Summary || got.Profile.Type != want.Profile.Type {
		t.Fatalf("unexpected record %+v", got)
	}

	got, err = readRecord(strings.NewReader(`{"summary":"from stdin"}`), "-")
	if err != nil || got.Summary != "from stdin" {
		t.Fatalf("unexpected stdin record %+v, %v", got, err)
	}

	if _, err := readRecord(strings.NewReader(`{`), "-"); err == nil {
		t.Fatal("expected a decoding error")
	}
}

func TestResolveVersion(t *testing.T) {
	withVersion := func(v string) func() (*debug.BuildInfo, bool) {
		return func() (*debug.BuildInfo, bool) {
			return &debug.BuildInfo{Main: debug.Module{Version: v}}, true
		}
	}
	noInfo := func() (*debug.BuildInfo, bool) { return nil, false }

	tests := []struct {
		name     string
		injected string
		read     func() (*debug.BuildInfo, bool)
		expect   string
	}{
		{name: "injected wins", injected: "v1.2.0", read: withVersion("v0.9.0"), expect: "v1.2.0"},
		{name: "build info", injected: "unknown", read: withVersion("v0.9.0"), expect: "v0.9.0"},
		{name: "devel build", injected: "unknown", read: withVersion("(devel)"), expect: "unknown"},
		{name: "no build info", injected: "", read: noInfo, expect: "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := resolveVersion(tt.injected, tt.read); got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
		})
	}
}
