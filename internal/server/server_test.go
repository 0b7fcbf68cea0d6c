package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spigell/cv-analyzer/internal/document"
	"github.com/spigell/cv-analyzer/internal/model"
)

type stubAnalyzer struct {
	record model.AnalysisRecord
	err    error
	got    model.RawDocument
}

func (s *stubAnalyzer) Analyze(_ context.Context, doc model.RawDocument) (model.AnalysisRecord, error) {
	s.got = doc
	return s.record, s.err
}

func (s *stubAnalyzer) Score(record model.AnalysisRecord) model.ScoreResult {
	return model.ScoreResult{Total: len(record.Skills), Rubric: "stub"}
}

func newTestHandler(t *testing.T, a Analyzer) (*Handler, string) {
	t.Helper()
	dir := t.TempDir()
	h, err := NewHandler(a, dir, "test", zap.NewNop())
	require.NoError(t, err)
	return h, dir
}

func do(t *testing.T, h *Handler, method, path, body string) (int, []byte) {
	t.Helper()
	app := New(h)

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, data
}

func analyzeBody(t *testing.T, path, ext string) string {
	t.Helper()
	data, err := json.Marshal(analyzeRequest{Path: path, Ext: ext})
	require.NoError(t, err)
	return string(data)
}

func TestHealth(t *testing.T) {
	h, _ := newTestHandler(t, &stubAnalyzer{})
	status, body := do(t, h, http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"status":"ok","version":"test"}`, string(body))
}

func TestAnalyze(t *testing.T) {
	stub := &stubAnalyzer{record: model.AnalysisRecord{Summary: "Go developer", Recommendation: "Developer"}}
	h, dir := newTestHandler(t, stub)

	status, body := do(t, h, http.MethodPost, "/api/v1/analyze", analyzeBody(t, "jane.pdf", "pdf"))

	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "pdf", stub.got.Ext)
	assert.Equal(t, "jane.pdf", filepath.Base(stub.got.Path))
	assert.True(t, within(h.uploadDir, stub.got.Path) || within(h.realUploadDir, stub.got.Path))

	var record model.AnalysisRecord
	require.NoError(t, json.Unmarshal(body, &record))
	assert.Equal(t, "Go developer", record.Summary)
	assert.Equal(t, "Developer", record.Recommendation)

	status, _ = do(t, h, http.MethodPost, "/api/v1/analyze", analyzeBody(t, filepath.Join(dir, "cv", "john.docx"), ""))
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "john.docx", filepath.Base(stub.got.Path))
}

func TestAnalyzeRejectsPathsOutsideUploads(t *testing.T) {
	outside := t.TempDir()
	secret := filepath.Join(outside, "secrets.txt")
	require.NoError(t, os.WriteFile(secret, []byte("DATABASE_PASSWORD=hunter2"), 0o600))

	stub := &stubAnalyzer{}
	h, dir := newTestHandler(t, stub)

	link := filepath.Join(dir, "link.txt")
	symlinked := os.Symlink(secret, link) == nil

	paths := map[string]string{
		"absolute":       secret,
		"traversal":      "../" + filepath.Base(outside) + "/secrets.txt",
		"nested escape":  "cv/../../etc/passwd",
		"upload dir":     dir,
		"parent of root": filepath.Dir(dir),
	}
	if symlinked {
		paths["symlink"] = "link.txt"
	}

	for name, path := range paths {
		t.Run(name, func(t *testing.T) {
			stub.got = model.RawDocument{}

			status, body := do(t, h, http.MethodPost, "/api/v1/analyze", analyzeBody(t, path, "txt"))

			assert.Equal(t, http.StatusBadRequest, status)
			assert.Empty(t, stub.got.Path)

			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(body, &resp))
			assert.Equal(t, errOutsideUploads.Error(), resp.Message)
		})
	}
}

func TestNewHandlerRequiresUploadDir(t *testing.T) {
	_, err := NewHandler(&stubAnalyzer{}, " ", "test", zap.NewNop())
	assert.Error(t, err)
}

func TestAnalyzeErrors(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		err      error
		status   int
		wantKind string
	}{
		{name: "invalid json", body: `{`, status: http.StatusBadRequest},
		{name: "missing path", body: `{"ext":"pdf"}`, status: http.StatusBadRequest},
		{
			name:     "input error",
			body:     `{"path":"scan.pdf"}`,
			err:      &document.InputError{Kind: document.ErrSuspiciousContent, Path: "scan.pdf"},
			status:   http.StatusUnprocessableEntity,
			wantKind: "suspicious content",
		},
		{
			name:   "unexpected error",
			body:   `{"path":"jane.pdf"}`,
			err:    errors.New("boom"),
			status: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _ := newTestHandler(t, &stubAnalyzer{err: tt.err})
			status, body := do(t, h, http.MethodPost, "/api/v1/analyze", tt.body)

			assert.Equal(t, tt.status, status)

			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(body, &resp))
			assert.NotEmpty(t, resp.Message)
			assert.Equal(t, tt.wantKind, resp.Kind)
		})
	}
}

func TestScore(t *testing.T) {
	h, _ := newTestHandler(t, &stubAnalyzer{})
	status, body := do(t, h, http.MethodPost, "/api/v1/score",
		`{"skills":[{"name":"Go","confidence":0.9,"category":"programming_languages"},{"name":"Git","confidence":0.8,"category":"devops_tools"}]}`)

	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"total":2,"rubric":"stub","breakdown":null}`, string(body))
}
