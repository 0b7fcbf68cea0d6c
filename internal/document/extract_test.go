package document

import (
	"archive/zip"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spigell/cv-analyzer/internal/model"
)

const sampleResume = `Jane Doe
Senior Backend Developer
jane.doe@example.com | +1 415 555 0100

Experience
Acme Corp, Backend Developer, 2018 - 2021
Built payment services in Go and PostgreSQL.
`

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func staticStrategy(name, text string, err error) Strategy {
	return Strategy{Name: name, Convert: func(context.Context, string) (string, error) {
		return text, err
	}}
}

func TestExtractPlainText(t *testing.T) {
	path := writeFile(t, "cv.txt", []byte(sampleResume+"\r\n\r\n\r\n\tReferences   available on request"))
	ex := NewExtractor(Options{}, zap.NewNop())

	text, err := ex.Extract(context.Background(), model.RawDocument{Path: path})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(text, "Jane Doe\nSenior Backend Developer"))
	assert.Contains(t, text, "References available on request")
	assert.NotContains(t, text, "\r")
	assert.NotContains(t, text, "\n\n\n")
}

func TestExtractUnsupportedFormat(t *testing.T) {
	path := writeFile(t, "cv.png", []byte(strings.Repeat("x", 500)))
	ex := NewExtractor(Options{}, zap.NewNop())

	_, err := ex.Extract(context.Background(), model.RawDocument{Path: path})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
	assert.True(t, IsInputError(err))
}

func TestExtractDeclaredExtensionWins(t *testing.T) {
	path := writeFile(t, "upload.bin", []byte(sampleResume))
	ex := NewExtractor(Options{}, zap.NewNop())

	text, err := ex.Extract(context.Background(), model.RawDocument{Path: path, Ext: "text/plain"})
	require.NoError(t, err)
	assert.Contains(t, text, "Acme Corp")
}

func TestExtractRejectsTinyFiles(t *testing.T) {
	path := writeFile(t, "cv.txt", []byte("Jane Doe"))
	ex := NewExtractor(Options{MinFileBytes: 100}, zap.NewNop())

	_, err := ex.Extract(context.Background(), model.RawDocument{Path: path})
	assert.ErrorIs(t, err, ErrSuspiciousContent)
}

func TestExtractRejectsMostlyBinaryContent(t *testing.T) {
	path := writeFile(t, "cv.pdf", []byte(strings.Repeat("%", 200)))
	ex := NewExtractor(Options{}, zap.NewNop())

	// 40 printable runes out of 100.
	garbage := strings.Repeat("a", 40) + strings.Repeat("\x00", 60)
	ex.SetStrategies("pdf", staticStrategy("fake", garbage, nil))

	_, err := ex.Extract(context.Background(), model.RawDocument{Path: path})
	assert.ErrorIs(t, err, ErrSuspiciousContent)
}

func TestExtractFallsBackToNextStrategy(t *testing.T) {
	path := writeFile(t, "cv.pdf", []byte(strings.Repeat("%", 200)))
	ex := NewExtractor(Options{}, zap.NewNop())
	ex.SetStrategies("pdf",
		staticStrategy("broken", "", errors.New("corrupt xref table")),
		staticStrategy("empty", "   ", nil),
		staticStrategy("working", sampleResume, nil),
	)

	text, err := ex.Extract(context.Background(), model.RawDocument{Path: path})
	require.NoError(t, err)
	assert.Contains(t, text, "Jane Doe")
}

func TestExtractFailsWhenEveryStrategyFails(t *testing.T) {
	path := writeFile(t, "cv.pdf", []byte(strings.Repeat("%", 200)))
	ex := NewExtractor(Options{}, zap.NewNop())
	ex.SetStrategies("pdf",
		staticStrategy("first", "", errors.New("boom")),
		staticStrategy("second", "", nil),
	)

	_, err := ex.Extract(context.Background(), model.RawDocument{Path: path})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrExtractionFailure)
	assert.Contains(t, err.Error(), "first: boom")
}

func TestExtractRejectsTooLittleText(t *testing.T) {
	path := writeFile(t, "cv.pdf", []byte(strings.Repeat("%", 200)))
	ex := NewExtractor(Options{MinContentChars: 30}, zap.NewNop())
	ex.SetStrategies("pdf", staticStrategy("short", "Jane Doe", nil))

	_, err := ex.Extract(context.Background(), model.RawDocument{Path: path})
	assert.ErrorIs(t, err, ErrExtractionFailure)
}

func TestExtractDocx(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cv.docx")
	f, err := os.Create(path)
	require.NoError(t, err)

	zw := zip.NewWriter(f)
	w, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?>` +
		`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
		`<w:p><w:r><w:t>Jane Doe</w:t></w:r></w:p>` +
		`<w:p><w:r><w:t>Senior Backend Developer at Acme Corp since 2018</w:t></w:r></w:p>` +
		`</w:body></w:document>`))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	ex := NewExtractor(Options{}, zap.NewNop())
	text, err := ex.Extract(context.Background(), model.RawDocument{Path: path})
	require.NoError(t, err)
	assert.Contains(t, text, "Jane Doe")
	assert.Contains(t, text, "Acme Corp")
}

func TestInputErrorUnwrapsKindAndCause(t *testing.T) {
	cause := errors.New("permission denied")
	err := newInputError(ErrExtractionFailure, "/tmp/cv.pdf", "cannot read", cause)

	assert.ErrorIs(t, err, ErrExtractionFailure)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "extraction failure: /tmp/cv.pdf: cannot read: permission denied", err.Error())
}
