// Package document turns uploaded résumé files into validated plain text.
package document

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/spigell/cv-analyzer/internal/model"
)

const (
	defaultMinFileBytes    = 100
	defaultMinContentChars = 30
)

// Options bounds what the extractor accepts.
type Options struct {
	MinFileBytes    int64
	MinContentChars int
}

// Extractor routes a document to the strategy chain for its extension.
type Extractor struct {
	opts       Options
	strategies map[string][]Strategy
	logger     *zap.Logger
}

// NewExtractor returns an extractor with the default strategy chains:
// PDF pages then docconv for pdf, docconv then raw XML for docx,
// docconv for the other office formats and a direct read for plain text.
func NewExtractor(opts Options, logger *zap.Logger) *Extractor {
	if opts.MinFileBytes <= 0 {
		opts.MinFileBytes = defaultMinFileBytes
	}
	if opts.MinContentChars <= 0 {
		opts.MinContentChars = defaultMinContentChars
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	plain := []Strategy{plainTextStrategy()}
	office := []Strategy{docconvPathStrategy()}

	return &Extractor{
		opts:   opts,
		logger: logger,
		strategies: map[string][]Strategy{
			"pdf":   {pdfPagesStrategy(), docconvPathStrategy()},
			"docx":  {docxStrategy(), docxXMLStrategy()},
			"doc":   office,
			"odt":   office,
			"rtf":   office,
			"txt":   plain,
			"text":  plain,
			"plain": plain,
			"md":    plain,
		},
	}
}

// SetStrategies replaces the chain used for ext.
func (e *Extractor) SetStrategies(ext string, strategies ...Strategy) {
	e.strategies[strings.ToLower(strings.TrimPrefix(ext, "."))] = strategies
}

// Supported reports whether the extension has a strategy chain.
func (e *Extractor) Supported(ext string) bool {
	_, ok := e.strategies[strings.ToLower(strings.TrimPrefix(ext, "."))]
	return ok
}

// Extract returns cleaned text for doc or an *InputError.
func (e *Extractor) Extract(ctx context.Context, doc model.RawDocument) (string, error) {
	ext := doc.Extension()
	chain, ok := e.strategies[ext]
	if !ok || len(chain) == 0 {
		return "", newInputError(ErrUnsupportedFormat, doc.Path, "extension "+quoteExt(ext), nil)
	}

	info, err := os.Stat(doc.Path)
	if err != nil {
		return "", newInputError(ErrExtractionFailure, doc.Path, "cannot stat file", err)
	}
	if info.IsDir() {
		return "", newInputError(ErrUnsupportedFormat, doc.Path, "path is a directory", nil)
	}
	if info.Size() < e.opts.MinFileBytes {
		return "", newInputError(ErrSuspiciousContent, doc.Path, "file is smaller than the minimum size", nil)
	}

	raw, err := e.runChain(ctx, doc.Path, chain)
	if err != nil {
		return "", newInputError(ErrExtractionFailure, doc.Path, "", err)
	}

	return e.check(doc.Path, raw)
}

// CheckText applies the content checks to text that was extracted elsewhere.
func (e *Extractor) CheckText(text string) (string, error) {
	return e.check("", text)
}

func (e *Extractor) check(path, raw string) (string, error) {
	if strings.TrimSpace(raw) == "" {
		return "", newInputError(ErrExtractionFailure, path, "no text content", nil)
	}

	_, total, kept := stripNonPrintable(raw)
	if kept*2 < total {
		return "", newInputError(ErrSuspiciousContent, path, "mostly non-text content", nil)
	}

	text := Clean(raw)
	if utf8.RuneCountInString(text) < e.opts.MinContentChars {
		return "", newInputError(ErrExtractionFailure, path, "text is shorter than the minimum content length", nil)
	}
	return text, nil
}

func (e *Extractor) runChain(ctx context.Context, path string, chain []Strategy) (string, error) {
	var errs error
	for _, strategy := range chain {
		if err := ctx.Err(); err != nil {
			return "", multierr.Append(errs, err)
		}

		text, err := strategy.Convert(ctx, path)
		if err == nil && strings.TrimSpace(text) != "" {
			if errs != nil {
				e.logger.Debug("extraction recovered by a later strategy",
					zap.String("strategy", strategy.Name),
					zap.Error(errs),
				)
			}
			return text, nil
		}
		if err == nil {
			err = errors.New("empty content")
		}
		e.logger.Debug("extraction strategy failed",
			zap.String("strategy", strategy.Name),
			zap.String("file", path),
			zap.Error(err),
		)
		errs = multierr.Append(errs, fmt.Errorf("%s: %w", strategy.Name, err))
	}
	return "", errs
}

func quoteExt(ext string) string {
	if ext == "" {
		return "(none)"
	}
	return "." + ext
}
