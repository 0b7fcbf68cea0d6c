// Package server exposes the analysis engine over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spigell/cv-analyzer/internal/document"
	"github.com/spigell/cv-analyzer/internal/logger"
	"github.com/spigell/cv-analyzer/internal/model"
)

// Analyzer is the part of the engine the handlers need.
type Analyzer interface {
	Analyze(ctx context.Context, doc model.RawDocument) (model.AnalysisRecord, error)
	Score(record model.AnalysisRecord) model.ScoreResult
}

type ErrorResponse struct {
	Message string `json:"message"`
	Kind    string `json:"kind,omitempty"`
}

type analyzeRequest struct {
	Path string `json:"path" validate:"required"`
	Ext  string `json:"ext"`
}

var errOutsideUploads = errors.New("path is outside the upload directory")

type Handler struct {
	analyzer Analyzer
	// uploadDir is absolute, realUploadDir has its symlinks resolved.
	uploadDir     string
	realUploadDir string
	version       string
	validate      *validator.Validate
	logger        *zap.Logger
}

// NewHandler serves documents stored under uploadDir only. Relative request
// paths are resolved against it.
func NewHandler(analyzer Analyzer, uploadDir, version string, log *zap.Logger) (*Handler, error) {
	if strings.TrimSpace(uploadDir) == "" {
		return nil, errors.New("upload directory is required")
	}
	dir, err := filepath.Abs(uploadDir)
	if err != nil {
		return nil, fmt.Errorf("resolving upload directory: %w", err)
	}
	realDir := dir
	if resolved, err := filepath.EvalSymlinks(dir); err == nil {
		realDir = resolved
	}

	return &Handler{
		analyzer:      analyzer,
		uploadDir:     dir,
		realUploadDir: realDir,
		version:       version,
		validate:      validator.New(),
		logger:        logger.WithFields(log),
	}, nil
}

// resolve returns the absolute path of an upload, rejecting anything that
// escapes the upload directory through ".." or a symlink.
func (h *Handler) resolve(path string) (string, error) {
	if !filepath.IsAbs(path) {
		path = filepath.Join(h.uploadDir, path)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	if !within(h.uploadDir, abs) && !within(h.realUploadDir, abs) {
		return "", errOutsideUploads
	}
	if target, err := filepath.EvalSymlinks(abs); err == nil && !within(h.realUploadDir, target) {
		return "", errOutsideUploads
	}
	return abs, nil
}

func within(dir, abs string) bool {
	rel, err := filepath.Rel(dir, abs)
	if err != nil {
		return false
	}
	return rel != "." && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// Analyze runs the engine on an upload already persisted under the upload
// directory. Paths outside it answer 400, unusable files 422 with the error
// kind.
func (h *Handler) Analyze(c *fiber.Ctx) error {
	var req analyzeRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "invalid payload", "")
	}
	if err := h.validate.Struct(req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "path is required", "")
	}

	path, err := h.resolve(req.Path)
	if err != nil {
		h.logger.Warn("rejected document path", zap.String(logger.FieldFile, req.Path), zap.Error(err))
		return errorJSON(c, fiber.StatusBadRequest, errOutsideUploads.Error(), "")
	}

	record, err := h.analyzer.Analyze(c.UserContext(), model.RawDocument{Path: path, Ext: req.Ext})
	if err != nil {
		var inputErr *document.InputError
		if errors.As(err, &inputErr) {
			return errorJSON(c, fiber.StatusUnprocessableEntity, err.Error(), inputErr.Kind.Error())
		}
		h.logger.Error("analysis failed", zap.String(logger.FieldFile, path), zap.Error(err))
		return errorJSON(c, fiber.StatusInternalServerError, "analysis failed", "")
	}

	return c.Status(fiber.StatusOK).JSON(record)
}

// Score re-scores a record without touching the document.
func (h *Handler) Score(c *fiber.Ctx) error {
	var record model.AnalysisRecord
	if err := c.BodyParser(&record); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "invalid payload", "")
	}

	return c.Status(fiber.StatusOK).JSON(h.analyzer.Score(record))
}

func errorJSON(c *fiber.Ctx, status int, message, kind string) error {
	return c.Status(status).JSON(ErrorResponse{Message: message, Kind: kind})
}
