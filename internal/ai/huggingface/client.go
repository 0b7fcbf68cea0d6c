// Package huggingface talks to the Hugging Face hosted inference API.
package huggingface

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/spigell/cv-analyzer/internal/utils"

	"go.uber.org/zap"
)

const (
	DefaultAPIURL        = "https://api-inference.huggingface.co"
	DefaultSummaryModel  = "facebook/bart-large-cnn"
	DefaultZeroShotModel = "facebook/bart-large-mnli"
	DefaultNERModel      = "dslim/bert-base-NER"

	contentType     = "application/json"
	contentEncoding = "gzip"
	userAgent       = "spigell/cv-analyzer"

	defaultRequestTimeout = 30 * time.Second
	defaultMaxLogLength   = 200
	loadingAttempts       = 2
	maxLoadingWait        = 10 * time.Second
)

// Config selects the endpoint and models. Empty fields fall back to defaults.
type Config struct {
	APIURL         string
	Token          string
	SummaryModel   string
	ZeroShotModel  string
	NERModel       string
	RequestTimeout time.Duration
	MaxLogLength   int
}

type Client struct {
	token         string
	logger        *zap.Logger
	HTTPClient    *http.Client
	UserAgent     string
	APIURL        string
	summaryModel  string
	zeroShotModel string
	nerModel      string
	maxLogLen     int
	wait          func(context.Context, time.Duration) error
}

// APIError is returned for non-2xx responses.
type APIError struct {
	StatusCode    int
	Message       string
	EstimatedTime float64
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("bad status: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("bad status: %d: %s", e.StatusCode, e.Message)
}

// loading reports whether the model is still being loaded on the backend.
func (e *APIError) loading() bool {
	return e.StatusCode == http.StatusServiceUnavailable && e.EstimatedTime > 0
}

func New(cfg Config, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	maxLogLen := cfg.MaxLogLength
	if maxLogLen <= 0 {
		maxLogLen = defaultMaxLogLength
	}

	return &Client{
		token:         strings.TrimSpace(cfg.Token),
		logger:        logger,
		HTTPClient:    &http.Client{Timeout: timeout},
		UserAgent:     userAgent,
		APIURL:        strings.TrimRight(orDefault(cfg.APIURL, DefaultAPIURL), "/"),
		summaryModel:  orDefault(cfg.SummaryModel, DefaultSummaryModel),
		zeroShotModel: orDefault(cfg.ZeroShotModel, DefaultZeroShotModel),
		nerModel:      orDefault(cfg.NERModel, DefaultNERModel),
		maxLogLen:     maxLogLen,
		wait:          utils.WaitFor,
	}
}

func orDefault(v, def string) string {
	if v = strings.TrimSpace(v); v != "" {
		return v
	}
	return def
}

type request struct {
	Inputs     string         `json:"inputs"`
	Parameters map[string]any `json:"parameters,omitempty"`
}

// postModel sends inputs to a model endpoint and decodes the JSON reply into
// target. A 503 carrying an estimated load time is retried once the model
// had time to warm up, as long as ctx allows it.
func (c *Client) postModel(ctx context.Context, model string, payload request, target any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	url := c.APIURL + "/models/" + model

	var lastErr error
	for attempt := 1; attempt <= loadingAttempts; attempt++ {
		lastErr = c.postJSON(ctx, url, body, target)
		var apiErr *APIError
		if lastErr == nil || !errors.As(lastErr, &apiErr) || !apiErr.loading() || attempt == loadingAttempts {
			return lastErr
		}

		delay := time.Duration(apiErr.EstimatedTime * float64(time.Second))
		if delay > maxLoadingWait {
			delay = maxLoadingWait
		}
		c.logger.Debug("model is loading, waiting",
			zap.String("model", model),
			zap.Duration("delay", delay),
			zap.Int("attempt", attempt),
		)
		if err := c.wait(ctx, delay); err != nil {
			return err
		}
	}

	return lastErr
}

func (c *Client) postJSON(ctx context.Context, url string, body []byte, target any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}

	req = c.setHeaders(req)
	req.Header.Set("Content-Type", contentType)

	resp, err := c.request(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var reader io.Reader = resp.Body
	if resp.Header.Get("Content-Encoding") == "gzip" {
		gzipReader, err := gzip.NewReader(resp.Body)
		if err != nil {
			return err
		}
		defer gzipReader.Close()
		reader = gzipReader
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}

	c.logger.Debug("got response from inference api",
		zap.Int("status", resp.StatusCode),
		zap.String("body_preview", utils.TruncateForLog(string(data), c.maxLogLen)),
	)

	if resp.StatusCode != http.StatusOK {
		return parseAPIError(resp.StatusCode, data)
	}

	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}

func parseAPIError(status int, data []byte) error {
	apiErr := &APIError{StatusCode: status}
	var payload struct {
		Error         any     `json:"error"`
		EstimatedTime float64 `json:"estimated_time"`
	}
	if err := json.Unmarshal(data, &payload); err == nil {
		apiErr.EstimatedTime = payload.EstimatedTime
		switch e := payload.Error.(type) {
		case string:
			apiErr.Message = e
		case []any:
			parts := make([]string, 0, len(e))
			for _, p := range e {
				parts = append(parts, fmt.Sprint(p))
			}
			apiErr.Message = strings.Join(parts, "; ")
		}
	}
	return apiErr
}

func (c *Client) request(req *http.Request) (*http.Response, error) {
	c.logger.Debug("make request", zap.String("url", req.URL.String()))
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}

	return resp, nil
}

func (c *Client) setHeaders(req *http.Request) *http.Request {
	if c.token != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.token))
	}
	req.Header.Set("User-Agent", c.UserAgent)
	req.Header.Set("Accept-Encoding", contentEncoding)

	return req
}
