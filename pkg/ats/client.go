// Package ats is a client for the external resume parsing and ATS scoring
// service.
package ats

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/adityarajsrv/CareerQuill/internal/model"
)

const (
	DefaultBaseURL = "http://localhost:8000"

	parsePath = "/api/ats/parse"
	scorePath = "/api/ats/score"
)

// ErrUnsupportedFile is returned for resumes that are not .pdf or .docx.
var ErrUnsupportedFile = errors.New("only PDF and DOCX files are allowed")

// StatusError is a non-2xx answer from the service.
type StatusError struct {
	StatusCode int
	Detail     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("ats service returned %d: %s", e.StatusCode, e.Detail)
}

// Upload is a resume file held in memory so requests can be retried.
type Upload struct {
	Name string
	Data []byte
}

// CheckFileName accepts .pdf and .docx names, case-insensitively.
func CheckFileName(name string) error {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf", ".docx":
		return nil
	default:
		return ErrUnsupportedFile
	}
}

// Client calls the ATS service over HTTP.
type Client struct {
	BaseURL  string
	HTTP     *http.Client
	Attempts int
	// Backoff is the first retry delay; it doubles per attempt.
	Backoff time.Duration
	Log     *slog.Logger
}

func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		BaseURL:  strings.TrimRight(baseURL, "/"),
		HTTP:     &http.Client{Timeout: 60 * time.Second},
		Attempts: 3,
		Backoff:  time.Second,
		Log:      slog.Default(),
	}
}

// Parse returns the structured fields the service extracts from a resume.
func (c *Client) Parse(ctx context.Context, file Upload) (model.ParseResult, error) {
	if err := CheckFileName(file.Name); err != nil {
		return nil, err
	}
	var out model.ParseResult
	if err := c.postFile(ctx, parsePath, nil, file, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Score rates a resume against a job title and experience level.
func (c *Client) Score(ctx context.Context, file Upload, jobTitle, experienceLevel string) (*model.ScoreResult, error) {
	if err := CheckFileName(file.Name); err != nil {
		return nil, err
	}
	q := url.Values{}
	q.Set("job_title", jobTitle)
	q.Set("experience_level", experienceLevel)

	var raw map[string]interface{}
	if err := c.postFile(ctx, scorePath, q, file, &raw); err != nil {
		return nil, err
	}
	return decodeScore(raw)
}

// decodeScore keeps the known fields typed and the rest in Extra.
func decodeScore(raw map[string]interface{}) (*model.ScoreResult, error) {
	b, err := json.Marshal(raw)
	if err != nil {
		return nil, err
	}
	var res model.ScoreResult
	if err := json.Unmarshal(b, &res); err != nil {
		return nil, fmt.Errorf("decode score: %w", err)
	}
	for _, k := range []string{"ats_score", "best_score", "worst_score", "improvement_suggestions"} {
		delete(raw, k)
	}
	if len(raw) > 0 {
		res.Extra = raw
	}
	if res.ImprovementSuggestions == nil {
		res.ImprovementSuggestions = []string{}
	}
	return &res, nil
}

func (c *Client) postFile(ctx context.Context, path string, query url.Values, file Upload, out interface{}) error {
	endpoint := c.BaseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}
	resp, err := c.doPostWithRetry(ctx, endpoint, func() (io.Reader, string, error) {
		return multipartBody(file)
	})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	c.logger().Debug("ats.client: response", "path", path, "status", resp.StatusCode, "bytes", len(body))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{StatusCode: resp.StatusCode, Detail: detail(body)}
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode ats response: %w", err)
	}
	return nil
}

func multipartBody(file Upload) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", filepath.Base(file.Name))
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(file.Data); err != nil {
		return nil, "", err
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}

// doPostWithRetry retries transport errors and 5xx answers with
// exponential backoff.
func (c *Client) doPostWithRetry(ctx context.Context, endpoint string, body func() (io.Reader, string, error)) (*http.Response, error) {
	attempts := c.Attempts
	if attempts < 1 {
		attempts = 1
	}
	var lastErr error
	for i := 0; i < attempts; i++ {
		r, contentType, err := body()
		if err != nil {
			return nil, err
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, r)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", contentType)

		resp, err := c.HTTP.Do(req)
		switch {
		case err != nil:
			lastErr = err
		case resp.StatusCode >= 500 && i < attempts-1:
			b, _ := io.ReadAll(resp.Body)
			resp.Body.Close()
			lastErr = &StatusError{StatusCode: resp.StatusCode, Detail: detail(b)}
		default:
			return resp, nil
		}
		c.logger().Warn("ats.client: request failed", "attempt", i+1, "error", lastErr)

		if i < attempts-1 {
			backoff := c.Backoff << i
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}
	return nil, lastErr
}

// detail extracts FastAPI's {"detail": ...} message when present.
func detail(body []byte) string {
	var e struct {
		Detail interface{} `json:"detail"`
		Error  string      `json:"error"`
	}
	if json.Unmarshal(body, &e) == nil {
		if s, ok := e.Detail.(string); ok && s != "" {
			return s
		}
		if e.Error != "" {
			return e.Error
		}
	}
	return strings.TrimSpace(string(body))
}

func (c *Client) logger() *slog.Logger {
	if c.Log != nil {
		return c.Log
	}
	return slog.Default()
}
