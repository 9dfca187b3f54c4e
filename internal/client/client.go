// Package client talks to the declutter HTTP API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/yokitheyo/declutter/internal/model"
)

const (
	DefaultBaseURL = "http://localhost:8080"
	secondsPerDay  = 86400
)

// ConnectionError means the backend could not be reached at all.
type ConnectionError struct {
	URL string
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("cannot reach declutter server at %s: %v", e.URL, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// APIError is a non-2xx answer from the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server returned %d", e.Status)
	}
	return e.Message
}

type Client struct {
	baseURL string
	http    *http.Client
	now     func() time.Time
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 5 * time.Minute},
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NormalizePath rewrites backslashes so Windows style input survives the trip.
func NormalizePath(p string) string {
	return strings.ReplaceAll(strings.TrimSpace(p), `\`, "/")
}

// NewFilter turns "older than days" into an absolute cutoff. The same filter
// value must be sent to Scan and Cleanup so both see one cutoff.
func (c *Client) NewFilter(dir, ext string, days int) (model.CleanupFilter, error) {
	if days < 0 {
		return model.CleanupFilter{}, fmt.Errorf("%w: days must not be negative", model.ErrInvalidInput)
	}
	return model.CleanupFilter{
		Directory: NormalizePath(dir),
		Extension: strings.TrimSpace(ext),
		Cutoff:    c.now().Unix() - int64(days)*secondsPerDay,
	}, nil
}

func (c *Client) Health(ctx context.Context) error {
	var out map[string]any
	return c.do(ctx, http.MethodGet, "/health", nil, nil, &out)
}

func (c *Client) ListFiles(ctx context.Context, dir string) ([]model.FileEntry, error) {
	var out model.ListFilesResponse
	q := url.Values{"directory": {NormalizePath(dir)}}
	if err := c.do(ctx, http.MethodGet, "/files", q, nil, &out); err != nil {
		return nil, err
	}
	return out.Files, nil
}

// Drives returns the roots the server can browse from.
func (c *Client) Drives(ctx context.Context) ([]string, error) {
	var out model.ListDrivesResponse
	if err := c.do(ctx, http.MethodGet, "/drives", nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Drives, nil
}

func (c *Client) ListDirs(ctx context.Context, dir string) ([]model.DirEntry, error) {
	var out model.ListDirsResponse
	q := url.Values{"path": {NormalizePath(dir)}}
	if err := c.do(ctx, http.MethodGet, "/directories", q, nil, &out); err != nil {
		return nil, err
	}
	return out.Directories, nil
}

// CreateFile returns the path of the new file.
func (c *Client) CreateFile(ctx context.Context, dir, filename string) (string, error) {
	var out model.StatusResponse
	req := model.CreateFileRequest{Directory: NormalizePath(dir), Filename: filename}
	if err := c.do(ctx, http.MethodPost, "/file", nil, req, &out); err != nil {
		return "", err
	}
	return out.Path, nil
}

func (c *Client) DeleteFile(ctx context.Context, path string) error {
	var out model.StatusResponse
	req := model.DeleteFileRequest{Filepath: NormalizePath(path)}
	return c.do(ctx, http.MethodDelete, "/file", nil, req, &out)
}

func (c *Client) Scan(ctx context.Context, f model.CleanupFilter) (*model.ScanResponse, error) {
	var out model.ScanResponse
	q := url.Values{
		"directory":       {f.Directory},
		"fileType":        {f.Extension},
		"beforeTimestamp": {strconv.FormatInt(f.Cutoff, 10)},
	}
	if err := c.do(ctx, http.MethodGet, "/scan-cleanup", q, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Cleanup(ctx context.Context, f model.CleanupFilter) (*model.CleanupResponse, error) {
	var out model.CleanupResponse
	cutoff := f.Cutoff
	req := model.CleanupRequest{Directory: f.Directory, FileType: f.Extension, BeforeTimestamp: &cutoff}
	if err := c.do(ctx, http.MethodPost, "/cleanup", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) History(ctx context.Context, limit int) ([]model.CleanupRecord, error) {
	var out model.HistoryResponse
	var q url.Values
	if limit > 0 {
		q = url.Values{"limit": {strconv.Itoa(limit)}}
	}
	if err := c.do(ctx, http.MethodGet, "/cleanup/history", q, nil, &out); err != nil {
		return nil, err
	}
	return out.Records, nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return &ConnectionError{URL: c.baseURL, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &ConnectionError{URL: c.baseURL, Err: err}
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return &APIError{Status: resp.StatusCode, Message: errorMessage(data)}
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

func errorMessage(data []byte) string {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return strings.TrimSpace(string(data))
	}
	if body.Message != "" {
		return body.Message
	}
	return body.Error
}

// IsConnection reports whether err came from an unreachable backend.
func IsConnection(err error) bool {
	var ce *ConnectionError
	return errors.As(err, &ce)
}
