package httputil

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/matzehuels/bandslicer/pkg/buildinfo"
	"github.com/matzehuels/bandslicer/pkg/errors"
)

// Defaults used by [NewFetcher].
const (
	DefaultAttempts = 3
	DefaultDelay    = time.Second
	DefaultTimeout  = 30 * time.Second
	DefaultMaxBytes = 64 << 20
)

// Fetcher downloads remote files.
type Fetcher struct {
	Client    *http.Client
	Attempts  int
	Delay     time.Duration // initial backoff, doubled per retry
	MaxBytes  int64
	UserAgent string
}

// NewFetcher returns a Fetcher with the package defaults.
func NewFetcher() *Fetcher {
	return &Fetcher{
		Client:    &http.Client{Timeout: DefaultTimeout},
		Attempts:  DefaultAttempts,
		Delay:     DefaultDelay,
		MaxBytes:  DefaultMaxBytes,
		UserAgent: buildinfo.UserAgent(),
	}
}

// IsURL reports whether s is an http or https URL.
func IsURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// FileName returns the last path element of a URL, or "" if it has none.
func FileName(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	name := path.Base(u.Path)
	if name == "." || name == "/" {
		return ""
	}
	return name
}

// Fetch downloads rawURL and returns the response body.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	var body []byte
	err := Retry(ctx, f.Attempts, f.Delay, func() error {
		data, err := f.get(ctx, rawURL)
		body = data
		return err
	})
	if err != nil {
		if IsRetryable(err) {
			return nil, errors.Wrap(errors.ErrCodeNetwork, err, "fetch %s after %d attempts", rawURL, max(f.Attempts, 1))
		}
		return nil, err
	}
	return body, nil
}

func (f *Fetcher) get(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "url %s", rawURL)
	}
	if f.UserAgent != "" {
		req.Header.Set("User-Agent", f.UserAgent)
	}

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &RetryableError{Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, errors.New(errors.ErrCodeFileNotFound, "%s: %s", rawURL, resp.Status)
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return nil, &RetryableError{Err: fmt.Errorf("%s: %s", rawURL, resp.Status)}
	case resp.StatusCode >= 400:
		return nil, errors.New(errors.ErrCodeInvalidInput, "%s: %s", rawURL, resp.Status)
	}

	limit := f.MaxBytes
	if limit <= 0 {
		limit = DefaultMaxBytes
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, &RetryableError{Err: fmt.Errorf("read %s: %w", rawURL, err)}
	}
	if int64(len(data)) > limit {
		return nil, errors.New(errors.ErrCodeInvalidInput, "%s exceeds %d bytes", rawURL, limit)
	}
	return data, nil
}
