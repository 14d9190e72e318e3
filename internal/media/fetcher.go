package media

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"
)

const defaultMaxFetchBytes = 20 << 20

// Fetcher retrieves remote source images and re-uploads them through the
// configured uploader, yielding durable URLs owned by this platform instead
// of references into arbitrary third-party hosts.
type Fetcher struct {
	client   *http.Client
	uploader Uploader
	maxBytes int64
	timeout  time.Duration
}

// FetcherOption mutates the fetcher configuration.
type FetcherOption func(*Fetcher)

// WithHTTPClient overrides the HTTP client used for source retrieval.
func WithHTTPClient(client *http.Client) FetcherOption {
	return func(f *Fetcher) {
		if client != nil {
			f.client = client
		}
	}
}

// WithFetchTimeout overrides the client timeout. The timeout applies
// regardless of option ordering relative to WithHTTPClient.
func WithFetchTimeout(timeout time.Duration) FetcherOption {
	return func(f *Fetcher) {
		if timeout > 0 {
			f.timeout = timeout
		}
	}
}

// WithMaxFetchBytes caps the accepted source body size. Larger bodies fail
// the fetch rather than upload a partial payload.
func WithMaxFetchBytes(limit int64) FetcherOption {
	return func(f *Fetcher) {
		if limit > 0 {
			f.maxBytes = limit
		}
	}
}

// NewFetcher constructs a fetcher over the given uploader.
func NewFetcher(uploader Uploader, opts ...FetcherOption) *Fetcher {
	f := &Fetcher{
		client:   &http.Client{Timeout: 30 * time.Second},
		uploader: uploader,
		maxBytes: defaultMaxFetchBytes,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(f)
		}
	}
	if f.timeout > 0 {
		f.client.Timeout = f.timeout
	}
	return f
}

// FetchAndUpload retrieves the source URL and re-uploads the payload.
// Transport errors, non-2xx responses, and bodies over the byte cap
// return *FetchError.
func (f *Fetcher) FetchAndUpload(ctx context.Context, source string) (*Asset, error) {
	if f.uploader == nil {
		return nil, ErrUploaderUnavailable
	}
	source = strings.TrimSpace(source)
	parsed, err := url.Parse(source)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, &FetchError{URL: source, Cause: fmt.Errorf("invalid url")}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, &FetchError{URL: source, Cause: err}
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: source, Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{URL: source, StatusCode: resp.StatusCode}
	}

	// Read one byte past the cap so an oversized body is rejected instead
	// of uploading a truncated payload as a valid asset.
	data, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return nil, &FetchError{URL: source, Cause: err}
	}
	if int64(len(data)) > f.maxBytes {
		return nil, &FetchError{URL: source, Cause: fmt.Errorf("body exceeds %d byte limit", f.maxBytes)}
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}

	filename := path.Base(parsed.Path)
	if filename == "" || filename == "/" || filename == "." {
		filename = "image"
	}

	return f.uploader.Upload(ctx, UploadInput{
		Filename:    filename,
		ContentType: contentType,
		Body:        bytes.NewReader(data),
	})
}
