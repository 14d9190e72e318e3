package media

import (
	"context"
	"errors"
	"fmt"
	"io"
)

var (
	// ErrUploaderUnavailable reports that no upload provider has been configured.
	ErrUploaderUnavailable = errors.New("media: uploader unavailable")
	// ErrFetchFailed indicates a source image could not be retrieved.
	ErrFetchFailed = errors.New("media: fetch failed")
)

// UploadInput carries one binary payload into the upload provider.
type UploadInput struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

// Asset is the durable result of an upload: a URL usable directly in image
// rendering plus the provider's internal identifier.
type Asset struct {
	ID       string `json:"id"`
	URL      string `json:"url"`
	Filename string `json:"filename"`
	Size     int64  `json:"size"`
}

// Uploader accepts a binary file and returns a durable URL.
type Uploader interface {
	Upload(ctx context.Context, input UploadInput) (*Asset, error)
}

// FetchError reports a failed retrieval of a remote source URL. Callers
// importing images downgrade this to a per-image skip, never a row failure.
type FetchError struct {
	URL        string
	StatusCode int
	Cause      error
}

func (e *FetchError) Error() string {
	if e == nil {
		return ErrFetchFailed.Error()
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: url=%s status=%d", ErrFetchFailed.Error(), e.URL, e.StatusCode)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: url=%s: %v", ErrFetchFailed.Error(), e.URL, e.Cause)
	}
	return fmt.Sprintf("%s: url=%s", ErrFetchFailed.Error(), e.URL)
}

func (e *FetchError) Unwrap() error {
	return ErrFetchFailed
}
