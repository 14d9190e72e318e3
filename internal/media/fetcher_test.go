package media_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-storefront/internal/media"
)

func TestFetchAndUploadSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write([]byte("png-bytes"))
	}))
	defer server.Close()

	uploader := media.NewMemoryUploader("https://cdn.test/assets")
	fetcher := media.NewFetcher(uploader)

	asset, err := fetcher.FetchAndUpload(context.Background(), server.URL+"/images/hero.png")
	if err != nil {
		t.Fatalf("fetch and upload: %v", err)
	}
	if asset.Filename != "hero.png" {
		t.Fatalf("unexpected filename %q", asset.Filename)
	}
	if asset.Size != int64(len("png-bytes")) {
		t.Fatalf("unexpected size %d", asset.Size)
	}
	if !strings.HasPrefix(asset.URL, "https://cdn.test/assets/") {
		t.Fatalf("asset url not under uploader base: %q", asset.URL)
	}

	stored, ok := uploader.Asset(asset.ID)
	if !ok || stored.URL != asset.URL {
		t.Fatalf("asset not recorded: %#v", stored)
	}
}

func TestFetchAndUploadNonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer server.Close()

	fetcher := media.NewFetcher(media.NewMemoryUploader(""))

	_, err := fetcher.FetchAndUpload(context.Background(), server.URL+"/missing.jpg")
	if !errors.Is(err, media.ErrFetchFailed) {
		t.Fatalf("expected fetch failure, got %v", err)
	}

	var fetchErr *media.FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("expected FetchError, got %T", err)
	}
	if fetchErr.StatusCode != http.StatusNotFound {
		t.Fatalf("unexpected status %d", fetchErr.StatusCode)
	}
}

func TestFetchAndUploadInvalidURL(t *testing.T) {
	fetcher := media.NewFetcher(media.NewMemoryUploader(""))

	if _, err := fetcher.FetchAndUpload(context.Background(), "not-a-url"); !errors.Is(err, media.ErrFetchFailed) {
		t.Fatalf("expected fetch failure for invalid url, got %v", err)
	}
}

func TestFetchAndUploadUnreachableHost(t *testing.T) {
	fetcher := media.NewFetcher(media.NewMemoryUploader(""))

	_, err := fetcher.FetchAndUpload(context.Background(), "http://127.0.0.1:1/img.jpg")
	if !errors.Is(err, media.ErrFetchFailed) {
		t.Fatalf("expected fetch failure, got %v", err)
	}
}

func TestFetchAndUploadWithoutUploader(t *testing.T) {
	fetcher := media.NewFetcher(nil)

	if _, err := fetcher.FetchAndUpload(context.Background(), "https://example.com/a.jpg"); !errors.Is(err, media.ErrUploaderUnavailable) {
		t.Fatalf("expected uploader unavailable, got %v", err)
	}
}

func TestFetchAndUploadRejectsOversizedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(make([]byte, 100))
	}))
	defer server.Close()

	uploader := media.NewMemoryUploader("")
	fetcher := media.NewFetcher(uploader, media.WithMaxFetchBytes(10))

	_, err := fetcher.FetchAndUpload(context.Background(), server.URL+"/big.bin")
	if !errors.Is(err, media.ErrFetchFailed) {
		t.Fatalf("expected fetch failure for oversized body, got %v", err)
	}
	if uploader.Len() != 0 {
		t.Fatalf("expected no upload for oversized body, got %d assets", uploader.Len())
	}
}

func TestFetchAndUploadAcceptsBodyAtByteLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(make([]byte, 16))
	}))
	defer server.Close()

	uploader := media.NewMemoryUploader("")
	fetcher := media.NewFetcher(uploader, media.WithMaxFetchBytes(16))

	asset, err := fetcher.FetchAndUpload(context.Background(), server.URL+"/exact.bin")
	if err != nil {
		t.Fatalf("fetch and upload: %v", err)
	}
	if asset.Size != 16 {
		t.Fatalf("expected 16 byte asset, got %d", asset.Size)
	}
}

func TestFetchTimeoutSurvivesClientOverride(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer server.Close()
	defer close(release)

	fetcher := media.NewFetcher(media.NewMemoryUploader(""),
		media.WithFetchTimeout(50*time.Millisecond),
		media.WithHTTPClient(&http.Client{}),
	)

	_, err := fetcher.FetchAndUpload(context.Background(), server.URL+"/slow.jpg")
	if !errors.Is(err, media.ErrFetchFailed) {
		t.Fatalf("expected timeout fetch failure, got %v", err)
	}
}

func TestFetchAndUploadDefaultsFilename(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("x"))
	}))
	defer server.Close()

	fetcher := media.NewFetcher(media.NewMemoryUploader(""))

	asset, err := fetcher.FetchAndUpload(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("fetch and upload: %v", err)
	}
	if asset.Filename != "image" {
		t.Fatalf("expected fallback filename, got %q", asset.Filename)
	}
}
