package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	slug "github.com/goliatone/go-slug"

	"github.com/goliatone/go-storefront/internal/catalog"
	"github.com/goliatone/go-storefront/internal/logging"
	"github.com/goliatone/go-storefront/internal/media"
	"github.com/goliatone/go-storefront/pkg/interfaces"
)

const defaultCurrency = "USD"
const defaultStatus = "active"

// ImageFetcher re-uploads remote source images; media.Fetcher satisfies it.
type ImageFetcher interface {
	FetchAndUpload(ctx context.Context, source string) (*media.Asset, error)
}

// Importer runs CSV bulk product imports. Semantics are best-effort per row:
// one bad row never blocks the rest, and a failed image fetch skips that
// image only.
type Importer struct {
	catalog catalog.Writer
	images  ImageFetcher
	logger  interfaces.Logger
}

// Option mutates the importer configuration.
type Option func(*Importer)

// WithImageFetcher wires the image fetch-and-reupload pipeline. Without it,
// image URLs are carried through untouched.
func WithImageFetcher(fetcher ImageFetcher) Option {
	return func(i *Importer) {
		i.images = fetcher
	}
}

// WithLogger wires the importer logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(i *Importer) {
		if logger != nil {
			i.logger = logger
		}
	}
}

// New constructs an importer writing into the given catalog.
func New(writer catalog.Writer, opts ...Option) *Importer {
	i := &Importer{
		catalog: writer,
		logger:  logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(i)
		}
	}
	return i
}

// rowInput is one parsed data row before validation.
type rowInput struct {
	Title       string
	Price       string
	Currency    string
	Images      string
	Video       string
	Colors      string
	Sizes       string
	Status      string
	Description string
}

func (r rowInput) Validate() error {
	errs := validation.Errors{}
	if strings.TrimSpace(r.Title) == "" {
		errs["title"] = validation.NewError("storefront.import.title_required", "title is required")
	}
	price := strings.TrimSpace(r.Price)
	if price == "" {
		errs["price"] = validation.NewError("storefront.import.price_required", "price is required")
	} else if _, err := strconv.ParseFloat(price, 64); err != nil {
		errs["price"] = validation.NewError("storefront.import.price_invalid", "price must be a number")
	}
	return errs.Filter()
}

// Import reads the CSV and writes one product per valid row. It returns an
// error only for unreadable input (missing header); row-level failures are
// collected in the report.
func (i *Importer) Import(ctx context.Context, r io.Reader) (*Report, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, ErrInputEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrHeaderMissing, err)
	}

	columns := make(map[string]int, len(header))
	for idx, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = idx
	}
	if _, ok := columns["title"]; !ok {
		return nil, fmt.Errorf("%w: title column missing", ErrHeaderMissing)
	}

	report := &Report{Results: []RowResult{}, Errors: []RowError{}}
	row := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		row++
		if err != nil {
			report.Errors = append(report.Errors, RowError{Row: row, Message: fmt.Sprintf("row %d: %v", row, err)})
			continue
		}

		result, err := i.importRow(ctx, columns, record, row)
		if err != nil {
			report.Errors = append(report.Errors, RowError{Row: row, Message: fmt.Sprintf("row %d: %v", row, err)})
			continue
		}
		report.Results = append(report.Results, *result)
	}

	i.logger.Info("csv import finished", "rows", row, "imported", len(report.Results), "failed", len(report.Errors))
	return report, nil
}

func (i *Importer) importRow(ctx context.Context, columns map[string]int, record []string, row int) (*RowResult, error) {
	field := func(name string) string {
		idx, ok := columns[name]
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	input := rowInput{
		Title:       field("title"),
		Price:       field("price"),
		Currency:    field("currency"),
		Images:      field("images"),
		Video:       field("video"),
		Colors:      field("colors"),
		Sizes:       field("sizes"),
		Status:      field("status"),
		Description: field("description"),
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	handle, err := slug.Normalize(input.Title)
	if err != nil || handle == "" {
		return nil, fmt.Errorf("cannot derive handle from title %q", input.Title)
	}

	currency := strings.ToUpper(input.Currency)
	if currency == "" {
		currency = defaultCurrency
	}
	status := strings.ToLower(input.Status)
	if status == "" {
		status = defaultStatus
	}

	colors, err := parseColors(input.Colors)
	if err != nil {
		return nil, err
	}

	product := &catalog.Product{
		Handle:      handle,
		Title:       input.Title,
		Description: input.Description,
		Status:      status,
		Price:       catalog.Money{Amount: input.Price, CurrencyCode: currency},
		Images:      i.importImages(ctx, splitList(input.Images), row),
		Video:       input.Video,
		Colors:      colors,
		Sizes:       splitList(input.Sizes),
	}

	saved, err := i.catalog.Save(ctx, product)
	if err != nil {
		return nil, err
	}

	return &RowResult{
		Row:    row,
		Title:  saved.Title,
		Handle: saved.Handle,
		Status: saved.Status,
	}, nil
}

// importImages fetches and re-uploads each source URL. A failed fetch skips
// that image; the row proceeds with whatever uploaded successfully.
func (i *Importer) importImages(ctx context.Context, sources []string, row int) []string {
	if len(sources) == 0 {
		return nil
	}
	if i.images == nil {
		return sources
	}
	out := make([]string, 0, len(sources))
	for _, source := range sources {
		asset, err := i.images.FetchAndUpload(ctx, source)
		if err != nil {
			if errors.Is(err, media.ErrFetchFailed) {
				i.logger.Warn("image skipped", "row", row, "url", source, "error", err)
				continue
			}
			i.logger.Warn("image upload failed", "row", row, "url", source, "error", err)
			continue
		}
		out = append(out, asset.URL)
	}
	return out
}

// parseColors parses "Name:Hex" pairs separated by "|".
func parseColors(raw string) ([]catalog.Color, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	pairs := strings.Split(raw, "|")
	out := make([]catalog.Color, 0, len(pairs))
	for _, pair := range pairs {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		name, hex, ok := strings.Cut(pair, ":")
		if !ok {
			return nil, fmt.Errorf("invalid color %q, want Name:Hex", pair)
		}
		out = append(out, catalog.Color{
			Name: strings.TrimSpace(name),
			Hex:  strings.TrimSpace(hex),
		})
	}
	return out, nil
}

func splitList(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
