package pagecontent

import (
	"context"
	"errors"
	"strings"
	"time"

	slug "github.com/goliatone/go-slug"

	"github.com/goliatone/go-storefront/internal/logging"
	"github.com/goliatone/go-storefront/pkg/interfaces"
)

// LoadState classifies the outcome of a public page load.
type LoadState string

const (
	// LoadStateFound reports a persisted document with at least one section.
	LoadStateFound LoadState = "found"
	// LoadStateNotFound covers a repository miss, a zero-section document,
	// and any repository error. The three collapse into one state so end
	// users never see infra failure distinguished from intentional absence.
	LoadStateNotFound LoadState = "not_found"
)

// Service is the page content contract: load classification for public
// rendering, strict admin reads, whole-document saves, section-level
// mutation, template instantiation, and deletion.
type Service interface {
	Load(ctx context.Context, handle string) (Document, LoadState)
	Get(ctx context.Context, handle string) (*PageRecord, error)
	List(ctx context.Context) ([]*PageRecord, error)
	Save(ctx context.Context, handle string, doc Document) (*PageRecord, error)
	UpdateSection(ctx context.Context, handle, sectionID string, partial map[string]any) (*PageRecord, error)
	CreateFromTemplate(ctx context.Context, handle, kind string) (*PageRecord, error)
	Delete(ctx context.Context, handle string) error
}

type service struct {
	repo      Repository
	registry  *Registry
	templates *TemplateRegistry
	logger    interfaces.Logger
	now       func() time.Time
}

// ServiceOption mutates the service configuration.
type ServiceOption func(*service)

// WithLogger wires the service logger.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock overrides the timestamp source, for tests.
func WithClock(clock func() time.Time) ServiceOption {
	return func(s *service) {
		if clock != nil {
			s.now = clock
		}
	}
}

// WithSectionRegistry overrides the section registry used for settings validation.
func WithSectionRegistry(registry *Registry) ServiceOption {
	return func(s *service) {
		if registry != nil {
			s.registry = registry
		}
	}
}

// WithTemplateRegistry overrides the template registry used by CreateFromTemplate.
func WithTemplateRegistry(templates *TemplateRegistry) ServiceOption {
	return func(s *service) {
		if templates != nil {
			s.templates = templates
		}
	}
}

// NewService constructs the page content service over the given repository.
func NewService(repo Repository, opts ...ServiceOption) Service {
	s := &service{
		repo:      repo,
		registry:  DefaultRegistry(),
		templates: NewTemplateRegistry(),
		logger:    logging.NoOp(),
		now:       time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Load fetches the document for a handle and classifies the outcome. Errors
// and empty documents both collapse to not-found; infra failures are logged
// so operators can still tell them apart.
func (s *service) Load(ctx context.Context, handle string) (Document, LoadState) {
	normalized, err := normalizeHandle(handle)
	if err != nil {
		return Document{}, LoadStateNotFound
	}
	record, err := s.repo.GetByHandle(ctx, normalized)
	if err != nil {
		s.logger.Debug("page load classified not-found", "handle", normalized, "error", err)
		return Document{}, LoadStateNotFound
	}
	if record.Document.IsEmpty() {
		return Document{}, LoadStateNotFound
	}
	return record.Document.Clone(), LoadStateFound
}

// Get is the strict admin read: missing handles surface *PageNotFoundError.
func (s *service) Get(ctx context.Context, handle string) (*PageRecord, error) {
	normalized, err := normalizeHandle(handle)
	if err != nil {
		return nil, err
	}
	return s.repo.GetByHandle(ctx, normalized)
}

// List returns every stored page record.
func (s *service) List(ctx context.Context) ([]*PageRecord, error) {
	return s.repo.List(ctx)
}

// Save validates and persists the whole document under the handle. The
// in-memory document held by the caller is never partially applied: a
// validation or repository failure leaves the stored record untouched.
func (s *service) Save(ctx context.Context, handle string, doc Document) (*PageRecord, error) {
	normalized, err := normalizeHandle(handle)
	if err != nil {
		return nil, err
	}
	if err := ValidateDocument(doc); err != nil {
		return nil, err
	}
	for _, section := range doc.Sections {
		if err := s.registry.ValidateSettings(section); err != nil {
			return nil, err
		}
	}

	record := &PageRecord{
		Handle:   normalized,
		Document: doc.Clone(),
	}
	saved, err := s.repo.Upsert(ctx, record)
	if err != nil {
		s.logger.Error("page save failed", "handle", normalized, "error", err)
		return nil, err
	}
	s.logger.Info("page saved", "handle", normalized, "sections", len(doc.Sections))
	return saved, nil
}

// UpdateSection merges partial settings into one section of the persisted
// document and saves the result. A missing handle or section id surfaces the
// matching typed error; nothing is written on failure.
func (s *service) UpdateSection(ctx context.Context, handle, sectionID string, partial map[string]any) (*PageRecord, error) {
	normalized, err := normalizeHandle(handle)
	if err != nil {
		return nil, err
	}
	record, err := s.repo.GetByHandle(ctx, normalized)
	if err != nil {
		return nil, err
	}

	updated, err := UpdateSection(record.Document, sectionID, partial)
	if err != nil {
		var missing *SectionNotFoundError
		if errors.As(err, &missing) {
			return nil, &SectionNotFoundError{Handle: normalized, SectionID: sectionID}
		}
		return nil, err
	}

	idx := indexOfSection(updated.Sections, sectionID)
	if idx >= 0 {
		if err := s.registry.ValidateSettings(updated.Sections[idx]); err != nil {
			return nil, err
		}
	}

	record.Document = updated
	saved, err := s.repo.Upsert(ctx, record)
	if err != nil {
		s.logger.Error("section update failed", "handle", normalized, "section", sectionID, "error", err)
		return nil, err
	}
	return saved, nil
}

// CreateFromTemplate deep-copies the template registered for kind and
// persists it under the handle.
func (s *service) CreateFromTemplate(ctx context.Context, handle, kind string) (*PageRecord, error) {
	doc, err := s.templates.Template(kind)
	if err != nil {
		return nil, err
	}
	return s.Save(ctx, handle, doc)
}

// Delete removes the persisted record. Deleting an already-deleted handle
// returns *PageNotFoundError, which callers treat as a no-op outcome.
func (s *service) Delete(ctx context.Context, handle string) error {
	normalized, err := normalizeHandle(handle)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, normalized); err != nil {
		return err
	}
	s.logger.Info("page deleted", "handle", normalized)
	return nil
}

func normalizeHandle(handle string) (string, error) {
	trimmed := strings.TrimSpace(handle)
	if trimmed == "" {
		return "", ErrHandleRequired
	}
	normalized, err := slug.Normalize(trimmed)
	if err != nil || normalized == "" {
		return "", ErrHandleInvalid
	}
	return normalized, nil
}
