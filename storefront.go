// Package storefront exposes the headless storefront runtime: page content
// documents, the product catalog, CSV import, media re-upload, and the admin
// HTTP surface.
package storefront

import (
	"context"
	"net/http"

	"github.com/goliatone/go-storefront/internal/catalog"
	"github.com/goliatone/go-storefront/internal/di"
	storefronthttp "github.com/goliatone/go-storefront/internal/http"
	"github.com/goliatone/go-storefront/internal/importer"
	"github.com/goliatone/go-storefront/internal/media"
	"github.com/goliatone/go-storefront/internal/pagecontent"
	"github.com/goliatone/go-storefront/pkg/interfaces"
)

// PageService exports the page content service contract.
type PageService = pagecontent.Service

// Document exports the section-based page document.
type Document = pagecontent.Document

// Section exports a single page section.
type Section = pagecontent.Section

// LoadState exports the page load classification.
type LoadState = pagecontent.LoadState

// Load state values.
const (
	LoadStateFound    = pagecontent.LoadStateFound
	LoadStateNotFound = pagecontent.LoadStateNotFound
)

// Plan exports the render plan produced for a page document.
type Plan = pagecontent.Plan

// PlanOptions exports render plan options.
type PlanOptions = pagecontent.PlanOptions

// RenderedSection exports a resolved section in a render plan.
type RenderedSection = pagecontent.RenderedSection

// PageRecord exports the persisted page row.
type PageRecord = pagecontent.PageRecord

// TemplateRegistry exports the page template registry.
type TemplateRegistry = pagecontent.TemplateRegistry

// SectionRegistry exports the section definition registry.
type SectionRegistry = pagecontent.Registry

// Product exports the catalog product.
type Product = catalog.Product

// Money exports the catalog money value.
type Money = catalog.Money

// Color exports the catalog color value.
type Color = catalog.Color

// CatalogProvider exports the read-side catalog contract.
type CatalogProvider = catalog.Provider

// CatalogRepository exports the read/write catalog contract.
type CatalogRepository = catalog.Repository

// ImportReport exports the CSV import outcome.
type ImportReport = importer.Report

// ImportRowResult exports a successful import row.
type ImportRowResult = importer.RowResult

// ImportRowError exports a failed import row.
type ImportRowError = importer.RowError

// MediaUploader exports the upload contract.
type MediaUploader = media.Uploader

// MediaAsset exports an uploaded asset.
type MediaAsset = media.Asset

// Logger exports the logging contract used across the module.
type Logger = interfaces.Logger

// LoggerProvider exports the named logger factory contract.
type LoggerProvider = interfaces.LoggerProvider

// Module represents the top level storefront runtime façade.
type Module struct {
	container *di.Container
}

// New constructs a storefront module using the provided configuration and
// optional DI overrides.
func New(cfg Config, opts ...di.Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Pages returns the configured page content service.
func (m *Module) Pages() PageService {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.PageService()
}

// Catalog returns the configured catalog repository.
func (m *Module) Catalog() CatalogRepository {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.CatalogRepository()
}

// Planner returns the configured render planner.
func (m *Module) Planner() *pagecontent.Planner {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.Planner()
}

// Importer returns the configured CSV importer.
func (m *Module) Importer() *importer.Importer {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.Importer()
}

// Uploader returns the configured media uploader.
func (m *Module) Uploader() MediaUploader {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.Uploader()
}

// Fetcher returns the configured media fetcher.
func (m *Module) Fetcher() *media.Fetcher {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.Fetcher()
}

// Templates returns the page template registry.
func (m *Module) Templates() *TemplateRegistry {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.TemplateRegistry()
}

// Sections returns the section definition registry.
func (m *Module) Sections() *SectionRegistry {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.SectionRegistry()
}

// AdminAPI returns the admin HTTP surface.
func (m *Module) AdminAPI() *storefronthttp.AdminAPI {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.AdminAPI()
}

// RegisterRoutes attaches the admin and public endpoints to the mux.
func (m *Module) RegisterRoutes(mux *http.ServeMux) {
	if api := m.AdminAPI(); api != nil {
		api.Register(mux)
	}
}

// EnsureSchema creates database tables when SQL storage is configured.
func (m *Module) EnsureSchema(ctx context.Context) error {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.EnsureSchema(ctx)
}

// Close releases container-owned resources.
func (m *Module) Close() error {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.Close()
}
