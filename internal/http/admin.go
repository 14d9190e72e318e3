// Package http exposes the storefront admin API over the standard library
// mux. Handlers map service errors onto transport responses; no business
// rules live here.
package http

import (
	"net/http"
	"strings"

	"github.com/goliatone/go-storefront/internal/catalog"
	"github.com/goliatone/go-storefront/internal/importer"
	"github.com/goliatone/go-storefront/internal/logging"
	"github.com/goliatone/go-storefront/internal/pagecontent"
	"github.com/goliatone/go-storefront/pkg/interfaces"
)

// AdminAPI registers admin endpoints for page documents, the product
// catalog, and CSV import, plus the public render-plan endpoint.
type AdminAPI struct {
	basePath string
	pages    pagecontent.Service
	planner  *pagecontent.Planner
	catalog  catalog.Provider
	importer *importer.Importer
	logger   interfaces.Logger
}

// AdminOption mutates the AdminAPI configuration.
type AdminOption func(*AdminAPI)

// NewAdminAPI constructs an AdminAPI instance.
func NewAdminAPI(opts ...AdminOption) *AdminAPI {
	api := &AdminAPI{
		basePath: "/admin/api",
		logger:   logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(api)
		}
	}
	return api
}

// WithBasePath overrides the base API path (defaults to "/admin/api").
func WithBasePath(path string) AdminOption {
	return func(api *AdminAPI) {
		if api == nil {
			return
		}
		if trimmed := strings.TrimSpace(path); trimmed != "" {
			api.basePath = trimmed
		}
	}
}

// WithPageService wires the page content service.
func WithPageService(service pagecontent.Service) AdminOption {
	return func(api *AdminAPI) {
		if api != nil {
			api.pages = service
		}
	}
}

// WithPlanner wires the render planner for the public page endpoint.
func WithPlanner(planner *pagecontent.Planner) AdminOption {
	return func(api *AdminAPI) {
		if api != nil {
			api.planner = planner
		}
	}
}

// WithCatalogProvider wires the product catalog provider.
func WithCatalogProvider(provider catalog.Provider) AdminOption {
	return func(api *AdminAPI) {
		if api != nil {
			api.catalog = provider
		}
	}
}

// WithImporter wires the CSV importer.
func WithImporter(imp *importer.Importer) AdminOption {
	return func(api *AdminAPI) {
		if api != nil {
			api.importer = imp
		}
	}
}

// WithLogger wires the API logger.
func WithLogger(logger interfaces.Logger) AdminOption {
	return func(api *AdminAPI) {
		if api != nil && logger != nil {
			api.logger = logger
		}
	}
}

// Register attaches every route to the supplied mux.
func (api *AdminAPI) Register(mux *http.ServeMux) {
	if api == nil || mux == nil {
		return
	}
	api.registerPageRoutes(mux, api.basePath)
	api.registerProductRoutes(mux, api.basePath)
	api.registerPublicRoutes(mux)
}
