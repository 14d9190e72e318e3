package logging

import (
	"github.com/goliatone/go-storefront/pkg/interfaces"
)

const (
	rootModule     = "storefront"
	pagesModule    = "storefront.pages"
	importerModule = "storefront.importer"
	httpModule     = "storefront.http"
)

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when no provider is supplied. The returned logger attaches
// the module identifier as structured context so downstream entries can be
// filtered predictably.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// PagesLogger returns the logger namespace reserved for the page content service.
func PagesLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, pagesModule)
}

// ImporterLogger returns the logger namespace reserved for CSV import runs.
func ImporterLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, importerModule)
}

// HTTPLogger returns the logger namespace reserved for the admin HTTP API.
func HTTPLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, httpModule)
}
