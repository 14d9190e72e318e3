// Package di wires storefront module dependencies from configuration.
package di

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"

	repocache "github.com/goliatone/go-repository-cache/cache"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	_ "github.com/mattn/go-sqlite3"

	"github.com/goliatone/go-storefront/internal/catalog"
	storefronthttp "github.com/goliatone/go-storefront/internal/http"
	"github.com/goliatone/go-storefront/internal/importer"
	"github.com/goliatone/go-storefront/internal/logging"
	"github.com/goliatone/go-storefront/internal/logging/gologger"
	"github.com/goliatone/go-storefront/internal/media"
	"github.com/goliatone/go-storefront/internal/pagecontent"
	"github.com/goliatone/go-storefront/internal/runtimeconfig"
	"github.com/goliatone/go-storefront/pkg/interfaces"
)

// Container owns every wired component of the storefront module.
type Container struct {
	Config runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider

	bunDB         *bun.DB
	ownsDB        bool
	cacheService  repocache.CacheService
	keySerializer repocache.KeySerializer

	pageRepo    pagecontent.Repository
	catalogRepo catalog.Repository

	sectionRegistry  *pagecontent.Registry
	templateRegistry *pagecontent.TemplateRegistry

	pageSvc  pagecontent.Service
	planner  *pagecontent.Planner
	uploader media.Uploader
	fetcher  *media.Fetcher
	importer *importer.Importer
	adminAPI *storefronthttp.AdminAPI
}

// Option mutates the container before wiring is finalised.
type Option func(*Container)

// WithLoggerProvider overrides the logger provider derived from config.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		if provider != nil {
			c.loggerProvider = provider
		}
	}
}

// WithBunDB supplies an externally managed database handle. The container
// will not close it.
func WithBunDB(db *bun.DB) Option {
	return func(c *Container) {
		c.bunDB = db
	}
}

// WithCache overrides the repository cache bindings.
func WithCache(service repocache.CacheService, serializer repocache.KeySerializer) Option {
	return func(c *Container) {
		c.cacheService = service
		c.keySerializer = serializer
	}
}

// WithPageRepository overrides the page repository binding.
func WithPageRepository(repo pagecontent.Repository) Option {
	return func(c *Container) {
		c.pageRepo = repo
	}
}

// WithCatalogRepository overrides the catalog repository binding.
func WithCatalogRepository(repo catalog.Repository) Option {
	return func(c *Container) {
		c.catalogRepo = repo
	}
}

// WithUploader overrides the media uploader binding.
func WithUploader(uploader media.Uploader) Option {
	return func(c *Container) {
		c.uploader = uploader
	}
}

// WithSectionRegistry overrides the section definition registry.
func WithSectionRegistry(registry *pagecontent.Registry) Option {
	return func(c *Container) {
		c.sectionRegistry = registry
	}
}

// WithTemplateRegistry overrides the page template registry.
func WithTemplateRegistry(registry *pagecontent.TemplateRegistry) Option {
	return func(c *Container) {
		c.templateRegistry = registry
	}
}

// NewContainer validates configuration and wires the full component graph.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Container{Config: cfg}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	if err := c.configureLoggerProvider(); err != nil {
		return nil, err
	}
	if err := c.configureStorage(); err != nil {
		return nil, err
	}
	c.configureCacheDefaults()
	c.configureRepositories()
	if err := c.configureRegistries(); err != nil {
		c.Close()
		return nil, err
	}
	c.configureServices()

	return c, nil
}

func (c *Container) configureLoggerProvider() error {
	if c.loggerProvider != nil {
		return nil
	}
	if !c.Config.Features.Logger {
		c.loggerProvider = logging.NoOpProvider()
		return nil
	}

	switch strings.ToLower(strings.TrimSpace(c.Config.Logging.Provider)) {
	case "noop":
		c.loggerProvider = logging.NoOpProvider()
	default:
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     c.Config.Logging.Level,
			Format:    c.Config.Logging.Format,
			AddSource: c.Config.Logging.AddSource,
			Focus:     c.Config.Logging.Focus,
		})
		if err != nil {
			return fmt.Errorf("storefront di: logger provider: %w", err)
		}
		c.loggerProvider = provider
	}
	return nil
}

func (c *Container) configureStorage() error {
	if c.bunDB != nil {
		return nil
	}
	if strings.ToLower(strings.TrimSpace(c.Config.Storage.Provider)) != "sqlite" {
		return nil
	}

	sqldb, err := sql.Open("sqlite3", c.Config.Storage.DSN)
	if err != nil {
		return fmt.Errorf("storefront di: open sqlite: %w", err)
	}
	c.bunDB = bun.NewDB(sqldb, sqlitedialect.New())
	c.ownsDB = true
	return nil
}

func (c *Container) configureCacheDefaults() {
	if !c.Config.Features.Cache && !c.Config.Cache.Enabled {
		return
	}

	if c.cacheService == nil {
		cacheCfg := repocache.DefaultConfig()
		if c.Config.Cache.DefaultTTL > 0 {
			cacheCfg.TTL = c.Config.Cache.DefaultTTL
		}
		service, err := repocache.NewCacheService(cacheCfg)
		if err == nil {
			c.cacheService = service
		}
	}
	if c.cacheService != nil && c.keySerializer == nil {
		c.keySerializer = repocache.NewDefaultKeySerializer()
	}
}

func (c *Container) configureRepositories() {
	if c.pageRepo == nil {
		if c.bunDB != nil {
			c.pageRepo = pagecontent.NewBunRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
		} else {
			c.pageRepo = pagecontent.NewMemoryRepository()
		}
	}
	if c.catalogRepo == nil {
		if c.bunDB != nil {
			c.catalogRepo = catalog.NewBunRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
		} else {
			c.catalogRepo = catalog.NewMemoryRepository()
		}
	}
}

func (c *Container) configureRegistries() error {
	if c.sectionRegistry == nil {
		c.sectionRegistry = pagecontent.DefaultRegistry()
	}
	if c.templateRegistry == nil {
		c.templateRegistry = pagecontent.NewTemplateRegistry()
	}

	dir := strings.TrimSpace(c.Config.Templates.Dir)
	if c.Config.Features.Templates && dir != "" {
		if err := pagecontent.LoadTemplates(c.templateRegistry, os.DirFS(dir), "."); err != nil {
			return fmt.Errorf("storefront di: load templates: %w", err)
		}
	}
	return nil
}

func (c *Container) configureServices() {
	c.pageSvc = pagecontent.NewService(c.pageRepo,
		pagecontent.WithSectionRegistry(c.sectionRegistry),
		pagecontent.WithTemplateRegistry(c.templateRegistry),
		pagecontent.WithLogger(logging.PagesLogger(c.loggerProvider)),
	)

	c.planner = pagecontent.NewPlanner(c.sectionRegistry, c.catalogRepo,
		pagecontent.WithPlannerLogger(logging.PagesLogger(c.loggerProvider)),
	)

	if c.uploader == nil {
		c.uploader = media.NewMemoryUploader(c.Config.Media.BaseURL)
	}

	fetcherOpts := []media.FetcherOption{}
	if c.Config.Importer.MaxImageBytes > 0 {
		fetcherOpts = append(fetcherOpts, media.WithMaxFetchBytes(c.Config.Importer.MaxImageBytes))
	}
	if timeout := c.Config.Importer.FetchTimeout; timeout > 0 {
		fetcherOpts = append(fetcherOpts, media.WithFetchTimeout(timeout))
	}
	c.fetcher = media.NewFetcher(c.uploader, fetcherOpts...)

	c.importer = importer.New(c.catalogRepo,
		importer.WithImageFetcher(c.fetcher),
		importer.WithLogger(logging.ImporterLogger(c.loggerProvider)),
	)

	c.adminAPI = storefronthttp.NewAdminAPI(
		storefronthttp.WithBasePath(c.Config.HTTP.BasePath),
		storefronthttp.WithPageService(c.pageSvc),
		storefronthttp.WithPlanner(c.planner),
		storefronthttp.WithCatalogProvider(c.catalogRepo),
		storefronthttp.WithImporter(c.importer),
		storefronthttp.WithLogger(logging.HTTPLogger(c.loggerProvider)),
	)
}

// EnsureSchema creates the storage tables when a database is configured.
func (c *Container) EnsureSchema(ctx context.Context) error {
	if c.bunDB == nil {
		return nil
	}
	models := []any{
		(*pagecontent.PageRecord)(nil),
		(*catalog.ProductRecord)(nil),
	}
	for _, model := range models {
		if _, err := c.bunDB.NewCreateTable().
			Model(model).
			IfNotExists().
			Exec(ctx); err != nil {
			return fmt.Errorf("storefront di: create table: %w", err)
		}
	}
	return nil
}

// Close releases resources the container created itself.
func (c *Container) Close() error {
	if c.bunDB != nil && c.ownsDB {
		err := c.bunDB.Close()
		c.bunDB = nil
		return err
	}
	return nil
}

// LoggerProvider exposes the configured logger provider.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// DB exposes the database handle, nil for memory storage.
func (c *Container) DB() *bun.DB {
	return c.bunDB
}

// PageRepository exposes the configured page repository.
func (c *Container) PageRepository() pagecontent.Repository {
	return c.pageRepo
}

// CatalogRepository exposes the configured catalog repository.
func (c *Container) CatalogRepository() catalog.Repository {
	return c.catalogRepo
}

// SectionRegistry exposes the section definition registry.
func (c *Container) SectionRegistry() *pagecontent.Registry {
	return c.sectionRegistry
}

// TemplateRegistry exposes the page template registry.
func (c *Container) TemplateRegistry() *pagecontent.TemplateRegistry {
	return c.templateRegistry
}

// PageService returns the configured page service.
func (c *Container) PageService() pagecontent.Service {
	return c.pageSvc
}

// Planner returns the configured render planner.
func (c *Container) Planner() *pagecontent.Planner {
	return c.planner
}

// Uploader returns the configured media uploader.
func (c *Container) Uploader() media.Uploader {
	return c.uploader
}

// Fetcher returns the configured media fetcher.
func (c *Container) Fetcher() *media.Fetcher {
	return c.fetcher
}

// Importer returns the configured CSV importer.
func (c *Container) Importer() *importer.Importer {
	return c.importer
}

// AdminAPI returns the configured admin HTTP surface.
func (c *Container) AdminAPI() *storefronthttp.AdminAPI {
	return c.adminAPI
}
