// Package runtimeconfig centralizes configuration for the storefront module.
package runtimeconfig

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrStorageProviderUnknown  = errors.New("storefront config: storage provider is invalid")
	ErrStorageDSNRequired      = errors.New("storefront config: storage dsn is required for sqlite provider")
	ErrLoggingProviderRequired = errors.New("storefront config: logging provider is required when logging feature is enabled")
	ErrLoggingProviderUnknown  = errors.New("storefront config: logging provider is invalid")
	ErrLoggingLevelInvalid     = errors.New("storefront config: logging level is invalid")
	ErrLoggingFormatInvalid    = errors.New("storefront config: logging format is invalid")
	ErrImporterTimeoutInvalid  = errors.New("storefront config: importer fetch timeout must be positive")
	ErrImporterMaxBytesInvalid = errors.New("storefront config: importer max image bytes must be positive")
	ErrCacheTTLRequiresCache   = errors.New("storefront config: cache ttl requires cache to be enabled")
	ErrTemplateDirRequiresFlag = errors.New("storefront config: template directory requires the templates feature")
)

// Config aggregates feature flags and adapter bindings for the storefront module.
type Config struct {
	Storage   StorageConfig
	Cache     CacheConfig
	Logging   LoggingConfig
	Importer  ImporterConfig
	Media     MediaConfig
	Templates TemplatesConfig
	HTTP      HTTPConfig
	Features  Features
}

// StorageConfig selects the page/product persistence backend.
// Provider "memory" needs no DSN; "sqlite" requires one.
type StorageConfig struct {
	Provider string
	DSN      string
}

// CacheConfig captures repository cache behaviour toggles. Either Enabled or
// Features.Cache switches the cache on.
type CacheConfig struct {
	Enabled    bool
	DefaultTTL time.Duration
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// ImporterConfig tunes the CSV import pipeline.
type ImporterConfig struct {
	FetchTimeout  time.Duration
	MaxImageBytes int64
}

// MediaConfig configures the upload provider.
type MediaConfig struct {
	BaseURL string
}

// TemplatesConfig points at an optional directory of frontmatter template files.
type TemplatesConfig struct {
	Dir string
}

// HTTPConfig configures the admin API surface.
type HTTPConfig struct {
	BasePath string
}

// Features toggles module functionality.
type Features struct {
	Logger    bool
	Cache     bool
	Templates bool
}

// DefaultConfig returns the baseline configuration: in-memory storage, no-op
// logging, importer limits matching the media fetcher defaults.
func DefaultConfig() Config {
	return Config{
		Storage: StorageConfig{Provider: "memory"},
		Logging: LoggingConfig{Provider: "gologger", Level: "info", Format: "json"},
		Importer: ImporterConfig{
			FetchTimeout:  30 * time.Second,
			MaxImageBytes: 20 << 20,
		},
		HTTP: HTTPConfig{BasePath: "/admin/api"},
	}
}

// Validate checks cross-field consistency and returns the first violation.
func (c Config) Validate() error {
	switch strings.ToLower(strings.TrimSpace(c.Storage.Provider)) {
	case "", "memory":
	case "sqlite":
		if strings.TrimSpace(c.Storage.DSN) == "" {
			return ErrStorageDSNRequired
		}
	default:
		return ErrStorageProviderUnknown
	}

	if c.Features.Logger {
		provider := strings.ToLower(strings.TrimSpace(c.Logging.Provider))
		if provider == "" {
			return ErrLoggingProviderRequired
		}
		if provider != "gologger" && provider != "noop" {
			return ErrLoggingProviderUnknown
		}
		switch strings.ToLower(strings.TrimSpace(c.Logging.Level)) {
		case "", "trace", "debug", "info", "warn", "warning", "error", "fatal":
		default:
			return ErrLoggingLevelInvalid
		}
		switch strings.ToLower(strings.TrimSpace(c.Logging.Format)) {
		case "", "json", "console", "pretty":
		default:
			return ErrLoggingFormatInvalid
		}
	}

	if c.Importer.FetchTimeout < 0 {
		return ErrImporterTimeoutInvalid
	}
	if c.Importer.MaxImageBytes < 0 {
		return ErrImporterMaxBytesInvalid
	}
	if !c.Features.Cache && !c.Cache.Enabled && c.Cache.DefaultTTL > 0 {
		return ErrCacheTTLRequiresCache
	}
	if !c.Features.Templates && strings.TrimSpace(c.Templates.Dir) != "" {
		return ErrTemplateDirRequiresFlag
	}
	return nil
}
